package search

import (
	"context"
	"errors"
	"fmt"

	"github.com/katalvlaran/mapfcore/gridset"
	"github.com/katalvlaran/mapfcore/maxflow"
	"github.com/katalvlaran/mapfcore/network"
)

func probeSync(grid *gridset.Grid, starts, pickups, drops []int, dropCaps []int, t, tau int, opts Options) probeResult {
	g, source, sink, _, err := network.BuildSync(grid, starts, pickups, drops, dropCaps, t, tau)
	if err != nil {
		// tau=0 with a start off the pickup set: this tau is infeasible,
		// not a caller error, so the sweep moves on to the next tau.
		if errors.Is(err, network.ErrReservationConflict) {
			return probeResult{feasible: false}
		}

		return probeResult{err: err}
	}

	method := maxflow.MethodDinic
	if opts.method() == "hlpp" {
		method = maxflow.MethodHLPP
	}

	flow, err := maxflow.Solve(g, source, sink, method, maxflow.DefaultOptions())
	if err != nil {
		return probeResult{err: err}
	}
	if flow < len(starts) {
		return probeResult{feasible: false}
	}

	paths, err := network.Extract(grid, g, starts, t)
	if err != nil {
		return probeResult{err: err}
	}

	return probeResult{feasible: true, tau: tau, paths: paths}
}

// tryT sweeps tau in [0, t] looking for the first feasible one, the sweep
// batched and bounded by opts.tauWorkersPerT(activeT) so multiple T's
// probed concurrently by the caller each get a fair share of workers, per
// §4.6's worker-split formula.
func tryT(ctx context.Context, grid *gridset.Grid, starts, pickups, drops []int, dropCaps []int, t, activeT int, opts Options) (ok bool, tau int, paths [][]gridset.Cell, err error) {
	taus := make([]int, t+1)
	for i := range taus {
		taus[i] = i
	}

	workers := opts.tauWorkersPerT(activeT)
	results, err := runBatch(ctx, workers, taus, func(tt int) probeResult {
		return probeSync(grid, starts, pickups, drops, dropCaps, t, tt, opts)
	})
	if err != nil {
		return false, 0, nil, err
	}

	for i, r := range results {
		if r.err != nil {
			return false, 0, nil, r.err
		}
		if r.feasible {
			return true, i, r.paths, nil
		}
	}

	return false, 0, nil, nil
}

// syncLadder is candidateLadder's sync-model counterpart: 0, then the same
// exponential doubling 1, 2, 4, ... capped at tMax — T=0 is always worth
// trying first since a pickup-then-drop round can be instantaneous.
func syncLadder(tMax int) []int {
	if tMax <= 0 {
		return []int{0}
	}

	return append([]int{0}, candidateLadder(tMax)...)
}

// syncProbe closes over the batch size so every probe in a given runBatch
// call reports the same activeT to tryT, letting opts.tauWorkersPerT split
// workers across however many T's this batch is actually evaluating
// concurrently, per §4.6.
func syncProbe(ctx context.Context, grid *gridset.Grid, starts, pickups, drops []int, dropCaps []int, activeT int, opts Options, solveID string) func(int) probeResult {
	return func(tt int) probeResult {
		if ev := opts.logEventFor(solveID); ev != nil {
			ev.Int("t", tt).Msg("search: probing T, sweeping tau")
		}

		ok, tau, paths, err := tryT(ctx, grid, starts, pickups, drops, dropCaps, tt, activeT, opts)
		if err != nil {
			return probeResult{err: err}
		}

		return probeResult{feasible: ok, tau: tau, paths: paths}
	}
}

// MinTSync finds the minimum feasible (T, tau) pair for the synchronized
// two-stage model, ported in structure from original_source's
// search_min_T_sync: an exponential doubling ladder on T run as one
// concurrent batch (bounded by opts.TWorkers, mirroring MinTSingle's
// ladder), then — since feasibility in the joint (T, tau) space is not
// provably monotonic the way single-target T is — the bracketed gap is
// filled by checking every T in it rather than binary-searching, exactly
// mirroring the original's own choice not to binary-search here. That gap
// fill is itself run as one concurrent batch rather than a sequential scan,
// so opts.TWorkers — and the §4.6 worker-split formula it feeds — actually
// governs both phases. Returns t = -1 (not an error) when no T in
// [0, tMax] is feasible.
func MinTSync(
	ctx context.Context,
	grid *gridset.Grid,
	starts, pickups, drops []int,
	dropCaps []int,
	tMax int,
	opts Options,
) (t, tau int, paths [][]gridset.Cell, err error) {
	if len(starts) == 0 {
		return 0, 0, nil, nil
	}
	if tMax < 0 {
		return -1, -1, nil, nil
	}

	solveID := newSolveID()
	if ev := opts.logEventFor(solveID); ev != nil {
		ev.Int("agents", len(starts)).Int("t_max", tMax).Msg("search: starting sync minT/tau")
	}

	ladder := syncLadder(tMax)
	results, err := runBatch(ctx, opts.TWorkers, ladder, syncProbe(ctx, grid, starts, pickups, drops, dropCaps, len(ladder), opts, solveID))
	if err != nil {
		return 0, 0, nil, fmt.Errorf("search: %w", err)
	}

	feasibleIdx := -1
	for i, r := range results {
		if r.err != nil {
			return 0, 0, nil, r.err
		}
		if r.feasible {
			feasibleIdx = i

			break
		}
	}
	if feasibleIdx == -1 {
		if ev := opts.logEventFor(solveID); ev != nil {
			ev.Msg("search: no T in range is feasible")
		}

		return -1, -1, nil, nil
	}

	hi := ladder[feasibleIdx]
	lo := 0
	if feasibleIdx > 0 {
		lo = ladder[feasibleIdx-1] + 1
	}
	best := results[feasibleIdx]

	if lo >= hi {
		return hi, best.tau, best.paths, nil
	}

	return scanGap(ctx, grid, starts, pickups, drops, dropCaps, lo, hi, best, opts, solveID)
}

// scanGap fills [lo, hi) as one concurrent batch — every T in the gap is
// checked, none skipped, since feasibility here is not assumed monotonic —
// and returns the smallest feasible T found, falling back to hi's
// already-known-feasible (tau, paths) if the gap itself is entirely
// infeasible.
func scanGap(ctx context.Context, grid *gridset.Grid, starts, pickups, drops []int, dropCaps []int, lo, hi int, atHi probeResult, opts Options, solveID string) (int, int, [][]gridset.Cell, error) {
	gap := make([]int, 0, hi-lo)
	for tt := lo; tt < hi; tt++ {
		gap = append(gap, tt)
	}

	results, err := runBatch(ctx, opts.TWorkers, gap, syncProbe(ctx, grid, starts, pickups, drops, dropCaps, len(gap), opts, solveID))
	if err != nil {
		return 0, 0, nil, fmt.Errorf("search: %w", err)
	}

	for i, r := range results {
		if r.err != nil {
			return 0, 0, nil, r.err
		}
		if r.feasible {
			return gap[i], r.tau, r.paths, nil
		}
	}

	return hi, atHi.tau, atHi.paths, nil
}
