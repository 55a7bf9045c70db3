package search

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/katalvlaran/mapfcore/gridset"
	"github.com/katalvlaran/mapfcore/maxflow"
	"github.com/katalvlaran/mapfcore/network"
)

// probeResult is one candidate-T outcome, collected into an index-addressed
// slice so the batch's answer never depends on goroutine completion order.
// tau is only meaningful for the synchronized model's probes (syncSearch.go);
// single-target probes leave it zero.
type probeResult struct {
	feasible bool
	tau      int
	paths    [][]gridset.Cell
	err      error
}

func probeSingle(grid *gridset.Grid, starts, targets []int, caps []int, t int, reservedV, reservedE map[int64]struct{}, opts Options) probeResult {
	g, source, sink, _, err := network.BuildSingleTarget(grid, starts, targets, caps, t, reservedV, reservedE)
	if err != nil {
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

	return probeResult{feasible: true, paths: paths}
}

// candidateLadder returns the fixed, result-independent exponential
// sequence 1, 2, 4, ... capped at tMax, used so a batch of probes can run
// concurrently without depending on each other's outcome.
func candidateLadder(tMax int) []int {
	if tMax < 1 {
		return []int{tMax}
	}

	var out []int
	for c := 1; c < tMax; c *= 2 {
		out = append(out, c)
	}

	return append(out, tMax)
}

// runBatch probes every candidate in ts concurrently (bounded by workers)
// and returns one probeResult per candidate, same order as ts.
func runBatch(ctx context.Context, workers int, ts []int, probe func(int) probeResult) ([]probeResult, error) {
	results := make([]probeResult, len(ts))
	if workers < 1 {
		workers = 1
	}

	grp, gctx := errgroup.WithContext(ctx)
	sem := semaphore.NewWeighted(int64(workers))
	for i, t := range ts {
		i, t := i, t
		grp.Go(func() error {
			if err := sem.Acquire(gctx, 1); err != nil {
				return err
			}
			defer sem.Release(1)
			results[i] = probe(t)

			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

// MinTSingle finds the minimum feasible horizon T in [0, tMax] for the
// single-target model, per §4.6: an exponential probe run as one
// concurrent batch (bounded by opts.TWorkers) brackets the answer, then a
// sequential binary-search refinement pins it down exactly. Returns
// t = -1 (not an error) when no T in [0, tMax] is feasible.
func MinTSingle(
	ctx context.Context,
	grid *gridset.Grid,
	starts, targets []int,
	caps []int,
	tMax int,
	reservedV, reservedE map[int64]struct{},
	opts Options,
) (t int, paths [][]gridset.Cell, err error) {
	if len(starts) == 0 {
		return 0, nil, nil
	}
	if tMax < 0 {
		return -1, nil, nil
	}

	solveID := newSolveID()
	if ev := opts.logEventFor(solveID); ev != nil {
		ev.Int("agents", len(starts)).Int("t_max", tMax).Msg("search: starting single-target minT")
	}

	probe := func(tt int) probeResult {
		if ev := opts.logEventFor(solveID); ev != nil {
			ev.Int("t", tt).Msg("search: probing T")
		}

		return probeSingle(grid, starts, targets, caps, tt, reservedV, reservedE, opts)
	}

	ladder := candidateLadder(tMax)
	results, err := runBatch(ctx, opts.TWorkers, ladder, probe)
	if err != nil {
		return 0, nil, fmt.Errorf("search: %w", err)
	}

	feasibleIdx := -1
	for i, r := range results {
		if r.err != nil {
			return 0, nil, r.err
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

		return -1, nil, nil
	}

	hi := ladder[feasibleIdx]
	lo := 0
	if feasibleIdx > 0 {
		lo = ladder[feasibleIdx-1] + 1
	}
	best := results[feasibleIdx].paths

	for lo < hi {
		mid := (lo + hi) / 2
		r := probe(mid)
		if r.err != nil {
			return 0, nil, r.err
		}
		if r.feasible {
			hi = mid
			best = r.paths
		} else {
			lo = mid + 1
		}
	}

	return hi, best, nil
}
