package mapfcore

import (
	"context"
	"fmt"

	"github.com/katalvlaran/mapfcore/gridset"
	"github.com/katalvlaran/mapfcore/maxflow"
	"github.com/katalvlaran/mapfcore/network"
	"github.com/katalvlaran/mapfcore/rotation"
	"github.com/katalvlaran/mapfcore/search"
)

// PlanFlow solves the single-target model at a fixed horizon t: one
// max-flow call over the time-expanded network, per §4.3/§6.
func PlanFlow(
	grid *gridset.Grid,
	starts, targets []Cell,
	caps []int,
	t int,
	reservedV []ReservedVertex,
	reservedE []ReservedEdge,
	method Method,
) (Result, error) {
	startIdx := cellsToIdx(grid, starts)
	if err := checkSharedStarts(startIdx, false); err != nil {
		return Result{}, err
	}
	targetIdx := cellsToIdx(grid, targets)

	g, source, sink, _, err := network.BuildSingleTarget(grid, startIdx, targetIdx, caps, t, reservedVMap(grid, reservedV), reservedEMap(grid, reservedE))
	if err != nil {
		return Result{}, wrapErr(err)
	}

	flow, err := maxflow.Solve(g, source, sink, method, maxflow.DefaultOptions())
	if err != nil {
		return Result{}, wrapErr(err)
	}
	if flow < len(starts) {
		return Result{Feasible: false}, nil
	}

	paths, err := network.Extract(grid, g, startIdx, t)
	if err != nil {
		return Result{}, wrapErr(err)
	}

	return Result{Feasible: true, Paths: paths}, nil
}

// PlanFlowSync solves the synchronized two-stage pickup-then-drop model
// at a fixed horizon t and common pickup time tau, per §4.3/§6.
func PlanFlowSync(
	grid *gridset.Grid,
	starts, pickups, drops []Cell,
	dropCaps []int,
	t, tau int,
	method Method,
) (Result, error) {
	startIdx := cellsToIdx(grid, starts)
	if err := checkSharedStarts(startIdx, false); err != nil {
		return Result{}, err
	}

	g, source, sink, _, err := network.BuildSync(grid, startIdx, cellsToIdx(grid, pickups), cellsToIdx(grid, drops), dropCaps, t, tau)
	if err != nil {
		return Result{}, wrapErr(err)
	}

	flow, err := maxflow.Solve(g, source, sink, method, maxflow.DefaultOptions())
	if err != nil {
		return Result{}, wrapErr(err)
	}
	if flow < len(starts) {
		return Result{Feasible: false}, nil
	}

	paths, err := network.Extract(grid, g, startIdx, t)
	if err != nil {
		return Result{}, wrapErr(err)
	}

	return Result{Feasible: true, Paths: paths}, nil
}

// PlanFlowRot solves the rotation-aware single-target model, per §4.5/§6.
func PlanFlowRot(
	grid *gridset.Grid,
	starts []Cell,
	startDirs []Direction,
	targets []Cell,
	caps []int,
	t int,
	reservedV []ReservedVertex,
	reservedE []ReservedEdge,
	method Method,
) (RotResult, error) {
	startIdx := cellsToIdx(grid, starts)
	if err := checkSharedStarts(startIdx, false); err != nil {
		return RotResult{}, err
	}
	targetIdx := cellsToIdx(grid, targets)

	g, source, sink, _, err := rotation.Build(grid, startIdx, startDirs, targetIdx, caps, t, reservedVMap(grid, reservedV), reservedEMap(grid, reservedE))
	if err != nil {
		return RotResult{}, wrapErr(err)
	}

	flow, err := maxflow.Solve(g, source, sink, method, maxflow.DefaultOptions())
	if err != nil {
		return RotResult{}, wrapErr(err)
	}
	if flow < len(starts) {
		return RotResult{Feasible: false}, nil
	}

	paths, dirs, err := rotation.Extract(grid, g, startIdx, startDirs, t)
	if err != nil {
		return RotResult{}, wrapErr(err)
	}

	return RotResult{Feasible: true, Paths: paths, PathDirs: dirs}, nil
}

func searchCtx(opts search.Options) (context.Context, context.CancelFunc) {
	if opts.Deadline.IsZero() {
		return context.Background(), func() {}
	}

	return context.WithDeadline(context.Background(), opts.Deadline)
}

// SearchMinT finds the minimum feasible horizon for the single-target
// model, per §4.6.
func SearchMinT(
	grid *gridset.Grid,
	starts, targets []Cell,
	caps []int,
	tMax int,
	reservedV []ReservedVertex,
	reservedE []ReservedEdge,
	opts search.Options,
) (SearchResult, error) {
	startIdx := cellsToIdx(grid, starts)
	if err := checkSharedStarts(startIdx, opts.AllowSharedStarts); err != nil {
		return SearchResult{}, err
	}

	ctx, cancel := searchCtx(opts)
	defer cancel()

	t, paths, err := search.MinTSingle(ctx, grid, startIdx, cellsToIdx(grid, targets), caps, tMax, reservedVMap(grid, reservedV), reservedEMap(grid, reservedE), opts)
	if err != nil {
		return SearchResult{}, wrapErr(err)
	}
	if t < 0 {
		return SearchResult{T: -1}, nil
	}

	return SearchResult{T: t, Feasible: true, Paths: paths}, nil
}

// SearchMinTSync finds the minimum feasible (T, tau) pair for the
// synchronized model, per §4.6.
func SearchMinTSync(
	grid *gridset.Grid,
	starts, pickups, drops []Cell,
	dropCaps []int,
	tMax int,
	opts search.Options,
) (SyncSearchResult, error) {
	startIdx := cellsToIdx(grid, starts)
	if err := checkSharedStarts(startIdx, opts.AllowSharedStarts); err != nil {
		return SyncSearchResult{}, err
	}

	ctx, cancel := searchCtx(opts)
	defer cancel()

	t, tau, paths, err := search.MinTSync(ctx, grid, startIdx, cellsToIdx(grid, pickups), cellsToIdx(grid, drops), dropCaps, tMax, opts)
	if err != nil {
		return SyncSearchResult{}, wrapErr(err)
	}
	if t < 0 {
		return SyncSearchResult{T: -1, Tau: -1}, nil
	}

	return SyncSearchResult{T: t, Tau: tau, Feasible: true, Paths: paths}, nil
}

// PlanRound mirrors original_source's plan_round: SearchMinT with the
// two-phase loaded/empty ordering of §4.6 layered on top.
func PlanRound(
	grid *gridset.Grid,
	starts []Cell,
	states []AgentState,
	pickups, drops []Cell,
	dropCaps []int,
	tMax int,
	opts search.Options,
) (SearchResult, error) {
	startIdx := cellsToIdx(grid, starts)
	if err := checkSharedStarts(startIdx, opts.AllowSharedStarts); err != nil {
		return SearchResult{}, err
	}

	ctx, cancel := searchCtx(opts)
	defer cancel()

	t, paths, err := search.SearchRound(ctx, grid, startIdx, states, cellsToIdx(grid, pickups), cellsToIdx(grid, drops), dropCaps, tMax, opts)
	if err != nil {
		return SearchResult{}, wrapErr(err)
	}
	if t < 0 {
		return SearchResult{T: -1}, nil
	}

	return SearchResult{T: t, Feasible: true, Paths: paths}, nil
}

// PlanRoundSync mirrors original_source's plan_round_sync, including its
// guard that the fleet cannot outnumber the drop cells.
func PlanRoundSync(
	grid *gridset.Grid,
	starts []Cell,
	pickups, drops []Cell,
	dropCaps []int,
	tMax int,
	opts search.Options,
) (SyncSearchResult, error) {
	if len(drops) < len(starts) {
		return SyncSearchResult{}, fmt.Errorf("%w: sync model requires drops >= agents (drops=%d, agents=%d)", ErrInvalidInput, len(drops), len(starts))
	}

	return SearchMinTSync(grid, starts, pickups, drops, dropCaps, tMax, opts)
}
