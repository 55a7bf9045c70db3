package search

import (
	"context"
	"fmt"

	"github.com/katalvlaran/mapfcore/gridset"
)

// AgentState distinguishes loaded (carrying a payload, heading to a drop)
// from empty (heading to a pickup) agents for the two-phase ordering
// below, matching original_source's RobotState.state ("Loaded"/"Empty").
type AgentState int

const (
	Empty AgentState = iota
	Loaded
)

// PlanWithOrder runs the two-phase loaded/empty ordering of §4.6: plan
// whichever phase goes first with no reservations, then plan the second
// phase reserving every cell/edge the first phase's paths used. Ported in
// structure from original_source's planner._plan_with_order.
//
// starts/states/pickups/drops/dropCaps describe the whole fleet; agents
// with Loaded state target drops, agents with Empty state target pickups.
// Returns ok=false with a reason string (never an error) when a phase is
// infeasible at the given horizon t.
func PlanWithOrder(
	ctx context.Context,
	grid *gridset.Grid,
	starts []int,
	states []AgentState,
	pickups, drops []int,
	dropCaps []int,
	t int,
	firstLoaded bool,
	opts Options,
) (ok bool, pathsByAgent [][]gridset.Cell, reason string, err error) {
	if len(starts) != len(states) {
		return false, nil, "", fmt.Errorf("%w: starts/states length mismatch", ErrInvalidInput)
	}

	var loadedIdx, emptyIdx []int
	for i, st := range states {
		if st == Loaded {
			loadedIdx = append(loadedIdx, i)
		} else {
			emptyIdx = append(emptyIdx, i)
		}
	}

	planLoaded := func(reservedV, reservedE map[int64]struct{}) (bool, [][]gridset.Cell, error) {
		if len(loadedIdx) == 0 {
			return true, nil, nil
		}
		loadedStarts := pick(starts, loadedIdx)
		tt, paths, err := MinTSingle(ctx, grid, loadedStarts, drops, dropCaps, t, reservedV, reservedE, opts)
		if err != nil {
			return false, nil, err
		}

		return tt >= 0 && tt <= t, paths, nil
	}

	planEmpty := func(reservedV, reservedE map[int64]struct{}) (bool, [][]gridset.Cell, error) {
		if len(emptyIdx) == 0 {
			return true, nil, nil
		}
		emptyStarts := pick(starts, emptyIdx)
		caps := ones(len(pickups))
		tt, paths, err := MinTSingle(ctx, grid, emptyStarts, pickups, caps, t, reservedV, reservedE, opts)
		if err != nil {
			return false, nil, err
		}

		return tt >= 0 && tt <= t, paths, nil
	}

	pathsByAgent = make([][]gridset.Cell, len(starts))

	if firstLoaded {
		okL, pathsLoaded, err := planLoaded(nil, nil)
		if err != nil {
			return false, nil, "", err
		}
		if !okL {
			return false, nil, "loaded_stage_infeasible", nil
		}
		resV := BuildReservedVertices(grid, pathsLoaded)
		resE := BuildReservedEdges(grid, pathsLoaded)
		okE, pathsEmpty, err := planEmpty(resV, resE)
		if err != nil {
			return false, nil, "", err
		}
		if !okE {
			return false, nil, "empty_stage_infeasible", nil
		}
		assign(pathsByAgent, loadedIdx, pathsLoaded)
		assign(pathsByAgent, emptyIdx, pathsEmpty)
	} else {
		okE, pathsEmpty, err := planEmpty(nil, nil)
		if err != nil {
			return false, nil, "", err
		}
		if !okE {
			return false, nil, "empty_stage_infeasible", nil
		}
		resV := BuildReservedVertices(grid, pathsEmpty)
		resE := BuildReservedEdges(grid, pathsEmpty)
		okL, pathsLoaded, err := planLoaded(resV, resE)
		if err != nil {
			return false, nil, "", err
		}
		if !okL {
			return false, nil, "loaded_stage_infeasible", nil
		}
		assign(pathsByAgent, loadedIdx, pathsLoaded)
		assign(pathsByAgent, emptyIdx, pathsEmpty)
	}

	return true, pathsByAgent, "", nil
}

// Round tries loaded-first then empty-first ordering at a fixed horizon T,
// mirroring original_source's search_min_T's try_T closure.
func Round(ctx context.Context, grid *gridset.Grid, starts []int, states []AgentState, pickups, drops []int, dropCaps []int, t int, opts Options) (bool, [][]gridset.Cell, error) {
	ok, paths, _, err := PlanWithOrder(ctx, grid, starts, states, pickups, drops, dropCaps, t, true, opts)
	if err != nil {
		return false, nil, err
	}
	if ok {
		return true, paths, nil
	}

	return PlanWithOrder2(ctx, grid, starts, states, pickups, drops, dropCaps, t, opts)
}

// PlanWithOrder2 is the empty-first fallback Round uses; kept as a named
// step (rather than an inline second call) so a caller tracing a failed
// Round can see both attempts symmetrically.
func PlanWithOrder2(ctx context.Context, grid *gridset.Grid, starts []int, states []AgentState, pickups, drops []int, dropCaps []int, t int, opts Options) (bool, [][]gridset.Cell, error) {
	ok, paths, _, err := PlanWithOrder(ctx, grid, starts, states, pickups, drops, dropCaps, t, false, opts)

	return ok, paths, err
}

// SearchRound runs the exponential-probe-then-binary-search makespan
// driver using Round's two-phase ordering as the per-T feasibility check,
// mirroring original_source's search_min_T/plan_round. Returns t = -1 when
// no T in [0, tMax] admits either ordering.
func SearchRound(ctx context.Context, grid *gridset.Grid, starts []int, states []AgentState, pickups, drops []int, dropCaps []int, tMax int, opts Options) (int, [][]gridset.Cell, error) {
	if len(starts) == 0 {
		return 0, nil, nil
	}
	if tMax < 0 {
		return -1, nil, nil
	}

	try := func(tt int) (bool, [][]gridset.Cell, error) {
		return Round(ctx, grid, starts, states, pickups, drops, dropCaps, tt, opts)
	}

	ladder := candidateLadder(tMax)
	feasibleAt := -1
	var best [][]gridset.Cell
	for i, tt := range ladder {
		ok, paths, err := try(tt)
		if err != nil {
			return 0, nil, err
		}
		if ok {
			feasibleAt = i
			best = paths

			break
		}
	}
	if feasibleAt == -1 {
		return -1, nil, nil
	}

	hi := ladder[feasibleAt]
	lo := 0
	if feasibleAt > 0 {
		lo = ladder[feasibleAt-1] + 1
	}

	for lo < hi {
		mid := (lo + hi) / 2
		ok, paths, err := try(mid)
		if err != nil {
			return 0, nil, err
		}
		if ok {
			hi = mid
			best = paths
		} else {
			lo = mid + 1
		}
	}

	return hi, best, nil
}

func pick(all []int, idx []int) []int {
	out := make([]int, len(idx))
	for i, j := range idx {
		out[i] = all[j]
	}

	return out
}

func assign(dst [][]gridset.Cell, idx []int, paths [][]gridset.Cell) {
	for i, j := range idx {
		dst[j] = paths[i]
	}
}

func ones(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = 1
	}

	return out
}
