package diagnose

import (
	"context"
	"sort"

	"github.com/katalvlaran/mapfcore/gridset"
	"github.com/katalvlaran/mapfcore/search"
)

// Report is the structured diagnosis of a failing instance, fields named
// to match original_source's planner.explain_infeasible return dict.
type Report struct {
	LoadedFirst       string // "ok" or the stage that failed
	EmptyFirst        string
	LoadedOnly        string // "ok" or "infeasible"
	EmptyOnly         string
	UnreachableStarts []int // starts with no path to any pickup
	ReachablePickups  []int
	TauMin            int // lower bound on tau: max over starts of distance to the nearest pickup
	MinDropNeeded     int // fewest drop cells whose summed capacity covers every agent
}

// Explain runs both orderings and the loaded-only/empty-only sub-problems
// at horizon t and reports why each one did or didn't work, plus
// reachability-derived bounds. Diagnostics are advisory: callers must
// never let this change the planning answer (§7).
func Explain(
	ctx context.Context,
	grid *gridset.Grid,
	starts []int,
	states []search.AgentState,
	pickups, drops []int,
	dropCaps []int,
	t int,
	opts search.Options,
) Report {
	var loadedStarts, emptyStarts []int
	for i, st := range starts {
		if states[i] == search.Loaded {
			loadedStarts = append(loadedStarts, st)
		} else {
			emptyStarts = append(emptyStarts, st)
		}
	}

	rpt := Report{}

	rpt.LoadedOnly = subgroupStatus(ctx, grid, loadedStarts, drops, dropCaps, t, opts)
	rpt.EmptyOnly = subgroupStatus(ctx, grid, emptyStarts, pickups, ones(len(pickups)), t, opts)

	okL, _, reasonL, err := search.PlanWithOrder(ctx, grid, starts, states, pickups, drops, dropCaps, t, true, opts)
	rpt.LoadedFirst = orderStatus(okL, reasonL, err)
	okE, _, reasonE, err := search.PlanWithOrder(ctx, grid, starts, states, pickups, drops, dropCaps, t, false, opts)
	rpt.EmptyFirst = orderStatus(okE, reasonE, err)

	distFromPickups := grid.MultiSourceBFS(pickups)
	for _, s := range starts {
		if distFromPickups[s] == -1 {
			rpt.UnreachableStarts = append(rpt.UnreachableStarts, s)
		}
	}

	distFromStarts := grid.MultiSourceBFS(starts)
	for _, p := range pickups {
		if distFromStarts[p] != -1 {
			rpt.ReachablePickups = append(rpt.ReachablePickups, p)
		}
	}

	rpt.TauMin = tauMin(grid, starts, pickups)
	rpt.MinDropNeeded = minDropNeeded(len(starts), dropCaps)

	return rpt
}

func subgroupStatus(ctx context.Context, grid *gridset.Grid, group []int, targets []int, caps []int, t int, opts search.Options) string {
	if len(group) == 0 {
		return "ok"
	}
	tt, _, err := search.MinTSingle(ctx, grid, group, targets, caps, t, nil, nil, opts)
	if err != nil || tt < 0 {
		return "infeasible"
	}

	return "ok"
}

func orderStatus(ok bool, reason string, err error) string {
	if err != nil {
		return "error"
	}
	if ok {
		return "ok"
	}

	return reason
}

// tauMin is the smallest tau at which every start could in principle have
// reached some pickup: the max, over starts, of the shortest grid distance
// to any pickup cell. An unreachable start makes this unbounded (-1).
func tauMin(grid *gridset.Grid, starts, pickups []int) int {
	distFromPickups := grid.MultiSourceBFS(pickups)
	best := 0
	for _, s := range starts {
		d := distFromPickups[s]
		if d == -1 {
			return -1
		}
		if d > best {
			best = d
		}
	}

	return best
}

// minDropNeeded is the fewest drop cells, taken highest-capacity first,
// whose summed capacity reaches the agent count.
func minDropNeeded(numAgents int, dropCaps []int) int {
	caps := append([]int(nil), dropCaps...)
	sort.Sort(sort.Reverse(sort.IntSlice(caps)))

	total, count := 0, 0
	for _, c := range caps {
		if total >= numAgents {
			break
		}
		total += c
		count++
	}

	return count
}

func ones(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = 1
	}

	return out
}
