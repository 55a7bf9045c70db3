package network_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/mapfcore/gridset"
	"github.com/katalvlaran/mapfcore/maxflow"
	"github.com/katalvlaran/mapfcore/network"
)

func row3(t *testing.T) *gridset.Grid {
	t.Helper()
	g, err := gridset.New([][]int{{0, 0, 0}})
	require.NoError(t, err)

	return g
}

// S1 — 3-cell row, single agent, T=2: feasible, path (0,0)->(1,0)->(2,0).
func TestBuildSingleTarget_S1_SimpleRow(t *testing.T) {
	g := row3(t)
	start := g.Index(0, 0)
	target := g.Index(2, 0)

	fg, source, sink, _, err := network.BuildSingleTarget(g, []int{start}, []int{target}, []int{1}, 2, nil, nil)
	require.NoError(t, err)

	flow, err := maxflow.Solve(fg, source, sink, maxflow.MethodDinic, maxflow.DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, 1, flow)

	paths, err := network.Extract(g, fg, []int{start}, 2)
	require.NoError(t, err)
	require.Equal(t, []gridset.Cell{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}}, paths[0])
}

// S2 — head-on on 3 cells: T=2 must be infeasible (no room to pass without
// an illegal swap), T=4 feasible.
func TestBuildSingleTarget_S2_HeadOn(t *testing.T) {
	g := row3(t)
	starts := []int{g.Index(0, 0), g.Index(2, 0)}
	targets := []int{g.Index(2, 0), g.Index(0, 0)}
	caps := []int{1, 1}

	fg, source, sink, _, err := network.BuildSingleTarget(g, starts, targets, caps, 2, nil, nil)
	require.NoError(t, err)
	flow, err := maxflow.Solve(fg, source, sink, maxflow.MethodDinic, maxflow.DefaultOptions())
	require.NoError(t, err)
	require.Less(t, flow, 2, "T=2 must not admit a full head-on swap")

	fg4, source4, sink4, _, err := network.BuildSingleTarget(g, starts, targets, caps, 4, nil, nil)
	require.NoError(t, err)
	flow4, err := maxflow.Solve(fg4, source4, sink4, maxflow.MethodDinic, maxflow.DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, 2, flow4)

	paths, err := network.Extract(g, fg4, starts, 4)
	require.NoError(t, err)
	require.Len(t, paths, 2)
	for tt := 0; tt <= 4; tt++ {
		require.NotEqual(t, paths[0][tt], paths[1][tt], "vertex collision at t=%d", tt)
	}
}

// S5 — a reserved vertex at (1,0),t=1 forces a wait: T=2 infeasible, T=3
// feasible via waiting at (0,0) for one step.
func TestBuildSingleTarget_S5_ReservationForcesWait(t *testing.T) {
	g := row3(t)
	start := g.Index(0, 0)
	target := g.Index(2, 0)
	reservedV := map[int64]struct{}{
		network.ReservedVertexKey(1, g.Index(1, 0)): {},
	}

	fg2, source2, sink2, _, err := network.BuildSingleTarget(g, []int{start}, []int{target}, []int{1}, 2, reservedV, nil)
	require.NoError(t, err)
	flow2, err := maxflow.Solve(fg2, source2, sink2, maxflow.MethodDinic, maxflow.DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, 0, flow2)

	fg3, source3, sink3, _, err := network.BuildSingleTarget(g, []int{start}, []int{target}, []int{1}, 3, reservedV, nil)
	require.NoError(t, err)
	flow3, err := maxflow.Solve(fg3, source3, sink3, maxflow.MethodDinic, maxflow.DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, 1, flow3)

	paths, err := network.Extract(g, fg3, []int{start}, 3)
	require.NoError(t, err)
	require.Equal(t, gridset.Cell{X: 0, Y: 0}, paths[0][0])
	require.Equal(t, gridset.Cell{X: 0, Y: 0}, paths[0][1], "agent must wait one step")
	require.Equal(t, gridset.Cell{X: 2, Y: 0}, paths[0][3])
}

// S4 — two-stage symmetric, 2x2 grid, minimum (T, tau) = (2, 1).
func TestBuildSync_S4_TwoStageSymmetric(t *testing.T) {
	g, err := gridset.New([][]int{{0, 0}, {0, 0}})
	require.NoError(t, err)

	starts := []int{g.Index(0, 0), g.Index(1, 0)}
	pickups := []int{g.Index(0, 1), g.Index(1, 1)}
	drops := []int{g.Index(0, 0), g.Index(1, 0)}
	dropCaps := []int{1, 1}

	fg, source, sink, _, err := network.BuildSync(g, starts, pickups, drops, dropCaps, 2, 1)
	require.NoError(t, err)

	flow, err := maxflow.Solve(fg, source, sink, maxflow.MethodDinic, maxflow.DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, 2, flow)

	paths, err := network.Extract(g, fg, starts, 2)
	require.NoError(t, err)
	for i, p := range paths {
		require.Contains(t, pickups, p[1].Idx(g), "agent %d must be at a pickup cell at tau=1", i)
		require.Contains(t, drops, p[2].Idx(g), "agent %d must end at a drop cell", i)
	}
}

// Below tau, the minimum horizon is infeasible: T=1 gives no time to reach
// a pickup cell and return to a drop cell.
func TestBuildSync_S4_TooShortIsInfeasible(t *testing.T) {
	g, err := gridset.New([][]int{{0, 0}, {0, 0}})
	require.NoError(t, err)

	starts := []int{g.Index(0, 0), g.Index(1, 0)}
	pickups := []int{g.Index(0, 1), g.Index(1, 1)}
	drops := []int{g.Index(0, 0), g.Index(1, 0)}
	dropCaps := []int{1, 1}

	fg, source, sink, _, err := network.BuildSync(g, starts, pickups, drops, dropCaps, 1, 1)
	require.NoError(t, err)
	flow, err := maxflow.Solve(fg, source, sink, maxflow.MethodDinic, maxflow.DefaultOptions())
	require.NoError(t, err)
	require.Less(t, flow, 2)
}

func TestBuildSingleTarget_InvalidInput(t *testing.T) {
	g := row3(t)
	_, _, _, _, err := network.BuildSingleTarget(g, []int{g.Index(0, 0)}, []int{99}, []int{1}, 2, nil, nil)
	require.ErrorIs(t, err, network.ErrInvalidInput)

	_, _, _, _, err = network.BuildSingleTarget(g, []int{g.Index(0, 0)}, []int{g.Index(2, 0)}, []int{-1}, 2, nil, nil)
	require.ErrorIs(t, err, network.ErrInvalidInput)
}

// A reservation that collides with an agent's own start position at t=0 is
// invalid input, per spec.md §7 — never a generic infeasible result.
func TestBuildSingleTarget_ReservationConflictAtStart(t *testing.T) {
	g := row3(t)
	start := g.Index(0, 0)
	reservedV := map[int64]struct{}{
		network.ReservedVertexKey(0, start): {},
	}

	_, _, _, _, err := network.BuildSingleTarget(g, []int{start}, []int{g.Index(2, 0)}, []int{1}, 2, reservedV, nil)
	require.ErrorIs(t, err, network.ErrReservationConflict)
}

// A start cell that isn't itself a pickup can never occupy its own node at
// tau=0 once BuildSync zeroes every non-pickup occupancy arc at that layer
// — the same defect class as TestBuildSingleTarget_ReservationConflictAtStart,
// just self-generated rather than caller-supplied.
func TestBuildSync_ReservationConflictAtZeroTau(t *testing.T) {
	g, err := gridset.New([][]int{{0, 0}, {0, 0}})
	require.NoError(t, err)

	starts := []int{g.Index(0, 0), g.Index(1, 0)}
	pickups := []int{g.Index(0, 1), g.Index(1, 1)}
	drops := []int{g.Index(0, 0), g.Index(1, 0)}
	dropCaps := []int{1, 1}

	_, _, _, _, err = network.BuildSync(g, starts, pickups, drops, dropCaps, 2, 0)
	require.ErrorIs(t, err, network.ErrReservationConflict)
}
