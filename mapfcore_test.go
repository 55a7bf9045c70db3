package mapfcore_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/mapfcore"
	"github.com/katalvlaran/mapfcore/gridset"
	"github.com/katalvlaran/mapfcore/search"
)

func row3(t *testing.T) *gridset.Grid {
	t.Helper()
	g, err := gridset.New([][]int{{0, 0, 0}})
	require.NoError(t, err)

	return g
}

// S1 — 3-cell row, single agent, T=2.
func TestS1_SimpleRow(t *testing.T) {
	g := row3(t)
	res, err := mapfcore.PlanFlow(g, []mapfcore.Cell{{X: 0, Y: 0}}, []mapfcore.Cell{{X: 2, Y: 0}}, []int{1}, 2, nil, nil, mapfcore.MethodDinic)
	require.NoError(t, err)
	require.True(t, res.Feasible)
	require.Equal(t, []mapfcore.Cell{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}}, res.Paths[0])
}

// S2 — head-on on 3 cells: T=2 infeasible, T=4 feasible.
func TestS2_HeadOn(t *testing.T) {
	g := row3(t)
	starts := []mapfcore.Cell{{X: 0, Y: 0}, {X: 2, Y: 0}}
	targets := []mapfcore.Cell{{X: 2, Y: 0}, {X: 0, Y: 0}}
	caps := []int{1, 1}

	res2, err := mapfcore.PlanFlow(g, starts, targets, caps, 2, nil, nil, mapfcore.MethodDinic)
	require.NoError(t, err)
	require.False(t, res2.Feasible, "T=2 must not admit a full head-on swap")

	res4, err := mapfcore.PlanFlow(g, starts, targets, caps, 4, nil, nil, mapfcore.MethodDinic)
	require.NoError(t, err)
	require.True(t, res4.Feasible)
	for tt := 0; tt <= 4; tt++ {
		require.NotEqual(t, res4.Paths[0][tt], res4.Paths[1][tt], "vertex collision at t=%d", tt)
	}
}

// S3 — rotation on a 3-cell row: facing WEST, T=3 infeasible, T=4 feasible.
func TestS3_Rotation(t *testing.T) {
	g := row3(t)
	starts := []mapfcore.Cell{{X: 0, Y: 0}}
	targets := []mapfcore.Cell{{X: 2, Y: 0}}
	dirs := []mapfcore.Direction{mapfcore.West}

	res3, err := mapfcore.PlanFlowRot(g, starts, dirs, targets, []int{1}, 3, nil, nil, mapfcore.MethodDinic)
	require.NoError(t, err)
	require.False(t, res3.Feasible, "T=3 leaves no room for a 180 degree reorientation plus two moves")

	res4, err := mapfcore.PlanFlowRot(g, starts, dirs, targets, []int{1}, 4, nil, nil, mapfcore.MethodDinic)
	require.NoError(t, err)
	require.True(t, res4.Feasible)
	require.Equal(t, mapfcore.Cell{X: 2, Y: 0}, res4.Paths[0][4])
}

// S4 — two-stage symmetric, 2x2 grid, minimum (T, tau) = (2, 1).
func TestS4_TwoStageSymmetric(t *testing.T) {
	g, err := gridset.New([][]int{{0, 0}, {0, 0}})
	require.NoError(t, err)

	starts := []mapfcore.Cell{{X: 0, Y: 0}, {X: 1, Y: 0}}
	pickups := []mapfcore.Cell{{X: 0, Y: 1}, {X: 1, Y: 1}}
	drops := []mapfcore.Cell{{X: 0, Y: 0}, {X: 1, Y: 0}}
	dropCaps := []int{1, 1}

	res, err := mapfcore.PlanFlowSync(g, starts, pickups, drops, dropCaps, 2, 1, mapfcore.MethodDinic)
	require.NoError(t, err)
	require.True(t, res.Feasible)
	for i, p := range res.Paths {
		require.Contains(t, pickups, p[1], "agent %d must be at a pickup cell at tau=1", i)
		require.Contains(t, drops, p[2], "agent %d must end at a drop cell", i)
	}

	sres, err := mapfcore.SearchMinTSync(g, starts, pickups, drops, dropCaps, 6, search.Options{})
	require.NoError(t, err)
	require.True(t, sres.Feasible)
	require.Equal(t, 2, sres.T)
	require.Equal(t, 1, sres.Tau)
}

// S5 — a reserved vertex forces a wait: T=2 infeasible, T=3 feasible.
func TestS5_ReservationForcesWait(t *testing.T) {
	g := row3(t)
	starts := []mapfcore.Cell{{X: 0, Y: 0}}
	targets := []mapfcore.Cell{{X: 2, Y: 0}}
	reservedV := []mapfcore.ReservedVertex{{X: 1, Y: 0, T: 1}}

	res2, err := mapfcore.PlanFlow(g, starts, targets, []int{1}, 2, reservedV, nil, mapfcore.MethodDinic)
	require.NoError(t, err)
	require.False(t, res2.Feasible)

	res3, err := mapfcore.PlanFlow(g, starts, targets, []int{1}, 3, reservedV, nil, mapfcore.MethodDinic)
	require.NoError(t, err)
	require.True(t, res3.Feasible)
	require.Equal(t, mapfcore.Cell{X: 0, Y: 0}, res3.Paths[0][0])
	require.Equal(t, mapfcore.Cell{X: 0, Y: 0}, res3.Paths[0][1], "agent must wait one step")
	require.Equal(t, mapfcore.Cell{X: 2, Y: 0}, res3.Paths[0][3])
}

// S6 — obstacle detour on a 4x4 grid with a centered 2x2 blocked square.
func TestS6_ObstacleDetour(t *testing.T) {
	rows := [][]int{
		{0, 0, 0, 0},
		{0, 1, 1, 0},
		{0, 1, 1, 0},
		{0, 0, 0, 0},
	}
	g, err := gridset.New(rows)
	require.NoError(t, err)

	starts := []mapfcore.Cell{{X: 0, Y: 0}, {X: 3, Y: 0}}
	targets := []mapfcore.Cell{{X: 0, Y: 3}, {X: 3, Y: 3}}
	caps := []int{1, 1}

	sr, err := mapfcore.SearchMinT(g, starts, targets, caps, 6, nil, nil, search.Options{})
	require.NoError(t, err)
	require.True(t, sr.Feasible)
	require.LessOrEqual(t, sr.T, 6)

	assertP1P3(t, g, sr.Paths, targets, caps)
}

// assertP1P3 checks the universal no-vertex-conflict, no-edge-conflict and
// unit-step invariants against a returned plan.
func assertP1P3(t *testing.T, g *gridset.Grid, paths []([]mapfcore.Cell), targets []mapfcore.Cell, caps []int) {
	t.Helper()
	if len(paths) == 0 {
		return
	}
	tLen := len(paths[0])

	for tt := 0; tt < tLen; tt++ {
		occupant := make(map[mapfcore.Cell]int)
		for i, p := range paths {
			occupant[p[tt]]++
			if tt+1 < tLen {
				dx := p[tt+1].X - p[tt].X
				dy := p[tt+1].Y - p[tt].Y
				require.LessOrEqual(t, abs(dx)+abs(dy), 1, "agent %d takes a non-unit step at t=%d", i, tt)
				require.True(t, g.Passable(p[tt+1].X, p[tt+1].Y))
			}
		}
		for c, n := range occupant {
			if tt == tLen-1 && contains(targets, c) {
				continue // capacity bound applies only at the final layer
			}
			require.LessOrEqualf(t, n, 1, "cell %v over-occupied at t=%d", c, tt)
		}
	}

	for tt := 0; tt+1 < tLen; tt++ {
		for i := range paths {
			for j := range paths {
				if i == j {
					continue
				}
				swapped := paths[i][tt] == paths[j][tt+1] && paths[j][tt] == paths[i][tt+1] && paths[i][tt] != paths[j][tt]
				require.False(t, swapped, "edge swap between agents %d and %d at t=%d", i, j, tt)
			}
		}
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}

	return n
}

func contains(cells []mapfcore.Cell, c mapfcore.Cell) bool {
	for _, x := range cells {
		if x == c {
			return true
		}
	}

	return false
}

// P5 — minimality: T*-1 must be infeasible when T* exceeds the lower bound.
func TestP5_Minimality(t *testing.T) {
	g := row3(t)
	starts := []mapfcore.Cell{{X: 0, Y: 0}}
	targets := []mapfcore.Cell{{X: 2, Y: 0}}

	sr, err := mapfcore.SearchMinT(g, starts, targets, []int{1}, 5, nil, nil, search.Options{})
	require.NoError(t, err)
	require.True(t, sr.Feasible)
	require.Equal(t, 2, sr.T)

	below, err := mapfcore.PlanFlow(g, starts, targets, []int{1}, sr.T-1, nil, nil, mapfcore.MethodDinic)
	require.NoError(t, err)
	require.False(t, below.Feasible)
}

// P6 — parallel equivalence: raising TWorkers/TauWorkers must not change the
// (T, feasibility) answer.
func TestP6_ParallelEquivalence(t *testing.T) {
	g := row3(t)
	starts := []mapfcore.Cell{{X: 0, Y: 0}, {X: 2, Y: 0}}
	targets := []mapfcore.Cell{{X: 2, Y: 0}, {X: 0, Y: 0}}
	caps := []int{1, 1}

	serial, err := mapfcore.SearchMinT(g, starts, targets, caps, 8, nil, nil, search.Options{TWorkers: 1})
	require.NoError(t, err)

	parallel, err := mapfcore.SearchMinT(g, starts, targets, caps, 8, nil, nil, search.Options{TWorkers: 4})
	require.NoError(t, err)

	require.Equal(t, serial.Feasible, parallel.Feasible)
	require.Equal(t, serial.T, parallel.T)
}

// P6b — same contract as P6 but for the synchronized two-stage driver:
// SearchMinTSync's answer must not depend on TWorkers, now that its T
// candidates are genuinely probed as a concurrent batch.
func TestP6b_ParallelEquivalenceSync(t *testing.T) {
	g, err := gridset.New([][]int{{0, 0}, {0, 0}})
	require.NoError(t, err)

	starts := []mapfcore.Cell{{X: 0, Y: 0}, {X: 1, Y: 0}}
	pickups := []mapfcore.Cell{{X: 0, Y: 1}, {X: 1, Y: 1}}
	drops := []mapfcore.Cell{{X: 0, Y: 0}, {X: 1, Y: 0}}
	dropCaps := []int{1, 1}

	serial, err := mapfcore.SearchMinTSync(g, starts, pickups, drops, dropCaps, 6, search.Options{TWorkers: 1})
	require.NoError(t, err)

	parallel, err := mapfcore.SearchMinTSync(g, starts, pickups, drops, dropCaps, 6, search.Options{TWorkers: 4})
	require.NoError(t, err)

	require.Equal(t, serial.Feasible, parallel.Feasible)
	require.Equal(t, serial.T, parallel.T)
	require.Equal(t, serial.Tau, parallel.Tau)
}

// P7 — rotation cost: a plan of length T exists iff T is at least the
// rotation-aware shortest time; probed directly via PlanFlowRot since the
// facade has no standalone ShortestTimeWithRotation.
func TestP7_RotationCost(t *testing.T) {
	g := row3(t)
	starts := []mapfcore.Cell{{X: 0, Y: 0}}
	targets := []mapfcore.Cell{{X: 2, Y: 0}}
	dirs := []mapfcore.Direction{mapfcore.East}

	// Already facing the direction of travel: two moves suffice, no
	// rotation needed, so T=2 is feasible (unlike the WEST-facing S3 case).
	res, err := mapfcore.PlanFlowRot(g, starts, dirs, targets, []int{1}, 2, nil, nil, mapfcore.MethodDinic)
	require.NoError(t, err)
	require.True(t, res.Feasible)

	res1, err := mapfcore.PlanFlowRot(g, starts, dirs, targets, []int{1}, 1, nil, nil, mapfcore.MethodDinic)
	require.NoError(t, err)
	require.False(t, res1.Feasible)
}

// P8 — reservation respect: no path may use a reserved vertex-time.
func TestP8_ReservationRespect(t *testing.T) {
	g := row3(t)
	starts := []mapfcore.Cell{{X: 0, Y: 0}}
	targets := []mapfcore.Cell{{X: 2, Y: 0}}
	reservedV := []mapfcore.ReservedVertex{{X: 1, Y: 0, T: 1}}

	res, err := mapfcore.PlanFlow(g, starts, targets, []int{1}, 3, reservedV, nil, mapfcore.MethodDinic)
	require.NoError(t, err)
	require.True(t, res.Feasible)
	require.NotEqual(t, mapfcore.Cell{X: 1, Y: 0}, res.Paths[0][1])
}

// A reservation that collides with a start cell at t=0 is invalid input,
// per spec.md §7 — PlanFlow must reject it outright rather than report
// Feasible: false, and the facade must surface it as
// mapfcore.ErrReservationConflict regardless of which inner layer (here,
// network) actually detected the collision.
func TestPlanFlow_ReservationConflictAtStartRejected(t *testing.T) {
	g := row3(t)
	starts := []mapfcore.Cell{{X: 0, Y: 0}}
	targets := []mapfcore.Cell{{X: 2, Y: 0}}
	reservedV := []mapfcore.ReservedVertex{{X: 0, Y: 0, T: 0}}

	_, err := mapfcore.PlanFlow(g, starts, targets, []int{1}, 2, reservedV, nil, mapfcore.MethodDinic)
	require.ErrorIs(t, err, mapfcore.ErrReservationConflict)
}

func TestPlanFlow_SharedStartRejected(t *testing.T) {
	g := row3(t)
	starts := []mapfcore.Cell{{X: 0, Y: 0}, {X: 0, Y: 0}}
	targets := []mapfcore.Cell{{X: 1, Y: 0}, {X: 2, Y: 0}}

	_, err := mapfcore.PlanFlow(g, starts, targets, []int{1, 1}, 2, nil, nil, mapfcore.MethodDinic)
	require.ErrorIs(t, err, mapfcore.ErrInvalidInput)
}

func TestPlanRoundSync_RejectsFewerDropsThanAgents(t *testing.T) {
	g, err := gridset.New([][]int{{0, 0}, {0, 0}})
	require.NoError(t, err)

	starts := []mapfcore.Cell{{X: 0, Y: 0}, {X: 1, Y: 0}}
	pickups := []mapfcore.Cell{{X: 0, Y: 1}, {X: 1, Y: 1}}
	drops := []mapfcore.Cell{{X: 0, Y: 0}}

	_, err = mapfcore.PlanRoundSync(g, starts, pickups, drops, []int{2}, 6, search.Options{})
	require.ErrorIs(t, err, mapfcore.ErrInvalidInput)
}

func TestPlanRound_LoadedAndEmptyOrdering(t *testing.T) {
	g, err := gridset.New([][]int{{0, 0}, {0, 0}})
	require.NoError(t, err)

	starts := []mapfcore.Cell{{X: 0, Y: 0}, {X: 1, Y: 0}}
	states := []mapfcore.AgentState{mapfcore.Empty, mapfcore.Loaded}
	pickups := []mapfcore.Cell{{X: 0, Y: 1}, {X: 1, Y: 1}}
	drops := []mapfcore.Cell{{X: 0, Y: 0}, {X: 1, Y: 0}}
	dropCaps := []int{1, 1}

	res, err := mapfcore.PlanRound(g, starts, states, pickups, drops, dropCaps, 6, search.Options{})
	require.NoError(t, err)
	require.True(t, res.Feasible)
	require.GreaterOrEqual(t, res.T, 0)
}
