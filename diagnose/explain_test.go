package diagnose_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/mapfcore/diagnose"
	"github.com/katalvlaran/mapfcore/gridset"
	"github.com/katalvlaran/mapfcore/search"
)

func TestExplain_FeasibleInstanceReportsOK(t *testing.T) {
	g, err := gridset.New([][]int{{0, 0}, {0, 0}})
	require.NoError(t, err)

	starts := []int{g.Index(0, 0), g.Index(1, 0)}
	states := []search.AgentState{search.Empty, search.Loaded}
	pickups := []int{g.Index(0, 1), g.Index(1, 1)}
	drops := []int{g.Index(0, 0), g.Index(1, 0)}
	dropCaps := []int{1, 1}

	rpt := diagnose.Explain(context.Background(), g, starts, states, pickups, drops, dropCaps, 3, search.Options{})
	require.Equal(t, "ok", rpt.LoadedOnly)
	require.Equal(t, "ok", rpt.EmptyOnly)
	require.Empty(t, rpt.UnreachableStarts)
	require.ElementsMatch(t, pickups, rpt.ReachablePickups)
	require.Equal(t, 1, rpt.MinDropNeeded, "one drop cell at capacity 2 would have sufficed, but each is capacity 1 here")
}

func TestExplain_UnreachablePickupIsReported(t *testing.T) {
	// A 1x3 row split by a wall in the middle column: the start on one side
	// can never reach a pickup placed on the other.
	rows := [][]int{{0, 1, 0}}
	g, err := gridset.New(rows)
	require.NoError(t, err)

	starts := []int{g.Index(0, 0)}
	states := []search.AgentState{search.Empty}
	pickups := []int{g.Index(2, 0)}
	drops := []int{g.Index(0, 0)}
	dropCaps := []int{1}

	rpt := diagnose.Explain(context.Background(), g, starts, states, pickups, drops, dropCaps, 5, search.Options{})
	require.Equal(t, []int{starts[0]}, rpt.UnreachableStarts)
	require.Empty(t, rpt.ReachablePickups)
	require.Equal(t, -1, rpt.TauMin)
	require.Equal(t, "infeasible", rpt.EmptyOnly)
}

func TestExplain_MinDropNeeded(t *testing.T) {
	g, err := gridset.New([][]int{{0, 0, 0}})
	require.NoError(t, err)

	starts := []int{g.Index(0, 0), g.Index(1, 0), g.Index(2, 0)}
	states := []search.AgentState{search.Loaded, search.Loaded, search.Loaded}
	dropCaps := []int{3, 1}

	rpt := diagnose.Explain(context.Background(), g, starts, states, nil, []int{g.Index(0, 0), g.Index(2, 0)}, dropCaps, 2, search.Options{})
	require.Equal(t, 1, rpt.MinDropNeeded, "the single capacity-3 drop covers all three agents alone")
}
