package mapfcore

import (
	"github.com/katalvlaran/mapfcore/gridset"
	"github.com/katalvlaran/mapfcore/maxflow"
	"github.com/katalvlaran/mapfcore/rotation"
	"github.com/katalvlaran/mapfcore/search"
)

// Cell, ReservedVertex and ReservedEdge are gridset's types surfaced at
// the facade so callers never need to import gridset just to build a
// PlanFlow call.
type (
	Cell           = gridset.Cell
	ReservedVertex = gridset.ReservedVertex
	ReservedEdge   = gridset.ReservedEdge
)

// Method selects the max-flow engine.
type Method = maxflow.Method

const (
	MethodDinic = maxflow.MethodDinic
	MethodHLPP  = maxflow.MethodHLPP
)

// Direction is an agent's facing, for the rotation-aware operations.
type Direction = rotation.Direction

const (
	East  = rotation.East
	West  = rotation.West
	South = rotation.South
	North = rotation.North
)

// AgentState distinguishes loaded from empty agents for the two-phase
// ordering PlanRound runs.
type AgentState = search.AgentState

const (
	Empty  = search.Empty
	Loaded = search.Loaded
)

// Result is the outcome of a single-target or synchronized plan at a
// fixed horizon: Feasible mirrors whether max flow saturated every agent,
// never surfaced as an error (§7).
type Result struct {
	Feasible bool
	Paths    [][]Cell
}

// RotResult is Result plus the per-timestep facing direction for the
// rotation-aware model.
type RotResult struct {
	Feasible bool
	Paths    [][]Cell
	PathDirs [][]Direction
}

// SearchResult is the outcome of a makespan search: T = -1 when no
// horizon up to the caller's tMax is feasible.
type SearchResult struct {
	T        int
	Feasible bool
	Paths    [][]Cell
}

// SyncSearchResult is SearchResult plus the minimal feasible pickup time
// tau found alongside T.
type SyncSearchResult struct {
	T        int
	Tau      int
	Feasible bool
	Paths    [][]Cell
}
