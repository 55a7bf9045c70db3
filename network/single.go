package network

import (
	"fmt"

	"github.com/katalvlaran/mapfcore/gridset"
	"github.com/katalvlaran/mapfcore/maxflow"
)

// BuildSingleTarget constructs the time-expanded flow network for
// single-target mode over horizon [0, T], per §4.3: in/out node per
// passable cell per timestep, occupancy arcs, wait arcs, shared-capacity
// move gadgets on every grid edge, and a capacity-bounded drain per target
// at the final layer only.
//
// starts and targets are packed cell indices (gridset.Grid.Index); caps
// holds one capacity per entry of targets, duplicates of the same cell
// permitted and summed via parallel drain arcs. reservedV/reservedE key by
// ReservedVertexKey/ReservedEdgeKey and zero out the corresponding
// occupancy or move-gadget input arc.
//
// startArcs[i] is the AddArc index of agent i's source arc, useful to
// callers that want to confirm per-agent saturation directly rather than
// via Extract.
func BuildSingleTarget(
	grid *gridset.Grid,
	starts, targets []int,
	caps []int,
	t int,
	reservedV, reservedE map[int64]struct{},
) (g *maxflow.Graph, source, sink int, startArcs []int, err error) {
	if len(targets) != len(caps) {
		return nil, 0, 0, nil, fmt.Errorf("%w: targets/caps length mismatch", ErrInvalidInput)
	}
	for _, c := range caps {
		if c < 0 {
			return nil, 0, 0, nil, fmt.Errorf("%w: negative capacity %d", ErrInvalidInput, c)
		}
	}
	if err := validateCells(grid, starts, "start"); err != nil {
		return nil, 0, 0, nil, err
	}
	if err := validateCells(grid, targets, "target"); err != nil {
		return nil, 0, 0, nil, err
	}
	if err := checkStartReservations(starts, reservedV); err != nil {
		return nil, 0, 0, nil, err
	}

	g, idx, err := buildCore(grid, t, reservedV, reservedE)
	if err != nil {
		return nil, 0, 0, nil, err
	}
	source, sink = idx.source, idx.sink

	startArcs = make([]int, len(starts))
	for i, cell := range starts {
		fwd, aerr := g.AddArc(source, idx.cellNode(0, cell, planeIn), 1)
		if aerr != nil {
			return nil, 0, 0, nil, aerr
		}
		startArcs[i] = fwd
	}

	for i, cell := range targets {
		if caps[i] == 0 {
			continue
		}
		if _, aerr := g.AddArc(idx.cellNode(t, cell, planeOut), sink, caps[i]); aerr != nil {
			return nil, 0, 0, nil, aerr
		}
	}

	return g, source, sink, startArcs, nil
}
