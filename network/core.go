package network

import (
	"fmt"

	"github.com/katalvlaran/mapfcore/gridset"
	"github.com/katalvlaran/mapfcore/maxflow"
)

// buildCore wires the horizon-[0,T] occupancy/wait/move-gadget skeleton
// shared by BuildSingleTarget and BuildSync: every passable cell gets an
// in/out node pair per timestep, an occupancy arc (zeroed per reservedV),
// a wait arc into the next layer, and every grid edge gets a shared move
// gadget per timestep (zeroed per reservedE). Source and sink nodes are
// allocated but left unconnected; callers attach their own start arcs and
// drains.
func buildCore(
	grid *gridset.Grid,
	t int,
	reservedV, reservedE map[int64]struct{},
) (g *maxflow.Graph, idx *nodeIndex, err error) {
	if t < 0 {
		return nil, nil, fmt.Errorf("%w: negative horizon %d", ErrInvalidInput, t)
	}

	idx = newNodeIndex(grid, t)
	g = maxflow.NewGraph(idx.total)
	numCells := idx.numCells

	for time := 0; time <= t; time++ {
		for cell := 0; cell < numCells; cell++ {
			if !grid.PassableIdx(cell) {
				continue
			}
			cap := 1
			if _, blocked := reservedV[ReservedVertexKey(time, cell)]; blocked {
				cap = 0
			}
			if _, aerr := g.AddArc(idx.cellNode(time, cell, planeIn), idx.cellNode(time, cell, planeOut), cap); aerr != nil {
				return nil, nil, aerr
			}
		}
	}

	for time := 0; time < t; time++ {
		for cell := 0; cell < numCells; cell++ {
			if !grid.PassableIdx(cell) {
				continue
			}
			cap := 1
			if _, blocked := reservedE[ReservedEdgeKey(time, cell, cell)]; blocked {
				cap = 0
			}
			if _, aerr := g.AddArc(idx.cellNode(time, cell, planeOut), idx.cellNode(time+1, cell, planeIn), cap); aerr != nil {
				return nil, nil, aerr
			}
		}
	}

	for time := 0; time < t; time++ {
		for _, e := range idx.edges {
			a, b := e[0], e[1]
			eIn, _ := idx.edgeNode(time, a, b, gateIn)
			eOut, _ := idx.edgeNode(time, a, b, gateOut)

			if _, aerr := g.AddArc(eIn, eOut, 1); aerr != nil {
				return nil, nil, aerr
			}

			// A reserved move in either direction closes both inputs, so the
			// swap counterpart of a reserved edge is blocked as well.
			abCap, baCap := 1, 1
			_, abBlocked := reservedE[ReservedEdgeKey(time, a, b)]
			_, baBlocked := reservedE[ReservedEdgeKey(time, b, a)]
			if abBlocked || baBlocked {
				abCap, baCap = 0, 0
			}

			if _, aerr := g.AddArc(idx.cellNode(time, a, planeOut), eIn, abCap); aerr != nil {
				return nil, nil, aerr
			}
			if _, aerr := g.AddArc(idx.cellNode(time, b, planeOut), eIn, baCap); aerr != nil {
				return nil, nil, aerr
			}
			if _, aerr := g.AddArc(eOut, idx.cellNode(time+1, b, planeIn), 1); aerr != nil {
				return nil, nil, aerr
			}
			if _, aerr := g.AddArc(eOut, idx.cellNode(time+1, a, planeIn), 1); aerr != nil {
				return nil, nil, aerr
			}
		}
	}

	return g, idx, nil
}

func validateCells(grid *gridset.Grid, cells []int, what string) error {
	for _, cell := range cells {
		if cell < 0 || cell >= grid.NumCells() || !grid.PassableIdx(cell) {
			return fmt.Errorf("%w: %s cell %d blocked or out of range", ErrInvalidInput, what, cell)
		}
	}

	return nil
}

// checkStartReservations rejects a reservedV set that zeroes a start cell's
// own occupancy arc at t=0 — an agent's start position is mandatory, not
// something a planned path can route around, so this is invalid input
// (ErrReservationConflict) per spec.md §7, never the generic
// Feasible: false a merely-tight instance produces.
func checkStartReservations(starts []int, reservedV map[int64]struct{}) error {
	for _, cell := range starts {
		if _, blocked := reservedV[ReservedVertexKey(0, cell)]; blocked {
			return fmt.Errorf("%w: start cell %d reserved at t=0", ErrReservationConflict, cell)
		}
	}

	return nil
}
