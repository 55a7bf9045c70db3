package rotation

import (
	"fmt"

	"github.com/katalvlaran/mapfcore/gridset"
	"github.com/katalvlaran/mapfcore/maxflow"
	"github.com/katalvlaran/mapfcore/network"
)

// ReservedVertexKey and ReservedEdgeKey reuse network's packing scheme so
// callers can build one reservation set and hand it to either package.
var (
	ReservedVertexKey = network.ReservedVertexKey
	ReservedEdgeKey   = network.ReservedEdgeKey
)

// Build constructs the oriented time-expanded network over horizon [0, T]
// per §4.5: every cell-timestep gets one oriented node pair per facing,
// funnelled through a shared occupancy gadget (vertex collision stays
// bound to the cell, never the facing), movement follows the current
// facing through a shared move gadget exactly like network.BuildSingleTarget,
// and turning 90 degrees in place costs one timestep via a rotate arc —
// 180 degrees is only reachable via two such arcs, never directly.
func Build(
	grid *gridset.Grid,
	starts []int,
	startDirs []Direction,
	targets []int,
	caps []int,
	t int,
	reservedV, reservedE map[int64]struct{},
) (g *maxflow.Graph, source, sink int, startArcs []int, err error) {
	if len(starts) != len(startDirs) {
		return nil, 0, 0, nil, fmt.Errorf("%w: starts/startDirs length mismatch", ErrInvalidInput)
	}
	if len(targets) != len(caps) {
		return nil, 0, 0, nil, fmt.Errorf("%w: targets/caps length mismatch", ErrInvalidInput)
	}
	for _, c := range caps {
		if c < 0 {
			return nil, 0, 0, nil, fmt.Errorf("%w: negative capacity %d", ErrInvalidInput, c)
		}
	}
	for _, cell := range starts {
		if cell < 0 || cell >= grid.NumCells() || !grid.PassableIdx(cell) {
			return nil, 0, 0, nil, fmt.Errorf("%w: start cell %d blocked or out of range", ErrInvalidInput, cell)
		}
	}
	for _, cell := range targets {
		if cell < 0 || cell >= grid.NumCells() || !grid.PassableIdx(cell) {
			return nil, 0, 0, nil, fmt.Errorf("%w: target cell %d blocked or out of range", ErrInvalidInput, cell)
		}
	}
	for _, cell := range starts {
		if _, blocked := reservedV[network.ReservedVertexKey(0, cell)]; blocked {
			return nil, 0, 0, nil, fmt.Errorf("%w: start cell %d reserved at t=0", ErrReservationConflict, cell)
		}
	}

	idx := newNodeIndex(grid, t)
	g = maxflow.NewGraph(idx.total)
	source, sink = idx.source, idx.sink
	numCells := idx.numCells

	allDirs := [4]Direction{East, West, South, North}

	for time := 0; time <= t; time++ {
		for cell := 0; cell < numCells; cell++ {
			if !grid.PassableIdx(cell) {
				continue
			}

			occIn := idx.occNode(time, cell, occGateIn)
			occOut := idx.occNode(time, cell, occGateOut)

			occCap := 1
			if _, blocked := reservedV[network.ReservedVertexKey(time, cell)]; blocked {
				occCap = 0
			}
			if _, aerr := g.AddArc(occIn, occOut, occCap); aerr != nil {
				return nil, 0, 0, nil, aerr
			}

			for _, dir := range allDirs {
				in := idx.orientedNode(time, cell, dir, orientIn)
				out := idx.orientedNode(time, cell, dir, orientOut)
				if _, aerr := g.AddArc(in, occIn, 1); aerr != nil {
					return nil, 0, 0, nil, aerr
				}
				if _, aerr := g.AddArc(occOut, out, 1); aerr != nil {
					return nil, 0, 0, nil, aerr
				}
			}
		}
	}

	for time := 0; time < t; time++ {
		for cell := 0; cell < numCells; cell++ {
			if !grid.PassableIdx(cell) {
				continue
			}
			for _, dir := range allDirs {
				out := idx.orientedNode(time, cell, dir, orientOut)

				waitCap := 1
				if _, blocked := reservedE[network.ReservedEdgeKey(time, cell, cell)]; blocked {
					waitCap = 0
				}
				if _, aerr := g.AddArc(out, idx.orientedNode(time+1, cell, dir, orientIn), waitCap); aerr != nil {
					return nil, 0, 0, nil, aerr
				}

				for _, dir2 := range adjacent90(dir) {
					if _, aerr := g.AddArc(out, idx.orientedNode(time+1, cell, dir2, orientIn), 1); aerr != nil {
						return nil, 0, 0, nil, aerr
					}
				}
			}
		}
	}

	for time := 0; time < t; time++ {
		for _, e := range idx.edges {
			a, b := e[0], e[1]
			ax, ay := grid.Coordinate(a)
			bx, by := grid.Coordinate(b)
			dirAB, ok := DeltaToDir(bx-ax, by-ay)
			if !ok {
				return nil, 0, 0, nil, fmt.Errorf("%w: non-adjacent edge %d-%d", ErrInvalidInput, a, b)
			}
			dirBA := opposite[dirAB]

			eIn, _ := idx.moveGateNode(time, a, b, moveGateIn)
			eOut, _ := idx.moveGateNode(time, a, b, moveGateOut)
			if _, aerr := g.AddArc(eIn, eOut, 1); aerr != nil {
				return nil, 0, 0, nil, aerr
			}

			// A reserved move in either direction closes both inputs, so the
			// swap counterpart of a reserved edge is blocked as well.
			abCap, baCap := 1, 1
			_, abBlocked := reservedE[network.ReservedEdgeKey(time, a, b)]
			_, baBlocked := reservedE[network.ReservedEdgeKey(time, b, a)]
			if abBlocked || baBlocked {
				abCap, baCap = 0, 0
			}

			if _, aerr := g.AddArc(idx.orientedNode(time, a, dirAB, orientOut), eIn, abCap); aerr != nil {
				return nil, 0, 0, nil, aerr
			}
			if _, aerr := g.AddArc(idx.orientedNode(time, b, dirBA, orientOut), eIn, baCap); aerr != nil {
				return nil, 0, 0, nil, aerr
			}
			if _, aerr := g.AddArc(eOut, idx.orientedNode(time+1, b, dirAB, orientIn), 1); aerr != nil {
				return nil, 0, 0, nil, aerr
			}
			if _, aerr := g.AddArc(eOut, idx.orientedNode(time+1, a, dirBA, orientIn), 1); aerr != nil {
				return nil, 0, 0, nil, aerr
			}
		}
	}

	startArcs = make([]int, len(starts))
	for i, cell := range starts {
		fwd, aerr := g.AddArc(source, idx.orientedNode(0, cell, startDirs[i], orientIn), 1)
		if aerr != nil {
			return nil, 0, 0, nil, aerr
		}
		startArcs[i] = fwd
	}

	for i, cell := range targets {
		if caps[i] == 0 {
			continue
		}
		occOut := idx.occNode(t, cell, occGateOut)
		if _, aerr := g.AddArc(occOut, sink, caps[i]); aerr != nil {
			return nil, 0, 0, nil, aerr
		}
	}

	return g, source, sink, startArcs, nil
}
