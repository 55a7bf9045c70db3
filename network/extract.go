package network

import (
	"fmt"

	"github.com/katalvlaran/mapfcore/gridset"
	"github.com/katalvlaran/mapfcore/maxflow"
)

// Extract walks a saturated *maxflow.Graph built by BuildSingleTarget or
// BuildSync and returns one cell sequence per agent in starts, in the same
// order, length t+1 (component D, folded in per §4.3/§4.4 since it
// operates directly on the graph the builder produced). Ties between
// agents at shared junctions are broken by processing starts in the given
// order, as spec requires.
//
// g must be the residual graph left behind by a maxflow.Solve call on the
// exact graph BuildSingleTarget/BuildSync returned for the same grid and t.
func Extract(grid *gridset.Grid, g *maxflow.Graph, starts []int, t int) ([][]gridset.Cell, error) {
	idx := newNodeIndex(grid, t)
	paths := make([][]gridset.Cell, len(starts))

	for i, startCell := range starts {
		cell := startCell
		path := make([]gridset.Cell, 0, t+1)

		for time := 0; time <= t; time++ {
			x, y := grid.Coordinate(cell)
			path = append(path, gridset.Cell{X: x, Y: y})
			if time == t {
				break
			}

			next, err := nextCell(grid, idx, g, time, cell)
			if err != nil {
				return nil, fmt.Errorf("network: agent %d at t=%d: %w", i, time, err)
			}
			cell = next
		}

		paths[i] = path
	}

	return paths, nil
}

// nextCell determines agent's cell at time+1 given it occupies cell at
// time, by checking which of the out-node's wait/move arcs actually
// carries flow.
func nextCell(grid *gridset.Grid, idx *nodeIndex, g *maxflow.Graph, time, cell int) (int, error) {
	out := idx.cellNode(time, cell, planeOut)

	waitIn := idx.cellNode(time+1, cell, planeIn)
	if flow, found := arcFlowTo(g, out, waitIn); found && flow > 0 {
		return cell, nil
	}

	for _, n := range grid.Neighbours(cell) {
		eIn, ok := idx.edgeNode(time, cell, n, gateIn)
		if !ok {
			continue
		}
		if flow, found := arcFlowTo(g, out, eIn); found && flow > 0 {
			return n, nil
		}
	}

	return 0, fmt.Errorf("no outgoing flow from cell %d at t=%d", cell, time)
}

// arcFlowTo scans u's outgoing forward arcs for one landing on v and
// returns the flow it carries. Forward arcs sit at even indices (AddArc
// always appends forward/reverse in pairs), and since every reverse arc
// here starts at capacity 0, the flow on a forward arc equals its paired
// reverse arc's residual capacity.
func arcFlowTo(g *maxflow.Graph, u, v int) (flow int, found bool) {
	for _, a := range g.Out(u) {
		if a%2 != 0 {
			continue
		}
		if g.ArcTo(a) == v {
			return g.ResidualCap(a ^ 1), true
		}
	}

	return 0, false
}
