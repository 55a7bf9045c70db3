package rotation

import (
	"fmt"

	"github.com/katalvlaran/mapfcore/gridset"
	"github.com/katalvlaran/mapfcore/maxflow"
)

// Extract walks a saturated *maxflow.Graph built by Build and returns one
// cell sequence and one facing-direction sequence per agent, both length
// t+1. Ties are broken by processing starts in the given order.
func Extract(grid *gridset.Grid, g *maxflow.Graph, starts []int, startDirs []Direction, t int) ([][]gridset.Cell, [][]Direction, error) {
	idx := newNodeIndex(grid, t)
	paths := make([][]gridset.Cell, len(starts))
	pathDirs := make([][]Direction, len(starts))

	for i, startCell := range starts {
		cell := startCell
		dir := startDirs[i]
		cells := make([]gridset.Cell, 0, t+1)
		dirs := make([]Direction, 0, t+1)

		for time := 0; time <= t; time++ {
			x, y := grid.Coordinate(cell)
			cells = append(cells, gridset.Cell{X: x, Y: y})
			dirs = append(dirs, dir)
			if time == t {
				break
			}

			nextCell, nextDir, err := step(grid, idx, g, time, cell, dir)
			if err != nil {
				return nil, nil, fmt.Errorf("rotation: agent %d at t=%d: %w", i, time, err)
			}
			cell, dir = nextCell, nextDir
		}

		paths[i] = cells
		pathDirs[i] = dirs
	}

	return paths, pathDirs, nil
}

func step(grid *gridset.Grid, idx *nodeIndex, g *maxflow.Graph, time, cell int, dir Direction) (int, Direction, error) {
	out := idx.orientedNode(time, cell, dir, orientOut)

	waitIn := idx.orientedNode(time+1, cell, dir, orientIn)
	if flow, found := arcFlowTo(g, out, waitIn); found && flow > 0 {
		return cell, dir, nil
	}

	for _, dir2 := range adjacent90(dir) {
		rotIn := idx.orientedNode(time+1, cell, dir2, orientIn)
		if flow, found := arcFlowTo(g, out, rotIn); found && flow > 0 {
			return cell, dir2, nil
		}
	}

	for _, n := range grid.Neighbours(cell) {
		nx, ny := grid.Coordinate(n)
		cx, cy := grid.Coordinate(cell)
		dirToN, ok := DeltaToDir(nx-cx, ny-cy)
		if !ok {
			continue
		}
		eIn, ok := idx.moveGateNode(time, cell, n, moveGateIn)
		if !ok {
			continue
		}
		if flow, found := arcFlowTo(g, out, eIn); found && flow > 0 {
			return n, dirToN, nil
		}
	}

	return 0, 0, fmt.Errorf("no outgoing flow from cell %d facing %d at t=%d", cell, dir, time)
}

// arcFlowTo mirrors network's helper of the same name: forward arcs sit at
// even indices, and since every reverse arc here starts at capacity 0, the
// flow on a forward arc equals its paired reverse arc's residual capacity.
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
