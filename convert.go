package mapfcore

import (
	"fmt"

	"github.com/katalvlaran/mapfcore/gridset"
	"github.com/katalvlaran/mapfcore/network"
)

func cellsToIdx(grid *gridset.Grid, cells []Cell) []int {
	out := make([]int, len(cells))
	for i, c := range cells {
		out[i] = c.Idx(grid)
	}

	return out
}

func reservedVMap(grid *gridset.Grid, rv []ReservedVertex) map[int64]struct{} {
	out := make(map[int64]struct{}, len(rv))
	for _, r := range rv {
		out[network.ReservedVertexKey(r.T, grid.Index(r.X, r.Y))] = struct{}{}
	}

	return out
}

func reservedEMap(grid *gridset.Grid, re []ReservedEdge) map[int64]struct{} {
	out := make(map[int64]struct{}, len(re))
	for _, r := range re {
		out[network.ReservedEdgeKey(r.T, grid.Index(r.X1, r.Y1), grid.Index(r.X2, r.Y2))] = struct{}{}
	}

	return out
}

// checkSharedStarts enforces §9's resolved open question: two agents on
// the same start cell is invalid unless the caller explicitly opts in.
func checkSharedStarts(starts []int, allow bool) error {
	if allow {
		return nil
	}
	seen := make(map[int]struct{}, len(starts))
	for _, s := range starts {
		if _, dup := seen[s]; dup {
			return fmt.Errorf("%w: two agents share start cell %d", ErrInvalidInput, s)
		}
		seen[s] = struct{}{}
	}

	return nil
}
