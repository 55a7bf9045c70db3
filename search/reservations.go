package search

import (
	"github.com/katalvlaran/mapfcore/gridset"
	"github.com/katalvlaran/mapfcore/network"
)

// BuildReservedVertices turns a set of already-planned paths into the
// reservedV set a later stage must avoid, ported in meaning from
// original_source's build_reserved_vertices: every (cell, t) any path
// occupies becomes reserved.
func BuildReservedVertices(grid *gridset.Grid, paths [][]gridset.Cell) map[int64]struct{} {
	out := make(map[int64]struct{})
	for _, path := range paths {
		for t, c := range path {
			out[network.ReservedVertexKey(t, c.Idx(grid))] = struct{}{}
		}
	}

	return out
}

// BuildReservedEdges turns a set of already-planned paths into the
// reservedE set a later stage must avoid, ported in meaning from
// original_source's build_reserved_edges: every directed move a path
// makes becomes reserved (pure waits are skipped, matching the original's
// `if (x1,y1) == (x2,y2): continue`).
func BuildReservedEdges(grid *gridset.Grid, paths [][]gridset.Cell) map[int64]struct{} {
	out := make(map[int64]struct{})
	for _, path := range paths {
		for t := 0; t < len(path)-1; t++ {
			from, to := path[t], path[t+1]
			if from == to {
				continue
			}
			out[network.ReservedEdgeKey(t, from.Idx(grid), to.Idx(grid))] = struct{}{}
		}
	}

	return out
}
