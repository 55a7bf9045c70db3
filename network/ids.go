package network

import "github.com/katalvlaran/mapfcore/gridset"

// plane selects which of the two node layers a cell-node belongs to at a
// given timestep.
const (
	planeIn  = 0
	planeOut = 1
)

// edge gate selects which of the two internal move-gadget nodes an
// edge-node ID refers to: gateIn receives flow from both endpoints' out-
// nodes, gateOut forwards it on to the destination in-nodes. The single
// gateIn -> gateOut arc (capacity 1) is the bottleneck that bounds total
// through-flow on the shared edge to one unit, per §4.3.
const (
	gateIn  = 0
	gateOut = 1
)

// nodeIndex packs the time-expanded network's node space into dense ints:
//
//	cell-nodes:  [0, (T+1)*2*numCells)
//	edge-nodes:  [(T+1)*2*numCells, (T+1)*2*numCells + T*numEdges*2)
//	source, sink: the two IDs immediately after that
//
// All packing arithmetic lives here so the builders in single.go/sync.go
// never hand-roll an offset computation.
type nodeIndex struct {
	grid      *gridset.Grid
	t         int // horizon T
	numCells  int
	numEdges  int
	edges     [][2]int
	edgeIndex map[[2]int]int // ordered pair (min,max) -> edge index

	cellPlaneSize int // 2*numCells
	totalCell     int // (T+1)*cellPlaneSize
	totalEdge     int // T*numEdges*2
	source        int
	sink          int
	total         int // sink+1
}

func newNodeIndex(grid *gridset.Grid, t int) *nodeIndex {
	edges := grid.Edges()
	edgeIndex := make(map[[2]int]int, len(edges))
	for i, e := range edges {
		edgeIndex[e] = i
	}

	numCells := grid.NumCells()
	cellPlaneSize := 2 * numCells
	totalCell := (t + 1) * cellPlaneSize
	totalEdge := t * len(edges) * 2
	source := totalCell + totalEdge
	sink := source + 1

	return &nodeIndex{
		grid:          grid,
		t:             t,
		numCells:      numCells,
		numEdges:      len(edges),
		edges:         edges,
		edgeIndex:     edgeIndex,
		cellPlaneSize: cellPlaneSize,
		totalCell:     totalCell,
		totalEdge:     totalEdge,
		source:        source,
		sink:          sink,
		total:         sink + 1,
	}
}

// cellNode returns the node ID for cell at timestep time, in the given
// plane (planeIn or planeOut).
func (idx *nodeIndex) cellNode(time, cell, plane int) int {
	return time*idx.cellPlaneSize + plane*idx.numCells + cell
}

// edgePair normalizes (a, b) to the (min, max) key used by edgeIndex.
func edgePair(a, b int) [2]int {
	if a < b {
		return [2]int{a, b}
	}

	return [2]int{b, a}
}

// edgeNode returns the node ID for the move gadget on the undirected edge
// {a, b} at timestep time (which must be < T), in the given gate
// (gateIn or gateOut). ok is false if {a, b} is not an edge of the grid.
func (idx *nodeIndex) edgeNode(time, a, b, gate int) (id int, ok bool) {
	ei, found := idx.edgeIndex[edgePair(a, b)]
	if !found {
		return 0, false
	}

	return idx.totalCell + (time*idx.numEdges+ei)*2 + gate, true
}
