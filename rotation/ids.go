package rotation

import "github.com/katalvlaran/mapfcore/gridset"

const (
	orientIn  = 0
	orientOut = 1
)

const (
	occGateIn  = 0
	occGateOut = 1
)

const (
	moveGateIn  = 0
	moveGateOut = 1
)

// nodeIndex packs the oriented time-expanded network's node space:
//
//	per layer t: 4 directions * 2 planes oriented nodes, plus a 2-node
//	occupancy gadget per cell (the shared bottleneck that keeps vertex
//	collision bound to the cell, not the oriented state)
//	edge-nodes: one 2-node move gadget per grid edge per t < T
//	source, sink: the two IDs after that
type nodeIndex struct {
	grid      *gridset.Grid
	t         int
	numCells  int
	numEdges  int
	edges     [][2]int
	edgeIndex map[[2]int]int

	orientedBlock int // 4*2*numCells
	perLayer      int // orientedBlock + 2*numCells
	totalLayers   int // (T+1)*perLayer
	totalEdge     int // T*numEdges*2
	source        int
	sink          int
	total         int
}

func newNodeIndex(grid *gridset.Grid, t int) *nodeIndex {
	edges := grid.Edges()
	edgeIndex := make(map[[2]int]int, len(edges))
	for i, e := range edges {
		edgeIndex[e] = i
	}

	numCells := grid.NumCells()
	orientedBlock := 4 * 2 * numCells
	perLayer := orientedBlock + 2*numCells
	totalLayers := (t + 1) * perLayer
	totalEdge := t * len(edges) * 2
	source := totalLayers + totalEdge
	sink := source + 1

	return &nodeIndex{
		grid:          grid,
		t:             t,
		numCells:      numCells,
		numEdges:      len(edges),
		edges:         edges,
		edgeIndex:     edgeIndex,
		orientedBlock: orientedBlock,
		perLayer:      perLayer,
		totalLayers:   totalLayers,
		totalEdge:     totalEdge,
		source:        source,
		sink:          sink,
		total:         sink + 1,
	}
}

// orientedNode returns the node id for (cell, dir) at timestep time, in
// the given plane (orientIn or orientOut).
func (idx *nodeIndex) orientedNode(time, cell int, dir Direction, plane int) int {
	return time*idx.perLayer + cell*8 + int(dir)*2 + plane
}

// occNode returns the shared occupancy-gadget node id for cell at
// timestep time, in the given gate (occGateIn or occGateOut).
func (idx *nodeIndex) occNode(time, cell, gate int) int {
	return time*idx.perLayer + idx.orientedBlock + cell*2 + gate
}

func edgePair(a, b int) [2]int {
	if a < b {
		return [2]int{a, b}
	}

	return [2]int{b, a}
}

// moveGateNode returns the move-gadget node id for undirected edge {a, b}
// at timestep time (< T), in the given gate (moveGateIn or moveGateOut).
func (idx *nodeIndex) moveGateNode(time, a, b, gate int) (id int, ok bool) {
	ei, found := idx.edgeIndex[edgePair(a, b)]
	if !found {
		return 0, false
	}

	return idx.totalLayers + (time*idx.numEdges+ei)*2 + gate, true
}
