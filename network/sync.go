package network

import (
	"fmt"

	"github.com/katalvlaran/mapfcore/gridset"
	"github.com/katalvlaran/mapfcore/maxflow"
)

// BuildSync constructs the time-expanded network for the synchronized
// two-stage pickup-then-drop model over horizon [0, T] with common pickup
// time tau, using the "equivalent formulation" §4.3 calls out: rather than
// literal bipartite pickupGate nodes, every agent is forced through a
// pickup cell at t=tau by zeroing the occupancy arc of every non-pickup
// cell at that one layer — since the occupancy arc already bounds any
// cell to one occupant per timestep (I1), this is exactly the "pass
// through a pickup cell's out-node at time tau" constraint, solved
// jointly with the final drop drain in one max-flow call on one graph.
//
// pickups and drops are packed cell indices; dropCaps parallels drops.
// tau must satisfy 0 <= tau <= T.
func BuildSync(
	grid *gridset.Grid,
	starts, pickups, drops []int,
	dropCaps []int,
	t, tau int,
) (g *maxflow.Graph, source, sink int, startArcs []int, err error) {
	if tau < 0 || tau > t {
		return nil, 0, 0, nil, fmt.Errorf("%w: tau %d out of range [0,%d]", ErrInvalidInput, tau, t)
	}
	if len(drops) != len(dropCaps) {
		return nil, 0, 0, nil, fmt.Errorf("%w: drops/dropCaps length mismatch", ErrInvalidInput)
	}
	for _, c := range dropCaps {
		if c < 0 {
			return nil, 0, 0, nil, fmt.Errorf("%w: negative capacity %d", ErrInvalidInput, c)
		}
	}
	if err := validateCells(grid, starts, "start"); err != nil {
		return nil, 0, 0, nil, err
	}
	if err := validateCells(grid, pickups, "pickup"); err != nil {
		return nil, 0, 0, nil, err
	}
	if err := validateCells(grid, drops, "drop"); err != nil {
		return nil, 0, 0, nil, err
	}

	isPickup := make(map[int]struct{}, len(pickups))
	for _, cell := range pickups {
		isPickup[cell] = struct{}{}
	}

	reservedV := make(map[int64]struct{})
	for cell := 0; cell < grid.NumCells(); cell++ {
		if !grid.PassableIdx(cell) {
			continue
		}
		if _, ok := isPickup[cell]; ok {
			continue
		}
		reservedV[ReservedVertexKey(tau, cell)] = struct{}{}
	}

	// When tau=0 this is the same "reservation collides with a mandatory
	// start position" case BuildSingleTarget guards against, just
	// self-generated by the pickup-gating above rather than caller-supplied:
	// a start cell that isn't itself a pickup cannot occupy its own t=0
	// node once that node's occupancy arc has been zeroed.
	if err := checkStartReservations(starts, reservedV); err != nil {
		return nil, 0, 0, nil, err
	}

	g, idx, err := buildCore(grid, t, reservedV, nil)
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

	for i, cell := range drops {
		if dropCaps[i] == 0 {
			continue
		}
		if _, aerr := g.AddArc(idx.cellNode(t, cell, planeOut), sink, dropCaps[i]); aerr != nil {
			return nil, 0, 0, nil, aerr
		}
	}

	return g, source, sink, startArcs, nil
}
