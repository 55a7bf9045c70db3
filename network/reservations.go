package network

// ReservedVertexKey packs a (timestep, cell) pair into the int64 key used
// by BuildSingleTarget's reservedV set, matching §9's "packed integer
// fingerprint instead of tuple-keyed maps" guidance.
func ReservedVertexKey(t, cell int) int64 {
	return int64(t)<<32 | int64(uint32(cell))
}

// ReservedEdgeKey packs a (timestep, fromCell, toCell) directed move into
// the int64 key used by BuildSingleTarget's reservedE set. The key is
// directed, but the builders close the whole move gadget on {a, b} at t
// when either direction is reserved, so reserving a->b also forbids b->a.
func ReservedEdgeKey(t, from, to int) int64 {
	return int64(t)<<42 | int64(uint32(from))<<21 | int64(uint32(to))
}
