// Package gridset treats a rectangular 0/1 passability grid as the
// immutable substrate for a MAPF solve: cell indexing, 4-neighbour
// adjacency, and multi-source BFS distance fields.
//
// A Grid is built once per solve and never mutated afterward; callers pass
// the same *Grid into the network builders, the rotation extension, and the
// makespan search driver without synchronization, since all reads are
// safe for concurrent use once construction returns.
package gridset
