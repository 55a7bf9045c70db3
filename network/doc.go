// Package network builds the time-expanded flow network for a fixed
// horizon T: one in-node/out-node pair per passable cell per timestep, wait
// arcs, shared-capacity move gadgets (mandatory to forbid edge swaps), and
// target/pickup/drop drains. It also extracts per-agent cell sequences from
// a saturated *maxflow.Graph.
//
// Node IDs are dense packed ints rather than "x,y,t" strings: a 50x50 grid
// solved to T=50 already has on the order of 250,000 cell-nodes, and this
// package is built fresh per solve, so avoiding per-node string allocation
// matters. See nodeIndex in ids.go for the packing scheme.
package network
