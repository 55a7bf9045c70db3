// Package maxflow computes maximum flow over a directed graph with integer
// arc capacities, using dense int node IDs in [0, N) rather than the
// string-keyed vertices of a general-purpose graph toolkit — a time-expanded
// MAPF network can have hundreds of thousands of nodes per solve, and a
// string allocation per cell per timestep is wasted work none of the
// callers in this module need.
//
// Two interchangeable algorithms are provided, selected by Solve's method
// argument: Dinic (level graph + blocking flow, O(E*sqrt(V)) on
// unit-capacity networks) and HLPP (highest-label push-relabel with the gap
// heuristic and periodic global relabeling). Both mutate the Graph's arc
// capacities in place; the residual graph IS the Graph after Solve returns,
// so a fresh Graph must be built for each independent solve.
package maxflow
