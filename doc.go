// Package mapfcore computes collision-free, minimum-makespan trajectories
// for multi-agent pickup-and-delivery on 4-connected grids, via
// time-expanded unit-capacity max-flow. It exposes a thin facade over
// gridset (grid/reachability), maxflow (Dinic/HLPP), network (time-expanded
// network construction and path extraction), rotation (orientation-aware
// extension), search (makespan minimization) and diagnose (infeasibility
// explanations) — each usable standalone for callers who need more control
// than the facade offers.
package mapfcore
