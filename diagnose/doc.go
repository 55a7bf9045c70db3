// Package diagnose explains why a solve at a given horizon came back
// infeasible: which ordering failed and at which stage, whether the
// loaded-only or empty-only sub-problem alone is solvable, which starts
// can't reach any pickup at all, and the reachability-derived lower bounds
// on tau and on the minimum drop count needed.
package diagnose
