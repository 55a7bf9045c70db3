// Package search drives makespan minimization on top of network/rotation:
// an exponential probe to bracket the minimum feasible horizon T, followed
// by a binary-search refinement (single-target model) or a check of every T
// in the bracketed gap (synchronized model), with optional worker-pool fan-out across
// both the candidate-T batch and (for the synchronized model) the
// candidate-tau sweep within a given T.
package search
