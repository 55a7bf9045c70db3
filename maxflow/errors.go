package maxflow

import "errors"

// Sentinel errors for maxflow operations.
var (
	// ErrSourceNotFound is returned when source is outside [0, N).
	ErrSourceNotFound = errors.New("maxflow: source node not found")

	// ErrSinkNotFound is returned when sink is outside [0, N).
	ErrSinkNotFound = errors.New("maxflow: sink node not found")

	// ErrNegativeCapacity is returned when AddArc is given a negative capacity.
	ErrNegativeCapacity = errors.New("maxflow: negative arc capacity")

	// ErrUnknownMethod is returned by Solve for a method outside {"dinic",
	// "hlpp"}; the empty method selects Dinic.
	ErrUnknownMethod = errors.New("maxflow: unknown method")
)
