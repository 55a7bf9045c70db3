package rotation

import "errors"

// Sentinel errors for rotation-aware network construction.
var (
	// ErrInvalidInput covers out-of-bounds/blocked cells, negative
	// capacities, and mismatched starts/startDirs/targets/caps lengths.
	ErrInvalidInput = errors.New("rotation: invalid input")

	// ErrReservationConflict is returned when a reservation collides with a
	// required start position at t=0.
	ErrReservationConflict = errors.New("rotation: reservation conflicts with a required start position")
)
