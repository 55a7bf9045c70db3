package network

import "errors"

// Sentinel errors for network construction.
var (
	// ErrInvalidInput covers out-of-bounds or blocked start/target/pickup/
	// drop cells, negative capacities, and malformed agent/capacity lists.
	ErrInvalidInput = errors.New("network: invalid input")

	// ErrReservationConflict is returned when a reservation collides with a
	// required start position at t=0.
	ErrReservationConflict = errors.New("network: reservation conflicts with a required start position")
)
