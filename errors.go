package mapfcore

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/mapfcore/network"
	"github.com/katalvlaran/mapfcore/rotation"
	"github.com/katalvlaran/mapfcore/search"
)

// Sentinel errors surfaced to callers. wrapErr translates whichever
// package-specific sentinel (network.ErrInvalidInput, rotation.ErrReservationConflict,
// etc.) an inner layer returned into the matching sentinel here, so
// errors.Is(err, mapfcore.ErrInvalidInput) works regardless of which layer
// actually detected the problem — a plain fmt.Errorf("%w", err) would only
// preserve the inner package's own sentinel identity, not this one.
var (
	// ErrInvalidInput covers out-of-bounds/blocked cells, negative
	// capacities, malformed slices, and (unless AllowSharedStarts is set)
	// two agents sharing a start cell.
	ErrInvalidInput = errors.New("mapfcore: invalid input")

	// ErrReservationConflict is returned when a reservation collides with
	// a required start position at t=0.
	ErrReservationConflict = errors.New("mapfcore: reservation conflicts with a required start position")
)

// wrapErr maps an inner error onto the facade's own sentinels by identity,
// preserving the original message via %w, so a caller testing
// errors.Is(err, mapfcore.ErrReservationConflict) gets a true regardless of
// whether network, rotation, or mapfcore's own input checks raised it.
func wrapErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, network.ErrReservationConflict), errors.Is(err, rotation.ErrReservationConflict):
		return fmt.Errorf("%w: %v", ErrReservationConflict, err)
	case errors.Is(err, network.ErrInvalidInput), errors.Is(err, rotation.ErrInvalidInput), errors.Is(err, search.ErrInvalidInput):
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	default:
		return fmt.Errorf("mapfcore: %w", err)
	}
}
