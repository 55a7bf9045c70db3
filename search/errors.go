package search

import "errors"

// ErrInvalidInput mirrors network/rotation's sentinel for malformed
// caller input (PlanWithOrder's starts/states length mismatch).
var ErrInvalidInput = errors.New("search: invalid input")
