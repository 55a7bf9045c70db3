package gridset

import "errors"

// Sentinel errors for grid construction and lookups.
var (
	// ErrEmptyGrid indicates the input grid has no rows or no columns.
	ErrEmptyGrid = errors.New("gridset: grid must have at least one row and one column")

	// ErrNonRectangular indicates rows of differing lengths.
	ErrNonRectangular = errors.New("gridset: all rows must have the same length")

	// ErrOutOfBounds indicates a coordinate lies outside the grid.
	ErrOutOfBounds = errors.New("gridset: coordinate out of bounds")

	// ErrBlocked indicates a coordinate refers to an impassable cell.
	ErrBlocked = errors.New("gridset: cell is not passable")
)
