package gridset

import "fmt"

// neighborOffsets are the 4-connected deltas in (dx, dy), fixed for the
// whole package since the core is 4-connected only (no Conn8 variant).
var neighborOffsets = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// Grid is an immutable rectangular passability map. Cell (x, y) is passable
// iff Passable(x, y) reports true. Width and Height are cached for O(1) bounds
// checks; cells are packed row-major as idx = y*Width + x.
//
// Complexity: construction, Edges, MultiSourceBFS and DistanceFrom are
// O(W*H); all other Grid methods are O(1) per call.
type Grid struct {
	Width, Height int
	passable      []bool // row-major, length Width*Height
	fingerprint   uint64
}

// New builds a Grid from a rectangular matrix of 0/1 ints, where 0 means
// passable and any non-zero value means blocked — matching the §6 input
// constraint "grid is a rectangular matrix of 0/1". The input is copied, so
// later mutation of rows by the caller never affects the Grid.
//
// Returns ErrEmptyGrid if rows has no rows or no columns, ErrNonRectangular
// if row lengths differ.
func New(rows [][]int) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	h, w := len(rows), len(rows[0])
	for _, row := range rows {
		if len(row) != w {
			return nil, ErrNonRectangular
		}
	}

	passable := make([]bool, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			passable[y*w+x] = rows[y][x] == 0
		}
	}

	g := &Grid{Width: w, Height: h, passable: passable}
	g.fingerprint = computeFingerprint(w, h, passable)

	return g, nil
}

// NewFromFunc builds a Grid from an explicit passability predicate, for
// callers that already have a boolean map rather than a 0/1 matrix.
func NewFromFunc(width, height int, passableFn func(x, y int) bool) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrEmptyGrid
	}

	passable := make([]bool, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			passable[y*width+x] = passableFn(x, y)
		}
	}

	g := &Grid{Width: width, Height: height, passable: passable}
	g.fingerprint = computeFingerprint(width, height, passable)

	return g, nil
}

// InBounds reports whether (x, y) lies within the grid boundaries.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

// Index maps (x, y) to its row-major cell index, y*Width + x.
func (g *Grid) Index(x, y int) int {
	return y*g.Width + x
}

// Coordinate converts a row-major index back to (x, y).
func (g *Grid) Coordinate(idx int) (x, y int) {
	return idx % g.Width, idx / g.Width
}

// NumCells returns Width*Height.
func (g *Grid) NumCells() int {
	return g.Width * g.Height
}

// Passable reports whether cell (x, y) is inside the grid and not blocked.
func (g *Grid) Passable(x, y int) bool {
	if !g.InBounds(x, y) {
		return false
	}
	return g.passable[g.Index(x, y)]
}

// PassableIdx is Passable by packed cell index, skipping the bounds check
// (the caller is expected to have obtained idx from Index or Neighbours).
func (g *Grid) PassableIdx(idx int) bool {
	return g.passable[idx]
}

// Neighbours returns the at-most-4 passable neighbour cell indices of idx.
//
// Complexity: O(1).
func (g *Grid) Neighbours(idx int) []int {
	x, y := g.Coordinate(idx)
	out := make([]int, 0, 4)
	for _, d := range neighborOffsets {
		nx, ny := x+d[0], y+d[1]
		if !g.InBounds(nx, ny) {
			continue
		}
		nIdx := g.Index(nx, ny)
		if !g.passable[nIdx] {
			continue
		}
		out = append(out, nIdx)
	}

	return out
}

// ValidateCell returns ErrOutOfBounds or ErrBlocked if (x, y) is not a
// usable start/target/pickup/drop cell, nil otherwise.
func (g *Grid) ValidateCell(x, y int) error {
	if !g.InBounds(x, y) {
		return fmt.Errorf("%w: (%d,%d)", ErrOutOfBounds, x, y)
	}
	if !g.passable[g.Index(x, y)] {
		return fmt.Errorf("%w: (%d,%d)", ErrBlocked, x, y)
	}

	return nil
}

// Edges enumerates every undirected passable-cell adjacency exactly once,
// as [2]int{a, b} with a < b. The order is deterministic (row-major scan),
// which callers rely on to build a stable edge-index space for the
// time-expanded network's move gadgets.
func (g *Grid) Edges() [][2]int {
	edges := make([][2]int, 0, g.NumCells()*2)
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			a := g.Index(x, y)
			if !g.passable[a] {
				continue
			}
			// Only look east and south to enumerate each edge once.
			for _, d := range [2][2]int{{1, 0}, {0, 1}} {
				nx, ny := x+d[0], y+d[1]
				if !g.InBounds(nx, ny) {
					continue
				}
				b := g.Index(nx, ny)
				if !g.passable[b] {
					continue
				}
				edges = append(edges, [2]int{a, b})
			}
		}
	}

	return edges
}

// Fingerprint returns an opaque handle identifying this Grid's dimensions
// and passability content, stable for the Grid's lifetime. It is the
// "explicit opaque handle" from the design notes: callers may use it as a
// cache key instead of re-hashing full grid content on every lookup.
func (g *Grid) Fingerprint() uint64 {
	return g.fingerprint
}
