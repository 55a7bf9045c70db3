package gridset

import (
	"fmt"
	"sort"
	"sync"
)

// MultiSourceBFS returns dist[idx], the minimum number of 4-connected
// unit steps from any cell in sources to idx, or -1 if idx is unreachable
// from every source. Sources that are themselves blocked are ignored.
//
// This is a plain flood fill seeded from every source at depth 0 — the same
// multi-seed trick used to flood a whole connected component from several
// starting cells in one BFS pass — rather than N separate single-source
// BFS calls.
//
// Complexity: O(W*H) time and memory.
func (g *Grid) MultiSourceBFS(sources []int) []int {
	dist := make([]int, g.NumCells())
	for i := range dist {
		dist[i] = -1
	}

	queue := make([]int, 0, len(sources))
	for _, s := range sources {
		if s < 0 || s >= g.NumCells() || !g.passable[s] {
			continue
		}
		if dist[s] != -1 {
			continue // duplicate source
		}
		dist[s] = 0
		queue = append(queue, s)
	}

	for head := 0; head < len(queue); head++ {
		u := queue[head]
		for _, v := range g.Neighbours(u) {
			if dist[v] != -1 {
				continue
			}
			dist[v] = dist[u] + 1
			queue = append(queue, v)
		}
	}

	return dist
}

// DistanceFrom is MultiSourceBFS for a single source, returning dist[idx]
// directly rather than the full distance field.
func (g *Grid) DistanceFrom(source, target int) int {
	dist := g.MultiSourceBFS([]int{source})

	return dist[target]
}

// DistanceCache memoizes MultiSourceBFS results keyed by (grid fingerprint,
// sorted source set), so repeated reachability queries during makespan
// search (tau_min, min_drop_needed, unreachable-start checks) do not re-run
// the flood fill every time the same source set is probed.
//
// Last-writer-wins on a racing populate is acceptable: results are a pure
// function of (fingerprint, sources), so two goroutines computing the same
// entry concurrently always agree on the value they store.
type DistanceCache struct {
	grid  *Grid
	cache sync.Map // cacheKey -> []int
}

// NewDistanceCache returns a cache bound to grid.
func NewDistanceCache(grid *Grid) *DistanceCache {
	return &DistanceCache{grid: grid}
}

// Get returns the memoized multi-source BFS distances for sources,
// computing and storing them on first use.
func (c *DistanceCache) Get(sources []int) []int {
	key := cacheKey(c.grid.fingerprint, sources)
	if v, ok := c.cache.Load(key); ok {
		return v.([]int)
	}
	dist := c.grid.MultiSourceBFS(sources)
	c.cache.Store(key, dist)

	return dist
}

// cacheKey builds a deterministic string key from a fingerprint and an
// unordered source set, so {3,1,2} and {2,3,1} hit the same cache entry.
func cacheKey(fingerprint uint64, sources []int) string {
	sorted := make([]int, len(sources))
	copy(sorted, sources)
	sort.Ints(sorted)

	return fmt.Sprintf("%d|%v", fingerprint, sorted)
}
