package maxflow

import "container/heap"

// HLPP computes the maximum flow from source to sink using highest-label
// push-relabel: preflow-push with highest-active-vertex selection, the gap
// heuristic, and periodic global relabeling via reverse BFS from the sink.
//
// Complexity: O(V^2*sqrt(E)), the highest-label variant's bound.
func HLPP(g *Graph, source, sink int, opts Options) (int, error) {
	opts.normalize()
	if source < 0 || source >= g.n {
		return 0, ErrSourceNotFound
	}
	if sink < 0 || sink >= g.n {
		return 0, ErrSinkNotFound
	}

	s := newHLPPState(g, source, sink)
	s.initialize()

	active := newMaxHeap(g.n)
	for u := 0; u < g.n; u++ {
		if u != source && u != sink && s.excess[u] > 0 {
			active.push(u, s.height[u])
		}
	}

	iterations := 0
	globalRelabelFreq := g.n
	if globalRelabelFreq == 0 {
		globalRelabelFreq = 1
	}
	const checkInterval = 256

	for active.Len() > 0 {
		if iterations%checkInterval == 0 {
			if err := opts.Ctx.Err(); err != nil {
				return s.excess[sink], err
			}
		}

		if iterations > 0 && iterations%globalRelabelFreq == 0 {
			s.globalRelabel()
			active = newMaxHeap(g.n)
			for u := 0; u < g.n; u++ {
				if u != source && u != sink && s.excess[u] > 0 && s.height[u] <= s.maxHeight {
					active.push(u, s.height[u])
				}
			}
			if active.Len() == 0 {
				break
			}
		}

		u, ok := active.pop()
		if !ok {
			break
		}
		if s.excess[u] <= 0 || s.height[u] > s.maxHeight {
			continue
		}

		s.discharge(u, func(v int) {
			if v != source && v != sink && s.excess[v] > 0 {
				active.push(v, s.height[v])
			}
		})

		if s.excess[u] > 0 && s.height[u] <= s.maxHeight {
			active.push(u, s.height[u])
		}

		iterations++
	}

	return s.excess[sink], nil
}

// hlppState holds mutable push-relabel state over g's dense node IDs.
type hlppState struct {
	g      *Graph
	source int
	sink   int
	n      int

	height      []int
	excess      []int
	heightCount []int
	currentArc  []int
	maxHeight   int
}

func newHLPPState(g *Graph, source, sink int) *hlppState {
	n := g.n

	return &hlppState{
		g:           g,
		source:      source,
		sink:        sink,
		n:           n,
		height:      make([]int, n),
		excess:      make([]int, n),
		heightCount: make([]int, 2*n+1),
		currentArc:  make([]int, n),
		maxHeight:   2*n - 1,
	}
}

func (s *hlppState) initialize() {
	s.height[s.source] = s.n
	s.heightCount[0] = s.n - 1
	s.heightCount[s.n] = 1

	for _, ai := range s.g.head[s.source] {
		a := &s.g.arcs[ai]
		if a.cap <= 0 {
			continue
		}
		delta := a.cap
		a.cap = 0
		s.g.arcs[ai^1].cap += delta
		s.excess[a.to] += delta
		s.excess[s.source] -= delta
	}

	s.globalRelabel()
}

// globalRelabel recomputes heights via reverse BFS from the sink: a node v
// with an arc v->u carrying residual capacity can push to u, so
// height[v] = height[u] + 1. Grounded on the same reverse-BFS relabeling
// used by push-relabel solvers generally; here it walks g's forward arc
// list and treats arc ai's pair ai^1 as the "incoming" edge into a.to.
func (s *hlppState) globalRelabel() {
	for i := range s.heightCount {
		s.heightCount[i] = 0
	}

	newHeight := make([]int, s.n)
	for i := range newHeight {
		newHeight[i] = s.maxHeight + 1
	}
	newHeight[s.sink] = 0

	queue := make([]int, 0, s.n)
	queue = append(queue, s.sink)
	for head := 0; head < len(queue); head++ {
		u := queue[head]
		uHeight := newHeight[u]
		for _, ai := range s.g.head[u] {
			// arcs[ai] goes u -> v; its pair ai^1 goes v -> u.
			// If the pair has residual capacity, v can push flow to u.
			v := s.g.arcs[ai].to
			pair := s.g.arcs[ai^1]
			if newHeight[v] > s.maxHeight && pair.cap > 0 {
				newHeight[v] = uHeight + 1
				queue = append(queue, v)
			}
		}
	}

	newHeight[s.source] = s.n

	for v, h := range newHeight {
		s.height[v] = h
		if h <= s.maxHeight {
			s.heightCount[h]++
		}
	}
	for i := range s.currentArc {
		s.currentArc[i] = 0
	}
}

func (s *hlppState) discharge(u int, onActivate func(int)) {
	arcs := s.g.head[u]
	for s.excess[u] > 0 && s.height[u] <= s.maxHeight {
		ci := s.currentArc[u]
		if ci >= len(arcs) {
			if !s.relabel(u) {
				break
			}
			s.currentArc[u] = 0
			continue
		}

		ai := arcs[ci]
		a := &s.g.arcs[ai]
		v := a.to
		if a.cap > 0 && s.height[u] == s.height[v]+1 {
			delta := s.excess[u]
			if a.cap < delta {
				delta = a.cap
			}
			a.cap -= delta
			s.g.arcs[ai^1].cap += delta
			s.excess[u] -= delta
			s.excess[v] += delta
			if onActivate != nil {
				onActivate(v)
			}
		} else {
			s.currentArc[u] = ci + 1
		}
	}
}

func (s *hlppState) relabel(u int) bool {
	oldHeight := s.height[u]
	if oldHeight > s.maxHeight {
		return false
	}

	minHeight := s.maxHeight + 1
	for _, ai := range s.g.head[u] {
		a := s.g.arcs[ai]
		if a.cap > 0 && s.height[a.to] < minHeight {
			minHeight = s.height[a.to]
		}
	}

	s.heightCount[oldHeight]--
	if minHeight >= s.maxHeight {
		s.height[u] = s.maxHeight + 1

		return false
	}

	newHeight := minHeight + 1
	if s.heightCount[oldHeight] == 0 && oldHeight < s.n {
		s.applyGapHeuristic(oldHeight)
	}
	s.heightCount[newHeight]++
	s.height[u] = newHeight

	return true
}

// applyGapHeuristic raises every node strictly above gapHeight (other than
// source) to an unreachable height, since once a height level empties out
// no node above it can ever reach the sink.
func (s *hlppState) applyGapHeuristic(gapHeight int) {
	for v := 0; v < s.n; v++ {
		if v == s.source {
			continue
		}
		h := s.height[v]
		if h > gapHeight && h <= s.maxHeight {
			s.heightCount[h]--
			s.height[v] = s.maxHeight + 1
		}
	}
}

// hlppItem is one entry in the highest-label priority queue, versioned so
// stale entries (superseded by a later push of the same node) can be
// skipped cheaply instead of removed from the heap.
type hlppItem struct {
	node    int
	height  int
	version int
}

// maxHeap is a highest-height-first priority queue over dense node IDs.
type maxHeap struct {
	items   []hlppItem
	version []int
}

func newMaxHeap(n int) *maxHeap {
	return &maxHeap{
		items:   make([]hlppItem, 0, n),
		version: make([]int, n),
	}
}

func (h *maxHeap) Len() int            { return len(h.items) }
func (h *maxHeap) Less(i, j int) bool  { return h.items[i].height > h.items[j].height }
func (h *maxHeap) Swap(i, j int)       { h.items[i], h.items[j] = h.items[j], h.items[i] }
func (h *maxHeap) Push(x interface{})  { h.items = append(h.items, x.(hlppItem)) }
func (h *maxHeap) Pop() interface{} {
	old := h.items
	n := len(old)
	item := old[n-1]
	h.items = old[:n-1]

	return item
}

func (h *maxHeap) push(node, height int) {
	h.version[node]++
	heap.Push(h, hlppItem{node: node, height: height, version: h.version[node]})
}

func (h *maxHeap) pop() (int, bool) {
	for h.Len() > 0 {
		item := heap.Pop(h).(hlppItem)
		if item.version == h.version[item.node] {
			return item.node, true
		}
	}

	return 0, false
}
