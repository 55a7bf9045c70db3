package maxflow

import "math"

// Dinic computes the maximum flow from source to sink in g using level
// graphs and blocking flows, mutating g's arc capacities to their residual
// values in place.
//
// Steps, mirroring the classic level-graph/blocking-flow loop:
//  1. Validate source and sink are in range.
//  2. Repeat until the sink is unreachable in the level graph:
//     a. BFS from source over arcs with positive residual capacity to
//     compute level[] (distance from source).
//     b. If level[sink] < 0, the sink is unreachable: stop.
//     c. DFS blocking flow along the level graph, using a per-node
//     current-arc iterator so each arc is inspected at most once per
//     phase.
//     d. Optionally break out of the blocking-flow loop early every
//     LevelRebuildInterval augmentations, to rebuild a fresher level
//     graph sooner on networks with lopsided level sizes.
//
// Complexity: O(E*sqrt(V)) on unit-capacity networks, the time-expanded
// MAPF network's regime; O(V^2*E) in general.
func Dinic(g *Graph, source, sink int, opts Options) (int, error) {
	opts.normalize()
	if source < 0 || source >= g.n {
		return 0, ErrSourceNotFound
	}
	if sink < 0 || sink >= g.n {
		return 0, ErrSinkNotFound
	}

	maxFlow := 0
	level := make([]int, g.n)
	iter := make([]int, g.n)

	for {
		if err := opts.Ctx.Err(); err != nil {
			return maxFlow, err
		}

		// BFS to build the level graph.
		for i := range level {
			level[i] = -1
		}
		queue := make([]int, 0, g.n)
		level[source] = 0
		queue = append(queue, source)
		for h := 0; h < len(queue); h++ {
			u := queue[h]
			for _, ai := range g.head[u] {
				a := g.arcs[ai]
				if a.cap > 0 && level[a.to] < 0 {
					level[a.to] = level[u] + 1
					queue = append(queue, a.to)
				}
			}
		}
		if level[sink] < 0 {
			break
		}

		for i := range iter {
			iter[i] = 0
		}
		augmentCount := 0
		for {
			if err := opts.Ctx.Err(); err != nil {
				return maxFlow, err
			}
			pushed := g.dinicDFS(source, sink, math.MaxInt, level, iter)
			if pushed == 0 {
				break
			}
			maxFlow += pushed
			augmentCount++
			if opts.LevelRebuildInterval > 0 && augmentCount%opts.LevelRebuildInterval == 0 {
				break
			}
		}
	}

	return maxFlow, nil
}

// dinicDFS pushes flow along the level graph from u to sink, respecting the
// current-arc optimization (iter[u] never revisits an arc already found
// exhausted within this phase).
func (g *Graph) dinicDFS(u, sink, available int, level, iter []int) int {
	if u == sink {
		return available
	}
	for ; iter[u] < len(g.head[u]); iter[u]++ {
		ai := g.head[u][iter[u]]
		a := &g.arcs[ai]
		if a.cap <= 0 || level[a.to] != level[u]+1 {
			continue
		}
		send := available
		if a.cap < send {
			send = a.cap
		}
		pushed := g.dinicDFS(a.to, sink, send, level, iter)
		if pushed > 0 {
			a.cap -= pushed
			g.arcs[ai^1].cap += pushed

			return pushed
		}
	}

	return 0
}
