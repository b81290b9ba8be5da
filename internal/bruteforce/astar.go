// Package bruteforce provides a non-incremental space-time A* search used
// only as an independent correctness oracle for internal/lpastar's
// incremental LPA*: it recomputes the optimal path from scratch on every
// call and has no constraint-repair machinery, so its result is a simple,
// trustworthy baseline to cross-check Planner.FindPath's cost against.
//
// A standard space-time A* over the same location/timestep state space as
// internal/lpastar, with the multi-goal task-duration machinery dropped
// since this package exists purely as a test oracle.
package bruteforce

import (
	"container/heap"

	"github.com/elektrokombinacija/mapf-lpastar/internal/core"
)

// Blocked reports whether the directed move from->to arriving at
// timestep t is forbidden, letting callers reuse a live
// lpastar.ConstraintManager (or any other predicate) without this package
// depending on lpastar.
type Blocked func(from, to core.Location, t int64) bool

type stState struct {
	loc core.Location
	t   int64
}

type stNode struct {
	state  stState
	g      float64
	f      float64
	parent *stNode
	index  int
}

type stHeap []*stNode

func (h stHeap) Len() int           { return len(h) }
func (h stHeap) Less(i, j int) bool { return h[i].f < h[j].f }
func (h stHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}
func (h *stHeap) Push(x any) {
	n := x.(*stNode)
	n.index = len(*h)
	*h = append(*h, n)
}
func (h *stHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return x
}

// ShortestPath runs space-time A* from start to goal, treating blocked as
// the combined vertex/edge constraint predicate, and returns the path,
// its cost, and whether one was found. It never expands past maxT.
func ShortestPath(m *core.GridMap, h core.Heuristic, start, goal core.Location, blocked Blocked, maxT int64) ([]core.Location, float64, bool) {
	open := &stHeap{}
	heap.Init(open)
	heap.Push(open, &stNode{state: stState{loc: start, t: 0}, g: 0, f: h.H(start)})

	visited := make(map[stState]bool)

	for open.Len() > 0 {
		curr := heap.Pop(open).(*stNode)

		if curr.state.loc == goal {
			return reconstruct(curr), curr.g, true
		}
		if visited[curr.state] {
			continue
		}
		visited[curr.state] = true
		if curr.state.t >= maxT {
			continue
		}

		for _, off := range m.Offsets() {
			next := curr.state.loc + core.Location(off)
			if !m.Admissible(curr.state.loc, next) {
				continue
			}
			nextT := curr.state.t + 1
			if blocked != nil && blocked(curr.state.loc, next, nextT) {
				continue
			}
			nextState := stState{loc: next, t: nextT}
			if visited[nextState] {
				continue
			}
			g := curr.g + 1
			heap.Push(open, &stNode{
				state:  nextState,
				g:      g,
				f:      g + h.H(next),
				parent: curr,
			})
		}
	}

	return nil, core.Inf, false
}

func reconstruct(n *stNode) []core.Location {
	var path []core.Location
	for c := n; c != nil; c = c.parent {
		path = append([]core.Location{c.state.loc}, path...)
	}
	return path
}
