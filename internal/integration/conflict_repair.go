// Package integration drives two lpastar.Planner instances through a
// small conflict-based repair loop: find a path for each agent, detect
// the first collision between the two paths, branch by adding a
// constraint to one agent or the other, and repeat on whichever branch
// is cheapest. It exists to exercise Planner.Clone, AddVertexConstraint
// and AddEdgeConstraint the way a real multi-agent caller would, not as
// a general-purpose solver — anything beyond two agents belongs in a
// dedicated conflict-based search package.
//
// Grounded on the conflict-based branch-and-bound shape used elsewhere in
// this codebase for multi-agent repair, re-grounded on int64 timesteps
// and core.Location instead of float64 travel times.
package integration

import (
	"container/heap"
	"errors"

	"github.com/elektrokombinacija/mapf-lpastar/internal/core"
	"github.com/elektrokombinacija/mapf-lpastar/internal/lpastar"
)

// ErrNoSolution is returned when the repair loop exhausts its expansion
// budget without finding a pair of conflict-free paths.
var ErrNoSolution = errors.New("integration: no conflict-free solution within expansion budget")

// Conflict describes the first collision found between two paths.
type Conflict struct {
	T      int64
	Loc    core.Location
	IsEdge bool
	// From/To are populated only for edge (swap) conflicts: agent A
	// moves From->To while agent B moves To->From over the same step.
	From, To core.Location
}

// FindFirstConflict scans two paths step by step and reports the
// earliest vertex or swap conflict, or nil if none exists.
func FindFirstConflict(a, b []core.Location) *Conflict {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for t := 0; t < n; t++ {
		if a[t] == b[t] {
			return &Conflict{T: int64(t), Loc: a[t], IsEdge: false}
		}
		if t+1 < n && a[t] == b[t+1] && a[t+1] == b[t] {
			return &Conflict{T: int64(t + 1), IsEdge: true, From: a[t], To: a[t+1]}
		}
	}
	return nil
}

// repairNode is a constraint-tree node: the two planner clones that
// produced pathA/pathB under their accumulated constraints, and the
// combined cost used to order the search frontier.
type repairNode struct {
	plannerA, plannerB *lpastar.Planner
	pathA, pathB       []core.Location
	cost               float64
	index              int
}

type repairHeap []*repairNode

func (h repairHeap) Len() int           { return len(h) }
func (h repairHeap) Less(i, j int) bool { return h[i].cost < h[j].cost }
func (h repairHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}
func (h *repairHeap) Push(x any) {
	n := x.(*repairNode)
	n.index = len(*h)
	*h = append(*h, n)
}
func (h *repairHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return x
}

// Result is the conflict-free pair of paths the loop converged on.
type Result struct {
	PathA, PathB []core.Location
	Cost         float64
	Expansions   int
}

func replan(p *lpastar.Planner, cat lpastar.CAT, horizon int64) ([]core.Location, float64, bool) {
	if !p.FindPath(cat, 0, horizon) {
		return nil, core.Inf, false
	}
	return p.Paths(p.Iter()), p.PathCost(p.Iter()), true
}

// Resolve runs the branch-and-repair loop against the two already
// goal-configured planners, returning the first conflict-free path pair
// discovered, favouring the cheapest-cost branch at every step. horizon
// is passed to every FindPath call as its lastGoalConstraintTimestep.
// maxExpansions caps the search; ErrNoSolution is returned if it's
// exhausted first.
func Resolve(plannerA, plannerB *lpastar.Planner, cat lpastar.CAT, horizon int64, maxExpansions int) (*Result, error) {
	pathA, costA, okA := replan(plannerA, cat, horizon)
	pathB, costB, okB := replan(plannerB, cat, horizon)
	if !okA || !okB {
		return nil, ErrNoSolution
	}

	open := &repairHeap{}
	heap.Init(open)
	heap.Push(open, &repairNode{
		plannerA: plannerA, plannerB: plannerB,
		pathA: pathA, pathB: pathB,
		cost: costA + costB,
	})

	expansions := 0
	for open.Len() > 0 {
		if expansions >= maxExpansions {
			return nil, ErrNoSolution
		}
		node := heap.Pop(open).(*repairNode)

		conflict := FindFirstConflict(node.pathA, node.pathB)
		if conflict == nil {
			return &Result{PathA: node.pathA, PathB: node.pathB, Cost: node.cost, Expansions: expansions}, nil
		}
		expansions++

		for _, branch := range []int{0, 1} {
			childA := node.plannerA.Clone()
			childB := node.plannerB.Clone()

			var constraintErr error
			if conflict.IsEdge {
				if branch == 0 {
					constraintErr = childA.AddEdgeConstraint(conflict.From, conflict.To, conflict.T, cat)
				} else {
					constraintErr = childB.AddEdgeConstraint(conflict.To, conflict.From, conflict.T, cat)
				}
			} else {
				if branch == 0 {
					constraintErr = childA.AddVertexConstraint(conflict.Loc, conflict.T, cat)
				} else {
					constraintErr = childB.AddVertexConstraint(conflict.Loc, conflict.T, cat)
				}
			}
			if constraintErr != nil {
				// A conflict at t=0 (agents sharing a start cell) or on an
				// out-of-range location can't be expressed as a
				// constraint; this branch is a dead end.
				continue
			}

			newPathA, newCostA, okA := replan(childA, cat, horizon)
			newPathB, newCostB, okB := replan(childB, cat, horizon)
			if !okA || !okB {
				continue
			}
			heap.Push(open, &repairNode{
				plannerA: childA, plannerB: childB,
				pathA: newPathA, pathB: newPathB,
				cost: newCostA + newCostB,
			})
		}
	}

	return nil, ErrNoSolution
}
