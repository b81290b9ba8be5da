package core

// PossibleGoals is the ordered list of goal-cell candidates: nodes at the
// goal cell ascending by T, plus a sentinel at T = InfiniteTime that is
// always present and last.
type PossibleGoals struct {
	nodes []*Node // ascending by T; nodes[len-1] is always the sentinel
}

// NewPossibleGoals creates the list pre-populated with the sentinel.
func NewPossibleGoals(sentinel *Node) *PossibleGoals {
	return &PossibleGoals{nodes: []*Node{sentinel}}
}

// Insert adds n at the unique position preserving ascending T, skipping
// the insert if a node with the same T is already present. n must not be
// the sentinel.
func (g *PossibleGoals) Insert(n *Node) {
	i := 0
	for i < len(g.nodes)-1 && g.nodes[i].T < n.T {
		i++
	}
	if i < len(g.nodes) && g.nodes[i].T == n.T {
		return // already present at this T
	}
	g.nodes = append(g.nodes, nil)
	copy(g.nodes[i+1:], g.nodes[i:])
	g.nodes[i] = n
}

// Contains reports whether n is a member (by identity).
func (g *PossibleGoals) Contains(n *Node) bool {
	for _, c := range g.nodes {
		if c == n {
			return true
		}
	}
	return false
}

// Each calls fn for every candidate in ascending T order, including the
// trailing sentinel.
func (g *PossibleGoals) Each(fn func(*Node)) {
	for _, n := range g.nodes {
		fn(n)
	}
}

// Len returns the candidate count, sentinel included.
func (g *PossibleGoals) Len() int { return len(g.nodes) }

// Nodes returns the candidates in ascending T order, sentinel last, as a
// plain slice so callers can break out of the walk early (the goal-update
// pass stops at the first acceptable candidate).
func (g *PossibleGoals) Nodes() []*Node { return g.nodes }
