package core

import "math"

// Inf is the +∞ sentinel used for G and V. It is real IEEE-754 infinity,
// not math.MaxFloat64, so that Inf+1 stays Inf under the g=bp.v+1 update.
var Inf = math.Inf(1)

// InfiniteTime is the timestep of the sentinel goal node.
const InfiniteTime = math.MaxInt64

// Node is the per-(loc,t) search record. Loc and T are immutable identity;
// G, V, H, BP, Conflicts and InOpen are mutable attributes.
//
// The two-component OPEN key (min(G,V), min(G,V)+H) is cached on keyLo and
// keyHi and recomputed lazily by Key() whenever G or V is written through
// SetG/SetV.
type Node struct {
	Loc Location
	T   int64

	G, V, H   float64
	BP        *Node
	Conflicts int
	InOpen    bool

	// Handle is the OPEN set's opaque index for this node while InOpen is
	// true; undefined otherwise. It lets Planner call OpenSet.Update /
	// Erase in O(log n) without a secondary lookup.
	Handle int

	keyDirty bool
	keyLo    float64
	keyHi    float64
}

// NewNode creates a freshly generated node with the invariant initial
// state: G=+Inf, V=+Inf, no backpointer, zero conflicts, not in OPEN.
func NewNode(loc Location, t int64, h float64) *Node {
	return &Node{Loc: loc, T: t, G: Inf, V: Inf, H: h, keyDirty: true}
}

// SetG sets G and invalidates the cached key.
func (n *Node) SetG(g float64) {
	n.G = g
	n.keyDirty = true
}

// SetV sets V and invalidates the cached key.
func (n *Node) SetV(v float64) {
	n.V = v
	n.keyDirty = true
}

// MinGV returns min(G, V).
func (n *Node) MinGV() float64 {
	if n.G < n.V {
		return n.G
	}
	return n.V
}

// Key returns the two-component OPEN priority (min(G,V)+H, min(G,V)),
// recomputing the cache if G or V changed since the last call.
func (n *Node) Key() (primary, secondary float64) {
	if n.keyDirty {
		n.keyLo = n.MinGV()
		n.keyHi = n.keyLo + n.H
		n.keyDirty = false
	}
	return n.keyHi, n.keyLo
}

// LessKey reports whether n's key is lexicographically smaller than m's.
func LessKey(n, m *Node) bool {
	np, ns := n.Key()
	mp, ms := m.Key()
	if np != mp {
		return np < mp
	}
	return ns < ms
}

// LessOrEqualKey reports whether n's key is lexicographically smaller
// than or equal to m's.
func LessOrEqualKey(n, m *Node) bool {
	return !LessKey(m, n)
}

// Consistent reports g == v.
func (n *Node) Consistent() bool { return n.G == n.V }

// Overconsistent reports v > g.
func (n *Node) Overconsistent() bool { return n.V > n.G }

// Underconsistent reports v < g.
func (n *Node) Underconsistent() bool { return n.V < n.G }

// Invalidate resets n to its just-created state: no backpointer, g=v=+Inf,
// zero conflicts.
func (n *Node) Invalidate() {
	n.BP = nil
	n.SetG(Inf)
	n.SetV(Inf)
	n.Conflicts = 0
}

// CloneShallow returns a new node with the same identity and scalar
// attributes as n (Loc, T, G, V, H, Conflicts), but no backpointer and no
// OPEN membership. The deep-clone bp-fixup pass is responsible for
// rewiring BP across a set of shallow clones.
func (n *Node) CloneShallow() *Node {
	c := NewNode(n.Loc, n.T, n.H)
	c.G = n.G
	c.V = n.V
	c.Conflicts = n.Conflicts
	c.keyDirty = true
	return c
}
