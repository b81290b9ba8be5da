package core

// StateTable maps (loc,t) to at most one node, indexed first by Loc
// (dense, sized Rows*Cols) then by T (sparse). The table exclusively owns
// every node it ever inserts; nodes are never freed individually during
// the table's life.
type StateTable struct {
	rows, cols int
	byLoc      []map[int64]*Node
}

// NewStateTable allocates an empty table sized for a Rows*Cols map.
func NewStateTable(rows, cols int) *StateTable {
	byLoc := make([]map[int64]*Node, rows*cols)
	for i := range byLoc {
		byLoc[i] = make(map[int64]*Node)
	}
	return &StateTable{rows: rows, cols: cols, byLoc: byLoc}
}

// Rows and Cols report the dimensions the table was sized for, used to
// check dimension agreement at deep clone.
func (t *StateTable) Rows() int { return t.rows }
func (t *StateTable) Cols() int { return t.cols }

// Get looks up (loc,t), returning (node, found).
func (t *StateTable) Get(loc Location, tm int64) (*Node, bool) {
	n, ok := t.byLoc[loc][tm]
	return n, ok
}

// Set inserts or replaces the node stored at (loc,t). The caller is
// expected to keep n.Loc/n.T consistent with loc/t.
func (t *StateTable) Set(loc Location, tm int64, n *Node) {
	t.byLoc[loc][tm] = n
}

// GetOrCreate returns the existing node at (loc,t), or lazily creates one
// with heuristic h via NewNode and inserts it: a node comes into being the
// first time anything asks for its (loc,t).
func (t *StateTable) GetOrCreate(loc Location, tm int64, h Heuristic) *Node {
	if n, ok := t.Get(loc, tm); ok {
		return n
	}
	n := NewNode(loc, tm, h.H(loc))
	t.Set(loc, tm, n)
	return n
}

// Each calls fn for every node ever inserted, in an unspecified order.
// Used by deep clone's table-copy pass.
func (t *StateTable) Each(fn func(*Node)) {
	for _, byT := range t.byLoc {
		for _, n := range byT {
			fn(n)
		}
	}
}
