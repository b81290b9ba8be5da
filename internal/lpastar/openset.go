package lpastar

import (
	"container/heap"

	"github.com/elektrokombinacija/mapf-lpastar/internal/core"
)

// OpenSet is a binary min-heap priority queue over the locally-inconsistent
// nodes, ordered by core.LessKey. It is a thin container/heap adapter
// keyed through each node's own Handle field, the same push/Swap-keeps-
// index-in-sync idiom used by the other priority queues in this codebase.
type OpenSet struct {
	items openHeap
}

// NewOpenSet creates an empty OPEN set.
func NewOpenSet() *OpenSet {
	s := &OpenSet{}
	heap.Init(&s.items)
	return s
}

// openHeap implements heap.Interface over *core.Node, using LessKey for
// ordering and Node.Handle as the heap-index cache.
type openHeap []*core.Node

func (h openHeap) Len() int            { return len(h) }
func (h openHeap) Less(i, j int) bool  { return core.LessKey(h[i], h[j]) }
func (h openHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].Handle = i
	h[j].Handle = j
}
func (h *openHeap) Push(x any) {
	n := x.(*core.Node)
	n.Handle = len(*h)
	n.InOpen = true
	*h = append(*h, n)
}
func (h *openHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	x.InOpen = false
	return x
}

// Push inserts n into OPEN. n must not already be a member.
func (s *OpenSet) Push(n *core.Node) {
	heap.Push(&s.items, n)
}

// Update re-keys n after its G/V/H changed, whichever direction the key
// moved — the incremental property LPA* depends on. n must already be a
// member.
func (s *OpenSet) Update(n *core.Node) {
	heap.Fix(&s.items, n.Handle)
}

// Erase removes n from OPEN. n must already be a member.
func (s *OpenSet) Erase(n *core.Node) {
	heap.Remove(&s.items, n.Handle)
}

// Len returns the number of members.
func (s *OpenSet) Len() int { return s.items.Len() }

// Top returns the member with the lexicographically smallest key, or nil
// if OPEN is empty.
func (s *OpenSet) Top() *core.Node {
	if len(s.items) == 0 {
		return nil
	}
	return s.items[0]
}

// Pop removes and returns the member with the smallest key.
func (s *OpenSet) Pop() *core.Node {
	return heap.Pop(&s.items).(*core.Node)
}

// EachInOrder calls fn for every member in the heap's underlying storage
// order (not sorted pop order). Deep clone relies on this specific
// ordering: rebuilding a fresh heap by repeated Push in this same order
// reproduces an equal-valued heap without ever popping from (and thus
// mutating) the source.
func (s *OpenSet) EachInOrder(fn func(*core.Node)) {
	for _, n := range s.items {
		fn(n)
	}
}
