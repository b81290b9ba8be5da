package lpastar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elektrokombinacija/mapf-lpastar/internal/core"
)

func mkNode(loc core.Location, t int64, g, v, h float64) *core.Node {
	n := core.NewNode(loc, t, h)
	n.SetG(g)
	n.SetV(v)
	return n
}

func TestOpenSetPopReturnsSmallestKey(t *testing.T) {
	s := NewOpenSet()
	a := mkNode(0, 0, 5, 5, 0) // key (5,5)
	b := mkNode(1, 0, 2, 2, 0) // key (2,2)
	c := mkNode(2, 0, 3, 3, 0) // key (3,3)
	s.Push(a)
	s.Push(b)
	s.Push(c)

	require.Equal(t, b, s.Top())
	assert.Equal(t, b, s.Pop())
	assert.Equal(t, c, s.Pop())
	assert.Equal(t, a, s.Pop())
	assert.Equal(t, 0, s.Len())
}

func TestOpenSetMembershipFlagsTrackPushPop(t *testing.T) {
	s := NewOpenSet()
	n := mkNode(0, 0, 1, 1, 0)
	assert.False(t, n.InOpen)

	s.Push(n)
	assert.True(t, n.InOpen)

	s.Pop()
	assert.False(t, n.InOpen)
}

func TestOpenSetUpdateReordersAfterKeyChange(t *testing.T) {
	s := NewOpenSet()
	a := mkNode(0, 0, 5, 5, 0)
	b := mkNode(1, 0, 2, 2, 0)
	s.Push(a)
	s.Push(b)
	require.Equal(t, b, s.Top())

	a.SetG(0)
	a.SetV(0)
	s.Update(a)

	assert.Equal(t, a, s.Top())
}

func TestOpenSetEraseRemovesMember(t *testing.T) {
	s := NewOpenSet()
	a := mkNode(0, 0, 1, 1, 0)
	b := mkNode(1, 0, 2, 2, 0)
	s.Push(a)
	s.Push(b)

	s.Erase(a)

	assert.Equal(t, 1, s.Len())
	assert.False(t, a.InOpen)
	assert.Equal(t, b, s.Top())
}

func TestOpenSetEachInOrderDoesNotMutate(t *testing.T) {
	s := NewOpenSet()
	a := mkNode(0, 0, 5, 5, 0)
	b := mkNode(1, 0, 2, 2, 0)
	s.Push(a)
	s.Push(b)

	var seen []*core.Node
	s.EachInOrder(func(n *core.Node) { seen = append(seen, n) })

	assert.Len(t, seen, 2)
	assert.Equal(t, 2, s.Len())
	assert.True(t, a.InOpen)
	assert.True(t, b.InOpen)
}
