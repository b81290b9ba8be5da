package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateTableGetOrCreateIsLazyAndIdempotent(t *testing.T) {
	st := NewStateTable(3, 3)

	n1 := st.GetOrCreate(4, 2, TableHeuristic{0, 1, 2, 3, 4, 5, 6, 7, 8})
	n2 := st.GetOrCreate(4, 2, TableHeuristic{0, 1, 2, 3, 4, 5, 6, 7, 8})
	assert.Same(t, n1, n2)

	got, ok := st.Get(4, 2)
	require.True(t, ok)
	assert.Same(t, n1, got)
}

func TestStateTableDistinctTimestepsDistinctNodes(t *testing.T) {
	st := NewStateTable(3, 3)
	h := TableHeuristic{0, 1, 2, 3, 4, 5, 6, 7, 8}

	n0 := st.GetOrCreate(4, 0, h)
	n1 := st.GetOrCreate(4, 1, h)
	assert.NotSame(t, n0, n1)
}

func TestStateTableEachVisitsEveryInsertedNode(t *testing.T) {
	st := NewStateTable(2, 2)
	h := TableHeuristic{0, 1, 2, 3}

	st.GetOrCreate(0, 0, h)
	st.GetOrCreate(1, 0, h)
	st.GetOrCreate(1, 1, h)

	count := 0
	st.Each(func(n *Node) { count++ })
	assert.Equal(t, 3, count)
}
