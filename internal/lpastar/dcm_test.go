package lpastar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elektrokombinacija/mapf-lpastar/internal/core"
)

func TestConstraintManagerAddBlocksImmediately(t *testing.T) {
	d := NewConstraintManager()
	assert.False(t, d.IsBlocked(0, 1, 5))

	d.AddEdge(0, 1, 5)
	assert.True(t, d.IsBlocked(0, 1, 5))
	assert.False(t, d.IsBlocked(1, 0, 5)) // direction matters
	assert.False(t, d.IsBlocked(0, 1, 6)) // timestep matters
}

func TestConstraintManagerDoubleAddSinglePopStaysBlocked(t *testing.T) {
	d := NewConstraintManager()
	d.AddEdge(0, 1, 5)
	d.AddEdge(0, 1, 5)

	require.NoError(t, d.PopEdge(0, 1, 5))
	assert.True(t, d.IsBlocked(0, 1, 5))

	require.NoError(t, d.PopEdge(0, 1, 5))
	assert.False(t, d.IsBlocked(0, 1, 5))
}

func TestConstraintManagerPopWithoutAddErrors(t *testing.T) {
	d := NewConstraintManager()
	err := d.PopEdge(0, 1, 5)
	assert.ErrorIs(t, err, ErrConstraintNotPresent)
}

func TestConstraintManagerCloneIsIndependent(t *testing.T) {
	d := NewConstraintManager()
	d.AddEdge(0, 1, 5)

	clone := d.Clone()
	clone.AddEdge(2, 3, 9)

	assert.False(t, d.IsBlocked(2, 3, 9))
	assert.True(t, clone.IsBlocked(0, 1, 5))
	assert.True(t, clone.IsBlocked(2, 3, 9))
}

func TestStepCATVertexAndSwapConflicts(t *testing.T) {
	cat := NewStepCAT(10)
	cat.Add(core.Location(4), 3, 1)

	assert.Equal(t, 1, cat.NumOfConflicts(core.Location(1), core.Location(4), 3))
	assert.Equal(t, 0, cat.NumOfConflicts(core.Location(1), core.Location(5), 3))
	// Swap half: the entry at (4,3) is the previous-step occupant of the
	// destination for a move 5->4 arriving at t=4.
	assert.Equal(t, 1, cat.NumOfConflicts(core.Location(5), core.Location(4), 4))
}
