package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGridMap(t *testing.T) {
	m, err := ParseGridMap(strings.NewReader(".#.\n...\n.#."))
	require.NoError(t, err)
	assert.Equal(t, 3, m.Rows)
	assert.Equal(t, 3, m.Cols)
	assert.True(t, m.IsObstacle(1))
	assert.False(t, m.IsObstacle(0))
	assert.True(t, m.IsObstacle(7))
}

func TestParseGridMapRejectsRaggedRows(t *testing.T) {
	_, err := ParseGridMap(strings.NewReader("...\n..\n..."))
	assert.Error(t, err)
}

func TestNewGridMapValidatesDimensions(t *testing.T) {
	_, err := NewGridMap(0, 3, nil)
	assert.Error(t, err)

	_, err = NewGridMap(3, 3, make([]bool, 5))
	assert.ErrorContains(t, err, "obstacle length")
}

func TestAdmissibleRejectsRowWrap(t *testing.T) {
	m, err := NewGridMap(2, 3, nil)
	require.NoError(t, err)

	// Location 2 is (row0,col2); location 3 is (row1,col0). East move
	// from 2 would land on 3, which wraps a row boundary and must be
	// rejected even though 3 is in bounds and unobstructed.
	assert.False(t, m.Admissible(2, 3))
	assert.True(t, m.Admissible(2, 2)) // wait is always admissible
	assert.True(t, m.Admissible(0, 1))
}

func TestAdmissibleRejectsObstacleAndOutOfBounds(t *testing.T) {
	m, err := NewGridMap(2, 2, []bool{false, true, false, false})
	require.NoError(t, err)

	assert.False(t, m.Admissible(0, 1)) // 1 is an obstacle
	assert.False(t, m.Admissible(0, -1))
	assert.False(t, m.Admissible(0, 10))
}

func TestOffsetsFixedArity(t *testing.T) {
	m, err := NewGridMap(5, 5, nil)
	require.NoError(t, err)
	offsets := m.Offsets()
	require.Len(t, offsets, 5)
	assert.Equal(t, 0, offsets[WaitOffsetIndex()])
}
