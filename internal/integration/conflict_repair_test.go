package integration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elektrokombinacija/mapf-lpastar/internal/core"
	"github.com/elektrokombinacija/mapf-lpastar/internal/lpastar"
)

func TestFindFirstConflictVertex(t *testing.T) {
	a := []core.Location{0, 1, 2}
	b := []core.Location{4, 1, 5}

	c := FindFirstConflict(a, b)
	require.NotNil(t, c)
	assert.False(t, c.IsEdge)
	assert.Equal(t, int64(1), c.T)
	assert.Equal(t, core.Location(1), c.Loc)
}

func TestFindFirstConflictSwap(t *testing.T) {
	a := []core.Location{0, 1, 2}
	b := []core.Location{1, 0, 3}

	c := FindFirstConflict(a, b)
	require.NotNil(t, c)
	assert.True(t, c.IsEdge)
	assert.Equal(t, int64(1), c.T)
	assert.Equal(t, core.Location(0), c.From)
	assert.Equal(t, core.Location(1), c.To)
}

func TestFindFirstConflictNone(t *testing.T) {
	a := []core.Location{0, 1, 2}
	b := []core.Location{4, 5, 6}
	assert.Nil(t, FindFirstConflict(a, b))
}

func TestResolveTwoAgentsOnCollisionCourse(t *testing.T) {
	// 1x3 corridor: agent A goes 0->2, agent B goes 2->0. Without repair
	// they collide head-on at the middle cell; the repair loop must
	// produce a conflict-free pair, one of them waiting it out.
	m, err := core.NewGridMap(1, 3, nil)
	require.NoError(t, err)

	hA := core.TableHeuristic{2, 1, 0}
	hB := core.TableHeuristic{0, 1, 2}
	pA, err := lpastar.NewPlanner(0, 2, hA, m, 0)
	require.NoError(t, err)
	pB, err := lpastar.NewPlanner(2, 0, hB, m, 1)
	require.NoError(t, err)

	cat := lpastar.NewStepCAT(10)
	result, err := Resolve(pA, pB, cat, 10, 64)
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Nil(t, FindFirstConflict(result.PathA, result.PathB))
}
