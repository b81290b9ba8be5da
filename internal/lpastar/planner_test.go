package lpastar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elektrokombinacija/mapf-lpastar/internal/core"
)

func corridorMap(t *testing.T) *core.GridMap {
	m, err := core.NewGridMap(1, 3, nil)
	require.NoError(t, err)
	return m
}

// Scenario 1: 3x1 corridor, no constraints.
func TestCorridorNoConstraints(t *testing.T) {
	m := corridorMap(t)
	h := core.TableHeuristic{2, 1, 0}
	p, err := NewPlanner(0, 2, h, m, 0)
	require.NoError(t, err)

	cat := NewStepCAT(5)
	ok := p.FindPath(cat, 0, 0)
	require.True(t, ok)

	assert.Equal(t, []core.Location{0, 1, 2}, p.Paths(p.Iter()))
	assert.Equal(t, 2.0, p.PathCost(p.Iter()))
	assert.Contains(t, []int{2, 3}, p.NumExpanded(p.Iter()))
}

// Scenario 2: edge constraint forces a wait.
func TestCorridorEdgeConstraintForcesWait(t *testing.T) {
	m := corridorMap(t)
	h := core.TableHeuristic{2, 1, 0}
	p, err := NewPlanner(0, 2, h, m, 0)
	require.NoError(t, err)

	cat := NewStepCAT(5)
	require.True(t, p.FindPath(cat, 0, 0))

	require.NoError(t, p.AddEdgeConstraint(1, 2, 2, cat))
	require.True(t, p.FindPath(cat, 0, 0))

	assert.Equal(t, []core.Location{0, 1, 1, 2}, p.Paths(p.Iter()))
	assert.Equal(t, 3.0, p.PathCost(p.Iter()))
}

// Scenario 3: vertex constraint on the goal shifts min_goal_timestep.
func TestCorridorVertexConstraintOnGoal(t *testing.T) {
	m := corridorMap(t)
	h := core.TableHeuristic{2, 1, 0}
	p, err := NewPlanner(0, 2, h, m, 0)
	require.NoError(t, err)

	cat := NewStepCAT(5)
	require.True(t, p.FindPath(cat, 0, 0))

	require.NoError(t, p.AddVertexConstraint(2, 2, cat))
	// The last goal constraint is at t=2; FindPath caps min_goal_timestep
	// at that value plus one.
	require.True(t, p.FindPath(cat, 0, 2))

	path := p.Paths(p.Iter())
	assert.Contains(t, [][]core.Location{
		{0, 0, 1, 2},
		{0, 1, 1, 2},
	}, path)
	assert.Equal(t, 3.0, p.PathCost(p.Iter()))
	assert.Equal(t, int64(3), p.MinGoalTimestep())
}

func openGridMap(t *testing.T) (*core.GridMap, core.Location, core.Location) {
	m, err := core.NewGridMap(3, 3, nil)
	require.NoError(t, err)
	start := core.Location(0) // (0,0)
	goal := core.Location(8)  // (2,2)
	return m, start, goal
}

// Scenario 4: a mid-path vertex constraint forces a same-cost detour, and
// popping it restores the original optimal cost.
func TestOpenGridDetourAndPop(t *testing.T) {
	m, start, goal := openGridMap(t)
	h := core.ManhattanHeuristic{Goal: goal, Map: m}
	p, err := NewPlanner(start, goal, h, m, 0)
	require.NoError(t, err)

	cat := NewStepCAT(10)
	require.True(t, p.FindPath(cat, 0, 0))
	assert.Equal(t, 4.0, p.PathCost(p.Iter()))

	blocked := core.Location(4) // (1,1)
	require.NoError(t, p.AddVertexConstraint(blocked, 2, cat))
	require.True(t, p.FindPath(cat, 0, 0))
	assert.Equal(t, 4.0, p.PathCost(p.Iter()))
	path := p.Paths(p.Iter())
	require.Len(t, path, 5)
	assert.NotEqual(t, blocked, path[2])

	require.NoError(t, p.PopVertexConstraint(blocked, 2, cat))
	require.True(t, p.FindPath(cat, 0, 0))
	assert.Equal(t, 4.0, p.PathCost(p.Iter()))
}

// Scenario 5: deep clone isolation — mutating the clone must not affect
// the original, and re-running FindPath on the original after cloning
// must reproduce its earlier result exactly.
func TestCloneIsolation(t *testing.T) {
	m, start, goal := openGridMap(t)
	h := core.ManhattanHeuristic{Goal: goal, Map: m}
	p1, err := NewPlanner(start, goal, h, m, 0)
	require.NoError(t, err)

	cat := NewStepCAT(10)
	require.True(t, p1.FindPath(cat, 0, 0))
	originalPath := append([]core.Location(nil), p1.Paths(p1.Iter())...)
	originalCost := p1.PathCost(p1.Iter())

	p2 := p1.Clone()
	require.NoError(t, p2.AddVertexConstraint(core.Location(4), 2, cat))
	require.True(t, p2.FindPath(cat, 0, 0))

	require.True(t, p1.FindPath(cat, 0, 0))
	assert.Equal(t, originalPath, p1.Paths(p1.Iter()))
	assert.Equal(t, originalCost, p1.PathCost(p1.Iter()))

	assert.NotEqual(t, p2.PathCost(p2.Iter()), 0.0)
}

// Scenario 6: double-add, single-pop on an edge leaves it blocked; a
// second pop restores the unconstrained path cost.
func TestDoubleAddSinglePopEdgeStaysBlocked(t *testing.T) {
	m := corridorMap(t)
	h := core.TableHeuristic{2, 1, 0}
	p, err := NewPlanner(0, 2, h, m, 0)
	require.NoError(t, err)

	cat := NewStepCAT(5)
	require.True(t, p.FindPath(cat, 0, 0))
	baseline := p.PathCost(p.Iter())

	require.NoError(t, p.AddEdgeConstraint(1, 2, 2, cat))
	require.NoError(t, p.AddEdgeConstraint(1, 2, 2, cat))
	require.NoError(t, p.PopEdgeConstraint(1, 2, 2, cat))
	require.True(t, p.FindPath(cat, 0, 0))
	assert.Greater(t, p.PathCost(p.Iter()), baseline)

	require.NoError(t, p.PopEdgeConstraint(1, 2, 2, cat))
	require.True(t, p.FindPath(cat, 0, 0))
	assert.Equal(t, baseline, p.PathCost(p.Iter()))
}

// Boundary: start equals goal at t=0 is immediately feasible at cost 0.
func TestStartEqualsGoal(t *testing.T) {
	m := corridorMap(t)
	h := core.TableHeuristic{0, 1, 2}
	p, err := NewPlanner(0, 0, h, m, 0)
	require.NoError(t, err)

	cat := NewStepCAT(5)
	require.True(t, p.FindPath(cat, 0, 0))
	assert.Equal(t, []core.Location{0}, p.Paths(p.Iter()))
	assert.Equal(t, 0.0, p.PathCost(p.Iter()))
}

// Boundary: a fully walled-off goal is reported unreachable, not a panic
// or a hang.
func TestUnreachableGoal(t *testing.T) {
	// 1x3 corridor with the middle cell obstructed severs 0 from 2.
	m, err := core.NewGridMap(1, 3, []bool{false, true, false})
	require.NoError(t, err)
	h := core.TableHeuristic{2, 1, 0}
	p, err := NewPlanner(0, 2, h, m, 0)
	require.NoError(t, err)

	cat := NewStepCAT(5)
	ok := p.FindPath(cat, 0, 0)
	assert.False(t, ok)
	assert.Equal(t, core.Inf, p.GoalCost())
	assert.GreaterOrEqual(t, p.NumExpanded(p.Iter()), 0)
}
