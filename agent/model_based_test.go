package agent

import (
	"testing"

	"github.com/beka-birhanu/vinom-agents/grid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// knownModel copies a whole grid into a model.
func knownModel(g *grid.Grid) Model {
	m := make(Model)
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			pos := grid.Position{X: x, Y: y}
			m[pos] = g.At(pos)
		}
	}
	return m
}

// walk applies a plan and returns every position visited, start included.
func walk(start grid.Position, plan []grid.Direction) []grid.Position {
	visited := []grid.Position{start}
	for _, d := range plan {
		start = start.Step(d)
		visited = append(visited, start)
	}
	return visited
}

func TestPlanPathOpenGridIsManhattan(t *testing.T) {
	g, err := grid.New(6, 6)
	require.NoError(t, err)
	model := knownModel(g)

	pairs := [][2]grid.Position{
		{{X: 0, Y: 0}, {X: 5, Y: 5}},
		{{X: 5, Y: 0}, {X: 0, Y: 5}},
		{{X: 2, Y: 3}, {X: 2, Y: 0}},
		{{X: 4, Y: 4}, {X: 3, Y: 4}},
	}
	for _, pair := range pairs {
		start, goal := pair[0], pair[1]
		plan := planPath(model, start, goal)
		assert.Len(t, plan, start.Manhattan(goal), "%v -> %v", start, goal)
		visited := walk(start, plan)
		assert.Equal(t, goal, visited[len(visited)-1])
	}
}

func TestPlanPathTraversesCorridor(t *testing.T) {
	g, err := grid.New(5, 3)
	require.NoError(t, err)
	for x := 0; x < 5; x++ {
		if x != 3 {
			g.AddObstacle(grid.Position{X: x, Y: 1})
		}
	}

	start, goal := grid.Position{X: 0, Y: 0}, grid.Position{X: 0, Y: 2}
	plan := planPath(knownModel(g), start, goal)
	require.Len(t, plan, 8)

	visited := walk(start, plan)
	assert.Contains(t, visited, grid.Position{X: 3, Y: 1})
	assert.Equal(t, goal, visited[len(visited)-1])
	for _, pos := range visited {
		assert.NotEqual(t, grid.Obstacle, g.At(pos), pos.String())
	}
}

func TestPlanPathSkipsUnknownCells(t *testing.T) {
	g, err := grid.New(3, 1)
	require.NoError(t, err)
	model := knownModel(g)
	delete(model, grid.Position{X: 1, Y: 0})

	assert.Nil(t, planPath(model, grid.Position{X: 0, Y: 0}, grid.Position{X: 2, Y: 0}))
}

func TestModelBasedExploresWithoutGoal(t *testing.T) {
	g, err := grid.New(3, 3)
	require.NoError(t, err)

	t.Run("first open neighbor", func(t *testing.T) {
		m := NewModelBased("explorer")
		m.Perceive(g.Percept(grid.Position{X: 0, Y: 0}))
		_, ok := m.GoalPosition()
		assert.False(t, ok)
		assert.Equal(t, grid.Down, m.Decide())
	})

	t.Run("boxed in defaults to up", func(t *testing.T) {
		boxed, err := grid.New(1, 1)
		require.NoError(t, err)
		m := NewModelBased("boxed")
		m.Perceive(boxed.Percept(grid.Position{X: 0, Y: 0}))
		assert.Equal(t, grid.Up, m.Decide())
	})

	t.Run("before any percept", func(t *testing.T) {
		assert.Equal(t, grid.None, NewModelBased("idle").Decide())
	})
}

func TestModelBasedFollowsPlan(t *testing.T) {
	g, err := grid.New(5, 5)
	require.NoError(t, err)
	goal := grid.Position{X: 4, Y: 4}
	g.AddGoal(goal)

	m := NewModelBased("planner")
	for pos, cell := range knownModel(g) {
		m.Memorize(pos, cell)
	}
	known, ok := m.GoalPosition()
	require.True(t, ok)
	assert.Equal(t, goal, known)

	pos := grid.Position{X: 0, Y: 0}
	for step := 0; step < 8; step++ {
		m.Perceive(g.Percept(pos))
		replanning := len(m.Plan()) == 0
		d := m.Decide()
		if replanning {
			assert.Len(t, m.Plan(), pos.Manhattan(goal)-1)
		}
		pos = pos.Step(d)
	}
	assert.Equal(t, goal, pos)
	assert.Equal(t, 1, m.Replans())

	m.Perceive(g.Percept(pos))
	assert.Equal(t, grid.None, m.Decide())
}

func TestModelBasedSpeculativeFill(t *testing.T) {
	g, err := grid.New(8, 3)
	require.NoError(t, err)
	g.AddObstacle(grid.Position{X: 3, Y: 1})
	g.AddGoal(grid.Position{X: 7, Y: 1})

	m := NewModelBased("Explorer")
	m.Perceive(g.Percept(grid.Position{X: 1, Y: 1}))

	cell, ok := m.Knows(grid.Position{X: 3, Y: 1})
	assert.True(t, ok)
	assert.Equal(t, grid.Empty, cell, "unseen cells along the sight line are presumed free")

	cell, ok = m.Knows(grid.Position{X: 2, Y: 1})
	assert.True(t, ok)
	assert.Equal(t, grid.Empty, cell)

	_, ok = m.Knows(grid.Position{X: speculativeFillLimit - 1, Y: 1})
	assert.True(t, ok)
	_, ok = m.Knows(grid.Position{X: speculativeFillLimit, Y: 1})
	assert.False(t, ok)
	_, ok = m.Knows(grid.Position{X: 0, Y: 0})
	assert.False(t, ok)

	// the goal is sighted but not localized, so the agent explores
	_, ok = m.GoalPosition()
	assert.False(t, ok)
	assert.NotEqual(t, grid.None, m.Decide())
}

func TestModelBasedLocalizesAdjacentGoal(t *testing.T) {
	g, err := grid.New(3, 1)
	require.NoError(t, err)
	goal := grid.Position{X: 2, Y: 0}
	g.AddGoal(goal)

	m := NewModelBased("neighbor")
	m.Perceive(g.Percept(grid.Position{X: 1, Y: 0}))

	known, ok := m.GoalPosition()
	require.True(t, ok, "a goal next to the agent is localized before it is reached")
	assert.Equal(t, goal, known)
	assert.Equal(t, grid.Right, m.Decide())
}

func TestModelBasedDropsBlockedPlan(t *testing.T) {
	g, err := grid.New(4, 1)
	require.NoError(t, err)
	g.AddGoal(grid.Position{X: 3, Y: 0})

	m := NewModelBased("diverted")
	for pos, cell := range knownModel(g) {
		m.Memorize(pos, cell)
	}
	m.Perceive(g.Percept(grid.Position{X: 0, Y: 0}))
	require.Equal(t, grid.Right, m.Decide())
	require.Len(t, m.Plan(), 2)

	// the world changed under the plan
	g.AddObstacle(grid.Position{X: 2, Y: 0})
	m.Perceive(g.Percept(grid.Position{X: 1, Y: 0}))
	assert.Empty(t, m.Plan())

	m.Replan()
	assert.Empty(t, m.Inspect().Plan)
	assert.Equal(t, 1, m.Replans())
}
