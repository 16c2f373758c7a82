package grid

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("rejects zero size", func(t *testing.T) {
		for _, dims := range [][2]int{{0, 5}, {5, 0}, {-1, 3}} {
			g, err := New(dims[0], dims[1])
			assert.Nil(t, g)
			assert.ErrorIs(t, err, ErrInvalidDimensions)
		}
	})

	t.Run("starts empty", func(t *testing.T) {
		g, err := New(3, 2)
		require.NoError(t, err)
		assert.Equal(t, 3, g.Width())
		assert.Equal(t, 2, g.Height())
		assert.Len(t, g.EmptyPositions(), 6)
		assert.Empty(t, g.Goals())
	})
}

func TestSetIsIdempotent(t *testing.T) {
	g, err := New(4, 4)
	require.NoError(t, err)

	g.AddGoal(Position{X: 2, Y: 2})
	g.AddGoal(Position{X: 2, Y: 2})
	assert.Equal(t, []Position{{X: 2, Y: 2}}, g.Goals())

	g.AddObstacle(Position{X: 2, Y: 2})
	assert.Equal(t, Obstacle, g.At(Position{X: 2, Y: 2}))
	assert.Empty(t, g.Goals())

	err = g.Set(Position{X: 9, Y: 0}, Goal)
	assert.ErrorIs(t, err, ErrOutOfBounds)
}

func TestAtOutOfBoundsIsObstacle(t *testing.T) {
	g, err := New(2, 2)
	require.NoError(t, err)

	for _, pos := range []Position{{X: -1, Y: 0}, {X: 0, Y: -1}, {X: 2, Y: 0}, {X: 0, Y: 2}} {
		assert.Equal(t, Obstacle, g.At(pos), pos.String())
	}
}

func TestPerceptNeverLeaksBounds(t *testing.T) {
	for _, dims := range [][2]int{{1, 1}, {1, 5}, {5, 1}, {3, 4}, {7, 7}} {
		g, err := New(dims[0], dims[1])
		require.NoError(t, err)

		for y := 0; y < g.Height(); y++ {
			for x := 0; x < g.Width(); x++ {
				pos := Position{X: x, Y: y}
				p := g.Percept(pos)
				require.Len(t, p.Adjacents, 4)
				for d, cell := range p.Adjacents {
					if !g.InBounds(pos.Step(d)) {
						assert.Equal(t, Obstacle, cell, "%v %s", pos, d)
					} else {
						assert.Equal(t, Empty, cell, "%v %s", pos, d)
					}
				}
			}
		}
	}
}

func TestPerceptGoalVisibility(t *testing.T) {
	g, err := New(5, 5)
	require.NoError(t, err)
	g.AddGoal(Position{X: 4, Y: 2})
	g.AddGoal(Position{X: 2, Y: 0})

	tests := []struct {
		name    string
		pos     Position
		visible bool
		dir     Direction
	}{
		{name: "same row right", pos: Position{X: 0, Y: 2}, visible: true, dir: Right},
		{name: "same column up", pos: Position{X: 2, Y: 4}, visible: true, dir: Up},
		{name: "first goal wins", pos: Position{X: 2, Y: 2}, visible: true, dir: Right},
		{name: "hidden", pos: Position{X: 0, Y: 4}, visible: false, dir: None},
		{name: "on goal", pos: Position{X: 4, Y: 2}, visible: true, dir: None},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := g.Percept(tt.pos)
			assert.Equal(t, tt.visible, p.GoalVisible)
			assert.Equal(t, tt.dir, p.GoalDirection)
		})
	}
}

func TestPerceptIgnoresOcclusion(t *testing.T) {
	g, err := New(5, 1)
	require.NoError(t, err)
	g.AddObstacle(Position{X: 2, Y: 0})
	g.AddGoal(Position{X: 4, Y: 0})

	p := g.Percept(Position{X: 0, Y: 0})
	assert.True(t, p.GoalVisible)
	assert.Equal(t, Right, p.GoalDirection)
	assert.Equal(t, []Direction{Right}, p.Open())
}

func TestDirectionBetween(t *testing.T) {
	from := Position{X: 3, Y: 3}
	for _, d := range Directions {
		got, ok := DirectionBetween(from, from.Step(d))
		assert.True(t, ok)
		assert.Equal(t, d, got)
	}

	_, ok := DirectionBetween(from, Position{X: 5, Y: 3})
	assert.False(t, ok)
	assert.Equal(t, from, from.Step(Direction("sideways")))
	assert.Equal(t, 4, from.Manhattan(Position{X: 1, Y: 1}))
}

func TestCellJSON(t *testing.T) {
	raw, err := json.Marshal(map[Direction]Cell{Up: Obstacle, Down: Goal})
	require.NoError(t, err)
	assert.JSONEq(t, `{"up":"obstacle","down":"goal"}`, string(raw))

	var c Cell
	require.NoError(t, json.Unmarshal([]byte(`"goal"`), &c))
	assert.Equal(t, Goal, c)
	assert.Error(t, json.Unmarshal([]byte(`"lava"`), &c))
}
