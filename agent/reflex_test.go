package agent

import (
	"math/rand"
	"testing"

	"github.com/beka-birhanu/vinom-agents/grid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func perceptAt(t *testing.T, g *grid.Grid, pos grid.Position) grid.Percept {
	t.Helper()
	require.True(t, g.InBounds(pos))
	return g.Percept(pos)
}

func TestReflexFirstMatchWins(t *testing.T) {
	g, err := grid.New(3, 3)
	require.NoError(t, err)

	r := NewReflex("fifo", nil)
	r.AddRule(Condition{Type: Always}, Action{Type: Move, Direction: grid.Left})
	r.AddRule(Condition{Type: Always}, Action{Type: Move, Direction: grid.Right})

	r.Perceive(perceptAt(t, g, grid.Position{X: 1, Y: 1}))
	assert.Equal(t, grid.Left, r.Decide())
	assert.Equal(t, grid.Left, r.Act())
}

func TestReflexConditions(t *testing.T) {
	g, err := grid.New(3, 3)
	require.NoError(t, err)
	g.AddObstacle(grid.Position{X: 1, Y: 0})
	g.AddGoal(grid.Position{X: 2, Y: 2})

	tests := []struct {
		name  string
		pos   grid.Position
		rules []Rule
		want  grid.Direction
	}{
		{
			name:  "no rules means no movement",
			pos:   grid.Position{X: 1, Y: 1},
			rules: nil,
			want:  grid.None,
		},
		{
			name: "null action on goal",
			pos:  grid.Position{X: 2, Y: 2},
			rules: []Rule{
				{Condition: Condition{Type: AtGoal}, Action: Action{Type: Stay}},
				{Condition: Condition{Type: Always}, Action: Action{Type: Move, Direction: grid.Up}},
			},
			want: grid.None,
		},
		{
			name: "blocked up falls through to open right",
			pos:  grid.Position{X: 1, Y: 1},
			rules: []Rule{
				{Condition: Condition{Type: Open, Direction: grid.Up}, Action: Action{Type: Move, Direction: grid.Up}},
				{Condition: Condition{Type: Blocked, Direction: grid.Up}, Action: Action{Type: Move, Direction: grid.Right}},
			},
			want: grid.Right,
		},
		{
			name: "toward visible goal",
			pos:  grid.Position{X: 0, Y: 2},
			rules: []Rule{
				{Condition: Condition{Type: GoalVisible}, Action: Action{Type: TowardGoal}},
			},
			want: grid.Right,
		},
		{
			name: "first open skips the wall",
			pos:  grid.Position{X: 0, Y: 0},
			rules: []Rule{
				{Condition: Condition{Type: AnyOpen}, Action: Action{Type: FirstOpen}},
			},
			want: grid.Down,
		},
		{
			name: "unmatched rules",
			pos:  grid.Position{X: 0, Y: 0},
			rules: []Rule{
				{Condition: Condition{Type: GoalVisible}, Action: Action{Type: TowardGoal}},
			},
			want: grid.None,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewReflex("r", &ReflexOptions{Rules: tt.rules})
			r.Perceive(perceptAt(t, g, tt.pos))
			assert.Equal(t, tt.want, r.Decide())
		})
	}
}

func TestReflexDecideIsIdempotent(t *testing.T) {
	g, err := grid.New(5, 5)
	require.NoError(t, err)
	g.AddGoal(grid.Position{X: 4, Y: 0})
	g.AddObstacle(grid.Position{X: 2, Y: 3})

	r := NewReflex("pure", &ReflexOptions{Rules: []Rule{
		{Condition: Condition{Type: AtGoal}, Action: Action{Type: Stay}},
		{Condition: Condition{Type: GoalVisible}, Action: Action{Type: TowardGoal}},
		{Condition: Condition{Type: AnyOpen}, Action: Action{Type: FirstOpen}},
	}})

	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			r.Perceive(g.Percept(grid.Position{X: x, Y: y}))
			first := r.Decide()
			for i := 0; i < 5; i++ {
				assert.Equal(t, first, r.Decide())
			}
		}
	}
}

func TestReflexRandomOpenStaysOpen(t *testing.T) {
	g, err := grid.New(3, 3)
	require.NoError(t, err)
	g.AddObstacle(grid.Position{X: 1, Y: 0})
	g.AddObstacle(grid.Position{X: 0, Y: 1})

	r := NewReflex("wander", &ReflexOptions{
		Rules: DefaultRules(),
		Rand:  rand.New(rand.NewSource(7)),
	})
	r.Perceive(g.Percept(grid.Position{X: 1, Y: 1}))
	for i := 0; i < 50; i++ {
		d := r.Decide()
		assert.Contains(t, []grid.Direction{grid.Down, grid.Right}, d)
	}
}

func TestReflexWithoutPercept(t *testing.T) {
	r := NewReflex("blind", &ReflexOptions{Rules: DefaultRules()})
	assert.Equal(t, grid.None, r.Decide())
	assert.Equal(t, 3, r.Inspect().Rules)
}
