package agent

import (
	"testing"

	"github.com/beka-birhanu/vinom-agents/grid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	for _, kind := range Kinds {
		t.Run(string(kind), func(t *testing.T) {
			a, err := New(kind, "agent-"+string(kind), Options{Seed: 42})
			require.NoError(t, err)
			assert.Equal(t, kind, a.Kind())
			assert.Equal(t, kind, a.Inspect().Kind)
			assert.Equal(t, "agent-"+string(kind), a.Name())
			assert.Zero(t, a.Performance())
		})
	}

	t.Run("unknown kind", func(t *testing.T) {
		_, err := New("telepathic", "x", Options{})
		assert.ErrorIs(t, err, ErrUnknownKind)
	})

	t.Run("reflex gets default rules", func(t *testing.T) {
		a, err := New(KindReflex, "r", Options{})
		require.NoError(t, err)
		assert.Equal(t, len(DefaultRules()), a.Inspect().Rules)
	})

	t.Run("utility exploration default", func(t *testing.T) {
		a, err := New(KindUtility, "u", Options{})
		require.NoError(t, err)
		assert.Equal(t, defaultUtilityExploration, a.Inspect().ExplorationRate)
	})
}

func TestNewSeedIsDeterministic(t *testing.T) {
	g, err := grid.New(4, 4)
	require.NoError(t, err)

	run := func() []grid.Direction {
		a, err := New(KindQLearning, "seeded", Options{Seed: 99, ExplorationRate: 1})
		require.NoError(t, err)
		var moves []grid.Direction
		pos := grid.Position{X: 1, Y: 1}
		for i := 0; i < 30; i++ {
			a.Perceive(g.Percept(pos))
			d := a.Decide()
			moves = append(moves, d)
			if next := pos.Step(d); g.InBounds(next) {
				pos = next
			}
		}
		return moves
	}

	assert.Equal(t, run(), run())
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("qlearning")
	require.NoError(t, err)
	assert.Equal(t, KindQLearning, k)

	_, err = ParseKind("Q")
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestPerformanceAccumulates(t *testing.T) {
	a := NewModelBased("scorer")
	a.UpdatePerformance(10)
	a.UpdatePerformance(-2.5)
	assert.Equal(t, 7.5, a.Performance())

	var _ ValueProjector = NewQLearning("q", nil)
	var _ ValueProjector = NewUtilityBased("u", nil)
}
