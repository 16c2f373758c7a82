package service

import (
	"context"
	"io"
	"testing"

	"github.com/beka-birhanu/vinom-agents/agent"
	"github.com/beka-birhanu/vinom-agents/domain"
	"github.com/beka-birhanu/vinom-agents/grid"
	logger "github.com/beka-birhanu/vinom-agents/infrastruture/log"
	"github.com/beka-birhanu/vinom-agents/infrastruture/repo"
	"github.com/beka-birhanu/vinom-agents/infrastruture/sortedstorage"
	"github.com/beka-birhanu/vinom-agents/scenario"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newManager(t *testing.T, maxSessions, maxTicks int) *SimulationManager {
	t.Helper()
	board, err := sortedstorage.NewMemoryScoreboard(10)
	require.NoError(t, err)
	l, err := logger.New("SIMULATION", "", io.Discard)
	require.NoError(t, err)

	m, err := NewSimulationManager(&Config{
		Scoreboard:  board,
		RunRepo:     repo.NewMemoryRunRepo(),
		Logger:      l,
		MaxSessions: maxSessions,
		MaxTicks:    maxTicks,
	})
	require.NoError(t, err)
	return m
}

var corridor = scenario.Config{Name: scenario.Corridor, Width: 4}

func TestNewSimulationManager(t *testing.T) {
	_, err := NewSimulationManager(nil)
	assert.ErrorIs(t, err, ErrMissingDependency)

	_, err = NewSimulationManager(&Config{RunRepo: repo.NewMemoryRunRepo()})
	assert.ErrorIs(t, err, ErrMissingDependency)

	m := newManager(t, 0, 0)
	assert.Equal(t, defaultMaxSessions, m.maxSessions)
	assert.Equal(t, defaultMaxTicks, m.maxTicks)
}

func TestSimulationLifecycle(t *testing.T) {
	ctx := context.Background()
	m := newManager(t, 4, 100)

	id, state, err := m.NewSimulation(ctx, agent.KindReflex, corridor)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, id)
	assert.Zero(t, state.TimeStep)
	require.Len(t, state.Agents, 1)
	assert.Equal(t, grid.Position{X: 0, Y: 0}, state.Agents[0].Position)
	assert.Equal(t, 1, m.Live())

	state, err = m.Tick(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 1, state.TimeStep)
	assert.False(t, state.GoalReached)

	state, err = m.Run(ctx, id, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, state.TimeStep)
	assert.True(t, state.GoalReached)
	assert.Equal(t, 10.0, state.Agents[0].Performance)

	history, err := m.History(ctx, id)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, 1, history[0].TimeStep)
	assert.Equal(t, 10.0, history[2].Performance)

	archived, err := m.ArchivedRun(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 3, archived.GoalTick)
	assert.Equal(t, "corridor", archived.Scenario)

	top, err := m.Scoreboard(ctx, agent.KindReflex, 5)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, domain.Score{RunID: id, Ticks: 3}, top[0])

	snap, err := m.Snapshot(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 3, snap.TimeStep)

	run, err := m.Close(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 3, run.Ticks)
	assert.False(t, run.FinishedAt.IsZero())
	assert.Zero(t, m.Live())

	_, err = m.Snapshot(ctx, id)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = m.Close(ctx, id)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	top, err = m.Scoreboard(ctx, agent.KindReflex, 5)
	require.NoError(t, err)
	assert.Len(t, top, 1, "closing does not score a run twice")
}

func TestTickBudget(t *testing.T) {
	ctx := context.Background()
	m := newManager(t, 4, 5)

	id, _, err := m.NewSimulation(ctx, agent.KindModel, scenario.Config{Name: scenario.Maze})
	require.NoError(t, err)

	state, err := m.Run(ctx, id, 10)
	require.NoError(t, err)
	assert.Equal(t, 5, state.TimeStep)

	state, err = m.Tick(ctx, id)
	assert.ErrorIs(t, err, ErrTickBudgetExhausted)
	assert.Equal(t, 5, state.TimeStep)
}

func TestCloseWithoutGoal(t *testing.T) {
	ctx := context.Background()
	m := newManager(t, 4, 100)

	id, _, err := m.NewSimulation(ctx, agent.KindUtility, scenario.Config{Name: scenario.Maze, Seed: 1})
	require.NoError(t, err)
	_, err = m.Tick(ctx, id)
	require.NoError(t, err)

	run, err := m.Close(ctx, id)
	require.NoError(t, err)
	assert.False(t, run.GoalReached())
	assert.Equal(t, 1, run.Ticks)

	archived, err := m.ArchivedRun(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.NotReached, archived.GoalTick)

	top, err := m.Scoreboard(ctx, agent.KindUtility, 5)
	require.NoError(t, err)
	assert.Empty(t, top)
}

func TestManagerErrors(t *testing.T) {
	ctx := context.Background()
	m := newManager(t, 1, 100)

	_, _, err := m.NewSimulation(ctx, "psychic", corridor)
	assert.ErrorIs(t, err, ErrUnknownAgentKind)

	_, _, err = m.NewSimulation(ctx, agent.KindReflex, scenario.Config{Name: "castle"})
	assert.ErrorIs(t, err, ErrInvalidScenario)

	_, _, err = m.NewSimulation(ctx, agent.KindReflex, scenario.Config{Name: scenario.Open, Width: -4})
	assert.ErrorIs(t, err, ErrInvalidScenarioSize)

	id, _, err := m.NewSimulation(ctx, agent.KindReflex, corridor)
	require.NoError(t, err)

	_, _, err = m.NewSimulation(ctx, agent.KindReflex, corridor)
	assert.ErrorIs(t, err, ErrTooManySessions)

	_, err = m.Run(ctx, id, 0)
	assert.ErrorIs(t, err, ErrInvalidSteps)

	_, err = m.Tick(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrSessionNotFound)

	_, err = m.Scoreboard(ctx, "psychic", 3)
	assert.ErrorIs(t, err, ErrUnknownAgentKind)

	_, err = m.ArchivedRun(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrRunNotFound)

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = m.Run(canceled, id, 3)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStopAll(t *testing.T) {
	ctx := context.Background()
	m := newManager(t, 4, 100)

	var ids []uuid.UUID
	for _, kind := range agent.Kinds {
		id, _, err := m.NewSimulation(ctx, kind, scenario.Config{Name: scenario.Open, Seed: 3})
		require.NoError(t, err)
		ids = append(ids, id)
	}
	assert.Equal(t, len(agent.Kinds), m.Live())

	m.StopAll(ctx)
	assert.Zero(t, m.Live())
	for _, id := range ids {
		_, err := m.ArchivedRun(ctx, id)
		assert.NoError(t, err)
	}
}
