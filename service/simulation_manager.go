package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/beka-birhanu/vinom-agents/agent"
	"github.com/beka-birhanu/vinom-agents/domain"
	"github.com/beka-birhanu/vinom-agents/scenario"
	"github.com/beka-birhanu/vinom-agents/service/i"
	"github.com/beka-birhanu/vinom-agents/simulation"
	"github.com/google/uuid"
)

const (
	defaultMaxSessions = 64
	defaultMaxTicks    = 5000
)

// Simulation manager errors.
var (
	ErrSessionNotFound      = errors.New("simulation session not found")
	ErrTooManySessions      = errors.New("too many live simulation sessions")
	ErrTickBudgetExhausted  = errors.New("simulation session used its tick budget")
	ErrInvalidSteps         = errors.New("steps must be positive")
	ErrMissingDependency    = errors.New("simulation manager dependency is missing")
	ErrUnknownAgentKind     = agent.ErrUnknownKind
	ErrInvalidScenario      = scenario.ErrUnknownScenario
	ErrInvalidScenarioSize  = scenario.ErrInvalidSize
	errScoreboardNotTouched = errors.New("run did not reach the goal")
)

// session is one live simulation and its bookkeeping. The embedded mutex serializes ticks.
type session struct {
	sim      *simulation.Simulation
	agent    agent.Agent
	run      *domain.Run
	history  []domain.TickRecord
	recorded bool
	sync.Mutex
}

// SimulationManager keeps live sessions in memory and archives their outcomes.
type SimulationManager struct {
	sessions    map[uuid.UUID]*session
	scoreboard  i.Scoreboard
	runs        i.RunRepo
	logger      i.Logger
	maxSessions int
	maxTicks    int
	sync.RWMutex
}

// Config holds the dependencies and limits of a SimulationManager.
type Config struct {
	Scoreboard  i.Scoreboard
	RunRepo     i.RunRepo
	Logger      i.Logger
	MaxSessions int // Live sessions allowed at once; zero selects 64
	MaxTicks    int // Tick budget of each session; zero selects 5000
}

// NewSimulationManager creates a manager with no sessions.
func NewSimulationManager(c *Config) (*SimulationManager, error) {
	if c == nil || c.Scoreboard == nil || c.RunRepo == nil || c.Logger == nil {
		return nil, ErrMissingDependency
	}

	maxSessions := c.MaxSessions
	if maxSessions <= 0 {
		maxSessions = defaultMaxSessions
	}
	maxTicks := c.MaxTicks
	if maxTicks <= 0 {
		maxTicks = defaultMaxTicks
	}

	return &SimulationManager{
		sessions:    make(map[uuid.UUID]*session),
		scoreboard:  c.Scoreboard,
		runs:        c.RunRepo,
		logger:      c.Logger,
		maxSessions: maxSessions,
		maxTicks:    maxTicks,
	}, nil
}

// NewSimulation builds the scenario, places an agent of the given kind and stores the session.
func (m *SimulationManager) NewSimulation(ctx context.Context, kind agent.Kind, cfg scenario.Config) (uuid.UUID, simulation.State, error) {
	if err := ctx.Err(); err != nil {
		return uuid.Nil, simulation.State{}, err
	}

	sim, a, err := scenario.Setup(kind, cfg, simulation.WithLogger(m.logger))
	if err != nil {
		m.logger.Warning(fmt.Sprintf("rejected simulation %s/%s: %s", kind, cfg.Name, err))
		return uuid.Nil, simulation.State{}, err
	}

	m.Lock()
	defer m.Unlock()
	if len(m.sessions) >= m.maxSessions {
		return uuid.Nil, simulation.State{}, ErrTooManySessions
	}

	name := cfg.Name
	if name == "" {
		name = scenario.Open
	}
	s := &session{sim: sim, agent: a}
	id := m.saveSession(s)
	s.run = domain.NewRun(id, string(kind), name, sim.Grid().Width(), sim.Grid().Height())

	m.logger.Info(fmt.Sprintf("started %s simulation %s on %s", kind, id, name))
	return id, sim.Snapshot(), nil
}

// saveSession stores s under a fresh ID. Callers hold the write lock.
func (m *SimulationManager) saveSession(s *session) uuid.UUID {
	id := uuid.New()
	for {
		if _, ok := m.sessions[id]; !ok {
			break
		}
		id = uuid.New()
	}
	m.sessions[id] = s
	return id
}

func (m *SimulationManager) session(id uuid.UUID) (*session, error) {
	m.RLock()
	defer m.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Tick advances the session by one time step.
func (m *SimulationManager) Tick(ctx context.Context, id uuid.UUID) (simulation.State, error) {
	return m.Run(ctx, id, 1)
}

// Run advances the session by up to steps time steps, stopping early at the tick budget or
// when ctx is done. It fails only if not a single tick could run.
func (m *SimulationManager) Run(ctx context.Context, id uuid.UUID, steps int) (simulation.State, error) {
	if steps <= 0 {
		return simulation.State{}, ErrInvalidSteps
	}

	s, err := m.session(id)
	if err != nil {
		return simulation.State{}, err
	}

	s.Lock()
	defer s.Unlock()

	remaining := m.maxTicks - s.sim.TimeStep()
	if remaining <= 0 {
		return s.sim.Snapshot(), ErrTickBudgetExhausted
	}

	for n := 0; n < min(steps, remaining); n++ {
		if err := ctx.Err(); err != nil {
			if n == 0 {
				return simulation.State{}, err
			}
			break
		}
		m.tick(ctx, id, s)
	}

	if s.sim.TimeStep() >= m.maxTicks {
		m.logger.Warning(fmt.Sprintf("simulation %s reached its budget of %d ticks", id, m.maxTicks))
	}
	return s.sim.Snapshot(), nil
}

// tick advances s once and records its history. Callers hold the session lock.
func (m *SimulationManager) tick(ctx context.Context, id uuid.UUID, s *session) {
	s.sim.Tick()

	in := s.agent.Inspect()
	s.history = append(s.history, domain.TickRecord{
		TimeStep:        s.sim.TimeStep(),
		Performance:     s.agent.Performance(),
		TotalReward:     in.TotalReward,
		ExplorationRate: in.ExplorationRate,
		ModelSize:       in.ModelSize,
	})

	if s.sim.GoalReached() && !s.run.GoalReached() {
		s.run.GoalTick = s.sim.TimeStep()
		m.logger.Info(fmt.Sprintf("simulation %s reached the goal after %d ticks", id, s.run.GoalTick))
		m.recordOutcome(ctx, s)
	}
}

// recordOutcome archives the run and, if it reached the goal, puts it on the scoreboard.
// Storage failures are logged; the session itself stays usable.
func (m *SimulationManager) recordOutcome(ctx context.Context, s *session) {
	s.run.Ticks = s.sim.TimeStep()
	s.run.Performance = s.agent.Performance()
	s.run.TotalReward = s.agent.Inspect().TotalReward

	if err := m.runs.Save(ctx, s.run); err != nil {
		m.logger.Error(fmt.Sprintf("archiving run %s: %s", s.run.ID, err))
	}

	if s.recorded {
		return
	}
	if err := m.score(ctx, s.run); err != nil {
		if !errors.Is(err, errScoreboardNotTouched) {
			m.logger.Error(fmt.Sprintf("recording score of run %s: %s", s.run.ID, err))
		}
		return
	}
	s.recorded = true
}

func (m *SimulationManager) score(ctx context.Context, run *domain.Run) error {
	if !run.GoalReached() {
		return errScoreboardNotTouched
	}
	return m.scoreboard.Record(ctx, run.Kind, run.ID, run.GoalTick)
}

// Snapshot returns the session state without advancing it.
func (m *SimulationManager) Snapshot(ctx context.Context, id uuid.UUID) (simulation.State, error) {
	s, err := m.session(id)
	if err != nil {
		return simulation.State{}, err
	}

	s.Lock()
	defer s.Unlock()
	return s.sim.Snapshot(), nil
}

// History returns a copy of the per-tick records of the session.
func (m *SimulationManager) History(ctx context.Context, id uuid.UUID) ([]domain.TickRecord, error) {
	s, err := m.session(id)
	if err != nil {
		return nil, err
	}

	s.Lock()
	defer s.Unlock()
	history := make([]domain.TickRecord, len(s.history))
	copy(history, s.history)
	return history, nil
}

// Close removes the session and archives its final outcome.
func (m *SimulationManager) Close(ctx context.Context, id uuid.UUID) (*domain.Run, error) {
	m.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.Unlock()
	if !ok {
		return nil, ErrSessionNotFound
	}

	s.Lock()
	defer s.Unlock()
	s.run.FinishedAt = time.Now()
	m.recordOutcome(ctx, s)

	m.logger.Info(fmt.Sprintf("closed simulation %s after %d ticks", id, s.run.Ticks))
	run := *s.run
	return &run, nil
}

// Scoreboard returns up to n of the fastest archived runs of kind.
func (m *SimulationManager) Scoreboard(ctx context.Context, kind agent.Kind, n int64) ([]domain.Score, error) {
	if _, err := agent.ParseKind(string(kind)); err != nil {
		return nil, err
	}
	return m.scoreboard.Top(ctx, string(kind), n)
}

// ArchivedRun returns the stored summary of a session.
func (m *SimulationManager) ArchivedRun(ctx context.Context, id uuid.UUID) (*domain.Run, error) {
	return m.runs.ByID(ctx, id)
}

// Live returns the number of open sessions.
func (m *SimulationManager) Live() int {
	m.RLock()
	defer m.RUnlock()
	return len(m.sessions)
}

// StopAll closes every session, archiving each outcome.
func (m *SimulationManager) StopAll(ctx context.Context) {
	m.RLock()
	ids := make([]uuid.UUID, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	m.RUnlock()

	for _, id := range ids {
		if _, err := m.Close(ctx, id); err != nil {
			m.logger.Warning(fmt.Sprintf("closing simulation %s: %s", id, err))
		}
	}
}
