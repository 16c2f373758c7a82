/*
Package simulation drives agents through a grid one discrete tick at a time.

A tick always runs in the same order:
 1. every registered agent gets a percept built from the pre-tick positions, then perceives it
 2. each agent decides and its action is applied, in registration order
 3. the environment update hook runs, if one is configured
 4. the time step advances by one

The Simulation owns the grid and the position map; each agent owns its learned state.
A Simulation is not safe for concurrent use.
*/
package simulation

import (
	"errors"
	"fmt"

	"github.com/beka-birhanu/vinom-agents/agent"
	"github.com/beka-birhanu/vinom-agents/grid"
)

// Simulation-related errors.
var (
	ErrNilGrid         = errors.New("simulation needs a grid")
	ErrInvalidStart    = errors.New("start position is out of the grid or blocked")
	ErrAgentRegistered = errors.New("agent is already registered")
)

// GoalArrivalReward is added to an agent's performance each time it steps onto a goal.
const GoalArrivalReward = 10.0

// UpdateFunc is the environment update hook. It runs once per tick after every agent acted
// and before the time step advances.
type UpdateFunc func(g *grid.Grid, timeStep int)

// Logger receives tick-level diagnostics.
type Logger interface {
	Debug(msg string)
}

type noopLogger struct{}

func (noopLogger) Debug(string) {}

// Option configures a Simulation.
type Option func(*Simulation)

// WithUpdate installs the environment update hook.
func WithUpdate(fn UpdateFunc) Option {
	return func(s *Simulation) {
		s.update = fn
	}
}

// WithLogger routes tick diagnostics to l.
func WithLogger(l Logger) Option {
	return func(s *Simulation) {
		if l != nil {
			s.logger = l
		}
	}
}

// Simulation is one run of agents on a grid.
type Simulation struct {
	grid        *grid.Grid
	agents      []agent.Agent
	positions   map[agent.Agent]grid.Position
	timeStep    int
	goalReached bool
	update      UpdateFunc
	logger      Logger
}

// New creates a simulation over g with no agents.
func New(g *grid.Grid, opts ...Option) (*Simulation, error) {
	if g == nil {
		return nil, ErrNilGrid
	}

	s := &Simulation{
		grid:      g,
		positions: make(map[agent.Agent]grid.Position),
		logger:    noopLogger{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// AddAgent registers a at pos. Agents act in the order they were added.
func (s *Simulation) AddAgent(a agent.Agent, pos grid.Position) error {
	if _, ok := s.positions[a]; ok {
		return fmt.Errorf("%w: %s", ErrAgentRegistered, a.Name())
	}
	if !s.grid.InBounds(pos) || s.grid.At(pos) == grid.Obstacle {
		return fmt.Errorf("%w: %v", ErrInvalidStart, pos)
	}

	s.agents = append(s.agents, a)
	s.positions[a] = pos
	return nil
}

// Percept builds the observation for a. The boolean is false when a is not registered.
func (s *Simulation) Percept(a agent.Agent) (grid.Percept, bool) {
	pos, ok := s.positions[a]
	if !ok {
		return grid.Percept{}, false
	}
	return s.grid.Percept(pos), true
}

// ApplyAction moves a one cell in direction d and reports whether it moved.
// Invalid directions and moves into walls or obstacles leave the agent in place.
// Arriving on a goal adds GoalArrivalReward to the agent's performance.
func (s *Simulation) ApplyAction(a agent.Agent, d grid.Direction) bool {
	pos, ok := s.positions[a]
	if !ok || !d.Valid() {
		return false
	}

	next := pos.Step(d)
	if s.grid.At(next) == grid.Obstacle {
		return false
	}

	s.positions[a] = next
	if s.grid.At(next) == grid.Goal {
		a.UpdatePerformance(GoalArrivalReward)
		s.goalReached = true
	}
	return true
}

// Tick advances the simulation by one time step.
func (s *Simulation) Tick() {
	percepts := make([]grid.Percept, len(s.agents))
	perceived := make([]bool, len(s.agents))
	for i, a := range s.agents {
		percepts[i], perceived[i] = s.Percept(a)
	}

	for i, a := range s.agents {
		if perceived[i] {
			a.Perceive(percepts[i])
		}
	}

	for i, a := range s.agents {
		if !perceived[i] {
			continue
		}
		a.Decide()
		d := a.Act()
		moved := s.ApplyAction(a, d)
		if _, quiet := s.logger.(noopLogger); !quiet {
			s.logger.Debug(fmt.Sprintf("t=%d %s action=%q moved=%t position=%v",
				s.timeStep, a.Name(), d, moved, s.positions[a]))
		}
	}

	if s.update != nil {
		s.update(s.grid, s.timeStep)
	}
	s.timeStep++
}

// Run performs steps ticks.
func (s *Simulation) Run(steps int) {
	for i := 0; i < steps; i++ {
		s.Tick()
	}
}

// Grid returns the simulated grid.
func (s *Simulation) Grid() *grid.Grid { return s.grid }

// Agents returns the registered agents in registration order.
func (s *Simulation) Agents() []agent.Agent {
	agents := make([]agent.Agent, len(s.agents))
	copy(agents, s.agents)
	return agents
}

// Position returns the current position of a.
func (s *Simulation) Position(a agent.Agent) (grid.Position, bool) {
	pos, ok := s.positions[a]
	return pos, ok
}

// TimeStep returns the number of completed ticks.
func (s *Simulation) TimeStep() int { return s.timeStep }

// GoalReached reports whether any agent has arrived on a goal.
func (s *Simulation) GoalReached() bool { return s.goalReached }
