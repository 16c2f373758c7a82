/*
Package agent implements the four agent architectures that navigate a grid.Grid.

Every agent follows the same perceive, decide, act cycle:
  - Reflex maps the current percept to an action through an ordered rule list.
  - ModelBased keeps a sparse map of what it has seen and plans with A*.
  - UtilityBased runs a few value-iteration sweeps over its map every tick.
  - QLearning learns state-action values online with an epsilon-greedy policy.

Agents own their learned state exclusively. Nothing here is safe for concurrent use;
the simulation loop drives each agent from a single goroutine.
*/
package agent

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/beka-birhanu/vinom-agents/grid"
)

var (
	ErrUnknownKind = errors.New("unknown agent kind")
)

// Kind identifies an agent architecture.
type Kind string

const (
	KindReflex    Kind = "reflex"
	KindModel     Kind = "model"
	KindUtility   Kind = "utility"
	KindQLearning Kind = "qlearning"
)

// Kinds lists every supported architecture.
var Kinds = []Kind{KindReflex, KindModel, KindUtility, KindQLearning}

// ParseKind validates a kind name.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Agent is the perceive, decide, act capability shared by all architectures.
type Agent interface {
	// Name returns the display name of the agent.
	Name() string

	// Kind returns the architecture of the agent.
	Kind() Kind

	// Perceive folds a percept into the agent's internal state.
	Perceive(p grid.Percept)

	// Decide selects the next action. grid.None means no movement.
	Decide() grid.Direction

	// Act returns the action chosen by the last Decide.
	Act() grid.Direction

	// Performance returns the accumulated performance measure.
	Performance() float64

	// UpdatePerformance adds value to the performance measure.
	UpdatePerformance(value float64)

	// Inspect returns a read-only view of the agent's internal state.
	Inspect() Inspection
}

// ValueProjector is implemented by agents that can project a learned value onto every cell.
type ValueProjector interface {
	ValueGrid(width, height int) [][]float64
}

// Base holds the fields every agent shares.
type Base struct {
	name          string
	performance   float64
	currentAction grid.Direction
}

// Name returns the display name of the agent.
func (b *Base) Name() string { return b.name }

// Performance returns the accumulated performance measure.
func (b *Base) Performance() float64 { return b.performance }

// UpdatePerformance adds value to the performance measure.
func (b *Base) UpdatePerformance(value float64) { b.performance += value }

// Act returns the action chosen by the last Decide.
func (b *Base) Act() grid.Direction { return b.currentAction }

// String describes the agent like "Explorer (Performance: 10)".
func (b *Base) String() string {
	return fmt.Sprintf("%s (Performance: %g)", b.name, b.performance)
}

// Inspection is the observable internal state of an agent.
// Fields that do not apply to an architecture are left at their zero value.
type Inspection struct {
	Kind               Kind             `json:"kind"`
	Rules              int              `json:"rules,omitempty"`
	ModelSize          int              `json:"model_size"`
	GoalPosition       *grid.Position   `json:"goal_position,omitempty"`
	KnownGoals         []grid.Position  `json:"known_goals,omitempty"`
	Plan               []grid.Direction `json:"plan,omitempty"`
	ExplorationRate    float64          `json:"exploration_rate,omitempty"`
	MinExplorationRate float64          `json:"min_exploration_rate,omitempty"`
	LearningRate       float64          `json:"learning_rate,omitempty"`
	DiscountFactor     float64          `json:"discount_factor,omitempty"`
	StepsTaken         int              `json:"steps_taken,omitempty"`
	TotalReward        float64          `json:"total_reward,omitempty"`
	GoalReached        bool             `json:"goal_reached,omitempty"`
	QTableSize         int              `json:"q_table_size,omitempty"`
	VisitCounts        map[string]int   `json:"visit_counts,omitempty"`
	ValueGrid          [][]float64      `json:"value_grid,omitempty"`
	LastAction         grid.Direction   `json:"last_action,omitempty"`
}

func newRand(r *rand.Rand) *rand.Rand {
	if r != nil {
		return r
	}
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}
