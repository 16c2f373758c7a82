package agent

import (
	"math"
	"math/rand"

	"github.com/beka-birhanu/vinom-agents/grid"
)

const (
	goalReward       = 20.0
	bumpReward       = -10.0
	qStepReward      = -0.1
	obstaclePenalty  = 5.0
	qObstacleDisplay = -10.0
	qGoalDisplay     = 10.0

	defaultLearningRate       = 0.2
	defaultQExploration       = 0.3
	defaultMinExplorationRate = 0.05

	// perceive-side schedule: rate = initial * 0.95^(steps/20)
	perceiveDecayBase  = 0.95
	perceiveDecaySteps = 20.0
	// decide-side schedule applied on top of the stored rate: rate * 0.9^(steps/10)
	decideDecayBase  = 0.9
	decideDecaySteps = 10.0
)

type stateAction struct {
	state  grid.Position
	action grid.Direction
}

// QLearning learns state-action values online and acts epsilon-greedily on them.
type QLearning struct {
	Base
	percept      grid.Percept
	perceived    bool
	position     grid.Position
	lastPosition grid.Position
	hasLast      bool
	lastAction   grid.Direction
	model        Model
	qValues      map[stateAction]float64
	visitCounts  map[grid.Position]int

	learningRate           float64
	discountFactor         float64
	explorationRate        float64
	initialExplorationRate float64
	minExplorationRate     float64

	stepsTaken  int
	totalReward float64
	goalReached bool
	rng         *rand.Rand
}

// QLearningOptions configures a QLearning agent.
type QLearningOptions struct {
	LearningRate       float64
	DiscountFactor     float64
	ExplorationRate    float64
	MinExplorationRate float64
	Rand               *rand.Rand
}

// NewQLearning creates a Q-learning agent. Zero or out-of-range options fall back to
// alpha 0.2, gamma 0.9, epsilon 0.3 and an exploration floor of 0.05.
func NewQLearning(name string, opts *QLearningOptions) *QLearning {
	if opts == nil {
		opts = &QLearningOptions{}
	}

	if opts.LearningRate <= 0 || opts.LearningRate > 1 {
		opts.LearningRate = defaultLearningRate
	}

	if opts.DiscountFactor <= 0 || opts.DiscountFactor > 1 {
		opts.DiscountFactor = defaultDiscountFactor
	}

	if opts.ExplorationRate <= 0 || opts.ExplorationRate > 1 {
		opts.ExplorationRate = defaultQExploration
	}

	if opts.MinExplorationRate <= 0 || opts.MinExplorationRate > opts.ExplorationRate {
		opts.MinExplorationRate = math.Min(defaultMinExplorationRate, opts.ExplorationRate)
	}

	return &QLearning{
		Base:                   Base{name: name},
		model:                  make(Model),
		qValues:                make(map[stateAction]float64),
		visitCounts:            make(map[grid.Position]int),
		learningRate:           opts.LearningRate,
		discountFactor:         opts.DiscountFactor,
		explorationRate:        opts.ExplorationRate,
		initialExplorationRate: opts.ExplorationRate,
		minExplorationRate:     opts.MinExplorationRate,
		rng:                    newRand(opts.Rand),
	}
}

// Kind returns KindQLearning.
func (q *QLearning) Kind() Kind { return KindQLearning }

// Perceive updates the model, learns from the previous transition and decays exploration.
//
// The transition reward is +20 for landing on a goal, -10 when the position did not change
// and -0.1 otherwise.
func (q *QLearning) Perceive(p grid.Percept) {
	q.percept = p
	q.perceived = true
	q.lastPosition = q.position
	q.position = p.Position
	q.visitCounts[q.position]++
	q.model.observe(p)

	if q.hasLast && q.lastAction != grid.None {
		reward := qStepReward
		switch {
		case p.CellContent == grid.Goal:
			reward = goalReward
			q.goalReached = true
		case q.position == q.lastPosition:
			reward = bumpReward
		}
		q.totalReward += reward
		q.Learn(q.lastPosition, q.lastAction, reward, q.position)
	}
	// lastAction is left untouched while Decide stays on a goal, so a resting agent keeps
	// reinforcing the move that reached it
	q.hasLast = true

	q.stepsTaken++
	q.explorationRate = math.Max(
		q.minExplorationRate,
		q.initialExplorationRate*math.Pow(perceiveDecayBase, float64(q.stepsTaken)/perceiveDecaySteps),
	)
}

// Learn applies one temporal-difference update:
// Q(s,a) += alpha * (r + gamma * max_a' Q(s',a') - Q(s,a)).
func (q *QLearning) Learn(state grid.Position, action grid.Direction, reward float64, next grid.Position) {
	current := q.qValues[stateAction{state, action}]
	target := reward + q.discountFactor*q.maxQ(next)
	q.qValues[stateAction{state, action}] = current + q.learningRate*(target-current)
}

func (q *QLearning) maxQ(state grid.Position) float64 {
	best := math.Inf(-1)
	for _, d := range grid.Directions {
		best = math.Max(best, q.qValues[stateAction{state, d}])
	}
	return best
}

// QValue returns Q(state, action); unseen pairs are 0.
func (q *QLearning) QValue(state grid.Position, action grid.Direction) float64 {
	return q.qValues[stateAction{state, action}]
}

// CurrentExplorationRate returns the rate Decide samples against: the stored rate decayed
// a second time by the number of steps taken, floored at the minimum.
func (q *QLearning) CurrentExplorationRate() float64 {
	return math.Max(
		q.minExplorationRate,
		q.explorationRate*math.Pow(decideDecayBase, float64(q.stepsTaken)/decideDecaySteps),
	)
}

// Decide stays on a goal and otherwise acts epsilon-greedily on the Q-table.
//
// Exploring picks uniformly among moves not known to hit an obstacle. Exploiting picks the
// highest Q-value, with known-obstacle moves penalized, breaking ties uniformly.
func (q *QLearning) Decide() grid.Direction {
	q.currentAction = grid.None
	if !q.perceived || q.percept.CellContent == grid.Goal {
		return q.currentAction
	}

	if q.rng.Float64() < q.CurrentExplorationRate() {
		candidates := q.model.notObstacle(q.position)
		if len(candidates) == 0 {
			candidates = grid.Directions[:]
		}
		q.currentAction = candidates[q.rng.Intn(len(candidates))]
	} else {
		q.currentAction = q.bestAction()
	}

	q.lastAction = q.currentAction
	return q.currentAction
}

func (q *QLearning) bestAction() grid.Direction {
	best := math.Inf(-1)
	var ties []grid.Direction
	for _, d := range grid.Directions {
		v := q.qValues[stateAction{q.position, d}]
		if q.model.IsObstacle(q.position.Step(d)) {
			v -= obstaclePenalty
		}
		switch {
		case v > best:
			best = v
			ties = []grid.Direction{d}
		case v == best:
			ties = append(ties, d)
		}
	}
	return ties[q.rng.Intn(len(ties))]
}

// TotalReward returns the sum of every transition reward so far.
func (q *QLearning) TotalReward() float64 { return q.totalReward }

// ExplorationRate returns the stored, perceive-side exploration rate.
func (q *QLearning) ExplorationRate() float64 { return q.explorationRate }

// StepsTaken returns the number of percepts processed.
func (q *QLearning) StepsTaken() int { return q.stepsTaken }

// VisitCount returns how often pos has been perceived.
func (q *QLearning) VisitCount(pos grid.Position) int { return q.visitCounts[pos] }

// QValueGrid projects the Q-table onto a width x height grid: -10 for modeled obstacles,
// +10 for modeled goals, otherwise the best Q-value at the cell (0 when unknown).
func (q *QLearning) QValueGrid(width, height int) [][]float64 {
	values := make([][]float64, height)
	for y := range values {
		values[y] = make([]float64, width)
		for x := range values[y] {
			pos := grid.Position{X: x, Y: y}
			cell, known := q.model[pos]
			switch {
			case !known:
				values[y][x] = 0
			case cell == grid.Obstacle:
				values[y][x] = qObstacleDisplay
			case cell == grid.Goal:
				values[y][x] = qGoalDisplay
			default:
				values[y][x] = q.maxQ(pos)
			}
		}
	}
	return values
}

// ValueGrid is QValueGrid.
func (q *QLearning) ValueGrid(width, height int) [][]float64 {
	return q.QValueGrid(width, height)
}

// Inspect returns learning parameters, reward bookkeeping and visit counts.
func (q *QLearning) Inspect() Inspection {
	visits := make(map[string]int, len(q.visitCounts))
	for pos, n := range q.visitCounts {
		visits[pos.String()] = n
	}

	return Inspection{
		Kind:               KindQLearning,
		ModelSize:          len(q.model),
		ExplorationRate:    q.explorationRate,
		MinExplorationRate: q.minExplorationRate,
		LearningRate:       q.learningRate,
		DiscountFactor:     q.discountFactor,
		StepsTaken:         q.stepsTaken,
		TotalReward:        q.totalReward,
		GoalReached:        q.goalReached,
		QTableSize:         len(q.qValues),
		VisitCounts:        visits,
		LastAction:         q.currentAction,
	}
}
