package agent

import (
	"math"
	"math/rand"
	"sort"

	"github.com/beka-birhanu/vinom-agents/grid"
)

const (
	obstacleUtility = -10.0
	goalUtility     = 10.0
	stepReward      = -0.1

	// valueSweeps trades convergence for speed; the model keeps growing and re-converging.
	valueSweeps = 5

	unknownMovePenalty  = -1.0
	obstacleMovePenalty = -5.0

	defaultUtilityExploration = 0.1
	defaultDiscountFactor     = 0.9
)

// UtilityBased picks the move toward the neighbor of highest estimated utility.
// Utilities come from value iteration over the cells the agent has observed.
type UtilityBased struct {
	Base
	position        grid.Position
	hasPosition     bool
	model           Model
	utilities       map[grid.Position]float64
	goals           []grid.Position
	explorationRate float64
	discountFactor  float64
	rng             *rand.Rand
}

// UtilityOptions configures a UtilityBased agent.
type UtilityOptions struct {
	ExplorationRate float64
	DiscountFactor  float64
	Rand            *rand.Rand
}

// NewUtilityBased creates a utility-based agent. A nil opts uses the defaults
// (exploration 0.1, discount 0.9).
func NewUtilityBased(name string, opts *UtilityOptions) *UtilityBased {
	if opts == nil {
		opts = &UtilityOptions{ExplorationRate: defaultUtilityExploration}
	}

	if opts.ExplorationRate < 0 || opts.ExplorationRate > 1 {
		opts.ExplorationRate = defaultUtilityExploration
	}

	if opts.DiscountFactor <= 0 || opts.DiscountFactor > 1 {
		opts.DiscountFactor = defaultDiscountFactor
	}

	return &UtilityBased{
		Base:            Base{name: name},
		model:           make(Model),
		utilities:       make(map[grid.Position]float64),
		explorationRate: opts.ExplorationRate,
		discountFactor:  opts.DiscountFactor,
		rng:             newRand(opts.Rand),
	}
}

// Kind returns KindUtility.
func (u *UtilityBased) Kind() Kind { return KindUtility }

// Perceive records the percept in the model, tracks discovered goals and refreshes utilities.
func (u *UtilityBased) Perceive(p grid.Percept) {
	u.position = p.Position
	u.hasPosition = true

	u.model.observe(p)
	u.trackGoal(p.Position, p.CellContent)
	for d, cell := range p.Adjacents {
		u.trackGoal(p.Position.Step(d), cell)
	}

	u.UpdateUtilities()
}

func (u *UtilityBased) trackGoal(pos grid.Position, cell grid.Cell) {
	if cell != grid.Goal {
		return
	}
	for _, g := range u.goals {
		if g == pos {
			return
		}
	}
	u.goals = append(u.goals, pos)
}

// UpdateUtilities seeds utilities for newly known cells and runs the value-iteration sweeps.
// Nothing is propagated until at least one goal is known.
func (u *UtilityBased) UpdateUtilities() {
	for pos, cell := range u.model {
		switch cell {
		case grid.Obstacle:
			u.utilities[pos] = obstacleUtility
		case grid.Goal:
			u.utilities[pos] = goalUtility
		default:
			if _, ok := u.utilities[pos]; !ok {
				u.utilities[pos] = 0
			}
		}
	}

	if len(u.goals) == 0 {
		return
	}

	for i := 0; i < valueSweeps; i++ {
		u.sweep()
	}
}

// sweep performs one synchronous Bellman backup over every known free cell.
func (u *UtilityBased) sweep() {
	next := make(map[grid.Position]float64, len(u.utilities))
	for pos, v := range u.utilities {
		next[pos] = v
	}

	for pos, cell := range u.model {
		if cell != grid.Empty {
			continue
		}

		best := math.Inf(-1)
		for _, d := range grid.Directions {
			neighbor := pos.Step(d)
			if !u.model.passable(neighbor) {
				continue
			}
			reward := stepReward
			if u.model.IsGoal(neighbor) {
				reward = goalUtility
			}
			if v := reward + u.discountFactor*u.utilities[neighbor]; v > best {
				best = v
			}
		}

		// cells without an eligible neighbor keep their utility
		if !math.IsInf(best, -1) {
			next[pos] = best
		}
	}

	u.utilities = next
}

// Decide stays on a known goal, explores with probability ExplorationRate and otherwise
// moves toward the neighbor with the highest utility, breaking ties uniformly.
func (u *UtilityBased) Decide() grid.Direction {
	u.currentAction = grid.None
	if !u.hasPosition || u.model.IsGoal(u.position) {
		return u.currentAction
	}

	if u.rng.Float64() < u.explorationRate {
		candidates := u.model.notObstacle(u.position)
		if len(candidates) == 0 {
			candidates = grid.Directions[:]
		}
		u.currentAction = candidates[u.rng.Intn(len(candidates))]
		return u.currentAction
	}

	best := math.Inf(-1)
	var ties []grid.Direction
	for _, d := range grid.Directions {
		v := u.ActionUtility(d)
		switch {
		case v > best:
			best = v
			ties = []grid.Direction{d}
		case v == best:
			ties = append(ties, d)
		}
	}

	u.currentAction = ties[u.rng.Intn(len(ties))]
	return u.currentAction
}

// ActionUtility estimates the value of moving in direction d from the current position.
// A move onto a known goal is valued as the sweep backs it up: the goal reward plus the
// discounted goal utility.
func (u *UtilityBased) ActionUtility(d grid.Direction) float64 {
	next := u.position.Step(d)
	cell, known := u.model[next]
	switch {
	case !known:
		return unknownMovePenalty
	case cell == grid.Obstacle:
		return obstacleMovePenalty
	case cell == grid.Goal:
		return goalUtility + u.discountFactor*u.utilities[next]
	default:
		return u.utilities[next]
	}
}

// Utility returns the current utility of pos and whether it is known.
func (u *UtilityBased) Utility(pos grid.Position) (float64, bool) {
	v, ok := u.utilities[pos]
	return v, ok
}

// ExplorationRate returns the constant exploration probability.
func (u *UtilityBased) ExplorationRate() float64 { return u.explorationRate }

// ValueGrid projects utilities onto a width x height grid. Unknown cells read 0.
func (u *UtilityBased) ValueGrid(width, height int) [][]float64 {
	values := make([][]float64, height)
	for y := range values {
		values[y] = make([]float64, width)
		for x := range values[y] {
			values[y][x] = u.utilities[grid.Position{X: x, Y: y}]
		}
	}
	return values
}

// Inspect returns model size, known goals and exploration parameters.
func (u *UtilityBased) Inspect() Inspection {
	goals := make([]grid.Position, len(u.goals))
	copy(goals, u.goals)
	sort.Slice(goals, func(i, j int) bool {
		if goals[i].Y != goals[j].Y {
			return goals[i].Y < goals[j].Y
		}
		return goals[i].X < goals[j].X
	})

	return Inspection{
		Kind:            KindUtility,
		ModelSize:       len(u.model),
		KnownGoals:      goals,
		ExplorationRate: u.explorationRate,
		DiscountFactor:  u.discountFactor,
		LastAction:      u.currentAction,
	}
}
