package agent

import (
	"math/rand"

	"github.com/beka-birhanu/vinom-agents/grid"
)

// ConditionType tags the predicate a rule evaluates.
type ConditionType int

const (
	// Always matches every percept.
	Always ConditionType = iota
	// AtGoal matches when the agent stands on a goal cell.
	AtGoal
	// GoalVisible matches when a goal shares the agent's row or column.
	GoalVisible
	// AnyOpen matches when at least one neighbor is not an obstacle.
	AnyOpen
	// Blocked matches when the neighbor in Condition.Direction is an obstacle.
	Blocked
	// Open matches when the neighbor in Condition.Direction is not an obstacle.
	Open
)

// Condition is a predicate over a percept.
type Condition struct {
	Type      ConditionType
	Direction grid.Direction
}

// Matches evaluates the condition against p.
func (c Condition) Matches(p grid.Percept) bool {
	switch c.Type {
	case Always:
		return true
	case AtGoal:
		return p.CellContent == grid.Goal
	case GoalVisible:
		return p.GoalVisible
	case AnyOpen:
		return len(p.Open()) > 0
	case Blocked:
		return p.Adjacents[c.Direction] == grid.Obstacle
	case Open:
		cell, ok := p.Adjacents[c.Direction]
		return ok && cell != grid.Obstacle
	default:
		return false
	}
}

// ActionType tags how a rule produces its action.
type ActionType int

const (
	// Stay produces no movement.
	Stay ActionType = iota
	// Move produces the fixed Action.Direction.
	Move
	// TowardGoal produces the percept's goal direction.
	TowardGoal
	// RandomOpen picks uniformly among the open neighbors.
	RandomOpen
	// FirstOpen picks the first open neighbor in up, down, left, right order.
	FirstOpen
)

// Action produces a direction from a percept.
type Action struct {
	Type      ActionType
	Direction grid.Direction
}

func (a Action) resolve(p grid.Percept, rng *rand.Rand) grid.Direction {
	switch a.Type {
	case Move:
		return a.Direction
	case TowardGoal:
		return p.GoalDirection
	case RandomOpen:
		open := p.Open()
		if len(open) == 0 {
			return grid.None
		}
		return open[rng.Intn(len(open))]
	case FirstOpen:
		open := p.Open()
		if len(open) == 0 {
			return grid.None
		}
		return open[0]
	default:
		return grid.None
	}
}

// Rule pairs a condition with the action to take when it matches.
type Rule struct {
	Condition Condition
	Action    Action
}

// Reflex maps percepts directly to actions with condition-action rules.
// Rules are evaluated in registration order and the first match wins.
type Reflex struct {
	Base
	percept   grid.Percept
	perceived bool
	rules     []Rule
	rng       *rand.Rand
}

// ReflexOptions configures a Reflex agent.
type ReflexOptions struct {
	Rules []Rule
	Rand  *rand.Rand
}

// NewReflex creates a reflex agent. A nil opts creates an agent without rules.
func NewReflex(name string, opts *ReflexOptions) *Reflex {
	if opts == nil {
		opts = &ReflexOptions{}
	}

	r := &Reflex{
		Base: Base{name: name},
		rng:  newRand(opts.Rand),
	}
	for _, rule := range opts.Rules {
		r.AddRule(rule.Condition, rule.Action)
	}
	return r
}

// DefaultRules returns the rule set of the demo explorer:
// stay on a goal, head toward a visible goal, otherwise wander through an open neighbor.
func DefaultRules() []Rule {
	return []Rule{
		{Condition: Condition{Type: AtGoal}, Action: Action{Type: Stay}},
		{Condition: Condition{Type: GoalVisible}, Action: Action{Type: TowardGoal}},
		{Condition: Condition{Type: AnyOpen}, Action: Action{Type: RandomOpen}},
	}
}

// Kind returns KindReflex.
func (r *Reflex) Kind() Kind { return KindReflex }

// AddRule appends a rule with the lowest priority so far.
func (r *Reflex) AddRule(c Condition, a Action) {
	r.rules = append(r.rules, Rule{Condition: c, Action: a})
}

// Rules returns a copy of the rule list in priority order.
func (r *Reflex) Rules() []Rule {
	rules := make([]Rule, len(r.rules))
	copy(rules, r.rules)
	return rules
}

// Perceive stores the percept. Reflex agents keep no other state.
func (r *Reflex) Perceive(p grid.Percept) {
	r.percept = p
	r.perceived = true
}

// Decide returns the action of the first rule whose condition matches, or grid.None.
func (r *Reflex) Decide() grid.Direction {
	r.currentAction = grid.None
	if !r.perceived {
		return r.currentAction
	}

	for _, rule := range r.rules {
		if rule.Condition.Matches(r.percept) {
			r.currentAction = rule.Action.resolve(r.percept, r.rng)
			return r.currentAction
		}
	}
	return r.currentAction
}

// Inspect returns the rule count.
func (r *Reflex) Inspect() Inspection {
	return Inspection{
		Kind:       KindReflex,
		Rules:      len(r.rules),
		LastAction: r.currentAction,
	}
}
