package agent

import "github.com/beka-birhanu/vinom-agents/grid"

// speculativeFillLimit bounds the presumed-free fill toward increasing coordinates.
// Grids wider or taller than this are only partially filled.
const speculativeFillLimit = 100

// ModelBased maintains a sparse map of the grid and follows A* plans through it.
type ModelBased struct {
	Base
	position     grid.Position
	hasPosition  bool
	model        Model
	goalPosition *grid.Position
	plan         []grid.Direction
	replans      int
}

// NewModelBased creates a model-based agent with an empty model.
func NewModelBased(name string) *ModelBased {
	return &ModelBased{
		Base:  Base{name: name},
		model: make(Model),
	}
}

// Kind returns KindModel.
func (m *ModelBased) Kind() Kind { return KindModel }

// Perceive updates position, goal knowledge and the model.
//
// When a goal is sighted along an axis, cells along that axis that are still unknown are
// presumed free so planning can start before the goal is localized.
func (m *ModelBased) Perceive(p grid.Percept) {
	m.position = p.Position
	m.hasPosition = true

	m.Memorize(p.Position, p.CellContent)
	for d, cell := range p.Adjacents {
		m.Memorize(p.Position.Step(d), cell)
	}

	if p.GoalVisible && p.GoalDirection != grid.None {
		m.fillToward(p.GoalDirection)
	}

	// drop a plan that now runs into a known obstacle
	if len(m.plan) > 0 && m.model.IsObstacle(m.position.Step(m.plan[0])) {
		m.plan = nil
	}
}

// Memorize records a cell in the model. A goal cell localizes the goal if none is known yet.
// Perceive memorizes the four neighbors too, so a goal is localized once it is adjacent,
// one step before the agent stands on it.
func (m *ModelBased) Memorize(pos grid.Position, cell grid.Cell) {
	m.model[pos] = cell
	if cell == grid.Goal && m.goalPosition == nil {
		goal := pos
		m.goalPosition = &goal
	}
}

func (m *ModelBased) fillToward(d grid.Direction) {
	x, y := m.position.X, m.position.Y
	presume := func(pos grid.Position) {
		if _, known := m.model[pos]; !known {
			m.model[pos] = grid.Empty
		}
	}

	switch d {
	case grid.Up:
		for py := 0; py < y; py++ {
			presume(grid.Position{X: x, Y: py})
		}
	case grid.Down:
		for py := y + 1; py < speculativeFillLimit; py++ {
			presume(grid.Position{X: x, Y: py})
		}
	case grid.Left:
		for px := 0; px < x; px++ {
			presume(grid.Position{X: px, Y: y})
		}
	case grid.Right:
		for px := x + 1; px < speculativeFillLimit; px++ {
			presume(grid.Position{X: px, Y: y})
		}
	}
}

// Decide follows the current plan, replanning with A* when it is empty.
// Without a usable plan the agent explores: the first neighbor in up, down, left, right
// order that is not a known obstacle, or up when every neighbor is blocked.
func (m *ModelBased) Decide() grid.Direction {
	m.currentAction = grid.None
	if !m.hasPosition {
		return m.currentAction
	}

	if m.goalPosition != nil && m.position == *m.goalPosition {
		return m.currentAction
	}

	if len(m.plan) == 0 && m.goalPosition != nil {
		m.plan = planPath(m.model, m.position, *m.goalPosition)
		if len(m.plan) > 0 {
			m.replans++
		}
	}

	if len(m.plan) == 0 {
		m.currentAction = m.explore()
		return m.currentAction
	}

	m.currentAction = m.plan[0]
	m.plan = m.plan[1:]
	return m.currentAction
}

func (m *ModelBased) explore() grid.Direction {
	if open := m.model.notObstacle(m.position); len(open) > 0 {
		return open[0]
	}
	return grid.Up
}

// Replan discards the current plan so the next Decide recomputes it.
func (m *ModelBased) Replan() {
	m.plan = nil
}

// Plan returns the remaining planned moves.
func (m *ModelBased) Plan() []grid.Direction {
	plan := make([]grid.Direction, len(m.plan))
	copy(plan, m.plan)
	return plan
}

// GoalPosition returns the localized goal, if any.
func (m *ModelBased) GoalPosition() (grid.Position, bool) {
	if m.goalPosition == nil {
		return grid.Position{}, false
	}
	return *m.goalPosition, true
}

// Replans returns how many non-empty plans A* has produced.
func (m *ModelBased) Replans() int { return m.replans }

// Inspect returns model size, goal and plan.
func (m *ModelBased) Inspect() Inspection {
	in := Inspection{
		Kind:       KindModel,
		ModelSize:  len(m.model),
		Plan:       m.Plan(),
		LastAction: m.currentAction,
	}
	if goal, ok := m.GoalPosition(); ok {
		in.GoalPosition = &goal
	}
	return in
}

// Knows returns the modeled content of pos.
func (m *ModelBased) Knows(pos grid.Position) (grid.Cell, bool) {
	cell, ok := m.model[pos]
	return cell, ok
}
