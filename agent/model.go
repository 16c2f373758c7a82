package agent

import "github.com/beka-birhanu/vinom-agents/grid"

// Model is an agent's private sparse map of the grid. Unknown cells are absent.
type Model map[grid.Position]grid.Cell

// observe records the percept's current cell and its four neighbors.
func (m Model) observe(p grid.Percept) {
	m[p.Position] = p.CellContent
	for d, cell := range p.Adjacents {
		m[p.Position.Step(d)] = cell
	}
}

// Known reports whether pos has been observed.
func (m Model) Known(pos grid.Position) bool {
	_, ok := m[pos]
	return ok
}

// IsObstacle reports whether pos is known to be an obstacle.
func (m Model) IsObstacle(pos grid.Position) bool {
	cell, ok := m[pos]
	return ok && cell == grid.Obstacle
}

// IsGoal reports whether pos is known to be a goal.
func (m Model) IsGoal(pos grid.Position) bool {
	cell, ok := m[pos]
	return ok && cell == grid.Goal
}

// passable reports whether pos is known and not an obstacle.
func (m Model) passable(pos grid.Position) bool {
	cell, ok := m[pos]
	return ok && cell != grid.Obstacle
}

// notObstacle lists the moves from pos that are not known to hit an obstacle.
// Unknown neighbors count as open.
func (m Model) notObstacle(pos grid.Position) []grid.Direction {
	var result []grid.Direction
	for _, d := range grid.Directions {
		if !m.IsObstacle(pos.Step(d)) {
			result = append(result, d)
		}
	}
	return result
}
