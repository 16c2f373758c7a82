package grid

// Percept is what an agent observes of the grid in a single tick.
type Percept struct {
	Position      Position           `json:"position"`
	Adjacents     map[Direction]Cell `json:"adjacents"`
	CellContent   Cell               `json:"cell_content"`
	GoalVisible   bool               `json:"goal_visible"`
	GoalDirection Direction          `json:"goal_direction,omitempty"`
}

// Percept builds the observation for an agent standing at pos.
//
// Neighbors outside the grid read as Obstacle. A goal is visible when it shares the agent's
// row or column; the first such goal in insertion order decides the direction. There is no
// occlusion: obstacles between the agent and the goal do not hide it.
func (g *Grid) Percept(pos Position) Percept {
	adjacents := make(map[Direction]Cell, len(Directions))
	for _, d := range Directions {
		adjacents[d] = g.At(pos.Step(d))
	}

	p := Percept{
		Position:    pos,
		Adjacents:   adjacents,
		CellContent: g.At(pos),
	}

	for _, goal := range g.goals {
		if goal.X != pos.X && goal.Y != pos.Y {
			continue
		}
		p.GoalVisible = true
		switch {
		case goal.X == pos.X && goal.Y < pos.Y:
			p.GoalDirection = Up
		case goal.X == pos.X && goal.Y > pos.Y:
			p.GoalDirection = Down
		case goal.X == pos.X:
			// standing on the goal
			p.GoalDirection = None
		case goal.X < pos.X:
			p.GoalDirection = Left
		default:
			p.GoalDirection = Right
		}
		break
	}

	return p
}

// Open returns the directions whose neighbor is not an obstacle, in fixed priority order.
func (p Percept) Open() []Direction {
	var open []Direction
	for _, d := range Directions {
		if p.Adjacents[d] != Obstacle {
			open = append(open, d)
		}
	}
	return open
}
