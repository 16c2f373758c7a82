package grid

import "fmt"

// Position is a 0-indexed grid coordinate. It doubles as the state key for planning and learning.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// String returns the position as "(x,y)".
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Step returns the position one move away in direction d. None and unknown directions return p.
func (p Position) Step(d Direction) Position {
	delta, ok := deltas[d]
	if !ok {
		return p
	}
	return Position{X: p.X + delta.X, Y: p.Y + delta.Y}
}

// Manhattan returns the 4-connected distance between p and q.
func (p Position) Manhattan(q Position) int {
	return abs(p.X-q.X) + abs(p.Y-q.Y)
}

// Direction is a discrete move. The zero value None means no movement.
type Direction string

const (
	None  Direction = ""
	Up    Direction = "up"
	Down  Direction = "down"
	Left  Direction = "left"
	Right Direction = "right"
)

// Directions lists the four moves in their fixed priority order.
var Directions = [4]Direction{Up, Down, Left, Right}

var deltas = map[Direction]Position{
	Up:    {X: 0, Y: -1},
	Down:  {X: 0, Y: 1},
	Left:  {X: -1, Y: 0},
	Right: {X: 1, Y: 0},
}

// Valid reports whether d is one of the four moves.
func (d Direction) Valid() bool {
	_, ok := deltas[d]
	return ok
}

// DirectionBetween returns the move that takes from to an adjacent position to.
// It reports false when the positions are not 4-adjacent.
func DirectionBetween(from, to Position) (Direction, bool) {
	for _, d := range Directions {
		if from.Step(d) == to {
			return d, true
		}
	}
	return None, false
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
