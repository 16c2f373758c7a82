/*
Package grid provides the discrete 2D world the agents live in.

A Grid is a fixed-size dense array of cells. Each cell is empty, an obstacle or a goal.
Positions outside the grid read as obstacles so that the border behaves as an implicit wall.
*/
package grid

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDimensions = errors.New("grid dimensions must be positive")
	ErrOutOfBounds       = errors.New("position is out of the grid")
)

// Cell is the content of a single grid cell.
type Cell int

const (
	Empty Cell = iota
	Obstacle
	Goal
)

// String returns the lowercase name of the cell kind.
func (c Cell) String() string {
	switch c {
	case Empty:
		return "empty"
	case Obstacle:
		return "obstacle"
	case Goal:
		return "goal"
	default:
		return fmt.Sprintf("cell(%d)", int(c))
	}
}

// MarshalText encodes the cell as its name.
func (c Cell) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText decodes a cell name produced by MarshalText.
func (c *Cell) UnmarshalText(text []byte) error {
	switch string(text) {
	case "empty":
		*c = Empty
	case "obstacle":
		*c = Obstacle
	case "goal":
		*c = Goal
	default:
		return fmt.Errorf("unknown cell kind %q", text)
	}
	return nil
}

// Grid is a width x height world. Dimensions never change after New.
type Grid struct {
	width  int
	height int
	cells  [][]Cell
	goals  []Position
}

// New creates an empty grid of the given dimensions.
func New(width, height int) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}

	cells := make([][]Cell, height)
	for y := range cells {
		cells[y] = make([]Cell, width)
	}

	return &Grid{
		width:  width,
		height: height,
		cells:  cells,
	}, nil
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// InBounds reports whether pos lies inside the grid.
func (g *Grid) InBounds(pos Position) bool {
	return pos.X >= 0 && pos.X < g.width && pos.Y >= 0 && pos.Y < g.height
}

// At returns the cell at pos. Positions outside the grid read as Obstacle.
func (g *Grid) At(pos Position) Cell {
	if !g.InBounds(pos) {
		return Obstacle
	}
	return g.cells[pos.Y][pos.X]
}

// Set overwrites the cell at pos.
// Marking a goal records it in the goal list; overwriting a goal removes it from the list.
func (g *Grid) Set(pos Position, cell Cell) error {
	if !g.InBounds(pos) {
		return fmt.Errorf("%w: %v", ErrOutOfBounds, pos)
	}

	if g.cells[pos.Y][pos.X] == Goal && cell != Goal {
		g.removeGoal(pos)
	}
	if cell == Goal && g.cells[pos.Y][pos.X] != Goal {
		g.goals = append(g.goals, pos)
	}
	g.cells[pos.Y][pos.X] = cell
	return nil
}

// AddObstacle marks pos as an obstacle. Out of bounds positions are ignored.
func (g *Grid) AddObstacle(pos Position) {
	_ = g.Set(pos, Obstacle)
}

// AddGoal marks pos as a goal. Out of bounds positions are ignored.
func (g *Grid) AddGoal(pos Position) {
	_ = g.Set(pos, Goal)
}

// Goals returns the goal positions in insertion order.
func (g *Grid) Goals() []Position {
	goals := make([]Position, len(g.goals))
	copy(goals, g.goals)
	return goals
}

// Cells returns a copy of the cell rows, indexed [y][x].
func (g *Grid) Cells() [][]Cell {
	rows := make([][]Cell, g.height)
	for y := range rows {
		rows[y] = make([]Cell, g.width)
		copy(rows[y], g.cells[y])
	}
	return rows
}

// EmptyPositions returns every empty cell in row-major order.
func (g *Grid) EmptyPositions() []Position {
	var result []Position
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			if g.cells[y][x] == Empty {
				result = append(result, Position{X: x, Y: y})
			}
		}
	}
	return result
}

func (g *Grid) removeGoal(pos Position) {
	for i, goal := range g.goals {
		if goal == pos {
			g.goals = append(g.goals[:i], g.goals[i+1:]...)
			return
		}
	}
}
