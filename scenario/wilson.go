package scenario

import (
	"fmt"
	"math/rand"

	"github.com/beka-birhanu/vinom-agents/grid"
)

// wilsonMaze carves a perfect maze over a width x height lattice of rooms using
// Wilson's algorithm. Room (cx, cy) renders to cell (2cx+1, 2cy+1); walls between rooms
// and around the border are obstacles.
type wilsonMaze struct {
	width   int
	height  int
	grid    *grid.Grid
	visited map[grid.Position]struct{}
	rng     *rand.Rand
}

func buildWilson(cfg Config, rng *rand.Rand) (*Layout, error) {
	w, h := cfg.Width, cfg.Height
	if w == 0 {
		w = defaultMazeCells
	}
	if h == 0 {
		h = defaultMazeCells / 2
	}
	if min(w, h) <= 0 || max(w, h) > maxMazeCells {
		return nil, fmt.Errorf("%w: wilson rooms %dx%d", ErrInvalidSize, w, h)
	}

	g, err := grid.New(2*w+1, 2*h+1)
	if err != nil {
		return nil, err
	}
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			g.AddObstacle(grid.Position{X: x, Y: y})
		}
	}

	m := &wilsonMaze{
		width:   w,
		height:  h,
		grid:    g,
		visited: make(map[grid.Position]struct{}),
		rng:     rng,
	}
	m.generate()

	g.AddGoal(m.render(grid.Position{X: w - 1, Y: h - 1}))
	return &Layout{Grid: g, Start: m.render(grid.Position{X: 0, Y: 0})}, nil
}

// render maps a room to its cell on the grid.
func (m *wilsonMaze) render(room grid.Position) grid.Position {
	return grid.Position{X: 2*room.X + 1, Y: 2*room.Y + 1}
}

func (m *wilsonMaze) inBound(room grid.Position) bool {
	return room.X >= 0 && room.X < m.width && room.Y >= 0 && room.Y < m.height
}

func (m *wilsonMaze) randomRoom() grid.Position {
	return grid.Position{X: m.rng.Intn(m.width), Y: m.rng.Intn(m.height)}
}

func (m *wilsonMaze) randomUnvisitedRoom() grid.Position {
	for {
		room := m.randomRoom()
		if _, ok := m.visited[room]; !ok {
			return room
		}
	}
}

// neighbors lists the in-bound rooms next to room, in fixed direction order.
func (m *wilsonMaze) neighbors(room grid.Position) []grid.Position {
	var result []grid.Position
	for _, d := range grid.Directions {
		if next := room.Step(d); m.inBound(next) {
			result = append(result, next)
		}
	}
	return result
}

// randomWalk walks from an unvisited room until it hits the maze, remembering the last
// exit taken from every room. Following the exits from the start yields the loop-erased path.
func (m *wilsonMaze) randomWalk() map[grid.Position]grid.Position {
	exits := make(map[grid.Position]grid.Position)
	room := m.randomUnvisitedRoom()

	for {
		neighbors := m.neighbors(room)
		next := neighbors[m.rng.Intn(len(neighbors))]
		exits[room] = next
		if _, ok := m.visited[next]; ok {
			return exits
		}
		room = next
	}
}

// openPassage clears both rooms and the wall cell between them.
func (m *wilsonMaze) openPassage(from, to grid.Position) {
	a, b := m.render(from), m.render(to)
	_ = m.grid.Set(a, grid.Empty)
	_ = m.grid.Set(b, grid.Empty)
	_ = m.grid.Set(grid.Position{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}, grid.Empty)
}

func (m *wilsonMaze) generate() {
	start := m.randomRoom()
	m.visited[start] = struct{}{}
	_ = m.grid.Set(m.render(start), grid.Empty)

	for len(m.visited) < m.width*m.height {
		for room, next := range m.randomWalk() {
			m.openPassage(room, next)
			m.visited[room] = struct{}{}
		}
	}
}
