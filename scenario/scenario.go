/*
Package scenario builds ready-to-run grids for the demo presets and wires an agent into a
simulation over them.

Presets:
  - open: an obstacle-free room with the goal in the far corner
  - corridor: a single row with the goal at the far end
  - maze: the fixed 15x8 walled maze with the goal at (13,6)
  - random: scattered random obstacles with the goal at (w-2,h-2)
  - wilson: a perfect maze carved with Wilson's algorithm
*/
package scenario

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/beka-birhanu/vinom-agents/agent"
	"github.com/beka-birhanu/vinom-agents/grid"
	"github.com/beka-birhanu/vinom-agents/simulation"
)

var (
	ErrUnknownScenario = errors.New("unknown scenario")
	ErrInvalidSize     = errors.New("scenario size is out of range")
)

// Preset names.
const (
	Open     = "open"
	Corridor = "corridor"
	Maze     = "maze"
	Random   = "random"
	Wilson   = "wilson"
)

// Presets lists every scenario name accepted by Build.
var Presets = []string{Open, Corridor, Maze, Random, Wilson}

const (
	defaultWidth     = 10
	defaultHeight    = 6
	defaultObstacles = 10
	defaultMazeCells = 7

	maxDimension = 50
	// maxMazeCells bounds the wilson cell grid; the rendered grid is 2n+1 wide.
	maxMazeCells = 20
)

// Config selects a preset and its parameters. Zero values pick the preset defaults.
type Config struct {
	Name      string        `json:"name"`
	Width     int           `json:"width,omitempty"`
	Height    int           `json:"height,omitempty"`
	Obstacles int           `json:"obstacles,omitempty"`
	Seed      int64         `json:"seed,omitempty"`
	Agent     agent.Options `json:"-"`
}

// Layout is a built grid with the agent's start position.
type Layout struct {
	Grid  *grid.Grid
	Start grid.Position
}

// Build creates the grid for cfg.
func Build(cfg Config) (*Layout, error) {
	rng := rand.New(rand.NewSource(seedOf(cfg)))

	switch cfg.Name {
	case Open, "":
		return buildOpen(cfg)
	case Corridor:
		return buildCorridor(cfg)
	case Maze:
		return buildMaze()
	case Random:
		return buildRandom(cfg, rng)
	case Wilson:
		return buildWilson(cfg, rng)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownScenario, cfg.Name)
	}
}

// Setup builds the layout for cfg, creates an agent of the given kind and registers it
// at the layout's start position.
func Setup(kind agent.Kind, cfg Config, opts ...simulation.Option) (*simulation.Simulation, agent.Agent, error) {
	layout, err := Build(cfg)
	if err != nil {
		return nil, nil, err
	}

	a, err := agent.New(kind, "Explorer", cfg.Agent)
	if err != nil {
		return nil, nil, err
	}

	sim, err := simulation.New(layout.Grid, opts...)
	if err != nil {
		return nil, nil, err
	}

	if err := sim.AddAgent(a, layout.Start); err != nil {
		return nil, nil, err
	}
	return sim, a, nil
}

func seedOf(cfg Config) int64 {
	if cfg.Seed != 0 {
		return cfg.Seed
	}
	return time.Now().UnixNano()
}

func dimensions(cfg Config, width, height int) (int, int, error) {
	if cfg.Width != 0 {
		width = cfg.Width
	}
	if cfg.Height != 0 {
		height = cfg.Height
	}
	if width <= 0 || height <= 0 || width > maxDimension || height > maxDimension {
		return 0, 0, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	return width, height, nil
}

func buildOpen(cfg Config) (*Layout, error) {
	w, h, err := dimensions(cfg, defaultWidth, defaultHeight)
	if err != nil {
		return nil, err
	}
	g, err := grid.New(w, h)
	if err != nil {
		return nil, err
	}
	g.AddGoal(grid.Position{X: w - 1, Y: h - 1})
	return &Layout{Grid: g}, nil
}

func buildCorridor(cfg Config) (*Layout, error) {
	// corridors are always one row high
	cfg.Height = 0
	w, _, err := dimensions(cfg, defaultWidth, 1)
	if err != nil {
		return nil, err
	}
	g, err := grid.New(w, 1)
	if err != nil {
		return nil, err
	}
	g.AddGoal(grid.Position{X: w - 1, Y: 0})
	return &Layout{Grid: g}, nil
}

// buildMaze lays out a 15x8 room with an outer wall, three vertical walls and two
// horizontal walls. Vertical walls open on rows 2 and 5, horizontal walls on columns 5 and 9.
func buildMaze() (*Layout, error) {
	const w, h = 15, 8
	g, err := grid.New(w, h)
	if err != nil {
		return nil, err
	}

	for x := 0; x < w; x++ {
		g.AddObstacle(grid.Position{X: x, Y: 0})
		g.AddObstacle(grid.Position{X: x, Y: h - 1})
	}
	for y := 0; y < h; y++ {
		g.AddObstacle(grid.Position{X: 0, Y: y})
		g.AddObstacle(grid.Position{X: w - 1, Y: y})
	}

	for x := 3; x < 12; x += 4 {
		for y := 1; y < h-1; y++ {
			if y != 2 && y != 5 {
				g.AddObstacle(grid.Position{X: x, Y: y})
			}
		}
	}
	for y := 3; y < 7; y += 3 {
		for x := 1; x < w-1; x++ {
			if x != 5 && x != 9 {
				g.AddObstacle(grid.Position{X: x, Y: y})
			}
		}
	}

	g.AddGoal(grid.Position{X: w - 2, Y: h - 2})
	return &Layout{Grid: g, Start: grid.Position{X: 1, Y: 1}}, nil
}

func buildRandom(cfg Config, rng *rand.Rand) (*Layout, error) {
	w, h, err := dimensions(cfg, defaultWidth, defaultHeight)
	if err != nil {
		return nil, err
	}
	if w < 2 || h < 2 {
		return nil, fmt.Errorf("%w: random needs at least 2x2, got %dx%d", ErrInvalidSize, w, h)
	}
	g, err := grid.New(w, h)
	if err != nil {
		return nil, err
	}

	start := grid.Position{X: 0, Y: 0}
	goal := grid.Position{X: w - 2, Y: h - 2}

	obstacles := cfg.Obstacles
	if obstacles == 0 {
		obstacles = defaultObstacles
	}
	for i := 0; i < obstacles; i++ {
		pos := grid.Position{X: rng.Intn(w), Y: rng.Intn(h)}
		if pos == start || pos == goal {
			continue
		}
		g.AddObstacle(pos)
	}

	g.AddGoal(goal)
	return &Layout{Grid: g, Start: start}, nil
}
