package simulation

import (
	"github.com/beka-birhanu/vinom-agents/agent"
	"github.com/beka-birhanu/vinom-agents/grid"
)

// State is the observable state of a simulation after some number of ticks.
type State struct {
	Width       int           `json:"width"`
	Height      int           `json:"height"`
	Grid        [][]grid.Cell `json:"grid"`
	Agents      []AgentState  `json:"agents"`
	TimeStep    int           `json:"time_step"`
	GoalReached bool          `json:"goal_reached"`
}

// AgentState is one agent's entry in a State.
type AgentState struct {
	Name        string           `json:"name"`
	Kind        agent.Kind       `json:"kind"`
	Position    grid.Position    `json:"position"`
	Performance float64          `json:"performance"`
	Inspection  agent.Inspection `json:"inspection"`
}

// Snapshot captures the current state. Agents that can project values onto the grid
// have their projection included in the inspection.
func (s *Simulation) Snapshot() State {
	state := State{
		Width:       s.grid.Width(),
		Height:      s.grid.Height(),
		Grid:        s.grid.Cells(),
		Agents:      make([]AgentState, 0, len(s.agents)),
		TimeStep:    s.timeStep,
		GoalReached: s.goalReached,
	}

	for _, a := range s.agents {
		in := a.Inspect()
		if p, ok := a.(agent.ValueProjector); ok {
			in.ValueGrid = p.ValueGrid(state.Width, state.Height)
		}
		state.Agents = append(state.Agents, AgentState{
			Name:        a.Name(),
			Kind:        a.Kind(),
			Position:    s.positions[a],
			Performance: a.Performance(),
			Inspection:  in,
		})
	}
	return state
}
