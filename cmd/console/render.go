package main

import (
	"fmt"
	"io"

	"github.com/beka-birhanu/vinom-agents/agent"
	"github.com/beka-birhanu/vinom-agents/grid"
	"github.com/beka-birhanu/vinom-agents/simulation"
	"github.com/logrusorgru/aurora"
)

// renderState prints the grid row by row with agents drawn over their cells.
func renderState(w io.Writer, au aurora.Aurora, state simulation.State) {
	occupied := make(map[grid.Position]int, len(state.Agents))
	for idx, a := range state.Agents {
		occupied[a.Position] = idx
	}

	fmt.Fprintf(w, "t=%d\n", state.TimeStep)
	for y := 0; y < state.Height; y++ {
		for x := 0; x < state.Width; x++ {
			if _, ok := occupied[grid.Position{X: x, Y: y}]; ok {
				fmt.Fprint(w, au.Green("A "))
				continue
			}
			switch state.Grid[y][x] {
			case grid.Obstacle:
				fmt.Fprint(w, au.White("# "))
			case grid.Goal:
				fmt.Fprint(w, au.Yellow("G "))
			default:
				fmt.Fprint(w, au.Blue(". "))
			}
		}
		fmt.Fprintln(w)
	}
}

// renderSummary prints the outcome of the run for the agent.
func renderSummary(w io.Writer, au aurora.Aurora, a agent.Agent, sim *simulation.Simulation) {
	in := a.Inspect()
	outcome := au.Red("goal not reached")
	if sim.GoalReached() {
		outcome = au.Green("goal reached")
	}

	fmt.Fprintf(w, "%s after %d ticks: %s\n", a, sim.TimeStep(), outcome)
	fmt.Fprintf(w, "known cells: %d", in.ModelSize)
	if a.Kind() == agent.KindQLearning {
		fmt.Fprintf(w, ", total reward: %.2f, exploration rate: %.3f", in.TotalReward, in.ExplorationRate)
	}
	fmt.Fprintln(w)
}
