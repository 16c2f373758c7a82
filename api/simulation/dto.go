// Package simulationapi provides the request and response bodies of the simulation endpoints.
package simulationapi

import (
	"github.com/beka-birhanu/vinom-agents/agent"
	"github.com/beka-birhanu/vinom-agents/scenario"
	"github.com/beka-birhanu/vinom-agents/simulation"
	"github.com/google/uuid"
)

// CreateRequest represents a request to start a new simulation session.
type CreateRequest struct {
	AgentKind string          `json:"agent_kind" binding:"required"`
	Scenario  ScenarioRequest `json:"scenario"`
	Agent     AgentOptions    `json:"agent"`
}

// ScenarioRequest selects the grid preset. Zero values pick the preset defaults.
type ScenarioRequest struct {
	Name      string `json:"name"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Obstacles int    `json:"obstacles" binding:"gte=0"`
	Seed      int64  `json:"seed"`
}

// AgentOptions tunes the learning agents. Omitted rates pick the agent defaults; a rate
// given explicitly must lie in (0, 1].
type AgentOptions struct {
	ExplorationRate    *float64 `json:"exploration_rate" binding:"omitempty,gt=0,lte=1"`
	MinExplorationRate *float64 `json:"min_exploration_rate" binding:"omitempty,gt=0,lte=1"`
	LearningRate       *float64 `json:"learning_rate" binding:"omitempty,gt=0,lte=1"`
	DiscountFactor     *float64 `json:"discount_factor" binding:"omitempty,gt=0,lte=1"`
	Seed               int64    `json:"seed"`
}

// RunRequest represents a request to advance a session by several ticks.
type RunRequest struct {
	Steps int `json:"steps" binding:"required,gt=0"`
}

// ScoreboardQuery holds the query parameters of the scoreboard endpoint.
type ScoreboardQuery struct {
	Kind string `form:"kind" binding:"required"`
	N    int64  `form:"n" binding:"gte=0,lte=100"`
}

// SimulationResponse carries a session handle with its state.
type SimulationResponse struct {
	ID    uuid.UUID        `json:"id"`
	State simulation.State `json:"state"`
}

func (r *CreateRequest) scenarioConfig() scenario.Config {
	return scenario.Config{
		Name:      r.Scenario.Name,
		Width:     r.Scenario.Width,
		Height:    r.Scenario.Height,
		Obstacles: r.Scenario.Obstacles,
		Seed:      r.Scenario.Seed,
		Agent: agent.Options{
			ExplorationRate:    rateOrDefault(r.Agent.ExplorationRate),
			MinExplorationRate: rateOrDefault(r.Agent.MinExplorationRate),
			LearningRate:       rateOrDefault(r.Agent.LearningRate),
			DiscountFactor:     rateOrDefault(r.Agent.DiscountFactor),
			Seed:               r.Agent.Seed,
		},
	}
}

// rateOrDefault maps an omitted rate to zero, which the agent constructors read as their default.
func rateOrDefault(rate *float64) float64 {
	if rate == nil {
		return 0
	}
	return *rate
}
