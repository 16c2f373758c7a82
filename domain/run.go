// Package domain holds the records the service stores about simulation runs.
package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrRunNotFound = errors.New("run not found")
)

// NotReached marks a run whose agent never arrived on a goal.
const NotReached = -1

// Run is the archived summary of one simulation session. Learned agent state is never stored.
type Run struct {
	ID          uuid.UUID `bson:"_id" json:"id"`
	Kind        string    `bson:"kind" json:"kind"`
	Scenario    string    `bson:"scenario" json:"scenario"`
	Width       int       `bson:"width" json:"width"`
	Height      int       `bson:"height" json:"height"`
	Ticks       int       `bson:"ticks" json:"ticks"`
	GoalTick    int       `bson:"goalTick" json:"goal_tick"`
	Performance float64   `bson:"performance" json:"performance"`
	TotalReward float64   `bson:"totalReward" json:"total_reward"`
	StartedAt   time.Time `bson:"startedAt" json:"started_at"`
	FinishedAt  time.Time `bson:"finishedAt,omitempty" json:"finished_at,omitempty"`
}

// NewRun starts a run record for a session.
func NewRun(id uuid.UUID, kind, scenario string, width, height int) *Run {
	return &Run{
		ID:        id,
		Kind:      kind,
		Scenario:  scenario,
		Width:     width,
		Height:    height,
		GoalTick:  NotReached,
		StartedAt: time.Now(),
	}
}

// GoalReached reports whether the agent arrived on a goal during the run.
func (r *Run) GoalReached() bool { return r.GoalTick != NotReached }

// Score is one scoreboard entry: a run and the number of ticks it needed to reach the goal.
type Score struct {
	RunID uuid.UUID `json:"run_id"`
	Ticks int       `json:"ticks"`
}

// TickRecord is one point of a session's learning curve.
type TickRecord struct {
	TimeStep        int     `json:"time_step"`
	Performance     float64 `json:"performance"`
	TotalReward     float64 `json:"total_reward"`
	ExplorationRate float64 `json:"exploration_rate"`
	ModelSize       int     `json:"model_size"`
}
