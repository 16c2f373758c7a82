package i

import (
	"context"

	"github.com/beka-birhanu/vinom-agents/agent"
	"github.com/beka-birhanu/vinom-agents/domain"
	"github.com/beka-birhanu/vinom-agents/scenario"
	"github.com/beka-birhanu/vinom-agents/simulation"
	"github.com/google/uuid"
)

// SimulationManager owns the live simulation sessions and drives them on request.
type SimulationManager interface {
	// NewSimulation builds the scenario, places an agent of the given kind and returns
	// the session handle with its initial state.
	NewSimulation(ctx context.Context, kind agent.Kind, cfg scenario.Config) (uuid.UUID, simulation.State, error)

	// Tick advances the session by one time step.
	Tick(ctx context.Context, id uuid.UUID) (simulation.State, error)

	// Run advances the session by up to steps time steps.
	Run(ctx context.Context, id uuid.UUID, steps int) (simulation.State, error)

	// Snapshot returns the session state without advancing it.
	Snapshot(ctx context.Context, id uuid.UUID) (simulation.State, error)

	// History returns one record per completed tick.
	History(ctx context.Context, id uuid.UUID) ([]domain.TickRecord, error)

	// Close ends the session and archives its outcome.
	Close(ctx context.Context, id uuid.UUID) (*domain.Run, error)

	// Scoreboard returns the fastest archived runs of an agent kind.
	Scoreboard(ctx context.Context, kind agent.Kind, n int64) ([]domain.Score, error)

	// ArchivedRun returns the stored summary of a finished or closed session.
	ArchivedRun(ctx context.Context, id uuid.UUID) (*domain.Run, error)
}
