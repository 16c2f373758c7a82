package i

import (
	"context"

	"github.com/beka-birhanu/vinom-agents/domain"
	"github.com/google/uuid"
)

// Scoreboard ranks runs of each agent kind by how few ticks they needed to reach the goal.
type Scoreboard interface {
	// Record adds a run to the kind's board. Recording the same run again keeps the lower tick count.
	Record(ctx context.Context, kind string, runID uuid.UUID, ticks int) error

	// Top returns up to n of the fastest runs, fastest first.
	Top(ctx context.Context, kind string, n int64) ([]domain.Score, error)
}
