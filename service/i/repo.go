package i

import (
	"context"

	"github.com/beka-birhanu/vinom-agents/domain"
	"github.com/google/uuid"
)

// RunRepo defines the interface for archiving run summaries.
type RunRepo interface {
	// Save inserts or updates a run in the repository.
	// If the run already exists, it updates the record. Otherwise, it creates a new one.
	Save(ctx context.Context, run *domain.Run) error

	// ByID retrieves a run by its session ID.
	// Returns domain.ErrRunNotFound if no such run was archived.
	ByID(ctx context.Context, id uuid.UUID) (*domain.Run, error)
}
