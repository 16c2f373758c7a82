package repo

import (
	"context"
	"sync"

	"github.com/beka-birhanu/vinom-agents/domain"
	"github.com/google/uuid"
)

// MemoryRunRepo keeps run summaries in process memory. They are lost on restart.
type MemoryRunRepo struct {
	runs map[uuid.UUID]domain.Run
	sync.RWMutex
}

// NewMemoryRunRepo creates an empty MemoryRunRepo.
func NewMemoryRunRepo() *MemoryRunRepo {
	return &MemoryRunRepo{runs: make(map[uuid.UUID]domain.Run)}
}

// Save inserts or replaces a run.
func (r *MemoryRunRepo) Save(ctx context.Context, run *domain.Run) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.Lock()
	defer r.Unlock()
	r.runs[run.ID] = *run
	return nil
}

// ByID retrieves a copy of a run by its ID.
func (r *MemoryRunRepo) ByID(ctx context.Context, id uuid.UUID) (*domain.Run, error) {
	r.RLock()
	defer r.RUnlock()
	run, ok := r.runs[id]
	if !ok {
		return nil, domain.ErrRunNotFound
	}
	return &run, nil
}
