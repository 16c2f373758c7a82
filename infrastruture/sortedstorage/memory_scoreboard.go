// Package sortedstorage ranks finished runs per agent kind, in redis or in process memory.
package sortedstorage

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/beka-birhanu/vinom-agents/domain"
	"github.com/beka-birhanu/vinom-agents/service/i"
	"github.com/google/uuid"
)

var ErrInvalidSize = errors.New("scoreboard size must be positive")

// MemoryScoreboard is an in-process Scoreboard for single-instance deployments and tests.
type MemoryScoreboard struct {
	boards map[string]map[uuid.UUID]int
	size   int
	sync.RWMutex
}

// NewMemoryScoreboard creates an empty board keeping size entries per kind.
func NewMemoryScoreboard(size int) (i.Scoreboard, error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}
	return &MemoryScoreboard{
		boards: make(map[string]map[uuid.UUID]int),
		size:   size,
	}, nil
}

// Record adds the run, keeping the lower tick count if it is already present.
func (ms *MemoryScoreboard) Record(ctx context.Context, kind string, runID uuid.UUID, ticks int) error {
	ms.Lock()
	defer ms.Unlock()

	board, ok := ms.boards[kind]
	if !ok {
		board = make(map[uuid.UUID]int)
		ms.boards[kind] = board
	}
	if old, ok := board[runID]; ok && old <= ticks {
		return nil
	}
	board[runID] = ticks

	if len(board) > ms.size {
		ranked := ms.ranked(board)
		for _, s := range ranked[ms.size:] {
			delete(board, s.RunID)
		}
	}
	return nil
}

// Top returns up to n of the fastest runs of kind, fastest first.
func (ms *MemoryScoreboard) Top(ctx context.Context, kind string, n int64) ([]domain.Score, error) {
	ms.RLock()
	defer ms.RUnlock()

	if n <= 0 {
		return nil, nil
	}
	ranked := ms.ranked(ms.boards[kind])
	if int64(len(ranked)) > n {
		ranked = ranked[:n]
	}
	return ranked, nil
}

// ranked orders a board by ticks, then by run ID like a redis sorted set.
func (ms *MemoryScoreboard) ranked(board map[uuid.UUID]int) []domain.Score {
	scores := make([]domain.Score, 0, len(board))
	for id, ticks := range board {
		scores = append(scores, domain.Score{RunID: id, Ticks: ticks})
	}
	sort.Slice(scores, func(a, b int) bool {
		if scores[a].Ticks != scores[b].Ticks {
			return scores[a].Ticks < scores[b].Ticks
		}
		return scores[a].RunID.String() < scores[b].RunID.String()
	})
	return scores
}
