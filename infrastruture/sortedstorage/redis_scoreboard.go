package sortedstorage

import (
	"context"
	"fmt"
	"time"

	"github.com/beka-birhanu/vinom-agents/domain"
	"github.com/beka-birhanu/vinom-agents/service/i"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// default prefix for redis keys
	defaultPrefix = "agents"

	// scoreboard key format: <prefix>:scoreboard:<kind>
	scoreboardKeyFmt = "%s:scoreboard:%s"
)

// RedisScoreboard keeps one sorted set per agent kind, scored by ticks to the goal, with TTL support.
type RedisScoreboard struct {
	client *redis.Client
	locker *redsync.Redsync
	prefix string
	ttl    time.Duration
	size   int64
}

// NewRedisScoreboard initializes a RedisScoreboard with the provided Redis client, TTL and
// the number of entries kept per kind.
func NewRedisScoreboard(client *redis.Client, ttlSeconds int, size int) (i.Scoreboard, error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}

	board := &RedisScoreboard{
		client: client,
		prefix: defaultPrefix,
		ttl:    time.Duration(ttlSeconds) * time.Second,
		size:   int64(size),
	}
	pool := goredis.NewPool(client)
	board.locker = redsync.New(pool)
	return board, nil
}

func (rs *RedisScoreboard) key(kind string) string {
	return fmt.Sprintf(scoreboardKeyFmt, rs.prefix, kind)
}

// Record adds the run with its tick count, keeping the lower count if it is already present,
// and sets expiration if necessary.
func (rs *RedisScoreboard) Record(ctx context.Context, kind string, runID uuid.UUID, ticks int) error {
	key := rs.key(kind)
	err := rs.client.ZAddArgs(ctx, key, redis.ZAddArgs{
		LT:      true,
		Members: []redis.Z{{Score: float64(ticks), Member: runID.String()}},
	}).Err()
	if err != nil {
		return err
	}

	// Set expiration only if it's not already set
	ttl, err := rs.client.TTL(ctx, key).Result()
	if err == nil && ttl == -1 {
		_ = rs.client.Expire(ctx, key, rs.ttl).Err()
	}

	return rs.trim(ctx, key)
}

// trim drops the slowest entries beyond the board size.
func (rs *RedisScoreboard) trim(ctx context.Context, key string) error {
	if rs.client.ZCard(ctx, key).Val() <= rs.size {
		return nil
	}

	mutex := rs.locker.NewMutex(key + ":trim_lock")
	if err := mutex.LockContext(ctx); err != nil {
		return err
	}
	defer func() {
		_, _ = mutex.UnlockContext(ctx)
	}()

	return rs.client.ZRemRangeByRank(ctx, key, rs.size, -1).Err()
}

// Top retrieves up to n of the fastest runs of kind, fastest first.
func (rs *RedisScoreboard) Top(ctx context.Context, kind string, n int64) ([]domain.Score, error) {
	if n <= 0 {
		return nil, nil
	}

	entries, err := rs.client.ZRangeWithScores(ctx, rs.key(kind), 0, n-1).Result()
	if err != nil {
		return nil, err
	}

	scores := make([]domain.Score, 0, len(entries))
	for _, e := range entries {
		member, ok := e.Member.(string)
		if !ok {
			continue
		}
		id, err := uuid.Parse(member)
		if err != nil {
			continue
		}
		scores = append(scores, domain.Score{RunID: id, Ticks: int(e.Score)})
	}
	return scores, nil
}
