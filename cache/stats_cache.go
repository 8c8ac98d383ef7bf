package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// StatsStore keeps the computed stats report in Redis for a short TTL so the
// dashboard does not recount three tables on every poll. Writers invalidate;
// a cold or unreachable cache just means recomputing.
type StatsStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewStatsStore(rdb *redis.Client, ttl time.Duration) *StatsStore {
	return &StatsStore{rdb: rdb, ttl: ttl}
}

const statsKey = "libtool:reports:stats"

// Get returns the cached report payload, or nil on a miss.
func (s *StatsStore) Get(ctx context.Context) (json.RawMessage, error) {
	b, err := s.rdb.Get(ctx, statsKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (s *StatsStore) Set(ctx context.Context, report any) error {
	b, err := json.Marshal(report)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, statsKey, b, s.ttl).Err()
}

func (s *StatsStore) Invalidate(ctx context.Context) error {
	return s.rdb.Del(ctx, statsKey).Err()
}
