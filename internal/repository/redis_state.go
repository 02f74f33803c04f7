package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	drepo "DelistRadar/internal/domain/repository"
	"DelistRadar/pkg/logger"

	goredis "github.com/redis/go-redis/v9"
)

// RedisStateStore persists the novelty sequence as a JSON array under a
// single key.
type RedisStateStore struct {
	rdb *goredis.Client
	key string
	log *logger.Logger
}

// NewRedisStateStore creates a Redis-backed StateStore.
func NewRedisStateStore(rdb *goredis.Client, key string, log *logger.Logger) drepo.StateStore {
	return &RedisStateStore{rdb: rdb, key: key, log: log}
}

// Load reads the persisted sequence. A missing key or unreadable payload
// yields an empty sequence, never an error that blocks startup.
func (s *RedisStateStore) Load(ctx context.Context) ([]string, error) {
	raw, err := s.rdb.Get(ctx, s.key).Result()
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("state load: %w", err)
	}

	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		s.log.Warn("state payload unreadable, starting fresh",
			logger.String("key", s.key),
			logger.Error(err))
		return nil, nil
	}
	return ids, nil
}

// Save overwrites the persisted sequence with ids.
func (s *RedisStateStore) Save(ctx context.Context, ids []string) error {
	payload, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("state marshal: %w", err)
	}
	if err := s.rdb.Set(ctx, s.key, payload, 0).Err(); err != nil {
		return fmt.Errorf("state save: %w", err)
	}
	return nil
}
