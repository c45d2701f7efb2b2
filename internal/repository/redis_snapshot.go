package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/yourorg/shipkeeper/internal/domain"
	"github.com/yourorg/shipkeeper/internal/infrastructure/redis"
)

// RedisSnapshotStore keeps the state document under a single Redis key
type RedisSnapshotStore struct {
	redis  *redis.Client
	key    string
	logger *slog.Logger
}

// NewRedisSnapshotStore creates a Redis-backed snapshot store
func NewRedisSnapshotStore(redisClient *redis.Client, key string, logger *slog.Logger) *RedisSnapshotStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisSnapshotStore{
		redis:  redisClient,
		key:    key,
		logger: logger,
	}
}

// Load retrieves the raw document from Redis
func (s *RedisSnapshotStore) Load(ctx context.Context) ([]byte, error) {
	data, err := s.redis.Get(ctx, s.key)
	if errors.Is(err, redis.ErrNotFound) {
		return nil, domain.ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load state: %w", err)
	}
	return []byte(data), nil
}

// Save overwrites the document in Redis
func (s *RedisSnapshotStore) Save(ctx context.Context, data []byte) error {
	if err := s.redis.Set(ctx, s.key, string(data)); err != nil {
		return fmt.Errorf("failed to save state: %w", err)
	}
	s.logger.Debug("state snapshot saved", slog.String("key", s.key), slog.Int("bytes", len(data)))
	return nil
}

// Ping checks the Redis connection
func (s *RedisSnapshotStore) Ping(ctx context.Context) error {
	return s.redis.Ping(ctx)
}

// Close closes the Redis connection
func (s *RedisSnapshotStore) Close() error {
	return s.redis.Close()
}
