package cartstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	stateField       = "state"
	redisPingTimeout = 5 * time.Second
)

// RedisStore is a SnapshotStore backed by a Redis hash per session key, so
// snapshots survive process restarts and are shared across replicas.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects to the Redis instance at addr. The address may be a
// plain host:port pair or a redis:// URL.
func NewRedisStore(addr string) (*RedisStore, error) {
	if addr == "" {
		return nil, errors.New("cartstore: redis address is required")
	}

	options, err := redis.ParseURL(addr)
	if err != nil {
		options = &redis.Options{Addr: addr}
	}

	return &RedisStore{client: redis.NewClient(options)}, nil
}

// Load returns the snapshot stored under key.
func (s *RedisStore) Load(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.HGet(ctx, key, stateField).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("cartstore: redis load %q: %w", key, err)
	}
	return data, nil
}

// Save stores the snapshot under key, replacing any previous value.
func (s *RedisStore) Save(ctx context.Context, key string, data []byte) error {
	if err := s.client.HSet(ctx, key, stateField, data).Err(); err != nil {
		return fmt.Errorf("cartstore: redis save %q: %w", key, err)
	}
	return nil
}

// Delete removes the snapshot under key. Deleting an absent key is not an error.
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("cartstore: redis delete %q: %w", key, err)
	}
	return nil
}

// Ping verifies the Redis connection is reachable.
func (s *RedisStore) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()

	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("cartstore: redis ping: %w", err)
	}
	return nil
}

// Close releases the underlying Redis connection pool.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
