package cart

import (
	"context"
	"fmt"
	"time"

	"github.com/antojo-app/backend/pkg/config"
	"github.com/antojo-app/backend/pkg/redis"
)

// Storage persists serialized cart snapshots keyed per user. The engine owns
// the serialization format; implementations own durability and expiry.
type Storage interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

type redisCartClient interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	CartKey(namespace, userID string) string
}

// RedisStorage keeps cart snapshots in redis under a configurable namespace
// with a sliding TTL.
type RedisStorage struct {
	client    redisCartClient
	namespace string
	ttl       time.Duration
}

// NewRedisStorage builds the redis-backed snapshot store.
func NewRedisStorage(client *redis.Client, cfg config.CartConfig) (*RedisStorage, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client required")
	}
	return &RedisStorage{
		client:    client,
		namespace: cfg.Namespace,
		ttl:       cfg.SnapshotTTL,
	}, nil
}

func (s *RedisStorage) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := s.client.Get(ctx, s.client.CartKey(s.namespace, key))
	if err != nil {
		if redis.IsNotFound(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("loading cart snapshot: %w", err)
	}
	return value, true, nil
}

func (s *RedisStorage) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, s.client.CartKey(s.namespace, key), value, s.ttl); err != nil {
		return fmt.Errorf("storing cart snapshot: %w", err)
	}
	return nil
}

func (s *RedisStorage) Remove(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.client.CartKey(s.namespace, key)); err != nil {
		return fmt.Errorf("removing cart snapshot: %w", err)
	}
	return nil
}
