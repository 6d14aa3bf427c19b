// ABOUTME: Redis-backed credential store
// ABOUTME: Lets several terminals share one login through a Redis instance

package credentials

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisPrefix namespaces credential keys in Redis
const DefaultRedisPrefix = "movierama:credentials:"

// RedisStore stores credentials as plain Redis string keys.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore wraps an existing client
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return &RedisStore{client: client, prefix: prefix}
}

// DialRedis connects and pings before returning the store.
func DialRedis(ctx context.Context, opts *redis.Options) (*RedisStore, error) {
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("credentials: redis ping %s: %w", opts.Addr, err)
	}
	return NewRedisStore(client, ""), nil
}

func (s *RedisStore) key(k string) string { return s.prefix + k }

func (s *RedisStore) Get(ctx context.Context, key string) (string, error) {
	v, err := s.client.Get(ctx, s.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("credentials: redis get: %w", err)
	}
	return v, nil
}

func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, s.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("credentials: redis set: %w", err)
	}
	return nil
}

func (s *RedisStore) Remove(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("credentials: redis del: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool
func (s *RedisStore) Close() error {
	return s.client.Close()
}
