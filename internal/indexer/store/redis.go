package store

import (
	"context"
	"fmt"

	"github.com/Adithya-Monish-Kumar-K/inverted-search/pkg/config"
	"github.com/Adithya-Monish-Kumar-K/inverted-search/pkg/redis"
)

// RedisStore keeps the backup text under a single key.
type RedisStore struct {
	client *redis.Client
	key    string
}

func NewRedisStore(cfg config.RedisConfig, key string) (*RedisStore, error) {
	client, err := redis.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("connecting redis backup store: %w", err)
	}
	return &RedisStore{client: client, key: key}, nil
}

func (s *RedisStore) Name() string {
	return "redis:" + s.key
}

func (s *RedisStore) Write(ctx context.Context, data []byte) error {
	if err := s.client.Set(ctx, s.key, data); err != nil {
		return fmt.Errorf("writing backup key %s: %w", s.key, err)
	}
	return nil
}

func (s *RedisStore) Read(ctx context.Context) ([]byte, error) {
	data, err := s.client.Get(ctx, s.key)
	if err != nil {
		if redis.IsNilError(err) {
			return nil, notFound(s.Name())
		}
		return nil, fmt.Errorf("reading backup key %s: %w", s.key, err)
	}
	return data, nil
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx)
}

// Delete removes the backup key.
func (s *RedisStore) Delete(ctx context.Context) error {
	return s.client.Del(ctx, s.key)
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
