package store

import (
	"context"
	"os"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Adithya-Monish-Kumar-K/inverted-search/pkg/config"
	apperrors "github.com/Adithya-Monish-Kumar-K/inverted-search/pkg/errors"
)

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrDefaultInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

// exerciseStore checks the behaviour every backend shares.
func exerciseStore(t *testing.T, s Store, cleanup func(context.Context) error) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, cleanup(ctx))

	_, err := s.Read(ctx)
	assert.ErrorIs(t, err, apperrors.ErrBackupNotFound)

	require.NoError(t, s.Write(ctx, []byte("#2;\ncat; 1; a.txt; 2; #\n")))
	require.NoError(t, s.Write(ctx, []byte("#3;\ndog; 1; b.txt; 1; #\n")))

	data, err := s.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, "#3;\ndog; 1; b.txt; 1; #\n", string(data))

	require.NoError(t, cleanup(ctx))
}

func TestRedisStore(t *testing.T) {
	cfg := config.RedisConfig{
		Addr:     envOrDefault("TEST_REDIS_ADDR", "localhost:6379"),
		PoolSize: 1,
	}
	s, err := NewRedisStore(cfg, "invsearch:test:backup")
	if err != nil {
		t.Skipf("skipping: redis unavailable: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	exerciseStore(t, s, s.Delete)
}

func TestPostgresStore(t *testing.T) {
	cfg := config.PostgresConfig{
		Host:         envOrDefault("TEST_POSTGRES_HOST", "localhost"),
		Port:         envOrDefaultInt("TEST_POSTGRES_PORT", 5432),
		Database:     envOrDefault("TEST_POSTGRES_DB", "invsearch_test"),
		User:         envOrDefault("TEST_POSTGRES_USER", "invsearch"),
		Password:     envOrDefault("TEST_POSTGRES_PASSWORD", "localdev"),
		SSLMode:      "disable",
		MaxOpenConns: 2,
		MaxIdleConns: 1,
	}
	s, err := NewPostgresStore(cfg, "test-backup")
	if err != nil {
		t.Skipf("skipping: postgres unavailable: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	exerciseStore(t, s, s.Delete)
}
