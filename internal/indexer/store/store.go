// Package store holds the destinations a serialized index can be saved to
// and loaded from: a backup.txt file (the default), a redis key, or a row in
// a postgres table. Every backend stores the same text produced by the
// backup package.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/Adithya-Monish-Kumar-K/inverted-search/pkg/config"
	apperrors "github.com/Adithya-Monish-Kumar-K/inverted-search/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/inverted-search/pkg/resilience"
)

// Store reads and writes a whole backup. Read returns an error wrapping
// errors.ErrBackupNotFound when no backup exists.
type Store interface {
	Name() string
	Write(ctx context.Context, data []byte) error
	Read(ctx context.Context) ([]byte, error)
	Close() error
}

// Pinger is implemented by stores that can check their backend without
// touching the backup.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Ping checks s if it implements Pinger and reports nil otherwise.
func Ping(ctx context.Context, s Store) error {
	if p, ok := s.(Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}

// Open builds the backend selected by cfg.Backup.
func Open(cfg *config.Config) (Store, error) {
	switch cfg.Backup.Backend {
	case config.BackendFile, "":
		return NewFileStore(cfg.Backup.Dir), nil
	case config.BackendRedis:
		s, err := NewRedisStore(cfg.Redis, cfg.Backup.Name)
		if err != nil {
			return nil, err
		}
		return WithRetry(s, cfg.Backup.Retry), nil
	case config.BackendPostgres:
		s, err := NewPostgresStore(cfg.Postgres, cfg.Backup.Name)
		if err != nil {
			return nil, err
		}
		return WithRetry(s, cfg.Backup.Retry), nil
	default:
		return nil, fmt.Errorf("unknown backup backend %q", cfg.Backup.Backend)
	}
}

type retryStore struct {
	Store
	cfg resilience.RetryConfig
}

// WithRetry retries transient failures of s. A missing backup is final.
func WithRetry(s Store, rc config.RetryConfig) Store {
	return &retryStore{
		Store: s,
		cfg: resilience.RetryConfig{
			MaxAttempts:  rc.MaxAttempts,
			InitialDelay: rc.InitialDelay,
			MaxDelay:     rc.MaxDelay,
			Retryable: func(err error) bool {
				return !errors.Is(err, apperrors.ErrBackupNotFound) && !errors.Is(err, context.Canceled)
			},
		},
	}
}

func (r *retryStore) Write(ctx context.Context, data []byte) error {
	return resilience.Retry(ctx, r.Name()+" write", r.cfg, func() error {
		return r.Store.Write(ctx, data)
	})
}

func (r *retryStore) Read(ctx context.Context) ([]byte, error) {
	var data []byte
	err := resilience.Retry(ctx, r.Name()+" read", r.cfg, func() error {
		var err error
		data, err = r.Store.Read(ctx)
		return err
	})
	return data, err
}

func (r *retryStore) Ping(ctx context.Context) error {
	return Ping(ctx, r.Store)
}

func notFound(where string) error {
	return apperrors.Newf(apperrors.ErrBackupNotFound, apperrors.ExitNotFound, "%s", where)
}
