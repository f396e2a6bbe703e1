package indexer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/Adithya-Monish-Kumar-K/inverted-search/internal/display"
	"github.com/Adithya-Monish-Kumar-K/inverted-search/internal/indexer/backup"
	"github.com/Adithya-Monish-Kumar-K/inverted-search/internal/indexer/index"
	"github.com/Adithya-Monish-Kumar-K/inverted-search/internal/indexer/store"
	"github.com/Adithya-Monish-Kumar-K/inverted-search/internal/indexer/tokenizer"
	"github.com/Adithya-Monish-Kumar-K/inverted-search/internal/searcher/executor"
	"github.com/Adithya-Monish-Kumar-K/inverted-search/pkg/config"
	apperrors "github.com/Adithya-Monish-Kumar-K/inverted-search/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/inverted-search/pkg/metrics"
)

// State is the lifecycle stage of an Engine's index.
type State int

const (
	// StateEmpty: nothing built or loaded yet.
	StateEmpty State = iota
	// StateBuilt: populated from the file list.
	StateBuilt
	// StateLoaded: populated from a backup.
	StateLoaded
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateBuilt:
		return "built"
	case StateLoaded:
		return "loaded"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Engine owns one index and enforces build-xor-load: the index is populated
// exactly once, either by Build or by Load, and then displayed, queried and
// saved any number of times. It is not safe for concurrent use.
type Engine struct {
	idx     *index.Index
	state   State
	builder *Builder
	store   store.Store
	timeout time.Duration
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// NewEngine creates an empty engine persisting through st. A nil m records
// into unregistered collectors.
func NewEngine(cfg *config.Config, st store.Store, m *metrics.Metrics) *Engine {
	if m == nil {
		m = metrics.New(nil)
	}
	return &Engine{
		idx: index.New(),
		builder: NewBuilder(
			tokenizer.Limits{MaxWordLength: cfg.Indexer.MaxWordLength},
			cfg.Indexer.MaxFileNameLength,
		),
		store:   st,
		timeout: cfg.Backup.Timeout,
		metrics: m,
		logger:  slog.Default().With("component", "engine"),
	}
}

func (e *Engine) State() State {
	return e.state
}

// Index exposes the engine's index for read-only use.
func (e *Engine) Index() *index.Index {
	return e.idx
}

// Build populates the index from files. Allowed only from StateEmpty.
func (e *Engine) Build(ctx context.Context, files []string) (BuildReport, error) {
	if e.state != StateEmpty {
		return BuildReport{}, apperrors.Newf(apperrors.ErrInvalidState, apperrors.ExitUsage,
			"database already %s, cannot create again", e.state)
	}
	start := time.Now()
	report, err := e.builder.Build(ctx, e.idx, files)
	e.metrics.BuildDuration.Observe(time.Since(start).Seconds())
	e.metrics.FilesIndexedTotal.Add(float64(len(report.Files)))
	e.metrics.FilesSkippedTotal.Add(float64(len(report.Skipped)))
	e.metrics.WordsIndexedTotal.Add(float64(report.Words))
	e.metrics.TokensRejectedTotal.Add(float64(report.Rejected))
	if err != nil {
		e.idx.Reset()
		return report, err
	}
	e.state = StateBuilt
	e.metrics.IndexWords.Set(float64(e.idx.Len()))
	return report, nil
}

// Load replaces the empty index with the stored backup. A missing or
// malformed backup leaves the engine unchanged.
func (e *Engine) Load(ctx context.Context) error {
	if e.state != StateEmpty {
		return apperrors.Newf(apperrors.ErrInvalidState, apperrors.ExitUsage,
			"database already %s, cannot update", e.state)
	}
	ctx, cancel := e.withTimeout(ctx)
	defer cancel()
	data, err := e.store.Read(ctx)
	if err != nil {
		e.recordBackup("load", err)
		if errors.Is(err, apperrors.ErrBackupNotFound) {
			e.logger.Warn("no backup to load", "store", e.store.Name())
		} else {
			e.logger.Error("reading backup failed", "store", e.store.Name(), "error", err)
		}
		return fmt.Errorf("loading backup: %w", err)
	}
	loaded, err := backup.Unmarshal(data)
	if err != nil {
		e.recordBackup("load", err)
		e.logger.Error("backup is malformed, nothing loaded", "store", e.store.Name(), "error", err)
		return fmt.Errorf("loading backup: %w", err)
	}
	e.idx = loaded
	e.state = StateLoaded
	e.recordBackup("load", nil)
	e.metrics.BackupBytes.WithLabelValues("load").Set(float64(len(data)))
	e.metrics.IndexWords.Set(float64(e.idx.Len()))
	e.logger.Info("backup loaded", "store", e.store.Name(), "words", e.idx.Len(), "bytes", len(data))
	return nil
}

// Save writes the whole index to the store, replacing any previous backup.
func (e *Engine) Save(ctx context.Context) error {
	if err := e.requireReady(); err != nil {
		return err
	}
	data, err := backup.Marshal(e.idx)
	if err != nil {
		e.recordBackup("save", err)
		return fmt.Errorf("encoding backup: %w", err)
	}
	ctx, cancel := e.withTimeout(ctx)
	defer cancel()
	if err := e.store.Write(ctx, data); err != nil {
		e.recordBackup("save", err)
		e.logger.Error("saving backup failed", "store", e.store.Name(), "error", err)
		return fmt.Errorf("saving backup: %w", err)
	}
	e.recordBackup("save", nil)
	e.metrics.BackupBytes.WithLabelValues("save").Set(float64(len(data)))
	e.logger.Info("backup saved", "store", e.store.Name(), "words", e.idx.Len(), "bytes", len(data))
	return nil
}

// Query looks up one word. An absent word is a normal result, not an error.
func (e *Engine) Query(word string) (executor.Result, error) {
	if err := e.requireReady(); err != nil {
		return executor.Result{}, err
	}
	res, err := executor.Query(e.idx, word)
	switch {
	case err != nil:
		e.metrics.QueriesTotal.WithLabelValues("invalid").Inc()
	case res.Found:
		e.metrics.QueriesTotal.WithLabelValues("found").Inc()
	default:
		e.metrics.QueriesTotal.WithLabelValues("not_found").Inc()
	}
	return res, err
}

// Display renders the whole index to w.
func (e *Engine) Display(w io.Writer) error {
	if err := e.requireReady(); err != nil {
		return err
	}
	return display.Database(w, e.idx)
}

// PingStore checks the backup backend. It reads no index state and may be
// called from another goroutine.
func (e *Engine) PingStore(ctx context.Context) error {
	return store.Ping(ctx, e.store)
}

func (e *Engine) requireReady() error {
	if e.state == StateEmpty {
		return apperrors.ErrIndexNotReady
	}
	return nil
}

func (e *Engine) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if e.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, e.timeout)
}

func (e *Engine) recordBackup(op string, err error) {
	status := "ok"
	switch {
	case err == nil:
	case errors.Is(err, apperrors.ErrBackupNotFound):
		status = "not_found"
	case errors.Is(err, apperrors.ErrMalformedBackup), errors.Is(err, apperrors.ErrUnencodable):
		status = "invalid"
	default:
		status = "error"
	}
	e.metrics.BackupOpsTotal.WithLabelValues(op, status).Inc()
}
