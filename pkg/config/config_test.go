package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 49, cfg.Indexer.MaxWordLength)
	assert.Equal(t, 99, cfg.Indexer.MaxFileNameLength)
	assert.Equal(t, BackendFile, cfg.Backup.Backend)
	assert.Equal(t, ".", cfg.Backup.Dir)
	assert.False(t, cfg.Metrics.Enabled)
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invsearch.yaml")
	data := `
indexer:
  maxWordLength: 0
backup:
  backend: redis
  name: shared:index
  timeout: 3s
logging:
  level: debug
  format: json
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 0, cfg.Indexer.MaxWordLength)
	assert.Equal(t, 99, cfg.Indexer.MaxFileNameLength)
	assert.Equal(t, BackendRedis, cfg.Backup.Backend)
	assert.Equal(t, "shared:index", cfg.Backup.Name)
	assert.Equal(t, 3*time.Second, cfg.Backup.Timeout)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("IS_BACKUP_DIR", "/var/lib/invsearch")
	t.Setenv("IS_MAX_WORD_LENGTH", "12")
	t.Setenv("IS_METRICS_ADDR", "127.0.0.1:9100")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/invsearch", cfg.Backup.Dir)
	assert.Equal(t, 12, cfg.Indexer.MaxWordLength)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "127.0.0.1:9100", cfg.Metrics.Addr)
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	t.Setenv("IS_BACKUP_BACKEND", "s3")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown backup backend")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestPostgresDSN(t *testing.T) {
	p := Default().Postgres
	assert.Equal(t, "host=localhost port=5432 user=invsearch password=localdev dbname=invsearch sslmode=disable", p.DSN())
}
