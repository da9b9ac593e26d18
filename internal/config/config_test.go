package config_test

import (
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/cookiejar/internal/config"
)

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()

		cfg, err := config.Load(afero.NewMemMapFs(), "", nil)
		require.NoError(t, err)
		require.Equal(t, "file", cfg.Backend)
		require.Equal(t, "cookies.txt", cfg.File)
		require.Equal(t, "default", cfg.Namespace)
		require.Equal(t, "cookies.db", cfg.SQLite.Path)
		require.Equal(t, 3, cfg.Postgres.RetryAttempts)
		require.Equal(t, 2*time.Second, cfg.Redis.RetryInterval)
	})

	t.Run("file overrides defaults and env overrides file", func(t *testing.T) {
		t.Parallel()

		fsys := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fsys, "cookiejar.yaml", []byte(`
backend: sqlite
host: app.example.com
sqlite:
  path: /var/lib/cookies.db
log:
  level: debug
redis:
  url: redis://cache:6379/1
`), 0o600))

		cfg, err := config.Load(fsys, "cookiejar.yaml", []string{
			"COOKIEJAR_HOST=api.example.com",
			"LOG_FORMAT=text",
		})
		require.NoError(t, err)
		require.Equal(t, "sqlite", cfg.Backend)
		require.Equal(t, "/var/lib/cookies.db", cfg.SQLite.Path)
		require.Equal(t, 5*time.Second, cfg.SQLite.BusyTimeout)
		require.Equal(t, "api.example.com", cfg.Host)
		require.Equal(t, "debug", cfg.Log.Level)
		require.Equal(t, "text", cfg.Log.Format)
		require.Equal(t, "redis://cache:6379/1", cfg.Redis.URL)
		require.Equal(t, "cookies.txt", cfg.File)
	})

	t.Run("missing file is skipped", func(t *testing.T) {
		t.Parallel()

		cfg, err := config.Load(afero.NewMemMapFs(), "nope.yaml", []string{"COOKIEJAR_BACKEND=memory"})
		require.NoError(t, err)
		require.Equal(t, "memory", cfg.Backend)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		t.Parallel()

		fsys := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fsys, "bad.yaml", []byte("backend: [oops"), 0o600))

		_, err := config.Load(fsys, "bad.yaml", nil)
		require.ErrorIs(t, err, config.ErrParseConfig)
	})

	t.Run("invalid env value", func(t *testing.T) {
		t.Parallel()

		_, err := config.Load(afero.NewMemMapFs(), "", []string{"REDIS_POOL_SIZE=many"})
		require.ErrorIs(t, err, config.ErrParseConfig)
	})

	t.Run("unknown backend", func(t *testing.T) {
		t.Parallel()

		_, err := config.Load(afero.NewMemMapFs(), "", []string{"COOKIEJAR_BACKEND=etcd"})
		require.ErrorIs(t, err, config.ErrUnknownBackend)
	})
}
