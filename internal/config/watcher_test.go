package config

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestWatcherInitialSnapshot(t *testing.T) {
	path := writeConfig(t, `
version: "1"
load:
  models: [mobilenetv3]
`)

	watcher, err := NewWatcher(path, discardLogger(), func(*Config, error) {})
	require.NoError(t, err)
	t.Cleanup(func() { watcher.Close() })

	cfg := watcher.Snapshot()
	require.NotNil(t, cfg)
	assert.Equal(t, []string{"mobilenetv3"}, cfg.Load.Models)
	assert.EqualValues(t, 0, watcher.ReloadCount())
}

func TestWatcherRejectsInvalidInitialConfig(t *testing.T) {
	path := writeConfig(t, "bogus: true")

	_, err := NewWatcher(path, discardLogger(), func(*Config, error) {})
	assert.ErrorContains(t, err, "failed to load initial config")
}

func TestWatcherReloadsOnChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("version: \"1\"\n"), 0o644))

	var reloaded atomic.Int32
	watcher, err := NewWatcher(path, discardLogger(), func(cfg *Config, err error) {
		if err == nil {
			reloaded.Add(1)
		}
	})
	require.NoError(t, err)
	t.Cleanup(func() { watcher.Close() })

	updated := `
version: "1"
storage:
  data_dir: /srv/models
`
	require.NoError(t, os.WriteFile(path, []byte(updated), 0o644))

	require.Eventually(t, func() bool {
		return reloaded.Load() >= 1
	}, 5*time.Second, 50*time.Millisecond, "watcher should pick up the write")

	assert.Equal(t, "/srv/models", watcher.Snapshot().Storage.DataDir)
	assert.GreaterOrEqual(t, watcher.ReloadCount(), uint32(1))
}

func TestWatcherCloseStopsReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("version: \"1\"\n"), 0o644))

	var reloaded atomic.Int32
	watcher, err := NewWatcher(path, discardLogger(), func(*Config, error) {
		reloaded.Add(1)
	})
	require.NoError(t, err)

	require.NoError(t, watcher.Close())
	// Idempotent.
	require.NoError(t, watcher.Close())

	require.NoError(t, os.WriteFile(path, []byte("version: \"2\"\n"), 0o644))

	assert.Never(t, func() bool {
		return reloaded.Load() > 0
	}, time.Second, 50*time.Millisecond, "writes after Close must not trigger a reload")
	assert.Equal(t, "1", watcher.Snapshot().Version)
}
