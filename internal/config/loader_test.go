package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/memegle/cnstd/internal/envvar"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
version: "1"
storage:
  data_dir: ~/.cnstd
models:
  mobilenetv3:
    backbone: mobilenetv3
    epoch: 47
    metadata:
      rotated: false
load:
  models:
    - mobilenetv3
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "1", cfg.Version)
	assert.Equal(t, "~/.cnstd", cfg.Storage.DataDir)
	assert.Equal(t, []string{"mobilenetv3"}, cfg.Load.Models)

	mc, ok := cfg.Models["mobilenetv3"]
	require.True(t, ok)
	assert.Equal(t, "mobilenetv3", mc.Backbone)
	assert.Equal(t, 47, mc.Epoch)
}

func TestLoadMissingVersion(t *testing.T) {
	path := writeConfig(t, `
storage:
  data_dir: /tmp/cnstd
`)

	_, err := Load(path)
	assert.ErrorContains(t, err, "validation failed")
}

func TestLoadUnknownField(t *testing.T) {
	path := writeConfig(t, `
version: "1"
detector:
  threshold: 0.3
`)

	_, err := Load(path)
	assert.ErrorContains(t, err, "validation failed")
}

func TestLoadInvalidYAML(t *testing.T) {
	path := writeConfig(t, "version: [unclosed")

	_, err := Load(path)
	assert.ErrorContains(t, err, "invalid YAML")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorContains(t, err, "failed to read config")
}

func TestResolveDataDir(t *testing.T) {
	t.Run("env var wins", func(t *testing.T) {
		t.Setenv(envvar.CnstdHome, "/srv/cnstd-data")

		cfg := &Config{Storage: StorageConfig{DataDir: "/should/be/ignored"}}
		assert.Equal(t, "/srv/cnstd-data", ResolveDataDir(cfg))
	})

	t.Run("config second", func(t *testing.T) {
		t.Setenv(envvar.CnstdHome, "")

		cfg := &Config{Storage: StorageConfig{DataDir: "/var/lib/cnstd"}}
		assert.Equal(t, "/var/lib/cnstd", ResolveDataDir(cfg))
	})

	t.Run("platform default last", func(t *testing.T) {
		t.Setenv(envvar.CnstdHome, "")

		got := ResolveDataDir(&Config{})
		assert.Equal(t, DefaultDataDir(), got)
	})
}
