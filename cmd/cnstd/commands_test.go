package main

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/memegle/cnstd/internal/model"
)

func TestExitCodeFromError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"not available", model.ErrNotAvailable, ExitNotAvailable},
		{"not resolved", model.ErrNotResolved, ExitNotResolved},
		{"transfer", model.ErrTransfer, ExitTransferError},
		{"archive", model.ErrArchive, ExitArchiveError},
		{"storage", model.ErrStorage, ExitStorageError},
		{"wrapped", fmt.Errorf("resolving: %w", model.ErrNotAvailable), ExitNotAvailable},
		{"other", errors.New("boom"), ExitGeneralError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCodeFromError(tt.err))
		})
	}
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestModelsListJSON(t *testing.T) {
	dataDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dataDir, "mobilenetv3"), 0o755))

	out, err := runCommand(t, "models", "list", "--json", "--data-dir", dataDir)
	require.NoError(t, err)

	var rows []modelRow
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 2)

	byName := make(map[string]modelRow)
	for _, row := range rows {
		byName[row.Name] = row
	}

	assert.True(t, byName["mobilenetv3"].Resolved)
	assert.False(t, byName["resnet50_v1b"].Resolved)
	assert.Equal(t, filepath.Join(dataDir, "mobilenetv3"), byName["mobilenetv3"].Path)
}

func TestModelsPathNotResolved(t *testing.T) {
	_, err := runCommand(t, "models", "path", "resnet50_v1b", "--data-dir", t.TempDir())
	assert.ErrorIs(t, err, model.ErrNotResolved)
}

func TestModelsRemove(t *testing.T) {
	dataDir := t.TempDir()
	modelDir := filepath.Join(dataDir, "mobilenetv3")
	require.NoError(t, os.MkdirAll(modelDir, 0o755))

	_, err := runCommand(t, "models", "remove", "mobilenetv3", "--data-dir", dataDir)
	require.NoError(t, err)

	_, statErr := os.Stat(modelDir)
	assert.True(t, os.IsNotExist(statErr))

	_, err = runCommand(t, "models", "remove", "mobilenetv3", "--data-dir", dataDir)
	assert.ErrorIs(t, err, model.ErrNotResolved)
}

func TestSyncHonorsDataDirFlag(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("m/weights.bin")
	require.NoError(t, err)
	_, err = w.Write([]byte("w"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(buf.Bytes())
	}))
	t.Cleanup(srv.Close)

	configDataDir := t.TempDir()
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	cfgYAML := "version: \"1\"\n" +
		"storage:\n  data_dir: " + configDataDir + "\n" +
		"models:\n  m:\n    url: " + srv.URL + "/m.zip\n" +
		"load:\n  models: [m]\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfgYAML), 0o644))

	flagDir := t.TempDir()
	_, err = runCommand(t, "sync", "--config", cfgPath, "--data-dir", flagDir)
	require.NoError(t, err)

	// The flag overrides the config-declared data root.
	assert.FileExists(t, filepath.Join(flagDir, "m", "weights.bin"))
	_, statErr := os.Stat(filepath.Join(configDataDir, "m"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestExplicitConfigMustExist(t *testing.T) {
	_, err := runCommand(t, "models", "list",
		"--config", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "config file not found")
}
