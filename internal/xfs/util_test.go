package xfs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, ".cnstd"), ExpandTilde("~/.cnstd"))
	assert.Equal(t, home, ExpandTilde("~"))
	assert.Equal(t, "/opt/cnstd", ExpandTilde("/opt/cnstd"))
	assert.Equal(t, "relative/path", ExpandTilde("relative/path"))
	assert.Equal(t, "~root/.cnstd", ExpandTilde("~root/.cnstd"))
}

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b", "c")

	require.NoError(t, EnsureDir(dir))

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	// Idempotent on an existing directory.
	assert.NoError(t, EnsureDir(dir))
}
