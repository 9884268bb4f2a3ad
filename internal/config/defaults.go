package config

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/memegle/cnstd/internal/envvar"
	"github.com/memegle/cnstd/internal/xfs"
)

// DefaultConfigPath returns the default path for the cnstd config directory.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "cnstd", "config")
	}

	switch runtime.GOOS {
	case "windows":
		return filepath.Join(home, "AppData", "Roaming", "cnstd")
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "cnstd")
	default: // Linux, BSD, etc.
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "cnstd")
		}
		return filepath.Join(home, ".config", "cnstd")
	}
}

// DefaultDataDir returns the default data root under which model
// directories live: %APPDATA%\cnstd on Windows, ~/.cnstd elsewhere.
func DefaultDataDir() string {
	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "cnstd")
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".cnstd")
	}
	return filepath.Join(home, ".cnstd")
}

// ResolveDataDir returns the data root for model storage.
// Precedence:
// 1. CNSTD_HOME environment variable.
// 2. DataDir field in the config.
// 3. Default platform data dir.
func ResolveDataDir(cfg *Config) string {
	if p := os.Getenv(envvar.CnstdHome); p != "" {
		return xfs.ExpandTilde(p)
	}
	if cfg != nil && cfg.Storage.DataDir != "" {
		return xfs.ExpandTilde(cfg.Storage.DataDir)
	}
	return xfs.ExpandTilde(DefaultDataDir())
}
