package model

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/memegle/cnstd/internal/archive"
	"github.com/memegle/cnstd/internal/download"
	"github.com/memegle/cnstd/internal/xfs"
)

// DefaultLockTimeout is the default timeout for acquiring the per-model
// resolution lock.
const DefaultLockTimeout = 2 * time.Minute

// Resolver guarantees that a model directory exists on local storage,
// downloading and unpacking the packaged archive on demand.
//
// The archive lives at <dir>.zip while a resolution is in flight and is
// deleted after extraction. Its presence on disk is what short-circuits
// the download: a resolver never probes the extracted directory itself,
// so resolving an already-extracted model downloads the archive again.
type Resolver struct {
	registry    *Registry
	client      *download.Client
	log         *slog.Logger
	lockTimeout time.Duration
}

// NewResolver creates a resolver backed by the given registry and download
// client.
func NewResolver(registry *Registry, client *download.Client, log *slog.Logger) *Resolver {
	return &Resolver{
		registry:    registry,
		client:      client,
		log:         log,
		lockTimeout: DefaultLockTimeout,
	}
}

// Resolve ensures modelDir holds the extracted model files and returns its
// expanded path. The directory's base name must be a known model
// identifier unless the archive is already present, in which case the
// registry is not consulted and no download occurs — even if the archive
// turns out to be unreadable.
//
// Concurrent calls for the same directory are serialized through an
// advisory lock next to the target, so only one process downloads.
func (r *Resolver) Resolve(ctx context.Context, modelDir string) (string, error) {
	modelDir = xfs.ExpandTilde(modelDir)
	parent := filepath.Dir(modelDir)

	if err := xfs.EnsureDir(parent); err != nil {
		return "", fmt.Errorf("%w: %v", ErrStorage, err)
	}

	lock, err := newFileLock(modelDir+".lock", r.lockTimeout)
	if err != nil {
		return "", fmt.Errorf("%w: failed to create lock: %v", ErrStorage, err)
	}
	if err := lock.Lock(); err != nil {
		return "", fmt.Errorf("%w: failed to acquire lock: %v", ErrStorage, err)
	}
	defer lock.Unlock()

	zipPath := modelDir + ".zip"
	if _, err := os.Stat(zipPath); os.IsNotExist(err) {
		name := filepath.Base(modelDir)

		entry, ok := r.registry.Lookup(name)
		if !ok {
			return "", fmt.Errorf("%w: %s", ErrNotAvailable, name)
		}

		r.log.Info("Fetching model archive", "model", name, "version", entry.Version, "url", entry.URL)
		if err := r.client.Fetch(ctx, entry.URL, zipPath); err != nil {
			return "", fmt.Errorf("%w: %s: %v", ErrTransfer, entry.URL, err)
		}
	}

	// Archive entries are namespaced under the model's base name, so they
	// unpack into the parent directory.
	if err := archive.ExtractZip(zipPath, parent); err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrArchive, zipPath, err)
	}

	if err := os.Remove(zipPath); err != nil {
		return "", fmt.Errorf("%w: failed to remove archive: %v", ErrStorage, err)
	}

	r.log.Info("Model directory ready", "path", modelDir)
	return modelDir, nil
}
