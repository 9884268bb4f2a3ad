package model

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/memegle/cnstd/internal/config"
	"github.com/memegle/cnstd/internal/download"
	"github.com/memegle/cnstd/internal/xfs"
)

// Manager orchestrates model lifecycle: it resolves the models named in
// the configuration and tracks the resulting instances.
type Manager struct {
	client *download.Client
	log    *slog.Logger

	mu        sync.RWMutex
	instances map[string]*ModelInstance
}

// NewManager creates a new Manager instance.
func NewManager(client *download.Client, log *slog.Logger) *Manager {
	return &Manager{
		client:    client,
		log:       log,
		instances: make(map[string]*ModelInstance),
	}
}

// LoadModelsFromConfig resolves the models listed under load.models into
// dataDir and updates the instance table. Instances no longer named in the
// config are dropped. The caller resolves the data root once (flag, env or
// config precedence) and threads it in; the manager never recomputes it.
func (m *Manager) LoadModelsFromConfig(ctx context.Context, cfg *config.Config, dataDir string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	registry := RegistryFromConfig(cfg)
	resolver := NewResolver(registry, m.client, m.log)

	if err := xfs.EnsureDir(dataDir); err != nil {
		return fmt.Errorf("failed to prepare data dir %s: %w", dataDir, err)
	}

	loadedKeys := make(map[string]bool)
	for _, modelID := range cfg.Load.Models {
		dir, err := resolver.Resolve(ctx, filepath.Join(dataDir, modelID))
		if err != nil {
			return fmt.Errorf("failed to resolve model %s: %w", modelID, err)
		}

		instance := NewModelInstance(modelID, cfg.Models[modelID], dir)
		instance.SetStatus(ModelStatusReady)
		m.instances[modelID] = instance
		loadedKeys[modelID] = true

		m.log.Info("Model loaded", "model_id", modelID, "dir", dir)
	}

	// Drop instances removed from the config.
	for id := range m.instances {
		if !loadedKeys[id] {
			delete(m.instances, id)
			m.log.Info("Model unloaded", "model_id", id)
		}
	}

	return nil
}

// Get returns the instance with the given ID.
func (m *Manager) Get(id string) (*ModelInstance, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	instance, ok := m.instances[id]
	return instance, ok
}

// List returns all tracked instances.
func (m *Manager) List() []*ModelInstance {
	m.mu.RLock()
	defer m.mu.RUnlock()

	instances := make([]*ModelInstance, 0, len(m.instances))
	for _, instance := range m.instances {
		instances = append(instances, instance)
	}

	return instances
}
