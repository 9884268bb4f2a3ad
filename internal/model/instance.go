package model

import (
	"path/filepath"
	"sync"

	"github.com/memegle/cnstd/internal/config"
	"github.com/memegle/cnstd/internal/mapsafe"
)

// ModelStatus describes where a model is in its lifecycle.
type ModelStatus string

const (
	// ModelStatusUnresolved means the model directory has not been
	// materialized yet.
	ModelStatusUnresolved ModelStatus = "unresolved"

	// ModelStatusReady means the model directory is populated on disk.
	ModelStatusReady ModelStatus = "ready"

	// ModelStatusFailed means the last resolution attempt failed.
	ModelStatusFailed ModelStatus = "failed"
)

// defaultCheckpointEpoch is the training epoch the released checkpoints
// were exported at, used when the config does not pin one.
const defaultCheckpointEpoch = 59

// ModelInstance is a resolved model tracked by the Manager.
type ModelInstance struct {
	// ID is the model identifier, also the directory base name.
	ID string

	// Backbone is the feature-extractor tag baked into the params file
	// name. Defaults to the ID.
	Backbone string

	// Epoch is the checkpoint epoch baked into the params file name.
	Epoch int

	// Dir is the absolute path of the extracted model directory.
	Dir string

	// Metadata carries free-form per-model settings from the config.
	Metadata map[string]any

	mu     sync.RWMutex
	status ModelStatus
}

// NewModelInstance creates an instance for the given identifier and
// resolved directory, filling gaps in the config with defaults.
func NewModelInstance(id string, mc config.ModelConfig, dir string) *ModelInstance {
	backbone := mc.Backbone
	if backbone == "" {
		backbone = id
	}

	epoch := mc.Epoch
	if epoch == 0 {
		epoch = defaultCheckpointEpoch
	}

	return &ModelInstance{
		ID:       id,
		Backbone: backbone,
		Epoch:    epoch,
		Dir:      dir,
		Metadata: mc.Metadata,
		status:   ModelStatusUnresolved,
	}
}

// SetStatus updates the lifecycle status.
func (i *ModelInstance) SetStatus(status ModelStatus) {
	i.mu.Lock()
	defer i.mu.Unlock()

	i.status = status
}

// Status returns the current lifecycle status.
func (i *ModelInstance) Status() ModelStatus {
	i.mu.RLock()
	defer i.mu.RUnlock()

	return i.status
}

// ParamsFile returns the expected checkpoint path inside the model
// directory.
func (i *ModelInstance) ParamsFile() string {
	return filepath.Join(i.Dir, ParamsFileName(i.Backbone, i.Epoch))
}

// Rotated reports whether the model detects rotated text boxes.
func (i *ModelInstance) Rotated() bool {
	return mapsafe.Get(i.Metadata, "rotated", false)
}
