package model

import (
	"fmt"
	"sort"

	"github.com/memegle/cnstd/internal/config"
)

// ModelVersion is the release line of the packaged detection models.
// It is part of the canonical parameters file name.
const ModelVersion = "1.0.0"

// modelBaseURL is where the packaged model archives are hosted.
const modelBaseURL = "https://beiye-model.oss-cn-beijing.aliyuncs.com/models/cnstd"

// Entry describes one downloadable model variant.
type Entry struct {
	// Version is the model release the archive belongs to.
	Version string

	// URL is where the packaged zip archive is downloaded from.
	URL string
}

// Registry maps model identifiers to their version and download URL.
// It is immutable after construction; build one at startup and share it
// by reference. Lookups are O(1).
type Registry struct {
	entries map[string]Entry
}

// NewRegistry creates a registry from the given entries. The input map is
// copied; later mutation of it does not affect the registry.
func NewRegistry(entries map[string]Entry) *Registry {
	copied := make(map[string]Entry, len(entries))
	for name, entry := range entries {
		copied[name] = entry
	}

	return &Registry{entries: copied}
}

// DefaultRegistry returns the built-in model zoo.
func DefaultRegistry() *Registry {
	return NewRegistry(map[string]Entry{
		"mobilenetv3":  {Version: ModelVersion, URL: modelBaseURL + "/mobilenetv3.zip"},
		"resnet50_v1b": {Version: ModelVersion, URL: modelBaseURL + "/resnet50_v1b.zip"},
	})
}

// RegistryFromConfig merges config-declared model URLs over the built-in
// zoo, so deployments can pin alternative mirrors or add private models.
func RegistryFromConfig(cfg *config.Config) *Registry {
	if cfg == nil {
		return DefaultRegistry()
	}

	overrides := make(map[string]Entry)
	for id, mc := range cfg.Models {
		if mc.URL != "" {
			overrides[id] = Entry{Version: ModelVersion, URL: mc.URL}
		}
	}

	return DefaultRegistry().With(overrides)
}

// Lookup returns the entry for the given model identifier.
func (r *Registry) Lookup(name string) (Entry, bool) {
	entry, ok := r.entries[name]
	return entry, ok
}

// Contains reports whether the identifier names a known model.
func (r *Registry) Contains(name string) bool {
	_, ok := r.entries[name]
	return ok
}

// Names returns all model identifiers in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// With derives a new registry with the given entries added, overriding
// existing identifiers. The receiver is left unchanged.
func (r *Registry) With(entries map[string]Entry) *Registry {
	merged := make(map[string]Entry, len(r.entries)+len(entries))
	for name, entry := range r.entries {
		merged[name] = entry
	}
	for name, entry := range entries {
		merged[name] = entry
	}

	return &Registry{entries: merged}
}

// ParamsFileName returns the canonical parameters file name for a trained
// checkpoint, e.g. "cnstd-v1.0.0-resnet50_v1b-0059.params".
func ParamsFileName(backbone string, epoch int) string {
	return fmt.Sprintf("cnstd-v%s-%s-%04d.params", ModelVersion, backbone, epoch)
}
