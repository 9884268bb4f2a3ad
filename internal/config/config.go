package config

// Config holds the main configuration for the application.
type Config struct {
	Version string                 `json:"version"           yaml:"version"`
	Storage StorageConfig          `json:"storage,omitempty" yaml:"storage,omitempty"`
	Models  map[string]ModelConfig `json:"models,omitempty"  yaml:"models,omitempty"`
	Load    LoadConfig             `json:"load,omitempty"    yaml:"load,omitempty"`
}

// StorageConfig holds configuration for local model storage.
type StorageConfig struct {
	// DataDir overrides the platform-default data root (~/.cnstd on
	// Unix-like systems). The CNSTD_HOME environment variable takes
	// precedence over this field.
	DataDir string `json:"data_dir,omitempty" yaml:"data_dir,omitempty"`
}

// ModelConfig holds configuration for a single model variant. Entries here
// extend or override the built-in model zoo.
type ModelConfig struct {
	Backbone string         `json:"backbone,omitempty" yaml:"backbone,omitempty"`
	Epoch    int            `json:"epoch,omitempty"    yaml:"epoch,omitempty"`
	URL      string         `json:"url,omitempty"      yaml:"url,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// LoadConfig names the models resolved at startup.
type LoadConfig struct {
	Models []string `json:"models" yaml:"models"` // List of model IDs
}
