package env

import (
	"os"
	"strings"

	"github.com/memegle/cnstd/internal/envvar"
)

// Environment identifies the runtime environment the process runs in.
type Environment string

const (
	// Development enables human-readable logging and verbose diagnostics.
	Development Environment = "development"

	// Production enables structured JSON logging.
	Production Environment = "production"
)

// FromEnv reads the runtime environment from CNSTD_ENV.
// Unknown or empty values default to Development.
func FromEnv() Environment {
	switch strings.ToLower(os.Getenv(envvar.CnstdEnv)) {
	case "production", "prod":
		return Production
	default:
		return Development
	}
}
