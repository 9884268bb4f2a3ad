// Command cnstd manages the model assets of the cnstd scene-text
// detection toolkit: it resolves model directories from the built-in zoo
// or a config-declared mirror, downloading and unpacking archives on
// demand.
//
// Configuration is read from a YAML file (see --config); the data root
// can be overridden with the CNSTD_HOME environment variable.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/memegle/cnstd/internal/model"
)

// CLI exit codes for standardized error reporting.
const (
	// ExitSuccess indicates the operation completed successfully.
	ExitSuccess = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError = 1

	// ExitInvalidArgs indicates invalid command line arguments.
	ExitInvalidArgs = 2

	// ExitNotAvailable indicates the model is not in the registry.
	ExitNotAvailable = 3

	// ExitNotResolved indicates the model directory does not exist locally.
	ExitNotResolved = 4

	// ExitTransferError indicates a network or connection failure.
	ExitTransferError = 5

	// ExitArchiveError indicates the model archive was unreadable.
	ExitArchiveError = 6

	// ExitStorageError indicates a filesystem operation failed.
	ExitStorageError = 7
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(exitCodeFromError(err))
	}
}

// exitCodeFromError maps error types to exit codes.
func exitCodeFromError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, model.ErrNotAvailable):
		return ExitNotAvailable
	case errors.Is(err, model.ErrNotResolved):
		return ExitNotResolved
	case errors.Is(err, model.ErrTransfer):
		return ExitTransferError
	case errors.Is(err, model.ErrArchive):
		return ExitArchiveError
	case errors.Is(err, model.ErrStorage):
		return ExitStorageError
	default:
		return ExitGeneralError
	}
}
