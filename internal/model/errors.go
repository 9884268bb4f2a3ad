package model

import "errors"

// Sentinel errors for model asset resolution.
// Use errors.Is() to check for specific error conditions.
var (
	// ErrNotAvailable indicates the requested identifier is not present in
	// the model registry. Non-retryable; the caller must supply a valid
	// model name.
	ErrNotAvailable = errors.New("cnstd: model not available")

	// ErrTransfer indicates the archive download failed or was interrupted.
	// Retryable once the network condition clears.
	ErrTransfer = errors.New("cnstd: model download failed")

	// ErrArchive indicates the model archive could not be read or was
	// incomplete.
	ErrArchive = errors.New("cnstd: invalid model archive")

	// ErrStorage indicates a filesystem operation failed.
	ErrStorage = errors.New("cnstd: storage error")

	// ErrNotResolved indicates the model directory does not exist locally.
	ErrNotResolved = errors.New("cnstd: model not resolved locally")
)
