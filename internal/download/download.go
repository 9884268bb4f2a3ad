// Package download provides the bulk file-fetch primitive used to acquire
// packaged model archives.
package download

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"
)

const (
	// DefaultMaxAttempts is the number of times a fetch is tried before
	// giving up.
	DefaultMaxAttempts = 3

	// DefaultRetryDelay is the pause between fetch attempts.
	DefaultRetryDelay = 2 * time.Second
)

// HTTPClient is the interface for HTTP operations.
// *http.Client satisfies this interface.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client fetches remote files to local paths.
type Client struct {
	httpClient  HTTPClient
	log         *slog.Logger
	maxAttempts int
	retryDelay  time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
// If not set, http.DefaultClient is used.
func WithHTTPClient(httpClient HTTPClient) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithMaxAttempts sets how many times a fetch is tried. Values below 1 are
// clamped to 1.
func WithMaxAttempts(n int) Option {
	return func(c *Client) {
		if n < 1 {
			n = 1
		}
		c.maxAttempts = n
	}
}

// WithRetryDelay sets the pause between fetch attempts.
func WithRetryDelay(d time.Duration) Option {
	return func(c *Client) {
		c.retryDelay = d
	}
}

// New creates a download client writing diagnostics to the given logger.
func New(log *slog.Logger, opts ...Option) *Client {
	c := &Client{
		httpClient:  http.DefaultClient,
		log:         log,
		maxAttempts: DefaultMaxAttempts,
		retryDelay:  DefaultRetryDelay,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// FetchOption configures a single fetch.
type FetchOption func(*fetchConfig)

type fetchConfig struct {
	onProgress func(delta int64)
}

// WithProgress sets a callback invoked with byte deltas as the response
// body is read. The callback must be fast; it runs on the download path.
func WithProgress(fn func(delta int64)) FetchOption {
	return func(fc *fetchConfig) {
		fc.onProgress = fn
	}
}

// Fetch downloads url into dest, overwriting any existing file there. The
// transfer is synchronous; Fetch returns once the full content is on disk
// or the last attempt failed. On failure no partial file is left at dest,
// so a later probe cannot mistake partial bytes for a completed download.
func (c *Client) Fetch(ctx context.Context, url, dest string, opts ...FetchOption) error {
	fc := &fetchConfig{}
	for _, opt := range opts {
		opt(fc)
	}

	var lastErr error
	for attempt := 0; attempt < c.maxAttempts; attempt++ {
		if attempt > 0 {
			c.log.Info("Retrying download", "url", url, "attempt", attempt+1, "last_error", lastErr)
			select {
			case <-ctx.Done():
				return fmt.Errorf("fetching %s: %w", url, ctx.Err())
			case <-time.After(c.retryDelay):
			}
		} else {
			c.log.Info("Downloading", "url", url, "dest", dest)
		}

		err := c.fetchOnce(ctx, url, dest, fc.onProgress)
		if err == nil {
			c.log.Info("Download complete", "url", url, "dest", dest, "attempt", attempt+1)
			return nil
		}

		lastErr = err
		if ctx.Err() != nil {
			return err
		}
		c.log.Error("Download failed", "url", url, "attempt", attempt+1, "error", err)
	}

	return lastErr
}

func (c *Client) fetchOnce(ctx context.Context, url, dest string, onProgress func(delta int64)) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetching %s: unexpected status %d", url, resp.StatusCode)
	}

	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dest, err)
	}

	var reader io.Reader = resp.Body
	if onProgress != nil {
		reader = &progressReader{reader: resp.Body, onProgress: onProgress}
	}

	if _, err := io.Copy(out, reader); err != nil {
		out.Close()
		os.Remove(dest)
		return fmt.Errorf("writing %s: %w", dest, err)
	}

	if err := out.Close(); err != nil {
		os.Remove(dest)
		return fmt.Errorf("closing %s: %w", dest, err)
	}

	return nil
}

// progressReader wraps an io.Reader and reports progress as bytes are read.
type progressReader struct {
	reader     io.Reader
	onProgress func(delta int64)
}

func (pr *progressReader) Read(p []byte) (n int, err error) {
	n, err = pr.reader.Read(p)
	if n > 0 && pr.onProgress != nil {
		pr.onProgress(int64(n))
	}
	return
}
