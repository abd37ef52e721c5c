// Package http provides HTTP utilities for fetching remote images.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jmylchreest/swatch/internal/version"
)

const (
	// UserAgentName is the application name used in the User-Agent header.
	UserAgentName = "swatch"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 10 * time.Second

	// DefaultMaxBytes caps the size of a fetched body.
	DefaultMaxBytes int64 = 64 << 20
)

// FetchOptions configures HTTP fetch behavior.
type FetchOptions struct {
	// Timeout specifies the HTTP request timeout.
	// If zero, DefaultTimeout is used.
	Timeout time.Duration

	// MaxBytes rejects bodies larger than this. If zero, DefaultMaxBytes is used.
	MaxBytes int64

	// Client overrides the HTTP client. Timeout is ignored when set.
	Client *http.Client
}

// Fetch retrieves content from a URL with context and timeout support.
func Fetch(ctx context.Context, url string, opts FetchOptions) ([]byte, error) {
	client := opts.Client
	if client == nil {
		timeout := opts.Timeout
		if timeout == 0 {
			timeout = DefaultTimeout
		}
		client = &http.Client{Timeout: timeout}
	}

	maxBytes := opts.MaxBytes
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", fmt.Sprintf("%s/%s", UserAgentName, version.Version))
	req.Header.Set("Accept", "image/*")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if int64(len(data)) > maxBytes {
		return nil, fmt.Errorf("response body exceeds %d bytes", maxBytes)
	}

	return data, nil
}
