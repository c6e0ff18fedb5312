package blobfetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTPConfig options for the HTTP fetcher.
type HTTPConfig struct {
	// Client to use for requests. Nil means a client with Timeout.
	Client *http.Client
	// Timeout for the default client (default: 30s). Ignored when Client
	// is set.
	Timeout time.Duration
	// MaxBytes caps the response body size (default: 32 MiB). Payloads are
	// held in memory and base64-encoded, so unbounded reads are not safe.
	MaxBytes int64
}

const (
	defaultHTTPTimeout  = 30 * time.Second
	defaultHTTPMaxBytes = 32 << 20
)

// HTTP reads media blobs from http(s) URLs.
type HTTP struct {
	client   *http.Client
	maxBytes int64
}

// NewHTTP creates an HTTP fetcher.
func NewHTTP(config HTTPConfig) *HTTP {
	client := config.Client
	if client == nil {
		timeout := config.Timeout
		if timeout == 0 {
			timeout = defaultHTTPTimeout
		}
		client = &http.Client{Timeout: timeout}
	}
	maxBytes := config.MaxBytes
	if maxBytes == 0 {
		maxBytes = defaultHTTPMaxBytes
	}
	return &HTTP{client: client, maxBytes: maxBytes}
}

func (h *HTTP) Fetch(ctx context.Context, pathURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pathURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", pathURL, err)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", pathURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d fetching %s", resp.StatusCode, pathURL)
	}

	blob, err := io.ReadAll(io.LimitReader(resp.Body, h.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read body of %s: %w", pathURL, err)
	}
	if int64(len(blob)) > h.maxBytes {
		return nil, fmt.Errorf("response for %s exceeds %d bytes", pathURL, h.maxBytes)
	}
	return blob, nil
}
