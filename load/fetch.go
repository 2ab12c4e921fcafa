/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package load

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"bennypowers.dev/tokencraft/internal/version"
)

const (
	// DefaultTimeout bounds each remote fetch.
	DefaultTimeout = 30 * time.Second

	// DefaultMaxSize caps remote token sources at 10 MB.
	DefaultMaxSize int64 = 10 * 1024 * 1024
)

// ErrTooLarge is returned when a remote source exceeds the size cap.
var ErrTooLarge = errors.New("response exceeds maximum size")

// StatusError reports a non-200 response.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetching %s: %d %s", e.URL, e.Code, http.StatusText(e.Code))
}

// Fetcher fetches remote token sources.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context, url string) ([]byte, error)

// Fetch calls f.
func (f FetcherFunc) Fetch(ctx context.Context, url string) ([]byte, error) {
	return f(ctx, url)
}

// HTTPFetcher fetches token sources over HTTP.
type HTTPFetcher struct {
	maxSize int64
	client  *http.Client
}

// NewHTTPFetcher creates an HTTPFetcher reading at most maxSize bytes per
// response. A non-positive size means DefaultMaxSize.
func NewHTTPFetcher(maxSize int64) *HTTPFetcher {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	return &HTTPFetcher{maxSize: maxSize, client: &http.Client{}}
}

// Fetch GETs url. Deadlines come from ctx.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request for %s: %w", url, err)
	}
	req.Header.Set("User-Agent", version.UserAgent())
	req.Header.Set("Accept", "application/json, application/yaml;q=0.9, */*;q=0.1")

	resp, err := f.client.Do(req)
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return nil, fmt.Errorf("timeout fetching %s: %w", url, err)
	case err != nil:
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{URL: url, Code: resp.StatusCode}
	}

	content, err := io.ReadAll(io.LimitReader(resp.Body, f.maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading response from %s: %w", url, err)
	}
	if int64(len(content)) > f.maxSize {
		return nil, fmt.Errorf("%s: %w (%d bytes)", url, ErrTooLarge, f.maxSize)
	}
	return content, nil
}
