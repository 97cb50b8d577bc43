// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

type (
	// Fetcher downloads remote manifests with unauthenticated GETs. It never
	// retries; a failed request surfaces as a *NetworkError.
	Fetcher struct {
		httpClient *http.Client
		userAgent  string
	}

	// FetcherOption configures a Fetcher during construction.
	FetcherOption func(*Fetcher)
)

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(c *http.Client) FetcherOption {
	return func(f *Fetcher) {
		f.httpClient = c
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) FetcherOption {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// NewFetcher creates a Fetcher. Defaults: http.DefaultClient, no timeout.
func NewFetcher(opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		httpClient: http.DefaultClient,
		userAgent:  "lwau/dev",
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch downloads and decodes the remote manifest at rawURL. GitHub page
// URLs are rewritten to their raw form first.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*Manifest, error) {
	target := RawURL(rawURL)
	data, err := f.Get(ctx, target)
	if err != nil {
		return nil, err
	}
	return Decode(data, target, KindRemote)
}

// Get performs a GET and returns the body. At most one byte more than
// MaxSize is read, enough for Decode to reject an oversized document.
func (f *Fetcher) Get(ctx context.Context, target string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, http.NoBody)
	if err != nil {
		return nil, &NetworkError{URL: target, Err: fmt.Errorf("creating request: %w", err)}
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{URL: target, Err: err}
	}
	defer func() { _ = resp.Body.Close() }() // read-only response body

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &NetworkError{URL: target, StatusCode: resp.StatusCode}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxSize+1))
	if err != nil {
		return nil, &NetworkError{URL: target, Err: fmt.Errorf("reading body: %w", err)}
	}
	return data, nil
}
