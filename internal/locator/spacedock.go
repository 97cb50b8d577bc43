// SPDX-License-Identifier: MPL-2.0

package locator

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/lwau/lwau/internal/manifest"
)

type (
	// SpacedockMod is the subset of the Spacedock mod API response we use.
	SpacedockMod struct {
		ID       int                `json:"id"`
		Name     string             `json:"name"`
		Versions []SpacedockVersion `json:"versions"`
	}

	// SpacedockVersion is one published version of a Spacedock mod.
	SpacedockVersion struct {
		FriendlyVersion string `json:"friendly_version"`
		DownloadPath    string `json:"download_path"`
	}

	// SpacedockClient queries the Spacedock mod API.
	SpacedockClient struct {
		httpClient *http.Client
		baseURL    string
		userAgent  string
	}

	// SpacedockOption configures a SpacedockClient during construction.
	SpacedockOption func(*SpacedockClient)
)

// WithSpacedockHTTPClient sets a custom HTTP client.
func WithSpacedockHTTPClient(c *http.Client) SpacedockOption {
	return func(s *SpacedockClient) {
		s.httpClient = c
	}
}

// WithSpacedockBaseURL overrides the site root, primarily for test servers.
func WithSpacedockBaseURL(base string) SpacedockOption {
	return func(s *SpacedockClient) {
		s.baseURL = strings.TrimRight(base, "/")
	}
}

// WithSpacedockUserAgent sets the User-Agent header sent with every request.
func WithSpacedockUserAgent(ua string) SpacedockOption {
	return func(s *SpacedockClient) {
		s.userAgent = ua
	}
}

// NewSpacedockClient creates a SpacedockClient rooted at https://spacedock.info.
func NewSpacedockClient(opts ...SpacedockOption) *SpacedockClient {
	s := &SpacedockClient{
		httpClient: http.DefaultClient,
		baseURL:    "https://spacedock.info",
		userAgent:  "lwau/dev",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetMod fetches the mod with the given numeric id.
func (s *SpacedockClient) GetMod(ctx context.Context, id int) (*SpacedockMod, error) {
	modURL := fmt.Sprintf("%s/api/mod/%d", s.baseURL, id)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, modURL, http.NoBody)
	if err != nil {
		return nil, &manifest.NetworkError{URL: modURL, Err: fmt.Errorf("creating request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, &manifest.NetworkError{URL: modURL, Err: err}
	}
	defer func() { _ = resp.Body.Close() }() // read-only response body

	if resp.StatusCode != http.StatusOK {
		return nil, &manifest.NetworkError{URL: modURL, StatusCode: resp.StatusCode}
	}

	var m SpacedockMod
	if err := decodeJSON(io.LimitReader(resp.Body, maxJSONResponseBytes), &m); err != nil {
		return nil, &manifest.ParseError{Source: modURL, Err: err}
	}
	return &m, nil
}

// DownloadURL turns a version's download_path into an absolute URL.
func (s *SpacedockClient) DownloadURL(v SpacedockVersion) string {
	if u, err := url.Parse(v.DownloadPath); err == nil && u.IsAbs() {
		return v.DownloadPath
	}
	return s.baseURL + "/" + strings.TrimLeft(v.DownloadPath, "/")
}

// SpacedockModID extracts the numeric id from a mod page URL such as
// https://spacedock.info/mod/1234/Some%20Mod.
func SpacedockModID(pageURL string) (int, error) {
	u, err := url.Parse(pageURL)
	if err != nil {
		return 0, fmt.Errorf("parsing %q: %w", pageURL, err)
	}
	segments := pathSegments(u.Path)
	if len(segments) < 2 {
		return 0, fmt.Errorf("no mod id in %q", pageURL)
	}
	id, err := strconv.Atoi(segments[1])
	if err != nil || id < 0 {
		return 0, fmt.Errorf("no mod id in %q", pageURL)
	}
	return id, nil
}

// pathSegments splits a URL path into its non-empty segments.
func pathSegments(p string) []string {
	var out []string
	for seg := range strings.SplitSeq(p, "/") {
		if seg != "" {
			out = append(out, seg)
		}
	}
	return out
}
