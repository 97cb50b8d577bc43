// SPDX-License-Identifier: MPL-2.0

package locator

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/lwau/lwau/internal/manifest"
)

const (
	// defaultPerPage is the number of releases fetched per API page.
	defaultPerPage = 30

	// maxPages is the upper bound on pagination to avoid runaway requests.
	maxPages = 3

	// maxJSONResponseBytes is the upper bound on JSON API response size (10 MB).
	maxJSONResponseBytes = 10 << 20
)

type (
	// RateLimitError is returned when the GitHub API rate limit is exceeded.
	RateLimitError struct {
		Limit     int
		Remaining int
		ResetAt   time.Time
	}

	// Release is a GitHub release with its assets.
	Release struct {
		TagName string
		Name    string
		Assets  []Asset
		HTMLURL string
	}

	// Asset is a single downloadable file attached to a release.
	Asset struct {
		Name               string
		BrowserDownloadURL string
		Size               int64
		ContentType        string
	}

	// githubRelease is the JSON wire format for a GitHub Release API response.
	githubRelease struct {
		TagName string        `json:"tag_name"`
		Name    string        `json:"name"`
		HTMLURL string        `json:"html_url"`
		Assets  []githubAsset `json:"assets"`
	}

	// githubAsset is the JSON wire format for a GitHub Release asset.
	githubAsset struct {
		Name               string `json:"name"`
		BrowserDownloadURL string `json:"browser_download_url"`
		Size               int64  `json:"size"`
		ContentType        string `json:"content_type"`
	}

	// GitHubClient lists releases through the GitHub REST API. Requests are
	// unauthenticated unless a token is configured.
	GitHubClient struct {
		httpClient *http.Client
		baseURL    string // API base URL (default: "https://api.github.com", overridable for tests)
		token      string
		userAgent  string
	}

	// GitHubOption configures a GitHubClient during construction.
	GitHubOption func(*GitHubClient)
)

// Error formats the rate limit details as a human-readable message.
func (e *RateLimitError) Error() string {
	return fmt.Sprintf("GitHub API rate limit exceeded (%d remaining, resets at %s)",
		e.Remaining, e.ResetAt.UTC().Format("15:04 UTC"))
}

// WithGitHubHTTPClient sets a custom HTTP client.
func WithGitHubHTTPClient(c *http.Client) GitHubOption {
	return func(g *GitHubClient) {
		g.httpClient = c
	}
}

// WithGitHubBaseURL overrides the GitHub API base URL, primarily for test servers.
func WithGitHubBaseURL(base string) GitHubOption {
	return func(g *GitHubClient) {
		g.baseURL = strings.TrimRight(base, "/")
	}
}

// WithGitHubToken sets a token for authenticated requests, which get a much
// higher rate limit.
func WithGitHubToken(token string) GitHubOption {
	return func(g *GitHubClient) {
		g.token = token
	}
}

// WithGitHubUserAgent sets the User-Agent header sent with every request.
func WithGitHubUserAgent(ua string) GitHubOption {
	return func(g *GitHubClient) {
		g.userAgent = ua
	}
}

// NewGitHubClient creates a GitHubClient. Defaults: baseURL
// "https://api.github.com", userAgent "lwau/dev", http.DefaultClient.
func NewGitHubClient(opts ...GitHubOption) *GitHubClient {
	c := &GitHubClient{
		httpClient: http.DefaultClient,
		baseURL:    "https://api.github.com",
		userAgent:  "lwau/dev",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListReleases fetches the releases of owner/repo in the order the API
// returns them (newest first). Pagination is followed up to maxPages.
func (c *GitHubClient) ListReleases(ctx context.Context, owner, repo string) ([]Release, error) {
	pageURL := fmt.Sprintf("%s/repos/%s/%s/releases?per_page=%d",
		c.baseURL, owner, repo, defaultPerPage)

	var all []Release

	for page := 0; page < maxPages && pageURL != ""; page++ {
		releases, next, err := c.listPage(ctx, pageURL)
		if err != nil {
			return nil, err
		}
		all = append(all, releases...)
		pageURL = next
	}

	return all, nil
}

func (c *GitHubClient) listPage(ctx context.Context, pageURL string) ([]Release, string, error) {
	resp, err := c.doRequest(ctx, pageURL)
	if err != nil {
		return nil, "", err
	}
	defer func() { _ = resp.Body.Close() }() // read-only response body

	if rlErr := checkRateLimit(resp); rlErr != nil {
		return nil, "", &manifest.NetworkError{URL: pageURL, StatusCode: resp.StatusCode, Err: rlErr}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, "", &manifest.NetworkError{URL: pageURL, StatusCode: resp.StatusCode}
	}

	releases, err := parseReleases(io.LimitReader(resp.Body, maxJSONResponseBytes))
	if err != nil {
		return nil, "", &manifest.ParseError{Source: pageURL, Err: err}
	}

	return releases, parseLinkHeader(resp.Header.Get("Link")), nil
}

// doRequest creates and executes a GET with the GitHub API headers.
func (c *GitHubClient) doRequest(ctx context.Context, reqURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, &manifest.NetworkError{URL: reqURL, Err: fmt.Errorf("creating request: %w", err)}
	}

	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")
	req.Header.Set("User-Agent", c.userAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &manifest.NetworkError{URL: reqURL, Err: err}
	}

	return resp, nil
}

// checkRateLimit returns a RateLimitError when X-RateLimit-Remaining is
// present and zero. The status code is not inspected.
func checkRateLimit(resp *http.Response) error {
	remaining := resp.Header.Get("X-RateLimit-Remaining")
	if remaining == "" {
		return nil
	}

	rem, err := strconv.Atoi(remaining)
	if err != nil || rem > 0 {
		return nil //nolint:nilerr // Non-numeric header is non-fatal.
	}

	// Companion headers are best effort; zero values are fine for a message.
	limit, _ := strconv.Atoi(resp.Header.Get("X-RateLimit-Limit"))                 //nolint:errcheck // Best-effort header parsing.
	resetUnix, _ := strconv.ParseInt(resp.Header.Get("X-RateLimit-Reset"), 10, 64) //nolint:errcheck // Best-effort header parsing.

	return &RateLimitError{
		Limit:     limit,
		Remaining: 0,
		ResetAt:   time.Unix(resetUnix, 0),
	}
}

// parseReleases decodes a JSON array of releases, skipping a leading BOM.
func parseReleases(body io.Reader) ([]Release, error) {
	var raw []githubRelease
	if err := decodeJSON(body, &raw); err != nil {
		return nil, fmt.Errorf("decoding releases: %w", err)
	}

	releases := make([]Release, 0, len(raw))
	for _, gr := range raw {
		releases = append(releases, toRelease(gr))
	}
	return releases, nil
}

// decodeJSON reads a UTF-8 JSON document, tolerating a byte order mark.
func decodeJSON(body io.Reader, v any) error {
	return json.NewDecoder(transform.NewReader(body, unicode.UTF8BOM.NewDecoder())).Decode(v)
}

// parseLinkHeader extracts the "next" page URL from a GitHub Link header.
//
// Example header: <https://api.github.com/...?page=2>; rel="next", <...>; rel="last"
func parseLinkHeader(header string) string {
	for part := range strings.SplitSeq(header, ",") {
		part = strings.TrimSpace(part)
		if !strings.Contains(part, `rel="next"`) {
			continue
		}

		start := strings.Index(part, "<")
		end := strings.Index(part, ">")
		if start >= 0 && end > start {
			return part[start+1 : end]
		}
	}

	return ""
}

// toRelease converts the wire type to the exported Release type.
func toRelease(gr githubRelease) Release {
	assets := make([]Asset, 0, len(gr.Assets))
	for _, ga := range gr.Assets {
		assets = append(assets, Asset(ga))
	}

	return Release{
		TagName: gr.TagName,
		Name:    gr.Name,
		Assets:  assets,
		HTMLURL: gr.HTMLURL,
	}
}
