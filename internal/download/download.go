// SPDX-License-Identifier: MPL-2.0

package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/lwau/lwau/internal/manifest"
)

// ErrArchiveExists is returned when the destination file is already present.
// Existing archives are never overwritten.
var ErrArchiveExists = errors.New("archive already exists")

type (
	// Downloader fetches archives over HTTP.
	Downloader struct {
		httpClient *http.Client
		userAgent  string
	}

	// Option configures a Downloader during construction.
	Option func(*Downloader)
)

// WithHTTPClient sets the HTTP client used for downloads.
func WithHTTPClient(c *http.Client) Option {
	return func(d *Downloader) {
		d.httpClient = c
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(d *Downloader) {
		d.userAgent = ua
	}
}

// New creates a Downloader using http.DefaultClient.
func New(opts ...Option) *Downloader {
	d := &Downloader{
		httpClient: http.DefaultClient,
		userAgent:  "lwau/dev",
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Download saves the archive at archiveURL into dir and returns the path of
// the new file. The file name comes from the Content-Disposition header when
// present, otherwise from the last path segment of the final (post-redirect)
// URL. A partially written file is removed on failure.
func (d *Downloader) Download(ctx context.Context, archiveURL, dir string) (_ string, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, archiveURL, http.NoBody)
	if err != nil {
		return "", &manifest.NetworkError{URL: archiveURL, Err: fmt.Errorf("creating request: %w", err)}
	}
	req.Header.Set("User-Agent", d.userAgent)

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return "", &manifest.NetworkError{URL: archiveURL, Err: err}
	}
	defer func() { _ = resp.Body.Close() }() // read-only response body

	if resp.StatusCode != http.StatusOK {
		return "", &manifest.NetworkError{URL: archiveURL, StatusCode: resp.StatusCode}
	}

	name := fileName(resp)
	if name == "" {
		return "", fmt.Errorf("cannot determine a file name for %s", archiveURL)
	}
	dest := filepath.Join(dir, name)

	f, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return "", fmt.Errorf("%s: %w", dest, ErrArchiveExists)
		}
		return "", fmt.Errorf("creating archive file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
		if err != nil {
			// Best-effort removal of the partial archive.
			_ = os.Remove(dest)
		}
	}()

	if _, err := io.Copy(f, resp.Body); err != nil {
		return "", &manifest.NetworkError{URL: archiveURL, Err: fmt.Errorf("writing %s: %w", dest, err)}
	}

	return dest, nil
}

// fileName picks a safe base name for the archive.
func fileName(resp *http.Response) string {
	if cd := resp.Header.Get("Content-Disposition"); cd != "" {
		if name := dispositionName(cd); name != "" {
			return name
		}
	}
	if resp.Request != nil && resp.Request.URL != nil {
		return cleanName(path.Base(resp.Request.URL.Path))
	}
	return ""
}

// dispositionName extracts filename= from a Content-Disposition value. Values
// that mime cannot parse fall back to the raw token after "filename=".
func dispositionName(cd string) string {
	if _, params, err := mime.ParseMediaType(cd); err == nil {
		return cleanName(params["filename"])
	}
	_, after, ok := strings.Cut(cd, "filename=")
	if !ok {
		return ""
	}
	if fields := strings.Fields(after); len(fields) > 0 {
		return cleanName(strings.Trim(strings.TrimSuffix(fields[0], ";"), `"`))
	}
	return ""
}

// cleanName strips any directory components so a server cannot write
// outside the download directory.
func cleanName(name string) string {
	name = filepath.Base(filepath.FromSlash(strings.ReplaceAll(name, `\`, "/")))
	switch name {
	case ".", "..", "/", string(filepath.Separator):
		return ""
	}
	return name
}
