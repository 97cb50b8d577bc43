// SPDX-License-Identifier: MPL-2.0

package mod

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/lwau/lwau/internal/manifest"
	"github.com/lwau/lwau/internal/version"
)

type (
	// RemoteFetcher retrieves the remote manifest named by a local one.
	RemoteFetcher interface {
		Fetch(ctx context.Context, rawURL string) (*manifest.Manifest, error)
	}

	// Resolved holds both halves of a successful check.
	Resolved struct {
		Local  *manifest.Manifest
		Remote *manifest.Manifest
	}

	// Mod is the check unit for one installed manifest. Exactly one of
	// Resolved() and Err() is meaningful.
	Mod struct {
		path     string
		resolved *Resolved
		err      error
	}
)

// Installed is the version recorded in the local manifest.
func (r *Resolved) Installed() version.Version { return r.Local.Version }

// Available is the version advertised by the remote manifest.
func (r *Resolved) Available() version.Version { return r.Remote.Version }

// UpdateAvailable reports whether the remote version sorts strictly after
// the installed one.
func (r *Resolved) UpdateAvailable() bool {
	return r.Installed().Less(r.Available())
}

// Open loads the manifest at path and fetches its remote counterpart.
// Errors are captured on the returned Mod rather than returned.
func Open(ctx context.Context, path string, fetcher RemoteFetcher) *Mod {
	local, err := manifest.Load(path)
	if err != nil {
		return Failed(path, err)
	}

	remote, err := fetcher.Fetch(ctx, local.URL)
	if err != nil {
		return Failed(path, err)
	}

	return &Mod{path: path, resolved: &Resolved{Local: local, Remote: remote}}
}

// Failed builds a Mod in the error state.
func Failed(path string, err error) *Mod {
	return &Mod{path: path, err: err}
}

// Path returns the local manifest path.
func (m *Mod) Path() string { return m.path }

// Err returns the captured error, or nil for a resolved Mod.
func (m *Mod) Err() error { return m.err }

// Resolved returns the loaded manifests and true, or nil and false when
// the Mod carries an error.
func (m *Mod) Resolved() (*Resolved, bool) {
	return m.resolved, m.err == nil
}

// Name is the NAME from the local manifest, falling back to the file name.
func (m *Mod) Name() string {
	if m.resolved != nil && m.resolved.Local.Name != "" {
		return m.resolved.Local.Name
	}
	return filepath.Base(m.path)
}

// CheckUpdate writes a status line to w and reports whether a newer version
// is available. A Mod carrying an error writes an error line and reports
// false.
func (m *Mod) CheckUpdate(w io.Writer) bool {
	r, ok := m.Resolved()
	if !ok {
		fmt.Fprintf(w, "%s: Error\n", m.path)
		return false
	}
	fmt.Fprintf(w, "%-32s Installed: %-12s Available: %s\n",
		m.Name()+":", r.Installed(), r.Available())
	return r.UpdateAvailable()
}
