// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lwau/lwau/internal/manifest"
	"github.com/lwau/lwau/internal/testutil"
)

// modFixture is a game root with a GameData tree whose manifests point at a
// local test server serving the remote manifests and archives.
type modFixture struct {
	root   string
	srv    *httptest.Server
	files  map[string]string // served path -> body
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

func newModFixture(t *testing.T) *modFixture {
	t.Helper()

	f := &modFixture{
		root:   t.TempDir(),
		files:  map[string]string{},
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
	}
	f.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := f.files[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, body)
	}))
	t.Cleanup(f.srv.Close)
	return f
}

// install writes GameData/<name>/<name>.version at version installed and
// serves a remote manifest advertising available. It returns the local path.
func (f *modFixture) install(t *testing.T, name, installed, available string) string {
	t.Helper()

	f.files["/"+name+".version"] = fmt.Sprintf(
		`{"NAME": %q, "VERSION": %q, "DOWNLOAD": "https://forum.example.com/%s"}`,
		name, available, name)

	return f.writeLocal(t, name, testutil.LocalManifest(name, f.srv.URL+"/"+name+".version", installed))
}

func (f *modFixture) writeLocal(t *testing.T, name, content string) string {
	t.Helper()
	return testutil.InstallManifest(t, f.root, name, content)
}

func (f *modFixture) session() session {
	return session{
		stdout:  f.stdout,
		stderr:  f.stderr,
		logger:  newLogger(f.stderr, false),
		fetcher: manifest.NewFetcher(manifest.WithHTTPClient(f.srv.Client())),
		root:    f.root,
	}
}

// wantExit asserts err carries the given exit code.
func wantExit(t *testing.T, err error, code int) {
	t.Helper()

	if got := exitCode(err); got != code {
		t.Fatalf("exit code = %d, want %d (err: %v)", got, code, err)
	}
	if code != ExitOK {
		var exitErr *ExitError
		if !errors.As(err, &exitErr) {
			t.Fatalf("expected *ExitError, got %T", err)
		}
	}
}
