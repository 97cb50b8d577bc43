// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// MustMkdirAll creates a directory along with any necessary parents.
// The test fails immediately if the operation fails.
func MustMkdirAll(t testing.TB, path string) {
	t.Helper()
	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatalf("failed to create directory %s: %v", path, err)
	}
}

// MustWriteFile writes content to path, creating parent directories first.
// The test fails immediately if the operation fails.
func MustWriteFile(t testing.TB, path, content string) string {
	t.Helper()
	MustMkdirAll(t, filepath.Dir(path))
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

// LocalManifest renders an installed .version document. version is written
// as a dotted string.
func LocalManifest(name, url, version string) string {
	return fmt.Sprintf(`{"NAME": %q, "URL": %q, "VERSION": %q}`, name, url, version)
}

// InstallManifest writes <root>/GameData/<name>/<name>.version with content
// and returns its path.
func InstallManifest(t testing.TB, root, name, content string) string {
	t.Helper()
	return MustWriteFile(t, filepath.Join(root, "GameData", name, name+".version"), content)
}
