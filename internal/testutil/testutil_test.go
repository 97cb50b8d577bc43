// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestInstallManifest(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	path := InstallManifest(t, root, "Alpha", LocalManifest("Alpha", "https://example.com/a.version", "1.2"))

	if want := filepath.Join(root, "GameData", "Alpha", "Alpha.version"); path != want {
		t.Errorf("path = %q, want %q", path, want)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var doc map[string]string
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("LocalManifest is not valid JSON: %v", err)
	}
	if doc["NAME"] != "Alpha" || doc["URL"] != "https://example.com/a.version" || doc["VERSION"] != "1.2" {
		t.Errorf("unexpected document %v", doc)
	}
}
