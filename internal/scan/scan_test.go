// SPDX-License-Identifier: MPL-2.0

package scan

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/spf13/afero"
)

func memFS(t *testing.T, files ...string) afero.Fs {
	t.Helper()
	mem := afero.NewMemMapFs()
	for _, f := range files {
		if err := mem.MkdirAll(filepath.Dir(f), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := afero.WriteFile(mem, f, []byte("{}"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return mem
}

func collect(t *testing.T, seq func(func(string, error) bool)) []string {
	t.Helper()
	var got []string
	for p, err := range seq {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got = append(got, p)
	}
	return got
}

func TestManifests(t *testing.T) {
	t.Parallel()

	mem := memFS(t,
		"Top.version",
		"A/A.version",
		"B/Deep/Plugins/B.version",
		"A/readme.txt",
		"C/C.version.bak",
	)

	got := collect(t, Manifests(afero.NewIOFS(mem)))
	want := []string{"Top.version", "A/A.version", "B/Deep/Plugins/B.version"}
	if diff := cmp.Diff(want, got, cmpopts.SortSlices(func(a, b string) bool { return a < b })); diff != "" {
		t.Errorf("Manifests mismatch (-want +got):\n%s", diff)
	}
}

func TestManifests_SkipsDirectoriesWithSuffix(t *testing.T) {
	t.Parallel()

	mem := memFS(t, "Odd.version/inner.version")

	got := collect(t, Manifests(afero.NewIOFS(mem)))
	if !slices.Equal(got, []string{"Odd.version/inner.version"}) {
		t.Errorf("got %v", got)
	}
}

func TestManifests_StopsEarly(t *testing.T) {
	t.Parallel()

	mem := memFS(t, "A/a.version", "B/b.version", "C/c.version")

	n := 0
	for _, err := range Manifests(afero.NewIOFS(mem)) {
		if err != nil {
			t.Fatal(err)
		}
		n++
		if n == 1 {
			break
		}
	}
	if n != 1 {
		t.Errorf("iterated %d times after break", n)
	}
}

func TestFindManifests(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	for _, f := range []string{"X/x.version", "Y/y.version", "Y/Z/z.version", "Y/notes.md", "w.cfg"} {
		p := filepath.Join(root, filepath.FromSlash(f))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}

	got := collect(t, FindManifests(root))
	want := []string{
		filepath.Join(root, "X", "x.version"),
		filepath.Join(root, "Y", "y.version"),
		filepath.Join(root, "Y", "Z", "z.version"),
	}
	if diff := cmp.Diff(want, got, cmpopts.SortSlices(func(a, b string) bool { return a < b })); diff != "" {
		t.Errorf("FindManifests mismatch (-want +got):\n%s", diff)
	}
}

func TestFindManifests_MissingRoot(t *testing.T) {
	t.Parallel()

	var errs int
	for _, err := range FindManifests(filepath.Join(t.TempDir(), "GameData")) {
		if err != nil {
			errs++
		}
	}
	if errs != 1 {
		t.Errorf("expected exactly one error, got %d", errs)
	}
}
