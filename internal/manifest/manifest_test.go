// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/lwau/lwau/internal/testutil"
	"github.com/lwau/lwau/internal/version"
)

const localDoc = `{
	"NAME": "Kerbal Engineer",
	"URL": "https://example.com/KER.version",
	"VERSION": {"MAJOR": 1, "MINOR": 2, "PATCH": 0},
	"KSP_VERSION": {"MAJOR": 1, "MINOR": 12}
}`

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	return testutil.MustWriteFile(t, filepath.Join(t.TempDir(), "Mod"+Suffix), content)
}

func TestLoad(t *testing.T) {
	t.Parallel()

	m, err := Load(writeManifest(t, localDoc))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if m.Name != "Kerbal Engineer" {
		t.Errorf("Name = %q", m.Name)
	}
	if !m.Version.Equal(version.MustNew(1, 2, 0)) {
		t.Errorf("Version = %#v", m.Version)
	}
	if m.GitHub != nil || m.Download != "" {
		t.Errorf("local manifest should carry no hosting metadata: %+v", m)
	}
}

func TestLoad_ByteOrderMark(t *testing.T) {
	t.Parallel()

	m, err := Load(writeManifest(t, "\xef\xbb\xbf"+localDoc))
	if err != nil {
		t.Fatalf("Load with BOM: %v", err)
	}
	if m.Version.String() != "1.2.0" {
		t.Errorf("Version = %s", m.Version)
	}
}

func TestLoad_StringVersion(t *testing.T) {
	t.Parallel()

	m, err := Load(writeManifest(t, `{"NAME":"A","URL":"http://x/a.version","VERSION":"2.0"}`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !m.Version.Equal(version.MustNew(2, 0)) {
		t.Errorf("Version = %#v", m.Version)
	}
}

func TestLoad_NullComponentIsUnset(t *testing.T) {
	t.Parallel()

	m, err := Load(writeManifest(t, `{"NAME":"A","URL":"http://x/a.version",
		"VERSION":{"MAJOR":1,"MINOR":2,"PATCH":null,"BUILD":null}}`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !m.Version.Equal(version.MustNew(1, 2)) {
		t.Errorf("Version = %#v, want 1.2 with PATCH and BUILD unset", m.Version)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "absent.version"))
	var le *LoadError
	if !errors.As(err, &le) {
		t.Fatalf("expected *LoadError, got %v", err)
	}
	if !errors.Is(err, ErrLoad) || !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error chain should match ErrLoad and os.ErrNotExist: %v", err)
	}
}

func TestLoad_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{"malformed JSON", `{"NAME": "A", `},
		{"missing URL", `{"NAME":"A","VERSION":{"MAJOR":1}}`},
		{"missing NAME", `{"URL":"http://x/a.version","VERSION":{"MAJOR":1}}`},
		{"missing VERSION", `{"NAME":"A","URL":"http://x/a.version"}`},
		{"negative component", `{"NAME":"A","URL":"http://x/a.version","VERSION":{"MAJOR":-1}}`},
		{"non-integer component", `{"NAME":"A","URL":"http://x/a.version","VERSION":{"MAJOR":"one"}}`},
		{"bad version string", `{"NAME":"A","URL":"http://x/a.version","VERSION":"1.x"}`},
		{"relative URL", `{"NAME":"A","URL":"a.version","VERSION":{"MAJOR":1}}`},
		{"invalid UTF-8", "{\"NAME\":\"\xff\",\"URL\":\"http://x/a.version\",\"VERSION\":\"1\"}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Load(writeManifest(t, tt.content))
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("expected *ParseError, got %v", err)
			}
			if !errors.Is(err, ErrParse) {
				t.Errorf("error should match ErrParse: %v", err)
			}
		})
	}
}

func TestDecode_Remote(t *testing.T) {
	t.Parallel()

	doc := `{
		"VERSION": {"MAJOR": 2, "MINOR": 1, "PATCH": 0},
		"GITHUB": {"USERNAME": "u", "REPOSITORY": "r", "ALLOW_PRE_RELEASE": false},
		"DOWNLOAD": "https://spacedock.info/mod/42/Thing"
	}`
	got, err := Decode([]byte(doc), "remote", KindRemote)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	want := &Manifest{
		Version:  version.MustNew(2, 1, 0),
		GitHub:   &GitHubRepo{Username: "u", Repository: "r"},
		Download: "https://spacedock.info/mod/42/Thing",
	}
	if diff := cmp.Diff(want, got, cmp.Comparer(version.Version.Equal)); diff != "" {
		t.Errorf("Decode mismatch (-want +got):\n%s", diff)
	}

	if _, err := Decode([]byte(doc), "remote", KindLocal); err == nil {
		t.Error("remote document without NAME/URL must fail the local schema")
	}
}

func TestDecode_GitHubNeedsBothFields(t *testing.T) {
	t.Parallel()

	_, err := Decode([]byte(`{"VERSION":"1","GITHUB":{"USERNAME":"u"}}`), "remote", KindRemote)
	if !errors.Is(err, ErrParse) {
		t.Fatalf("expected ErrParse, got %v", err)
	}
}

func TestRawURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want string
	}{
		{
			"https://github.com/u/r/blob/master/GameData/R/R.version",
			"https://raw.githubusercontent.com/u/r/master/GameData/R/R.version",
		},
		{
			"https://github.com/u/r/tree/main/R.version",
			"https://raw.githubusercontent.com/u/r/main/R.version",
		},
		{
			"https://www.github.com/u/r/blob/master/R.version",
			"https://raw.githubusercontent.com/u/r/master/R.version",
		},
		{
			"https://WWW.GitHub.com/u/r/blob/master/R.version",
			"https://raw.githubusercontent.com/u/r/master/R.version",
		},
		{
			"https://raw.githubusercontent.com/u/r/master/R.version",
			"https://raw.githubusercontent.com/u/r/master/R.version",
		},
		{
			"http://ksp-avc.cybutek.net/version.php?id=1",
			"http://ksp-avc.cybutek.net/version.php?id=1",
		},
	}

	for _, tt := range tests {
		if got := RawURL(tt.in); got != tt.want {
			t.Errorf("RawURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
