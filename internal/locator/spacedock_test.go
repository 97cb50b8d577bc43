// SPDX-License-Identifier: MPL-2.0

package locator

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lwau/lwau/internal/manifest"
)

func TestSpacedockModID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{in: "https://spacedock.info/mod/1234/Some%20Mod", want: 1234},
		{in: "http://spacedock.info/mod/7", want: 7},
		{in: "https://spacedock.info/mod/", wantErr: true},
		{in: "https://spacedock.info/mod/abc/Name", wantErr: true},
	}

	for _, tt := range tests {
		got, err := SpacedockModID(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("SpacedockModID(%q) = %d, want error", tt.in, got)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("SpacedockModID(%q) = %d, %v; want %d", tt.in, got, err, tt.want)
		}
	}
}

func TestSpacedockClient_GetMod(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/mod/42" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, "\xef\xbb\xbf"+`{"id":42,"name":"Thing","versions":[{"friendly_version":"1.1","download_path":"/mod/42/Thing/download/1.1"}]}`)
	}))
	defer srv.Close()

	client := NewSpacedockClient(WithSpacedockBaseURL(srv.URL))

	m, err := client.GetMod(context.Background(), 42)
	if err != nil {
		t.Fatalf("GetMod: %v", err)
	}
	if m.Name != "Thing" || len(m.Versions) != 1 {
		t.Fatalf("unexpected mod: %+v", m)
	}
	if got, want := client.DownloadURL(m.Versions[0]), srv.URL+"/mod/42/Thing/download/1.1"; got != want {
		t.Errorf("DownloadURL = %q, want %q", got, want)
	}

	_, err = client.GetMod(context.Background(), 9)
	if !errors.Is(err, manifest.ErrNetwork) {
		t.Errorf("expected ErrNetwork for unknown mod, got %v", err)
	}
}

func TestSpacedockClient_DownloadURLAbsolute(t *testing.T) {
	t.Parallel()

	c := NewSpacedockClient()
	v := SpacedockVersion{DownloadPath: "https://cdn.example.com/a.zip"}
	if got := c.DownloadURL(v); got != v.DownloadPath {
		t.Errorf("DownloadURL = %q", got)
	}
	if got := c.DownloadURL(SpacedockVersion{DownloadPath: "/mod/1/A/download/1"}); got != "https://spacedock.info/mod/1/A/download/1" {
		t.Errorf("DownloadURL = %q", got)
	}
}
