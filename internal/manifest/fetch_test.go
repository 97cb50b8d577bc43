// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		switch r.URL.Path {
		case "/ok.version":
			fmt.Fprint(w, "\xef\xbb\xbf"+`{"NAME":"Mod","VERSION":{"MAJOR":1,"MINOR":3,"PATCH":0}}`)
		case "/huge.version":
			fmt.Fprint(w, `{"VERSION": "1.0", "CHANGE_LOG": "`+strings.Repeat("x", int(MaxSize))+`"}`)
		case "/broken.version":
			fmt.Fprint(w, `<html>not json</html>`)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)

	f := NewFetcher(WithUserAgent("lwau/test"))

	t.Run("BOM-prefixed remote manifest", func(t *testing.T) {
		m, err := f.Fetch(context.Background(), srv.URL+"/ok.version")
		if err != nil {
			t.Fatalf("Fetch: %v", err)
		}
		if m.Version.String() != "1.3.0" {
			t.Errorf("Version = %s", m.Version)
		}
		if gotUA != "lwau/test" {
			t.Errorf("User-Agent = %q", gotUA)
		}
	})

	t.Run("not found", func(t *testing.T) {
		_, err := f.Fetch(context.Background(), srv.URL+"/missing.version")
		var ne *NetworkError
		if !errors.As(err, &ne) {
			t.Fatalf("expected *NetworkError, got %v", err)
		}
		if ne.StatusCode != http.StatusNotFound {
			t.Errorf("StatusCode = %d", ne.StatusCode)
		}
	})

	t.Run("oversized body", func(t *testing.T) {
		_, err := f.Fetch(context.Background(), srv.URL+"/huge.version")
		if !errors.Is(err, ErrParse) || !strings.Contains(err.Error(), "exceeds maximum") {
			t.Fatalf("expected size ParseError, got %v", err)
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		_, err := f.Fetch(context.Background(), srv.URL+"/broken.version")
		if !errors.Is(err, ErrParse) {
			t.Fatalf("expected ErrParse, got %v", err)
		}
	})
}

func TestFetcher_TransportFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	target := srv.URL + "/gone.version"
	srv.Close()

	_, err := NewFetcher().Fetch(context.Background(), target)
	if !errors.Is(err, ErrNetwork) {
		t.Fatalf("expected ErrNetwork, got %v", err)
	}
}
