// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	_ "embed"
	"errors"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"

	"github.com/lwau/lwau/internal/cueutil"
	"github.com/lwau/lwau/internal/version"
)

const (
	// Suffix is the file extension of AVC manifests.
	Suffix = ".version"

	// MaxSize is the largest manifest accepted, local or remote.
	MaxSize int64 = 256 << 10

	// KindLocal selects the installed-manifest schema (NAME, VERSION, URL required).
	KindLocal Kind = "#Local"
	// KindRemote selects the remote-manifest schema (VERSION required).
	KindRemote Kind = "#Remote"
)

//go:embed manifest_schema.cue
var schema []byte

type (
	// Kind names the schema definition a document is validated against.
	Kind string

	// GitHubRepo identifies the repository whose releases host the archives.
	GitHubRepo struct {
		Username   string `json:"USERNAME"`
		Repository string `json:"REPOSITORY"`
	}

	// Manifest is a decoded .version document.
	Manifest struct {
		Name    string          `json:"NAME"`
		Version version.Version `json:"VERSION"`
		// URL is where the authoritative copy of this manifest lives.
		URL string `json:"URL"`
		// GitHub and Download are only meaningful on remote manifests.
		GitHub   *GitHubRepo `json:"GITHUB,omitempty"`
		Download string      `json:"DOWNLOAD,omitempty"`
	}
)

// Load reads and decodes the installed manifest at path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	return Decode(data, path, KindLocal)
}

// Decode validates data against the schema for kind and decodes it.
// source is used in error messages. A leading UTF-8 byte order mark is
// skipped; other invalid encodings are rejected.
func Decode(data []byte, source string, kind Kind) (*Manifest, error) {
	if !utf8.Valid(data) {
		return nil, &ParseError{Source: source, Err: errors.New("invalid UTF-8")}
	}
	text, err := unicode.UTF8BOM.NewDecoder().Bytes(data)
	if err != nil {
		return nil, &ParseError{Source: source, Err: err}
	}

	m, err := cueutil.ParseAndDecode[Manifest](schema, text, string(kind),
		cueutil.WithFilename(filepath.Base(source)),
		cueutil.WithMaxFileSize(MaxSize))
	if err != nil {
		return nil, &ParseError{Source: source, Err: err}
	}
	return m, nil
}

// RawURL rewrites a github.com or www.github.com page URL into the
// raw.githubusercontent.com URL serving the file itself, the same way AVC
// clients do. Any other URL is returned unchanged.
//
//	https://github.com/u/r/blob/master/X.version -> https://raw.githubusercontent.com/u/r/master/X.version
func RawURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || strings.TrimPrefix(strings.ToLower(u.Host), "www.") != "github.com" {
		return raw
	}
	u.Host = "raw.githubusercontent.com"
	u.Path = strings.Replace(u.Path, "/tree/", "/", 1)
	u.Path = strings.Replace(u.Path, "/blob/", "/", 1)
	u.RawPath = ""
	return u.String()
}
