// SPDX-License-Identifier: MPL-2.0

package scan

import (
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/lwau/lwau/internal/manifest"
)

// Pattern matches manifest files at any depth.
const Pattern = "**/*" + manifest.Suffix

var errStop = errors.New("scan stopped")

// Manifests lazily yields the slash-separated paths of every manifest file
// in fsys, in traversal order. Unreadable directories are skipped. A pattern
// or walk failure is yielded once as an error and ends the sequence.
func Manifests(fsys fs.FS) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		err := doublestar.GlobWalk(fsys, Pattern, func(p string, d fs.DirEntry) error {
			if d != nil && d.IsDir() {
				return nil
			}
			if !yield(p, nil) {
				return errStop
			}
			return nil
		})
		if err != nil && !errors.Is(err, errStop) {
			yield("", fmt.Errorf("scanning for manifests: %w", err))
		}
	}
}

// FindManifests yields the OS paths of the manifests under rootDir, each
// joined onto rootDir. A missing or non-directory root is yielded as an
// error.
func FindManifests(rootDir string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		info, err := os.Stat(rootDir)
		if err != nil {
			yield("", fmt.Errorf("scanning for manifests: %w", err))
			return
		}
		if !info.IsDir() {
			yield("", fmt.Errorf("scanning for manifests: %s is not a directory", rootDir))
			return
		}
		for p, err := range Manifests(os.DirFS(rootDir)) {
			if err != nil {
				yield("", err)
				return
			}
			if !yield(filepath.Join(rootDir, filepath.FromSlash(p)), nil) {
				return
			}
		}
	}
}
