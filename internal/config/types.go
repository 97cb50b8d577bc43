// SPDX-License-Identifier: MPL-2.0

package config

import (
	"encoding/json"
	"path/filepath"
	"time"
)

type (
	// Settings is the persisted lwau configuration.
	Settings struct {
		// DownloadDir is where update archives are written. Empty means unset.
		DownloadDir string
		// HTTPTimeout bounds each HTTP request. Zero disables the timeout.
		HTTPTimeout time.Duration
		// Recipes maps manifest paths to opaque recipe data. Manifests listed
		// here are never downloaded.
		Recipes map[string]json.RawMessage
		// Root is the game root the settings were loaded for. Relative recipe
		// keys are resolved against it.
		Root string
	}

	// settingsFile is the on-disk JSON shape.
	settingsFile struct {
		DownloadDir string                     `json:"download_dir,omitempty"`
		HTTPTimeout string                     `json:"http_timeout,omitempty"`
		Recipes     map[string]json.RawMessage `json:"recipes"`
	}
)

// DefaultSettings returns settings with no download directory and no recipes.
func DefaultSettings() *Settings {
	return &Settings{
		Recipes: map[string]json.RawMessage{},
	}
}

// IsRecipe reports whether the manifest at manifestPath is handled by a
// recipe. Keys match either verbatim or after cleaning, and relative keys are
// also tried against Root.
func (s *Settings) IsRecipe(manifestPath string) bool {
	if s == nil || len(s.Recipes) == 0 {
		return false
	}
	if _, ok := s.Recipes[manifestPath]; ok {
		return true
	}

	want := filepath.Clean(manifestPath)
	for key := range s.Recipes {
		key = filepath.FromSlash(key)
		if filepath.Clean(key) == want {
			return true
		}
		if s.Root != "" && !filepath.IsAbs(key) && filepath.Join(s.Root, key) == want {
			return true
		}
	}
	return false
}

func (s *Settings) toFile() settingsFile {
	f := settingsFile{
		DownloadDir: s.DownloadDir,
		Recipes:     s.Recipes,
	}
	if f.Recipes == nil {
		f.Recipes = map[string]json.RawMessage{}
	}
	if s.HTTPTimeout > 0 {
		f.HTTPTimeout = s.HTTPTimeout.String()
	}
	return f
}
