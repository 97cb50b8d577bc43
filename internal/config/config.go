// SPDX-License-Identifier: MPL-2.0

package config

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/lwau/lwau/internal/issue"
)

const (
	// AppName is the application name.
	AppName = "lwau"
	// EnvPrefix prefixes environment overrides (LWAU_DOWNLOAD_DIR).
	EnvPrefix = "LWAU"
	// PluginDataDir holds the settings file, relative to the game root.
	PluginDataDir = "PluginData"
	// GameDataDir holds installed mods, relative to the game root.
	GameDataDir = "GameData"
	// SettingsFileName is the name of the settings file.
	SettingsFileName = AppName + ".json"
	// DownloadToFlag is the CLI flag bound to the download directory.
	DownloadToFlag = "download-to"

	keyDownloadDir = "download_dir"
	keyHTTPTimeout = "http_timeout"
)

// SettingsPath returns the settings file location for a game root.
func SettingsPath(root string) string {
	return filepath.Join(root, PluginDataDir, SettingsFileName)
}

// Load reads settings for opts.Root.
//
// The returned settings are always usable. A missing file is not an error and
// yields defaults. A file that exists but cannot be read or decoded yields
// defaults together with a non-nil error, which callers should report as a
// warning. Environment and flag overrides apply in both cases unless
// opts.FileOnly is set.
func Load(ctx context.Context, opts LoadOptions) (*Settings, error) {
	s, _, err := loadWithOptions(ctx, opts)
	return s, err
}

// loadWithOptions also reports the settings file path it consulted.
func loadWithOptions(ctx context.Context, opts LoadOptions) (*Settings, string, error) {
	defaults := DefaultSettings()
	defaults.Root = opts.Root

	select {
	case <-ctx.Done():
		return defaults, "", fmt.Errorf("load settings canceled: %w", ctx.Err())
	default:
	}

	path := opts.SettingsFilePath
	if path == "" {
		path = SettingsPath(opts.Root)
	}

	v := viper.New()
	v.SetConfigType("json")
	v.SetDefault(keyDownloadDir, defaults.DownloadDir)
	v.SetDefault(keyHTTPTimeout, defaults.HTTPTimeout)
	if !opts.FileOnly {
		v.SetEnvPrefix(EnvPrefix)
		v.AutomaticEnv()
	}

	if opts.Flags != nil && !opts.FileOnly {
		if flag := opts.Flags.Lookup(DownloadToFlag); flag != nil {
			if err := v.BindPFlag(keyDownloadDir, flag); err != nil {
				return defaults, path, fmt.Errorf("failed to bind --%s: %w", DownloadToFlag, err)
			}
		}
	}

	recipes, loadErr := readSettingsFile(v, path)
	if recipes != nil {
		defaults.Recipes = recipes
	}

	defaults.DownloadDir = v.GetString(keyDownloadDir)
	defaults.HTTPTimeout = v.GetDuration(keyHTTPTimeout)

	return defaults, path, loadErr
}

// readSettingsFile feeds the scalar settings into v and decodes the recipe
// table separately, since viper folds key case and splits keys on dots.
func readSettingsFile(v *viper.Viper, path string) (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("read settings").
			WithResource(path).
			WithSuggestion("Check that the file is readable").
			Wrap(err).
			BuildError()
	}

	var file struct {
		Recipes map[string]json.RawMessage `json:"recipes"`
	}
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("parse settings").
			WithResource(path).
			WithSuggestion("Check that the file contains valid JSON").
			WithSuggestion(fmt.Sprintf("Run '%s download-to <dir>' to rewrite it", AppName)).
			Wrap(err).
			BuildError()
	}

	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("failed to parse settings %s: %w", path, err)
	}

	return file.Recipes, nil
}

// Save writes settings to path, creating the parent directory if needed.
// Recipe keys are written back exactly as loaded.
func Save(s *Settings, path string) error {
	data, err := json.MarshalIndent(s.toFile(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return saveError(path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return saveError(path, err)
	}
	return nil
}

func saveError(path string, err error) error {
	return issue.NewErrorContext().
		WithOperation("save settings").
		WithResource(path).
		WithSuggestion(fmt.Sprintf("Check that the %s directory is writable", PluginDataDir)).
		WithSuggestion("Run lwau from the game root or pass --root").
		Wrap(err).
		BuildError()
}
