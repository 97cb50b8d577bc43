// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"

	"github.com/spf13/pflag"
)

// LoadOptions defines explicit settings loading inputs.
type LoadOptions struct {
	// Root is the game root. Settings are read from <Root>/PluginData/lwau.json.
	Root string
	// SettingsFilePath forces loading from a specific file when set.
	SettingsFilePath string
	// Flags, when set, supplies a "download-to" flag that overrides the file.
	Flags *pflag.FlagSet
	// FileOnly ignores environment and flag overrides, yielding exactly what
	// the settings file holds. Use it when the result is written back.
	FileOnly bool
}

// Provider loads settings from explicit options. Commands receive one so
// tests can substitute fixed settings.
type Provider interface {
	Load(ctx context.Context, opts LoadOptions) (*Settings, error)
}

type fileProvider struct{}

// NewProvider creates a settings provider backed by the settings file.
func NewProvider() Provider {
	return &fileProvider{}
}

// Load reads settings from the requested source. See Load for the error contract.
func (p *fileProvider) Load(ctx context.Context, opts LoadOptions) (*Settings, error) {
	return Load(ctx, opts)
}
