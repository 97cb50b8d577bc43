// SPDX-License-Identifier: MPL-2.0

package cueutil

// DefaultMaxFileSize caps documents at 1MB. A version manifest is a few
// hundred bytes, so anything near the cap is not one.
const DefaultMaxFileSize int64 = 1 << 20

type (
	// Option tunes a single ParseAndDecode call.
	Option func(*decodeConfig)

	decodeConfig struct {
		limit int64
		name  string
	}
)

func newDecodeConfig(opts []Option) decodeConfig {
	cfg := decodeConfig{limit: DefaultMaxFileSize, name: "<input>"}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithMaxFileSize overrides DefaultMaxFileSize.
func WithMaxFileSize(size int64) Option {
	return func(c *decodeConfig) { c.limit = size }
}

// WithFilename names the document in CUE positions and error messages.
// Empty names are ignored.
func WithFilename(name string) Option {
	return func(c *decodeConfig) {
		if name != "" {
			c.name = name
		}
	}
}
