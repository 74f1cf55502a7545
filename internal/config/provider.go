// SPDX-License-Identifier: MPL-2.0

package config

import "context"

// LoadOptions defines explicit configuration loading inputs.
type LoadOptions struct {
	// ConfigFilePath forces loading from a specific config file when set.
	ConfigFilePath string
	// ConfigDirPath overrides the user config directory lookup when set.
	ConfigDirPath string
	// SystemDirPath overrides the system config directory when set.
	SystemDirPath string
}

// Provider loads configuration from explicit options.
type Provider interface {
	// Load returns the merged configuration and the files it was read
	// from, lowest precedence first.
	Load(ctx context.Context, opts LoadOptions) (*Config, []string, error)
}

type fileProvider struct{}

// NewProvider creates a configuration provider.
func NewProvider() Provider {
	return &fileProvider{}
}

// Load reads configuration from the requested sources.
func (p *fileProvider) Load(ctx context.Context, opts LoadOptions) (*Config, []string, error) {
	return loadWithOptions(ctx, opts)
}
