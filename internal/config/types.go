// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/autocc/autocc/internal/logging"
	"github.com/autocc/autocc/internal/toolchain"
)

var (
	// ErrInvalidSearchPath is the sentinel error wrapped by InvalidSearchPathError.
	ErrInvalidSearchPath = errors.New("invalid search path")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// Config holds the application configuration.
	Config struct {
		// Toolchain controls filesystem probing order.
		Toolchain ToolchainConfig `json:"toolchain" mapstructure:"toolchain"`
		// SearchPaths are probed before PATH.
		SearchPaths []string `json:"search_paths" mapstructure:"search_paths"`
		// Overrides force a compiler per tool, below the AUTOCC_* variables.
		Overrides OverridesConfig `json:"overrides" mapstructure:"overrides"`
		// Log configures diagnostics on stderr.
		Log LogConfig `json:"log" mapstructure:"log"`
	}

	// ToolchainConfig configures candidate ordering.
	ToolchainConfig struct {
		Preferred toolchain.Preference `json:"preferred" mapstructure:"preferred"`
	}

	// OverridesConfig names a compiler per tool. Empty means unset.
	OverridesConfig struct {
		CC  string `json:"cc,omitempty" mapstructure:"cc"`
		CPP string `json:"cpp,omitempty" mapstructure:"cpp"`
		CXX string `json:"cxx,omitempty" mapstructure:"cxx"`
	}

	// LogConfig configures logging.
	LogConfig struct {
		Level logging.Level `json:"level" mapstructure:"level"`
	}

	// InvalidSearchPathError is returned when a search path is not absolute.
	InvalidSearchPathError struct {
		Value string
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility.
	InvalidConfigError struct {
		FieldErrors []error
	}
)

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Toolchain:   ToolchainConfig{Preferred: toolchain.PreferAuto},
		SearchPaths: []string{},
		Log:         LogConfig{Level: logging.DefaultLevel},
	}
}

// OverrideMap returns the configured overrides keyed by tool.
func (c OverridesConfig) OverrideMap() map[toolchain.Tool]string {
	m := make(map[toolchain.Tool]string, 3)
	for tool, value := range map[toolchain.Tool]string{
		toolchain.ToolCC:  c.CC,
		toolchain.ToolCPP: c.CPP,
		toolchain.ToolCXX: c.CXX,
	} {
		if value != "" {
			m[tool] = value
		}
	}
	return m
}

// ResolverOptions converts the configuration into resolver options.
func (c *Config) ResolverOptions() toolchain.Options {
	return toolchain.Options{
		Preference:  c.Toolchain.Preferred,
		SearchPaths: slices.Clone(c.SearchPaths),
		Overrides:   c.Overrides.OverrideMap(),
	}
}

// IsValid returns whether the Config is valid, and a list of validation
// errors if it is not.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if ok, fieldErrs := c.Toolchain.Preferred.IsValid(); !ok {
		errs = append(errs, fieldErrs...)
	}
	for _, dir := range c.SearchPaths {
		if !filepath.IsAbs(dir) {
			errs = append(errs, &InvalidSearchPathError{Value: dir})
		}
	}
	if ok, fieldErrs := c.Log.Level.IsValid(); !ok {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidSearchPathError.
func (e *InvalidSearchPathError) Error() string {
	return fmt.Sprintf("search path %q is not absolute", e.Value)
}

// Unwrap returns ErrInvalidSearchPath for errors.Is() compatibility.
func (e *InvalidSearchPathError) Unwrap() error { return ErrInvalidSearchPath }

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	msgs := make([]string, 0, len(e.FieldErrors))
	for _, err := range e.FieldErrors {
		msgs = append(msgs, err.Error())
	}
	return "invalid config: " + strings.Join(msgs, "; ")
}

// Unwrap returns ErrInvalidConfig and every field error.
func (e *InvalidConfigError) Unwrap() []error {
	return append([]error{ErrInvalidConfig}, e.FieldErrors...)
}
