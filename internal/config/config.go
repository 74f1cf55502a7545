// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/autocc/autocc/internal/issue"
	"github.com/autocc/autocc/internal/platform"

	"github.com/spf13/viper"
)

const (
	// AppName is the application name.
	AppName = "autocc"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the primary config file extension.
	ConfigFileExt = "cue"
	// TOMLFileExt is the alternative config file extension.
	TOMLFileExt = "toml"

	// EnvConfigFile names an explicit config file, like --config.
	EnvConfigFile = "AUTOCC_CONFIG"
	// EnvToolchain overrides toolchain.preferred.
	EnvToolchain = "AUTOCC_TOOLCHAIN"
	// EnvLogLevel overrides log.level.
	EnvLogLevel = "AUTOCC_LOG_LEVEL"
)

// ErrConfigExists is returned by CreateDefaultConfig when a config file is
// already present and overwriting was not requested.
var ErrConfigExists = errors.New("config file already exists")

//go:embed config_schema.cue
var configSchema string

// ConfigDir returns the autocc configuration directory using platform-specific
// conventions: Windows uses %APPDATA%, macOS uses ~/Library/Application Support,
// and Linux/others use $XDG_CONFIG_HOME (defaulting to ~/.config).
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	if configDirOverride != "" {
		return configDirOverride, nil
	}

	var configDir string

	switch runtime.GOOS {
	case platform.Windows:
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case platform.Darwin:
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default: // Linux and others
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

// SystemConfigDir returns the machine-wide configuration directory:
// /etc/autocc, or %ProgramData%\autocc on Windows.
func SystemConfigDir() string {
	if systemDirOverride != "" {
		return systemDirOverride
	}
	if runtime.GOOS == platform.Windows {
		programData := os.Getenv("ProgramData")
		if programData == "" {
			programData = `C:\ProgramData`
		}
		return filepath.Join(programData, AppName)
	}
	return filepath.Join("/etc", AppName)
}

// loadWithOptions performs option-driven config loading. It returns the
// config and the files that were read, lowest precedence first.
func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, []string, error) {
	select {
	case <-ctx.Done():
		return nil, nil, fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("toolchain.preferred", string(defaults.Toolchain.Preferred))
	v.SetDefault("search_paths", defaults.SearchPaths)
	v.SetDefault("log.level", string(defaults.Log.Level))

	var loaded []string

	// An explicit config file is used exclusively.
	if opts.ConfigFilePath != "" {
		if !fileExists(opts.ConfigFilePath) {
			return nil, nil, issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(opts.ConfigFilePath).
				WithIssue(issue.ConfigLoadFailedId).
				WithSuggestion("Verify the file path is correct").
				WithSuggestion("Unset " + EnvConfigFile + " or drop --config to use the default locations").
				Wrap(fmt.Errorf("config file not found: %s", opts.ConfigFilePath)).
				BuildError()
		}
		if err := loadFileIntoViper(v, opts.ConfigFilePath); err != nil {
			return nil, nil, loadFailed(opts.ConfigFilePath, err)
		}
		loaded = append(loaded, opts.ConfigFilePath)
	} else {
		dirs, err := searchDirs(opts)
		if err != nil {
			return nil, nil, err
		}
		for _, dir := range dirs {
			path, ok := findConfigFile(dir)
			if !ok {
				continue
			}
			if err := loadFileIntoViper(v, path); err != nil {
				return nil, nil, loadFailed(path, err)
			}
			loaded = append(loaded, path)
		}
	}

	if err := v.BindEnv("toolchain.preferred", EnvToolchain); err != nil {
		return nil, nil, fmt.Errorf("failed to bind %s: %w", EnvToolchain, err)
	}
	if err := v.BindEnv("log.level", EnvLogLevel); err != nil {
		return nil, nil, fmt.Errorf("failed to bind %s: %w", EnvLogLevel, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if ok, errs := cfg.IsValid(); !ok {
		return nil, nil, issue.NewErrorContext().
			WithOperation("validate configuration").
			WithIssue(issue.ConfigLoadFailedId).
			WithSuggestion("toolchain.preferred and " + EnvToolchain + " accept auto, llvm or gnu").
			WithSuggestion("search_paths entries must be absolute directories").
			Wrap(errors.Join(errs...)).
			BuildError()
	}

	slog.Debug("configuration loaded", "files", loaded)
	return &cfg, loaded, nil
}

// searchDirs returns the directories scanned for config files, system first.
func searchDirs(opts LoadOptions) ([]string, error) {
	systemDir := opts.SystemDirPath
	if systemDir == "" {
		systemDir = SystemConfigDir()
	}
	userDir, err := configDirWithOverride(opts.ConfigDirPath)
	if err != nil {
		return nil, err
	}
	if filepath.Clean(systemDir) == filepath.Clean(userDir) {
		return []string{userDir}, nil
	}
	return []string{systemDir, userDir}, nil
}

// configDirWithOverride resolves the configuration directory, honoring
// explicit provider options before platform defaults.
func configDirWithOverride(configDirPath string) (string, error) {
	if configDirPath != "" {
		return configDirPath, nil
	}

	return ConfigDir()
}

// findConfigFile returns config.cue in dir, or config.toml when there is
// no CUE file.
func findConfigFile(dir string) (string, bool) {
	for _, ext := range []string{ConfigFileExt, TOMLFileExt} {
		path := filepath.Join(dir, ConfigFileName+"."+ext)
		if fileExists(path) {
			return path, true
		}
	}
	return "", false
}

func loadFailed(path string, err error) error {
	return issue.NewErrorContext().
		WithOperation("load configuration").
		WithResource(path).
		WithIssue(issue.ConfigLoadFailedId).
		WithSuggestion("Check that the file contains valid " + strings.ToUpper(strings.TrimPrefix(filepath.Ext(path), ".")) + " syntax").
		WithSuggestion("Verify the configuration values match the expected schema").
		WithSuggestion("See 'autocc config --help' for configuration options").
		Wrap(err).
		BuildError()
}

// fileExists checks if a file exists and is not a directory
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}

// ConfigFilePath returns the path of the user CUE config file.
func ConfigFilePath() (string, error) {
	cfgDir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt), nil
}

// CreateDefaultConfig writes the default configuration to the user config
// file and returns its path. An existing file is left untouched and
// ErrConfigExists returned unless force is set.
func CreateDefaultConfig(force bool) (string, error) {
	cfgPath, err := ConfigFilePath()
	if err != nil {
		return "", err
	}

	if !force && fileExists(cfgPath) {
		return cfgPath, fmt.Errorf("%w: %s", ErrConfigExists, cfgPath)
	}

	if err := os.MkdirAll(filepath.Dir(cfgPath), 0o755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(cfgPath, []byte(GenerateCUE(DefaultConfig())), 0o644); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}

	return cfgPath, nil
}

// GenerateCUE generates a CUE representation of the configuration
func GenerateCUE(cfg *Config) string {
	var sb strings.Builder

	sb.WriteString("// autocc configuration file\n")
	sb.WriteString("// AUTOCC_CC, AUTOCC_CPP and AUTOCC_CXX take precedence over overrides.\n\n")

	sb.WriteString("toolchain: {\n")
	fmt.Fprintf(&sb, "\tpreferred: %q\n", cfg.Toolchain.Preferred)
	sb.WriteString("}\n")

	if len(cfg.SearchPaths) == 0 {
		sb.WriteString("\nsearch_paths: []\n")
	} else {
		sb.WriteString("\nsearch_paths: [\n")
		for _, dir := range cfg.SearchPaths {
			fmt.Fprintf(&sb, "\t%q,\n", dir)
		}
		sb.WriteString("]\n")
	}

	sb.WriteString("\noverrides: {\n")
	if cfg.Overrides.CC != "" {
		fmt.Fprintf(&sb, "\tcc: %q\n", cfg.Overrides.CC)
	}
	if cfg.Overrides.CPP != "" {
		fmt.Fprintf(&sb, "\tcpp: %q\n", cfg.Overrides.CPP)
	}
	if cfg.Overrides.CXX != "" {
		fmt.Fprintf(&sb, "\tcxx: %q\n", cfg.Overrides.CXX)
	}
	sb.WriteString("}\n")

	sb.WriteString("\nlog: {\n")
	fmt.Fprintf(&sb, "\tlevel: %q\n", cfg.Log.Level)
	sb.WriteString("}\n")

	return sb.String()
}
