// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"testing"

	"github.com/autocc/autocc/internal/issue"
	"github.com/autocc/autocc/internal/logging"
	"github.com/autocc/autocc/internal/testutil"
	"github.com/autocc/autocc/internal/toolchain"
)

// isolatedOptions returns LoadOptions pointing at empty temporary
// system and user directories.
func isolatedOptions(t *testing.T) (LoadOptions, string, string) {
	t.Helper()
	systemDir := filepath.Join(t.TempDir(), "etc")
	userDir := filepath.Join(t.TempDir(), "user")
	return LoadOptions{SystemDirPath: systemDir, ConfigDirPath: userDir}, systemDir, userDir
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	if cfg.Toolchain.Preferred != toolchain.PreferAuto {
		t.Errorf("Toolchain.Preferred = %q, want %q", cfg.Toolchain.Preferred, toolchain.PreferAuto)
	}
	if len(cfg.SearchPaths) != 0 {
		t.Errorf("SearchPaths = %v, want empty", cfg.SearchPaths)
	}
	if len(cfg.Overrides.OverrideMap()) != 0 {
		t.Errorf("Overrides = %+v, want none", cfg.Overrides)
	}
	if cfg.Log.Level != logging.LevelWarn {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, logging.LevelWarn)
	}
	if ok, errs := cfg.IsValid(); !ok {
		t.Errorf("DefaultConfig().IsValid() = false: %v", errs)
	}
}

func TestConfigDir(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG_CONFIG_HOME is only honored on Linux")
	}

	t.Cleanup(testutil.MustSetenv(t, "XDG_CONFIG_HOME", "/tmp/test-xdg-config"))

	dir, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() returned error: %v", err)
	}
	if want := filepath.Join("/tmp/test-xdg-config", AppName); dir != want {
		t.Errorf("ConfigDir() = %s, want %s", dir, want)
	}

	testutil.MustUnsetenv(t, "XDG_CONFIG_HOME")
	home := t.TempDir()
	t.Cleanup(testutil.SetHomeDir(t, home))

	dir, err = ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() returned error: %v", err)
	}
	if want := filepath.Join(home, ".config", AppName); dir != want {
		t.Errorf("ConfigDir() = %s, want %s", dir, want)
	}
}

func TestConfigDir_Override(t *testing.T) {
	t.Cleanup(Reset)
	SetConfigDirOverride("/custom/dir")

	dir, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() returned error: %v", err)
	}
	if dir != "/custom/dir" {
		t.Errorf("ConfigDir() = %s, want /custom/dir", dir)
	}
}

func TestSystemConfigDir(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("system config lives under ProgramData on Windows")
	}
	t.Cleanup(Reset)

	if got := SystemConfigDir(); got != "/etc/autocc" {
		t.Errorf("SystemConfigDir() = %q, want /etc/autocc", got)
	}

	SetSystemDirOverride("/opt/etc/autocc")
	if got := SystemConfigDir(); got != "/opt/etc/autocc" {
		t.Errorf("SystemConfigDir() = %q, want override", got)
	}
}

func TestLoad_DefaultsWhenNoConfigFile(t *testing.T) {
	t.Cleanup(testutil.MustUnsetenv(t, EnvToolchain))
	t.Cleanup(testutil.MustUnsetenv(t, EnvLogLevel))
	opts, _, _ := isolatedOptions(t)

	cfg, files, err := NewProvider().Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if len(files) != 0 {
		t.Errorf("files = %v, want none", files)
	}
	if cfg.Toolchain.Preferred != toolchain.PreferAuto || cfg.Log.Level != logging.LevelWarn {
		t.Errorf("Load() = %+v, want defaults", cfg)
	}
}

func TestLoad_LayersSystemThenUser(t *testing.T) {
	t.Cleanup(testutil.MustUnsetenv(t, EnvToolchain))
	t.Cleanup(testutil.MustUnsetenv(t, EnvLogLevel))
	opts, systemDir, userDir := isolatedOptions(t)

	systemFile := filepath.Join(systemDir, "config.cue")
	testutil.MustWriteFile(t, systemFile, `
toolchain: preferred: "gnu"
search_paths: ["/opt/system/bin"]
overrides: cc: "/opt/system/bin/gcc"
`, 0o644)

	userFile := filepath.Join(userDir, "config.cue")
	testutil.MustWriteFile(t, userFile, `
search_paths: ["/opt/user/bin"]
overrides: cxx: "clang++"
log: level: "debug"
`, 0o644)

	cfg, files, err := NewProvider().Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if !slices.Equal(files, []string{systemFile, userFile}) {
		t.Errorf("files = %v, want [%s %s]", files, systemFile, userFile)
	}
	if cfg.Toolchain.Preferred != toolchain.PreferGNU {
		t.Errorf("Toolchain.Preferred = %q, want gnu from system file", cfg.Toolchain.Preferred)
	}
	if !slices.Equal(cfg.SearchPaths, []string{"/opt/user/bin"}) {
		t.Errorf("SearchPaths = %v, want user list to replace system list", cfg.SearchPaths)
	}
	if cfg.Overrides.CC != "/opt/system/bin/gcc" || cfg.Overrides.CXX != "clang++" {
		t.Errorf("Overrides = %+v, want merged cc and cxx", cfg.Overrides)
	}
	if cfg.Log.Level != logging.LevelDebug {
		t.Errorf("Log.Level = %q, want debug", cfg.Log.Level)
	}
}

func TestLoad_TOML(t *testing.T) {
	t.Cleanup(testutil.MustUnsetenv(t, EnvToolchain))
	t.Cleanup(testutil.MustUnsetenv(t, EnvLogLevel))
	opts, _, userDir := isolatedOptions(t)

	testutil.MustWriteFile(t, filepath.Join(userDir, "config.toml"), `
search_paths = ["/opt/llvm/bin"]

[toolchain]
preferred = "llvm"

[overrides]
cpp = "/usr/bin/cpp-13"
`, 0o644)

	cfg, _, err := NewProvider().Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if cfg.Toolchain.Preferred != toolchain.PreferLLVM {
		t.Errorf("Toolchain.Preferred = %q, want llvm", cfg.Toolchain.Preferred)
	}
	if !slices.Equal(cfg.SearchPaths, []string{"/opt/llvm/bin"}) {
		t.Errorf("SearchPaths = %v", cfg.SearchPaths)
	}
	if got := cfg.Overrides.OverrideMap(); got[toolchain.ToolCPP] != "/usr/bin/cpp-13" || len(got) != 1 {
		t.Errorf("OverrideMap() = %v", got)
	}
}

func TestLoad_CUEPreferredOverTOML(t *testing.T) {
	t.Cleanup(testutil.MustUnsetenv(t, EnvToolchain))
	t.Cleanup(testutil.MustUnsetenv(t, EnvLogLevel))
	opts, _, userDir := isolatedOptions(t)

	cueFile := filepath.Join(userDir, "config.cue")
	testutil.MustWriteFile(t, cueFile, `toolchain: preferred: "llvm"`, 0o644)
	testutil.MustWriteFile(t, filepath.Join(userDir, "config.toml"), "[toolchain]\npreferred = \"gnu\"\n", 0o644)

	cfg, files, err := NewProvider().Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if !slices.Equal(files, []string{cueFile}) || cfg.Toolchain.Preferred != toolchain.PreferLLVM {
		t.Errorf("Load() = %q from %v, want llvm from %s", cfg.Toolchain.Preferred, files, cueFile)
	}
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Cleanup(testutil.MustSetenv(t, EnvToolchain, "gnu"))
	t.Cleanup(testutil.MustSetenv(t, EnvLogLevel, "info"))
	opts, _, userDir := isolatedOptions(t)

	testutil.MustWriteFile(t, filepath.Join(userDir, "config.cue"), `
toolchain: preferred: "llvm"
log: level: "error"
`, 0o644)

	cfg, _, err := NewProvider().Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if cfg.Toolchain.Preferred != toolchain.PreferGNU {
		t.Errorf("Toolchain.Preferred = %q, want gnu from %s", cfg.Toolchain.Preferred, EnvToolchain)
	}
	if cfg.Log.Level != logging.LevelInfo {
		t.Errorf("Log.Level = %q, want info from %s", cfg.Log.Level, EnvLogLevel)
	}
}

func TestLoad_InvalidEnvironmentValue(t *testing.T) {
	t.Cleanup(testutil.MustSetenv(t, EnvToolchain, "msvc"))
	t.Cleanup(testutil.MustUnsetenv(t, EnvLogLevel))
	opts, _, _ := isolatedOptions(t)

	_, _, err := NewProvider().Load(context.Background(), opts)
	if !errors.Is(err, toolchain.ErrInvalidPreference) {
		t.Fatalf("Load() error = %v, want ErrInvalidPreference", err)
	}
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Load() error = %v, want ErrInvalidConfig", err)
	}
}

func TestLoad_CustomPath(t *testing.T) {
	t.Cleanup(testutil.MustUnsetenv(t, EnvToolchain))
	t.Cleanup(testutil.MustUnsetenv(t, EnvLogLevel))
	opts, _, userDir := isolatedOptions(t)

	testutil.MustWriteFile(t, filepath.Join(userDir, "config.cue"), `log: level: "debug"`, 0o644)
	custom := filepath.Join(t.TempDir(), "custom.cue")
	testutil.MustWriteFile(t, custom, `toolchain: preferred: "gnu"`, 0o644)
	opts.ConfigFilePath = custom

	cfg, files, err := NewProvider().Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if !slices.Equal(files, []string{custom}) {
		t.Errorf("files = %v, want only %s", files, custom)
	}
	if cfg.Toolchain.Preferred != toolchain.PreferGNU {
		t.Errorf("Toolchain.Preferred = %q, want gnu", cfg.Toolchain.Preferred)
	}
	if cfg.Log.Level != logging.LevelWarn {
		t.Errorf("Log.Level = %q, want default; user file must be ignored", cfg.Log.Level)
	}
}

func TestLoad_CustomPath_NotFound(t *testing.T) {
	t.Parallel()

	opts := LoadOptions{ConfigFilePath: filepath.Join(t.TempDir(), "missing.cue")}
	_, _, err := NewProvider().Load(context.Background(), opts)
	if err == nil {
		t.Fatal("Load() should fail for a missing explicit config file")
	}

	var ae *issue.ActionableError
	if !errors.As(err, &ae) {
		t.Fatalf("Load() error = %T, want *issue.ActionableError", err)
	}
	if ae.Issue != issue.ConfigLoadFailedId {
		t.Errorf("Issue = %d, want ConfigLoadFailedId", ae.Issue)
	}
	if ae.Resource != opts.ConfigFilePath {
		t.Errorf("Resource = %q, want %q", ae.Resource, opts.ConfigFilePath)
	}
}

func TestLoad_SchemaViolations(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		file    string
		content string
		wantMsg string
	}{
		{"unknown field", "config.cue", `compiler: "gcc"`, "compiler"},
		{"bad preference", "config.cue", `toolchain: preferred: "msvc"`, "toolchain.preferred"},
		{"bad log level", "config.cue", `log: level: "trace"`, "log.level"},
		{"empty override", "config.cue", `overrides: cc: ""`, "overrides.cc"},
		{"syntax error", "config.cue", `toolchain: {`, "config.cue"},
		{"toml type error", "config.toml", "search_paths = \"/usr/bin\"\n", "search_paths"},
		{"toml syntax error", "config.toml", "[toolchain\n", "config.toml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), tt.file)
			testutil.MustWriteFile(t, path, tt.content, 0o644)

			_, _, err := NewProvider().Load(context.Background(), LoadOptions{ConfigFilePath: path})
			if err == nil {
				t.Fatal("Load() should reject the file")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("Load() error = %q, want it to mention %q", err, tt.wantMsg)
			}
		})
	}
}

func TestLoad_RelativeSearchPathRejected(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("absolute path rules differ on Windows")
	}
	t.Cleanup(testutil.MustUnsetenv(t, EnvToolchain))
	t.Cleanup(testutil.MustUnsetenv(t, EnvLogLevel))

	path := filepath.Join(t.TempDir(), "config.cue")
	testutil.MustWriteFile(t, path, `search_paths: ["bin"]`, 0o644)

	_, _, err := NewProvider().Load(context.Background(), LoadOptions{ConfigFilePath: path})
	if !errors.Is(err, ErrInvalidSearchPath) {
		t.Fatalf("Load() error = %v, want ErrInvalidSearchPath", err)
	}
}

func TestLoad_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, _, err := NewProvider().Load(ctx, LoadOptions{}); !errors.Is(err, context.Canceled) {
		t.Errorf("Load() error = %v, want context.Canceled", err)
	}
}

func TestGenerateCUE_RoundTrip(t *testing.T) {
	t.Cleanup(testutil.MustUnsetenv(t, EnvToolchain))
	t.Cleanup(testutil.MustUnsetenv(t, EnvLogLevel))

	want := &Config{
		Toolchain:   ToolchainConfig{Preferred: toolchain.PreferGNU},
		SearchPaths: []string{"/opt/a/bin", "/opt/b/bin"},
		Overrides:   OverridesConfig{CC: "/usr/bin/gcc-13", CXX: "g++-13"},
		Log:         LogConfig{Level: logging.LevelInfo},
	}

	path := filepath.Join(t.TempDir(), "config.cue")
	testutil.MustWriteFile(t, path, GenerateCUE(want), 0o644)

	got, _, err := NewProvider().Load(context.Background(), LoadOptions{ConfigFilePath: path})
	if err != nil {
		t.Fatalf("Load(GenerateCUE()) returned error: %v", err)
	}
	if got.Toolchain != want.Toolchain || got.Overrides != want.Overrides || got.Log != want.Log ||
		!slices.Equal(got.SearchPaths, want.SearchPaths) {
		t.Errorf("round trip = %+v, want %+v", got, want)
	}
}

func TestCreateDefaultConfig(t *testing.T) {
	t.Cleanup(Reset)
	dir := filepath.Join(t.TempDir(), "autocc")
	SetConfigDirOverride(dir)

	path, err := CreateDefaultConfig(false)
	if err != nil {
		t.Fatalf("CreateDefaultConfig() returned error: %v", err)
	}
	if want := filepath.Join(dir, "config.cue"); path != want {
		t.Errorf("path = %q, want %q", path, want)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	if !strings.Contains(string(data), `preferred: "auto"`) {
		t.Errorf("default config missing toolchain preference:\n%s", data)
	}

	if _, err := CreateDefaultConfig(false); !errors.Is(err, ErrConfigExists) {
		t.Errorf("second CreateDefaultConfig(false) error = %v, want ErrConfigExists", err)
	}
	if _, err := CreateDefaultConfig(true); err != nil {
		t.Errorf("CreateDefaultConfig(true) returned error: %v", err)
	}
}

func TestConfig_ResolverOptions(t *testing.T) {
	t.Parallel()

	cfg := &Config{
		Toolchain:   ToolchainConfig{Preferred: toolchain.PreferLLVM},
		SearchPaths: []string{"/opt/llvm/bin"},
		Overrides:   OverridesConfig{CXX: "/usr/bin/g++"},
	}

	opts := cfg.ResolverOptions()
	if opts.Preference != toolchain.PreferLLVM {
		t.Errorf("Preference = %q", opts.Preference)
	}
	if !slices.Equal(opts.SearchPaths, cfg.SearchPaths) {
		t.Errorf("SearchPaths = %v", opts.SearchPaths)
	}
	if opts.Overrides[toolchain.ToolCXX] != "/usr/bin/g++" || len(opts.Overrides) != 1 {
		t.Errorf("Overrides = %v", opts.Overrides)
	}

	opts.SearchPaths[0] = "/mutated"
	if cfg.SearchPaths[0] != "/opt/llvm/bin" {
		t.Error("ResolverOptions() should copy SearchPaths")
	}
}
