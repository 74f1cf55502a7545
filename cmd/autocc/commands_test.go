// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"testing"

	"github.com/autocc/autocc/internal/config"
	"github.com/autocc/autocc/internal/dispatch"
	"github.com/autocc/autocc/internal/issue"
	"github.com/autocc/autocc/internal/testutil"
	"github.com/autocc/autocc/internal/toolchain"
)

// Not parallel: executing the root command installs the slog default.

func TestExecCommand(t *testing.T) {
	skipOnWindows(t)

	app, _, _ := newTestApp(t, newFakeProber("/usr/bin/gcc"))
	d := &recordingDispatcher{}
	app.Dispatcher = d

	if err := executeRoot(app, "exec", "cpp", "--", "-P", "foo.h"); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if len(d.calls) != 1 {
		t.Fatalf("dispatched %d times, want 1", len(d.calls))
	}
	call := d.calls[0]
	if call.req.Name != "cpp" || call.req.Tool != toolchain.ToolCPP {
		t.Errorf("request = %+v, want cpp", call.req)
	}
	if got := dispatch.Argv(call.req, call.res); !slices.Equal(got, []string{"cpp", "-E", "-P", "foo.h"}) {
		t.Errorf("argv = %q", got)
	}
}

func TestExecCommand_ExitStatus(t *testing.T) {
	skipOnWindows(t)

	app, _, stderr := newTestApp(t, newFakeProber("/usr/bin/gcc"))
	app.Dispatcher = &recordingDispatcher{err: &dispatch.ExitStatusError{Code: 5}}

	err := executeRoot(app, "exec", "cc", "--", "bad.c")

	var exitErr *ExitError
	if !errors.As(err, &exitErr) || exitErr.Code != 5 {
		t.Fatalf("error = %v, want exit status 5", err)
	}
	if stderr.Len() != 0 {
		t.Errorf("stderr = %q, want empty", stderr)
	}
}

func TestExecCommand_NotFound(t *testing.T) {
	skipOnWindows(t)

	app, _, stderr := newTestApp(t, newFakeProber())

	err := executeRoot(app, "exec", "c++")

	var exitErr *ExitError
	if !errors.As(err, &exitErr) || exitErr.Code != dispatch.ExitNotFound {
		t.Fatalf("error = %v, want exit status 127", err)
	}
	if !strings.Contains(stderr.String(), "AUTOCC_CXX") {
		t.Errorf("stderr = %q, want the override suggestion", stderr)
	}
}

func TestDoctorCommand(t *testing.T) {
	skipOnWindows(t)

	prober := newFakeProber("/usr/bin/clang", "/usr/bin/gcc").withSelf("/usr/bin/cpp")
	app, stdout, _ := newTestApp(t, prober, "CC=gcc")
	app.Config = &fakeProvider{files: []string{"/etc/autocc/config.cue"}}

	if err := executeRoot(app, "doctor"); err != nil {
		t.Fatalf("execute: %v", err)
	}

	out := stdout.String()
	for _, want := range []string{
		"/etc/autocc/config.cue",
		"/usr/bin",
		"CC: gcc",
		"AUTOCC_CC: (unset)",
		"environment",
		"filesystem",
		"selected",
		"autocc, skipped",
		"no c++ compiler found",
		"none found",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("doctor output missing %q:\n%s", want, out)
		}
	}
}

func TestConfigShowCommand(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Toolchain.Preferred = toolchain.PreferGNU
	cfg.SearchPaths = []string{"/opt/gcc/bin"}
	cfg.Overrides.CXX = "g++-14"

	app, stdout, _ := newTestApp(t, newFakeProber())
	app.Config = &fakeProvider{cfg: cfg, files: []string{"/home/u/.config/autocc/config.cue"}}

	if err := executeRoot(app, "config", "show"); err != nil {
		t.Fatalf("execute: %v", err)
	}

	out := stdout.String()
	for _, want := range []string{"/home/u/.config/autocc/config.cue", "preferred: gnu", "/opt/gcc/bin", "cxx: g++-14", "level: warn"} {
		if !strings.Contains(out, want) {
			t.Errorf("config show output missing %q:\n%s", want, out)
		}
	}
}

func TestConfigDumpCommand_ExplicitFile(t *testing.T) {
	app, stdout, _ := newTestApp(t, newFakeProber())
	provider := &fakeProvider{}
	app.Config = provider

	if err := executeRoot(app, "--config", "/tmp/alt.cue", "config", "dump"); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if len(provider.opts) != 1 || provider.opts[0].ConfigFilePath != "/tmp/alt.cue" {
		t.Errorf("Load options = %+v, want ConfigFilePath /tmp/alt.cue", provider.opts)
	}
	if stdout.String() != config.GenerateCUE(config.DefaultConfig()) {
		t.Errorf("dump = %q", stdout)
	}
}

func TestConfigCommand_LoadError(t *testing.T) {
	app, _, stderr := newTestApp(t, newFakeProber())
	loadErr := issue.NewErrorContext().
		WithOperation("load configuration").
		WithResource("/etc/autocc/config.cue").
		WithIssue(issue.ConfigLoadFailedId).
		Wrap(errors.New("toolchain.preferred: conflicting values")).
		BuildError()
	app.Config = &fakeProvider{err: loadErr}

	err := executeRoot(app, "config", "show")

	var exitErr *ExitError
	if !errors.As(err, &exitErr) || exitErr.Code != dispatch.ExitFailure {
		t.Fatalf("error = %v, want exit status 1", err)
	}
	if !strings.Contains(stderr.String(), "failed to load configuration: /etc/autocc/config.cue") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestConfigInitCommand(t *testing.T) {
	dir := t.TempDir()
	config.SetConfigDirOverride(dir)
	t.Cleanup(config.Reset)

	app, stdout, stderr := newTestApp(t, newFakeProber())

	if err := executeRoot(app, "config", "init"); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(stdout.String(), filepath.Join(dir, "config.cue")) {
		t.Errorf("stdout = %q", stdout)
	}

	err := executeRoot(app, "config", "init")
	var exitErr *ExitError
	if !errors.As(err, &exitErr) || !errors.Is(err, config.ErrConfigExists) {
		t.Fatalf("second init error = %v, want ErrConfigExists", err)
	}
	if !strings.Contains(stderr.String(), "--force") {
		t.Errorf("stderr = %q, want a --force hint", stderr)
	}

	if err := executeRoot(app, "config", "init", "--force"); err != nil {
		t.Fatalf("init --force: %v", err)
	}
}

func TestConfigPathCommand(t *testing.T) {
	if runtime.GOOS == "darwin" {
		t.Skip("the macOS config directory lives under HOME")
	}
	dir := t.TempDir()
	defer testutil.SetConfigHome(t, dir)()

	app, stdout, _ := newTestApp(t, newFakeProber())

	if err := executeRoot(app, "config", "path"); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(stdout.String(), "Config file: "+filepath.Join(dir, "autocc", "config.cue")) {
		t.Errorf("stdout = %q", stdout)
	}
}
