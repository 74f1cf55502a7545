// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"context"
	"runtime"
	"testing"

	"github.com/autocc/autocc/internal/config"
	"github.com/autocc/autocc/internal/toolchain"
)

type (
	fakeProvider struct {
		cfg   *config.Config
		files []string
		err   error
		opts  []config.LoadOptions
	}

	fakeProber struct {
		executables map[string]bool
		self        map[string]bool
	}

	dispatchCall struct {
		req toolchain.Request
		res toolchain.Resolution
	}

	recordingDispatcher struct {
		calls []dispatchCall
		err   error
	}
)

func (p *fakeProvider) Load(_ context.Context, opts config.LoadOptions) (*config.Config, []string, error) {
	p.opts = append(p.opts, opts)
	if p.err != nil {
		return nil, nil, p.err
	}
	if p.cfg == nil {
		return config.DefaultConfig(), p.files, nil
	}
	return p.cfg, p.files, nil
}

func newFakeProber(executables ...string) *fakeProber {
	p := &fakeProber{executables: map[string]bool{}, self: map[string]bool{}}
	for _, e := range executables {
		p.executables[e] = true
	}
	return p
}

func (p *fakeProber) withSelf(path string) *fakeProber {
	p.executables[path] = true
	p.self[path] = true
	return p
}

func (p *fakeProber) IsExecutable(path string) bool { return p.executables[path] }
func (p *fakeProber) IsSelf(path string) bool       { return p.self[path] }

func (d *recordingDispatcher) Dispatch(_ context.Context, req toolchain.Request, res toolchain.Resolution) error {
	d.calls = append(d.calls, dispatchCall{req: req, res: res})
	return d.err
}

// newTestApp builds an App around fakes. The environment holds only
// PATH=/usr/bin:/bin plus the given extra entries.
func newTestApp(t *testing.T, prober *fakeProber, env ...string) (*App, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	environ := append([]string{"PATH=/usr/bin:/bin"}, env...)
	app := NewApp(Dependencies{
		Config:     &fakeProvider{},
		Prober:     prober,
		Dispatcher: &recordingDispatcher{},
		Environ:    func() []string { return environ },
		Stdout:     &stdout,
		Stderr:     &stderr,
	})
	return app, &stdout, &stderr
}

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake paths use Unix executable names")
	}
}
