// SPDX-License-Identifier: MPL-2.0

package toolchain

import (
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

type (
	// Prober answers the filesystem questions resolution needs.
	// It never modifies the filesystem.
	Prober interface {
		// IsExecutable reports whether path is an existing regular file
		// the current user may execute.
		IsExecutable(path string) bool
		// IsSelf reports whether path refers to the running autocc binary.
		// Candidates that loop back to autocc must be skipped.
		IsSelf(path string) bool
	}

	// osProber is the production Prober backed by the real filesystem.
	osProber struct {
		self func() (os.FileInfo, error)
	}
)

// NewOSProber returns a Prober for the real filesystem. The running
// executable is located once, lazily.
func NewOSProber() Prober {
	p := &osProber{}
	p.self = sync.OnceValues(func() (os.FileInfo, error) {
		exe, err := os.Executable()
		if err != nil {
			return nil, err
		}
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		}
		return os.Stat(exe)
	})
	return p
}

// IsExecutable implements Prober.
func (p *osProber) IsExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return false
	}
	return canExecute(path, info)
}

// IsSelf implements Prober. os.SameFile compares device and inode, so
// symlinks and hard links to autocc are both detected.
func (p *osProber) IsSelf(path string) bool {
	self, err := p.self()
	if err != nil {
		slog.Debug("cannot locate running executable", "error", err)
		return false
	}
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return os.SameFile(self, info)
}
