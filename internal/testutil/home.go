// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"runtime"
	"testing"
)

// SetHomeDir sets the platform's home directory variable to dir and returns
// a cleanup function that restores the original value.
//
// Platform handling:
//   - Windows: Sets USERPROFILE
//   - Linux/macOS: Sets HOME
//
// Usage:
//
//	t.Cleanup(testutil.SetHomeDir(t, t.TempDir()))
func SetHomeDir(t testing.TB, dir string) func() {
	t.Helper()

	switch runtime.GOOS {
	case "windows":
		return MustSetenv(t, "USERPROFILE", dir)
	default:
		return MustSetenv(t, "HOME", dir)
	}
}

// SetConfigHome points the per-user configuration root at dir
// (APPDATA on Windows, XDG_CONFIG_HOME elsewhere) and returns a cleanup
// function. On macOS the config package ignores XDG_CONFIG_HOME, so
// callers there should also use SetHomeDir.
func SetConfigHome(t testing.TB, dir string) func() {
	t.Helper()

	switch runtime.GOOS {
	case "windows":
		return MustSetenv(t, "APPDATA", dir)
	default:
		return MustSetenv(t, "XDG_CONFIG_HOME", dir)
	}
}
