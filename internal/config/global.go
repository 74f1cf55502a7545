// SPDX-License-Identifier: MPL-2.0

package config

// configDirOverride allows tests to override the user config directory.
// os.UserHomeDir() doesn't reliably respect HOME on all platforms
// (e.g., macOS in CI).
var configDirOverride string

// systemDirOverride allows tests to override /etc/autocc.
var systemDirOverride string

// Reset clears test overrides. Call from test cleanup to restore defaults.
func Reset() {
	configDirOverride = ""
	systemDirOverride = ""
}

// SetConfigDirOverride sets a custom user config directory path.
func SetConfigDirOverride(dir string) {
	configDirOverride = dir
}

// SetSystemDirOverride sets a custom system config directory path.
func SetSystemDirOverride(dir string) {
	systemDirOverride = dir
}
