// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE as the file format.
//
// Files are layered, lowest precedence first: built-in defaults,
// /etc/autocc/config.cue, then the per-user file ($XDG_CONFIG_HOME/autocc on
// Linux, ~/Library/Application Support/autocc on macOS, %APPDATA%\autocc on
// Windows). config.toml is accepted where no config.cue exists. An explicit
// file replaces both. AUTOCC_TOOLCHAIN and AUTOCC_LOG_LEVEL override the
// matching keys.
//
// Every file is validated against the embedded CUE schema (config_schema.cue).
package config
