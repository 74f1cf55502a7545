// SPDX-License-Identifier: MPL-2.0

//go:build !unix

package toolchain

import (
	"os"
	"path/filepath"
	"strings"
)

// canExecute approximates executability by extension where the OS has no
// execute permission bit.
func canExecute(path string, _ os.FileInfo) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".exe", ".com", ".bat", ".cmd":
		return true
	default:
		return false
	}
}

// executableName returns the file name a binary called name has on disk.
func executableName(name string) string {
	if filepath.Ext(name) == "" {
		return name + ".exe"
	}
	return name
}
