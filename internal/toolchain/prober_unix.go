// SPDX-License-Identifier: MPL-2.0

//go:build unix

package toolchain

import (
	"os"

	"golang.org/x/sys/unix"
)

// canExecute asks the kernel whether the current user may execute path,
// which accounts for ownership, ACLs and noexec mounts.
func canExecute(path string, _ os.FileInfo) bool {
	return unix.Access(path, unix.X_OK) == nil
}

// executableName returns the file name a binary called name has on disk.
func executableName(name string) string { return name }
