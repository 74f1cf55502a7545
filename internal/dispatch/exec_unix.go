// SPDX-License-Identifier: MPL-2.0

//go:build unix

package dispatch

import (
	"context"

	"golang.org/x/sys/unix"
)

// defaultExecer replaces the process image with execve(2).
type defaultExecer struct{}

// Exec implements Execer. On success it does not return.
func (defaultExecer) Exec(ctx context.Context, path string, argv, env []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return unix.Exec(path, argv, env)
}
