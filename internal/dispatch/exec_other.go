// SPDX-License-Identifier: MPL-2.0

//go:build !unix

package dispatch

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"os/signal"
)

// defaultExecer runs the compiler as a child process on platforms without
// execve(2). The console delivers interrupts to the child directly, so the
// parent ignores them and waits.
type defaultExecer struct{}

// Exec implements Execer. A non-zero exit is reported as *ExitStatusError.
func (defaultExecer) Exec(ctx context.Context, path string, argv, env []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt)
	defer signal.Stop(sigs)

	cmd := &exec.Cmd{
		Path:   path,
		Args:   argv,
		Env:    env,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
	err := cmd.Run()
	if err == nil {
		return &ExitStatusError{Code: ExitOK}
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &ExitStatusError{Code: ExitCode(exitErr.ExitCode())}
	}
	return err
}
