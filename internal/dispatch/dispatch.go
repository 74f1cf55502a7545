// SPDX-License-Identifier: MPL-2.0

package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/autocc/autocc/internal/toolchain"
)

// ErrExecFailed is the sentinel error wrapped by ExecFailedError.
var ErrExecFailed = errors.New("failed to execute compiler")

type (
	// Execer starts the program at path. A successful Exec on Unix never
	// returns. Implementations that run a child process return
	// *ExitStatusError when the child exits non-zero.
	Execer interface {
		Exec(ctx context.Context, path string, argv, env []string) error
	}

	// Dispatcher replaces the current invocation with the resolved compiler.
	Dispatcher struct {
		execer Execer
	}

	// ExecFailedError is returned when the resolved compiler could not be
	// started. It matches both ErrExecFailed and the underlying OS error.
	ExecFailedError struct {
		Path string
		Err  error
	}

	// ExitStatusError carries the exit status of a compiler that ran as a
	// child process.
	ExitStatusError struct {
		Code ExitCode
	}
)

// New creates a Dispatcher. A nil execer selects the platform default.
func New(execer Execer) *Dispatcher {
	if execer == nil {
		execer = defaultExecer{}
	}
	return &Dispatcher{execer: execer}
}

// Dispatch runs res.Path with the arguments of req. The environment is
// forwarded unchanged.
func (d *Dispatcher) Dispatch(ctx context.Context, req toolchain.Request, res toolchain.Resolution) error {
	argv := Argv(req, res)
	slog.Debug("dispatching", "path", res.Path, "argv", argv, "source", res.Source)

	err := d.execer.Exec(ctx, res.Path, argv, req.Env)
	if err == nil {
		return nil
	}
	var status *ExitStatusError
	if errors.As(err, &status) {
		return err
	}
	return &ExecFailedError{Path: res.Path, Err: err}
}

// Argv builds the argument vector for the compiler: the name autocc was
// invoked as, then the leading arguments of the resolution, then the
// caller's arguments in their original order. Keeping argv[0] matters to
// drivers that change behavior based on their invocation name.
func Argv(req toolchain.Request, res toolchain.Resolution) []string {
	name := req.Name
	if name == "" {
		name = res.Tool.String()
	}
	argv := make([]string, 0, 1+len(res.Args)+len(req.Args))
	argv = append(argv, name)
	argv = append(argv, res.Args...)
	return append(argv, req.Args...)
}

// Error implements the error interface for ExecFailedError.
func (e *ExecFailedError) Error() string {
	return fmt.Sprintf("failed to execute %s: %v", e.Path, e.Err)
}

// Unwrap returns both ErrExecFailed and the underlying error.
func (e *ExecFailedError) Unwrap() []error { return []error{ErrExecFailed, e.Err} }

// Error implements the error interface for ExitStatusError.
func (e *ExitStatusError) Error() string {
	return fmt.Sprintf("compiler exited with status %d", e.Code)
}
