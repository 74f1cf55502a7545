// SPDX-License-Identifier: MPL-2.0

package dispatch

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/autocc/autocc/internal/toolchain"
)

// Exit statuses of autocc itself. 126 and 127 follow the POSIX shell
// convention for "found but not executable" and "not found".
const (
	ExitOK            ExitCode = 0
	ExitFailure       ExitCode = 1
	ExitUsage         ExitCode = 2
	ExitCannotExecute ExitCode = 126
	ExitNotFound      ExitCode = 127
)

// ErrInvalidExitCode is the sentinel error wrapped by InvalidExitCodeError.
var ErrInvalidExitCode = errors.New("invalid exit code")

type (
	// ExitCode represents a process exit status code.
	// Exit codes are in the range 0-255 on POSIX systems.
	ExitCode int

	// InvalidExitCodeError is returned when an ExitCode is outside the
	// valid range (0-255).
	InvalidExitCodeError struct {
		Value ExitCode
	}
)

// Error implements the error interface.
func (e *InvalidExitCodeError) Error() string {
	return fmt.Sprintf("invalid exit code %d (must be in range 0-255)", e.Value)
}

// Unwrap returns ErrInvalidExitCode so callers can use errors.Is for programmatic detection.
func (e *InvalidExitCodeError) Unwrap() error { return ErrInvalidExitCode }

// IsValid returns whether the ExitCode is in the valid range (0-255),
// and a list of validation errors if it is not.
func (c ExitCode) IsValid() (bool, []error) {
	if c < 0 || c > 255 {
		return false, []error{&InvalidExitCodeError{Value: c}}
	}
	return true, nil
}

// String returns the decimal string representation of the ExitCode.
func (c ExitCode) String() string { return strconv.Itoa(int(c)) }

// ExitCodeFor maps an error from resolution or dispatch to the status
// autocc exits with.
func ExitCodeFor(err error) ExitCode {
	if err == nil {
		return ExitOK
	}
	var status *ExitStatusError
	if errors.As(err, &status) {
		if valid, _ := status.Code.IsValid(); valid {
			return status.Code
		}
		return ExitFailure
	}
	switch {
	case errors.Is(err, toolchain.ErrCompilerNotFound), errors.Is(err, toolchain.ErrInvalidOverride):
		return ExitNotFound
	case errors.Is(err, ErrExecFailed):
		return ExitCannotExecute
	case errors.Is(err, toolchain.ErrUnknownTool):
		return ExitUsage
	default:
		return ExitFailure
	}
}
