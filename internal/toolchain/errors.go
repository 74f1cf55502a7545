// SPDX-License-Identifier: MPL-2.0

package toolchain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrCompilerNotFound is returned when no override is set and no
	// candidate compiler exists.
	ErrCompilerNotFound = errors.New("no compiler found")

	// ErrInvalidOverride is returned when an explicit override does not
	// name an executable file.
	ErrInvalidOverride = errors.New("invalid compiler override")
)

type (
	// CompilerNotFoundError is the resolution failure. It wraps
	// ErrCompilerNotFound for errors.Is() compatibility.
	CompilerNotFoundError struct {
		Tool       Tool
		SearchDirs []string
	}

	// InvalidOverrideError is returned when an override variable or config
	// entry is set but unusable. It wraps ErrInvalidOverride.
	InvalidOverrideError struct {
		// Origin is the variable name or config key the value came from.
		Origin string
		Value  string
		Reason string
	}
)

// Error implements the error interface for CompilerNotFoundError.
func (e *CompilerNotFoundError) Error() string {
	if len(e.SearchDirs) == 0 {
		return fmt.Sprintf("no %s compiler found (no search directories)", e.Tool)
	}
	return fmt.Sprintf("no %s compiler found in %s", e.Tool, strings.Join(e.SearchDirs, ":"))
}

// Unwrap returns ErrCompilerNotFound for errors.Is() compatibility.
func (e *CompilerNotFoundError) Unwrap() error { return ErrCompilerNotFound }

// Error implements the error interface for InvalidOverrideError.
func (e *InvalidOverrideError) Error() string {
	return fmt.Sprintf("%s=%q: %s", e.Origin, e.Value, e.Reason)
}

// Unwrap returns ErrInvalidOverride for errors.Is() compatibility.
func (e *InvalidOverrideError) Unwrap() error { return ErrInvalidOverride }
