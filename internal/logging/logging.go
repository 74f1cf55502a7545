// SPDX-License-Identifier: MPL-2.0

// Package logging configures the structured logger shared by every autocc
// package. Call sites use log/slog; the handler behind slog.Default is a
// charmbracelet/log logger writing to stderr so compiler stdout is never
// polluted.
package logging

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/charmbracelet/log"
)

const (
	// Prefix is prepended to every log line.
	Prefix = "autocc"

	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"

	// DefaultLevel keeps autocc silent during normal compiler runs.
	DefaultLevel = LevelWarn
)

// ErrInvalidLevel is the sentinel error wrapped by InvalidLevelError.
var ErrInvalidLevel = errors.New("invalid log level")

type (
	// Level is a log verbosity name as written in config files and
	// AUTOCC_LOG_LEVEL.
	Level string

	// InvalidLevelError is returned when a Level value is not recognized.
	// It wraps ErrInvalidLevel for errors.Is() compatibility.
	InvalidLevelError struct {
		Value Level
	}
)

// Error implements the error interface for InvalidLevelError.
func (e *InvalidLevelError) Error() string {
	return fmt.Sprintf("invalid log level %q (valid: debug, info, warn, error)", e.Value)
}

// Unwrap returns ErrInvalidLevel for errors.Is() compatibility.
func (e *InvalidLevelError) Unwrap() error { return ErrInvalidLevel }

// String returns the string representation of the Level.
func (l Level) String() string { return string(l) }

// IsValid returns whether the Level is one of the defined levels,
// and a list of validation errors if it is not.
func (l Level) IsValid() (bool, []error) {
	switch l {
	case LevelDebug, LevelInfo, LevelWarn, LevelError:
		return true, nil
	default:
		return false, []error{&InvalidLevelError{Value: l}}
	}
}

func (l Level) charm() log.Level {
	switch l {
	case LevelDebug:
		return log.DebugLevel
	case LevelInfo:
		return log.InfoLevel
	case LevelError:
		return log.ErrorLevel
	default:
		return log.WarnLevel
	}
}

// New creates a logger writing to w at the given level. Unknown levels
// fall back to DefaultLevel.
func New(w io.Writer, level Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Prefix: Prefix,
		Level:  level.charm(),
	})
}

// Setup installs a logger writing to w as the slog default handler and
// returns it.
func Setup(w io.Writer, level Level) *log.Logger {
	logger := New(w, level)
	slog.SetDefault(slog.New(logger))
	return logger
}
