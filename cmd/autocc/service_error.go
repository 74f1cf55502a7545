// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/autocc/autocc/internal/issue"

	"golang.org/x/term"
)

// ServiceError is an error that carries optional rendering information for
// the CLI layer. When the CLI layer receives a ServiceError, it renders the
// styled error message (if present) before the issue help text.
// Always create via newServiceError to enforce the Err-must-be-non-nil invariant.
type ServiceError struct {
	// Err is the underlying error (must not be nil).
	Err error
	// IssueID is the optional issue catalog ID for rendering help text.
	IssueID issue.Id
	// StyledMessage is the optional pre-rendered styled error text.
	StyledMessage string
}

// newServiceError creates a ServiceError with a nil-Err panic guard.
func newServiceError(err error, issueID issue.Id, styledMessage string) *ServiceError {
	if err == nil {
		panic("ServiceError: Err must not be nil")
	}
	return &ServiceError{
		Err:           err,
		IssueID:       issueID,
		StyledMessage: styledMessage,
	}
}

// Error implements the error interface.
func (e *ServiceError) Error() string { return e.Err.Error() }

// Unwrap returns the underlying error for errors.Is/As chains.
func (e *ServiceError) Unwrap() error { return e.Err }

// renderServiceError renders a ServiceError in the CLI layer.
// It prints any styled message first, then the optional issue help section.
func renderServiceError(stderr io.Writer, svcErr *ServiceError) {
	if svcErr == nil {
		return
	}

	if svcErr.StyledMessage != "" {
		fmt.Fprint(stderr, svcErr.StyledMessage)
	}

	if svcErr.IssueID == 0 {
		return
	}

	if catalogEntry := issue.Get(svcErr.IssueID); catalogEntry != nil {
		rendered, renderErr := catalogEntry.Render(glamourStyle(stderr))
		if renderErr != nil {
			slog.Warn("failed to render issue catalog entry", "issueID", svcErr.IssueID, "error", renderErr)
		} else {
			fmt.Fprint(stderr, rendered)
		}
	}
}

// glamourStyle picks the dark style for terminals and plain text otherwise.
func glamourStyle(w io.Writer) string {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return "dark"
	}
	return "notty"
}
