// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"

	"github.com/autocc/autocc/internal/dispatch"
	"github.com/autocc/autocc/internal/issue"
	"github.com/autocc/autocc/internal/toolchain"

	"github.com/spf13/cobra"
)

// describeFailure classifies an error from resolving or running req and
// attaches the suggestions and issue entry that help with it.
func describeFailure(req toolchain.Request, err error) *issue.ActionableError {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae
	}

	label := req.Tool.String()
	if label == "" {
		label = toolchain.InvocationBase(req.Name)
	}

	var (
		notFound *toolchain.CompilerNotFoundError
		override *toolchain.InvalidOverrideError
		execErr  *dispatch.ExecFailedError
	)
	switch {
	case errors.As(err, &notFound):
		return issue.NewErrorContext().
			WithOperation("resolve " + notFound.Tool.String()).
			WithIssue(issue.CompilerNotFoundId).
			WithSuggestions(
				"Install clang or gcc",
				"Set "+notFound.Tool.OverrideVar()+" to the compiler to use",
				"Run 'autocc doctor' to list every probed path",
			).
			Wrap(err).
			Build()
	case errors.As(err, &override):
		return issue.NewErrorContext().
			WithOperation("resolve " + label).
			WithIssue(issue.InvalidOverrideId).
			WithSuggestions(
				"Point "+override.Origin+" at an executable file",
				"Unset "+override.Origin+" to let autocc search",
			).
			Wrap(err).
			Build()
	case errors.As(err, &execErr):
		return issue.NewErrorContext().
			WithOperation("run " + label).
			WithIssue(issue.ExecFailedId).
			WithSuggestion("Check that " + execErr.Path + " is a compiler built for this machine").
			Wrap(err).
			Build()
	case errors.Is(err, toolchain.ErrUnknownTool):
		return issue.NewErrorContext().
			WithOperation("determine tool").
			WithIssue(issue.UnknownToolId).
			WithSuggestions(
				"Invoke autocc through a link named cc, cpp or c++",
				"Use 'autocc exec <tool>' to name the tool explicitly",
			).
			Wrap(err).
			Build()
	default:
		return issue.WrapWithContext(err, "run "+label, "")
	}
}

// fail renders err for the CLI and returns the ExitError that carries its
// exit code out of the RunE handler.
func (a *App) fail(cmd *cobra.Command, flags *rootFlags, req toolchain.Request, err error) error {
	ae := describeFailure(req, err)
	styled := ErrorStyle.Render("Error:") + " " + ae.Format(flags.verbose) + "\n\n"
	svcErr := newServiceError(ae, ae.Issue, styled)
	renderServiceError(a.stderr, svcErr)

	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	return &ExitError{Code: dispatch.ExitCodeFor(err), Err: svcErr}
}
