// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"

	"github.com/autocc/autocc/internal/dispatch"
	"github.com/autocc/autocc/internal/toolchain"

	"github.com/spf13/cobra"
)

// newExecCommand creates the `autocc exec` command.
func newExecCommand(app *App, flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "exec <tool> [-- args...]",
		Short: "Resolve a tool and run it",
		Long: `Resolve a tool and run it with the given arguments, exactly as if
autocc had been invoked under the tool's name.

Arguments after -- are passed to the compiler unchanged.`,
		Example: `  autocc exec cc -- -c foo.c -o foo.o
  autocc exec c++ -- --version`,
		Args:      cobra.MinimumNArgs(1),
		ValidArgs: []string{"cc", "cpp", "c++"},
		RunE: func(cmd *cobra.Command, args []string) error {
			req := toolchain.Request{Name: args[0], Args: args[1:], Env: app.env()}

			tool, err := toolchain.ParseTool(args[0])
			if err != nil {
				return app.fail(cmd, flags, req, err)
			}
			req.Tool = tool

			cfg, _, err := app.cliConfig(cmd.Context(), flags)
			if err != nil {
				return app.fail(cmd, flags, req, err)
			}

			err = app.run(cmd.Context(), cfg, req)
			if err == nil {
				return nil
			}

			var status *dispatch.ExitStatusError
			if errors.As(err, &status) {
				cmd.SilenceErrors = true
				cmd.SilenceUsage = true
				return &ExitError{Code: dispatch.ExitCodeFor(err), Err: err}
			}
			return app.fail(cmd, flags, req, err)
		},
	}
}
