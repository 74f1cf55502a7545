// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/autocc/autocc/internal/toolchain"

	"github.com/spf13/cobra"
	"mvdan.cc/sh/v3/syntax"
)

// newResolveCommand creates the `autocc resolve` command.
func newResolveCommand(app *App, flags *rootFlags) *cobra.Command {
	var asJSON bool

	resolveCmd := &cobra.Command{
		Use:   "resolve [tool]",
		Short: "Print the compiler a tool resolves to",
		Long: `Print the compiler that the given tool (cc, cpp or c++) would run.

The output is a shell-quoted command line: the compiler path followed by
any arguments autocc adds in front of the caller's, such as -E for a
cpp served by a compiler driver.`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"cc", "cpp", "c++"},
		RunE: func(cmd *cobra.Command, args []string) error {
			name := toolchain.ToolCC.String()
			if len(args) == 1 {
				name = args[0]
			}
			req := toolchain.Request{Name: name, Env: app.env()}

			tool, err := toolchain.ParseTool(name)
			if err != nil {
				return app.fail(cmd, flags, req, err)
			}
			req.Tool = tool

			cfg, _, err := app.cliConfig(cmd.Context(), flags)
			if err != nil {
				return app.fail(cmd, flags, req, err)
			}

			res, err := app.newResolver(cfg).Resolve(cmd.Context(), req)
			if err != nil {
				return app.fail(cmd, flags, req, err)
			}

			if asJSON {
				return writeResolutionJSON(app.stdout, res)
			}
			return writeResolution(app.stdout, res, flags.verbose)
		},
	}

	resolveCmd.Flags().BoolVar(&asJSON, "json", false, "print the resolution as JSON")

	return resolveCmd
}

func writeResolutionJSON(w io.Writer, res toolchain.Resolution) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

// writeResolution prints the resolved command line, and with verbose the
// family and the step that decided it.
func writeResolution(w io.Writer, res toolchain.Resolution, verbose bool) error {
	line, err := quoteCommand(append([]string{res.Path}, res.Args...))
	if err != nil {
		return err
	}
	fmt.Fprintln(w, line)

	if verbose {
		fmt.Fprintf(w, "%s %s\n", VerboseStyle.Render("family:"), res.Family)
		fmt.Fprintf(w, "%s %s\n", VerboseStyle.Render("source:"), res.Source)
	}
	return nil
}

// quoteCommand joins words into a single line a POSIX shell reads back as
// the same words.
func quoteCommand(words []string) (string, error) {
	quoted := make([]string, len(words))
	for i, word := range words {
		q, err := syntax.Quote(word, syntax.LangPOSIX)
		if err != nil {
			return "", fmt.Errorf("failed to quote %q: %w", word, err)
		}
		quoted[i] = q
	}
	return strings.Join(quoted, " "), nil
}
