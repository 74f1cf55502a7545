// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/autocc/autocc/internal/config"
	"github.com/autocc/autocc/internal/dispatch"
	"github.com/autocc/autocc/internal/logging"
	"github.com/autocc/autocc/internal/toolchain"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// rootFlags holds the persistent flags shared by every subcommand.
type rootFlags struct {
	verbose bool
	cfgFile string
}

// newRootCommand builds the autocc command tree around app.
func newRootCommand(app *App) *cobra.Command {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:   config.AppName,
		Short: "Find the system C compiler and run it",
		Long: TitleStyle.Render("autocc") + SubtitleStyle.Render(" - find the system C compiler and run it") + `

autocc is installed under the names cc, cpp and c++. When invoked through
one of them it locates the real compiler and replaces itself with it,
passing every argument through unchanged.

` + SubtitleStyle.Render("Resolution order:") + `
  1. AUTOCC_CC / AUTOCC_CPP / AUTOCC_CXX, then config overrides
  2. CC / CPP / CXX naming clang or gcc
  3. A driver next to the linker named by LD
  4. clang, gcc and target-prefixed names in search_paths, then PATH

` + SubtitleStyle.Render("Examples:") + `
  autocc resolve            Print the compiler cc would run
  autocc resolve c++ --json Print the c++ resolution as JSON
  autocc exec cc -- -v      Run the resolved cc with -v
  autocc doctor             Show every candidate that was probed
  autocc config show        Show current configuration`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := levelFromEnv(app.env())
			if flags.verbose {
				level = logging.LevelDebug
			}
			logging.Setup(app.stderr, level)
			return nil
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&flags.cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/autocc/config.cue)")

	rootCmd.AddCommand(newResolveCommand(app, flags))
	rootCmd.AddCommand(newExecCommand(app, flags))
	rootCmd.AddCommand(newDoctorCommand(app, flags))
	rootCmd.AddCommand(newConfigCommand(app, flags))

	rootCmd.SetOut(app.stdout)
	rootCmd.SetErr(app.stderr)

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version != "dev" {
		return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "dev (built from source)"
}

// Execute is called by main.main. Under a tool name it runs shim mode and
// exits with the compiler's status; as autocc it runs the command tree.
func Execute() {
	ctx := context.Background()
	app := NewApp(Dependencies{})

	if toolchain.InvocationBase(os.Args[0]) != config.AppName {
		os.Exit(int(app.runShim(ctx, os.Args)))
	}

	if err := fang.Execute(
		ctx,
		newRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.Code))
		}
		os.Exit(int(dispatch.ExitFailure))
	}
}
