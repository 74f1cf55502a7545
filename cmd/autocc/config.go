// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/autocc/autocc/internal/config"
	"github.com/autocc/autocc/internal/dispatch"
	"github.com/autocc/autocc/internal/toolchain"

	"github.com/spf13/cobra"
)

// newConfigCommand creates the `autocc config` command tree.
// Subcommands that read configuration use the App's config.Provider.
func newConfigCommand(app *App, flags *rootFlags) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage autocc configuration",
		Long: `Manage autocc configuration.

Configuration is read from, lowest precedence first:
  - /etc/autocc/config.cue
  - Linux: ~/.config/autocc/config.cue
  - macOS: ~/Library/Application Support/autocc/config.cue
  - Windows: %APPDATA%\autocc\config.cue

config.toml is accepted in place of config.cue. --config or
AUTOCC_CONFIG names a single file that is used instead of both.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, files, err := app.cliConfig(cmd.Context(), flags)
			if err != nil {
				return app.fail(cmd, flags, toolchain.Request{Name: config.AppName}, err)
			}
			showConfig(app.stdout, cfg, files)
			return nil
		},
	})

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(cmd, app, force)
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing configuration file")
	cfgCmd.AddCommand(initCmd)

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file paths",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfigPath(app.stdout)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output the effective configuration as CUE",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return dumpConfig(cmd.Context(), cmd, app, flags)
		},
	})

	return cfgCmd
}

func showConfig(w io.Writer, cfg *config.Config, files []string) {
	keyStyle := CmdStyle
	valueStyle := SuccessStyle

	fmt.Fprintln(w, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(w)

	if len(files) == 0 {
		fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("Config files"), SubtitleStyle.Render("(using defaults)"))
	} else {
		fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("Config files"), strings.Join(files, ", "))
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "%s:\n", keyStyle.Render("toolchain"))
	fmt.Fprintf(w, "  preferred: %s\n", valueStyle.Render(cfg.Toolchain.Preferred.String()))

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("search_paths"))
	if len(cfg.SearchPaths) == 0 {
		fmt.Fprintf(w, "  %s\n", SubtitleStyle.Render("(none configured, PATH only)"))
	}
	for _, dir := range cfg.SearchPaths {
		fmt.Fprintf(w, "  - %s\n", valueStyle.Render(dir))
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("overrides"))
	overrides := cfg.Overrides.OverrideMap()
	if len(overrides) == 0 {
		fmt.Fprintf(w, "  %s\n", SubtitleStyle.Render("(none configured)"))
	}
	for _, tool := range toolchain.Tools() {
		if value, ok := overrides[tool]; ok {
			fmt.Fprintf(w, "  %s: %s\n", tool.ConfigKey(), valueStyle.Render(value))
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("log"))
	fmt.Fprintf(w, "  level: %s\n", valueStyle.Render(cfg.Log.Level.String()))
}

func initConfig(cmd *cobra.Command, app *App, force bool) error {
	path, err := config.CreateDefaultConfig(force)
	if err != nil {
		if errors.Is(err, config.ErrConfigExists) {
			fmt.Fprintf(app.stderr, "%s %s already exists (use --force to overwrite)\n", WarningStyle.Render("!"), path)
			cmd.SilenceErrors = true
			cmd.SilenceUsage = true
			return &ExitError{Code: dispatch.ExitFailure, Err: err}
		}
		return fmt.Errorf("failed to create config: %w", err)
	}

	fmt.Fprintf(app.stdout, "%s Created default configuration at %s\n", SuccessStyle.Render("✓"), path)
	return nil
}

func showConfigPath(w io.Writer) error {
	cfgDir, err := config.ConfigDir()
	if err != nil {
		return err
	}
	cfgFile, err := config.ConfigFilePath()
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "System config directory: %s\n", config.SystemConfigDir())
	fmt.Fprintf(w, "Config directory: %s\n", cfgDir)
	fmt.Fprintf(w, "Config file: %s\n", cfgFile)
	return nil
}

func dumpConfig(ctx context.Context, cmd *cobra.Command, app *App, flags *rootFlags) error {
	cfg, _, err := app.cliConfig(ctx, flags)
	if err != nil {
		return app.fail(cmd, flags, toolchain.Request{Name: config.AppName}, err)
	}
	fmt.Fprint(app.stdout, config.GenerateCUE(cfg))
	return nil
}
