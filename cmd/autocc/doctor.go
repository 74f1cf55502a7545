// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"

	"github.com/autocc/autocc/internal/config"
	"github.com/autocc/autocc/internal/toolchain"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

// newDoctorCommand creates the `autocc doctor` command.
func newDoctorCommand(app *App, flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Show how every tool is resolved",
		Long: `Show the inputs autocc resolves compilers from and the result for
every tool: the host triplet, search directories, configuration files,
relevant environment variables, and each candidate found on disk.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env := app.env()
			cfg, files, err := app.cliConfig(cmd.Context(), flags)
			if err != nil {
				return app.fail(cmd, flags, toolchain.Request{Name: config.AppName, Env: env}, err)
			}

			resolver := app.newResolver(cfg)
			report := doctorReport{
				triplet:    resolver.Triplet(),
				preference: cfg.Toolchain.Preferred,
				dirs:       resolver.SearchDirs(env),
				files:      files,
				env:        env,
			}
			for _, tool := range toolchain.Tools() {
				req := toolchain.Request{Name: tool.String(), Tool: tool, Env: env}
				res, err := resolver.Resolve(cmd.Context(), req)
				report.tools = append(report.tools, toolReport{
					tool:       tool,
					resolution: res,
					err:        err,
					probes:     resolver.Survey(tool, env),
				})
			}

			report.write(app.stdout)
			return nil
		},
	}
}

type (
	doctorReport struct {
		triplet    string
		preference toolchain.Preference
		dirs       []string
		files      []string
		env        toolchain.Environ
		tools      []toolReport
	}

	toolReport struct {
		tool       toolchain.Tool
		resolution toolchain.Resolution
		err        error
		probes     []toolchain.Probe
	}
)

func (r doctorReport) write(w io.Writer) {
	fmt.Fprintln(w, TitleStyle.Render("Host"))
	fmt.Fprintf(w, "  %s %s\n", CmdStyle.Render("triplet:"), r.triplet)
	fmt.Fprintf(w, "  %s %s\n", CmdStyle.Render("preferred toolchain:"), r.preference)
	fmt.Fprintln(w)

	fmt.Fprintln(w, TitleStyle.Render("Configuration files"))
	if len(r.files) == 0 {
		fmt.Fprintf(w, "  %s\n", SubtitleStyle.Render("(none, using defaults)"))
	}
	for _, f := range r.files {
		fmt.Fprintf(w, "  %s\n", f)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, TitleStyle.Render("Search directories"))
	for _, d := range r.dirs {
		fmt.Fprintf(w, "  %s\n", d)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, TitleStyle.Render("Environment"))
	for _, key := range doctorVars() {
		value, ok := r.env.Lookup(key)
		if !ok || value == "" {
			fmt.Fprintf(w, "  %s %s\n", CmdStyle.Render(key+":"), SubtitleStyle.Render("(unset)"))
			continue
		}
		fmt.Fprintf(w, "  %s %s\n", CmdStyle.Render(key+":"), value)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, TitleStyle.Render("Resolution"))
	fmt.Fprintln(w, r.resolutionTable().Render())
	fmt.Fprintln(w)

	fmt.Fprintln(w, TitleStyle.Render("Candidates on disk"))
	fmt.Fprintln(w, r.candidateTable().Render())
}

// doctorVars lists the environment variables that influence resolution.
func doctorVars() []string {
	var keys []string
	for _, tool := range toolchain.Tools() {
		keys = append(keys, tool.OverrideVar())
	}
	for _, tool := range toolchain.Tools() {
		keys = append(keys, tool.HintVar())
	}
	return append(keys, toolchain.LinkerVar, config.EnvToolchain, config.EnvConfigFile, config.EnvLogLevel)
}

func (r doctorReport) resolutionTable() *table.Table {
	t := newDoctorTable("TOOL", "COMMAND", "FAMILY", "SOURCE")
	for _, tr := range r.tools {
		if tr.err != nil {
			t.Row(tr.tool.String(), ErrorStyle.Render(tr.err.Error()), "", "")
			continue
		}
		line, err := quoteCommand(append([]string{tr.resolution.Path}, tr.resolution.Args...))
		if err != nil {
			line = tr.resolution.Path
		}
		t.Row(tr.tool.String(), SuccessStyle.Render(line), tr.resolution.Family.String(), tr.resolution.Source.String())
	}
	return t
}

func (r doctorReport) candidateTable() *table.Table {
	t := newDoctorTable("TOOL", "CANDIDATE", "PATH", "STATUS")
	for _, tr := range r.tools {
		if len(tr.probes) == 0 {
			t.Row(tr.tool.String(), "", "", SubtitleStyle.Render("none found"))
			continue
		}
		for _, p := range tr.probes {
			t.Row(tr.tool.String(), p.Candidate.Name, p.Path, tr.status(p))
		}
	}
	return t
}

// status describes a probe relative to the tool's resolution.
func (tr toolReport) status(p toolchain.Probe) string {
	switch {
	case p.Self:
		return WarningStyle.Render("autocc, skipped")
	case tr.err == nil && p.Path == tr.resolution.Path:
		return SuccessStyle.Render("selected")
	default:
		return "found"
	}
}

func newDoctorTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(ColorMuted)).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeaderStyle
			}
			return tableCellStyle
		})
}
