// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"io"
	"os"

	"github.com/autocc/autocc/internal/config"
	"github.com/autocc/autocc/internal/dispatch"
	"github.com/autocc/autocc/internal/logging"
	"github.com/autocc/autocc/internal/toolchain"
)

type (
	// App wires CLI services and shared dependencies. It is the composition
	// root for both shim mode and the Cobra command tree.
	App struct {
		Config     config.Provider
		Prober     toolchain.Prober
		Dispatcher Dispatcher
		environ    func() []string
		stdout     io.Writer
		stderr     io.Writer
	}

	// Dependencies defines the injection points for building an App. Nil fields
	// are replaced with production defaults by NewApp.
	Dependencies struct {
		Config     config.Provider
		Prober     toolchain.Prober
		Dispatcher Dispatcher
		Environ    func() []string
		Stdout     io.Writer
		Stderr     io.Writer
	}

	// Dispatcher hands a resolved request over to the compiler.
	Dispatcher interface {
		Dispatch(ctx context.Context, req toolchain.Request, res toolchain.Resolution) error
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) *App {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.Prober == nil {
		deps.Prober = toolchain.NewOSProber()
	}
	if deps.Dispatcher == nil {
		deps.Dispatcher = dispatch.New(nil)
	}
	if deps.Environ == nil {
		deps.Environ = os.Environ
	}

	return &App{
		Config:     deps.Config,
		Prober:     deps.Prober,
		Dispatcher: deps.Dispatcher,
		environ:    deps.Environ,
		stdout:     deps.Stdout,
		stderr:     deps.Stderr,
	}
}

// env returns a snapshot of the process environment.
func (a *App) env() toolchain.Environ {
	return toolchain.Environ(a.environ())
}

// loadConfig loads configuration. An empty path falls back to AUTOCC_CONFIG.
func (a *App) loadConfig(ctx context.Context, path string) (*config.Config, []string, error) {
	if path == "" {
		path = a.env().Get(config.EnvConfigFile)
	}
	return a.Config.Load(ctx, config.LoadOptions{ConfigFilePath: path})
}

// newResolver builds a resolver from cfg using the App's prober.
func (a *App) newResolver(cfg *config.Config) *toolchain.Resolver {
	opts := cfg.ResolverOptions()
	opts.Prober = a.Prober
	return toolchain.NewResolver(opts)
}

// run resolves req and hands it to the compiler. On Unix a successful run
// does not return.
func (a *App) run(ctx context.Context, cfg *config.Config, req toolchain.Request) error {
	res, err := a.newResolver(cfg).Resolve(ctx, req)
	if err != nil {
		return err
	}
	return a.Dispatcher.Dispatch(ctx, req, res)
}

// cliConfig loads configuration for a CLI command and applies its log
// level unless --verbose or AUTOCC_LOG_LEVEL already chose one.
func (a *App) cliConfig(ctx context.Context, flags *rootFlags) (*config.Config, []string, error) {
	cfg, files, err := a.loadConfig(ctx, flags.cfgFile)
	if err != nil {
		return nil, nil, err
	}
	if !flags.verbose && a.env().Get(config.EnvLogLevel) == "" {
		logging.Setup(a.stderr, cfg.Log.Level)
	}
	return cfg, files, nil
}
