// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/autocc/autocc/internal/config"
	"github.com/autocc/autocc/internal/dispatch"
	"github.com/autocc/autocc/internal/logging"
	"github.com/autocc/autocc/internal/toolchain"
)

// runShim behaves as the compiler named by argv[0]. Every argument is
// forwarded untouched; autocc takes no flags in this mode.
func (a *App) runShim(ctx context.Context, argv []string) dispatch.ExitCode {
	env := a.env()
	logging.Setup(a.stderr, levelFromEnv(env))

	var req toolchain.Request
	req.Env = env
	if len(argv) > 0 {
		req.Name = argv[0]
		req.Args = argv[1:]
	}

	err := a.run(ctx, a.shimConfig(ctx, env), req)
	if err == nil {
		return dispatch.ExitOK
	}

	var status *dispatch.ExitStatusError
	if errors.As(err, &status) {
		return dispatch.ExitCodeFor(err)
	}

	fmt.Fprintln(a.stderr, "autocc: "+describeFailure(req, err).Format(false))
	return dispatch.ExitCodeFor(err)
}

// shimConfig loads configuration for shim mode. Load errors are logged and
// the defaults used.
func (a *App) shimConfig(ctx context.Context, env toolchain.Environ) *config.Config {
	cfg, files, err := a.loadConfig(ctx, "")
	if err != nil {
		slog.Warn("ignoring configuration", "error", err)
		return config.DefaultConfig()
	}
	if env.Get(config.EnvLogLevel) == "" {
		logging.Setup(a.stderr, cfg.Log.Level)
	}
	slog.Debug("shim configuration", "files", files, "preferred", cfg.Toolchain.Preferred)
	return cfg
}

// levelFromEnv reads AUTOCC_LOG_LEVEL, falling back to the default level.
func levelFromEnv(env toolchain.Environ) logging.Level {
	level := logging.Level(env.Get(config.EnvLogLevel))
	if ok, _ := level.IsValid(); !ok {
		return logging.DefaultLevel
	}
	return level
}
