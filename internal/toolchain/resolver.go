// SPDX-License-Identifier: MPL-2.0

package toolchain

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"path/filepath"
	"slices"
	"strings"

	"github.com/autocc/autocc/internal/platform"
)

// DefaultSearchPath is probed when PATH is unset or empty.
const DefaultSearchPath = "/usr/local/bin:/usr/bin:/bin"

type (
	// Options configures a Resolver. Zero fields get production defaults.
	Options struct {
		// Prober answers filesystem questions. Defaults to NewOSProber().
		Prober Prober
		// Triplet is the GNU target triplet used for prefixed driver names.
		// Defaults to platform.HostTriplet().
		Triplet string
		// Preference reorders filesystem candidates. Defaults to PreferAuto.
		Preference Preference
		// SearchPaths are probed before the entries of PATH.
		SearchPaths []string
		// Overrides are config-file overrides, ranked below the
		// AUTOCC_* environment variables.
		Overrides map[Tool]string
	}

	// Resolver turns a Request into a Resolution.
	Resolver struct {
		prober      Prober
		triplet     string
		preference  Preference
		searchPaths []string
		overrides   map[Tool]string
	}

	// Probe is one candidate path examined during filesystem resolution.
	Probe struct {
		Candidate Candidate
		Path      string
		// Found is true when Path is an executable that is not autocc.
		Found bool
		// Self is true when Path is autocc itself.
		Self bool
	}
)

// NewResolver creates a Resolver from opts.
func NewResolver(opts Options) *Resolver {
	if opts.Prober == nil {
		opts.Prober = NewOSProber()
	}
	if opts.Triplet == "" {
		opts.Triplet = platform.HostTriplet()
	}
	if opts.Preference == "" {
		opts.Preference = PreferAuto
	}
	return &Resolver{
		prober:      opts.Prober,
		triplet:     opts.Triplet,
		preference:  opts.Preference,
		searchPaths: slices.Clone(opts.SearchPaths),
		overrides:   maps.Clone(opts.Overrides),
	}
}

// Triplet returns the target triplet used for prefixed names.
func (r *Resolver) Triplet() string { return r.triplet }

// Resolve decides which binary serves req. The steps run in a fixed order
// and the first one that yields an executable wins:
// override, compiler variable, linker variable, filesystem.
//
// An override that is set but unusable is an error; it never falls
// through to later steps.
func (r *Resolver) Resolve(ctx context.Context, req Request) (Resolution, error) {
	select {
	case <-ctx.Done():
		return Resolution{}, fmt.Errorf("resolve canceled: %w", ctx.Err())
	default:
	}

	tool := req.Tool
	if tool == "" {
		t, err := ToolFromInvocation(req.Name)
		if err != nil {
			return Resolution{}, err
		}
		tool = t
	}

	dirs := r.SearchDirs(req.Env)
	logger := slog.With("tool", tool)

	res, ok, err := r.fromOverride(tool, req.Env, dirs)
	if err != nil {
		return Resolution{}, err
	}
	if ok {
		logger.Debug("resolved from override", "path", res.Path)
		return res, nil
	}

	if res, ok := r.fromCompilerVar(tool, req.Env, dirs); ok {
		logger.Debug("resolved from compiler variable", "var", tool.HintVar(), "path", res.Path, "args", res.Args)
		return res, nil
	}

	if res, ok := r.fromLinkerVar(tool, req.Env, dirs); ok {
		logger.Debug("resolved from linker variable", "path", res.Path)
		return res, nil
	}

	if res, ok := r.fromFilesystem(tool, dirs); ok {
		logger.Debug("resolved from filesystem", "path", res.Path, "family", res.Family)
		return res, nil
	}

	return Resolution{}, &CompilerNotFoundError{Tool: tool, SearchDirs: dirs}
}

// SearchDirs returns the directories probed for env: configured search
// paths first, then PATH (DefaultSearchPath when unset). Relative entries
// are skipped so the working directory can never supply the compiler,
// and duplicates keep their first position.
func (r *Resolver) SearchDirs(env Environ) []string {
	path := env.Get("PATH")
	if path == "" {
		path = DefaultSearchPath
	}

	entries := append(slices.Clone(r.searchPaths), filepath.SplitList(path)...)
	seen := make(map[string]bool, len(entries))
	dirs := make([]string, 0, len(entries))
	for _, dir := range entries {
		if dir == "" {
			continue
		}
		if !filepath.IsAbs(dir) {
			slog.Debug("skipping relative search directory", "dir", dir)
			continue
		}
		dir = filepath.Clean(dir)
		if seen[dir] {
			continue
		}
		seen[dir] = true
		dirs = append(dirs, dir)
	}
	return dirs
}

// Survey lists the executables present for tool's filesystem candidates,
// in probe order. Copies of autocc are kept and marked Self; the first
// Found entry is what Resolve would pick at the filesystem step.
func (r *Resolver) Survey(tool Tool, env Environ) []Probe {
	dirs := r.SearchDirs(env)
	var probes []Probe
	for _, c := range Candidates(tool, r.triplet, r.preference) {
		for _, dir := range dirs {
			path := filepath.Join(dir, executableName(c.Name))
			if !r.prober.IsExecutable(path) {
				continue
			}
			self := r.prober.IsSelf(path)
			probes = append(probes, Probe{Candidate: c, Path: path, Found: !self, Self: self})
		}
	}
	return probes
}

func (r *Resolver) fromOverride(tool Tool, env Environ, dirs []string) (Resolution, bool, error) {
	origin := tool.OverrideVar()
	value := env.Get(origin)
	if value == "" {
		if v := r.overrides[tool]; v != "" {
			origin = "overrides." + tool.ConfigKey()
			value = v
		}
	}
	if value == "" {
		return Resolution{}, false, nil
	}

	var path string
	if hasDir(value) {
		switch {
		case !r.prober.IsExecutable(value):
			return Resolution{}, false, &InvalidOverrideError{Origin: origin, Value: value, Reason: "not an executable file"}
		case r.prober.IsSelf(value):
			return Resolution{}, false, &InvalidOverrideError{Origin: origin, Value: value, Reason: "refers back to autocc"}
		}
		path = value
	} else {
		found, ok := r.lookIn(dirs, value)
		if !ok {
			return Resolution{}, false, &InvalidOverrideError{Origin: origin, Value: value, Reason: "not found in search directories"}
		}
		path = found
	}

	return Resolution{
		Tool:   tool,
		Path:   path,
		Family: FamilyOf(tool, path),
		Source: SourceOverride,
	}, true, nil
}

func (r *Resolver) fromCompilerVar(tool Tool, env Environ, dirs []string) (Resolution, bool) {
	words, family, ok := compilerHint(tool, env)
	if !ok {
		return Resolution{}, false
	}

	path, ok := r.locate(words[0], dirs)
	if !ok {
		slog.Debug("compiler variable names a missing compiler", "var", tool.HintVar(), "compiler", words[0])
		return Resolution{}, false
	}

	var args []string
	if len(words) > 1 {
		args = slices.Clone(words[1:])
	}
	return Resolution{Tool: tool, Path: path, Args: args, Family: family, Source: SourceEnvironment}, true
}

func (r *Resolver) fromLinkerVar(tool Tool, env Environ, dirs []string) (Resolution, bool) {
	linker, family, ok := linkerHint(env)
	if !ok {
		return Resolution{}, false
	}

	var dir string
	if hasDir(linker) {
		dir = filepath.Dir(linker)
	} else {
		found, ok := r.lookIn(dirs, linker)
		if !ok {
			slog.Debug("linker variable names a missing linker", "linker", linker)
			return Resolution{}, false
		}
		dir = filepath.Dir(found)
	}

	for _, c := range familyDrivers(tool, family) {
		path := filepath.Join(dir, executableName(c.Name))
		if r.usable(path) {
			return Resolution{Tool: tool, Path: path, Args: slices.Clone(c.Args), Family: family, Source: SourceLinker}, true
		}
	}
	slog.Debug("no compiler driver next to linker", "linker", linker, "dir", dir)
	return Resolution{}, false
}

func (r *Resolver) fromFilesystem(tool Tool, dirs []string) (Resolution, bool) {
	for _, c := range Candidates(tool, r.triplet, r.preference) {
		if path, ok := r.lookIn(dirs, c.Name); ok {
			return Resolution{Tool: tool, Path: path, Args: slices.Clone(c.Args), Family: c.Family, Source: SourceFilesystem}, true
		}
	}
	return Resolution{}, false
}

// locate finds word as given when it has a directory part, or in dirs.
func (r *Resolver) locate(word string, dirs []string) (string, bool) {
	if hasDir(word) {
		return word, r.usable(word)
	}
	return r.lookIn(dirs, word)
}

// lookIn returns the first usable dir/name.
func (r *Resolver) lookIn(dirs []string, name string) (string, bool) {
	name = executableName(name)
	for _, dir := range dirs {
		path := filepath.Join(dir, name)
		if r.usable(path) {
			return path, true
		}
	}
	return "", false
}

// usable reports whether path is an executable other than autocc.
func (r *Resolver) usable(path string) bool {
	return r.prober.IsExecutable(path) && !r.prober.IsSelf(path)
}

// hasDir reports whether a command word contains a directory part and so
// must not be looked up in the search directories.
func hasDir(word string) bool {
	return strings.ContainsRune(word, '/') || strings.ContainsRune(word, filepath.Separator)
}
