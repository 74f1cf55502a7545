// SPDX-License-Identifier: MPL-2.0

package toolchain

import (
	"log/slog"
	"strings"

	"mvdan.cc/sh/v3/shell"
)

// LinkerVar is the make variable naming the linker.
const LinkerVar = "LD"

// splitWords splits a make-style variable value into words the way a POSIX
// shell would, so CC="clang --target='x86_64 linux'" keeps quoted words
// intact. Parameter expansion reads from env; command substitution is
// rejected by the parser.
func splitWords(value string, env Environ) ([]string, error) {
	return shell.Fields(value, env.Get)
}

// linkerFamily reports which toolchain a linker binary belongs to.
// lld, ld.lld and ld64.lld are LLVM; ld and ld.<variant> (bfd, gold) are GNU.
func linkerFamily(base string) Family {
	switch {
	case base == "lld", base == "ld.lld", base == "ld64.lld":
		return FamilyLLVM
	case base == "ld", strings.HasPrefix(base, "ld."):
		return FamilyGNU
	default:
		return FamilyUnknown
	}
}

// compilerHint parses the tool's compiler variable (CC, CPP or CXX).
// It returns the words of the value and the family named by the first
// word, or ok=false when the variable is unset, unparsable or names a
// compiler autocc does not recognize.
func compilerHint(tool Tool, env Environ) (words []string, family Family, ok bool) {
	name := tool.HintVar()
	value := strings.TrimSpace(env.Get(name))
	if value == "" {
		return nil, "", false
	}

	words, err := splitWords(value, env)
	if err != nil {
		slog.Debug("ignoring unparsable compiler variable", "var", name, "value", value, "error", err)
		return nil, "", false
	}
	if len(words) == 0 {
		return nil, "", false
	}

	family = FamilyOf(tool, words[0])
	if family == FamilyUnknown {
		slog.Debug("ignoring compiler variable naming an unrecognized compiler", "var", name, "value", value)
		return nil, "", false
	}
	return words, family, true
}

// linkerHint parses LD and returns the linker word and its family.
func linkerHint(env Environ) (linker string, family Family, ok bool) {
	value := strings.TrimSpace(env.Get(LinkerVar))
	if value == "" {
		return "", "", false
	}

	words, err := splitWords(value, env)
	if err != nil || len(words) == 0 {
		slog.Debug("ignoring unparsable linker variable", "value", value, "error", err)
		return "", "", false
	}

	family = linkerFamily(InvocationBase(words[0]))
	if family == FamilyUnknown {
		slog.Debug("ignoring linker variable naming an unrecognized linker", "value", value)
		return "", "", false
	}
	return words[0], family, true
}
