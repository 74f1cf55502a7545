// SPDX-License-Identifier: MPL-2.0

package toolchain

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

const (
	// ToolCC is the C compiler driver.
	ToolCC Tool = "cc"
	// ToolCPP is the C preprocessor.
	ToolCPP Tool = "cpp"
	// ToolCXX is the C++ compiler driver.
	ToolCXX Tool = "c++"
)

var (
	// ErrUnknownTool is returned when autocc is invoked under a name that
	// does not identify a supported tool.
	ErrUnknownTool = errors.New("unknown tool")

	// invocationAliases maps invocation base names to tools. POSIX c89/c99
	// style names are plain C compiler drivers.
	invocationAliases = map[string]Tool{
		"cc":  ToolCC,
		"c89": ToolCC,
		"c99": ToolCC,
		"c11": ToolCC,
		"c17": ToolCC,
		"cpp": ToolCPP,
		"c++": ToolCXX,
	}
)

type (
	// Tool identifies which compiler role autocc is standing in for.
	Tool string

	// UnknownToolError is returned when a name does not map to a Tool.
	// It wraps ErrUnknownTool for errors.Is() compatibility.
	UnknownToolError struct {
		Name string
	}
)

// Tools returns every supported tool in display order.
func Tools() []Tool {
	return []Tool{ToolCC, ToolCPP, ToolCXX}
}

// String returns the string representation of the Tool.
func (t Tool) String() string { return string(t) }

// IsValid returns whether the Tool is one of the supported tools,
// and a list of validation errors if it is not.
func (t Tool) IsValid() (bool, []error) {
	switch t {
	case ToolCC, ToolCPP, ToolCXX:
		return true, nil
	default:
		return false, []error{&UnknownToolError{Name: string(t)}}
	}
}

// OverrideVar returns the environment variable that forces the compiler
// for this tool.
func (t Tool) OverrideVar() string {
	switch t {
	case ToolCPP:
		return "AUTOCC_CPP"
	case ToolCXX:
		return "AUTOCC_CXX"
	default:
		return "AUTOCC_CC"
	}
}

// HintVar returns the conventional make variable naming the compiler
// for this tool.
func (t Tool) HintVar() string {
	switch t {
	case ToolCPP:
		return "CPP"
	case ToolCXX:
		return "CXX"
	default:
		return "CC"
	}
}

// ConfigKey returns the key used for this tool under "overrides" in the
// configuration file. "c++" is spelled "cxx" to keep it a plain identifier.
func (t Tool) ConfigKey() string {
	if t == ToolCXX {
		return "cxx"
	}
	return string(t)
}

// Error implements the error interface for UnknownToolError.
func (e *UnknownToolError) Error() string {
	return fmt.Sprintf("unknown tool %q (valid: cc, cpp, c++)", e.Name)
}

// Unwrap returns ErrUnknownTool for errors.Is() compatibility.
func (e *UnknownToolError) Unwrap() error { return ErrUnknownTool }

// ParseTool parses a tool name given on the command line. Besides the
// invocation aliases it accepts "cxx" for c++.
func ParseTool(name string) (Tool, error) {
	if name == "cxx" {
		return ToolCXX, nil
	}
	if tool, ok := invocationAliases[name]; ok {
		return tool, nil
	}
	return "", &UnknownToolError{Name: name}
}

// ToolFromInvocation derives the tool from argv[0]. Directories are
// ignored, so /lib/cpp and /usr/bin/cpp are the same tool on usr-merged
// and split layouts alike. A target triplet prefix is accepted, so
// x86_64-linux-gnu-cc is the cc tool.
func ToolFromInvocation(argv0 string) (Tool, error) {
	base := InvocationBase(argv0)
	if tool, ok := invocationAliases[base]; ok {
		return tool, nil
	}
	if i := strings.LastIndexByte(base, '-'); i > 0 {
		if tool, ok := invocationAliases[base[i+1:]]; ok {
			return tool, nil
		}
	}
	return "", &UnknownToolError{Name: base}
}

// InvocationBase returns the base name of argv[0] without a Windows
// executable suffix.
func InvocationBase(argv0 string) string {
	base := filepath.Base(argv0)
	if ext := filepath.Ext(base); strings.EqualFold(ext, ".exe") {
		base = strings.TrimSuffix(base, ext)
	}
	return base
}
