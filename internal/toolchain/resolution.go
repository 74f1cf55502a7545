// SPDX-License-Identifier: MPL-2.0

package toolchain

const (
	// SourceOverride means an explicit AUTOCC_* variable or config override decided.
	SourceOverride Source = "override"
	// SourceEnvironment means the CC/CPP/CXX variable decided.
	SourceEnvironment Source = "environment"
	// SourceLinker means a driver next to the LD linker decided.
	SourceLinker Source = "linker"
	// SourceFilesystem means probing the search directories decided.
	SourceFilesystem Source = "filesystem"
)

type (
	// Source records which resolution step produced a Resolution.
	Source string

	// Request is everything a single invocation knows when it starts.
	Request struct {
		// Name is argv[0] exactly as autocc was invoked.
		Name string
		// Tool is the tool to resolve. When empty it is derived from Name.
		Tool Tool
		// Args are the arguments to forward, argv[1:]. They are opaque.
		Args []string
		// Env is the process environment to read hints from and forward.
		Env Environ
	}

	// Resolution is the outcome of resolving a Request.
	Resolution struct {
		Tool   Tool     `json:"tool"`
		Path   string   `json:"path"`
		Args   []string `json:"args,omitempty"`
		Family Family   `json:"family"`
		Source Source   `json:"source"`
	}
)

// String returns the string representation of the Source.
func (s Source) String() string { return string(s) }
