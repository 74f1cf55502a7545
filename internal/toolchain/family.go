// SPDX-License-Identifier: MPL-2.0

package toolchain

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// FamilyLLVM is the clang/LLVM toolchain.
	FamilyLLVM Family = "llvm"
	// FamilyGNU is the GCC toolchain.
	FamilyGNU Family = "gnu"
	// FamilyUnknown is used when the vendor of a binary cannot be told
	// from its name (overrides, generic <triplet>-cc drivers).
	FamilyUnknown Family = "unknown"

	// PreferAuto keeps the default candidate order (LLVM first).
	PreferAuto Preference = "auto"
	// PreferLLVM tries LLVM drivers before GNU drivers.
	PreferLLVM Preference = "llvm"
	// PreferGNU tries GNU drivers before LLVM drivers.
	PreferGNU Preference = "gnu"
)

// ErrInvalidPreference is returned when a Preference value is not recognized.
var ErrInvalidPreference = errors.New("invalid toolchain preference")

type (
	// Family identifies a compiler vendor.
	Family string

	// Preference selects which family filesystem probing tries first.
	Preference string

	// InvalidPreferenceError is returned when a Preference value is not recognized.
	// It wraps ErrInvalidPreference for errors.Is() compatibility.
	InvalidPreferenceError struct {
		Value Preference
	}

	// drivers names the native driver binaries of both families for one tool.
	drivers struct {
		llvm string
		gnu  string
	}
)

// String returns the string representation of the Family.
func (f Family) String() string { return string(f) }

// String returns the string representation of the Preference.
func (p Preference) String() string { return string(p) }

// IsValid returns whether the Preference is one of the defined values,
// and a list of validation errors if it is not.
func (p Preference) IsValid() (bool, []error) {
	switch p {
	case PreferAuto, PreferLLVM, PreferGNU:
		return true, nil
	default:
		return false, []error{&InvalidPreferenceError{Value: p}}
	}
}

// Error implements the error interface for InvalidPreferenceError.
func (e *InvalidPreferenceError) Error() string {
	return fmt.Sprintf("invalid toolchain preference %q (valid: auto, llvm, gnu)", e.Value)
}

// Unwrap returns ErrInvalidPreference for errors.Is() compatibility.
func (e *InvalidPreferenceError) Unwrap() error { return ErrInvalidPreference }

// driversFor returns the driver names for a tool.
func driversFor(tool Tool) drivers {
	switch tool {
	case ToolCPP:
		return drivers{llvm: "clang-cpp", gnu: "cpp"}
	case ToolCXX:
		return drivers{llvm: "clang++", gnu: "g++"}
	default:
		return drivers{llvm: "clang", gnu: "gcc"}
	}
}

// FamilyOf guesses the family of a compiler binary for the given tool
// from its base name. It recognizes the plain driver (clang), a version
// suffix (gcc-13), a triplet prefix (x86_64-linux-gnu-gcc) and both
// combined (x86_64-linux-gnu-gcc-13). LLVM names are checked first since
// clang-cpp would otherwise look like a prefixed cpp.
func FamilyOf(tool Tool, name string) Family {
	base := InvocationBase(name)
	d := driversFor(tool)
	switch {
	case matchesDriver(base, d.llvm):
		return FamilyLLVM
	case matchesDriver(base, d.gnu):
		return FamilyGNU
	default:
		return FamilyUnknown
	}
}

func matchesDriver(base, driver string) bool {
	if base == driver {
		return true
	}
	if rest, ok := strings.CutPrefix(base, driver+"-"); ok && isVersion(rest) {
		return true
	}
	if strings.HasSuffix(base, "-"+driver) {
		return true
	}
	if i := strings.LastIndex(base, "-"+driver+"-"); i >= 0 {
		return isVersion(base[i+len(driver)+2:])
	}
	return false
}

// isVersion reports whether s looks like a version suffix such as "13"
// or "18.1".
func isVersion(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if (r < '0' || r > '9') && r != '.' {
			return false
		}
	}
	return true
}
