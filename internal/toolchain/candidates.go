// SPDX-License-Identifier: MPL-2.0

package toolchain

import (
	"slices"
)

// preprocessFlag turns a compiler driver into a preprocessor.
const preprocessFlag = "-E"

// Candidate is a binary name probed during filesystem resolution.
type Candidate struct {
	// Name is the binary base name (e.g. "clang", "x86_64-linux-gnu-gcc").
	Name string
	// Family is the vendor the name belongs to.
	Family Family
	// Args are leading arguments required to use the binary as the tool
	// (e.g. "-E" when a compiler driver stands in for cpp).
	Args []string

	// group orders native drivers before triplet-prefixed and generic names.
	group int
}

// Candidates returns the binary names probed for a tool, in priority order.
//
// Native drivers come first, then triplet-prefixed drivers, then the
// generic <triplet>-<tool> name. Within each group LLVM precedes GNU
// unless pref is PreferGNU. For cpp, the dedicated preprocessors are
// followed by the cc candidates run with -E.
func Candidates(tool Tool, triplet string, pref Preference) []Candidate {
	var list []Candidate

	switch tool {
	case ToolCPP:
		list = []Candidate{
			{Name: "clang-cpp", Family: FamilyLLVM, group: 0},
			{Name: "cpp", Family: FamilyGNU, group: 0},
		}
		if triplet != "" {
			list = append(list, Candidate{Name: triplet + "-cpp", Family: FamilyGNU, group: 1})
		}
		for _, c := range driverCandidates(ToolCC, triplet) {
			c.Args = []string{preprocessFlag}
			c.group += 2
			list = append(list, c)
		}
	default:
		list = driverCandidates(tool, triplet)
	}

	slices.SortStableFunc(list, func(a, b Candidate) int {
		if a.group != b.group {
			return a.group - b.group
		}
		return familyRank(a.Family, pref) - familyRank(b.Family, pref)
	})

	return list
}

// driverCandidates lists the compiler driver names for cc or c++.
func driverCandidates(tool Tool, triplet string) []Candidate {
	d := driversFor(tool)
	list := []Candidate{
		{Name: d.llvm, Family: FamilyLLVM, group: 0},
		{Name: d.gnu, Family: FamilyGNU, group: 0},
	}
	if triplet == "" {
		return list
	}
	return append(list,
		Candidate{Name: triplet + "-" + d.llvm, Family: FamilyLLVM, group: 1},
		Candidate{Name: triplet + "-" + d.gnu, Family: FamilyGNU, group: 1},
		Candidate{Name: triplet + "-" + string(tool), Family: FamilyUnknown, group: 2},
	)
}

// familyDrivers returns the candidates of a single family that live in
// the same directory as that family's linker. Used for LD hints.
func familyDrivers(tool Tool, family Family) []Candidate {
	d := driversFor(tool)
	name := d.gnu
	if family == FamilyLLVM {
		name = d.llvm
	}
	list := []Candidate{{Name: name, Family: family}}

	if tool == ToolCPP {
		cc := driversFor(ToolCC)
		ccName := cc.gnu
		if family == FamilyLLVM {
			ccName = cc.llvm
		}
		list = append(list, Candidate{Name: ccName, Family: family, Args: []string{preprocessFlag}})
	}
	return list
}

func familyRank(f Family, pref Preference) int {
	switch f {
	case FamilyLLVM:
		if pref == PreferGNU {
			return 1
		}
		return 0
	case FamilyGNU:
		if pref == PreferGNU {
			return 0
		}
		return 1
	default:
		return 2
	}
}
