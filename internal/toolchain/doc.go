// SPDX-License-Identifier: MPL-2.0

// Package toolchain decides which real compiler a cc, cpp or c++ invocation
// should run.
//
// Resolution is a single linear decision with a fixed priority order:
//  1. the per-tool override (AUTOCC_CC, AUTOCC_CPP, AUTOCC_CXX, then the
//     config file overrides),
//  2. the conventional compiler variable (CC, CPP, CXX),
//  3. the linker variable LD (a compiler driver next to the linker),
//  4. filesystem probing of known driver names over the search directories.
//
// The first step that yields an executable wins. A Prober abstracts the
// filesystem checks so the decision can be tested against temporary
// directories.
package toolchain
