// SPDX-License-Identifier: MPL-2.0

// Package platform describes the host autocc runs on.
//
// It centralizes GOOS name constants and computes the GNU target triplet
// (for example "x86_64-linux-gnu") that prefixes multiarch and cross
// compiler names such as x86_64-linux-gnu-gcc.
package platform
