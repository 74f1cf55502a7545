// SPDX-License-Identifier: MPL-2.0

// Package dispatch hands an invocation over to the resolved compiler.
//
// On Unix the autocc process image is replaced with execve(2), so the
// compiler inherits the PID, file descriptors, signal dispositions and
// environment, and its exit status is the invocation's exit status. Where
// exec is not available the compiler runs as a child process whose exit
// status is forwarded.
package dispatch
