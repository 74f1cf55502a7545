// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the autocc entry point.
//
// A single binary serves two roles. Invoked under a tool name such as cc,
// cpp or c++ it resolves the real compiler and replaces itself with it
// (shim mode). Invoked as autocc it runs the Cobra command tree for
// inspecting and configuring that resolution.
package cmd
