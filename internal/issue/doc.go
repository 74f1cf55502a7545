// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly messages.
//
// ActionableError carries an operation, a resource and suggestions for
// one-line output; the issue catalog holds Markdown guides rendered with
// glamour when autocc runs as an interactive CLI.
package issue
