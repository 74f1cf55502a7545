// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/autocc/autocc/cmd/autocc"

func main() {
	cmd.Execute()
}
