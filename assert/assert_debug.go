// +build debug

// mperft-go - a bitboard perft engine in Go
// Copyright (c) 2024 mperft-go contributors
// Licensed under the MIT License. See LICENSE file for details.

package assert

import "fmt"

// DEBUG is true in a build tagged `debug`; every guarded assertion runs.
const DEBUG = true

// Assert panics with msg (formatted as fmt.Sprintf) if test is false.
func Assert(test bool, msg string, a ...interface{}) {
	if !test {
		panic(fmt.Sprintf(msg, a...))
	}
}
