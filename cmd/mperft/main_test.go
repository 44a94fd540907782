// mperft-go - a bitboard perft engine in Go
// Copyright (c) 2024 mperft-go contributors
// Licensed under the MIT License. See LICENSE file for details.

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunBareDepthArgument(t *testing.T) {
	assert.Equal(t, 0, run([]string{"3"}))
}

func TestRunWithFenAndDepthFlags(t *testing.T) {
	assert.Equal(t, 0, run([]string{"-f", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", "-d", "2", "-b"}))
}

func TestRunDivide(t *testing.T) {
	assert.Equal(t, 0, run([]string{"-d", "2", "-r"}))
}

func TestRunBadFenReturnsError(t *testing.T) {
	assert.Equal(t, 2, run([]string{"-f", "not-a-fen", "-d", "1"}))
}

func TestRunHelp(t *testing.T) {
	assert.Equal(t, 0, run([]string{"--help"}))
}

func TestRunSelfTestSubsetPasses(t *testing.T) {
	// Running the full 19-position self test is slow (position 6 alone
	// walks almost 7 billion leaves); exercise runTests' pass/fail wiring
	// against a fast reference case instead of the CLI's -t flag.
	fast := referenceCase{"fast check", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", 4, 197281}
	saved := referenceCases
	defer func() { referenceCases = saved }()
	referenceCases = []referenceCase{fast}

	assert.Equal(t, 0, runTests())
}
