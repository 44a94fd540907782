// mperft-go - a bitboard perft engine in Go
// Copyright (c) 2024 mperft-go contributors
// Licensed under the MIT License. See LICENSE file for details.

package movegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abulmo/mperft-go/attacks"
	"github.com/abulmo/mperft-go/position"
	"github.com/abulmo/mperft-go/tt"
	"github.com/abulmo/mperft-go/zobrist"
)

func init() {
	attacks.Init()
	zobrist.Init()
}

// referencePositions takes ten positions of the 19-position self-test
// table recovered from the reference perft tool (the first two at a
// lower depth than the table uses), each (fen, depth, leaves) triple
// independently verified against known perft results.
var referencePositions = []struct {
	name   string
	fen    string
	depth  int
	leaves uint64
}{
	{"initial position, depth 5", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", 5, 4865609},
	{"kiwipete, depth 4", "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", 4, 4085603},
	{"endgame position, depth 7", "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", 7, 178633661},
	{"en-passant pin, depth 6", "8/5bk1/8/2Pp4/8/1K6/8/8 w - d6 0 1", 6, 824064},
	{"short castling gives check, depth 6", "5k2/8/8/8/8/8/8/4K2R w K - 0 1", 6, 661072},
	{"long castling gives check, depth 6", "3k4/8/8/8/8/8/8/R3K3 w Q - 0 1", 6, 803711},
	{"castling, depth 4", "r3k2r/1b4bq/8/8/8/8/7B/R3K2R w KQkq - 0 1", 4, 1274206},
	{"promote out of check, depth 6", "2K2r2/4P3/8/8/8/8/8/3k4 w - - 0 1", 6, 3821001},
	{"self stalemate, depth 6", "K1k5/8/P7/8/8/8/8/8 w - - 0 1", 6, 2217},
	{"double check, depth 4", "8/8/2k5/5q2/5n2/8/5K2/8 b - - 0 1", 4, 23527},
}

func TestCountMatchesReferencePositionsNoBulkNoHash(t *testing.T) {
	for _, tc := range referencePositions {
		t.Run(tc.name, func(t *testing.T) {
			b, err := position.NewPositionFEN(tc.fen)
			require.NoError(t, err)
			assert.Equal(t, tc.leaves, Count(b, tc.depth, false, true, nil))
		})
	}
}

func TestCountMatchesReferencePositionsBulk(t *testing.T) {
	for _, tc := range referencePositions {
		t.Run(tc.name, func(t *testing.T) {
			b, err := position.NewPositionFEN(tc.fen)
			require.NoError(t, err)
			assert.Equal(t, tc.leaves, Count(b, tc.depth, true, true, nil))
		})
	}
}

func TestCountMatchesReferencePositionsWithHash(t *testing.T) {
	for _, tc := range referencePositions {
		t.Run(tc.name, func(t *testing.T) {
			b, err := position.NewPositionFEN(tc.fen)
			require.NoError(t, err)
			cache := tt.New(16)
			assert.Equal(t, tc.leaves, Count(b, tc.depth, true, true, cache))
		})
	}
}

func TestDivideSumsToTotalCount(t *testing.T) {
	b, err := position.NewPositionFEN("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
	require.NoError(t, err)

	entries := Divide(b, 4, true, true, nil)
	var total uint64
	for _, e := range entries {
		total += e.Nodes
	}
	assert.Equal(t, Count(b, 4, true, true, nil), total)
	assert.Len(t, entries, 20) // 20 legal moves from the starting position
}

func TestVerboseCountsKnownCategoriesAtDepthOne(t *testing.T) {
	// White to move, pawn on e5 can capture en passant on d6; rook check
	// available via Rd1+ style discovered patterns are not needed here -
	// just confirm the en-passant capture itself is tallied correctly.
	b, err := position.NewPositionFEN("8/8/8/3pP3/8/8/8/4K2k w - d6 0 1")
	require.NoError(t, err)

	p := Verbose(b, 1)
	assert.Equal(t, uint64(1), p.EnPassants)
	assert.Equal(t, uint64(1), p.Captures)
}

func TestVerboseCountsCastles(t *testing.T) {
	b, err := position.NewPositionFEN("4k3/8/8/8/8/8/8/4K2R w K - 0 1")
	require.NoError(t, err)

	p := Verbose(b, 1)
	assert.Equal(t, uint64(1), p.Castles)
}

func TestVerboseCountsCheckmate(t *testing.T) {
	// One move before fool's mate: black's queen delivers Qh4#.
	b, err := position.NewPositionFEN("rnbqkbnr/pppp1ppp/8/4p3/6P1/5P2/PPPPP2P/RNBQKBNR b KQkq - 0 2")
	require.NoError(t, err)

	p := Verbose(b, 1)
	assert.Equal(t, uint64(1), p.Checks)
	assert.Equal(t, uint64(1), p.CheckMates)
}
