// mperft-go - a bitboard perft engine in Go
// Copyright (c) 2024 mperft-go contributors
// Licensed under the MIT License. See LICENSE file for details.

package position

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abulmo/mperft-go/attacks"
	"github.com/abulmo/mperft-go/types"
	"github.com/abulmo/mperft-go/zobrist"
)

func init() {
	attacks.Init()
	zobrist.Init()
}

func TestNewPositionMatchesFENOfStartingPosition(t *testing.T) {
	fromFEN, err := NewPositionFEN("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
	assert.NoError(t, err)
	fromInit := NewPosition()

	assert.Equal(t, fromInit.Grid, fromFEN.Grid)
	assert.Equal(t, fromInit.Piece, fromFEN.Piece)
	assert.Equal(t, fromInit.Color, fromFEN.Color)
	assert.Equal(t, fromInit.KingSquare, fromFEN.KingSquare)
	assert.Equal(t, fromInit.Current().Castling, fromFEN.Current().Castling)
	assert.Equal(t, fromInit.Current().Key, fromFEN.Current().Key)
}

func TestStartingPositionNotInCheck(t *testing.T) {
	b := NewPosition()
	assert.False(t, b.InCheck())
	assert.Equal(t, types.BbEmpty, b.Current().Pinned)
}

func TestMakeUnmakeRestoresBoard(t *testing.T) {
	b := NewPosition()
	before := *b

	move := types.NewMove(types.SqE2, types.SqE4)
	b.MakeMove(move)
	assert.NotEqual(t, before.Grid, b.Grid)
	b.UnmakeMove(move)

	assert.Equal(t, before.Grid, b.Grid)
	assert.Equal(t, before.Piece, b.Piece)
	assert.Equal(t, before.Color, b.Color)
	assert.Equal(t, before.Player, b.Player)
	assert.Equal(t, before.KingSquare, b.KingSquare)
	assert.Equal(t, before.Current().Key, b.Current().Key)
}

func TestIncrementalKeyMatchesFromScratchRecomputation(t *testing.T) {
	b := NewPosition()
	assert.Equal(t, b.computeKey(), b.Current().Key)

	b.MakeMove(types.NewMove(types.SqE2, types.SqE4))
	assert.Equal(t, b.computeKey(), b.Current().Key)

	b.MakeMove(types.NewMove(types.SqE7, types.SqE5))
	assert.Equal(t, b.computeKey(), b.Current().Key)
}

func TestDoublePushOpensEnpassantOnlyWhenAdjacentEnemyPawnExists(t *testing.T) {
	b, err := NewPositionFEN("8/8/8/8/8/8/PPPPPPPP/4K2k w - - 0 1")
	assert.NoError(t, err)
	b.MakeMove(types.NewMove(types.SqA2, types.SqA4))
	assert.Equal(t, types.SqNone, b.Current().Enpassant)

	b2, err := NewPositionFEN("8/8/8/8/1p6/8/PPPPPPPP/4K2k w - - 0 1")
	assert.NoError(t, err)
	b2.MakeMove(types.NewMove(types.SqA2, types.SqA4))
	assert.Equal(t, types.SqA3, b2.Current().Enpassant)
}

func TestEnpassantCapture(t *testing.T) {
	// b5 pawn can capture en passant on c6 because a black pawn just
	// double-pushed to c5, recorded directly via the FEN's ep field.
	b, err := NewPositionFEN("8/8/8/1Pp4r/1R3p1k/8/4P1P1/K6k w - c6 0 1")
	assert.NoError(t, err)
	before := *b

	capture := types.NewMove(types.SqB5, types.SqC6)
	b.MakeMove(capture)
	assert.Equal(t, types.Empty, b.Grid[types.SqC5])
	assert.Equal(t, types.WPawn, b.Grid[types.SqC6])
	b.UnmakeMove(capture)

	assert.Equal(t, before.Grid, b.Grid)
	assert.Equal(t, before.Piece, b.Piece)
	assert.Equal(t, before.Color, b.Color)
}

func TestCastlingMovesRookAndUpdatesRights(t *testing.T) {
	b, err := NewPositionFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	assert.NoError(t, err)
	before := *b

	move := types.NewMove(types.SqE1, types.SqG1)
	b.MakeMove(move)
	assert.Equal(t, types.WRook, b.Grid[types.SqF1])
	assert.Equal(t, types.Empty, b.Grid[types.SqH1])
	assert.Equal(t, types.SqG1, b.KingSquare[types.White])
	assert.Equal(t, uint8(CastleBK|CastleBQ), b.Current().Castling)

	b.UnmakeMove(move)
	assert.Equal(t, before.Grid, b.Grid)
	assert.Equal(t, before.KingSquare, b.KingSquare)
}

func TestPromotionReplacesPawn(t *testing.T) {
	b, err := NewPositionFEN("4k3/P7/8/8/8/8/8/4K3 w - - 0 1")
	assert.NoError(t, err)
	before := *b

	move := types.NewPromotionMove(types.SqA7, types.SqA8, types.QueenPromotion)
	b.MakeMove(move)
	assert.Equal(t, types.WQueen, b.Grid[types.SqA8])
	assert.Equal(t, types.BbEmpty, b.Piece[types.Pawn]&types.SqA8.Bb())

	b.UnmakeMove(move)
	assert.Equal(t, before.Grid, b.Grid)
	assert.Equal(t, before.Piece, b.Piece)
}

func TestParseErrorOnMalformedFEN(t *testing.T) {
	_, err := NewPositionFEN("not-a-fen")
	assert.Error(t, err)
	var parseErr *ParseError
	assert.ErrorAs(t, err, &parseErr)
}

func TestGenerateCheckersDetectsDirectCheck(t *testing.T) {
	b, err := NewPositionFEN("4k3/8/8/8/8/8/8/R3K3 b - - 0 1")
	assert.NoError(t, err)
	assert.False(t, b.InCheck())

	b2, err := NewPositionFEN("k3r3/8/8/8/8/8/8/4K3 w - - 0 1")
	assert.NoError(t, err)
	assert.True(t, b2.InCheck())
}

func TestGenerateCheckersDetectsPin(t *testing.T) {
	b, err := NewPositionFEN("4k3/8/8/8/r3R2K/8/8/8 w - - 0 1")
	assert.NoError(t, err)
	assert.True(t, b.Current().Pinned.Has(types.SqE4))
}
