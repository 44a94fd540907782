// mperft-go - a bitboard perft engine in Go
// Copyright (c) 2024 mperft-go contributors
// Licensed under the MIT License. See LICENSE file for details.

// Package position holds the board representation: an 8x8 piece grid,
// per-piece and per-color bitboards, and a preallocated per-ply stack
// of auxiliary state (pinned/checkers bitboards, castling rights, the
// en-passant square, the captured piece, and the Zobrist key). Boards
// are created once and mutated in place by MakeMove/UnmakeMove, which
// must always be called in matching pairs.
package position

import (
	"github.com/abulmo/mperft-go/types"
	"github.com/abulmo/mperft-go/zobrist"
)

// gameSize bounds the per-board ply stack; deeper perft searches fail
// cleanly (via a panic, caught nowhere - this is a programming error,
// not a runtime condition to recover from) rather than reallocate
// inside the hot loop.
const gameSize = 4096

// StackEntry is the per-ply auxiliary state pushed by MakeMove and
// popped by UnmakeMove.
type StackEntry struct {
	Pinned    types.Bitboard
	Checkers  types.Bitboard
	Castling  uint8
	Enpassant types.Square
	Victim    types.ColoredPiece
	Key       zobrist.Key
}

// Castling rights bits, as stored in StackEntry.Castling.
const (
	CastleWK uint8 = 1
	CastleWQ uint8 = 2
	CastleBK uint8 = 4
	CastleBQ uint8 = 8
)

// maskCastling[sq] is ANDed into the castling rights whenever a king or
// rook moves from, or is captured on, sq - it clears exactly the right
// that square's starting piece guarded.
var maskCastling = [64]uint8{
	13, 15, 15, 15, 12, 15, 15, 14,
	15, 15, 15, 15, 15, 15, 15, 15,
	15, 15, 15, 15, 15, 15, 15, 15,
	15, 15, 15, 15, 15, 15, 15, 15,
	15, 15, 15, 15, 15, 15, 15, 15,
	15, 15, 15, 15, 15, 15, 15, 15,
	15, 15, 15, 15, 15, 15, 15, 15,
	7, 15, 15, 15, 3, 15, 15, 11,
}

// Board is a chess position: the piece grid, per-piece/per-color
// bitboards, king squares, side to move, and the ply stack.
type Board struct {
	Grid  [64]types.ColoredPiece
	Piece [6]types.Bitboard
	Color [2]types.Bitboard

	KingSquare [2]types.Square
	Player     types.Color
	Ply        int

	stack [gameSize]StackEntry
	sp    int
}

// Current returns the stack entry for the position as it stands now.
func (b *Board) Current() *StackEntry {
	return &b.stack[b.sp]
}

func (b *Board) next() *StackEntry {
	return &b.stack[b.sp+1]
}

// Occupied returns the union of both colors' bitboards.
func (b *Board) Occupied() types.Bitboard {
	return b.Color[types.White] | b.Color[types.Black]
}

// InCheck reports whether the side to move's king is attacked.
func (b *Board) InCheck() bool {
	return b.Current().Checkers != types.BbEmpty
}

// startingCpiece is the initial grid, rank 1 to rank 8, matching
// NewPosition's hardcoded bitboards below.
var startingCpiece = [64]types.ColoredPiece{
	types.WRook, types.WKnight, types.WBishop, types.WQueen, types.WKing, types.WBishop, types.WKnight, types.WRook,
	types.WPawn, types.WPawn, types.WPawn, types.WPawn, types.WPawn, types.WPawn, types.WPawn, types.WPawn,
	types.Empty, types.Empty, types.Empty, types.Empty, types.Empty, types.Empty, types.Empty, types.Empty,
	types.Empty, types.Empty, types.Empty, types.Empty, types.Empty, types.Empty, types.Empty, types.Empty,
	types.Empty, types.Empty, types.Empty, types.Empty, types.Empty, types.Empty, types.Empty, types.Empty,
	types.Empty, types.Empty, types.Empty, types.Empty, types.Empty, types.Empty, types.Empty, types.Empty,
	types.BPawn, types.BPawn, types.BPawn, types.BPawn, types.BPawn, types.BPawn, types.BPawn, types.BPawn,
	types.BRook, types.BKnight, types.BBishop, types.BQueen, types.BKing, types.BBishop, types.BKnight, types.BRook,
}

// NewPosition returns a board set up at the standard chess starting
// position.
func NewPosition() *Board {
	b := &Board{}
	b.Grid = startingCpiece
	b.Piece[types.Pawn] = 0x00FF00000000FF00
	b.Piece[types.Knight] = 0x4200000000000042
	b.Piece[types.Bishop] = 0x2400000000000024
	b.Piece[types.Rook] = 0x8100000000000081
	b.Piece[types.Queen] = 0x0800000000000008
	b.Piece[types.King] = 0x1000000000000010
	b.Color[types.White] = 0x000000000000FFFF
	b.Color[types.Black] = 0xFFFF000000000000
	b.KingSquare[types.White] = types.SqE1
	b.KingSquare[types.Black] = types.SqE8
	b.Ply = 1

	cur := b.Current()
	cur.Castling = CastleWK | CastleWQ | CastleBK | CastleBQ
	cur.Enpassant = types.SqNone
	cur.Key = b.computeKey()

	b.generateCheckers()
	return b
}
