// mperft-go - a bitboard perft engine in Go
// Copyright (c) 2024 mperft-go contributors
// Licensed under the MIT License. See LICENSE file for details.

// Package types holds the small value types shared by every other
// package: bitboards, squares, colors, pieces and packed moves.
package types

import "math/bits"

// Bitboard is a set of squares, one bit per square. Bit i corresponds to
// Square(i); rank 0 occupies the low byte.
type Bitboard uint64

// BbEmpty and BbAll are the empty and fully-occupied bitboards.
const (
	BbEmpty Bitboard = 0
	BbAll   Bitboard = 0xFFFFFFFFFFFFFFFF
)

// Has reports whether square sq is a member of b.
func (b Bitboard) Has(sq Square) bool {
	return b&sq.Bb() != 0
}

// Set returns b with sq added.
func (b Bitboard) Set(sq Square) Bitboard {
	return b | sq.Bb()
}

// Clear returns b with sq removed.
func (b Bitboard) Clear(sq Square) Bitboard {
	return b &^ sq.Bb()
}

// PopCount returns the number of set bits (the size of the set).
func (b Bitboard) PopCount() int {
	return bits.OnesCount64(uint64(b))
}

// LowestBitIndex returns the square of the least significant set bit.
// The result is undefined if b is empty.
func (b Bitboard) LowestBitIndex() Square {
	return Square(bits.TrailingZeros64(uint64(b)))
}

// PopLowest returns the square of the least significant set bit and the
// bitboard with that bit cleared.
func (b Bitboard) PopLowest() (Square, Bitboard) {
	sq := b.LowestBitIndex()
	return sq, b & (b - 1)
}

// ByteSwap reverses the eight bytes of b (a vertical board mirror).
func (b Bitboard) ByteSwap() Bitboard {
	return Bitboard(bits.ReverseBytes64(uint64(b)))
}

// IsSingle reports whether exactly one bit is set.
func (b Bitboard) IsSingle() bool {
	return b != 0 && b&(b-1) == 0
}
