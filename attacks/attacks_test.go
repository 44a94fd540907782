// mperft-go - a bitboard perft engine in Go
// Copyright (c) 2024 mperft-go contributors
// Licensed under the MIT License. See LICENSE file for details.

package attacks

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abulmo/mperft-go/types"
)

func TestMain(t *testing.T) {
	Init()
}

func TestInitIsIdempotent(t *testing.T) {
	Init()
	first := Masks
	Init()
	assert.Equal(t, first, Masks)
}

func TestKnightAttackCorner(t *testing.T) {
	Init()
	want := types.SqB3.Bb() | types.SqC2.Bb()
	assert.Equal(t, want, KnightAttack(types.SqA1))
}

func TestKingAttackCorner(t *testing.T) {
	Init()
	want := types.SqA2.Bb() | types.SqB1.Bb() | types.SqB2.Bb()
	assert.Equal(t, want, KingAttack(types.SqA1))
}

func TestPawnAttackFromCorner(t *testing.T) {
	Init()
	assert.Equal(t, types.SqB2.Bb(), PawnAttack(types.SqA1, types.White))
	assert.Equal(t, types.SqB7.Bb(), PawnAttack(types.SqA8, types.Black))
}

func TestRookAttackEmptyBoardFromA1(t *testing.T) {
	Init()
	want := Masks[types.SqA1].File | Masks[types.SqA1].Rank
	assert.Equal(t, want, RookAttack(types.BbEmpty, types.SqA1))
}

func TestRookAttackBlockedByOccupant(t *testing.T) {
	Init()
	occ := types.SqA4.Bb()
	got := RookAttack(occ, types.SqA1)
	assert.True(t, got.Has(types.SqA4))
	assert.False(t, got.Has(types.SqA5))
	assert.True(t, got.Has(types.SqH1))
}

func TestBishopAttackEmptyBoardFromD4(t *testing.T) {
	Init()
	got := BishopAttack(types.BbEmpty, types.SqD4)
	for _, sq := range []types.Square{types.SqA1, types.SqG1, types.SqA7, types.SqH8} {
		assert.True(t, got.Has(sq), "expected %s reachable from D4", sq)
	}
	assert.False(t, got.Has(types.SqD5))
}

func TestBishopAttackBlockedByOccupant(t *testing.T) {
	Init()
	occ := types.SqF6.Bb()
	got := BishopAttack(occ, types.SqD4)
	assert.True(t, got.Has(types.SqF6))
	assert.False(t, got.Has(types.SqG7))
	assert.False(t, got.Has(types.SqH8))
}

func TestBetweenIsEmptyForAdjacentSquares(t *testing.T) {
	Init()
	assert.Equal(t, types.BbEmpty, Masks[types.SqE4].Between[types.SqE5])
}

func TestBetweenOnRank(t *testing.T) {
	Init()
	between := Masks[types.SqA1].Between[types.SqD1]
	assert.Equal(t, 2, between.PopCount())
	assert.True(t, between.Has(types.SqB1))
	assert.True(t, between.Has(types.SqC1))
}

func TestBetweenUnalignedIsEmpty(t *testing.T) {
	Init()
	assert.Equal(t, types.BbEmpty, Masks[types.SqA1].Between[types.SqB3])
}

func TestMagicIndexIsWithinAttackTable(t *testing.T) {
	Init()
	for sq := types.SqA1; sq <= types.SqH8; sq++ {
		mb := &Masks[sq].Bishop
		assert.Less(t, int(mb.index(mb.Mask)), len(mb.Attacks))
		mr := &Masks[sq].Rook
		assert.Less(t, int(mr.index(mr.Mask)), len(mr.Attacks))
	}
}
