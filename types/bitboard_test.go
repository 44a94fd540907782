// mperft-go - a bitboard perft engine in Go
// Copyright (c) 2024 mperft-go contributors
// Licensed under the MIT License. See LICENSE file for details.

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBitboardSetClearHas(t *testing.T) {
	b := BbEmpty
	b = b.Set(SqE4)
	assert.True(t, b.Has(SqE4))
	assert.False(t, b.Has(SqD4))
	b = b.Clear(SqE4)
	assert.False(t, b.Has(SqE4))
}

func TestBitboardPopCount(t *testing.T) {
	assert.Equal(t, 0, BbEmpty.PopCount())
	assert.Equal(t, 64, BbAll.PopCount())
	assert.Equal(t, 2, SqA1.Bb().Set(SqH8).PopCount())
}

func TestBitboardPopLowest(t *testing.T) {
	b := SqD4.Bb() | SqA1.Bb() | SqH8.Bb()
	sq, rest := b.PopLowest()
	assert.Equal(t, SqA1, sq)
	assert.Equal(t, 2, rest.PopCount())
	assert.False(t, rest.Has(SqA1))
}

func TestBitboardByteSwap(t *testing.T) {
	assert.Equal(t, SqA8.Bb(), SqA1.Bb().ByteSwap())
	assert.Equal(t, SqH1.Bb(), SqH8.Bb().ByteSwap())
}

func TestBitboardIsSingle(t *testing.T) {
	assert.True(t, SqE4.Bb().IsSingle())
	assert.False(t, BbEmpty.IsSingle())
	assert.False(t, SqE4.Bb().Set(SqD4).IsSingle())
}
