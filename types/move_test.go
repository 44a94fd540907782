// mperft-go - a bitboard perft engine in Go
// Copyright (c) 2024 mperft-go contributors
// Licensed under the MIT License. See LICENSE file for details.

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewMove(t *testing.T) {
	m := NewMove(SqE2, SqE4)
	assert.Equal(t, SqE2, m.From())
	assert.Equal(t, SqE4, m.To())
	assert.Equal(t, NoPromotion, m.PromotionTag())
	assert.Equal(t, "e2e4", m.String())
}

func TestNewPromotionMove(t *testing.T) {
	m := NewPromotionMove(SqA7, SqA8, QueenPromotion)
	assert.Equal(t, SqA7, m.From())
	assert.Equal(t, SqA8, m.To())
	assert.Equal(t, Queen, m.PromotionPiece())
	assert.Equal(t, "a7a8Q", m.String())
}

func TestMoveNoneIsNullMove(t *testing.T) {
	assert.Equal(t, "null", MoveNone.String())
	assert.Equal(t, SqA1, MoveNone.From())
	assert.Equal(t, SqA1, MoveNone.To())
}

func TestMoveRoundTripsAllSquares(t *testing.T) {
	for from := SqA1; from < SqNone; from++ {
		for to := SqA1; to < SqNone; to++ {
			m := NewMove(from, to)
			assert.Equal(t, from, m.From())
			assert.Equal(t, to, m.To())
		}
	}
}
