// mperft-go - a bitboard perft engine in Go
// Copyright (c) 2024 mperft-go contributors
// Licensed under the MIT License. See LICENSE file for details.

package position

import (
	"github.com/abulmo/mperft-go/attacks"
	"github.com/abulmo/mperft-go/types"
)

// generateCheckers recomputes the current stack entry's pinned and
// checkers bitboards for the side to move. It runs a two-layer x-ray:
// first the bishop/rook rays from the king square give the direct
// checkers; then, for each own piece blocking one of those rays, the
// ray is recast with that blocker removed to see whether a further
// attacker pins it.
func (b *Board) generateCheckers() {
	c := b.Player
	o := c.Opponent()
	k := b.KingSquare[c]
	bq := (b.Piece[types.Bishop] | b.Piece[types.Queen]) & b.Color[o]
	rq := (b.Piece[types.Rook] | b.Piece[types.Queen]) & b.Color[o]
	occupied := b.Occupied()
	own := b.Color[c]

	var pinned types.Bitboard

	atk := attacks.BishopAttack(occupied, k)
	checkers := atk & bq
	if blockers := atk & own; blockers != 0 {
		xray := attacks.BishopAttack(occupied^blockers, k) & (bq ^ checkers)
		for xray != 0 {
			var x types.Square
			x, xray = xray.PopLowest()
			pinned |= attacks.Masks[x].Between[k] & own
		}
	}

	atk = attacks.RookAttack(occupied, k)
	rookCheckers := atk & rq
	checkers |= rookCheckers
	if blockers := atk & own; blockers != 0 {
		xray := attacks.RookAttack(occupied^blockers, k) & (rq ^ rookCheckers)
		for xray != 0 {
			var x types.Square
			x, xray = xray.PopLowest()
			pinned |= attacks.Masks[x].Between[k] & own
		}
	}

	checkers |= attacks.KnightAttack(k) & b.Piece[types.Knight]
	checkers |= attacks.PawnAttack(k, c) & b.Piece[types.Pawn]
	checkers &= b.Color[o]

	cur := b.Current()
	cur.Pinned = pinned
	cur.Checkers = checkers
}

// IsSquareAttacked reports whether sq is attacked by any piece of
// color c, given the board's current occupancy.
func (b *Board) IsSquareAttacked(sq types.Square, c types.Color) bool {
	occupied := b.Occupied()
	own := b.Color[c]
	if attacks.BishopAttack(occupied, sq)&own&(b.Piece[types.Bishop]|b.Piece[types.Queen]) != 0 {
		return true
	}
	if attacks.RookAttack(occupied, sq)&own&(b.Piece[types.Rook]|b.Piece[types.Queen]) != 0 {
		return true
	}
	if attacks.KnightAttack(sq)&own&b.Piece[types.Knight] != 0 {
		return true
	}
	if attacks.PawnAttack(sq, c.Opponent())&own&b.Piece[types.Pawn] != 0 {
		return true
	}
	if attacks.KingAttack(sq)&own&b.Piece[types.King] != 0 {
		return true
	}
	return false
}
