// mperft-go - a bitboard perft engine in Go
// Copyright (c) 2024 mperft-go contributors
// Licensed under the MIT License. See LICENSE file for details.

package position

import (
	"github.com/abulmo/mperft-go/assert"
	"github.com/abulmo/mperft-go/attacks"
	"github.com/abulmo/mperft-go/types"
)

// MakeMove plays move on the board, pushing a new stack entry. Every
// call must be matched by a later UnmakeMove of the same move before
// the board is used again for anything but further MakeMove/UnmakeMove
// pairs.
func (b *Board) MakeMove(move types.Move) {
	from := move.From()
	to := move.To()
	cp := b.Grid[from]
	p := cp.PieceOf()
	c := cp.ColorOf()
	bFrom := from.Bb()
	bTo := to.Bb()
	victim := b.Grid[to]
	cur := b.Current()
	nxt := b.next()

	nxt.Castling = cur.Castling & maskCastling[from] & maskCastling[to]
	nxt.Enpassant = types.SqNone
	nxt.Victim = types.Empty
	nxt.Key = b.NextKey(move)

	b.Piece[p] ^= bFrom | bTo
	b.Color[c] ^= bFrom | bTo
	b.Grid[from] = types.Empty
	b.Grid[to] = cp

	if victim != types.Empty {
		vp := victim.PieceOf()
		vc := victim.ColorOf()
		b.Piece[vp] ^= bTo
		b.Color[vc] ^= bTo
		nxt.Victim = victim
	}

	if p == types.Pawn {
		if tag := move.PromotionTag(); tag != types.NoPromotion {
			promo := move.PromotionPiece()
			promoCp := types.MakeColoredPiece(promo, c)
			b.Piece[types.Pawn] ^= bTo
			b.Piece[promo] ^= bTo
			b.Grid[to] = promoCp
		} else if cur.Enpassant == to {
			x := types.SquareOf(to.FileOf(), from.RankOf())
			bx := x.Bb()
			b.Piece[types.Pawn] ^= bx
			b.Color[c.Opponent()] ^= bx
			b.Grid[x] = types.Empty
		} else if absInt(int(to)-int(from)) == 16 && attacks.Masks[to].Enpassant&(b.Color[c.Opponent()]&b.Piece[types.Pawn]) != 0 {
			nxt.Enpassant = types.Square((int(from) + int(to)) / 2)
		}
	} else if p == types.King {
		b.KingSquare[c] = to
		if to == from+2 {
			b.deplacePiece(from+3, from+1)
		} else if int(to) == int(from)-2 {
			b.deplacePiece(from-4, from-1)
		}
	}

	b.sp++
	b.Ply++
	b.Player = b.Player.Opponent()

	b.generateCheckers()

	if assert.DEBUG {
		assert.Assert(b.sp < gameSize-1, "board stack overflow at ply %d", b.Ply)
	}
}

// UnmakeMove reverses move, which must be the same move most recently
// passed to MakeMove. It restores the grid, bitboards, king square and
// stack exactly as they were before that call.
func (b *Board) UnmakeMove(move types.Move) {
	from := move.From()
	to := move.To()
	cp := b.Grid[to]
	p := cp.PieceOf()
	c := cp.ColorOf()
	bFrom := from.Bb()
	bTo := to.Bb()

	b.sp--
	b.Ply--
	b.Player = b.Player.Opponent()
	victim := b.next().Victim

	b.Piece[p] ^= bTo
	if move.PromotionTag() != types.NoPromotion {
		p = types.Pawn
		cp = types.MakeColoredPiece(types.Pawn, c)
	}
	b.Piece[p] ^= bFrom
	b.Color[c] ^= bFrom | bTo
	b.Grid[to] = types.Empty
	b.Grid[from] = cp

	if victim != types.Empty {
		vp := victim.PieceOf()
		vc := victim.ColorOf()
		b.Piece[vp] ^= bTo
		b.Color[vc] ^= bTo
		b.Grid[to] = victim
	}

	if p == types.Pawn && b.Current().Enpassant == to {
		x := types.SquareOf(to.FileOf(), from.RankOf())
		bx := x.Bb()
		b.Piece[types.Pawn] ^= bx
		b.Color[c.Opponent()] ^= bx
		b.Grid[x] = types.MakeColoredPiece(types.Pawn, c.Opponent())
	}

	if p == types.King {
		b.KingSquare[c] = from
		if to == from+2 {
			b.deplacePiece(from+1, from+3)
		} else if int(to) == int(from)-2 {
			b.deplacePiece(from-1, from-4)
		}
	}
}

// deplacePiece moves the piece at from to to without touching any
// other board state; used only to relocate the rook during castling.
func (b *Board) deplacePiece(from, to types.Square) {
	bb := from.Bb() ^ to.Bb()
	cp := b.Grid[from]
	p := cp.PieceOf()
	c := cp.ColorOf()

	b.Piece[p] ^= bb
	b.Color[c] ^= bb
	b.Grid[to] = cp
	b.Grid[from] = types.Empty
}
