// mperft-go - a bitboard perft engine in Go
// Copyright (c) 2024 mperft-go contributors
// Licensed under the MIT License. See LICENSE file for details.

package position

import (
	"github.com/abulmo/mperft-go/attacks"
	"github.com/abulmo/mperft-go/types"
	"github.com/abulmo/mperft-go/zobrist"
)

// computeKey fingerprints the position from scratch: player to move,
// every occupied (and empty) square, castling rights and the
// en-passant square. Used only at position setup time; every move
// afterwards updates the key incrementally via NextKey.
func (b *Board) computeKey() zobrist.Key {
	key := zobrist.Keys.Player[b.Player]
	for sq := types.SqA1; sq <= types.SqH8; sq++ {
		key = key.Xor(zobrist.Keys.Square[sq][b.Grid[sq]])
	}
	cur := b.Current()
	key = key.Xor(zobrist.Keys.Castling[cur.Castling])
	key = key.Xor(zobrist.Keys.Enpassant[cur.Enpassant])
	return key
}

// NextKey computes the Zobrist key the position will have after move
// is played, without mutating the board. MakeMove calls this to fill
// in the pushed stack entry's key; the perft walker also calls it
// directly, before actually making the move, so it can probe and
// prefetch the transposition table bucket for the child position
// while the move is being made.
func (b *Board) NextKey(move types.Move) zobrist.Key {
	from := move.From()
	to := move.To()
	cp := b.Grid[from]
	p := cp.PieceOf()
	c := cp.ColorOf()
	victim := b.Grid[to]
	cur := b.Current()

	key := cur.Key
	key = key.Xor(zobrist.Keys.Square[from][cp])
	key = key.Xor(zobrist.Keys.Square[to][cp])
	if victim != types.Empty {
		key = key.Xor(zobrist.Keys.Square[to][victim])
	}

	enpassant := types.SqNone
	if p == types.Pawn {
		if tag := move.PromotionTag(); tag != types.NoPromotion {
			promoCp := types.MakeColoredPiece(move.PromotionPiece(), c)
			key = key.Xor(zobrist.Keys.Square[to][cp])
			key = key.Xor(zobrist.Keys.Square[to][promoCp])
		} else if cur.Enpassant == to {
			x := types.SquareOf(to.FileOf(), from.RankOf())
			key = key.Xor(zobrist.Keys.Square[x][types.MakeColoredPiece(types.Pawn, c.Opponent())])
		} else if absInt(int(to)-int(from)) == 16 && attacks.Masks[to].Enpassant&(b.Color[c.Opponent()]&b.Piece[types.Pawn]) != 0 {
			enpassant = types.Square((int(from) + int(to)) / 2)
		}
	} else if p == types.King {
		if to == from+2 {
			rookCp := b.Grid[from+3]
			key = key.Xor(zobrist.Keys.Square[from+3][rookCp])
			key = key.Xor(zobrist.Keys.Square[from+1][rookCp])
		} else if int(to) == int(from)-2 {
			rookCp := b.Grid[from-4]
			key = key.Xor(zobrist.Keys.Square[from-4][rookCp])
			key = key.Xor(zobrist.Keys.Square[from-1][rookCp])
		}
	}

	key = key.Xor(zobrist.Keys.Castling[cur.Castling])
	key = key.Xor(zobrist.Keys.Castling[cur.Castling&maskCastling[from]&maskCastling[to]])
	key = key.Xor(zobrist.Keys.Enpassant[cur.Enpassant])
	key = key.Xor(zobrist.Keys.Enpassant[enpassant])
	key = key.Xor(zobrist.Keys.Play)

	return key
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
