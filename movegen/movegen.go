// mperft-go - a bitboard perft engine in Go
// Copyright (c) 2024 mperft-go contributors
// Licensed under the MIT License. See LICENSE file for details.

// Package movegen generates fully legal moves directly, without a
// separate make/unmake-and-test-for-check pass: pinned pieces are
// restricted to their pin ray and, in check, every move is restricted
// to capturing or blocking the checker (or, with a double check, to a
// king move) using the pinned/checkers bitboards the position package
// recomputes after every move.
package movegen

import (
	"github.com/abulmo/mperft-go/attacks"
	"github.com/abulmo/mperft-go/position"
	"github.com/abulmo/mperft-go/types"
)

// MaxMoves safely bounds the busiest legal position found in practice
// (around 220 moves); a generation buffer this size never grows.
const MaxMoves = 256

var promotionRank = [2]types.Bitboard{
	types.White: 0xFF00000000000000,
	types.Black: 0x00000000000000FF,
}

const (
	fileABB types.Bitboard = 0x0101010101010101
	fileHBB types.Bitboard = 0x8080808080808080
	rank2BB types.Bitboard = 0x000000000000FF00
	rank7BB types.Bitboard = 0x00FF000000000000
)

var castleKingsideRight = [2]uint8{position.CastleWK, position.CastleBK}
var castleQueensideRight = [2]uint8{position.CastleWQ, position.CastleBQ}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func isOnSeventhRank(sq types.Square, c types.Color) bool {
	if c == types.Black {
		return sq.RankOf() == types.Rank2
	}
	return sq.RankOf() == types.Rank7
}

func isOnSecondRank(sq types.Square, c types.Color) bool {
	if c == types.Black {
		return sq.RankOf() == types.Rank7
	}
	return sq.RankOf() == types.Rank2
}

func pushMove(moves []types.Move, from, to types.Square) []types.Move {
	return append(moves, types.NewMove(from, to))
}

func pushPromotion(moves []types.Move, from, to types.Square) []types.Move {
	return append(moves,
		types.NewPromotionMove(from, to, types.QueenPromotion),
		types.NewPromotionMove(from, to, types.KnightPromotion),
		types.NewPromotionMove(from, to, types.RookPromotion),
		types.NewPromotionMove(from, to, types.BishopPromotion))
}

func pushMoves(moves []types.Move, attack types.Bitboard, from types.Square) []types.Move {
	for attack != 0 {
		var to types.Square
		to, attack = attack.PopLowest()
		moves = pushMove(moves, from, to)
	}
	return moves
}

func pushPawnMoves(moves []types.Move, attack types.Bitboard, dir int) []types.Move {
	for attack != 0 {
		var to types.Square
		to, attack = attack.PopLowest()
		moves = pushMove(moves, types.Square(int(to)-dir), to)
	}
	return moves
}

func pushPromotions(moves []types.Move, attack types.Bitboard, dir int) []types.Move {
	for attack != 0 {
		var to types.Square
		to, attack = attack.PopLowest()
		moves = pushPromotion(moves, types.Square(int(to)-dir), to)
	}
	return moves
}

// Generate appends every legal move in b to moves and returns the
// extended slice. When doQuiet is false only captures, promotions and
// en-passant captures are generated - the "capture only" mode used by
// the perft walker's -c flag. doQuiet is applied as given also when the
// side to move is in check: with doQuiet false, only the evasions that
// capture or promote are generated, not quiet interpositions or king
// steps to empty squares. Count itself passes doQuiet=true whenever the
// position it expands is in check.
func Generate(b *position.Board, moves []types.Move, doQuiet bool) []types.Move {
	c := b.Player
	o := c.Opponent()
	occupied := b.Occupied()
	bq := b.Piece[types.Bishop] | b.Piece[types.Queen]
	rq := b.Piece[types.Rook] | b.Piece[types.Queen]
	cur := b.Current()
	pinned := cur.Pinned
	unpinned := b.Color[c] &^ pinned
	checkers := cur.Checkers
	k := b.KingSquare[c]

	pawnPush := int(types.North)
	if c == types.Black {
		pawnPush = int(types.South)
	}
	pawnLeft := pawnPush - 1
	pawnRight := pawnPush + 1

	dir := &attacks.Masks[k].Direction
	empty := ^occupied
	enemy := b.Color[o]
	xChecker := types.SqNone

	if checkers != 0 {
		if checkers.IsSingle() {
			xChecker = checkers.LowestBitIndex()
			empty = attacks.Masks[k].Between[xChecker]
			enemy = checkers
		} else {
			empty, enemy = types.BbEmpty, types.BbEmpty
		}
	} else {
		target := enemy
		if doQuiet {
			target |= empty
		}

		if doQuiet {
			if cur.Castling&castleKingsideRight[c] != 0 &&
				occupied&attacks.Masks[k].Between[k+3] == 0 &&
				!b.IsSquareAttacked(k+1, o) && !b.IsSquareAttacked(k+2, o) {
				moves = pushMove(moves, k, k+2)
			}
			if cur.Castling&castleQueensideRight[c] != 0 &&
				occupied&attacks.Masks[k].Between[k-4] == 0 &&
				!b.IsSquareAttacked(k-1, o) && !b.IsSquareAttacked(k-2, o) {
				moves = pushMove(moves, k, k-2)
			}
		}

		// pinned pawns: restricted to their own pin ray
		piece := b.Piece[types.Pawn] & pinned
		for piece != 0 {
			var from types.Square
			from, piece = piece.PopLowest()
			d := dir[from]
			if d == absInt(pawnLeft) {
				to := types.Square(int(from) + pawnLeft)
				if to.Bb()&attacks.PawnAttack(from, c)&enemy != 0 {
					if isOnSeventhRank(from, c) {
						moves = pushPromotion(moves, from, to)
					} else {
						moves = pushMove(moves, from, to)
					}
				}
			} else if d == absInt(pawnRight) {
				to := types.Square(int(from) + pawnRight)
				if to.Bb()&attacks.PawnAttack(from, c)&enemy != 0 {
					if isOnSeventhRank(from, c) {
						moves = pushPromotion(moves, from, to)
					} else {
						moves = pushMove(moves, from, to)
					}
				}
			}
			if doQuiet && d == absInt(pawnPush) {
				to := types.Square(int(from) + pawnPush)
				if to.Bb()&empty != 0 {
					moves = pushMove(moves, from, to)
					if isOnSecondRank(from, c) {
						to2 := types.Square(int(to) + pawnPush)
						if to2.Bb()&empty != 0 {
							moves = pushMove(moves, from, to2)
						}
					}
				}
			}
		}

		// pinned bishops/queens: restricted to the diagonal they're pinned on
		piece = bq & pinned
		for piece != 0 {
			var from types.Square
			from, piece = piece.PopLowest()
			var attack types.Bitboard
			switch dir[from] {
			case 9:
				attack = attacks.BishopAttack(occupied, from) & target & attacks.Masks[from].Diagonal
			case 7:
				attack = attacks.BishopAttack(occupied, from) & target & attacks.Masks[from].Antidiagonal
			}
			moves = pushMoves(moves, attack, from)
		}

		// pinned rooks/queens: restricted to the rank/file they're pinned on
		piece = rq & pinned
		for piece != 0 {
			var from types.Square
			from, piece = piece.PopLowest()
			var attack types.Bitboard
			switch dir[from] {
			case 1:
				attack = attacks.RookAttack(occupied, from) & target & attacks.Masks[from].Rank
			case 8:
				attack = attacks.RookAttack(occupied, from) & target & attacks.Masks[from].File
			}
			moves = pushMoves(moves, attack, from)
		}
	}

	// common moves: unpinned pieces plus en-passant, constrained by
	// empty/enemy which already encode the check-evasion restriction.
	target := enemy
	if doQuiet {
		target |= empty
	}

	if cur.Enpassant != types.SqNone &&
		(checkers == 0 || xChecker == types.Square(int(cur.Enpassant)-pawnPush)) {
		to := cur.Enpassant
		ep := types.Square(int(to) - pawnPush)
		if to.FileOf() > types.FileA {
			from := types.Square(int(ep) - 1)
			if b.Grid[from] == types.MakeColoredPiece(types.Pawn, c) {
				after := occupied ^ from.Bb() ^ ep.Bb() ^ to.Bb()
				if attacks.BishopAttack(after, k)&(bq&b.Color[o]) == 0 &&
					attacks.RookAttack(after, k)&(rq&b.Color[o]) == 0 {
					moves = pushMove(moves, from, to)
				}
			}
		}
		if to.FileOf() < types.FileH {
			from := types.Square(int(ep) + 1)
			if b.Grid[from] == types.MakeColoredPiece(types.Pawn, c) {
				after := occupied ^ from.Bb() ^ ep.Bb() ^ to.Bb()
				if attacks.BishopAttack(after, k)&(bq&b.Color[o]) == 0 &&
					attacks.RookAttack(after, k)&(rq&b.Color[o]) == 0 {
					moves = pushMove(moves, from, to)
				}
			}
		}
	}

	piece := b.Piece[types.Pawn] & unpinned

	var attack types.Bitboard
	if c == types.Black {
		attack = (piece &^ fileABB) >> 9
	} else {
		attack = (piece &^ fileABB) << 7
	}
	attack &= enemy
	moves = pushPromotions(moves, attack&promotionRank[c], pawnLeft)
	moves = pushPawnMoves(moves, attack&^promotionRank[c], pawnLeft)

	if c == types.Black {
		attack = (piece &^ fileHBB) >> 7
	} else {
		attack = (piece &^ fileHBB) << 9
	}
	attack &= enemy
	moves = pushPromotions(moves, attack&promotionRank[c], pawnRight)
	moves = pushPawnMoves(moves, attack&^promotionRank[c], pawnRight)

	if c == types.Black {
		attack = piece >> 8
	} else {
		attack = piece << 8
	}
	attack &= empty
	moves = pushPromotions(moves, attack&promotionRank[c], pawnPush)
	if doQuiet {
		moves = pushPawnMoves(moves, attack&^promotionRank[c], pawnPush)
		var double types.Bitboard
		if c == types.Black {
			double = (((piece & rank7BB) >> 8) &^ occupied) >> 8
		} else {
			double = (((piece & rank2BB) << 8) &^ occupied) << 8
		}
		double &= empty
		moves = pushPawnMoves(moves, double, 2*pawnPush)
	}

	piece = b.Piece[types.Knight] & unpinned
	for piece != 0 {
		var from types.Square
		from, piece = piece.PopLowest()
		moves = pushMoves(moves, attacks.KnightAttack(from)&target, from)
	}

	piece = bq & unpinned
	for piece != 0 {
		var from types.Square
		from, piece = piece.PopLowest()
		moves = pushMoves(moves, attacks.BishopAttack(occupied, from)&target, from)
	}

	piece = rq & unpinned
	for piece != 0 {
		var from types.Square
		from, piece = piece.PopLowest()
		moves = pushMoves(moves, attacks.RookAttack(occupied, from)&target, from)
	}

	// king: temporarily remove it from its own color's bitboard so a
	// slider that was only blocked by the king still x-rays through to
	// attack the squares it might flee to.
	b.Color[c] ^= k.Bb()
	kingTarget := b.Color[o]
	if doQuiet {
		kingTarget |= ^occupied
	}
	kingAttack := attacks.KingAttack(k) & kingTarget
	for kingAttack != 0 {
		var to types.Square
		to, kingAttack = kingAttack.PopLowest()
		if !b.IsSquareAttacked(to, o) {
			moves = pushMove(moves, k, to)
		}
	}
	b.Color[c] ^= k.Bb()

	return moves
}

// CountMoves returns the number of legal moves in b without allocating
// a move buffer - the fast path the perft walker uses for bulk counting
// at the last ply, where the moves themselves are never inspected.
func CountMoves(b *position.Board, doQuiet bool) int {
	c := b.Player
	o := c.Opponent()
	occupied := b.Occupied()
	bq := b.Piece[types.Bishop] | b.Piece[types.Queen]
	rq := b.Piece[types.Rook] | b.Piece[types.Queen]
	cur := b.Current()
	pinned := cur.Pinned
	unpinned := b.Color[c] &^ pinned
	checkers := cur.Checkers
	k := b.KingSquare[c]

	pawnPush := int(types.North)
	if c == types.Black {
		pawnPush = int(types.South)
	}
	pawnLeft := pawnPush - 1
	pawnRight := pawnPush + 1

	dir := &attacks.Masks[k].Direction
	empty := ^occupied
	enemy := b.Color[o]
	xChecker := types.SqNone
	count := 0

	if checkers != 0 {
		if checkers.IsSingle() {
			xChecker = checkers.LowestBitIndex()
			empty = attacks.Masks[k].Between[xChecker]
			enemy = checkers
		} else {
			empty, enemy = types.BbEmpty, types.BbEmpty
		}
	} else {
		target := enemy
		if doQuiet {
			target |= empty
		}

		if doQuiet {
			if cur.Castling&castleKingsideRight[c] != 0 &&
				occupied&attacks.Masks[k].Between[k+3] == 0 &&
				!b.IsSquareAttacked(k+1, o) && !b.IsSquareAttacked(k+2, o) {
				count++
			}
			if cur.Castling&castleQueensideRight[c] != 0 &&
				occupied&attacks.Masks[k].Between[k-4] == 0 &&
				!b.IsSquareAttacked(k-1, o) && !b.IsSquareAttacked(k-2, o) {
				count++
			}
		}

		piece := b.Piece[types.Pawn] & pinned
		for piece != 0 {
			var from types.Square
			from, piece = piece.PopLowest()
			d := dir[from]
			if d == absInt(pawnLeft) {
				to := types.Square(int(from) + pawnLeft)
				if to.Bb()&attacks.PawnAttack(from, c)&enemy != 0 {
					if isOnSeventhRank(from, c) {
						count += 4
					} else {
						count++
					}
				}
			} else if d == absInt(pawnRight) {
				to := types.Square(int(from) + pawnRight)
				if to.Bb()&attacks.PawnAttack(from, c)&enemy != 0 {
					if isOnSeventhRank(from, c) {
						count += 4
					} else {
						count++
					}
				}
			}
			if doQuiet && d == absInt(pawnPush) {
				to := types.Square(int(from) + pawnPush)
				if to.Bb()&empty != 0 {
					count++
					if isOnSecondRank(from, c) {
						to2 := types.Square(int(to) + pawnPush)
						if to2.Bb()&empty != 0 {
							count++
						}
					}
				}
			}
		}

		piece = bq & pinned
		for piece != 0 {
			var from types.Square
			from, piece = piece.PopLowest()
			var attack types.Bitboard
			switch dir[from] {
			case 9:
				attack = attacks.BishopAttack(occupied, from) & target & attacks.Masks[from].Diagonal
			case 7:
				attack = attacks.BishopAttack(occupied, from) & target & attacks.Masks[from].Antidiagonal
			}
			count += attack.PopCount()
		}

		piece = rq & pinned
		for piece != 0 {
			var from types.Square
			from, piece = piece.PopLowest()
			var attack types.Bitboard
			switch dir[from] {
			case 1:
				attack = attacks.RookAttack(occupied, from) & target & attacks.Masks[from].Rank
			case 8:
				attack = attacks.RookAttack(occupied, from) & target & attacks.Masks[from].File
			}
			count += attack.PopCount()
		}
	}

	target := enemy
	if doQuiet {
		target |= empty
	}

	if cur.Enpassant != types.SqNone &&
		(checkers == 0 || xChecker == types.Square(int(cur.Enpassant)-pawnPush)) {
		to := cur.Enpassant
		ep := types.Square(int(to) - pawnPush)
		if to.FileOf() > types.FileA {
			from := types.Square(int(ep) - 1)
			if b.Grid[from] == types.MakeColoredPiece(types.Pawn, c) {
				after := occupied ^ from.Bb() ^ ep.Bb() ^ to.Bb()
				if attacks.BishopAttack(after, k)&(bq&b.Color[o]) == 0 &&
					attacks.RookAttack(after, k)&(rq&b.Color[o]) == 0 {
					count++
				}
			}
		}
		if to.FileOf() < types.FileH {
			from := types.Square(int(ep) + 1)
			if b.Grid[from] == types.MakeColoredPiece(types.Pawn, c) {
				after := occupied ^ from.Bb() ^ ep.Bb() ^ to.Bb()
				if attacks.BishopAttack(after, k)&(bq&b.Color[o]) == 0 &&
					attacks.RookAttack(after, k)&(rq&b.Color[o]) == 0 {
					count++
				}
			}
		}
	}

	piece := b.Piece[types.Pawn] & unpinned

	var attack types.Bitboard
	if c == types.Black {
		attack = (piece &^ fileABB) >> 9
	} else {
		attack = (piece &^ fileABB) << 7
	}
	attack &= enemy
	count += 4*(attack&promotionRank[c]).PopCount() + (attack &^ promotionRank[c]).PopCount()

	if c == types.Black {
		attack = (piece &^ fileHBB) >> 7
	} else {
		attack = (piece &^ fileHBB) << 9
	}
	attack &= enemy
	count += 4*(attack&promotionRank[c]).PopCount() + (attack &^ promotionRank[c]).PopCount()

	if c == types.Black {
		attack = piece >> 8
	} else {
		attack = piece << 8
	}
	attack &= empty
	count += 4 * (attack & promotionRank[c]).PopCount()
	if doQuiet {
		count += (attack &^ promotionRank[c]).PopCount()
		var double types.Bitboard
		if c == types.Black {
			double = (((piece & rank7BB) >> 8) &^ occupied) >> 8
		} else {
			double = (((piece & rank2BB) << 8) &^ occupied) << 8
		}
		double &= empty
		count += double.PopCount()
	}

	piece = b.Piece[types.Knight] & unpinned
	for piece != 0 {
		var from types.Square
		from, piece = piece.PopLowest()
		count += (attacks.KnightAttack(from) & target).PopCount()
	}

	piece = bq & unpinned
	for piece != 0 {
		var from types.Square
		from, piece = piece.PopLowest()
		count += (attacks.BishopAttack(occupied, from) & target).PopCount()
	}

	piece = rq & unpinned
	for piece != 0 {
		var from types.Square
		from, piece = piece.PopLowest()
		count += (attacks.RookAttack(occupied, from) & target).PopCount()
	}

	b.Color[c] ^= k.Bb()
	kingTarget := b.Color[o]
	if doQuiet {
		kingTarget |= ^occupied
	}
	kingAttack := attacks.KingAttack(k) & kingTarget
	for kingAttack != 0 {
		var to types.Square
		to, kingAttack = kingAttack.PopLowest()
		if !b.IsSquareAttacked(to, o) {
			count++
		}
	}
	b.Color[c] ^= k.Bb()

	return count
}
