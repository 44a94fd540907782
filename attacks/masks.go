// mperft-go - a bitboard perft engine in Go
// Copyright (c) 2024 mperft-go contributors
// Licensed under the MIT License. See LICENSE file for details.

// Package attacks builds the per-square precomputed attack context: king,
// knight and pawn attack sets, between-squares/direction tables, and the
// magic-bitboard indexed slider attack arenas for bishops and rooks.
//
// Everything in this package is constructed once by Init and is read-only
// afterwards; it is shared, process-wide state, never mutated by the
// move generator or the board.
package attacks

import "github.com/abulmo/mperft-go/types"

// rankMask and fileMask are the eight full-rank and full-file bitboards,
// used both directly and to build MaskSet.Rank/MaskSet.File.
var rankMask = [8]types.Bitboard{
	0x00000000000000ff, 0x000000000000ff00, 0x0000000000ff0000, 0x00000000ff000000,
	0x000000ff00000000, 0x0000ff0000000000, 0x00ff000000000000, 0xff00000000000000,
}

var fileMask = [8]types.Bitboard{
	0x0101010101010101, 0x0202020202020202, 0x0404040404040404, 0x0808080808080808,
	0x1010101010101010, 0x2020202020202020, 0x4040404040404040, 0x8080808080808080,
}

// MaskSet holds every precomputed attack-related table for one square.
type MaskSet struct {
	// Between[t] is the set of squares strictly between this square and
	// t along a ray; zero if t is not aligned with this square.
	Between [64]types.Bitboard
	// Direction[t] is the absolute step size (one of 0,1,7,8,9) of the
	// ray from this square to t; zero if not aligned.
	Direction [64]int

	Diagonal     types.Bitboard
	Antidiagonal types.Bitboard
	File         types.Bitboard
	Rank         types.Bitboard

	PawnAttack [2]types.Bitboard
	// PawnPush mirrors the reference implementation's MASK.pawn_push
	// field: computed the same (unusual) way as the original, but never
	// consulted by move generation there either - kept only for bit
	// compatibility with the documented data model.
	PawnPush [2]types.Bitboard
	// Enpassant holds the squares horizontally adjacent to this square
	// on ranks 4 and 5, i.e. the squares a pawn could capture en-passant
	// from into this square; zero elsewhere.
	Enpassant types.Bitboard

	Knight types.Bitboard
	King   types.Bitboard

	Bishop Magic
	Rook   Magic
}

// Masks is the read-only, process-wide attack context. Populated by Init.
var Masks [64]MaskSet

var initialized bool

// Init builds the full attack context: between/direction tables, the
// pawn/knight/king attack sets, and the magic-indexed slider arenas. It
// is idempotent and must be called once before any board is created.
func Init() {
	if initialized {
		return
	}

	type dirOffset struct {
		df, dr int
		delta  types.Direction
	}
	dirs := [8]dirOffset{
		{0, 1, types.North}, {0, -1, types.South}, {1, 0, types.East}, {-1, 0, types.West},
		{1, 1, types.Northeast}, {-1, -1, types.Southwest}, {-1, 1, types.Northwest}, {1, -1, types.Southeast},
	}

	for x := types.SqA1; x <= types.SqH8; x++ {
		f := int(x.FileOf())
		r := int(x.RankOf())
		m := &Masks[x]

		var d [64]int

		for _, dir := range dirs {
			for j := 1; j < 8; j++ {
				nf, nr := f+dir.df*j, r+dir.dr*j
				if nf < 0 || nf > 7 || nr < 0 || nr > 7 {
					break
				}
				y := types.SquareOf(types.File(nf), types.Rank(nr))
				d[y] = int(dir.delta)
				m.Direction[y] = abs(d[y])
				for z := int(x) + d[y]; z != int(y); z += d[y] {
					m.Between[y] = m.Between[y].Set(types.Square(z))
				}
			}
		}

		for y := int(x) - 9; y >= 0 && d[y] == -9; y -= 9 {
			m.Diagonal = m.Diagonal.Set(types.Square(y))
		}
		for y := int(x) + 9; y < 64 && d[y] == 9; y += 9 {
			m.Diagonal = m.Diagonal.Set(types.Square(y))
		}
		for y := int(x) - 7; y >= 0 && d[y] == -7; y -= 7 {
			m.Antidiagonal = m.Antidiagonal.Set(types.Square(y))
		}
		for y := int(x) + 7; y < 64 && d[y] == 7; y += 7 {
			m.Antidiagonal = m.Antidiagonal.Set(types.Square(y))
		}
		m.File = fileMask[f] ^ x.Bb()
		m.Rank = rankMask[r] ^ x.Bb()

		m.PawnAttack[types.White] = fileRankBit(f-1, r+1) | fileRankBit(f+1, r+1)
		m.PawnAttack[types.Black] = fileRankBit(f-1, r-1) | fileRankBit(f+1, r-1)
		m.PawnPush[types.White] = fileRankBit(f-1, r)
		m.PawnPush[types.Black] = fileRankBit(f+1, r)
		if r == 3 || r == 4 {
			if f > 0 {
				m.Enpassant = m.Enpassant.Set(types.Square(int(x) - 1))
			}
			if f < 7 {
				m.Enpassant = m.Enpassant.Set(types.Square(int(x) + 1))
			}
		}

		for _, kd := range types.KnightDeltas {
			m.Knight |= fileRankBit(f+kd[0], r+kd[1])
		}
		for _, kd := range dirs {
			m.King |= fileRankBit(f+kd.df, r+kd.dr)
		}

		inside := ^(((rankMask[0] | rankMask[7]) &^ rankMask[r]) | ((fileMask[0] | fileMask[7]) &^ fileMask[f]))
		m.Bishop.Mask = (m.Diagonal | m.Antidiagonal) & inside
		m.Rook.Mask = (m.Rank | m.File) & inside
	}

	buildMagics()
	initialized = true
}

func fileRankBit(f, r int) types.Bitboard {
	if f < 0 || f > 7 || r < 0 || r > 7 {
		return types.BbEmpty
	}
	return types.SquareOf(types.File(f), types.Rank(r)).Bb()
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// BishopAttack returns the bishop attack set from sq given occupied.
func BishopAttack(occupied types.Bitboard, sq types.Square) types.Bitboard {
	m := &Masks[sq].Bishop
	return m.Attacks[m.index(occupied)]
}

// RookAttack returns the rook attack set from sq given occupied.
func RookAttack(occupied types.Bitboard, sq types.Square) types.Bitboard {
	m := &Masks[sq].Rook
	return m.Attacks[m.index(occupied)]
}

// KnightAttack returns the knight attack set from sq.
func KnightAttack(sq types.Square) types.Bitboard {
	return Masks[sq].Knight
}

// KingAttack returns the king attack set from sq.
func KingAttack(sq types.Square) types.Bitboard {
	return Masks[sq].King
}

// PawnAttack returns the pawn capture set from sq for color c.
func PawnAttack(sq types.Square, c types.Color) types.Bitboard {
	return Masks[sq].PawnAttack[c]
}
