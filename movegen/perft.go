// mperft-go - a bitboard perft engine in Go
// Copyright (c) 2024 mperft-go contributors
// Licensed under the MIT License. See LICENSE file for details.

package movegen

import (
	"github.com/abulmo/mperft-go/position"
	"github.com/abulmo/mperft-go/tt"
	"github.com/abulmo/mperft-go/types"
	"github.com/abulmo/mperft-go/zobrist"
)

// Count returns the number of leaf positions reached after depth plies
// from b. doQuiet selects full legal move generation; passing false
// restricts each ply to captures, promotions and en-passant captures
// only - the "-c" diagnostic mode - except that a position in check that
// Count expands itself is given every legal evasion. With bulk, the last
// ply's CountMoves call applies doQuiet as given, in check or not. bulk
// shortcuts the last ply to a single CountMoves call instead of making
// and unmaking every move. cache, if non-nil, memoizes the child
// subtrees of every node with more than two plies left, by (position
// key, remaining depth).
func Count(b *position.Board, depth int, bulk, doQuiet bool, cache *tt.TranspositionTable) uint64 {
	if depth <= 0 {
		return 1
	}
	checkers := b.Current().Checkers != types.BbEmpty
	useHash := cache != nil && depth > 2

	moves := Generate(b, make([]types.Move, 0, MaxMoves), doQuiet || checkers)

	var total uint64
	for _, move := range moves {
		var key zobrist.Key
		if useHash {
			key = b.NextKey(move)
			cache.Prefetch(key)
		}
		b.MakeMove(move)
		switch {
		case depth == 1:
			total++
		case bulk && depth == 2:
			total += uint64(CountMoves(b, doQuiet))
		case useHash:
			if n, found := cache.Probe(key, depth-1); found {
				total += n
			} else {
				n := Count(b, depth-1, bulk, doQuiet, cache)
				cache.Store(key, depth-1, n)
				total += n
			}
		default:
			total += Count(b, depth-1, bulk, doQuiet, cache)
		}
		b.UnmakeMove(move)
	}
	return total
}

// DivideEntry is one root move's contribution to a Divide call.
type DivideEntry struct {
	Move  types.Move
	Nodes uint64
}

// Divide enumerates b's root moves (generated with doQuiet applied
// literally, unlike Count's internal recursion, which always falls
// back to full legal generation while in check - matching the
// reference tool's own "-r" flag, which reports the raw per-move leaf
// count the user asked for even along a capture-only line) and reports
// the leaf count reached through each one.
func Divide(b *position.Board, depth int, bulk, doQuiet bool, cache *tt.TranspositionTable) []DivideEntry {
	if depth <= 0 {
		depth = 1
	}
	moves := Generate(b, make([]types.Move, 0, MaxMoves), doQuiet)
	entries := make([]DivideEntry, 0, len(moves))
	for _, move := range moves {
		b.MakeMove(move)
		var nodes uint64
		if depth <= 1 {
			nodes = 1
		} else {
			nodes = Count(b, depth-1, bulk, doQuiet, cache)
		}
		b.UnmakeMove(move)
		entries = append(entries, DivideEntry{Move: move, Nodes: nodes})
	}
	return entries
}

// Perft accumulates the supplemented per-category leaf statistics
// (captures, en-passant captures, castles, promotions, checks and
// checkmates) alongside the raw node count, in the style of a fuller
// perft report than the reference tool's own plain leaf count.
type Perft struct {
	Nodes      uint64
	Captures   uint64
	EnPassants uint64
	Castles    uint64
	Promotions uint64
	Checks     uint64
	CheckMates uint64
}

// Verbose walks depth plies from b, tabulating Perft's per-category
// counters at the final ply of every line (every intermediate ply
// still uses full legal generation so the tree itself is explored
// correctly, matching Count's own in-check handling).
func Verbose(b *position.Board, depth int) *Perft {
	if depth <= 0 {
		depth = 1
	}
	p := &Perft{}
	verboseWalk(b, depth, p)
	return p
}

func verboseWalk(b *position.Board, depth int, p *Perft) {
	moves := Generate(b, make([]types.Move, 0, MaxMoves), true)
	for _, move := range moves {
		if depth > 1 {
			b.MakeMove(move)
			verboseWalk(b, depth-1, p)
			b.UnmakeMove(move)
			continue
		}

		from := move.From()
		to := move.To()
		piece := b.Grid[from].PieceOf()
		cur := b.Current()
		isEnPassant := piece == types.Pawn && to == cur.Enpassant
		isCapture := b.Grid[to] != types.Empty || isEnPassant
		isCastle := piece == types.King && absInt(int(to)-int(from)) == 2
		isPromotion := move.PromotionTag() != types.NoPromotion

		b.MakeMove(move)
		p.Nodes++
		if isCapture {
			p.Captures++
		}
		if isEnPassant {
			p.EnPassants++
		}
		if isCastle {
			p.Castles++
		}
		if isPromotion {
			p.Promotions++
		}
		if b.InCheck() {
			p.Checks++
			if len(Generate(b, make([]types.Move, 0, MaxMoves), true)) == 0 {
				p.CheckMates++
			}
		}
		b.UnmakeMove(move)
	}
}
