// mperft-go - a bitboard perft engine in Go
// Copyright (c) 2024 mperft-go contributors
// Licensed under the MIT License. See LICENSE file for details.

package position

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/abulmo/mperft-go/types"
)

// ParseError reports a malformed FEN string, naming the byte offset at
// which parsing stopped making sense.
type ParseError struct {
	FEN    string
	Offset int
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("FEN: %s in %q at offset %d", e.Reason, e.FEN, e.Offset)
}

// NewPositionFEN parses fen (Forsyth-Edwards Notation: piece placement,
// side to move, castling rights, en-passant square, with the half-move
// and full-move counters optional and ignored) into a freshly built
// board.
func NewPositionFEN(fen string) (*Board, error) {
	b := &Board{}
	s := fen

	r, f := 7, 0
	i := 0
	for i < len(s) && s[i] != ' ' {
		switch ch := s[i]; {
		case ch == '/':
			if r <= 0 {
				return nil, &ParseError{fen, i, "too many ranks"}
			}
			if f != 8 {
				return nil, &ParseError{fen, i, "missing square"}
			}
			f = 0
			r--
		case ch >= '0' && ch <= '9':
			f += int(ch - '0')
			if f > 8 {
				return nil, &ParseError{fen, i, "file overflow"}
			}
		default:
			if f >= 8 {
				return nil, &ParseError{fen, i, "file overflow"}
			}
			cp := types.ColoredPieceFromChar(ch)
			if cp == types.ColoredPieceSize {
				return nil, &ParseError{fen, i, "bad piece"}
			}
			x := types.SquareOf(types.File(f), types.Rank(r))
			b.Grid[x] = cp
			b.Piece[cp.PieceOf()] |= x.Bb()
			b.Color[cp.ColorOf()] |= x.Bb()
			if cp.PieceOf() == types.King {
				b.KingSquare[cp.ColorOf()] = x
			}
			f++
		}
		i++
	}
	if r != 0 || f != 8 {
		return nil, &ParseError{fen, i, "missing square"}
	}

	i = skipSpaces(s, i)
	if i >= len(s) {
		return nil, &ParseError{fen, i, "missing side to move"}
	}
	b.Player = types.ColorFromChar(s[i])
	if b.Player == types.ColorNone {
		return nil, &ParseError{fen, i, "bad side to move"}
	}
	i++

	cur := b.Current()

	i = skipSpaces(s, i)
	if i < len(s) && s[i] == '-' {
		i++
	} else {
		for i < len(s) && s[i] != ' ' {
			switch s[i] {
			case 'K':
				cur.Castling |= CastleWK
			case 'Q':
				cur.Castling |= CastleWQ
			case 'k':
				cur.Castling |= CastleBK
			case 'q':
				cur.Castling |= CastleBQ
			}
			i++
		}
	}
	if b.Grid[types.SqE1] == types.WKing {
		if b.Grid[types.SqH1] != types.WRook {
			cur.Castling &^= CastleWK
		}
		if b.Grid[types.SqA1] != types.WRook {
			cur.Castling &^= CastleWQ
		}
	} else {
		cur.Castling &^= CastleWK | CastleWQ
	}
	if b.Grid[types.SqE8] == types.BKing {
		if b.Grid[types.SqH8] != types.BRook {
			cur.Castling &^= CastleBK
		}
		if b.Grid[types.SqA8] != types.BRook {
			cur.Castling &^= CastleBQ
		}
	} else {
		cur.Castling &^= CastleBK | CastleBQ
	}

	cur.Enpassant = types.SqNone
	i = skipSpaces(s, i)
	if i < len(s) && s[i] == '-' {
		i++
	} else if i < len(s) {
		if i+2 > len(s) {
			return nil, &ParseError{fen, i, "bad en-passant square"}
		}
		sq := types.MakeSquare(s[i : i+2])
		if sq == types.SqNone {
			return nil, &ParseError{fen, i, "bad en-passant square"}
		}
		cur.Enpassant = sq
		i += 2
	}

	b.Ply = 1
	cur.Key = b.computeKey()
	b.generateCheckers()

	return b, nil
}

func skipSpaces(s string, i int) int {
	for i < len(s) && s[i] == ' ' {
		i++
	}
	return i
}

// String renders the board as an 8x8 grid followed by the side to
// move, castling rights and en-passant square - a debug convenience,
// never consulted by move generation or the perft walker.
func (b *Board) String() string {
	var sb strings.Builder
	sb.WriteString("  a b c d e f g h\n")
	for r := 7; r >= 0; r-- {
		sb.WriteString(strconv.Itoa(r + 1))
		sb.WriteByte(' ')
		for f := 0; f <= 7; f++ {
			sq := types.SquareOf(types.File(f), types.Rank(r))
			sb.WriteString(b.Grid[sq].String())
			sb.WriteByte(' ')
		}
		sb.WriteString(strconv.Itoa(r + 1))
		sb.WriteByte('\n')
	}
	sb.WriteString("  a b c d e f g h\n")
	sb.WriteString(b.Player.String())
	sb.WriteString(", ")
	cur := b.Current()
	if cur.Castling&CastleWK != 0 {
		sb.WriteByte('K')
	}
	if cur.Castling&CastleWQ != 0 {
		sb.WriteByte('Q')
	}
	if cur.Castling&CastleBK != 0 {
		sb.WriteByte('k')
	}
	if cur.Castling&CastleBQ != 0 {
		sb.WriteByte('q')
	}
	if cur.Enpassant != types.SqNone {
		sb.WriteString(", ep: ")
		sb.WriteString(cur.Enpassant.String())
	}
	sb.WriteByte('\n')
	return sb.String()
}
