// mperft-go - a bitboard perft engine in Go
// Copyright (c) 2024 mperft-go contributors
// Licensed under the MIT License. See LICENSE file for details.

// Command mperft enumerates legal chess moves to a given depth from a
// position (the starting position by default), reporting either a leaf
// count, a bulk node-rate report across a range of depths, or a
// per-root-move divide, plus an optional internal self-test against
// nineteen known-good reference positions.
package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/abulmo/mperft-go/attacks"
	"github.com/abulmo/mperft-go/config"
	"github.com/abulmo/mperft-go/logging"
	"github.com/abulmo/mperft-go/movegen"
	"github.com/abulmo/mperft-go/position"
	"github.com/abulmo/mperft-go/tt"
	"github.com/abulmo/mperft-go/zobrist"
)

var out = message.NewPrinter(language.German)

const usage = `%s [--fen|-f <fen>] [--depth|-d <depth>] [--hash|-H <size>] [--bulk|-b] [--div|-r] [--capture|-c] [--loop|-l] | [--help|-h] | [--test|-t]
Enumerate moves.
	--help|-h            Print this message.
	--fen|-f <fen>       Test the position indicated in FEN format (default=starting position).
	--depth|-d <depth>   Test up to this depth (default=6).
	--bulk|-b            Do fast bulk counting at the last ply.
	--hash|-H <size>     Use a hashtable with <size> bits entries (default 0, no hashtable).
	--capture|-c         Generate only captures, promotions & check evasions.
	--loop|-l            Loop from depth 1 to <depth>.
	--div|-r             Print a node count for each move.
	--test|-t            Run an internal test to check the move generator.
`

type referenceCase struct {
	comment string
	fen     string
	depth   int
	result  uint64
}

var referenceCases = []referenceCase{
	{"1. Initial position", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", 6, 119060324},
	{"2.", "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq -", 5, 193690690},
	{"3.", "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - -", 7, 178633661},
	{"4.", "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1", 6, 706045033},
	{"5.", "rnbqkb1r/pp1p1ppp/2p5/4P3/2B5/8/PPP1NnPP/RNBQK2R w KQkq - 0 6", 3, 53392},
	{"6.", "r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 10", 6, 6923051137},
	{"7.", "8/5bk1/8/2Pp4/8/1K6/8/8 w - d6 0 1", 6, 824064},
	{"8. Enpassant capture gives check", "8/8/1k6/2b5/2pP4/8/5K2/8 b - d3 0 1", 6, 1440467},
	{"9. Short castling gives check", "5k2/8/8/8/8/8/8/4K2R w K - 0 1", 6, 661072},
	{"10. Long castling gives check", "3k4/8/8/8/8/8/8/R3K3 w Q - 0 1", 6, 803711},
	{"11. Castling", "r3k2r/1b4bq/8/8/8/8/7B/R3K2R w KQkq - 0 1", 4, 1274206},
	{"12. Castling prevented", "r3k2r/8/3Q4/8/8/5q2/8/R3K2R b KQkq - 0 1", 4, 1720476},
	{"13. Promote out of check", "2K2r2/4P3/8/8/8/8/8/3k4 w - - 0 1", 6, 3821001},
	{"14. Discovered check", "8/8/1P2K3/8/2n5/1q6/8/5k2 b - - 0 1", 5, 1004658},
	{"15. Promotion gives check", "4k3/1P6/8/8/8/8/K7/8 w - - 0 1", 6, 217342},
	{"16. Underpromotion gives check", "8/P1k5/K7/8/8/8/8/8 w - - 0 1", 6, 92683},
	{"17. Self stalemate", "K1k5/8/P7/8/8/8/8/8 w - - 0 1", 6, 2217},
	{"18. Stalemate/Checkmate", "8/k1P5/8/1K6/8/8/8/8 w - - 0 1", 7, 567584},
	{"19. Double check", "8/8/2k5/5q2/5n2/8/5K2/8 b - - 0 1", 4, 23527},
}

func runTests() int {
	fmt.Println("Testing the board generator")
	failed := 0
	for _, tc := range referenceCases {
		fmt.Printf("Test %s %s", tc.comment, tc.fen)
		b, err := position.NewPositionFEN(tc.fen)
		if err != nil {
			fmt.Printf(" FAILED ! %v\n", err)
			failed++
			continue
		}
		count := movegen.Count(b, tc.depth, true, true, nil)
		if count == tc.result {
			fmt.Println(" passed")
		} else {
			fmt.Printf(" FAILED ! %d != %d\n", count, tc.result)
			failed++
		}
	}
	return failed
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	log := logging.CLI()
	if err := config.Load("mperft.toml"); err != nil {
		log.Debugf("no mperft.toml loaded, using defaults: %v", err)
	}
	attacks.Init()
	zobrist.Init()

	fen := ""
	depth := config.Settings.DefaultDepth
	hashBits := config.Settings.DefaultHashBit
	bulk := false
	divide := false
	capture := false
	loop := false

	next := func(i int) (string, int) {
		if i+1 >= len(args) {
			fmt.Fprintf(os.Stderr, "missing argument for %s\n", args[i])
			os.Exit(2)
		}
		return args[i+1], i + 1
	}

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--fen", "-f":
			fen, i = next(i)
		case "--depth", "-d":
			var v string
			v, i = next(i)
			d, err := strconv.Atoi(v)
			if err != nil {
				fmt.Fprintf(os.Stderr, "bad depth %q: %v\n", v, err)
				return 2
			}
			depth = d
		case "--bulk", "-b":
			bulk = true
		case "--div", "-r":
			divide = true
		case "--capture", "-c":
			capture = true
		case "--loop", "-l":
			loop = true
		case "--hash", "-H":
			var v string
			v, i = next(i)
			h, err := strconv.Atoi(v)
			if err != nil {
				fmt.Fprintf(os.Stderr, "bad hash size %q: %v\n", v, err)
				return 2
			}
			hashBits = h
		case "--test", "-t":
			if runTests() > 0 {
				return 1
			}
			return 0
		case "--help", "-h":
			fmt.Printf(usage, "mperft")
			return 0
		default:
			if d, err := strconv.Atoi(args[i]); err == nil {
				depth = d
				continue
			}
			fmt.Printf(usage, "mperft")
			return 2
		}
	}

	if hashBits > tt.MaxBits {
		hashBits = tt.MaxBits
	}
	var cache *tt.TranspositionTable
	if hashBits > 0 {
		cache = tt.New(hashBits)
	}

	var b *position.Board
	if fen != "" {
		parsed, err := position.NewPositionFEN(fen)
		if err != nil {
			log.Errorf("invalid fen: %v", err)
			fmt.Fprintf(os.Stderr, "invalid fen: %v\n", err)
			return 2
		}
		b = parsed
	} else {
		b = position.NewPosition()
	}

	if depth < 1 {
		depth = 1
	}
	doQuiet := !capture

	fmt.Print("Perft setting: ")
	if cache == nil {
		fmt.Print("no hashing; ")
	} else {
		fmt.Printf("hashtable size: %d bits; ", hashBits)
	}
	if bulk {
		fmt.Print("with")
	} else {
		fmt.Print("no")
	}
	fmt.Print(" bulk counting;")
	if capture {
		fmt.Print(" capture only;")
	}
	fmt.Println()
	fmt.Print(b.String())

	var total uint64
	start := time.Now()

	if divide {
		entries := movegen.Divide(b, depth, bulk, doQuiet, cache)
		for _, e := range entries {
			total += e.Nodes
			out.Printf("%5s %16d\n", e.Move.String(), e.Nodes)
		}
	} else {
		from := depth
		if loop {
			from = 1
		}
		for d := from; d <= depth; d++ {
			partial := -time.Since(start).Seconds()
			count := movegen.Count(b, d, bulk, doQuiet, cache)
			total += count
			partial += time.Since(start).Seconds()
			rate := float64(0)
			if partial > 0 {
				rate = float64(count) / partial
			}
			out.Printf("perft %2d : %15d leaves in %10.3f s %12.0f leaves/s\n", d, count, partial, rate)
		}
	}

	elapsed := time.Since(start).Seconds()
	if divide || loop {
		rate := float64(0)
		if elapsed > 0 {
			rate = float64(total) / elapsed
		}
		out.Printf("total    : %15d leaves in %10.3f s %12.0f leaves/s\n", total, elapsed, rate)
	}

	return 0
}
