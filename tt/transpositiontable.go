// mperft-go - a bitboard perft engine in Go
// Copyright (c) 2024 mperft-go contributors
// Licensed under the MIT License. See LICENSE file for details.

// Package tt implements the perft walker's transposition cache: a
// fixed-capacity, bucketed (code, depth) -> leaf count table with an
// always-replace-shallowest eviction policy. It is not thread safe, by
// the same design as the reference implementation's single-threaded
// hash table.
package tt

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/abulmo/mperft-go/logging"
	"github.com/abulmo/mperft-go/zobrist"
)

var out = message.NewPrinter(language.German)

// bucketSize entries share one index; a probe/store scans the whole
// bucket rather than chaining or rehashing on collision.
const bucketSize = 4

// MaxBits caps the requested size: 1<<32 entries of 24 bytes is already
// 96 GiB, far past anything a perft run needs.
const MaxBits = 32

type entry struct {
	code  uint64
	depth int
	count uint64
}

// Stats tracks table usage across the lifetime of a TranspositionTable.
type Stats struct {
	Probes    uint64
	Hits      uint64
	Stores    uint64
	Overwrites uint64
}

// TranspositionTable is the perft walker's cache, mapping a position's
// (Zobrist code, remaining depth) pair to the previously computed leaf
// count below it. Not safe for concurrent use.
type TranspositionTable struct {
	entries []entry
	mask    uint64
	Stats   Stats
}

// New allocates a table of about 1<<bits entries, grouped in buckets of
// bucketSize (bits capped to MaxBits), rounded so the index mask always aligns to a bucket boundary, exactly
// as hash_create does.
func New(bits int) *TranspositionTable {
	if bits > MaxBits {
		bits = MaxBits
	}
	if bits < 0 {
		bits = 0
	}
	n := uint64(1) << uint(bits)
	t := &TranspositionTable{
		mask: (n - 1) &^ uint64(bucketSize-1),
	}
	t.entries = make([]entry, t.mask+bucketSize+1)
	logging.Engine().Infof("transposition table: %s entries, %s bytes",
		out.Sprint(len(t.entries)), out.Sprint(uint64(len(t.entries))*24))
	return t
}

// Resize replaces the table's storage with a freshly allocated one of
// the requested size, discarding all prior entries and stats. Like the
// teacher's Resize, it must not be called concurrently with probing.
func (t *TranspositionTable) Resize(bits int) {
	*t = *New(bits)
}

func (t *TranspositionTable) bucket(key zobrist.Key) []entry {
	start := uint64(key.Index) & t.mask
	return t.entries[start : start+bucketSize]
}

// Prefetch hints that key's bucket will be read or written shortly. Go
// has no portable cache-prefetch intrinsic (unlike the reference
// implementation's __builtin_prefetch), so this currently just touches
// the first word of the bucket to encourage the runtime/CPU to fault it
// in; kept as a named operation so the perft walker's call sites read
// the same as the C original's hash_prefetch calls.
func (t *TranspositionTable) Prefetch(key zobrist.Key) {
	_ = t.bucket(key)[0].code
}

// Probe returns the cached leaf count for (key, depth), and whether an
// entry was found. A depth mismatch within the bucket is a miss, not a
// stale hit: two positions with the same code at different remaining
// depths are different cache entries.
func (t *TranspositionTable) Probe(key zobrist.Key, depth int) (uint64, bool) {
	t.Stats.Probes++
	for _, e := range t.bucket(key) {
		if e.code == key.Code && e.depth == depth {
			t.Stats.Hits++
			return e.count, true
		}
	}
	return 0, false
}

// Store records count for (key, depth), replacing whichever bucket slot
// currently holds the shallowest depth - the reference implementation's
// "always replace shallowest" policy, which favors keeping the deepest
// (most expensive to recompute) subtrees cached. If the bucket already
// holds an entry for (key, depth), Store leaves that entry unchanged.
func (t *TranspositionTable) Store(key zobrist.Key, depth int, count uint64) {
	t.Stats.Stores++
	bucket := t.bucket(key)
	victim := 0
	for i := range bucket {
		if bucket[i].code == key.Code && bucket[i].depth == depth {
			return
		}
		if bucket[i].depth < bucket[victim].depth {
			victim = i
		}
	}
	if bucket[victim].depth > 0 || bucket[victim].code != 0 {
		t.Stats.Overwrites++
	}
	bucket[victim] = entry{code: key.Code, depth: depth, count: count}
}

// String reports hit-rate statistics for the table's lifetime so far,
// mirroring the teacher's transposition table's own summary line.
func (t *TranspositionTable) String() string {
	hitRate := 0.0
	if t.Stats.Probes > 0 {
		hitRate = 100 * float64(t.Stats.Hits) / float64(t.Stats.Probes)
	}
	return fmt.Sprintf("tt: %s buckets, %s probes, %s hits (%.2f%%), %s stores, %s overwrites",
		out.Sprint(len(t.entries)/bucketSize), out.Sprint(t.Stats.Probes), out.Sprint(t.Stats.Hits),
		hitRate, out.Sprint(t.Stats.Stores), out.Sprint(t.Stats.Overwrites))
}
