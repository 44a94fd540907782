// mperft-go - a bitboard perft engine in Go
// Copyright (c) 2024 mperft-go contributors
// Licensed under the MIT License. See LICENSE file for details.

package attacks

import "github.com/abulmo/mperft-go/types"

// Magic holds one square's magic-bitboard slider attack table: the
// relevant blocker mask, the magic multiplier, the right-shift amount
// and a slice into this piece type's shared arena.
//
// The arena is modeled as a slice offset into one contiguous backing
// array rather than a raw pointer, which keeps the table free of
// aliasing hazards while preserving the reference implementation's
// single-allocation-per-piece-type layout.
type Magic struct {
	Mask    types.Bitboard
	Magic   uint64
	Shift   uint
	Attacks []types.Bitboard
}

func (m *Magic) index(occupied types.Bitboard) uint {
	occ := uint64(occupied) & uint64(m.Mask)
	return uint((occ * m.Magic) >> m.Shift)
}

// bishopMagicCount and rookMagicCount are the exact arena sizes from the
// reference implementation (0x1480 and 0x19000 entries).
const (
	bishopMagicCount = 0x1480
	rookMagicCount   = 0x19000
)

// rookMagics and bishopMagics are the fixed per-square magic multipliers.
// These constants are part of the specification and are reproduced
// bit-for-bit; regenerating them via classical magic search is possible
// but requires re-verifying the full perft correctness suite.
var rookMagics = [64]uint64{
	0x808000645080c000, 0x208020001480c000, 0x4180100160008048, 0x8180100018001680, 0x4200082010040201, 0x8300220400010008, 0x3100120000890004, 0x4080004500012180,
	0x01548000a1804008, 0x4881004005208900, 0x0480802000801008, 0x02e8808010008800, 0x08cd804800240080, 0x8a058002008c0080, 0x0514000c480a1001, 0x0101000282004d00,
	0x2048848000204000, 0x3020088020804000, 0x4806020020841240, 0x6080420008102202, 0x0010050011000800, 0xac00808004000200, 0x0000010100020004, 0x1500020004004581,
	0x0004c00180052080, 0x0220028480254000, 0x2101200580100080, 0x0407201200084200, 0x0018004900100500, 0x100200020008e410, 0x0081020400100811, 0x0000012200024494,
	0x8006c002808006a5, 0x0004201000404000, 0x0005402202001180, 0x0000081001002100, 0x0000100801000500, 0x4000020080800400, 0x4005050214001008, 0x810100118b000042,
	0x0d01020040820020, 0x000140a010014000, 0x0420001500210040, 0x0054210010030009, 0x0004000408008080, 0x0002000400090100, 0x0000840200010100, 0x0000233442820004,
	0x800a42002b008200, 0x0240200040009080, 0x0242001020408200, 0x4000801000480480, 0x2288008044000880, 0x000a800400020180, 0x0030011002880c00, 0x0041110880440200,
	0x0002001100442082, 0x01a0104002208101, 0x080882014010200a, 0x0000100100600409, 0x0002011048204402, 0x0012000168041002, 0x080100008a000421, 0x0240022044031182,
}

var bishopMagics = [64]uint64{
	0x88b030028800d040, 0x018242044c008010, 0x0010008200440000, 0x4311040888800a00, 0x001910400000410a, 0x2444240440000000, 0x0cd2080108090008, 0x2048242410041004,
	0x8884441064080180, 0x00042131420a0240, 0x0028882800408400, 0x204384040b820200, 0x0402040420800020, 0x0000020910282304, 0x0096004b10082200, 0x4000a44218410802,
	0x0808034002081241, 0x00101805210e1408, 0x9020400208010220, 0x000820050c010044, 0x0024005480a00000, 0x0000200200900890, 0x808040049c100808, 0x9020202200820802,
	0x0410282124200400, 0x0090106008010110, 0x8001100501004201, 0x0104080004030c10, 0x0080840040802008, 0x2008008102406000, 0x2000888004040460, 0x00d0421242410410,
	0x8410100401280800, 0x0801012000108428, 0x0000402080300b04, 0x0c20020080480080, 0x40100e0201502008, 0x4014208200448800, 0x4050020607084501, 0x1002820180020288,
	0x800610040540a0c0, 0x0301009014081004, 0x2200610040502800, 0x0300442011002800, 0x0001022009002208, 0x0110011000202100, 0x1464082204080240, 0x0021310205800200,
	0x0814020210040109, 0xc102008208c200a0, 0xc100702128080000, 0x0001044205040000, 0x0001041002020000, 0x4200040408021000, 0x004004040c494000, 0x2010108900408080,
	0x0000820801040284, 0x0800004118111000, 0x0203040201108800, 0x2504040804208803, 0x0228000908030400, 0x0010402082020200, 0x00a0402208010100, 0x30c0214202044104,
}

var bishopArena [bishopMagicCount]types.Bitboard
var rookArena [rookMagicCount]types.Bitboard

// buildMagics fills every square's Masks[x].Bishop/Rook entry (magic,
// shift and a slice of the shared arena) and computes
// every slider attack for every occupancy subset of each square's mask
// via Carry-Rippler enumeration. Masks.Bishop/Rook.Mask must already be
// populated by the caller (Init in masks.go).
func buildMagics() {
	bishopOffset, rookOffset := 0, 0

	for x := types.SqA1; x <= types.SqH8; x++ {
		m := &Masks[x]

		mb := &m.Bishop
		mb.Magic = bishopMagics[x]
		mb.Shift = uint(64 - mb.Mask.PopCount())
		size := 1 << uint(mb.Mask.PopCount())
		mb.Attacks = bishopArena[bishopOffset : bishopOffset+size]
		bishopOffset += size
		fillSliderAttacks(mb, x, types.BishopDirections)

		mr := &m.Rook
		mr.Magic = rookMagics[x]
		mr.Shift = uint(64 - mr.Mask.PopCount())
		size = 1 << uint(mr.Mask.PopCount())
		mr.Attacks = rookArena[rookOffset : rookOffset+size]
		rookOffset += size
		fillSliderAttacks(mr, x, types.RookDirections)
	}
}

// fillSliderAttacks enumerates every subset of m.Mask via the
// Carry-Rippler trick (o = (o-mask)&mask until it returns to zero) and
// stores the ray-cast attack for that occupancy at its magic index.
func fillSliderAttacks(m *Magic, sq types.Square, directions [4][2]int) {
	var o types.Bitboard
	for {
		m.Attacks[m.index(o)] = slidingAttack(sq, o, directions)
		o = (o - m.Mask) & m.Mask
		if o == 0 {
			break
		}
	}
}

// slidingAttack ray-casts from sq along each of the four directions,
// stopping after including the first blocker found in occupied.
func slidingAttack(sq types.Square, occupied types.Bitboard, directions [4][2]int) types.Bitboard {
	var attack types.Bitboard
	f0, r0 := int(sq.FileOf()), int(sq.RankOf())
	for _, d := range directions {
		for f, r := f0+d[0], r0+d[1]; f >= 0 && f <= 7 && r >= 0 && r <= 7; f, r = f+d[0], r+d[1] {
			b := types.SquareOf(types.File(f), types.Rank(r)).Bb()
			attack |= b
			if occupied&b != 0 {
				break
			}
		}
	}
	return attack
}
