// Copyright 2023, the s4kit authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package s4

// huffTable describes an installed code table: for each of the 16 possible
// 4-bit selectors, the number of extra bits to read and the first symbol
// index of the selector's range. Invariant: bases[i] is the sum of
// 1<<lens[j] for all j < i, so the table always spans a canonical,
// prefix-free, cumulative code space.
type huffTable struct {
	lens  [numSlots]uint8
	bases [numSlots]uint32
}

func (ht *huffTable) init(lens []uint8) {
	var total uint32
	for i, n := range lens {
		ht.lens[i] = n
		ht.bases[i] = total
		total += 1 << n
	}
}

// readTable reads an inline replacement table from the stream, as triggered
// by the table-swap control symbol. Each slot's width is unary coded as a
// delta against the previous slot: the count of 0 bits before the
// terminating 1 bit is added to the running width. Slot widths therefore
// never decrease across the table.
func (br *bitReader) readTable(ht *huffTable) {
	var lens [numSlots]uint8
	var n uint8
	for i := range lens {
		for br.ReadBits(1) == 0 {
			if br.Eof() {
				panic(ErrUnexpectedEOF)
			}
			if n++; n > maxSlotBits {
				panic(ErrOutOfSync)
			}
		}
		lens[i] = n
	}
	ht.init(lens[:])
}

// rangeCode maps one selector of a fixed lookup table to the range of
// values it covers.
type rangeCode struct {
	base uint32 // Starting base offset of the range
	bits uint32 // Bit-width of a subsequent integer to add to base offset
}

var (
	defaultTable huffTable // Code table installed at the start of every chunk

	lenLUT  [maxLenSym - maxShortLenSym]rangeCode // Long length codes 0x108-0x10F
	distLUT [1 << distSelectorBits]rangeCode      // Distance selector ranges
)

func init() {
	initPrefixLUTs()
}

func initPrefixLUTs() {
	// The default slot widths cover the 0x112 symbol indexes exactly, so a
	// stream decoded under the default table can never leave the symbol
	// space. Only inline replacement tables can oversubscribe it.
	defaultTable.init([]uint8{0, 0, 1, 1, 1, 1, 2, 2, 5, 5, 5, 5, 5, 5, 5, 5})

	// The long length codes continue the implicit 4..11 run of the short
	// codes contiguously: lengths 12 and up.
	for i, base := 0, 8; i < len(lenLUT); i++ {
		lenLUT[i] = rangeCode{base: uint32(base), bits: uint32(i + 1)}
		base += 1 << uint(i+1)
	}

	// The distance ranges tile [0, 1<<16) exactly under
	// dist = (low | high<<(bits+1)) + base<<9.
	for i, base := 0, 0; i < len(distLUT); i++ {
		nb := uint(0)
		if i > 0 {
			nb = uint(i - 1)
		}
		distLUT[i] = rangeCode{base: uint32(base), bits: uint32(nb)}
		base += 1 << nb
	}
}
