// Copyright 2023, the s4kit authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package s4

// bitReader is an MSB-first bit cursor over an in-memory byte range.
//
// Reads that run past the end of the range do not fail hard. Legacy assets
// occasionally carry trailing padding and the original loader tolerates
// final reads landing in it, so such reads return zero and raise the fault
// flag instead. The driver checks Eof and Fault around reads it must trust.
type bitReader struct {
	src     []byte
	pos     int    // Next unconsumed byte in src
	bufBits uint32 // Staged bits, held in the low numBits bits
	numBits uint   // Number of valid bits in bufBits, always < 32
	fault   bool   // Some read ran past the end of src
}

func (br *bitReader) Init(src []byte) {
	*br = bitReader{src: src}
}

// ReadBits reads nb bits in MSB order, staging one source byte at a time.
// nb must be at most 16. If the source cannot cover the request, all
// remaining bits are consumed, zero is returned, and the fault flag is set.
func (br *bitReader) ReadBits(nb uint) uint {
	for br.numBits < nb {
		if br.pos >= len(br.src) {
			br.bufBits, br.numBits = 0, 0
			br.fault = true
			return 0
		}
		br.bufBits = br.bufBits<<8 | uint32(br.src[br.pos])
		br.numBits += 8
		br.pos++
	}
	br.numBits -= nb
	val := uint(br.bufBits >> br.numBits)
	br.bufBits &= 1<<br.numBits - 1
	return val
}

// AlignToByte discards the remainder of a partially consumed byte so that
// the cursor sits on the next byte boundary. Whole bytes already staged in
// the bit buffer stay readable.
func (br *bitReader) AlignToByte() {
	br.numBits -= br.numBits % 8
	br.bufBits &= 1<<br.numBits - 1
}

// BytesLeft reports how many whole unconsumed bytes remain, counting bytes
// still staged in the bit buffer.
func (br *bitReader) BytesLeft() int {
	return len(br.src) - br.pos + int(br.numBits/8)
}

// Buffered reports the number of bits currently staged.
func (br *bitReader) Buffered() uint {
	return br.numBits
}

// Eof reports whether no unconsumed bits remain anywhere.
func (br *bitReader) Eof() bool {
	return br.numBits == 0 && br.pos >= len(br.src)
}

// Fault reports whether any read ran past the end of the source.
func (br *bitReader) Fault() bool {
	return br.fault
}

// InputOffset reports the number of whole source bytes consumed so far,
// counting a partially consumed byte as consumed.
func (br *bitReader) InputOffset() int64 {
	return int64(br.pos) - int64(br.numBits/8)
}
