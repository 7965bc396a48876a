// Copyright 2023, the s4kit authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package s4 implements the compressed chunk format used throughout the
// Settlers IV game files.
//
// The format combines an adaptive Huffman-style symbol model with LZ77
// back-references. A 4-bit selector indexes the currently installed code
// table, which yields an index into an adaptive symbol directory; symbols
// below 0x100 are literal bytes, 0x100-0x10F encode back-reference lengths,
// 0x110 installs a replacement code table read inline from the stream, and
// 0x111 terminates a sub-segment. Several sub-segments may be multiplexed
// into one chunk, each realigned to a byte boundary.
//
// Only decoding is implemented. The host application reads legacy assets
// and never writes them.
package s4

import "runtime"

const (
	numSymbols = 0x112 // Size of the symbol space
	numSlots   = 16    // Number of 4-bit selector slots per code table

	maxLitSym      = 0x0ff // Largest literal byte symbol
	minLenSym      = 0x100 // First back-reference length symbol
	maxShortLenSym = 0x107 // Last length symbol without extra bits
	maxLenSym      = 0x10f // Last back-reference length symbol
	swapSym        = 0x110 // Install a replacement code table
	endSym         = 0x111 // End of sub-segment or stream

	selectorBits     = 4 // Leading bits of every code word
	distSelectorBits = 3 // Selector for the distance range table

	minCopyLen  = 4  // Implicit minimum back-reference length
	maxSlotBits = 15 // Sanity bound on inline table slot widths

	// A stream-end symbol with more than this many whole bytes left is a
	// sub-segment boundary rather than the true end of the stream.
	endSlackBytes = 2
)

// Error is the wrapper type for errors specific to this library.
type Error string

func (e Error) Error() string { return "s4: " + string(e) }

var (
	// ErrOutOfSync indicates that a decoded code resolved to an index
	// outside the symbol space, meaning the decoder lost synchronization
	// with the stream.
	ErrOutOfSync error = Error("symbol index out of range")

	// ErrOutputFull indicates that a literal or back-reference copy would
	// write past the declared unpacked length.
	ErrOutputFull error = Error("output buffer exhausted")

	// ErrDesyncAtEnd indicates that the stream reported its end before the
	// output reached the declared unpacked length.
	ErrDesyncAtEnd error = Error("stream end disagrees with declared size")

	// ErrUnexpectedEOF indicates that the compressed range was exhausted
	// in the middle of decoding.
	ErrUnexpectedEOF error = Error("unexpected end of compressed stream")
)

func errRecover(err *error) {
	switch ex := recover().(type) {
	case nil:
		// Do nothing.
	case runtime.Error:
		panic(ex)
	case error:
		*err = ex
	default:
		panic(ex)
	}
}
