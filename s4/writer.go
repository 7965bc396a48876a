// Copyright 2023, the s4kit authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package s4

// streamWriter is the fixed-capacity output buffer of one decode call. The
// write cursor only moves forward, and every offset strictly below it stays
// readable; back-reference copies read from that region.
type streamWriter struct {
	buf []byte
	off int
}

func (sw *streamWriter) Init(size int) {
	sw.buf = make([]byte, size)
	sw.off = 0
}

// Put appends one byte, or panics with ErrOutputFull once the declared
// size is reached.
func (sw *streamWriter) Put(c byte) {
	if sw.off >= len(sw.buf) {
		panic(ErrOutputFull)
	}
	sw.buf[sw.off] = c
	sw.off++
}

// Copy copies cnt bytes starting dist bytes behind the write cursor. The
// regions may overlap: copying proceeds byte by byte, so a copy may read
// bytes it has just written, expanding repeating runs.
func (sw *streamWriter) Copy(dist, cnt int) {
	pos := sw.off - dist
	if pos < 0 || pos >= sw.off {
		panic(ErrOutOfSync)
	}
	for ; cnt > 0; cnt-- {
		if sw.off >= len(sw.buf) {
			panic(ErrOutputFull)
		}
		sw.buf[sw.off] = sw.buf[pos]
		sw.off++
		pos++
	}
}

// ByteAt reads back a previously written byte. Positions at or beyond the
// write cursor are never produced by a well-formed stream; they panic with
// ErrOutOfSync rather than touching unwritten memory.
func (sw *streamWriter) ByteAt(pos int) byte {
	if pos < 0 || pos >= sw.off {
		panic(ErrOutOfSync)
	}
	return sw.buf[pos]
}

func (sw *streamWriter) Full() bool { return sw.off == len(sw.buf) }

func (sw *streamWriter) Offset() int { return sw.off }

func (sw *streamWriter) Length() int { return len(sw.buf) }

func (sw *streamWriter) LeftSize() int { return len(sw.buf) - sw.off }

// Bytes hands the filled region to the caller.
func (sw *streamWriter) Bytes() []byte { return sw.buf[:sw.off] }
