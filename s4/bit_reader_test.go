// Copyright 2023, the s4kit authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package s4

import "testing"

func TestBitReader(t *testing.T) {
	var br bitReader

	br.Init([]byte{0xa5, 0x5a})
	if got := br.ReadBits(4); got != 0xa {
		t.Errorf("ReadBits(4) = %#x, want 0xa", got)
	}
	if got := br.ReadBits(4); got != 0x5 {
		t.Errorf("ReadBits(4) = %#x, want 0x5", got)
	}
	if got := br.ReadBits(8); got != 0x5a {
		t.Errorf("ReadBits(8) = %#x, want 0x5a", got)
	}
	if !br.Eof() {
		t.Errorf("Eof() = false, want true")
	}
	if br.Fault() {
		t.Errorf("Fault() = true, want false")
	}

	// Reads spanning byte boundaries come out MSB-first.
	br.Init([]byte{0xff, 0x00, 0xc3})
	if got := br.ReadBits(3); got != 0x7 {
		t.Errorf("ReadBits(3) = %#x, want 0x7", got)
	}
	if got := br.ReadBits(10); got != 0x3e0 {
		t.Errorf("ReadBits(10) = %#x, want 0x3e0", got)
	}
	if got := br.ReadBits(11); got != 0x0c3 {
		t.Errorf("ReadBits(11) = %#x, want 0x0c3", got)
	}
	if !br.Eof() {
		t.Errorf("Eof() = false, want true")
	}
}

func TestBitReaderAlign(t *testing.T) {
	var br bitReader

	br.Init([]byte{0xe0, 0x12, 0x34})
	if got := br.ReadBits(3); got != 0x7 {
		t.Errorf("ReadBits(3) = %#x, want 0x7", got)
	}
	br.AlignToByte()
	if got := br.ReadBits(8); got != 0x12 {
		t.Errorf("ReadBits(8) after align = %#x, want 0x12", got)
	}
	if got := br.BytesLeft(); got != 1 {
		t.Errorf("BytesLeft() = %d, want 1", got)
	}
	if got := br.InputOffset(); got != int64(2) {
		t.Errorf("InputOffset() = %d, want 2", got)
	}

	// Aligning an already aligned cursor is a no-op.
	br.AlignToByte()
	if got := br.ReadBits(8); got != 0x34 {
		t.Errorf("ReadBits(8) = %#x, want 0x34", got)
	}
}

func TestBitReaderLenient(t *testing.T) {
	var br bitReader

	// A read that the source cannot cover consumes the remaining bits,
	// reports zero, and raises the fault flag instead of failing.
	br.Init([]byte{0xf0})
	if got := br.ReadBits(4); got != 0xf {
		t.Errorf("ReadBits(4) = %#x, want 0xf", got)
	}
	if br.Fault() {
		t.Errorf("Fault() = true before exhaustion")
	}
	if got := br.ReadBits(8); got != 0 {
		t.Errorf("ReadBits(8) past end = %#x, want 0", got)
	}
	if !br.Fault() {
		t.Errorf("Fault() = false after read past end")
	}
	if !br.Eof() {
		t.Errorf("Eof() = false after read past end")
	}
	if got := br.ReadBits(1); got != 0 {
		t.Errorf("ReadBits(1) past end = %#x, want 0", got)
	}
}
