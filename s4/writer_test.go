// Copyright 2023, the s4kit authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package s4

import (
	"bytes"
	"testing"
)

// mustPanicErr runs fn and returns the error it panics with, if any.
func mustPanicErr(fn func()) (err error) {
	defer errRecover(&err)
	fn()
	return nil
}

func TestStreamWriter(t *testing.T) {
	var sw streamWriter
	sw.Init(4)

	if sw.Full() || sw.Length() != 4 || sw.LeftSize() != 4 {
		t.Fatalf("fresh writer: Full=%v Length=%d LeftSize=%d", sw.Full(), sw.Length(), sw.LeftSize())
	}

	sw.Put('a')
	sw.Put('b')
	if got := sw.ByteAt(0); got != 'a' {
		t.Errorf("ByteAt(0) = %q, want 'a'", got)
	}
	if got := sw.Offset(); got != 2 {
		t.Errorf("Offset() = %d, want 2", got)
	}

	sw.Put('c')
	sw.Put('d')
	if !sw.Full() || sw.LeftSize() != 0 {
		t.Errorf("writer not full after %d writes", sw.Length())
	}
	if !bytes.Equal(sw.Bytes(), []byte("abcd")) {
		t.Errorf("Bytes() = %q, want %q", sw.Bytes(), "abcd")
	}

	if err := mustPanicErr(func() { sw.Put('e') }); err != ErrOutputFull {
		t.Errorf("Put past end: got error %v, want %v", err, ErrOutputFull)
	}
}

func TestStreamWriterCopy(t *testing.T) {
	// A copy may overlap its own destination, expanding a repeating run
	// byte by byte.
	var sw streamWriter
	sw.Init(7)
	sw.Put(0xab)
	sw.Copy(1, 6)
	if !bytes.Equal(sw.Bytes(), bytes.Repeat([]byte{0xab}, 7)) {
		t.Errorf("Bytes() = %x, want ab*7", sw.Bytes())
	}

	// Two-byte period.
	sw.Init(6)
	sw.Put(0x12)
	sw.Put(0x34)
	sw.Copy(2, 4)
	if !bytes.Equal(sw.Bytes(), []byte{0x12, 0x34, 0x12, 0x34, 0x12, 0x34}) {
		t.Errorf("Bytes() = %x, want 123412341234", sw.Bytes())
	}
}

func TestStreamWriterFaults(t *testing.T) {
	var sw streamWriter
	sw.Init(4)
	sw.Put(0x11)

	if err := mustPanicErr(func() { sw.Copy(2, 1) }); err != ErrOutOfSync {
		t.Errorf("Copy before start: got error %v, want %v", err, ErrOutOfSync)
	}
	if err := mustPanicErr(func() { sw.Copy(0, 1) }); err != ErrOutOfSync {
		t.Errorf("Copy at cursor: got error %v, want %v", err, ErrOutOfSync)
	}
	if err := mustPanicErr(func() { sw.Copy(1, 4) }); err != ErrOutputFull {
		t.Errorf("Copy past capacity: got error %v, want %v", err, ErrOutputFull)
	}
	if err := mustPanicErr(func() { sw.ByteAt(sw.Offset()) }); err != ErrOutOfSync {
		t.Errorf("ByteAt(cursor): got error %v, want %v", err, ErrOutOfSync)
	}
	if err := mustPanicErr(func() { sw.ByteAt(-1) }); err != ErrOutOfSync {
		t.Errorf("ByteAt(-1): got error %v, want %v", err, ErrOutOfSync)
	}
}
