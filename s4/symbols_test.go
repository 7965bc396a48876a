// Copyright 2023, the s4kit authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package s4

import (
	"testing"

	"github.com/s4kit/compress/internal/testutil"
)

func TestSymbolDirectoryInit(t *testing.T) {
	var sd symbolDirectory
	sd.Init()

	for i := 0; i < numSymbols; i++ {
		if got := sd.Resolve(uint32(i)); got != uint16(i) {
			t.Fatalf("Resolve(%#x) = %#x, want identity", i, got)
		}
	}
}

func TestSymbolDirectoryReorder(t *testing.T) {
	var sd symbolDirectory
	sd.Init()

	// An idle directory stays put.
	sd.Reorder()
	for i := 0; i < numSymbols; i++ {
		if got := sd.Resolve(uint32(i)); got != uint16(i) {
			t.Fatalf("Resolve(%#x) = %#x after idle reorder, want identity", i, got)
		}
	}

	// Frequent symbols migrate to the front, most used first; ties keep
	// their previous relative order.
	for i := 0; i < 3; i++ {
		sd.RecordUse(0x05)
	}
	for i := 0; i < 2; i++ {
		sd.RecordUse(0xc8)
	}
	sd.RecordUse(0x07)
	sd.RecordUse(0x111)
	sd.Reorder()

	want := []uint16{0x05, 0xc8, 0x07, 0x111, 0x00, 0x01, 0x02, 0x03, 0x04, 0x06, 0x08}
	for i, sym := range want {
		if got := sd.Resolve(uint32(i)); got != sym {
			t.Errorf("Resolve(%d) = %#x, want %#x", i, got, sym)
		}
	}

	// Counts age by half (rounding up) on every reorder.
	if got := sd.counts[0x05]; got != 2 {
		t.Errorf("counts[0x05] = %d, want 2", got)
	}
	if got := sd.counts[0xc8]; got != 1 {
		t.Errorf("counts[0xc8] = %d, want 1", got)
	}
	if got := sd.counts[0x07]; got != 1 {
		t.Errorf("counts[0x07] = %d, want 1", got)
	}
	if got := sd.counts[0x00]; got != 0 {
		t.Errorf("counts[0x00] = %d, want 0", got)
	}

	// A second reorder with no new uses keeps the permutation stable.
	sd.Reorder()
	for i, sym := range want {
		if got := sd.Resolve(uint32(i)); got != sym {
			t.Errorf("Resolve(%d) = %#x after second reorder, want %#x", i, got, sym)
		}
	}
}

func TestSymbolDirectoryPermutation(t *testing.T) {
	// Reordering permutes the assignment and never adds, drops, or
	// duplicates a symbol, no matter the usage pattern.
	var sd symbolDirectory
	sd.Init()

	rand := testutil.NewRand(0)
	for _, i := range rand.Perm(numSymbols) {
		for n := rand.Intn(8); n > 0; n-- {
			sd.RecordUse(uint16(i))
		}
	}
	sd.Reorder()

	var seen [numSymbols]bool
	for i := 0; i < numSymbols; i++ {
		sym := sd.Resolve(uint32(i))
		if sym >= numSymbols {
			t.Fatalf("Resolve(%d) = %#x, outside symbol space", i, sym)
		}
		if seen[sym] {
			t.Fatalf("Resolve(%d) = %#x, symbol assigned twice", i, sym)
		}
		seen[sym] = true
	}
}
