// Copyright 2023, the s4kit authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package s4

import "sort"

// symbolDirectory is the adaptive model mapping decoded table indexes to
// symbol values. The assignment starts out as the identity and is permuted
// on every table swap so that frequently used symbols migrate toward the
// low indexes, where the code table spends the fewest bits.
//
// The encoder applies the identical permutation at the identical point in
// the stream; any divergence desynchronizes the remainder of the chunk.
type symbolDirectory struct {
	syms   [numSymbols]uint16 // Current index to symbol assignment
	counts [numSymbols]uint32 // Usage count per symbol
}

func (sd *symbolDirectory) Init() {
	for i := range sd.syms {
		sd.syms[i] = uint16(i)
	}
	for i := range sd.counts {
		sd.counts[i] = 0
	}
}

// Resolve returns the symbol currently assigned to idx.
// The caller must have validated idx against the symbol space.
func (sd *symbolDirectory) Resolve(idx uint32) uint16 {
	return sd.syms[idx]
}

// RecordUse counts one use of sym.
func (sd *symbolDirectory) RecordUse(sym uint16) {
	sd.counts[sym]++
}

// Reorder permutes the assignment by usage count, most used first. Ties
// keep their current relative order, so an idle directory stays put. The
// counts are aged afterwards, letting stale statistics decay across swaps.
func (sd *symbolDirectory) Reorder() {
	sort.SliceStable(sd.syms[:], func(i, j int) bool {
		return sd.counts[sd.syms[i]] > sd.counts[sd.syms[j]]
	})
	for i, n := range sd.counts {
		sd.counts[i] = (n + 1) >> 1
	}
}
