// Copyright 2023, the s4kit authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package benchmark

import (
	"github.com/s4kit/compress/internal/testutil"
)

// Corpus maps a class name to a deterministic generator for test inputs of
// that class. The same name and size always produce the same bytes.
var Corpus = map[string]func(n int) []byte{
	"zeros":   genZeros,
	"random":  genRandom,
	"repeats": genRepeats,
}

func genZeros(n int) []byte {
	return make([]byte, n)
}

func genRandom(n int) []byte {
	return testutil.NewRand(0).Bytes(n)
}

// genRepeats produces data that heavily favors LZ77 based compression: most
// of it is a copy from some earlier position, while the underlying material
// is random enough that prefix coding alone gains little.
func genRepeats(n int) []byte {
	r := testutil.NewRand(0)
	b := make([]byte, 0, n+512)

	randLen := func() int {
		base := 4 << uint(r.Intn(7)) // 4..256
		return base + r.Intn(base)
	}
	randDist := func() (d int) {
		for d == 0 || d > len(b) {
			base := 1 << uint(r.Intn(15)) // 1..16384
			d = base + r.Intn(base)
		}
		return d
	}
	writeRand := func(l int) {
		b = append(b, r.Bytes(l)...)
	}
	writeCopy := func(d, l int) {
		for i := 0; i < l; i++ {
			b = append(b, b[len(b)-d])
		}
	}

	writeRand(randLen())
	for len(b) < n {
		switch p := r.Intn(10); {
		case p < 1:
			// Generate random new data.
			writeRand(randLen())
		case p < 9:
			// Write a long distance copy.
			d, l := randDist(), randLen()
			for d <= l {
				d, l = randDist(), randLen()
			}
			writeCopy(d, l)
		default:
			// Write a possibly short distance copy.
			writeCopy(randDist(), randLen())
		}
	}
	return b[:n]
}
