// Copyright 2023, the s4kit authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package mapfile reads the legacy asset container format: a short header,
// a scrambled chunk directory, and the compressed chunk payloads.
package mapfile

// Descramble XORs data with the container keystream in place. The keystream
// is a rotate-and-add generator seeded by the key stored in the header.
// The operation is self-inverse.
func Descramble(data []byte, key uint32) {
	for i := range data {
		data[i] ^= byte(key)
		key = (key<<5 | key>>27) + 0x3d
	}
}
