// Copyright 2023, the s4kit authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

//go:build gofuzz
// +build gofuzz

// This file exists to export the decoder entry point for fuzz testing.

package s4

// Fuzz decodes arbitrary input against a fixed declared size. The decoder
// must never crash; whatever the input, it returns partial output and at
// worst a sentinel error.
func Fuzz(data []byte) int {
	output, err := Decompress(data, 1<<12)
	if len(output) > 1<<12 {
		panic("output exceeds declared size")
	}
	if err != nil {
		return 0
	}
	return 1
}
