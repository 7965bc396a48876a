// Copyright 2023, the s4kit authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

//go:build !no_ks_lib
// +build !no_ks_lib

package benchmark

import (
	"io"

	kflate "github.com/klauspost/compress/flate"
)

func init() {
	RegisterEncoder(FormatFlate, "ks",
		func(w io.Writer, lvl int) io.WriteCloser {
			zw, err := kflate.NewWriter(w, lvl)
			if err != nil {
				panic(err)
			}
			return zw
		})
	RegisterDecoder(FormatFlate, "ks",
		func(r io.Reader) io.ReadCloser {
			return kflate.NewReader(r)
		})
}
