// Copyright 2023, the s4kit authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

//go:build !no_s4_lib
// +build !no_s4_lib

package benchmark

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/pkg/errors"

	"github.com/s4kit/compress/s4"
)

// The decoder needs the exact output size up front, so benchmark streams are
// framed with a 4 byte little-endian unpacked length.

const maxFrameSize = 1 << 26

func init() {
	RegisterEncoder(FormatS4, "s4",
		func(w io.Writer, lvl int) io.WriteCloser {
			return &frameWriter{w: w}
		})
	RegisterDecoder(FormatS4, "s4",
		func(r io.Reader) io.ReadCloser {
			return &frameReader{r: r}
		})
}

// frameWriter produces a literal-only stream: every input byte is coded as a
// literal symbol of the initial code table. It emits no back-references, so
// it expands rather than compresses; it exists to feed the decode-rate
// benchmarks with valid streams.
type frameWriter struct {
	w     io.Writer
	input []byte
	err   error
}

func (fw *frameWriter) Write(b []byte) (int, error) {
	fw.input = append(fw.input, b...)
	return len(b), nil
}

func (fw *frameWriter) Close() error {
	if fw.err != nil {
		return fw.err
	}
	var hdr [4]byte
	binary.LittleEndian.PutUint32(hdr[:], uint32(len(fw.input)))
	if _, fw.err = fw.w.Write(hdr[:]); fw.err != nil {
		return fw.err
	}
	_, fw.err = fw.w.Write(encodeLiterals(fw.input))
	return fw.err
}

// litRanges holds the selector ranges of the initial code table: for each
// 4-bit selector, the first covered symbol index and the extra bit count.
var litRanges = [16]struct {
	base uint32
	bits uint
}{
	{0, 0}, {1, 0}, {2, 1}, {4, 1}, {6, 1}, {8, 1}, {10, 2}, {14, 2},
	{18, 5}, {50, 5}, {82, 5}, {114, 5}, {146, 5}, {178, 5}, {210, 5}, {242, 5},
}

func encodeLiterals(input []byte) []byte {
	out := make([]byte, 0, len(input)+len(input)/2)
	var acc uint32
	var nb uint
	put := func(v uint32, n uint) {
		acc = acc<<n | v
		nb += n
		for nb >= 8 {
			nb -= 8
			out = append(out, byte(acc>>nb))
		}
		acc &= 1<<nb - 1
	}

	for _, c := range input {
		sel := len(litRanges) - 1
		for litRanges[sel].base > uint32(c) {
			sel--
		}
		put(uint32(sel), 4)
		if n := litRanges[sel].bits; n > 0 {
			put(uint32(c)-litRanges[sel].base, n)
		}
	}
	if nb > 0 {
		out = append(out, byte(acc<<(8-nb)))
	}
	return out
}

// frameReader decompresses a framed stream. The whole frame is consumed on
// the first read since the decoder works on an in-memory range.
type frameReader struct {
	r   io.Reader
	buf *bytes.Reader
	err error
}

func (fr *frameReader) Read(b []byte) (int, error) {
	if fr.err != nil {
		return 0, fr.err
	}
	if fr.buf == nil {
		data, err := io.ReadAll(fr.r)
		if err != nil {
			fr.err = err
			return 0, fr.err
		}
		if len(data) < 4 {
			fr.err = io.ErrUnexpectedEOF
			return 0, fr.err
		}
		size := binary.LittleEndian.Uint32(data[:4])
		if size > maxFrameSize {
			fr.err = errors.Errorf("frame size %d exceeds limit %d", size, maxFrameSize)
			return 0, fr.err
		}
		output, err := s4.Decompress(data[4:], int(size))
		if err != nil {
			fr.err = err
			return 0, fr.err
		}
		fr.buf = bytes.NewReader(output)
	}
	return fr.buf.Read(b)
}

func (fr *frameReader) Close() error {
	return fr.err
}
