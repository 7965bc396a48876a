// Copyright 2023, the s4kit authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package testutil

import (
	"encoding/hex"
	"errors"
	"regexp"
	"strconv"
	"strings"
)

var (
	reBin = regexp.MustCompile("^[01]{1,64}$")
	reDec = regexp.MustCompile("^D[0-9]+:[0-9]+$")
	reHex = regexp.MustCompile("^H[0-9]+:[0-9a-fA-F]{1,16}$")
	reRaw = regexp.MustCompile("^X:[0-9a-fA-F]+$")
	reQnt = regexp.MustCompile("[*][0-9]+$")
)

// DecodeBitGen decodes a BitGen formatted string.
//
// The BitGen format allows bit-streams to be generated from a series of
// tokens, aiding a human in the manual scripting of compression streams
// from individual bit-strings. The format packs bits MSB-first, matching
// the big-endian bit order of the s4 chunk format. It is succinct and
// allows comments to record authorial intent.
//
// The format consists of tokens separated by any kind of white space.
// The '#' character comments out the remainder of its line.
//
// The first token must be ">>>", declaring big-endian bit-packing. It
// appears exactly once, at the start, so that a fixture is self-describing.
//
// A token of the pattern "[01]{1,64}" is a bit-string (e.g. 11010) whose
// left-most bit is written first to the stream.
//
// A token of the pattern "D[0-9]+:[0-9]+" or "H[0-9]+:[0-9a-fA-F]{1,16}"
// is a decimal or hexadecimal value, respectively. The first number is the
// bit-length of the value, between 0 and 64; the value must fit in that
// many bits. The most significant of those bits is written first.
//
// A token of the pattern "X:[0-9a-fA-F]+" writes literal bytes and may only
// be used when the stream is byte-aligned.
//
// A trailing decorator of the pattern "[*][0-9]+" repeats its token the
// given number of times.
//
// If the stream does not end on a byte boundary, it is padded to the next
// byte with 0 bits.
//
// Example BitGen file:
//	>>>           # s4 chunks use MSB-first bit-packing
//
//	D4:10 D5:22   # Selector 10, extra 22: literal 'h'
//	D4:15 D5:31   # Selector 15, extra 31: end of stream
func DecodeBitGen(str string) ([]byte, error) {
	// Tokenize the input string, dropping comments and extra spaces.
	var toks []string
	for _, s := range strings.Split(str, "\n") {
		if i := strings.IndexByte(s, '#'); i >= 0 {
			s = s[:i]
		}
		for _, t := range strings.Fields(s) {
			toks = append(toks, t)
		}
	}

	if len(toks) == 0 || toks[0] != ">>>" {
		return nil, errors.New("testutil: missing stream bit-packing mode")
	}
	toks = toks[1:]

	var bw bitBuffer
	for _, t := range toks {
		// Check for quantifier decorators.
		rep := 1
		if reQnt.MatchString(t) {
			i := strings.LastIndexByte(t, '*')
			n, err := strconv.Atoi(t[i+1:])
			if err != nil {
				return nil, errors.New("testutil: invalid quantified token: " + t)
			}
			t, rep = t[:i], n
		}

		switch {
		case reBin.MatchString(t):
			// Handle binary tokens.
			var v uint64
			for _, b := range t {
				v = v<<1 | uint64(b-'0')
			}
			for i := 0; i < rep; i++ {
				bw.WriteBits64(v, uint(len(t)))
			}
		case reDec.MatchString(t) || reHex.MatchString(t):
			// Handle decimal and hexadecimal tokens.
			i := strings.IndexByte(t, ':')
			tb, tn, tv := t[0], t[1:i], t[i+1:]

			base := 10
			if tb == 'H' {
				base = 16
			}

			n, err1 := strconv.Atoi(tn)
			v, err2 := strconv.ParseUint(tv, base, 64)
			if err1 != nil || err2 != nil || n > 64 {
				return nil, errors.New("testutil: invalid numeric token: " + t)
			}
			if n < 64 && v&(1<<uint(n)-1) != v {
				return nil, errors.New("testutil: integer overflow on token: " + t)
			}
			for i := 0; i < rep; i++ {
				bw.WriteBits64(v, uint(n))
			}
		case reRaw.MatchString(t):
			// Handle literal byte tokens.
			b, err := hex.DecodeString(t[2:])
			if err != nil {
				return nil, errors.New("testutil: invalid raw bytes token: " + t)
			}
			for i := 0; i < rep; i++ {
				if err := bw.WriteAligned(b); err != nil {
					return nil, err
				}
			}
		default:
			return nil, errors.New("testutil: invalid token: " + t)
		}
	}
	return bw.Bytes(), nil
}

// bitBuffer packs bits MSB-first into a growing byte slice.
type bitBuffer struct {
	b []byte
	m byte // Mask of the next bit to fill, 0x00 when byte-aligned
}

func (b *bitBuffer) WriteAligned(buf []byte) error {
	if b.m != 0x00 {
		return errors.New("testutil: unaligned write")
	}
	b.b = append(b.b, buf...)
	return nil
}

func (b *bitBuffer) WriteBits64(v uint64, n uint) {
	for n > 0 {
		n--
		if b.m == 0x00 {
			b.m = 0x80
			b.b = append(b.b, 0x00)
		}
		if v&(1<<n) != 0 {
			b.b[len(b.b)-1] |= b.m
		}
		b.m >>= 1
	}
}

func (b *bitBuffer) Bytes() []byte {
	return b.b
}
