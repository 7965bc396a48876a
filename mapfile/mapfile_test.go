// Copyright 2023, the s4kit authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package mapfile

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s4kit/compress/internal/testutil"
	"github.com/s4kit/compress/s4"
)

func TestDescramble(t *testing.T) {
	rand := testutil.NewRand(0)
	for _, n := range []int{0, 1, 16, 257} {
		key := uint32(rand.Int())
		want := rand.Bytes(n)

		data := append([]byte{}, want...)
		Descramble(data, key)
		if n > 0 {
			assert.NotEqual(t, want, data, "size %d: keystream left data unchanged", n)
		}
		Descramble(data, key)
		assert.Equal(t, want, data, "size %d: descramble is not self-inverse", n)
	}
}

type chunkSpec struct {
	typ      uint32
	unpacked uint32
	payload  []byte
}

// buildContainer assembles a container file: header, scrambled directory,
// payloads in declaration order.
func buildContainer(key uint32, chunks []chunkSpec) []byte {
	dir := make([]byte, len(chunks)*entrySize)
	offset := headerSize + len(dir)
	var payloads []byte
	for i, cs := range chunks {
		e := dir[i*entrySize:]
		binary.LittleEndian.PutUint32(e[0:4], cs.typ)
		binary.LittleEndian.PutUint32(e[4:8], uint32(offset))
		binary.LittleEndian.PutUint32(e[8:12], uint32(len(cs.payload)))
		binary.LittleEndian.PutUint32(e[12:16], cs.unpacked)
		offset += len(cs.payload)
		payloads = append(payloads, cs.payload...)
	}
	Descramble(dir, key)

	file := make([]byte, 0, headerSize+len(dir)+len(payloads))
	file = append(file, magic[:]...)
	file = binary.LittleEndian.AppendUint32(file, key)
	file = binary.LittleEndian.AppendUint32(file, uint32(len(chunks)))
	file = append(file, dir...)
	file = append(file, payloads...)
	return file
}

func TestParseAndOpen(t *testing.T) {
	hello := testutil.MustDecodeBitGen(">>> " +
		"D4:10 D5:22 D4:10 D5:19 D4:10 D5:26 D4:10 D5:26 D4:10 D5:29 " +
		"D4:15 D5:31",
	)
	run := testutil.MustDecodeBitGen(">>> D4:12 D5:25 D4:15 D5:16 D3:0 D8:0 D1:1")

	data := buildContainer(0xdeadbeef, []chunkSpec{
		{typ: 1, unpacked: 5, payload: hello},
		{typ: 7, unpacked: 7, payload: run},
	})

	f, err := Parse(data)
	require.NoError(t, err)
	require.Len(t, f.Chunks(), 2)

	ck := f.Chunks()[0]
	assert.Equal(t, uint32(1), ck.Type)
	assert.Equal(t, uint32(len(hello)), ck.Length)

	output, err := f.Open(ck)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), output)

	output, err = f.Open(f.Chunks()[1])
	require.NoError(t, err)
	assert.Equal(t, bytes.Repeat([]byte{0xab}, 7), output)
}

func TestOpenPartial(t *testing.T) {
	// A chunk whose stream ends before the declared size still yields what
	// was decoded; the error names the offending chunk.
	short := testutil.MustDecodeBitGen(">>> D4:11 D5:6 D4:15 D5:31")
	data := buildContainer(42, []chunkSpec{{typ: 3, unpacked: 4, payload: short}})

	f, err := Parse(data)
	require.NoError(t, err)

	output, err := f.Open(f.Chunks()[0])
	require.Error(t, err)
	assert.ErrorIs(t, err, s4.ErrDesyncAtEnd)
	assert.Equal(t, []byte("x"), output)
}

func TestParseErrors(t *testing.T) {
	valid := buildContainer(1, []chunkSpec{{typ: 1, unpacked: 2, payload: []byte{0xff}}})

	t.Run("Truncated", func(t *testing.T) {
		_, err := Parse(valid[:headerSize-1])
		assert.ErrorContains(t, err, "truncated")
	})
	t.Run("BadMagic", func(t *testing.T) {
		data := append([]byte(nil), valid...)
		data[0] = 'X'
		_, err := Parse(data)
		assert.ErrorContains(t, err, "magic")
	})
	t.Run("DirectoryOverrun", func(t *testing.T) {
		data := append([]byte(nil), valid...)
		binary.LittleEndian.PutUint32(data[8:12], 1<<30)
		_, err := Parse(data)
		assert.ErrorContains(t, err, "overruns file")
	})
	t.Run("PayloadOverrun", func(t *testing.T) {
		data := buildContainer(1, []chunkSpec{{typ: 1, unpacked: 2, payload: []byte{0xff}}})
		// Cutting the payload off invalidates the entry's range.
		_, err := Parse(data[:len(data)-1])
		assert.ErrorContains(t, err, "chunk 0")
	})
	t.Run("OversizedChunk", func(t *testing.T) {
		data := buildContainer(1, []chunkSpec{{typ: 1, unpacked: maxChunkSize + 1, payload: []byte{0xff}}})
		_, err := Parse(data)
		assert.ErrorContains(t, err, "exceeds limit")
	})
}
