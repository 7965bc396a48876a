// Copyright 2023, the s4kit authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package mapfile

import (
	"bytes"
	"encoding/binary"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/s4kit/compress/s4"
)

var magic = [4]byte{'S', '4', 'C', 'K'}

const (
	headerSize = 12 // Magic, directory key, chunk count
	entrySize  = 16 // Type, offset, length, unpacked length

	// maxChunkSize bounds a single chunk's declared unpacked size. Real
	// assets stay far below this; larger values indicate a corrupt
	// directory and would otherwise drive a huge allocation.
	maxChunkSize = 1 << 26
)

// Chunk describes one compressed asset in the container. Offset and Length
// locate the payload within the file; UnpackedLength is the exact size the
// payload decompresses to.
type Chunk struct {
	Type           uint32
	Offset         uint32
	Length         uint32
	UnpackedLength uint32
}

// Config configures container parsing and chunk decompression.
// The zero value is ready to use.
type Config struct {
	// Logger receives per-chunk decode diagnostics. If nil, decoding
	// stays silent.
	Logger logrus.FieldLogger
}

// File is a parsed container. It keeps a reference to the file bytes it was
// parsed from; chunk payloads are sliced out of them on demand.
type File struct {
	data   []byte
	chunks []Chunk
	conf   Config
}

// Parse reads the container header, descrambles the chunk directory, and
// validates every entry against the file bounds.
func Parse(data []byte) (*File, error) {
	return Config{}.Parse(data)
}

// Parse reads the container using the receiver's configuration.
func (c Config) Parse(data []byte) (*File, error) {
	if len(data) < headerSize {
		return nil, errors.Errorf("container truncated: %d bytes", len(data))
	}
	if !bytes.Equal(data[:4], magic[:]) {
		return nil, errors.Errorf("bad container magic %q", data[:4])
	}
	key := binary.LittleEndian.Uint32(data[4:8])
	count := binary.LittleEndian.Uint32(data[8:12])

	dirSize := int64(count) * entrySize
	if dirSize > int64(len(data)-headerSize) {
		return nil, errors.Errorf("chunk directory of %d entries overruns file", count)
	}

	// The directory is descrambled on a copy so that the caller's bytes
	// stay untouched and a File can be re-parsed from them.
	dir := make([]byte, dirSize)
	copy(dir, data[headerSize:])
	Descramble(dir, key)

	f := &File{data: data, conf: c, chunks: make([]Chunk, 0, count)}
	for i := 0; i < int(count); i++ {
		e := dir[i*entrySize : (i+1)*entrySize]
		ck := Chunk{
			Type:           binary.LittleEndian.Uint32(e[0:4]),
			Offset:         binary.LittleEndian.Uint32(e[4:8]),
			Length:         binary.LittleEndian.Uint32(e[8:12]),
			UnpackedLength: binary.LittleEndian.Uint32(e[12:16]),
		}
		if err := checkChunk(ck, len(data)); err != nil {
			return nil, errors.Wrapf(err, "chunk %d", i)
		}
		f.chunks = append(f.chunks, ck)
	}
	return f, nil
}

func checkChunk(ck Chunk, fileSize int) error {
	if end := int64(ck.Offset) + int64(ck.Length); end > int64(fileSize) {
		return errors.Errorf("payload [%d:%d] overruns file size %d", ck.Offset, end, fileSize)
	}
	if ck.UnpackedLength > maxChunkSize {
		return errors.Errorf("unpacked length %d exceeds limit %d", ck.UnpackedLength, maxChunkSize)
	}
	return nil
}

// Chunks lists the directory in file order.
func (f *File) Chunks() []Chunk {
	return f.chunks
}

// Open decompresses one chunk. Decoding is best effort: on error the partial
// output is returned alongside the error, so callers may still salvage what
// was recovered.
func (f *File) Open(ck Chunk) ([]byte, error) {
	if err := checkChunk(ck, len(f.data)); err != nil {
		return nil, err
	}
	payload := f.data[ck.Offset : ck.Offset+ck.Length]
	sc := s4.Config{Logger: f.conf.Logger}
	output, err := sc.Decompress(payload, int(ck.UnpackedLength))
	if err != nil {
		return output, errors.Wrapf(err, "chunk at offset %d", ck.Offset)
	}
	return output, nil
}
