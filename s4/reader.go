// Copyright 2023, the s4kit authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package s4

import (
	"github.com/sirupsen/logrus"
)

// Config configures a decode call. The zero value is ready to use.
type Config struct {
	// Logger receives soft-fault and size-accounting diagnostics.
	// If nil, the decoder stays silent.
	Logger logrus.FieldLogger
}

// Decompress decodes one compressed chunk into exactly size bytes.
//
// Decoding is best effort: on error, the output produced so far is returned
// together with the error. Legacy assets are occasionally malformed at
// their edges and callers are expected to treat a failed chunk as
// unsupported rather than abort.
func Decompress(data []byte, size int) ([]byte, error) {
	return Config{}.Decompress(data, size)
}

// Decompress decodes one compressed chunk into exactly size bytes using the
// receiver's configuration.
func (c Config) Decompress(data []byte, size int) ([]byte, error) {
	d := decoder{conf: c}
	d.rd.Init(data)
	d.wr.Init(size)
	d.dir.Init()
	d.table = defaultTable

	err := d.decode()
	return d.wr.Bytes(), err
}

// decoder holds all mutable state of one decode call. Nothing here crosses
// calls; the shared lookup tables are immutable, so independent calls may
// run in parallel without synchronization.
type decoder struct {
	conf  Config
	rd    bitReader
	wr    streamWriter
	dir   symbolDirectory
	table huffTable
}

func (d *decoder) decode() (err error) {
	defer errRecover(&err)
	d.run()
	if d.rd.Fault() {
		// Lenient reads past the end of the range returned zeros.
		d.logf("bit reads ran past the end of the compressed range")
	}
	return nil
}

// run executes the decode loop until the output is full or the stream ends.
// Every iteration consumes at least the 4-bit selector, so the loop is
// bounded by the input; the step cap only limits the damage of adversarial
// inputs that thrash table swaps without producing output.
func (d *decoder) run() {
	maxSteps := 2*len(d.rd.src) + d.wr.Length() + numSlots
	for steps := 0; !d.wr.Full(); steps++ {
		if d.rd.Eof() || steps > maxSteps {
			panic(ErrUnexpectedEOF)
		}

		sel := d.rd.ReadBits(selectorBits)
		idx := d.table.bases[sel]
		if nb := uint(d.table.lens[sel]); nb > 0 {
			idx += uint32(d.rd.ReadBits(nb))
		}
		if idx >= numSymbols {
			panic(ErrOutOfSync)
		}
		sym := d.dir.Resolve(idx)
		d.dir.RecordUse(sym)

		switch {
		case sym <= maxLitSym:
			d.wr.Put(byte(sym))
		case sym == swapSym:
			// The directory reorders on its current statistics first;
			// only then is the replacement table read and installed.
			d.dir.Reorder()
			d.rd.readTable(&d.table)
		case sym == endSym:
			if d.endOfSegment() {
				return
			}
		default:
			d.copySegment(sym)
		}
	}
}

// copySegment decodes one back-reference and copies it from the history.
func (d *decoder) copySegment(sym uint16) {
	cnt := minCopyLen + int(sym-minLenSym)
	if sym > maxShortLenSym {
		rc := lenLUT[sym-maxShortLenSym-1]
		cnt = minCopyLen + int(rc.base) + int(d.rd.ReadBits(uint(rc.bits)))
	}

	rc := distLUT[d.rd.ReadBits(distSelectorBits)]
	nb := uint(rc.bits) + 1
	high := d.rd.ReadBits(8)
	low := d.rd.ReadBits(nb)
	dist := int(low|high<<nb) + int(rc.base)<<9
	d.wr.Copy(dist, cnt)
}

// endOfSegment handles the end control symbol and reports whether this was
// the true end of the stream. With more than endSlackBytes whole bytes left
// and an unfilled output, the symbol only terminates a sub-segment: the
// next sub-stream begins at the following byte boundary and inherits the
// directory and table state.
func (d *decoder) endOfSegment() bool {
	if d.rd.BytesLeft() > endSlackBytes && !d.wr.Full() {
		d.rd.AlignToByte()
		return false
	}
	if !d.wr.Full() {
		// The declared size is authoritative over the stream's own end
		// marker; report the shortfall but keep what was written.
		d.logf("stream ended %d bytes short of declared size %d",
			d.wr.LeftSize(), d.wr.Length())
		panic(ErrDesyncAtEnd)
	}
	return true
}

func (d *decoder) logf(format string, args ...interface{}) {
	if d.conf.Logger != nil {
		d.conf.Logger.Warnf(format, args...)
	}
}
