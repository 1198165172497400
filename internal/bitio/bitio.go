// Package bitio provides cursor-style bit-level reading and writing over
// in-memory byte slices. Bits are packed most significant first within each
// byte; the final byte of a written stream is zero-padded.
package bitio

import (
	"io"
)

// Writer appends bits to a growing byte slice.
//
// The zero value is ready to use.
type Writer struct {
	buf   []byte
	nbits int
}

// WriteBit appends a single bit; any non-zero bit value is written as 1.
func (w *Writer) WriteBit(bit byte) {
	if w.nbits%8 == 0 {
		w.buf = append(w.buf, 0)
	}

	if bit != 0 {
		w.buf[len(w.buf)-1] |= 1 << (7 - w.nbits%8)
	}
	w.nbits++
}

// WriteBits appends the n low bits of code, most significant of those first.
func (w *Writer) WriteBits(code uint64, n int) {
	for i := n - 1; i >= 0; i-- {
		w.WriteBit(byte(code >> i & 1))
	}
}

// BitLen returns the number of bits written so far.
func (w *Writer) BitLen() int {
	return w.nbits
}

// Bytes returns the packed bits; the final byte is zero-padded.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// Reader consumes bits from a byte slice.
type Reader struct {
	data []byte
	pos  int
}

// NewReader returns a Reader positioned at the first bit of data.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// ReadBit returns the next bit, or io.EOF once all bits are consumed.
func (r *Reader) ReadBit() (byte, error) {
	if r.pos >= 8*len(r.data) {
		return 0, io.EOF
	}

	bit := r.data[r.pos/8] >> (7 - r.pos%8) & 1
	r.pos++
	return bit, nil
}

// Offset returns the number of bits consumed so far.
func (r *Reader) Offset() int {
	return r.pos
}
