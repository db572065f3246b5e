// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Package cursor provides a read cursor and an append buffer for octet
// strings, suitable for use with the encoders and decoders in asn1tlv.
package cursor

import (
	"fmt"
	"io"

	"github.com/creachadair/mds/value"
)

// A Builder is a buffer that accumulates encoded octets. The zero value is
// ready for use as an empty builder.
type Builder struct {
	buf []byte
}

// Bool appends the content octet of a BER BOOLEAN to b. True is encoded as
// 0xFF and false as 0x00.
func (b *Builder) Bool(ok bool) { b.Put(value.Cond[byte](ok, 0xff, 0x00)) }

// Put appends the specified bytes to b in order.
func (b *Builder) Put(vs ...byte) { b.buf = append(b.buf, vs...) }

// PutString appends the specified string to b.
func (b *Builder) PutString(s string) { b.buf = append(b.buf, s...) }

// Append calls f with the current contents of b and replaces the contents
// with the slice it returns. This allows the Append-style encoders of the
// asn1tlv package to write directly into the builder:
//
//	b.Append(hdr.Append)
func (b *Builder) Append(f func([]byte) []byte) { b.buf = f(b.buf) }

// Len reports the number of bytes currently in the buffer.
func (b *Builder) Len() int { return len(b.buf) }

// Bytes reports the current contents of the buffer. The builder retains ownership
// of the reported slice, and the caller must not retain or modify its contents
// unless b will no longer be accessed.
func (b *Builder) Bytes() []byte { return b.buf }

// Reset discards the contents of b and leaves it empty.
func (b *Builder) Reset() { b.buf = b.buf[:0] }

// Grow resizes the internal buffer of b if necessary to ensure that at least n
// more bytes can be added without triggering another allocation.
func (b *Builder) Grow(n int) {
	want := len(b.buf) + n
	if cap(b.buf) < want {
		r := make([]byte, len(b.buf), max(want, 2*cap(b.buf)))
		copy(r, b.buf)
		b.buf = r
	}
}

// A Scanner is a read cursor over an encoded octet string.
// A Scanner implements [io.ByteReader] and [io.Reader], so it can be passed
// to any decoder that consumes a byte at a time.
//
// ReadByte and Read return [io.EOF] when no further input is available.
// Fixed-size reads that cannot be satisfied report [io.ErrUnexpectedEOF].
type Scanner struct {
	input  []byte
	rest   []byte
	offset int // of rest from input
}

// NewScanner constructs a [Scanner] that consumes data from input.
// The scanner does not modify the contents of input, but retains slices
// into it, so the caller should ensure it is not modified while the scanner
// is in use.
func NewScanner[Str ~string | ~[]byte](input Str) *Scanner {
	data := []byte(input)
	return &Scanner{input: data, rest: data}
}

// ReadByte consumes a single byte from the head of the input.
// It implements [io.ByteReader].
func (s *Scanner) ReadByte() (byte, error) {
	if len(s.rest) == 0 {
		return 0, io.EOF
	}
	s.offset++
	out := s.rest[0]
	s.rest = s.rest[1:]
	return out, nil
}

// Read copies up to len(p) bytes from the head of the input into p.
// It implements [io.Reader].
func (s *Scanner) Read(p []byte) (int, error) {
	if len(s.rest) == 0 {
		if len(p) == 0 {
			return 0, nil
		}
		return 0, io.EOF
	}
	nr := copy(p, s.rest)
	s.offset += nr
	s.rest = s.rest[nr:]
	return nr, nil
}

// Byte scans a single byte from the head of the input. Unlike ReadByte, it
// reports [io.ErrUnexpectedEOF] if no input remains.
func (s *Scanner) Byte() (byte, error) {
	b, err := s.ReadByte()
	if err != nil {
		return 0, io.ErrUnexpectedEOF
	}
	return b, nil
}

// Len reports the number of remaining unconsumed input bytes in s.
func (s *Scanner) Len() int { return len(s.rest) }

// Offset reports the offset (0-based) of the next unconsumed input byte in s.
func (s *Scanner) Offset() int { return s.offset }

// Rest returns a slice of the remaining unconsumed input of s.
// The reported slice is only valid until the next call to a method of s,
// and the caller must not modify its contents.
func (s *Scanner) Rest() []byte { return s.rest }

// Reset rewinds s to the beginning of its input.
func (s *Scanner) Reset() { s.rest, s.offset = s.input, 0 }

// Get returns a string of exactly n bytes from the head of the input.
// If the full requested amount is not available, a partial result is returned
// along with an error.  When the result is a slice, the value aliases the
// input, and the caller must not modify its contents.
func Get[Str ~string | ~[]byte](s *Scanner, n int) (Str, error) {
	if len(s.rest) < n {
		return Str(s.rest), fmt.Errorf("value truncated (%d < %d bytes): %w", len(s.rest), n, io.ErrUnexpectedEOF)
	}
	s.offset += n
	out := Str(s.rest[:n])
	s.rest = s.rest[n:]
	return out, nil
}
