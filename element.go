// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package asn1tlv

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/creachadair/asn1tlv/cursor"
)

// A Reader is a source of encoded octets that can be consumed one at a time
// or in bulk. Both *bufio.Reader and *cursor.Scanner satisfy this interface.
type Reader interface {
	io.Reader
	io.ByteReader
}

// MaxDepth is the maximum nesting depth of indefinite-length encodings
// accepted by ReadElement.
const MaxDepth = 256

var errTooDeep = errors.New("indefinite-length nesting too deep")

// An Element is a single encoding: a header and its content octets.
//
// For a definite length, Content holds exactly the number of octets given by
// the length.  For an indefinite length, Content holds the octets between the
// header and the end-of-contents marker, which is not included.
type Element struct {
	Header
	Content []byte
}

// EOC is the end-of-contents element that terminates indefinite-length
// content.
var EOC = Element{Header: Header{Identifier: NewIdentifier(Universal, Primitive, TagEOC)}}

// IsEOC reports whether e is an end-of-contents marker.
func (e Element) IsEOC() bool {
	n, ok := e.Length.Value()
	return ok && n == 0 && e.Class == Universal && e.Method == Primitive && e.Tag == TagEOC
}

// Append appends the encoding of e to buf, and returns the updated slice.
// The header is re-encoded from its fields. If e has an indefinite length,
// the content is followed by an end-of-contents marker.
func (e Element) Append(buf []byte) []byte {
	buf = append(e.Header.Append(buf), e.Content...)
	if e.Length.IsIndefinite() {
		buf = EOC.Append(buf)
	}
	return buf
}

// Encode returns the encoding of e.
func (e Element) Encode() []byte { return e.Append(nil) }

// Children parses the content of e as a sequence of complete elements.
func (e Element) Children() ([]Element, error) {
	var out []Element
	s := cursor.NewScanner(e.Content)
	for s.Len() != 0 {
		off := s.Offset()
		c, err := ReadElement(s)
		if err != nil {
			return nil, fmt.Errorf("child at offset %d: %w", off, err)
		}
		out = append(out, c)
	}
	return out, nil
}

// ReadElement consumes a complete element from the head of r.
//
// For an indefinite length, ReadElement consumes nested elements until it
// finds the end-of-contents marker, and reports the octets that preceded it
// as the content of the element.
func ReadElement(r Reader) (Element, error) { return readElement(r, 0) }

func readElement(r Reader, depth int) (Element, error) {
	h, err := DecodeHeader(r)
	if err != nil {
		return Element{}, err
	}
	if n, ok := h.Length.Value(); ok {
		content, err := readContent(r, n)
		if err != nil {
			return Element{}, decodeError("content", err)
		}
		return Element{Header: h, Content: content}, nil
	}

	if depth >= MaxDepth {
		return Element{}, decodeError("content", errTooDeep)
	}
	rec := &recorder{r: r}
	for {
		mark := len(rec.buf)
		sub, err := readElement(rec, depth+1)
		if err != nil {
			return Element{}, err
		}
		if sub.IsEOC() {
			return Element{Header: h, Content: rec.buf[:mark:mark]}, nil
		}
	}
}

// readContent reads exactly n octets from r. The buffer grows as data
// arrives, so a bogus length does not cause a large allocation up front.
func readContent(r io.Reader, n uint64) ([]byte, error) {
	if n == 0 {
		return nil, nil
	} else if n > math.MaxInt64 {
		return nil, ErrLengthOverflow
	}
	var buf bytes.Buffer
	buf.Grow(int(min(n, 4096)))
	if _, err := io.CopyN(&buf, r, int64(n)); err != nil {
		if err == io.EOF {
			return nil, ErrBufferUnderrun
		}
		return nil, err
	}
	return buf.Bytes(), nil
}

// recorder is a Reader that keeps a copy of every octet read through it.
type recorder struct {
	r   Reader
	buf []byte
}

func (c *recorder) ReadByte() (byte, error) {
	b, err := c.r.ReadByte()
	if err == nil {
		c.buf = append(c.buf, b)
	}
	return b, err
}

func (c *recorder) Read(p []byte) (int, error) {
	nr, err := c.r.Read(p)
	c.buf = append(c.buf, p[:nr]...)
	return nr, err
}
