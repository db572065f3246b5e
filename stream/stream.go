// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Package stream reads successive encoded elements from an [io.Reader], such
// as a file containing concatenated BER encodings, and traverses their
// nested structure.
package stream

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"iter"

	"github.com/creachadair/asn1tlv"
	"github.com/creachadair/asn1tlv/cursor"
)

// A HeaderLogger logs the header of an element read from the input.
type HeaderLogger func(HeaderInfo)

// A HeaderInfo combines a header with its location in the input.
type HeaderInfo struct {
	asn1tlv.Header
	Offset int64 // of the first octet of the header
	Size   int64 // total size of the element, including its header
}

func (h HeaderInfo) String() string {
	return fmt.Sprintf("@%d [%d] %v", h.Offset, h.Size, h.Header)
}

// A Reader reads a sequence of top-level elements from an input stream.
type Reader struct {
	in   countingReader
	hlog HeaderLogger
}

// NewReader constructs a new Reader that consumes input from r.
func NewReader(r io.Reader) *Reader {
	return &Reader{in: countingReader{br: bufio.NewReader(r)}}
}

// LogHeaders registers a callback to be invoked for each top-level element
// read by r. If log == nil, logging is disabled. It returns r to allow
// chaining.
func (r *Reader) LogHeaders(log HeaderLogger) *Reader { r.hlog = log; return r }

// Offset reports the number of octets r has consumed from its input.
func (r *Reader) Offset() int64 { return r.in.n }

// Next reads the next complete element from the input. It returns [io.EOF]
// if the input ends cleanly between elements. If the input ends within an
// element, the error wraps [asn1tlv.ErrBufferUnderrun].
func (r *Reader) Next() (asn1tlv.Element, error) {
	if _, err := r.in.br.Peek(1); err != nil {
		return asn1tlv.Element{}, err
	}
	start := r.in.n
	e, err := asn1tlv.ReadElement(&r.in)
	if err != nil {
		return asn1tlv.Element{}, fmt.Errorf("element at offset %d: %w", start, err)
	}
	if r.hlog != nil {
		r.hlog(HeaderInfo{Header: e.Header, Offset: start, Size: r.in.n - start})
	}
	return e, nil
}

// All returns an iterator over the remaining elements of the input.
//
// The iterator yields zero or more (e, nil) values. If the input ends in the
// middle of an element, or a read fails, the iterator ends the sequence with
// a final (zero, err) pair.
func (r *Reader) All() iter.Seq2[asn1tlv.Element, error] {
	return func(yield func(asn1tlv.Element, error) bool) {
		for {
			e, err := r.Next()
			if err == io.EOF {
				return
			} else if err != nil {
				yield(asn1tlv.Element{}, err)
				return
			} else if !yield(e, nil) {
				return
			}
		}
	}
}

// Elements returns an iterator over the elements read from r.
// It is shorthand for NewReader(r).All().
func Elements(r io.Reader) iter.Seq2[asn1tlv.Element, error] { return NewReader(r).All() }

// A Node is an element visited by [Walk].
type Node struct {
	asn1tlv.Element
	Depth int // 0 for the root
	Index int // position among the children of its parent
}

// SkipChildren may be returned by the visitor passed to [Walk] to skip the
// children of the current element without stopping the traversal.
var SkipChildren = errors.New("skip children")

// Walk visits root and each of its descendants in depth-first order. The
// content of each element with the constructed method is parsed as a
// sequence of child elements.
//
// If visit reports an error other than [SkipChildren], the traversal stops
// and Walk returns that error. If the content of a constructed element is
// not a valid sequence of elements, Walk reports an error.
func Walk(root asn1tlv.Element, visit func(Node) error) error {
	return walk(Node{Element: root}, visit)
}

func walk(n Node, visit func(Node) error) error {
	if err := visit(n); errors.Is(err, SkipChildren) {
		return nil
	} else if err != nil {
		return err
	}
	if !n.IsConstructed() {
		return nil
	}
	s := cursor.NewScanner(n.Content)
	for i := 0; s.Len() != 0; i++ {
		off := s.Offset()
		c, err := asn1tlv.ReadElement(s)
		if err != nil {
			return fmt.Errorf("%v: child %d at offset %d: %w", n.Identifier, i, off, err)
		}
		if err := walk(Node{Element: c, Depth: n.Depth + 1, Index: i}, visit); err != nil {
			return err
		}
	}
	return nil
}

// countingReader is an [asn1tlv.Reader] that counts the octets read.
type countingReader struct {
	br *bufio.Reader
	n  int64
}

func (c *countingReader) ReadByte() (byte, error) {
	b, err := c.br.ReadByte()
	if err == nil {
		c.n++
	}
	return b, err
}

func (c *countingReader) Read(p []byte) (int, error) {
	nr, err := c.br.Read(p)
	c.n += int64(nr)
	return nr, err
}
