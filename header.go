// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package asn1tlv

import (
	"fmt"
	"io"
)

// A Header is the identifier and length of an encoding, which together
// precede the content octets.
type Header struct {
	Identifier
	Length Length
}

// Append appends the encoding of h to buf, and returns the updated slice.
//
// The leading identifier octet is followed, for a custom tag, by the tag
// number as a tag-length extension using 0xFE fillers (unlike
// [Identifier.Append], which uses 0xFF), and then by the content length.
// Both forms decode to the same tag number.
func (h Header) Append(buf []byte) []byte {
	buf = append(buf, h.leadingByte())
	if h.IsCustom() {
		buf = appendTagLength(buf, h.Number)
	}
	return h.Length.Append(buf)
}

// Encode returns the encoding of h.
func (h Header) Encode() []byte { return h.Append(make([]byte, 0, h.Size())) }

// Size reports the number of octets in the encoding of h.
func (h Header) Size() int {
	n := 1
	if h.IsCustom() {
		n += tagLengthSize(h.Number)
	}
	return n + h.Length.Size()
}

// DecodeHeader consumes a header from the head of r. On success, r is
// positioned at the first content octet.
func DecodeHeader(r io.ByteReader) (Header, error) {
	lead, err := readByte(r)
	if err != nil {
		return Header{}, decodeError("identifier", err)
	}
	h := Header{Identifier: Identifier{
		Class:  ClassOf(lead),
		Method: MethodOf(lead),
		Tag:    TagOf(lead),
		Number: uint64(TagOf(lead)),
	}}
	if h.IsCustom() {
		h.Number, err = readTagLength(r)
		if err != nil {
			return Header{}, decodeError("tag number", err)
		}
	}
	h.Length, err = DecodeLength(r)
	if err != nil {
		return Header{}, err
	}
	return h, nil
}

// String returns a human-friendly rendering of the header.
func (h Header) String() string {
	if h.IsCustom() {
		return fmt.Sprintf("Header(%v, %v, %v %d, len=%v)", h.Class, h.Method, h.Tag, h.Number, h.Length)
	}
	return fmt.Sprintf("Header(%v, %v, %v, len=%v)", h.Class, h.Method, h.Tag, h.Length)
}
