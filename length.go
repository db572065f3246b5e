// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package asn1tlv

import (
	"fmt"
	"io"
	"math"
	"math/bits"
)

// Length is the content length of an encoding. A length is either definite,
// giving the number of content octets that follow the header, or indefinite,
// meaning the content is terminated by an end-of-contents marker.
//
// The zero value is a definite length of 0.
type Length struct {
	n     uint64
	indef bool
}

// Indefinite is the indefinite length.
var Indefinite = Length{indef: true}

// Definite returns a definite length of n octets.
func Definite(n uint64) Length { return Length{n: n} }

// Value reports the number of content octets for a definite length, and
// whether l is definite. For an indefinite length it returns (0, false).
func (l Length) Value() (uint64, bool) { return l.n, !l.indef }

// IsIndefinite reports whether l is the indefinite length.
func (l Length) IsIndefinite() bool { return l.indef }

func (l Length) String() string {
	if l.indef {
		return "indefinite"
	}
	return fmt.Sprint(l.n)
}

// Size reports the number of octets in the encoding of l.
func (l Length) Size() int {
	if l.indef || l.n <= maxShortLength {
		return 1
	}
	return 1 + longFormBytes(l.n)
}

// longFormBytes reports the minimum number of octets needed to represent n.
func longFormBytes(n uint64) int { return (bits.Len64(n) + 7) / 8 }

// Append appends the encoding of l to buf, and returns the updated slice.
//
// An indefinite length is encoded as the single octet 0x80. A definite
// length less than 128 is encoded in short form as a single octet. Otherwise
// the long form is used: an octet 0x80|k followed by the k octets of the
// length in big-endian order, where k is as small as possible.
func (l Length) Append(buf []byte) []byte {
	if l.indef {
		return append(buf, lengthIndefinite)
	} else if l.n <= maxShortLength {
		return append(buf, byte(l.n))
	}
	k := longFormBytes(l.n)
	buf = append(buf, maskLenModifier|byte(k))
	for i := k - 1; i >= 0; i-- {
		buf = append(buf, byte(l.n>>(8*i)))
	}
	return buf
}

// Encode returns the encoding of l.
func (l Length) Encode() []byte { return l.Append(nil) }

// DecodeLength consumes a content length from the head of r.
func DecodeLength(r io.ByteReader) (Length, error) {
	lead, err := readByte(r)
	if err != nil {
		return Length{}, decodeError("length", err)
	}
	if lead == lengthIndefinite {
		return Indefinite, nil
	} else if lead&maskLenModifier == 0 {
		return Definite(uint64(lead)), nil
	}

	// Long form: the low 7 bits give the number of length octets to follow.
	var out uint64
	for range int(lead & maskLenContent) {
		b, err := readByte(r)
		if err != nil {
			return Length{}, decodeError("length", err)
		}
		if out > math.MaxUint64>>8 {
			return Length{}, decodeError("length", ErrLengthOverflow)
		}
		out = out<<8 | uint64(b)
	}
	return Definite(out), nil
}

// readTagLength consumes a tag-length extension from the head of r.  Each
// octet contributes its low 7 bits to the sum; the extension ends at the
// first octet whose high bit is clear.
func readTagLength(r io.ByteReader) (uint64, error) {
	var out uint64
	for {
		b, err := readByte(r)
		if err != nil {
			return 0, err
		}
		v := uint64(b & maskLenContent)
		if out > math.MaxUint64-v {
			return 0, ErrLengthOverflow
		}
		out += v
		if b&maskLenModifier == 0 {
			return out, nil
		}
	}
}

// appendTagLength appends the tag-length extension encoding n to buf.  Every
// octet but the last is 0xFE, contributing 126; the last holds the remainder.
// Writers never emit 0xFF, nor 0x80 as a filler.
func appendTagLength(buf []byte, n uint64) []byte {
	for n > maxTagLengthWrite {
		buf = append(buf, fillerTagLength)
		n -= maxTagLengthWrite
	}
	return append(buf, byte(n))
}

// tagLengthSize reports the number of octets appendTagLength uses for n.
func tagLengthSize(n uint64) int {
	if n <= maxTagLengthWrite {
		return 1
	}
	return int((n-1)/maxTagLengthWrite) + 1
}
