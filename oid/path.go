// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package oid

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
)

// A Path is the numeric form of an object identifier, a sequence of arcs
// from the root of the OID tree, e.g., [1 2 840 113549].
type Path []uint64

// ParsePath parses a dotted decimal string such as "1.2.840.113549" into a
// Path. Each arc must be a non-empty run of decimal digits without a
// redundant leading zero. If s is not valid, ParsePath reports an error of
// concrete type [*FormatError].
func ParsePath(s string) (Path, error) {
	if s == "" {
		return nil, &FormatError{Input: s, Reason: "empty path"}
	}
	var out Path
	for i, arc := range strings.Split(s, ".") {
		v, why := parseArc(arc)
		if why != "" {
			return nil, &FormatError{Input: s, Reason: fmt.Sprintf("arc %d: %s", i, why)}
		}
		out = append(out, v)
	}
	return out, nil
}

// parseArc parses a single decimal arc. If s is not valid, it returns a
// non-empty description of the problem.
func parseArc(s string) (uint64, string) {
	if s == "" {
		return 0, "empty arc"
	} else if len(s) > 1 && s[0] == '0' {
		return 0, "leading zero"
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, fmt.Sprintf("invalid digit %q", s[i])
		}
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, "value out of range"
	}
	return v, ""
}

// String renders p in dotted decimal notation.
func (p Path) String() string {
	buf := make([]byte, 0, 4*len(p))
	for i, arc := range p {
		if i > 0 {
			buf = append(buf, '.')
		}
		buf = strconv.AppendUint(buf, arc, 10)
	}
	return string(buf)
}

// Equal reports whether p and q have the same arcs.
func (p Path) Equal(q Path) bool { return slices.Equal(p, q) }

// HasPrefix reports whether q is a prefix of p.
func (p Path) HasPrefix(q Path) bool { return len(q) <= len(p) && slices.Equal(p[:len(q)], q) }

// Child returns a new path consisting of p followed by arcs.
func (p Path) Child(arcs ...uint64) Path {
	return append(slices.Clip(slices.Clone(p)), arcs...)
}

// key returns a compact binary encoding of p for use as a map key.
func (p Path) key() string {
	buf := make([]byte, 0, len(p)+4)
	for _, arc := range p {
		buf = binary.AppendUvarint(buf, arc)
	}
	return string(buf)
}

// AppendContent appends the content octets of the BER OBJECT IDENTIFIER
// encoding of p to buf, and returns the updated slice.
//
// The first two arcs are combined into a single subidentifier, so p must have
// at least two arcs, the first arc must be 0, 1, or 2, and if the first arc
// is 0 or 1 the second must be less than 40. Otherwise AppendContent reports
// an error of concrete type [*FormatError] and returns buf unmodified.
func (p Path) AppendContent(buf []byte) ([]byte, error) {
	if len(p) < 2 {
		return buf, &FormatError{Input: p.String(), Reason: "too few arcs to encode"}
	} else if p[0] > 2 {
		return buf, &FormatError{Input: p.String(), Reason: "first arc must be 0, 1, or 2"}
	} else if p[0] < 2 && p[1] >= 40 {
		return buf, &FormatError{Input: p.String(), Reason: "second arc must be less than 40"}
	} else if p[1] > math.MaxUint64-80 {
		return buf, &FormatError{Input: p.String(), Reason: "second arc out of range"}
	}
	buf = appendBase128(buf, 40*p[0]+p[1])
	for _, arc := range p[2:] {
		buf = appendBase128(buf, arc)
	}
	return buf, nil
}

// appendBase128 appends v as a big-endian base-128 subidentifier, with the
// high bit set on every octet but the last.
func appendBase128(buf []byte, v uint64) []byte {
	n := 1
	for t := v >> 7; t != 0; t >>= 7 {
		n++
	}
	for i := n - 1; i > 0; i-- {
		buf = append(buf, byte(v>>(7*i))|0x80)
	}
	return append(buf, byte(v&0x7f))
}

// ParseContent parses the content octets of a BER OBJECT IDENTIFIER encoding
// into a Path. If data is not a valid encoding, ParseContent reports an error
// of concrete type [*FormatError].
func ParseContent(data []byte) (Path, error) {
	if len(data) == 0 {
		return nil, &FormatError{Input: hex.EncodeToString(data), Reason: "empty content"}
	}
	var out Path
	var cur uint64
	start := true
	for _, b := range data {
		if start && b == 0x80 {
			return nil, &FormatError{Input: hex.EncodeToString(data), Reason: "non-minimal subidentifier"}
		}
		if cur > math.MaxUint64>>7 {
			return nil, &FormatError{Input: hex.EncodeToString(data), Reason: "subidentifier out of range"}
		}
		cur = cur<<7 | uint64(b&0x7f)
		start = b&0x80 == 0
		if !start {
			continue
		}
		if out == nil {
			switch {
			case cur < 40:
				out = Path{0, cur}
			case cur < 80:
				out = Path{1, cur - 40}
			default:
				out = Path{2, cur - 80}
			}
		} else {
			out = append(out, cur)
		}
		cur = 0
	}
	if !start {
		return nil, &FormatError{Input: hex.EncodeToString(data), Reason: "truncated subidentifier"}
	}
	return out, nil
}
