// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package asn1tlv

import (
	"errors"
	"io"
	"math/big"

	"golang.org/x/exp/constraints"
)

var (
	errEmptyInteger = errors.New("empty integer content")

	bigOne = big.NewInt(1)
)

// AppendInt appends the minimal two's-complement encoding of v to buf, and
// returns the updated slice. At least one octet is always written.
//
// A leading octet is omitted only while it and the high bit of the octet
// after it are all copies of the sign bit, so that removing it does not
// change the value.
func AppendInt[T constraints.Signed](buf []byte, v T) []byte {
	x := int64(v)
	raw := uint64(x)

	var sign byte // the octet to skip while it only extends the sign
	if x < 0 {
		sign = 0xff
	}
	skipping := true
	for shift := 56; shift > 0; shift -= 8 {
		cur := byte(raw >> shift)
		next := byte(raw >> (shift - 8))
		if skipping {
			skipping = cur == sign && next>>7 == sign>>7
		}
		if !skipping {
			buf = append(buf, cur)
		}
	}
	return append(buf, byte(raw)) // the last octet is always kept
}

// EncodeInt64 returns the minimal two's-complement encoding of v.
func EncodeInt64(v int64) []byte { return AppendInt(nil, v) }

// AppendInteger appends the minimal two's-complement encoding of v to buf,
// and returns the updated slice. At least one octet is always written.
func AppendInteger(buf []byte, v *big.Int) []byte {
	switch v.Sign() {
	case 0:
		return append(buf, 0)
	case 1:
		mag := v.Bytes()
		if mag[0]&0x80 != 0 {
			buf = append(buf, 0) // keep the sign bit clear
		}
		return append(buf, mag...)
	}

	// For v < 0, the two's complement of v is the bitwise complement of |v|-1.
	m := new(big.Int).Neg(v)
	mag := m.Sub(m, bigOne).Bytes()
	for i := range mag {
		mag[i] ^= 0xff
	}
	if len(mag) == 0 || mag[0]&0x80 == 0 {
		buf = append(buf, 0xff) // keep the sign bit set
	}
	return append(buf, mag...)
}

// EncodeInteger returns the minimal two's-complement encoding of v.
func EncodeInteger(v *big.Int) []byte { return AppendInteger(nil, v) }

// readSpan reads exactly n octets from r.
func readSpan(r io.ByteReader, n int) ([]byte, error) {
	if n <= 0 {
		return nil, errEmptyInteger
	}
	buf := make([]byte, 0, min(n, 64))
	for range n {
		b, err := readByte(r)
		if err != nil {
			return nil, err
		}
		buf = append(buf, b)
	}
	return buf, nil
}

// DecodeInteger consumes exactly n octets from r and decodes them as a
// two's-complement signed integer. The sign is the high bit of the first
// octet.
func DecodeInteger(r io.ByteReader, n int) (*big.Int, error) {
	span, err := readSpan(r, n)
	if err != nil {
		return nil, decodeError("integer", err)
	}
	out := new(big.Int).SetBytes(span)
	if span[0]&0x80 == 0 {
		return out, nil
	}

	// Negative: -((acc XOR mask) + 1) where mask has 8n one bits.
	mask := new(big.Int).Lsh(bigOne, uint(8*n))
	mask.Sub(mask, bigOne)
	out.Xor(out, mask).Add(out, bigOne)
	return out.Neg(out), nil
}

// DecodeInt64 consumes exactly n octets from r and decodes them as a
// two's-complement signed integer. If the value does not fit in an int64,
// DecodeInt64 reports an error wrapping [ErrIntegerRange]; the n octets
// are consumed either way.
func DecodeInt64(r io.ByteReader, n int) (int64, error) {
	if n > 8 {
		v, err := DecodeInteger(r, n)
		if err != nil {
			return 0, err
		} else if !v.IsInt64() {
			return 0, decodeError("integer", ErrIntegerRange)
		}
		return v.Int64(), nil
	}

	span, err := readSpan(r, n)
	if err != nil {
		return 0, decodeError("integer", err)
	}
	var acc uint64
	for _, b := range span {
		acc = acc<<8 | uint64(b)
	}
	if span[0]&0x80 == 0 {
		return int64(acc), nil
	}
	mask := uint64(1)<<(8*n) - 1 // n == 8 wraps to all ones
	return -int64((acc ^ mask) + 1), nil
}
