// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package asn1tlv_test

import (
	"math"
	"math/big"
	"testing"

	"github.com/creachadair/asn1tlv"
	"github.com/creachadair/asn1tlv/cursor"
)

func TestInt64(t *testing.T) {
	tests := []struct {
		input int64
		want  string
	}{
		{0, "\x00"},
		{1, "\x01"},
		{-1, "\xff"},
		{127, "\x7f"},
		{128, "\x00\x80"},
		{-128, "\x80"},
		{-129, "\xff\x7f"},
		{255, "\x00\xff"},
		{256, "\x01\x00"},
		{9301, "\x24\x55"},
		{-15035, "\xc5\x45"},
		{-47803, "\xff\x45\x45"},
		{10245698, "\x00\x9c\x56\x42"},
		{math.MaxInt32, "\x7f\xff\xff\xff"},
		{math.MinInt32, "\x80\x00\x00\x00"},
		{math.MaxInt64, "\x7f\xff\xff\xff\xff\xff\xff\xff"},
		{math.MinInt64, "\x80\x00\x00\x00\x00\x00\x00\x00"},
	}
	for _, tc := range tests {
		if got := asn1tlv.EncodeInt64(tc.input); string(got) != tc.want {
			t.Errorf("Encode %d: got %x, want %x", tc.input, got, tc.want)
		}

		s := cursor.NewScanner(tc.want + "\x99")
		got, err := asn1tlv.DecodeInt64(s, len(tc.want))
		if err != nil {
			t.Errorf("Decode %x: unexpected error: %v", tc.want, err)
		} else if got != tc.input {
			t.Errorf("Decode %x: got %d, want %d", tc.want, got, tc.input)
		}
		if s.Len() != 1 {
			t.Errorf("Decode %x: consumed %d bytes, want %d", tc.want, s.Offset(), len(tc.want))
		}

		// The arbitrary-precision codec agrees with the fixed-width one.
		if got := asn1tlv.EncodeInteger(big.NewInt(tc.input)); string(got) != tc.want {
			t.Errorf("EncodeInteger %d: got %x, want %x", tc.input, got, tc.want)
		}
		bv, err := asn1tlv.DecodeInteger(cursor.NewScanner(tc.want), len(tc.want))
		if err != nil {
			t.Errorf("DecodeInteger %x: unexpected error: %v", tc.want, err)
		} else if !bv.IsInt64() || bv.Int64() != tc.input {
			t.Errorf("DecodeInteger %x: got %v, want %d", tc.want, bv, tc.input)
		}
	}
}

func TestIntWidths(t *testing.T) {
	if got := asn1tlv.AppendInt([]byte("x"), int8(-128)); string(got) != "x\x80" {
		t.Errorf("AppendInt(int8): got %x", got)
	}
	if got := asn1tlv.AppendInt(nil, int16(-47803>>8)); string(got) != "\xff\x45" {
		t.Errorf("AppendInt(int16): got %x", got)
	}
	if got := asn1tlv.AppendInt(nil, int32(10245698)); string(got) != "\x00\x9c\x56\x42" {
		t.Errorf("AppendInt(int32): got %x", got)
	}
}

func TestIntegerRoundTrip(t *testing.T) {
	var values []int64
	for v := int64(-70000); v <= 70000; v += 37 {
		values = append(values, v)
	}
	for shift := range 63 {
		p := int64(1) << shift
		values = append(values, p-1, p, p+1, -p-1, -p, -p+1)
	}
	for _, v := range values {
		enc := asn1tlv.EncodeInt64(v)

		// The encoding is minimal: the first nine bits are never all equal.
		if len(enc) > 1 {
			if (enc[0] == 0x00 && enc[1]&0x80 == 0) || (enc[0] == 0xff && enc[1]&0x80 != 0) {
				t.Errorf("Encode %d: %x is not minimal", v, enc)
			}
		}

		got, err := asn1tlv.DecodeInt64(cursor.NewScanner(enc), len(enc))
		if err != nil {
			t.Fatalf("Decode %x: unexpected error: %v", enc, err)
		} else if got != v {
			t.Errorf("Decode %x: got %d, want %d", enc, got, v)
		}
	}
}

func TestBigInteger(t *testing.T) {
	tests := []struct {
		input string // decimal
		want  string
	}{
		{"18446744073709551615", "\x00\xff\xff\xff\xff\xff\xff\xff\xff"},
		{"18446744073709551616", "\x01\x00\x00\x00\x00\x00\x00\x00\x00"},
		{"-9223372036854775809", "\xff\x7f\xff\xff\xff\xff\xff\xff\xff"},
		{"-18446744073709551616", "\xff\x00\x00\x00\x00\x00\x00\x00\x00"},
		{"-340282366920938463463374607431768211456", "\xff" + string(make([]byte, 16))},
	}
	for _, tc := range tests {
		v, ok := new(big.Int).SetString(tc.input, 10)
		if !ok {
			t.Fatalf("Invalid test input %q", tc.input)
		}
		if got := asn1tlv.EncodeInteger(v); string(got) != tc.want {
			t.Errorf("Encode %v: got %x, want %x", v, got, tc.want)
		}
		got, err := asn1tlv.DecodeInteger(cursor.NewScanner(tc.want), len(tc.want))
		if err != nil {
			t.Errorf("Decode %x: unexpected error: %v", tc.want, err)
		} else if got.Cmp(v) != 0 {
			t.Errorf("Decode %x: got %v, want %v", tc.want, got, v)
		}

		// Values wider than 64 bits are out of range for DecodeInt64.
		if _, err := asn1tlv.DecodeInt64(cursor.NewScanner(tc.want), len(tc.want)); err == nil {
			t.Errorf("DecodeInt64 %x: got nil error, want range error", tc.want)
		}
	}

	t.Run("WideInt64", func(t *testing.T) {
		// A non-minimal 9-octet encoding of an int64 is accepted.
		got, err := asn1tlv.DecodeInt64(cursor.NewScanner("\xff\xff\xff\xff\xff\xff\xff\xff\xfe"), 9)
		if err != nil {
			t.Fatalf("Decode: unexpected error: %v", err)
		} else if got != -2 {
			t.Errorf("Decode: got %d, want -2", got)
		}
	})
}
