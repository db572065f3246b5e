// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package asn1tlv_test

import (
	"math/big"
	"testing"

	"github.com/creachadair/asn1tlv"
	"github.com/creachadair/asn1tlv/cursor"
)

func BenchmarkHeader(b *testing.B) {
	h := asn1tlv.Header{
		Identifier: asn1tlv.CustomIdentifier(asn1tlv.Contextual, asn1tlv.Constructed, 269),
		Length:     asn1tlv.Definite(7000),
	}
	enc := h.Encode()

	b.Run("Append", func(b *testing.B) {
		buf := make([]byte, 0, 16)
		for b.Loop() {
			buf = h.Append(buf[:0])
		}
	})
	b.Run("Decode", func(b *testing.B) {
		s := cursor.NewScanner(enc)
		for b.Loop() {
			s.Reset()
			if _, err := asn1tlv.DecodeHeader(s); err != nil {
				b.Fatal(err)
			}
		}
	})
}

func BenchmarkInteger(b *testing.B) {
	const v = -47803
	enc := asn1tlv.EncodeInt64(v)
	wide := new(big.Int).Lsh(big.NewInt(v), 100)
	benc := asn1tlv.EncodeInteger(wide)

	b.Run("AppendInt", func(b *testing.B) {
		buf := make([]byte, 0, 16)
		for b.Loop() {
			buf = asn1tlv.AppendInt(buf[:0], int64(v))
		}
	})
	b.Run("DecodeInt64", func(b *testing.B) {
		s := cursor.NewScanner(enc)
		for b.Loop() {
			s.Reset()
			if _, err := asn1tlv.DecodeInt64(s, len(enc)); err != nil {
				b.Fatal(err)
			}
		}
	})
	b.Run("AppendInteger", func(b *testing.B) {
		buf := make([]byte, 0, 32)
		for b.Loop() {
			buf = asn1tlv.AppendInteger(buf[:0], wide)
		}
	})
	b.Run("DecodeInteger", func(b *testing.B) {
		s := cursor.NewScanner(benc)
		for b.Loop() {
			s.Reset()
			if _, err := asn1tlv.DecodeInteger(s, len(benc)); err != nil {
				b.Fatal(err)
			}
		}
	})
}

func BenchmarkReadElement(b *testing.B) {
	// SEQUENCE (indefinite) of 64 small INTEGERs.
	var bld cursor.Builder
	bld.Put(0x30, 0x80)
	for i := range 64 {
		bld.Append(asn1tlv.Element{
			Header:  asn1tlv.Header{Identifier: intID, Length: asn1tlv.Definite(1)},
			Content: []byte{byte(i)},
		}.Append)
	}
	bld.Put(0x00, 0x00)
	data := bld.Bytes()

	s := cursor.NewScanner(data)
	for b.Loop() {
		s.Reset()
		if _, err := asn1tlv.ReadElement(s); err != nil {
			b.Fatal(err)
		}
	}
}
