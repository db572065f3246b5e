// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package asn1tlv_test

import (
	"bufio"
	"errors"
	"strings"
	"testing"

	"github.com/creachadair/asn1tlv"
	"github.com/creachadair/asn1tlv/cursor"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var (
	seqID  = asn1tlv.NewIdentifier(asn1tlv.Universal, asn1tlv.Constructed, asn1tlv.TagSequence)
	intID  = asn1tlv.NewIdentifier(asn1tlv.Universal, asn1tlv.Primitive, asn1tlv.TagInteger)
	boolID = asn1tlv.NewIdentifier(asn1tlv.Universal, asn1tlv.Primitive, asn1tlv.TagBoolean)

	elementOpts = []cmp.Option{
		cmp.AllowUnexported(asn1tlv.Length{}),
		cmpopts.EquateEmpty(),
	}
)

func TestReadElement(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  asn1tlv.Element
	}{
		{"Empty", "\x05\x00", asn1tlv.Element{
			Header: asn1tlv.Header{Identifier: asn1tlv.NewIdentifier(asn1tlv.Universal, asn1tlv.Primitive, asn1tlv.TagNull)},
		}},
		{"Definite", "\x02\x02\x24\x55", asn1tlv.Element{
			Header:  asn1tlv.Header{Identifier: intID, Length: asn1tlv.Definite(2)},
			Content: []byte("\x24\x55"),
		}},
		{"Indefinite", "\x30\x80\x02\x01\x05\x01\x01\xff\x00\x00", asn1tlv.Element{
			Header:  asn1tlv.Header{Identifier: seqID, Length: asn1tlv.Indefinite},
			Content: []byte("\x02\x01\x05\x01\x01\xff"),
		}},
		{"Nested", "\x30\x80\x30\x80\x02\x01\x01\x00\x00\x00\x00", asn1tlv.Element{
			Header:  asn1tlv.Header{Identifier: seqID, Length: asn1tlv.Indefinite},
			Content: []byte("\x30\x80\x02\x01\x01\x00\x00"),
		}},
		{"EmptyIndefinite", "\x30\x80\x00\x00", asn1tlv.Element{
			Header: asn1tlv.Header{Identifier: seqID, Length: asn1tlv.Indefinite},
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := cursor.NewScanner(tc.input + "TAIL")
			got, err := asn1tlv.ReadElement(s)
			if err != nil {
				t.Fatalf("ReadElement %q: unexpected error: %v", tc.input, err)
			}
			if diff := cmp.Diff(got, tc.want, elementOpts...); diff != "" {
				t.Errorf("ReadElement %q (-got, +want):\n%s", tc.input, diff)
			}
			if rest := string(s.Rest()); rest != "TAIL" {
				t.Errorf("ReadElement %q: rest is %q, want TAIL", tc.input, rest)
			}
			if enc := got.Encode(); string(enc) != tc.input {
				t.Errorf("Encode: got %x, want %x", enc, tc.input)
			}
		})
	}
}

func TestReadElementBuffered(t *testing.T) {
	// A buffered reader works as a cursor too.
	r := bufio.NewReader(strings.NewReader("\x02\x01\x05\x30\x80\x01\x01\x00\x00\x00"))
	var got []asn1tlv.Element
	for range 2 {
		e, err := asn1tlv.ReadElement(r)
		if err != nil {
			t.Fatalf("ReadElement: unexpected error: %v", err)
		}
		got = append(got, e)
	}
	want := []asn1tlv.Element{
		{Header: asn1tlv.Header{Identifier: intID, Length: asn1tlv.Definite(1)}, Content: []byte{5}},
		{Header: asn1tlv.Header{Identifier: seqID, Length: asn1tlv.Indefinite}, Content: []byte("\x01\x01\x00")},
	}
	if diff := cmp.Diff(got, want, elementOpts...); diff != "" {
		t.Errorf("Elements (-got, +want):\n%s", diff)
	}
	if _, err := asn1tlv.ReadElement(r); !errors.Is(err, asn1tlv.ErrBufferUnderrun) {
		t.Errorf("ReadElement at end: got %v, want %v", err, asn1tlv.ErrBufferUnderrun)
	}
}

func TestReadElementErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"Empty", ""},
		{"NoLength", "\x02"},
		{"ShortContent", "\x04\x05\xaa\xbb"},
		{"NoEOC", "\x30\x80\x02\x01\x05"},
		{"HalfEOC", "\x30\x80\x02\x01\x05\x00"},
		{"ShortChild", "\x30\x80\x02\x03\x05"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := asn1tlv.ReadElement(cursor.NewScanner(tc.input))
			if !errors.Is(err, asn1tlv.ErrBufferUnderrun) {
				t.Errorf("ReadElement %q: got %v, want %v", tc.input, err, asn1tlv.ErrBufferUnderrun)
			}
		})
	}

	t.Run("TooDeep", func(t *testing.T) {
		input := strings.Repeat("\x30\x80", asn1tlv.MaxDepth+2)
		_, err := asn1tlv.ReadElement(cursor.NewScanner(input))
		var de *asn1tlv.DecodeError
		if !errors.As(err, &de) {
			t.Fatalf("ReadElement: got %v, want DecodeError", err)
		}
		if errors.Is(err, asn1tlv.ErrBufferUnderrun) {
			t.Errorf("ReadElement: got %v, want depth error", err)
		}
	})
}

func TestChildren(t *testing.T) {
	e := asn1tlv.Element{
		Header:  asn1tlv.Header{Identifier: seqID, Length: asn1tlv.Definite(6)},
		Content: []byte("\x02\x01\x05\x01\x01\xff"),
	}
	got, err := e.Children()
	if err != nil {
		t.Fatalf("Children: unexpected error: %v", err)
	}
	want := []asn1tlv.Element{
		{Header: asn1tlv.Header{Identifier: intID, Length: asn1tlv.Definite(1)}, Content: []byte{0x05}},
		{Header: asn1tlv.Header{Identifier: boolID, Length: asn1tlv.Definite(1)}, Content: []byte{0xff}},
	}
	if diff := cmp.Diff(got, want, elementOpts...); diff != "" {
		t.Errorf("Children (-got, +want):\n%s", diff)
	}

	e.Content = append(e.Content, 0x02)
	if _, err := e.Children(); !errors.Is(err, asn1tlv.ErrBufferUnderrun) {
		t.Errorf("Children: got %v, want %v", err, asn1tlv.ErrBufferUnderrun)
	}
}

func TestEOC(t *testing.T) {
	if !asn1tlv.EOC.IsEOC() {
		t.Error("EOC.IsEOC() is false")
	}
	if got := asn1tlv.EOC.Encode(); string(got) != "\x00\x00" {
		t.Errorf("EOC.Encode: got %x, want 0000", got)
	}
	e := asn1tlv.Element{Header: asn1tlv.Header{Identifier: intID}}
	if e.IsEOC() {
		t.Errorf("%v.IsEOC() is true", e)
	}
}
