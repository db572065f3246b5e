// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package stream_test

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/creachadair/asn1tlv"
	"github.com/creachadair/asn1tlv/stream"
	"github.com/creachadair/taskgroup"
	"github.com/fortytw2/leaktest"
	"github.com/google/go-cmp/cmp"
)

const input = "" +
	"\x02\x01\x05" + // INTEGER 5
	"\x30\x80\x01\x01\xff\x04\x02hi\x00\x00" + // SEQUENCE (indefinite) { BOOLEAN, OCTET STRING }
	"\x30\x06\x30\x04\x05\x00\x05\x00" // SEQUENCE { SEQUENCE { NULL, NULL } }

func encodeAll(t *testing.T, r io.Reader) ([]string, error) {
	t.Helper()
	var got []string
	for e, err := range stream.Elements(r) {
		if err != nil {
			return got, err
		}
		got = append(got, fmt.Sprintf("%x", e.Encode()))
	}
	return got, nil
}

func TestElements(t *testing.T) {
	got, err := encodeAll(t, strings.NewReader(input))
	if err != nil {
		t.Fatalf("Elements: unexpected error: %v", err)
	}
	want := []string{"020105", "30800101ff040268690000", "3006300405000500"}
	if diff := cmp.Diff(got, want); diff != "" {
		t.Errorf("Elements (-got, +want):\n%s", diff)
	}

	t.Run("Empty", func(t *testing.T) {
		got, err := encodeAll(t, strings.NewReader(""))
		if err != nil || len(got) != 0 {
			t.Errorf("Elements: got (%v, %v), want no elements", got, err)
		}
	})

	t.Run("Truncated", func(t *testing.T) {
		got, err := encodeAll(t, strings.NewReader(input[:len(input)-1]))
		if !errors.Is(err, asn1tlv.ErrBufferUnderrun) {
			t.Errorf("Elements: got error %v, want %v", err, asn1tlv.ErrBufferUnderrun)
		}
		if len(got) != 2 {
			t.Errorf("Elements: got %d elements before the error, want 2", len(got))
		}
	})

	t.Run("Break", func(t *testing.T) {
		r := stream.NewReader(strings.NewReader(input))
		for range r.All() {
			break
		}
		if got := r.Offset(); got != 3 {
			t.Errorf("Offset after one element: got %d, want 3", got)
		}
		e, err := r.Next()
		if err != nil {
			t.Fatalf("Next: unexpected error: %v", err)
		}
		if !e.Length.IsIndefinite() {
			t.Errorf("Next: got %v, want indefinite length", e.Header)
		}
	})
}

func TestPipe(t *testing.T) {
	defer leaktest.Check(t)()

	// Elements arrive in pieces from a concurrent writer.
	pr, pw := io.Pipe()
	g := taskgroup.New(nil)
	g.Go(func() error {
		defer pw.Close()
		for i := 0; i < len(input); i += 2 {
			if _, err := io.WriteString(pw, input[i:min(i+2, len(input))]); err != nil {
				return err
			}
		}
		return nil
	})

	var logged []string
	r := stream.NewReader(pr).LogHeaders(func(h stream.HeaderInfo) {
		logged = append(logged, h.String())
	})
	var n int
	for _, err := range r.All() {
		if err != nil {
			t.Fatalf("All: unexpected error: %v", err)
		}
		n++
	}
	if err := g.Wait(); err != nil {
		t.Errorf("Writer: %v", err)
	}
	if n != 3 {
		t.Errorf("All: got %d elements, want 3", n)
	}
	want := []string{
		"@0 [3] Header(UNIVERSAL, PRIMITIVE, INTEGER, len=1)",
		"@3 [11] Header(UNIVERSAL, CONSTRUCTED, SEQUENCE, len=indefinite)",
		"@14 [8] Header(UNIVERSAL, CONSTRUCTED, SEQUENCE, len=6)",
	}
	if diff := cmp.Diff(logged, want); diff != "" {
		t.Errorf("Logged headers (-got, +want):\n%s", diff)
	}
}

func TestWalk(t *testing.T) {
	var got []string
	visit := func(n stream.Node) error {
		got = append(got, fmt.Sprintf("%d.%d %v", n.Depth, n.Index, n.Tag))
		return nil
	}
	for e, err := range stream.Elements(strings.NewReader(input)) {
		if err != nil {
			t.Fatalf("Elements: unexpected error: %v", err)
		}
		if err := stream.Walk(e, visit); err != nil {
			t.Fatalf("Walk: unexpected error: %v", err)
		}
	}
	want := []string{
		"0.0 INTEGER",
		"0.0 SEQUENCE", "1.0 BOOLEAN", "1.1 OCTET STRING",
		"0.0 SEQUENCE", "1.0 SEQUENCE", "2.0 NULL", "2.1 NULL",
	}
	if diff := cmp.Diff(got, want); diff != "" {
		t.Errorf("Walk (-got, +want):\n%s", diff)
	}

	t.Run("Skip", func(t *testing.T) {
		e := asn1tlv.Element{
			Header: asn1tlv.Header{
				Identifier: asn1tlv.NewIdentifier(asn1tlv.Universal, asn1tlv.Constructed, asn1tlv.TagSequence),
				Length:     asn1tlv.Definite(4),
			},
			Content: []byte("\x30\x02\x05\x00"),
		}
		var n int
		err := stream.Walk(e, func(nd stream.Node) error {
			n++
			if nd.Depth == 1 {
				return stream.SkipChildren
			}
			return nil
		})
		if err != nil || n != 2 {
			t.Errorf("Walk: got (%d, %v), want (2, nil)", n, err)
		}
	})

	t.Run("Error", func(t *testing.T) {
		e := asn1tlv.Element{
			Header: asn1tlv.Header{
				Identifier: asn1tlv.NewIdentifier(asn1tlv.Universal, asn1tlv.Constructed, asn1tlv.TagSet),
				Length:     asn1tlv.Definite(2),
			},
			Content: []byte("\x02\x05"),
		}
		if err := stream.Walk(e, func(stream.Node) error { return nil }); !errors.Is(err, asn1tlv.ErrBufferUnderrun) {
			t.Errorf("Walk: got %v, want %v", err, asn1tlv.ErrBufferUnderrun)
		}

		stop := errors.New("stop")
		if err := stream.Walk(e, func(stream.Node) error { return stop }); err != stop {
			t.Errorf("Walk: got %v, want %v", err, stop)
		}
	})
}
