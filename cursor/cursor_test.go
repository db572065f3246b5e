// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package cursor_test

import (
	"errors"
	"io"
	"testing"

	"github.com/creachadair/asn1tlv/cursor"
	"github.com/google/go-cmp/cmp"
)

func TestBuilder(t *testing.T) {
	var b cursor.Builder
	b.Bool(true)
	b.Bool(false)
	b.Put(5, 9, 100)
	b.PutString("xyzzy")
	b.Append(func(buf []byte) []byte { return append(buf, 0x30, 0x00) })

	const want = "\xff\x00\x05\x09\x64xyzzy\x30\x00"
	//             ^   ^   ^-------^-- ^---- ^-------
	//          true false   byte*3  string  appended

	if n := b.Len(); n != len(want) {
		t.Errorf("Len = %d, want %d", n, len(want))
	}
	if string(b.Bytes()) != want {
		t.Errorf("Bytes = %q, want %q", b.Bytes(), want)
	}

	b.Reset()
	if b.Len() != 0 {
		t.Errorf("Len after Reset = %d, want 0", b.Len())
	}
	b.Grow(100)
	b.Put(1)
	if got := b.Bytes(); string(got) != "\x01" {
		t.Errorf("Bytes after Grow = %q, want %q", got, "\x01")
	}
}

func TestScanner(t *testing.T) {
	s := cursor.NewScanner("\x01\x02\x03apple")

	check(t, "Byte 1", s.Byte, 1)
	check(t, "ReadByte 2", s.ReadByte, 2)
	check(t, "Byte 3", s.Byte, 3)
	if got := s.Offset(); got != 3 {
		t.Errorf("Offset = %d, want 3", got)
	}
	check(t, "Literal", func() (string, error) { return cursor.Get[string](s, 5) }, "apple")
	if s.Len() != 0 {
		t.Errorf("Extra data at EOF (%d bytes): %q", s.Len(), s.Rest())
	}

	if b, err := s.ReadByte(); err != io.EOF {
		t.Errorf("ReadByte at EOF: got (%v, %v), want io.EOF", b, err)
	}
	if b, err := s.Byte(); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("Byte at EOF: got (%v, %v), want io.ErrUnexpectedEOF", b, err)
	}

	s.Reset()
	if got, err := cursor.Get[[]byte](s, 20); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("Get truncated: got (%q, %v), want io.ErrUnexpectedEOF", got, err)
	} else if s.Offset() != 0 {
		t.Errorf("Get truncated: offset moved to %d", s.Offset())
	}

	buf := make([]byte, 4)
	if n, err := s.Read(buf); err != nil || n != 4 {
		t.Errorf("Read: got (%d, %v), want (4, nil)", n, err)
	} else if diff := cmp.Diff(buf, []byte("\x01\x02\x03a")); diff != "" {
		t.Errorf("Read (-got, +want):\n%s", diff)
	}
	if n, err := io.ReadAll(s); err != nil || string(n) != "pple" {
		t.Errorf("ReadAll: got (%q, %v), want pple", n, err)
	}
}

func check[T any](t *testing.T, label string, f func() (T, error), want T) {
	t.Helper()

	got, err := f()
	if err != nil {
		t.Errorf("%s: unexpected error: %v", label, err)
	} else if diff := cmp.Diff(got, want); diff != "" {
		t.Errorf("%s result (-got, +want):\n%s", label, diff)
	}
}
