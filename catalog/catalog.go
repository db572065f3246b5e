// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Package catalog encodes snapshots of the object identifier registry in BER,
// so that the entries registered by one process can be exported and loaded
// by another.
//
// # Usage
//
// To export the current contents of the registry:
//
//	data, err := catalog.Encode(oid.Entries())
//
// To recover the entries from an export without registering them:
//
//	entries, err := catalog.Decode(data)
//
// To register the entries of an export:
//
//	added, err := catalog.Import(data)
//
// # Format
//
// The encoding of a catalog is a SEQUENCE of entries in lexicographic order
// by name, where each entry is
//
//	SEQUENCE {
//	   name UTF8String,
//	   id   INTEGER,
//	   path OBJECT IDENTIFIER
//	}
//
// All lengths are definite.
package catalog

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/creachadair/asn1tlv"
	"github.com/creachadair/asn1tlv/cursor"
	"github.com/creachadair/asn1tlv/oid"
)

var (
	seqID  = asn1tlv.NewIdentifier(asn1tlv.Universal, asn1tlv.Constructed, asn1tlv.TagSequence)
	nameID = asn1tlv.NewIdentifier(asn1tlv.Universal, asn1tlv.Primitive, asn1tlv.TagUTF8String)
	intID  = asn1tlv.NewIdentifier(asn1tlv.Universal, asn1tlv.Primitive, asn1tlv.TagInteger)
	oidID  = asn1tlv.NewIdentifier(asn1tlv.Universal, asn1tlv.Primitive, asn1tlv.TagOID)
)

// Encode encodes entries in the catalog format. The input is not modified.
// It reports an error if the path of any entry cannot be encoded as an
// OBJECT IDENTIFIER.
func Encode(entries []oid.Entry) ([]byte, error) {
	sorted := slices.SortedFunc(slices.Values(entries), func(a, b oid.Entry) int {
		return cmp.Compare(a.Name, b.Name)
	})

	var body, rec, val cursor.Builder
	for _, e := range sorted {
		rec.Reset()

		rec.Append(element(nameID, []byte(e.Name)))

		val.Reset()
		val.Append(func(buf []byte) []byte { return asn1tlv.AppendInt(buf, int64(e.ID)) })
		rec.Append(element(intID, val.Bytes()))

		path, err := e.Path.AppendContent(nil)
		if err != nil {
			return nil, fmt.Errorf("entry %q: %w", e.Name, err)
		}
		rec.Append(element(oidID, path))

		body.Append(element(seqID, rec.Bytes()))
	}

	var out cursor.Builder
	out.Grow(body.Len() + 10)
	out.Append(element(seqID, body.Bytes()))
	return out.Bytes(), nil
}

// element returns a function that appends a definite-length element with the
// given identifier and content.
func element(id asn1tlv.Identifier, content []byte) func([]byte) []byte {
	return asn1tlv.Element{
		Header:  asn1tlv.Header{Identifier: id, Length: asn1tlv.Definite(uint64(len(content)))},
		Content: content,
	}.Append
}

// Decode decodes data in the catalog format. It does not modify the registry.
func Decode(data []byte) ([]oid.Entry, error) {
	s := cursor.NewScanner(data)
	top, err := asn1tlv.ReadElement(s)
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	} else if top.Identifier != seqID {
		return nil, fmt.Errorf("catalog: got %v, want SEQUENCE", top.Identifier)
	} else if s.Len() != 0 {
		return nil, fmt.Errorf("catalog: %d bytes of extra data at offset %d", s.Len(), s.Offset())
	}

	recs, err := top.Children()
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	out := make([]oid.Entry, 0, len(recs))
	for i, rec := range recs {
		e, err := decodeEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("catalog entry %d: %w", i+1, err)
		}
		out = append(out, e)
	}
	return out, nil
}

func decodeEntry(rec asn1tlv.Element) (oid.Entry, error) {
	if rec.Identifier != seqID {
		return oid.Entry{}, fmt.Errorf("got %v, want SEQUENCE", rec.Identifier)
	}
	fields, err := rec.Children()
	if err != nil {
		return oid.Entry{}, err
	} else if len(fields) != 3 {
		return oid.Entry{}, fmt.Errorf("got %d fields, want 3", len(fields))
	}
	for i, want := range []asn1tlv.Identifier{nameID, intID, oidID} {
		if got := fields[i].Identifier; got != want {
			return oid.Entry{}, fmt.Errorf("field %d: got %v, want %v", i+1, got, want)
		}
	}

	val := fields[1].Content
	id, err := asn1tlv.DecodeInt64(cursor.NewScanner(val), len(val))
	if err != nil {
		return oid.Entry{}, fmt.Errorf("id: %w", err)
	} else if id < 0 || id > math.MaxUint32 {
		return oid.Entry{}, fmt.Errorf("id %d: %w", id, asn1tlv.ErrIntegerRange)
	}
	path, err := oid.ParseContent(fields[2].Content)
	if err != nil {
		return oid.Entry{}, fmt.Errorf("path: %w", err)
	}
	return oid.Entry{
		Path:   path,
		Dotted: path.String(),
		Name:   string(fields[0].Content),
		ID:     oid.ID(id),
	}, nil
}

// Import decodes data in the catalog format and registers its entries,
// returning the entries that were added. Entries that are already registered
// with the same path, name, and id are skipped. Import is atomic: if any
// entry cannot be registered, none of them are.
func Import(data []byte) ([]oid.Entry, error) {
	entries, err := Decode(data)
	if err != nil {
		return nil, err
	}
	fresh := slices.DeleteFunc(entries, func(e oid.Entry) bool {
		old, ok := oid.ByID(e.ID)
		return ok && old.Name == e.Name && old.Path.Equal(e.Path)
	})
	return oid.RegisterAll(fresh)
}
