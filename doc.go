// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Package asn1tlv implements encoding and decoding of the headers of ASN.1
// BER/DER Tag-Length-Value encodings, and of two's-complement INTEGER content.
//
// Every encoding begins with a [Header], comprising an [Identifier] (class,
// method, and tag) and a [Length]. The content octets follow the header.
// This package reads and writes headers, and leaves the interpretation of
// content to the caller, except for INTEGER values (see [DecodeInteger]).
//
// # Decoding
//
// Decoders consume octets from an [io.ByteReader], which serves as a cursor
// over the input. The [cursor.Scanner] type is a convenient cursor for an
// in-memory buffer; a *bufio.Reader works as well:
//
//	s := cursor.NewScanner(data)
//	h, err := asn1tlv.DecodeHeader(s)
//	if err != nil {
//	   log.Fatalf("Invalid header: %v", err)
//	}
//
// On success, the cursor is positioned at the first content octet. If the
// length is definite, h.Length.Value() reports how many content octets
// follow. Otherwise the content is terminated by an end-of-contents marker,
// and [ReadElement] can be used to find it.
//
// A decoder that runs out of input reports an error wrapping
// [ErrBufferUnderrun]. Errors reported by decoders have concrete type
// [*DecodeError].
//
// # Encoding
//
// Encoders follow the append convention: each value has an Append method
// that adds its encoding to the end of a slice and returns the result, and an
// Encode method that returns a fresh slice:
//
//	h := asn1tlv.Header{
//	   Identifier: asn1tlv.NewIdentifier(asn1tlv.Universal, asn1tlv.Constructed, asn1tlv.TagSequence),
//	   Length:     asn1tlv.Definite(7000),
//	}
//	buf := h.Append(nil) // 30 82 1b 58
//
// # Tag numbers
//
// A tag field of 0x1F in the leading identifier octet ([TagCustom]) means
// the tag number is carried in extension octets. This package uses an
// additive extension: each octet contributes its low 7 bits to a sum, and the
// extension ends at the first octet with the high bit clear. This is not the
// positional base-128 encoding of X.690, and encodings of tag numbers above
// 30 produced here are not interchangeable with other ASN.1 implementations.
// Lengths and INTEGER content follow X.690.
//
// # Integers
//
// [AppendInt] and [AppendInteger] write the minimal two's-complement
// encoding of a value; [DecodeInt64] and [DecodeInteger] read a content span
// whose size is known from the header.
package asn1tlv
