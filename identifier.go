// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package asn1tlv

import (
	"fmt"
	"io"
)

// Class is the class of an identifier, encoded in bits 8-7 of the leading
// identifier octet.
type Class byte

const (
	Universal   Class = 0x00
	Application Class = 0x01
	Contextual  Class = 0x02
	Private     Class = 0x03
)

// ClassOf returns the class encoded by the leading identifier octet b.
func ClassOf(b byte) Class { return Class((b & maskClass) >> shiftClass) }

func (c Class) String() string {
	switch c & 0b11 {
	case Universal:
		return "UNIVERSAL"
	case Application:
		return "APPLICATION"
	case Contextual:
		return "CONTEXTUAL"
	default:
		return "PRIVATE"
	}
}

// Method reports whether the content of an encoding is primitive or
// constructed from other encodings. It is bit 6 of the leading octet.
type Method byte

const (
	Primitive   Method = 0x00
	Constructed Method = 0x01
)

// MethodOf returns the method encoded by the leading identifier octet b.
func MethodOf(b byte) Method { return Method((b & maskMethod) >> shiftMethod) }

func (m Method) String() string {
	if m&1 == Constructed {
		return "CONSTRUCTED"
	}
	return "PRIMITIVE"
}

// UniversalTag is the 5-bit tag field of the leading identifier octet. The
// values 0x00 to 0x1E name the universal types; the value [TagCustom]
// indicates that the tag number follows in one or more extension octets.
type UniversalTag byte

const (
	TagEOC              UniversalTag = 0x00
	TagBoolean          UniversalTag = 0x01
	TagInteger          UniversalTag = 0x02
	TagBitString        UniversalTag = 0x03
	TagOctetString      UniversalTag = 0x04
	TagNull             UniversalTag = 0x05
	TagOID              UniversalTag = 0x06
	TagObjectDescriptor UniversalTag = 0x07
	TagExternal         UniversalTag = 0x08
	TagReal             UniversalTag = 0x09
	TagEnumerated       UniversalTag = 0x0A
	TagEmbeddedPDV      UniversalTag = 0x0B
	TagUTF8String       UniversalTag = 0x0C
	TagRelativeOID      UniversalTag = 0x0D
	TagTime             UniversalTag = 0x0E
	TagReserved         UniversalTag = 0x0F // reserved for future use
	TagSequence         UniversalTag = 0x10
	TagSet              UniversalTag = 0x11
	TagNumericString    UniversalTag = 0x12
	TagPrintableString  UniversalTag = 0x13
	TagT61String        UniversalTag = 0x14
	TagVideotexString   UniversalTag = 0x15
	TagIA5String        UniversalTag = 0x16
	TagUTCTime          UniversalTag = 0x17
	TagGeneralizedTime  UniversalTag = 0x18
	TagGraphicString    UniversalTag = 0x19
	TagVisibleString    UniversalTag = 0x1A // ISO646String
	TagGeneralString    UniversalTag = 0x1B
	TagUniversalString  UniversalTag = 0x1C
	TagCharacterString  UniversalTag = 0x1D
	TagBMPString        UniversalTag = 0x1E
	TagCustom           UniversalTag = 0x1F
)

// TagOf returns the tag field of the leading identifier octet b.
func TagOf(b byte) UniversalTag { return UniversalTag(b & maskTag) }

var tagNames = [...]string{
	"EOC", "BOOLEAN", "INTEGER", "BIT STRING", "OCTET STRING", "NULL",
	"OBJECT IDENTIFIER", "ObjectDescriptor", "EXTERNAL", "REAL", "ENUMERATED",
	"EMBEDDED PDV", "UTF8String", "RELATIVE-OID", "TIME", "RESERVED",
	"SEQUENCE", "SET", "NumericString", "PrintableString", "T61String",
	"VideotexString", "IA5String", "UTCTime", "GeneralizedTime",
	"GraphicString", "VisibleString", "GeneralString", "UniversalString",
	"CHARACTER STRING", "BMPString", "CUSTOM",
}

func (t UniversalTag) String() string { return tagNames[t&maskTag] }

// An Identifier is the decoded form of the identifier octets of an encoding.
//
// Number is the tag number. Unless Tag == TagCustom it is equal to the value
// of Tag, and it is ignored by the encoder. When Tag == TagCustom, Number is
// carried in the extension octets and may exceed 30.
type Identifier struct {
	Class  Class
	Method Method
	Tag    UniversalTag
	Number uint64
}

// NewIdentifier returns an identifier for the specified universal tag.
func NewIdentifier(class Class, method Method, tag UniversalTag) Identifier {
	return Identifier{Class: class, Method: method, Tag: tag, Number: uint64(tag & maskTag)}
}

// CustomIdentifier returns an identifier whose tag number n is carried in the
// extension octets following the leading octet.
func CustomIdentifier(class Class, method Method, n uint64) Identifier {
	return Identifier{Class: class, Method: method, Tag: TagCustom, Number: n}
}

// NumberedIdentifier returns an identifier with tag number n. If n is less
// than TagCustom, the number is carried in the leading octet; otherwise it
// is carried in extension octets as by [CustomIdentifier].
func NumberedIdentifier(class Class, method Method, n uint64) Identifier {
	if n < uint64(TagCustom) {
		return NewIdentifier(class, method, UniversalTag(n))
	}
	return CustomIdentifier(class, method, n)
}

// IsCustom reports whether id carries its tag number in extension octets.
func (id Identifier) IsCustom() bool { return id.Tag&maskTag == TagCustom }

// IsConstructed reports whether id has the constructed method.
func (id Identifier) IsConstructed() bool { return id.Method&1 == Constructed }

// leadingByte returns the first identifier octet of id.
func (id Identifier) leadingByte() byte {
	return byte(id.Class&0b11)<<shiftClass | byte(id.Method&1)<<shiftMethod | byte(id.Tag&maskTag)
}

// Append appends the encoding of id to buf, and returns the updated slice.
//
// If id is custom, the tag number follows the leading octet as a run of 0xFF
// octets, each contributing 127, ended by an octet holding the remainder.
// This is an additive encoding, not the positional base-128 form of X.690.
func (id Identifier) Append(buf []byte) []byte {
	buf = append(buf, id.leadingByte())
	if !id.IsCustom() {
		return buf
	}
	rem := id.Number
	for rem > maskLenContent {
		buf = append(buf, fillerIdentifier)
		rem -= maskLenContent
	}
	return append(buf, byte(rem))
}

// Encode returns the encoding of id.
func (id Identifier) Encode() []byte { return id.Append(nil) }

// DecodeIdentifier consumes the identifier octets at the head of r.
// If the tag field of the leading octet is TagCustom, it also consumes the
// extension octets, summing the low 7 bits of each until an octet with the
// high bit clear.
func DecodeIdentifier(r io.ByteReader) (Identifier, error) {
	lead, err := readByte(r)
	if err != nil {
		return Identifier{}, decodeError("identifier", err)
	}
	id := Identifier{
		Class:  ClassOf(lead),
		Method: MethodOf(lead),
		Tag:    TagOf(lead),
		Number: uint64(TagOf(lead)),
	}
	if !id.IsCustom() {
		return id, nil
	}
	id.Number, err = readTagLength(r)
	if err != nil {
		return Identifier{}, decodeError("tag number", err)
	}
	return id, nil
}

// String returns a human-friendly rendering of the identifier.
func (id Identifier) String() string {
	if id.IsCustom() {
		return fmt.Sprintf("Identifier(%v, %v, %v %d)", id.Class, id.Method, id.Tag, id.Number)
	}
	return fmt.Sprintf("Identifier(%v, %v, %v)", id.Class, id.Method, id.Tag)
}
