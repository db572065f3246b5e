// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package asn1tlv

// Bit patterns of the identifier and length octets.
//
//	 8 7 | 6 | 5 4 3 2 1
//	class|P/C|   tag
const (
	maskClass  = 0b1100_0000 // identifier: class, bits 8-7
	maskMethod = 0b0010_0000 // identifier: primitive/constructed, bit 6
	maskTag    = 0b0001_1111 // identifier: tag, bits 5-1

	shiftClass  = 6
	shiftMethod = 5

	// Length parsing. The modifier bit selects the long form of a content
	// length, and marks continuation of a tag-length extension.
	maskLenModifier = 0b1000_0000
	maskLenContent  = 0b0111_1111

	// The largest value carried by one octet of a tag-length extension.
	// Writers use fillerTagLength for every octet but the last.
	maxTagLengthWrite = 0b0111_1110
	fillerTagLength   = 0xfe

	// The identifier encoder carries 127 per octet, using 0xFF as filler.
	fillerIdentifier = 0xff

	// lengthIndefinite is the sole encoding of an indefinite length.
	lengthIndefinite = 0x80

	// maxShortLength is the largest length encoded in short form.
	maxShortLength = 127
)
