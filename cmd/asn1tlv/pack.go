// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"

	"github.com/creachadair/asn1tlv"
	"github.com/creachadair/asn1tlv/cursor"
	"github.com/creachadair/asn1tlv/oid"
)

const packHelp = `Pack arguments into a sequence of BER elements.

The pattern specifies the sequence of elements to concatenate. Whitespace in
the pattern is ignored; otherwise the pattern specifies how the corresponding
argument is encoded:

  i  : an INTEGER (decimal, arbitrary precision)
  %  : a BOOLEAN (true or false)
  o  : an OBJECT IDENTIFIER (dotted decimal, or a registered name)
  s  : a UTF8String
  a  : an IA5String
  q  : an OCTET STRING from a quoted literal string (Go style)
  x  : an OCTET STRING from hexadecimal digits

The following words do not consume an argument:

  n  : a NULL

In addition, a "(" begins a subpattern, which goes until a matching ")".
Each subpattern is encoded according to its contents, and wrapped in a
SEQUENCE. Similarly, "{" ... "}" wraps its contents in a SET, and "[" ... "]"
wraps its contents in a constructed context-specific tag whose number is
taken from the next argument.

By default constructed elements have definite lengths, but the following
symbols modify the length encoding for future subpatterns:

  *  : use the indefinite length form, with an end-of-contents marker
  =  : use the definite length form (this is the default)

Subpatterns may be nested.
`

func primitive(tag asn1tlv.UniversalTag, content []byte) asn1tlv.Element {
	return asn1tlv.Element{
		Header: asn1tlv.Header{
			Identifier: asn1tlv.NewIdentifier(asn1tlv.Universal, asn1tlv.Primitive, tag),
			Length:     asn1tlv.Definite(uint64(len(content))),
		},
		Content: content,
	}
}

func constructed(id asn1tlv.Identifier, content []byte, indef bool) asn1tlv.Element {
	length := asn1tlv.Definite(uint64(len(content)))
	if indef {
		length = asn1tlv.Indefinite
	}
	return asn1tlv.Element{
		Header:  asn1tlv.Header{Identifier: id, Length: length},
		Content: content,
	}
}

func formatData(pat string, args []string, indef bool) ([]byte, []string, error) {
	var enc cursor.Builder
	for i := 0; i < len(pat); i++ {
		c := pat[i]
		switch c {
		case 'i', '%', 'o', 's', 'a', 'q', 'x':
			// OK, these need an argument (see below)
		case ' ', '\t', '\n':
			// Skip whitespace.
			continue
		case 'n':
			enc.Append(primitive(asn1tlv.TagNull, nil).Append)
			continue
		case '*':
			indef = true
			continue
		case '=':
			indef = false
			continue
		case '(', '{', '[':
			var id asn1tlv.Identifier
			var r rune
			switch c {
			case '(':
				id, r = asn1tlv.NewIdentifier(asn1tlv.Universal, asn1tlv.Constructed, asn1tlv.TagSequence), ')'
			case '{':
				id, r = asn1tlv.NewIdentifier(asn1tlv.Universal, asn1tlv.Constructed, asn1tlv.TagSet), '}'
			default:
				if len(args) == 0 {
					return nil, nil, errors.New("missing tag number for [")
				}
				n, err := strconv.ParseUint(args[0], 10, 64)
				if err != nil {
					return nil, nil, fmt.Errorf("invalid tag number: %w", err)
				}
				id, r = asn1tlv.NumberedIdentifier(asn1tlv.Contextual, asn1tlv.Constructed, n), ']'
				args = args[1:]
			}
			sub, ok := cutParen(pat[i+1:], rune(c), r)
			if !ok {
				return nil, nil, fmt.Errorf("missing close %c", r)
			}
			sd, sa, err := formatData(sub, args, indef)
			if err != nil {
				return nil, nil, fmt.Errorf("invalid subpattern: %w", err)
			}
			enc.Append(constructed(id, sd, indef).Append)
			args = sa
			i += len(sub) + 1
			continue
		default:
			return nil, nil, fmt.Errorf("invalid pattern word %c", c)
		}

		if len(args) == 0 {
			return nil, nil, fmt.Errorf("missing argument for %c", c)
		}
		switch c {
		case 'i':
			v, ok := new(big.Int).SetString(args[0], 10)
			if !ok {
				return nil, nil, fmt.Errorf("invalid integer %q", args[0])
			}
			enc.Append(primitive(asn1tlv.TagInteger, asn1tlv.EncodeInteger(v)).Append)
		case '%':
			v, err := strconv.ParseBool(args[0])
			if err != nil {
				return nil, nil, fmt.Errorf("invalid bool: %w", err)
			}
			var b cursor.Builder
			b.Bool(v)
			enc.Append(primitive(asn1tlv.TagBoolean, b.Bytes()).Append)
		case 'o':
			path, err := lookupPath(args[0])
			if err != nil {
				return nil, nil, err
			}
			content, err := path.AppendContent(nil)
			if err != nil {
				return nil, nil, err
			}
			enc.Append(primitive(asn1tlv.TagOID, content).Append)
		case 's':
			enc.Append(primitive(asn1tlv.TagUTF8String, []byte(args[0])).Append)
		case 'a':
			enc.Append(primitive(asn1tlv.TagIA5String, []byte(args[0])).Append)
		case 'q':
			dec, err := strconv.Unquote(`"` + args[0] + `"`)
			if err != nil {
				return nil, nil, fmt.Errorf("invalid string: %w", err)
			}
			enc.Append(primitive(asn1tlv.TagOctetString, []byte(dec)).Append)
		case 'x':
			dec, err := parseHex(args[0])
			if err != nil {
				return nil, nil, fmt.Errorf("invalid hex: %w", err)
			}
			enc.Append(primitive(asn1tlv.TagOctetString, dec).Append)
		default:
			panic("invalid code: " + string(c))
		}
		args = args[1:]
	}
	return enc.Bytes(), args, nil
}

// lookupPath parses s as a dotted path, or looks it up as a registered name.
func lookupPath(s string) (oid.Path, error) {
	if s != "" && s[0] >= '0' && s[0] <= '9' {
		return oid.ParsePath(s)
	}
	e, ok := oid.ByName(s)
	if !ok {
		return nil, fmt.Errorf("unknown OID name %q", s)
	}
	return e.Path, nil
}

func cutParen(s string, l, r rune) (string, bool) {
	d := 1
	for i, c := range s {
		if c == l {
			d++
		} else if c == r {
			d--
			if d == 0 {
				return s[:i], true
			}
		}
	}
	return s, false
}
