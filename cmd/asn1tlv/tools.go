// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"os"
	"strconv"
	"strings"

	"github.com/creachadair/asn1tlv"
	"github.com/creachadair/asn1tlv/catalog"
	"github.com/creachadair/asn1tlv/cursor"
	"github.com/creachadair/asn1tlv/oid"
	"github.com/creachadair/command"
	"github.com/creachadair/flax"
)

func headerCommand() *command.C {
	return &command.C{
		Name: "header",
		Help: "Encode and decode element headers.",
		Commands: []*command.C{
			{
				Name:  "encode",
				Usage: "<class> <method> <tag> <length>",
				Help: `Encode an element header and print it in hexadecimal.

The class is one of universal, application, context, or private.
The method is one of primitive or constructed.
The tag is a tag number, or the name of a universal type (e.g., sequence).
The length is a non-negative integer, or "indef" for the indefinite form.`,
				Run: func(env *command.Env) error {
					if len(env.Args) != 4 {
						return env.Usagef("Wrong number of arguments")
					}
					h, err := parseHeader(env.Args)
					if err != nil {
						return err
					}
					fmt.Printf("%s\t%v\n", hex.EncodeToString(h.Encode()), h)
					return nil
				},
			},
			{
				Name:  "decode",
				Usage: "<hex>",
				Help:  "Decode an element header from hexadecimal.",
				Run: func(env *command.Env) error {
					if len(env.Args) == 0 {
						return env.Usagef("Missing input")
					}
					data, err := parseHex(strings.Join(env.Args, ""))
					if err != nil {
						return err
					}
					s := cursor.NewScanner(data)
					h, err := asn1tlv.DecodeHeader(s)
					if err != nil {
						return err
					}
					fmt.Println(h)
					if s.Len() != 0 {
						fmt.Printf("%d octets follow the header\n", s.Len())
					}
					return nil
				},
			},
		},
	}
}

func parseHeader(args []string) (asn1tlv.Header, error) {
	class, err := parseClass(args[0])
	if err != nil {
		return asn1tlv.Header{}, err
	}
	method, err := parseMethod(args[1])
	if err != nil {
		return asn1tlv.Header{}, err
	}
	n, err := parseTag(args[2])
	if err != nil {
		return asn1tlv.Header{}, err
	}
	length := asn1tlv.Indefinite
	if args[3] != "indef" {
		v, err := strconv.ParseUint(args[3], 10, 64)
		if err != nil {
			return asn1tlv.Header{}, fmt.Errorf("invalid length: %w", err)
		}
		length = asn1tlv.Definite(v)
	}
	return asn1tlv.Header{
		Identifier: asn1tlv.NumberedIdentifier(class, method, n),
		Length:     length,
	}, nil
}

// parseTag parses s as a tag number or the name of a universal type.
// Names match without regard to case, and "-" or "_" may stand for spaces.
func parseTag(s string) (uint64, error) {
	if n, err := strconv.ParseUint(s, 10, 64); err == nil {
		return n, nil
	}
	norm := strings.NewReplacer("-", " ", "_", " ").Replace
	want := norm(s)
	for t := range asn1tlv.TagCustom {
		if strings.EqualFold(norm(t.String()), want) {
			return uint64(t), nil
		}
	}
	return 0, fmt.Errorf("unknown tag %q", s)
}

func intCommand() *command.C {
	return &command.C{
		Name: "int",
		Help: "Encode and decode the content octets of INTEGER values.",
		Commands: []*command.C{
			{
				Name:  "encode",
				Usage: "<value> ...",
				Help:  "Encode decimal integers as two's-complement content octets.",
				Run: func(env *command.Env) error {
					if len(env.Args) == 0 {
						return env.Usagef("Missing values")
					}
					for _, arg := range env.Args {
						v, ok := new(big.Int).SetString(arg, 10)
						if !ok {
							return fmt.Errorf("invalid integer %q", arg)
						}
						fmt.Printf("%s\t%s\n", arg, hex.EncodeToString(asn1tlv.EncodeInteger(v)))
					}
					return nil
				},
			},
			{
				Name:  "decode",
				Usage: "<hex> ...",
				Help:  "Decode two's-complement content octets as decimal integers.",
				Run: func(env *command.Env) error {
					if len(env.Args) == 0 {
						return env.Usagef("Missing values")
					}
					for _, arg := range env.Args {
						data, err := parseHex(arg)
						if err != nil {
							return fmt.Errorf("invalid input %q: %w", arg, err)
						}
						v, err := asn1tlv.DecodeInteger(cursor.NewScanner(data), len(data))
						if err != nil {
							return err
						}
						fmt.Printf("%s\t%v\n", arg, v)
					}
					return nil
				},
			},
		},
	}
}

var exportFlags struct {
	Output string `flag:"o,Write the catalog to this file instead of stdout"`
}

func oidCommand() *command.C {
	return &command.C{
		Name: "oid",
		Help: "Inspect the object identifier registry.",
		Commands: []*command.C{
			{
				Name:  "lookup",
				Usage: "<name|path|id> ...",
				Help: `Look up registered object identifiers.

Each argument is looked up as a dotted path if it begins with a digit, as an
id if it begins with "#" (e.g., #0x0005), and otherwise as a name. A path with
no registered entry is resolved to its longest registered prefix.`,
				Run: func(env *command.Env) error {
					if len(env.Args) == 0 {
						return env.Usagef("Missing arguments")
					}
					for _, arg := range env.Args {
						s, err := lookupOID(arg)
						if err != nil {
							return err
						}
						fmt.Println(s)
					}
					return nil
				},
			},
			{
				Name: "list",
				Help: "List the registered object identifiers in order of id.",
				Run: func(env *command.Env) error {
					for _, e := range oid.Entries() {
						fmt.Printf("%v\t%s\t%s\n", e.ID, e.Name, e.Dotted)
					}
					return nil
				},
			},
			{
				Name:     "export",
				Help:     "Write the registered object identifiers as a BER catalog.",
				SetFlags: command.Flags(flax.MustBind, &exportFlags),
				Run: func(env *command.Env) error {
					data, err := catalog.Encode(oid.Entries())
					if err != nil {
						return err
					}
					if exportFlags.Output == "" {
						_, err = os.Stdout.Write(data)
						return err
					}
					return os.WriteFile(exportFlags.Output, data, 0644)
				},
			},
		},
	}
}

func lookupOID(arg string) (string, error) {
	switch {
	case strings.HasPrefix(arg, "#"):
		v, err := strconv.ParseUint(arg[1:], 0, 32)
		if err != nil {
			return "", fmt.Errorf("invalid id %q: %w", arg, err)
		}
		if e, ok := oid.ByID(oid.ID(v)); ok {
			return e.String(), nil
		}
	case arg != "" && arg[0] >= '0' && arg[0] <= '9':
		p, err := oid.ParsePath(arg)
		if err != nil {
			return "", err
		}
		if e, ok := oid.ByPath(p); ok {
			return e.String(), nil
		}
		return describePath(p), nil
	default:
		if e, ok := oid.ByName(arg); ok {
			return e.String(), nil
		}
	}
	return "", fmt.Errorf("%q is not registered", arg)
}
