// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Program asn1tlv is a command-line utility for inspecting and constructing
// BER encodings.
package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/creachadair/asn1tlv"
	"github.com/creachadair/command"
	"github.com/creachadair/flax"
)

var packFlags struct {
	Hex bool `flag:"hex,Write the encoding as hexadecimal text"`
}

func main() {
	root := &command.C{
		Name: filepath.Base(os.Args[0]),
		Help: "Utilities for inspecting and constructing BER encodings.",
		Commands: []*command.C{
			dumpCommand(),
			{
				Name:     "pack",
				Usage:    "<pattern> <argument>...",
				Help:     packHelp,
				SetFlags: command.Flags(flax.MustBind, &packFlags),
				Run: func(env *command.Env) error {
					if len(env.Args) == 0 {
						return env.Usagef("Missing pattern argument")
					}
					enc, rest, err := formatData(env.Args[0], env.Args[1:], false)
					if err != nil {
						return err
					} else if len(rest) != 0 {
						return fmt.Errorf("extra arguments: %q", rest)
					}
					if packFlags.Hex {
						fmt.Println(hex.EncodeToString(enc))
					} else {
						os.Stdout.Write(enc)
					}
					return nil
				},
			},
			headerCommand(),
			intCommand(),
			oidCommand(),
			command.VersionCommand(),
			command.HelpCommand(nil),
		},
	}
	command.RunOrFail(root.NewEnv(nil).MergeFlags(true), os.Args[1:])
}

// parseHex decodes s as hexadecimal, ignoring whitespace and colons.
func parseHex(s string) ([]byte, error) {
	clean := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\r', '\n', ':':
			return -1
		}
		return r
	}, s)
	if clean == "" {
		return nil, errors.New("empty input")
	}
	return hex.DecodeString(clean)
}

func parseClass(s string) (asn1tlv.Class, error) {
	switch strings.ToLower(s) {
	case "u", "universal":
		return asn1tlv.Universal, nil
	case "a", "application":
		return asn1tlv.Application, nil
	case "c", "context", "contextual":
		return asn1tlv.Contextual, nil
	case "p", "private":
		return asn1tlv.Private, nil
	}
	return 0, fmt.Errorf("unknown class %q", s)
}

func parseMethod(s string) (asn1tlv.Method, error) {
	switch strings.ToLower(s) {
	case "p", "prim", "primitive":
		return asn1tlv.Primitive, nil
	case "c", "cons", "constructed":
		return asn1tlv.Constructed, nil
	}
	return 0, fmt.Errorf("unknown method %q", s)
}
