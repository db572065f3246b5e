// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/creachadair/asn1tlv"
	"github.com/creachadair/asn1tlv/cursor"
	"github.com/creachadair/asn1tlv/oid"
	"github.com/creachadair/asn1tlv/stream"
	"github.com/creachadair/command"
	"github.com/creachadair/flax"
	"github.com/creachadair/taskgroup"
)

var dumpFlags struct {
	OIDs    string `flag:"oids,Load additional OID definitions from this file"`
	Hex     bool   `flag:"hex,Read the input as hexadecimal text"`
	Verbose bool   `flag:"v,Log the header of each top-level element"`
	Width   int    `flag:"width,default=32,Show at most this many octets of opaque content"`
}

func dumpCommand() *command.C {
	return &command.C{
		Name:  "dump",
		Usage: "[file ...]",
		Help: `Print the structure of BER encoded elements.

Each input file is read as a sequence of concatenated elements, and each
element is printed with its descendants indented beneath it. If no files are
named, or a file is named "-", input is read from stdin. Multiple files are
read concurrently, but their output is printed in the order given.`,
		SetFlags: command.Flags(flax.MustBind, &dumpFlags),
		Run:      runDump,
	}
}

func runDump(env *command.Env) error {
	if dumpFlags.OIDs != "" {
		f, err := os.Open(dumpFlags.OIDs)
		if err != nil {
			return err
		}
		defer f.Close()
		if _, err := oid.Load(f); err != nil {
			return fmt.Errorf("load %q: %w", dumpFlags.OIDs, err)
		}
	}
	paths := env.Args
	if len(paths) == 0 {
		paths = []string{"-"}
	}

	outs := make([]bytes.Buffer, len(paths))
	g := taskgroup.New(nil)
	for i, path := range paths {
		if len(paths) > 1 {
			fmt.Fprintf(&outs[i], "==> %s <==\n", path)
		}
		g.Go(func() error { return dumpFile(&outs[i], path) })
	}
	err := g.Wait()
	for i := range outs {
		os.Stdout.Write(outs[i].Bytes())
	}
	return err
}

func dumpFile(w io.Writer, path string) error {
	var in io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}
	if dumpFlags.Hex {
		text, err := io.ReadAll(in)
		if err != nil {
			return err
		}
		data, err := parseHex(string(text))
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		in = bytes.NewReader(data)
	}

	r := stream.NewReader(in)
	if dumpFlags.Verbose {
		r.LogHeaders(func(h stream.HeaderInfo) { log.Printf("%s: %v", path, h) })
	}
	for e, err := range r.All() {
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		if err := stream.Walk(e, func(n stream.Node) error {
			fmt.Fprintln(w, describe(n, dumpFlags.Width))
			return nil
		}); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	return nil
}

// describe renders a one-line summary of n, indented by its depth.
func describe(n stream.Node, width int) string {
	var sb strings.Builder
	sb.WriteString(strings.Repeat("  ", n.Depth))
	sb.WriteString(label(n.Identifier))
	if n.Length.IsIndefinite() {
		sb.WriteString(" (indefinite)")
	}
	if n.IsConstructed() {
		fmt.Fprintf(&sb, " [%d]", len(n.Content))
		return sb.String()
	}
	if v := value(n.Element, width); v != "" {
		sb.WriteString(" ")
		sb.WriteString(v)
	}
	return sb.String()
}

func label(id asn1tlv.Identifier) string {
	if id.Class == asn1tlv.Universal && !id.IsCustom() {
		return id.Tag.String()
	}
	return fmt.Sprintf("[%v %d]", id.Class, id.Number)
}

// value renders the content of a primitive element according to its type.
// Content that cannot be interpreted is rendered as hexadecimal.
func value(e asn1tlv.Element, width int) string {
	if e.Class == asn1tlv.Universal && !e.IsCustom() {
		switch e.Tag {
		case asn1tlv.TagNull, asn1tlv.TagEOC:
			return ""
		case asn1tlv.TagBoolean:
			if len(e.Content) == 1 {
				return fmt.Sprint(e.Content[0] != 0)
			}
		case asn1tlv.TagInteger, asn1tlv.TagEnumerated:
			v, err := asn1tlv.DecodeInteger(cursor.NewScanner(e.Content), len(e.Content))
			if err == nil {
				return v.String()
			}
		case asn1tlv.TagOID:
			if p, err := oid.ParseContent(e.Content); err == nil {
				return describePath(p)
			}
		case asn1tlv.TagUTF8String, asn1tlv.TagPrintableString, asn1tlv.TagIA5String,
			asn1tlv.TagNumericString, asn1tlv.TagVisibleString, asn1tlv.TagT61String,
			asn1tlv.TagUTCTime, asn1tlv.TagGeneralizedTime:
			if utf8.Valid(e.Content) {
				return fmt.Sprintf("%q", e.Content)
			}
		}
	}
	if width > 0 && len(e.Content) > width {
		return hex.EncodeToString(e.Content[:width]) + "..."
	}
	return hex.EncodeToString(e.Content)
}

// describePath renders p with the name of its longest registered prefix.
func describePath(p oid.Path) string {
	e, rest, ok := oid.Resolve(p)
	if !ok {
		return p.String()
	} else if len(rest) == 0 {
		return fmt.Sprintf("%v (%s)", p, e.Name)
	}
	return fmt.Sprintf("%v (%s+%v)", p, e.Name, rest)
}
