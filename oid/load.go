// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package oid

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Load reads a dataset of entries from r and registers them, returning the
// new entries in the order they were defined.
//
// Each non-blank line of the dataset defines one entry, in the form
//
//	NAME@ID=[PARENT,]N1,N2,...
//
// where ID is the registry id in Go integer syntax (e.g., 0x2001), PARENT if
// present is the name of an entry already registered or defined on an
// earlier line, and N1, N2, ... are the arcs of the path relative to the
// parent. Lines beginning with "//" are ignored.
//
// Load is atomic: if any line is invalid or any entry cannot be registered,
// none of the entries are registered. Errors for specific lines have
// concrete type [*SyntaxError], and wrap the cause. Entries that conflict
// with the registry match [ErrConflict].
func Load(r io.Reader) ([]Entry, error) {
	specs, err := parseDataset(r)
	if err != nil {
		return nil, err
	}
	for _, s := range specs {
		if !s.hasID {
			return nil, &SyntaxError{Line: s.line, Text: s.text, Err: errors.New("missing @ID")}
		}
	}
	return global().apply(specsOf(specs), false)
}

// bootstrap loads the built-in entries from data into r. The id of each
// entry is determined by its name; every built-in must be defined exactly
// once.
func (r *registry) bootstrap(data string) error {
	specs, err := parseDataset(strings.NewReader(data))
	if err != nil {
		return err
	}
	for i, s := range specs {
		b, ok := BuiltInByName(s.name)
		if !ok {
			return &SyntaxError{Line: s.line, Text: s.text, Err: fmt.Errorf("unknown built-in %q", s.name)}
		} else if s.hasID {
			return &SyntaxError{Line: s.line, Text: s.text, Err: errors.New("built-in entries may not set an ID")}
		}
		specs[i].id = ID(b)
	}
	if _, err := r.apply(specsOf(specs), true); err != nil {
		return err
	}
	for _, b := range BuiltIns() {
		if _, ok := r.byID[ID(b)]; !ok {
			return fmt.Errorf("built-in %q is not defined", b)
		}
	}
	return nil
}

// A lineSpec is a spec parsed from a dataset line.
type lineSpec struct {
	spec
	hasID bool
}

func specsOf(ls []lineSpec) []spec {
	out := make([]spec, len(ls))
	for i, s := range ls {
		out[i] = s.spec
	}
	return out
}

// parseDataset parses the lines of a dataset from r. It does not check
// whether parent names are defined.
func parseDataset(r io.Reader) ([]lineSpec, error) {
	var out []lineSpec
	sc := bufio.NewScanner(r)
	var line int
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "//") {
			continue
		}
		s, err := parseLine(text)
		if err != nil {
			return nil, &SyntaxError{Line: line, Text: text, Err: err}
		}
		s.line, s.text = line, text
		out = append(out, s)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// parseLine parses a single dataset line of the form NAME[@ID]=[PARENT,]ARCS.
func parseLine(text string) (lineSpec, error) {
	lhs, rhs, ok := strings.Cut(text, "=")
	if !ok {
		return lineSpec{}, errors.New("missing '='")
	}
	var s lineSpec
	name, idText, hasID := strings.Cut(strings.TrimSpace(lhs), "@")
	s.name = strings.TrimSpace(name)
	if hasID {
		id, err := strconv.ParseUint(strings.TrimSpace(idText), 0, 32)
		if err != nil {
			return lineSpec{}, fmt.Errorf("invalid ID %q", idText)
		}
		s.id, s.hasID = ID(id), true
	}
	if err := checkName(s.name); err != nil {
		return lineSpec{}, err
	}

	fields := strings.Split(rhs, ",")
	for i, f := range fields {
		f = strings.TrimSpace(f)
		if i == 0 && f != "" && (f[0] < '0' || f[0] > '9') {
			s.parent = f
			continue
		}
		v, why := parseArc(f)
		if why != "" {
			return lineSpec{}, &FormatError{Input: rhs, Reason: fmt.Sprintf("field %d: %s", i+1, why)}
		}
		s.arcs = append(s.arcs, v)
	}
	if len(s.arcs) == 0 {
		return lineSpec{}, &FormatError{Input: rhs, Reason: "no arcs"}
	}
	return s, nil
}
