// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package oid

import (
	"errors"
	"fmt"
)

var (
	// ErrFormat is matched by errors reporting a malformed dotted string or
	// OBJECT IDENTIFIER content encoding.
	ErrFormat = errors.New("invalid object identifier")

	// ErrConflict is matched by errors reporting that a registration collides
	// with an existing entry, or uses a reserved id.
	ErrConflict = errors.New("object identifier conflict")

	// ErrReserved is matched by errors reporting a registration that uses an
	// id below [ReservedIDs].
	ErrReserved = errors.New("id is reserved for built-in entries")
)

// FormatError is the concrete type of errors reporting an invalid path.
type FormatError struct {
	Input  string // the offending input
	Reason string // a description of the problem
}

// Error satisfies the error interface.
func (f *FormatError) Error() string { return fmt.Sprintf("invalid OID %q: %s", f.Input, f.Reason) }

// Is reports whether target is [ErrFormat].
func (f *FormatError) Is(target error) bool { return target == ErrFormat }

// ConflictError is the concrete type of errors reporting a failed
// registration. Index names the index that rejected the entry: one of
// "path", "string", "name", or "id".
type ConflictError struct {
	Index string
	Entry Entry // the entry that could not be registered
	Err   error // if non-nil, the underlying cause
}

// Error satisfies the error interface.
func (c *ConflictError) Error() string {
	if c.Err != nil {
		return fmt.Sprintf("register %q: %s %v: %v", c.Entry.Name, c.Index, c.key(), c.Err)
	}
	return fmt.Sprintf("register %q: %s %v is already registered", c.Entry.Name, c.Index, c.key())
}

func (c *ConflictError) key() any {
	switch c.Index {
	case "path", "string":
		return c.Entry.Dotted
	case "name":
		return fmt.Sprintf("%q", c.Entry.Name)
	default:
		return fmt.Sprintf("%#x", c.Entry.ID)
	}
}

// Is reports whether target is [ErrConflict].
func (c *ConflictError) Is(target error) bool { return target == ErrConflict }

// Unwrap reports the underlying cause of c, if any.
func (c *ConflictError) Unwrap() error { return c.Err }

// SyntaxError is the concrete type of errors reporting a malformed line in a
// dataset read by [Load].
type SyntaxError struct {
	Line int    // 1-based
	Text string // the text of the line
	Err  error  // the underlying error
}

// Error satisfies the error interface.
func (s *SyntaxError) Error() string { return fmt.Sprintf("line %d: %v", s.Line, s.Err) }

// Unwrap reports the underlying error of s.
func (s *SyntaxError) Unwrap() error { return s.Err }

// BootstrapError is the value of the panic raised when the built-in dataset
// cannot be loaded. The registry cannot operate without it.
type BootstrapError struct {
	Err error
}

// Error satisfies the error interface.
func (b BootstrapError) Error() string { return fmt.Sprintf("oid: bootstrap failed: %v", b.Err) }

// Unwrap reports the underlying error of b.
func (b BootstrapError) Unwrap() error { return b.Err }
