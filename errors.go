// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package asn1tlv

import (
	"errors"
	"fmt"
	"io"
)

var (
	// ErrBufferUnderrun is reported when a decoder needs more bytes than
	// remain in its input. It wraps [io.ErrUnexpectedEOF].
	ErrBufferUnderrun = fmt.Errorf("buffer underrun: %w", io.ErrUnexpectedEOF)

	// ErrLengthOverflow is reported when a long-form length or an extended
	// tag number does not fit in 64 bits.
	ErrLengthOverflow = errors.New("length exceeds 64 bits")

	// ErrIntegerRange is reported when an INTEGER content span does not fit
	// the requested Go integer type.
	ErrIntegerRange = errors.New("integer value out of range")
)

// DecodeError is the concrete type of errors reported by the decoders in this
// package. Op names the field being decoded when the error occurred.
type DecodeError struct {
	Op  string // e.g., "identifier", "length", "integer"
	Err error  // the underlying error
}

// Error satisfies the error interface.
func (d *DecodeError) Error() string { return fmt.Sprintf("decode %s: %v", d.Op, d.Err) }

// Unwrap reports the underlying error of d.
func (d *DecodeError) Unwrap() error { return d.Err }

func decodeError(op string, err error) *DecodeError {
	var de *DecodeError
	if errors.As(err, &de) {
		return de // already attributed
	}
	return &DecodeError{Op: op, Err: err}
}

// readByte reads a single byte from r. Both io.EOF and io.ErrUnexpectedEOF
// are reported as ErrBufferUnderrun; any other read error is passed through.
func readByte(r io.ByteReader) (byte, error) {
	b, err := r.ReadByte()
	if err != nil {
		if err == io.EOF || errors.Is(err, io.ErrUnexpectedEOF) {
			return 0, ErrBufferUnderrun
		}
		return 0, err
	}
	return b, nil
}
