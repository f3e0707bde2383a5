// If you are AI: This file defines AMF0 error classification.
// Codes are finer grained than the container-level codes in package flv.

package amf0

import (
	"errors"
	"fmt"
)

// Code classifies a codec failure.
type Code uint8

const (
	// CodeOK means no failure.
	CodeOK Code = iota
	// CodeEOF means the input ended mid-value.
	CodeEOF
	// CodeUnknownType means an unrecognised type marker was read.
	CodeUnknownType
	// CodeEndTag means an end-of-composite marker was read where a value was expected.
	CodeEndTag
	// CodeNullPointer means a nil transport or value was supplied.
	CodeNullPointer
	// CodeMemory means a resource limit was hit.
	CodeMemory
	// CodeUnsupportedType means a known but unsupported type (XML, class) was read,
	// or a value cannot be represented on the wire.
	CodeUnsupportedType
)

var (
	ErrEOF             = errors.New("amf0: unexpected end of input")
	ErrUnknownType     = errors.New("amf0: unknown type marker")
	ErrEndMarker       = errors.New("amf0: end of composite marker")
	ErrNilTransport    = errors.New("amf0: nil transport")
	ErrNilValue        = errors.New("amf0: nil value")
	ErrTooDeep         = errors.New("amf0: nesting too deep")
	ErrUnsupportedType = errors.New("amf0: unsupported type")
	ErrStringTooLong   = errors.New("amf0: string longer than 65535 bytes")
	ErrBufferFull      = errors.New("amf0: buffer full")
)

// String returns a short name for the code.
func (c Code) String() string {
	switch c {
	case CodeOK:
		return "ok"
	case CodeEOF:
		return "eof"
	case CodeUnknownType:
		return "unknown-type"
	case CodeEndTag:
		return "end-tag"
	case CodeNullPointer:
		return "null-pointer"
	case CodeMemory:
		return "memory"
	case CodeUnsupportedType:
		return "unsupported-type"
	default:
		return fmt.Sprintf("code(%d)", uint8(c))
	}
}

// CodeOf maps err to its classification. Errors that did not come from
// this package are reported as CodeEOF, since every transport failure is
// treated as end of input.
func CodeOf(err error) Code {
	switch {
	case err == nil:
		return CodeOK
	case errors.Is(err, ErrEOF):
		return CodeEOF
	case errors.Is(err, ErrUnknownType):
		return CodeUnknownType
	case errors.Is(err, ErrEndMarker):
		return CodeEndTag
	case errors.Is(err, ErrNilTransport), errors.Is(err, ErrNilValue):
		return CodeNullPointer
	case errors.Is(err, ErrTooDeep), errors.Is(err, ErrBufferFull):
		return CodeMemory
	case errors.Is(err, ErrUnsupportedType), errors.Is(err, ErrStringTooLong):
		return CodeUnsupportedType
	default:
		return CodeEOF
	}
}
