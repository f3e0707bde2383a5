// If you are AI: This file defines container-level errors and their closed code set.
// Value-level failures are wrapped so amf0.CodeOf still sees them.

package flv

import (
	"errors"
	"fmt"

	"flvkit/internal/core/protocol/amf0"
)

// Code is a container-level result code. The numeric values are stable
// and used as process exit codes.
type Code int

// Result codes
const (
	CodeOK Code = iota
	CodeOpen
	CodeOpenRead
	CodeOpenWrite
	CodeNoFLV
	CodeEOF
	CodeMemory
	CodeEmptyTag
	CodeInvalidMetadataName
	CodeInvalidMetadata
	CodeState
)

var (
	ErrOpen                = errors.New("flv: open failed")
	ErrOpenRead            = errors.New("flv: cannot read signature")
	ErrOpenWrite           = errors.New("flv: cannot write output")
	ErrNotFLV              = errors.New("flv: not an FLV file")
	ErrEOF                 = errors.New("flv: unexpected end of stream")
	ErrMemory              = errors.New("flv: resource limit exceeded")
	ErrEmptyTag            = errors.New("flv: empty tag")
	ErrInvalidMetadataName = errors.New("flv: invalid metadata name")
	ErrInvalidMetadata     = errors.New("flv: invalid metadata")
	ErrState               = errors.New("flv: call not valid in current stream state")
)

// String returns a short name for the code.
func (c Code) String() string {
	switch c {
	case CodeOK:
		return "ok"
	case CodeOpen:
		return "open"
	case CodeOpenRead:
		return "open-read"
	case CodeOpenWrite:
		return "open-write"
	case CodeNoFLV:
		return "no-flv"
	case CodeEOF:
		return "eof"
	case CodeMemory:
		return "memory"
	case CodeEmptyTag:
		return "empty-tag"
	case CodeInvalidMetadataName:
		return "invalid-metadata-name"
	case CodeInvalidMetadata:
		return "invalid-metadata"
	case CodeState:
		return "state"
	default:
		return fmt.Sprintf("code(%d)", int(c))
	}
}

// CodeOf maps err to a container-level code.
// Unclassified errors, transport failures included, map to CodeEOF.
func CodeOf(err error) Code {
	switch {
	case err == nil:
		return CodeOK
	case errors.Is(err, ErrOpen):
		return CodeOpen
	case errors.Is(err, ErrOpenRead):
		return CodeOpenRead
	case errors.Is(err, ErrOpenWrite):
		return CodeOpenWrite
	case errors.Is(err, ErrNotFLV):
		return CodeNoFLV
	case errors.Is(err, ErrEmptyTag):
		return CodeEmptyTag
	case errors.Is(err, ErrInvalidMetadataName):
		return CodeInvalidMetadataName
	case errors.Is(err, ErrInvalidMetadata):
		return CodeInvalidMetadata
	case errors.Is(err, ErrState):
		return CodeState
	case errors.Is(err, ErrMemory), amf0.CodeOf(err) == amf0.CodeMemory:
		return CodeMemory
	default:
		return CodeEOF
	}
}
