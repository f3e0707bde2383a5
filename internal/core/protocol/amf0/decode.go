// If you are AI: This file implements AMF0 decoding for FLV script data.
// Decoding is transport-agnostic: any io.Reader works, short reads are end of input.

package amf0

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// DefaultMaxDepth bounds composite nesting so corrupt input cannot exhaust the stack.
const DefaultMaxDepth = 256

// Decoder reads AMF0 values from a transport.
// Lock expectations: single goroutine, like the underlying reader.
type Decoder struct {
	r        io.Reader
	maxDepth int
	scratch  [8]byte
}

// DecoderOption configures a Decoder.
type DecoderOption func(*Decoder)

// WithMaxDepth sets the deepest composite nesting accepted.
// Values below 1 keep the default.
func WithMaxDepth(depth int) DecoderOption {
	return func(d *Decoder) {
		if depth > 0 {
			d.maxDepth = depth
		}
	}
}

// NewDecoder creates a decoder reading from r.
func NewDecoder(r io.Reader, opts ...DecoderOption) *Decoder {
	d := &Decoder{r: r, maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Decode reads and decodes a single AMF0 value from the reader.
// Returns the decoded value and any error.
func Decode(r io.Reader) (Value, error) {
	if r == nil {
		return nil, ErrNilTransport
	}
	return NewDecoder(r).Decode()
}

// Decode reads the next value.
// On failure no partially built value is returned.
func (d *Decoder) Decode() (Value, error) {
	if d == nil || d.r == nil {
		return nil, ErrNilTransport
	}
	return d.decode(0)
}

// read fills the scratch buffer with exactly n (<= 8) bytes.
func (d *Decoder) read(n int) ([]byte, error) {
	buf := d.scratch[:n]
	if _, err := io.ReadFull(d.r, buf); err != nil {
		return nil, eof(err)
	}
	return buf, nil
}

// eof classifies a transport failure as end of input.
func eof(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return ErrEOF
	}
	return fmt.Errorf("%w: %w", ErrEOF, err)
}

// decode reads one marker and the value it introduces.
// depth is the number of composites enclosing the value.
func (d *Decoder) decode(depth int) (Value, error) {
	b, err := d.read(1)
	if err != nil {
		return nil, err
	}

	switch marker := Kind(b[0]); marker {
	case TypeNumber:
		return d.decodeNumber()
	case TypeBoolean:
		return d.decodeBoolean()
	case TypeString:
		s, err := d.readString()
		if err != nil {
			return nil, err
		}
		return String(s), nil
	case TypeObject:
		return d.decodeObject(depth + 1)
	case TypeNull:
		return Null{}, nil
	case TypeUndefined:
		return Undefined{}, nil
	case TypeECMAArray:
		return d.decodeECMAArray(depth + 1)
	case TypeStrictArray:
		return d.decodeArray(depth + 1)
	case TypeDate:
		return d.decodeDate()
	case TypeXMLDocument, TypeTypedObject:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, marker)
	case TypeObjectEnd:
		return nil, ErrEndMarker
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownType, marker)
	}
}

// decodeNumber decodes an AMF0 number (big-endian double).
func (d *Decoder) decodeNumber() (Value, error) {
	b, err := d.read(8)
	if err != nil {
		return nil, err
	}
	return NumberFromBits(binary.BigEndian.Uint64(b)), nil
}

// decodeBoolean decodes an AMF0 boolean; any nonzero byte is true.
func (d *Decoder) decodeBoolean() (Value, error) {
	b, err := d.read(1)
	if err != nil {
		return nil, err
	}
	return Boolean(b[0] != 0), nil
}

// readString reads a length-prefixed string body (no marker).
// A zero length performs no body read.
func (d *Decoder) readString() (string, error) {
	b, err := d.read(2)
	if err != nil {
		return "", err
	}
	length := binary.BigEndian.Uint16(b)
	if length == 0 {
		return "", nil
	}
	buf := make([]byte, length)
	if _, err := io.ReadFull(d.r, buf); err != nil {
		return "", eof(err)
	}
	return string(buf), nil
}

// decodeObject decodes an AMF0 object.
func (d *Decoder) decodeObject(depth int) (Value, error) {
	if depth > d.maxDepth {
		return nil, ErrTooDeep
	}
	obj := NewObject()
	if err := d.decodeProperties(&obj.Properties, depth, false); err != nil {
		return nil, err
	}
	return obj, nil
}

// decodeECMAArray decodes an AMF0 ECMA array.
// The 32-bit count is read and ignored; entries end like an object's.
func (d *Decoder) decodeECMAArray(depth int) (Value, error) {
	if depth > d.maxDepth {
		return nil, ErrTooDeep
	}
	if _, err := d.read(4); err != nil {
		return nil, err
	}
	arr := NewAssociativeArray()
	if err := d.decodeProperties(&arr.Properties, depth, true); err != nil {
		return nil, err
	}
	return arr, nil
}

// decodeProperties reads (name, value) pairs until the end marker.
// An unknown marker also ends the sequence. For ECMA arrays a zero-length
// name ends it too, checked after the pending value has been read; the
// pending name and value are discarded in every terminating case.
func (d *Decoder) decodeProperties(props *Properties, depth int, emptyNameEnds bool) error {
	for {
		name, err := d.readString()
		if err != nil {
			return err
		}

		v, err := d.decode(depth)
		if emptyNameEnds && name == "" {
			return nil
		}
		if errors.Is(err, ErrEndMarker) || errors.Is(err, ErrUnknownType) {
			return nil
		}
		if err != nil {
			return err
		}
		props.Add(name, v)
	}
}

// decodeArray decodes an AMF0 strict array.
// Any element failure aborts the whole array.
func (d *Decoder) decodeArray(depth int) (Value, error) {
	if depth > d.maxDepth {
		return nil, ErrTooDeep
	}
	b, err := d.read(4)
	if err != nil {
		return nil, err
	}
	count := binary.BigEndian.Uint32(b)

	arr := NewArray()
	for i := uint32(0); i < count; i++ {
		v, err := d.decode(depth)
		if err != nil {
			return nil, err
		}
		arr.Push(v)
	}
	return arr, nil
}

// decodeDate decodes an AMF0 date: u64 milliseconds then i16 timezone.
func (d *Decoder) decodeDate() (Value, error) {
	b, err := d.read(8)
	if err != nil {
		return nil, err
	}
	date := Date{Milliseconds: binary.BigEndian.Uint64(b)}
	if b, err = d.read(2); err != nil {
		return nil, err
	}
	date.Timezone = int16(binary.BigEndian.Uint16(b))
	return date, nil
}
