// If you are AI: This file implements AMF0 encoding and exact encoded-size computation.
// Size mirrors Encode field by field; a format change must touch both.

package amf0

import (
	"bytes"
	"encoding/binary"
	"io"
)

// encoder writes to a transport and remembers the first failure.
type encoder struct {
	w       io.Writer
	n       int
	err     error
	scratch [8]byte
}

// write emits p unless a previous write failed.
func (e *encoder) write(p []byte) {
	if e.err != nil {
		return
	}
	n, err := e.w.Write(p)
	e.n += n
	if err == nil && n < len(p) {
		err = io.ErrShortWrite
	}
	e.err = err
}

// fail records err unless a failure is already recorded.
func (e *encoder) fail(err error) {
	if e.err == nil {
		e.err = err
	}
}

// byte writes a single byte.
func (e *encoder) byte(b byte) {
	e.scratch[0] = b
	e.write(e.scratch[:1])
}

// u16 writes a big-endian uint16.
func (e *encoder) u16(v uint16) {
	binary.BigEndian.PutUint16(e.scratch[:2], v)
	e.write(e.scratch[:2])
}

// u32 writes a big-endian uint32.
func (e *encoder) u32(v uint32) {
	binary.BigEndian.PutUint32(e.scratch[:4], v)
	e.write(e.scratch[:4])
}

// u64 writes a big-endian uint64.
func (e *encoder) u64(v uint64) {
	binary.BigEndian.PutUint64(e.scratch[:8], v)
	e.write(e.scratch[:8])
}

// string writes a length-prefixed string body (no marker).
func (e *encoder) string(s string) {
	if len(s) > MaxStringLength {
		e.fail(ErrStringTooLong)
		return
	}
	e.u16(uint16(len(s)))
	if len(s) > 0 {
		e.write([]byte(s))
	}
}

// properties writes named entries followed by the empty-name end marker.
func (e *encoder) properties(p *Properties) {
	for name, v := range p.All() {
		e.string(name)
		e.value(v)
	}
	e.u16(0)
	e.byte(byte(TypeObjectEnd))
}

// value writes the marker of v followed by its payload.
func (e *encoder) value(v Value) {
	if v == nil {
		e.fail(ErrNilValue)
		return
	}
	e.byte(byte(v.Kind()))

	switch v := v.(type) {
	case Number:
		e.u64(v.bits)
	case Boolean:
		if v {
			e.byte(1)
		} else {
			e.byte(0)
		}
	case String:
		e.string(string(v))
	case *Object:
		e.properties(&v.Properties)
	case *AssociativeArray:
		e.u32(uint32(v.Len()))
		e.properties(&v.Properties)
	case *Array:
		e.u32(uint32(v.Len()))
		for elem := range v.All() {
			e.value(elem)
		}
	case Date:
		e.u64(v.Milliseconds)
		e.u16(uint16(v.Timezone))
	case Null, Undefined:
	}
}

// Encode writes an AMF0 value to the writer.
// Returns the number of bytes written, which equals Size(v) on success.
func Encode(w io.Writer, v Value) (int, error) {
	if w == nil {
		return 0, ErrNilTransport
	}
	e := &encoder{w: w}
	e.value(v)
	return e.n, e.err
}

// Marshal returns the encoding of v.
func Marshal(v Value) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(Size(v))
	if _, err := Encode(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes a single value from b. Trailing bytes are ignored.
func Unmarshal(b []byte) (Value, error) {
	return Decode(NewBuffer(b))
}

// Size returns the exact number of bytes Encode writes for v.
// A nil value has size 0.
func Size(v Value) int {
	if v == nil {
		return 0
	}
	s := 1
	switch v := v.(type) {
	case Number:
		s += 8
	case Boolean:
		s++
	case String:
		s += 2 + len(v)
	case *Object:
		s += propertiesSize(&v.Properties)
	case *AssociativeArray:
		s += 4 + propertiesSize(&v.Properties)
	case *Array:
		s += 4
		for elem := range v.All() {
			s += Size(elem)
		}
	case Date:
		s += 8 + 2
	case Null, Undefined:
	}
	return s
}

// propertiesSize sizes named entries plus the 3-byte end marker.
func propertiesSize(p *Properties) int {
	s := 0
	for name, v := range p.All() {
		s += 2 + len(name) + Size(v)
	}
	return s + 2 + 1
}
