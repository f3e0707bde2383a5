// If you are AI: This file defines AMF0 type markers and the scalar value variants.
// Composite variants live in composite.go; every variant implements Value.

package amf0

import (
	"fmt"
	"math"
	"time"
)

// Kind is an AMF0 type marker as it appears on the wire.
type Kind byte

// AMF0 type markers
const (
	TypeNumber      Kind = 0x00
	TypeBoolean     Kind = 0x01
	TypeString      Kind = 0x02
	TypeObject      Kind = 0x03
	TypeNull        Kind = 0x05
	TypeUndefined   Kind = 0x06
	TypeReference   Kind = 0x07
	TypeECMAArray   Kind = 0x08
	TypeObjectEnd   Kind = 0x09
	TypeStrictArray Kind = 0x0A
	TypeDate        Kind = 0x0B
	TypeLongString  Kind = 0x0C
	TypeXMLDocument Kind = 0x0F
	TypeTypedObject Kind = 0x10
)

// MaxStringLength is the largest byte length a String can carry.
const MaxStringLength = math.MaxUint16

// String returns the marker name.
func (k Kind) String() string {
	switch k {
	case TypeNumber:
		return "number"
	case TypeBoolean:
		return "boolean"
	case TypeString:
		return "string"
	case TypeObject:
		return "object"
	case TypeNull:
		return "null"
	case TypeUndefined:
		return "undefined"
	case TypeReference:
		return "reference"
	case TypeECMAArray:
		return "associative-array"
	case TypeObjectEnd:
		return "object-end"
	case TypeStrictArray:
		return "array"
	case TypeDate:
		return "date"
	case TypeLongString:
		return "long-string"
	case TypeXMLDocument:
		return "xml"
	case TypeTypedObject:
		return "class"
	default:
		return fmt.Sprintf("0x%02x", byte(k))
	}
}

// Value is a decoded AMF0 value. The set of implementations is closed:
// Number, Boolean, String, *Object, Null, Undefined, *AssociativeArray,
// *Array and Date.
type Value interface {
	// Kind returns the wire marker of the value.
	Kind() Kind
	isValue()
}

// Number is an IEEE-754 double kept as its raw bit pattern,
// so NaN payloads survive a round trip byte for byte.
type Number struct {
	bits uint64
}

// NewNumber returns the Number holding f.
func NewNumber(f float64) Number {
	return Number{bits: math.Float64bits(f)}
}

// NumberFromBits returns the Number with the given bit pattern.
func NumberFromBits(bits uint64) Number {
	return Number{bits: bits}
}

// Float64 returns the numeric value.
func (n Number) Float64() float64 {
	return math.Float64frombits(n.bits)
}

// Bits returns the raw IEEE-754 bit pattern.
func (n Number) Bits() uint64 {
	return n.bits
}

// Kind returns TypeNumber.
func (Number) Kind() Kind { return TypeNumber }

// Boolean is an AMF0 boolean.
type Boolean bool

// Kind returns TypeBoolean.
func (Boolean) Kind() Kind { return TypeBoolean }

// String is an AMF0 string of at most MaxStringLength bytes.
// No encoding is assumed for its content.
type String string

// Kind returns TypeString.
func (String) Kind() Kind { return TypeString }

// Null is the AMF0 null value.
type Null struct{}

// Kind returns TypeNull.
func (Null) Kind() Kind { return TypeNull }

// Undefined is the AMF0 undefined value.
type Undefined struct{}

// Kind returns TypeUndefined.
func (Undefined) Kind() Kind { return TypeUndefined }

// Date is an AMF0 date: milliseconds since the Unix epoch plus a
// timezone offset in minutes.
type Date struct {
	Milliseconds uint64
	Timezone     int16
}

// NewDate returns the Date for t with a zero timezone offset.
func NewDate(t time.Time) Date {
	return Date{Milliseconds: uint64(t.UnixMilli())}
}

// Time returns the instant the date designates.
func (d Date) Time() time.Time {
	return time.UnixMilli(int64(d.Milliseconds))
}

// Kind returns TypeDate.
func (Date) Kind() Kind { return TypeDate }

func (Number) isValue()    {}
func (Boolean) isValue()   {}
func (String) isValue()    {}
func (Null) isValue()      {}
func (Undefined) isValue() {}
func (Date) isValue()      {}
