// If you are AI: This file provides the JSON view of value trees used by the HTTP API.
// Entry order is preserved; JSON has no NaN, undefined or date, so those map to null, null and RFC 3339.

package amf0

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"time"
)

// MarshalJSON renders the number, or null when it is not finite.
func (n Number) MarshalJSON() ([]byte, error) {
	f := n.Float64()
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, f, 'g', -1, 64), nil
}

// MarshalJSON renders null.
func (Null) MarshalJSON() ([]byte, error) {
	return []byte("null"), nil
}

// MarshalJSON renders null.
func (Undefined) MarshalJSON() ([]byte, error) {
	return []byte("null"), nil
}

// MarshalJSON renders the instant as an RFC 3339 string in UTC.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Time().UTC().Format(time.RFC3339Nano))
}

// MarshalJSON renders the entries as an object in insertion order.
func (o *Object) MarshalJSON() ([]byte, error) {
	return o.Properties.marshalJSON()
}

// MarshalJSON renders the entries as an object in insertion order.
func (a *AssociativeArray) MarshalJSON() ([]byte, error) {
	return a.Properties.marshalJSON()
}

// marshalJSON writes {"name":value,...}. Repeated names are all emitted.
func (p *Properties) marshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	for name, v := range p.All() {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		if err := writeJSON(&buf, v); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalJSON renders the elements as a JSON array.
func (a *Array) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	i := 0
	for v := range a.All() {
		if i > 0 {
			buf.WriteByte(',')
		}
		i++
		if err := writeJSON(&buf, v); err != nil {
			return nil, err
		}
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// writeJSON appends the JSON form of v; nil is null.
func writeJSON(buf *bytes.Buffer, v Value) error {
	if v == nil {
		buf.WriteString("null")
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	buf.Write(b)
	return nil
}
