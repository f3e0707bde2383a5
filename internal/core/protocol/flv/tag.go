// If you are AI: This file implements FLV tag headers and whole-tag encoding.
// Timestamps are 24 bits plus an extension byte holding the high 8 bits.

package flv

import (
	"encoding/binary"
)

// TagHeader is the 11-byte header that precedes every tag body.
type TagHeader struct {
	Type         TagType
	BodyLength   uint32
	Timestamp    uint32
	TimestampExt uint8
	StreamID     uint32
}

// Time returns the full 32-bit timestamp in milliseconds.
func (h TagHeader) Time() uint32 {
	return h.Timestamp&0xFFFFFF | uint32(h.TimestampExt)<<24
}

// SetTime splits ms into the 24-bit timestamp and its extension byte.
func (h *TagHeader) SetTime(ms uint32) {
	h.Timestamp = ms & 0xFFFFFF
	h.TimestampExt = uint8(ms >> 24)
}

// Size returns header plus body length, the value of the trailing size field.
func (h TagHeader) Size() uint32 {
	return TagHeaderSize + h.BodyLength
}

// Bytes returns the 11-byte encoding of the header.
func (h TagHeader) Bytes() []byte {
	b := make([]byte, TagHeaderSize)
	h.put(b)
	return b
}

// put encodes the header into b[:TagHeaderSize].
func (h TagHeader) put(b []byte) {
	b[0] = byte(h.Type)
	putUint24(b[1:], h.BodyLength)
	putUint24(b[4:], h.Timestamp)
	b[7] = h.TimestampExt
	putUint24(b[8:], h.StreamID)
}

// parseTagHeader decodes an 11-byte tag header.
func parseTagHeader(b []byte) TagHeader {
	return TagHeader{
		Type:         TagType(b[0]),
		BodyLength:   uint24(b[1:]),
		Timestamp:    uint24(b[4:]),
		TimestampExt: b[7],
		StreamID:     uint24(b[8:]),
	}
}

// Tag represents an FLV tag (audio, video, or script).
type Tag struct {
	Type      TagType
	Timestamp uint32
	Data      []byte
}

// NewTag creates a new FLV tag from type, timestamp, and data.
func NewTag(tagType TagType, timestamp uint32, data []byte) *Tag {
	return &Tag{
		Type:      tagType,
		Timestamp: timestamp,
		Data:      data,
	}
}

// Header returns the tag header describing t, with a zero stream id.
func (t *Tag) Header() TagHeader {
	return TagHeader{
		Type:         t.Type,
		BodyLength:   uint32(len(t.Data)),
		Timestamp:    t.Timestamp & 0xFFFFFF,
		TimestampExt: uint8(t.Timestamp >> 24),
	}
}

// Bytes encodes the tag as FLV tag bytes.
// Format: header (11) + data (N) + previous tag size (4).
func (t *Tag) Bytes() []byte {
	result := make([]byte, TagHeaderSize+len(t.Data)+PrevTagSizeSize)
	t.Header().put(result)
	copy(result[TagHeaderSize:], t.Data)
	PutPrevTagSize(result[TagHeaderSize+len(t.Data):], uint32(TagHeaderSize+len(t.Data)))
	return result
}

// PutPrevTagSize writes a trailing size field into b[:4].
func PutPrevTagSize(b []byte, size uint32) {
	binary.BigEndian.PutUint32(b, size)
}

// uint24 reads a big-endian 24-bit integer.
func uint24(b []byte) uint32 {
	return uint32(b[0])<<16 | uint32(b[1])<<8 | uint32(b[2])
}

// putUint24 writes the low 24 bits of v big-endian.
func putUint24(b []byte, v uint32) {
	b[0] = byte(v >> 16)
	b[1] = byte(v >> 8)
	b[2] = byte(v)
}
