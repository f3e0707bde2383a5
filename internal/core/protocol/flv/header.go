// If you are AI: This file implements the FLV file header record.
// The header is written once at the start of the stream and followed by a zero trailing size.

package flv

import "encoding/binary"

// Header is the FLV file header after the signature.
type Header struct {
	Version uint8
	Flags   uint8
	// Offset is the declared header length, conventionally HeaderSize.
	Offset uint32
}

// NewHeader creates a new FLV header with specified audio/video flags.
func NewHeader(hasAudio, hasVideo bool) Header {
	h := Header{Version: Version, Offset: HeaderSize}
	if hasAudio {
		h.Flags |= FlagAudio
	}
	if hasVideo {
		h.Flags |= FlagVideo
	}
	return h
}

// HasAudio reports whether the audio-present flag is set.
func (h Header) HasAudio() bool {
	return h.Flags&FlagAudio != 0
}

// HasVideo reports whether the video-present flag is set.
func (h Header) HasVideo() bool {
	return h.Flags&FlagVideo != 0
}

// Bytes returns the 9-byte header, signature included.
func (h Header) Bytes() []byte {
	b := make([]byte, HeaderSize)
	copy(b, Signature)
	b[3] = h.Version
	b[4] = h.Flags
	binary.BigEndian.PutUint32(b[5:], h.Offset)
	return b
}

// parseHeader decodes the 6 header bytes that follow the signature.
func parseHeader(b []byte) Header {
	return Header{
		Version: b[0],
		Flags:   b[1],
		Offset:  binary.BigEndian.Uint32(b[2:6]),
	}
}
