// If you are AI: This file implements the one-byte audio and video sub-headers.
// Fields are bit-packed most significant bit first.

package flv

import (
	"bytes"
	"fmt"

	"github.com/icza/bitio"
)

// AudioTag is the first byte of an audio tag body.
type AudioTag struct {
	Format SoundFormat // 4 bits
	Rate   SoundRate   // 2 bits
	Size   SoundSize   // 1 bit
	Type   SoundType   // 1 bit
}

// ParseAudioTag unpacks an audio sub-header byte.
func ParseAudioTag(b byte) AudioTag {
	r := bitio.NewReader(bytes.NewReader([]byte{b}))
	return AudioTag{
		Format: SoundFormat(r.TryReadBits(4)),
		Rate:   SoundRate(r.TryReadBits(2)),
		Size:   SoundSize(r.TryReadBits(1)),
		Type:   SoundType(r.TryReadBits(1)),
	}
}

// Byte packs the sub-header.
func (a AudioTag) Byte() byte {
	var buf bytes.Buffer
	w := bitio.NewWriter(&buf)
	w.TryWriteBits(uint64(a.Format), 4)
	w.TryWriteBits(uint64(a.Rate), 2)
	w.TryWriteBits(uint64(a.Size), 1)
	w.TryWriteBits(uint64(a.Type), 1)
	_ = w.Close()
	return buf.Bytes()[0]
}

// VideoTag is the first byte of a video tag body.
type VideoTag struct {
	FrameType FrameType // 4 bits
	Codec     CodecID   // 4 bits
}

// ParseVideoTag unpacks a video sub-header byte.
func ParseVideoTag(b byte) VideoTag {
	r := bitio.NewReader(bytes.NewReader([]byte{b}))
	return VideoTag{
		FrameType: FrameType(r.TryReadBits(4)),
		Codec:     CodecID(r.TryReadBits(4)),
	}
}

// Byte packs the sub-header.
func (v VideoTag) Byte() byte {
	var buf bytes.Buffer
	w := bitio.NewWriter(&buf)
	w.TryWriteBits(uint64(v.FrameType), 4)
	w.TryWriteBits(uint64(v.Codec), 4)
	_ = w.Close()
	return buf.Bytes()[0]
}

// IsKeyframe reports whether the frame can start decoding.
func (v VideoTag) IsKeyframe() bool {
	return v.FrameType == FrameTypeKeyframe || v.FrameType == FrameTypeGeneratedKeyframe
}

// readSubHeader reads the one-byte audio or video sub-header.
func (s *Stream) readSubHeader(kind string) (byte, error) {
	if err := s.inBody(); err != nil {
		return 0, err
	}
	if s.remaining == 0 {
		return 0, fmt.Errorf("%w: %s at %d", ErrEmptyTag, kind, s.tagOffset)
	}
	b, err := s.read(1)
	if err != nil {
		return 0, err
	}
	v := b[0]
	return v, s.consume(1)
}

// ReadAudioTag reads the audio sub-header of the current tag.
func (s *Stream) ReadAudioTag() (AudioTag, error) {
	b, err := s.readSubHeader("audio")
	if err != nil {
		return AudioTag{}, err
	}
	return ParseAudioTag(b), nil
}

// ReadVideoTag reads the video sub-header of the current tag.
func (s *Stream) ReadVideoTag() (VideoTag, error) {
	b, err := s.readSubHeader("video")
	if err != nil {
		return VideoTag{}, err
	}
	return ParseVideoTag(b), nil
}
