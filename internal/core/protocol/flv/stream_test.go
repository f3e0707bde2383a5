// If you are AI: This file tests the tag stream cursor: open, state transitions and resynchronisation.
package flv

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"flvkit/internal/core/protocol/amf0"

	"github.com/stretchr/testify/require"
)

// rawTag builds a tag whose header declares declared body bytes, followed by
// body as given and a trailing size of TagHeaderSize+declared.
func rawTag(typ TagType, declared uint32, body []byte) []byte {
	h := TagHeader{Type: typ, BodyLength: declared}
	b := append(h.Bytes(), body...)
	return binary.BigEndian.AppendUint32(b, TagHeaderSize+declared)
}

// file builds a container with both flags set and the given raw tags.
func file(tags ...[]byte) []byte {
	b := append(NewHeader(true, true).Bytes(), 0, 0, 0, 0)
	for _, tag := range tags {
		b = append(b, tag...)
	}
	return b
}

// mustMarshal encodes v or fails the test.
func mustMarshal(t *testing.T, v amf0.Value) []byte {
	t.Helper()
	b, err := amf0.Marshal(v)
	require.NoError(t, err)
	return b
}

// open wraps b in a Stream.
func open(t *testing.T, b []byte) *Stream {
	t.Helper()
	s, err := NewStream(bytes.NewReader(b))
	require.NoError(t, err)
	return s
}

func TestOpenRejectsBadSignature(t *testing.T) {
	_, err := NewStream(bytes.NewReader([]byte("FLX\x01\x05\x00\x00\x00\x09")))
	require.ErrorIs(t, err, ErrNotFLV)
	require.Equal(t, CodeNoFLV, CodeOf(err))

	_, err = NewStream(bytes.NewReader([]byte("FL")))
	require.ErrorIs(t, err, ErrOpenRead)
	require.Equal(t, CodeOpenRead, CodeOf(err))

	_, err = Open(filepath.Join(t.TempDir(), "missing.flv"))
	require.ErrorIs(t, err, ErrOpen)
	require.Equal(t, CodeOpen, CodeOf(err))
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.flv")
	require.NoError(t, os.WriteFile(path, file(rawTag(TagTypeAudio, 1, []byte{0xaf})), 0o600))

	s, err := Open(path)
	require.NoError(t, err)
	hdr, err := s.ReadHeader()
	require.NoError(t, err)
	require.Equal(t, uint32(HeaderSize), hdr.Offset)
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())

	_, err = s.ReadTag()
	require.ErrorIs(t, err, ErrState)
}

func TestHeaderFlags(t *testing.T) {
	b := []byte{'F', 'L', 'V', 0x01, 0x05, 0x00, 0x00, 0x00, 0x09}
	s := open(t, b)
	hdr, err := s.ReadHeader()
	require.NoError(t, err)
	require.True(t, hdr.HasAudio())
	require.True(t, hdr.HasVideo())
	require.Equal(t, uint8(1), hdr.Version)
	require.Equal(t, b, hdr.Bytes())

	_, err = s.ReadHeader()
	require.ErrorIs(t, err, ErrState)
}

func TestReadTagSequence(t *testing.T) {
	b := file(
		rawTag(TagTypeVideo, 5, []byte{0x17, 0, 0, 0, 0}),
		rawTag(TagTypeAudio, 2, []byte{0xaf, 0x01}),
	)
	s := open(t, b)

	// the header and the first trailing size are skipped
	tag, err := s.ReadTag()
	require.NoError(t, err)
	require.Equal(t, TagTypeVideo, tag.Type)
	require.Equal(t, uint32(5), tag.BodyLength)
	require.Equal(t, int64(HeaderSize+PrevTagSizeSize), s.CurrentTagOffset())

	video, err := s.ReadVideoTag()
	require.NoError(t, err)
	require.True(t, video.IsKeyframe())
	require.Equal(t, CodecAVC, video.Codec)

	// the unread body is skipped
	tag, err = s.ReadTag()
	require.NoError(t, err)
	require.Equal(t, TagTypeAudio, tag.Type)
	require.Equal(t, int64(13+11+5+4), s.CurrentTagOffset())

	audio, err := s.ReadAudioTag()
	require.NoError(t, err)
	require.Equal(t, SoundFormatAAC, audio.Format)

	// one body byte left, so the cursor is still in the body
	require.Equal(t, StateTagBody, s.State())
	size, err := s.ReadPrevTagSize()
	require.NoError(t, err)
	require.Equal(t, uint32(13), size)

	_, err = s.ReadTag()
	require.ErrorIs(t, err, ErrEOF)
	require.Equal(t, CodeEOF, CodeOf(err))
}

func TestStateErrors(t *testing.T) {
	s := open(t, file(rawTag(TagTypeAudio, 1, []byte{0xaf})))

	_, err := s.ReadAudioTag()
	require.ErrorIs(t, err, ErrState)
	_, _, err = s.ReadMetadata()
	require.Equal(t, CodeState, CodeOf(err))
	_, err = s.ReadTagBody(make([]byte, 1))
	require.ErrorIs(t, err, ErrState)

	_, err = s.ReadTag()
	require.NoError(t, err)
	_, err = s.ReadAudioTag()
	require.NoError(t, err)
	// the single body byte was consumed
	require.Equal(t, StatePrevTagSize, s.State())
	_, err = s.ReadAudioTag()
	require.ErrorIs(t, err, ErrState)

	_, err = s.ReadPrevTagSize()
	require.NoError(t, err)
	_, err = s.ReadPrevTagSize()
	require.ErrorIs(t, err, ErrState)
}

func TestEmptyTag(t *testing.T) {
	s := open(t, file(
		rawTag(TagTypeVideo, 0, nil),
		rawTag(TagTypeScript, 0, nil),
	))
	_, err := s.ReadTag()
	require.NoError(t, err)
	_, err = s.ReadVideoTag()
	require.ErrorIs(t, err, ErrEmptyTag)
	require.Equal(t, CodeEmptyTag, CodeOf(err))

	size, err := s.ReadPrevTagSize()
	require.NoError(t, err)
	require.Equal(t, uint32(TagHeaderSize), size)

	_, err = s.ReadTag()
	require.NoError(t, err)
	_, _, err = s.ReadMetadata()
	require.ErrorIs(t, err, ErrEmptyTag)
}

func TestReadTagBodyAndSeek(t *testing.T) {
	body := []byte{1, 2, 3, 4, 5, 6, 7}
	s := open(t, file(rawTag(TagType(7), 7, body), rawTag(TagTypeAudio, 1, []byte{0x2f})))

	_, err := s.ReadTag()
	require.NoError(t, err)
	first := s.CurrentTagOffset()

	p := make([]byte, 4)
	n, err := s.ReadTagBody(p)
	require.NoError(t, err)
	require.Equal(t, body[:4], p[:n])
	n, err = s.ReadTagBody(make([]byte, 10))
	require.NoError(t, err)
	require.Equal(t, 3, n)
	require.Equal(t, StatePrevTagSize, s.State())

	_, err = s.ReadTag()
	require.NoError(t, err)
	require.NoError(t, s.SkipTag())
	off, err := s.Offset()
	require.NoError(t, err)
	require.Equal(t, s.CurrentTagOffset()+TagHeaderSize+1, off)

	require.NoError(t, s.SeekTag(first))
	tag, err := s.ReadTag()
	require.NoError(t, err)
	require.Equal(t, TagType(7), tag.Type)
	require.Equal(t, "unknown(7)", tag.Type.String())

	require.ErrorIs(t, s.SeekTag(3), ErrState)

	require.NoError(t, s.Reset())
	require.Equal(t, StateStart, s.State())
	hdr, err := s.ReadHeader()
	require.NoError(t, err)
	require.Equal(t, uint8(FlagAudio|FlagVideo), hdr.Flags)
}
