// If you are AI: This file tests metadata reads, including declared-length mismatches and resync.
package flv

import (
	"testing"

	"flvkit/internal/core/protocol/amf0"

	"github.com/stretchr/testify/require"
)

// nextTagAfter reads the trailing size and next tag header, checking that
// the cursor landed on the boundary the header declared.
func nextTagAfter(t *testing.T, s *Stream, declared uint32) TagHeader {
	t.Helper()
	size, err := s.ReadPrevTagSize()
	require.NoError(t, err)
	require.Equal(t, TagHeaderSize+declared, size)

	tag, err := s.ReadTag()
	require.NoError(t, err)
	return tag
}

func TestReadMetadata(t *testing.T) {
	meta := amf0.NewAssociativeArray()
	meta.Add("duration", amf0.NewNumber(10))
	body := append(mustMarshal(t, amf0.String("onMetaData")), mustMarshal(t, meta)...)

	s := open(t, file(rawTag(TagTypeScript, uint32(len(body)), body)))
	_, err := s.ReadTag()
	require.NoError(t, err)

	name, data, err := s.ReadMetadata()
	require.NoError(t, err)
	require.Equal(t, amf0.String("onMetaData"), name)
	got, ok := data.(*amf0.AssociativeArray).Get("duration")
	require.True(t, ok)
	require.Equal(t, 10.0, got.(amf0.Number).Float64())
	require.Equal(t, StatePrevTagSize, s.State())
}

func TestReadMetadataNameExceedsBody(t *testing.T) {
	name := mustMarshal(t, amf0.String("onMetaData"))
	// only the first three name bytes are inside the declared body
	s := open(t, file(
		rawTag(TagTypeScript, 3, name[:3]),
		rawTag(TagTypeAudio, 2, []byte{0xaf, 0x01}),
	))
	_, err := s.ReadTag()
	require.NoError(t, err)

	n, data, err := s.ReadMetadata()
	require.ErrorIs(t, err, ErrInvalidMetadataName)
	require.Equal(t, CodeInvalidMetadataName, CodeOf(err))
	require.NotNil(t, n)
	require.Nil(t, data)
	require.Equal(t, StatePrevTagSize, s.State())

	tag := nextTagAfter(t, s, 3)
	require.Equal(t, TagTypeAudio, tag.Type)
	require.Equal(t, int64(13+11+3+4), s.CurrentTagOffset())
}

func TestReadMetadataNameFillsBody(t *testing.T) {
	name := mustMarshal(t, amf0.String("onMetaData"))
	s := open(t, file(
		rawTag(TagTypeScript, uint32(len(name)), name),
		rawTag(TagTypeAudio, 1, []byte{0xaf}),
	))
	_, err := s.ReadTag()
	require.NoError(t, err)

	_, data, err := s.ReadMetadata()
	require.ErrorIs(t, err, ErrInvalidMetadata)
	require.Nil(t, data)

	tag := nextTagAfter(t, s, uint32(len(name)))
	require.Equal(t, TagTypeAudio, tag.Type)
}

func TestReadMetadataPayloadExceedsBody(t *testing.T) {
	name := mustMarshal(t, amf0.String("onMetaData"))
	payload := mustMarshal(t, amf0.NewNumber(1))
	declared := uint32(len(name) + 4)
	body := append(append([]byte{}, name...), payload[:4]...)
	s := open(t, file(
		rawTag(TagTypeScript, declared, body),
		rawTag(TagTypeVideo, 1, []byte{0x27}),
	))
	_, err := s.ReadTag()
	require.NoError(t, err)

	n, data, err := s.ReadMetadata()
	require.ErrorIs(t, err, ErrInvalidMetadata)
	require.Equal(t, amf0.String("onMetaData"), n)
	require.NotNil(t, data)

	tag := nextTagAfter(t, s, declared)
	require.Equal(t, TagTypeVideo, tag.Type)
}

func TestReadMetadataDecodeFailures(t *testing.T) {
	// XML name marker is unsupported
	s := open(t, file(rawTag(TagTypeScript, 3, []byte{0x0f, 0, 0})))
	_, err := s.ReadTag()
	require.NoError(t, err)
	_, _, err = s.ReadMetadata()
	require.ErrorIs(t, err, ErrInvalidMetadataName)
	require.ErrorIs(t, err, amf0.ErrUnsupportedType)

	// the payload is an end marker
	name := mustMarshal(t, amf0.String("x"))
	body := append(append([]byte{}, name...), 0x09, 0x00)
	s = open(t, file(rawTag(TagTypeScript, uint32(len(body)), body), rawTag(TagTypeAudio, 1, []byte{0xaf})))
	_, err = s.ReadTag()
	require.NoError(t, err)
	_, _, err = s.ReadMetadata()
	require.ErrorIs(t, err, ErrInvalidMetadata)
	require.Equal(t, amf0.CodeEndTag, amf0.CodeOf(err))
	tag := nextTagAfter(t, s, uint32(len(body)))
	require.Equal(t, TagTypeAudio, tag.Type)

	// truncated file
	s = open(t, file(rawTag(TagTypeScript, 20, []byte{0x02, 0x00, 0x09, 'a'})[:15]))
	_, err = s.ReadTag()
	require.NoError(t, err)
	_, _, err = s.ReadMetadata()
	require.ErrorIs(t, err, ErrEOF)
}
