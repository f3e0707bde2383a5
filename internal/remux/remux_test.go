// If you are AI: This file tests the re-muxer against containers built in memory.
package remux

import (
	"bytes"
	"context"
	"testing"

	"flvkit/internal/core/protocol/amf0"
	"flvkit/internal/core/protocol/flv"

	"github.com/stretchr/testify/require"
)

// source builds a container: metadata, AVC sequence header, keyframe,
// AAC sequence header, AAC frame, interframe, keyframe.
func source(t *testing.T) []byte {
	t.Helper()
	meta := amf0.NewAssociativeArray()
	meta.Add("duration", amf0.NewNumber(1))
	meta.Add("hasAudio", amf0.Boolean(true))
	name, err := amf0.Marshal(amf0.String(MetadataName))
	require.NoError(t, err)
	data, err := amf0.Marshal(meta)
	require.NoError(t, err)

	var buf bytes.Buffer
	w := flv.NewWriter(&buf)
	require.NoError(t, w.WriteHeader(flv.NewHeader(true, true)))
	tags := []*flv.Tag{
		flv.NewTag(flv.TagTypeScript, 0, append(name, data...)),
		flv.NewTag(flv.TagTypeVideo, 0, []byte{0x17, 0x00, 0, 0, 0}),
		flv.NewTag(flv.TagTypeVideo, 0, []byte{0x17, 0x01, 0, 0, 0, 0xaa}),
		flv.NewTag(flv.TagTypeAudio, 0, []byte{0xaf, 0x00, 0x12, 0x10}),
		flv.NewTag(flv.TagTypeAudio, 20, []byte{0xaf, 0x01, 0x21}),
		flv.NewTag(flv.TagTypeVideo, 40, []byte{0x27, 0x01, 0, 0, 0, 0xbb}),
		flv.NewTag(flv.TagTypeVideo, 2000, []byte{0x17, 0x01, 0, 0, 0, 0xcc}),
	}
	for _, tag := range tags {
		require.NoError(t, w.WriteTag(tag))
	}
	return buf.Bytes()
}

// run remuxes in with opts and returns the output.
func run(t *testing.T, in []byte, opts Options) ([]byte, Stats) {
	t.Helper()
	s, err := flv.NewStream(bytes.NewReader(in))
	require.NoError(t, err)
	defer s.Close()

	var out bytes.Buffer
	st, err := Remux(context.Background(), s, &out, opts)
	require.NoError(t, err)
	require.Equal(t, int64(out.Len()), st.Bytes)
	return out.Bytes(), st
}

// types lists the tag types of a container.
func types(t *testing.T, b []byte) []flv.TagType {
	t.Helper()
	s, err := flv.NewStream(bytes.NewReader(b))
	require.NoError(t, err)
	var out []flv.TagType
	require.NoError(t, flv.Walk(s, flv.Handlers{Tag: func(tag flv.TagHeader) error {
		out = append(out, tag.Type)
		return nil
	}}))
	return out
}

func TestRemuxIdentity(t *testing.T) {
	in := source(t)
	out, st := run(t, in, Options{})
	require.Equal(t, in, out)
	require.Equal(t, 7, st.Tags)
	require.Equal(t, 0, st.Dropped)
	require.Equal(t, 1, st.Metadata)
}

func TestRemuxDropAudio(t *testing.T) {
	out, st := run(t, source(t), Options{DropAudio: true, MetadataCreator: "flvkit"})
	require.Equal(t, 2, st.Dropped)

	s, err := flv.NewStream(bytes.NewReader(out))
	require.NoError(t, err)
	var meta amf0.Value
	var hdr flv.Header
	require.NoError(t, flv.Walk(s, flv.Handlers{
		Header: func(h flv.Header) error { hdr = h; return nil },
		AudioTag: func(flv.TagHeader, flv.AudioTag) error {
			t.Fatal("audio tag kept")
			return nil
		},
		MetadataTag: func(_ flv.TagHeader, _, data amf0.Value) error { meta = data; return nil },
	}))
	require.False(t, hdr.HasAudio())
	require.True(t, hdr.HasVideo())

	props := meta.(*amf0.AssociativeArray)
	creator, ok := props.Get("metadatacreator")
	require.True(t, ok)
	require.Equal(t, amf0.String("flvkit"), creator)
	hasAudio, _ := props.Get("hasAudio")
	require.Equal(t, amf0.Boolean(false), hasAudio)
	require.Equal(t, 3, props.Len())
}

func TestRemuxFilter(t *testing.T) {
	f, err := NewFilter(`type == "metadata" || keyframe`)
	require.NoError(t, err)
	out, st := run(t, source(t), Options{Filter: f})
	require.Equal(t, 3, st.Dropped)
	require.Equal(t, []flv.TagType{
		flv.TagTypeScript, flv.TagTypeVideo, flv.TagTypeVideo, flv.TagTypeVideo,
	}, types(t, out))
}

// lastKeyframe returns the tag offset of the last video keyframe in b.
func lastKeyframe(t *testing.T, b []byte) int64 {
	t.Helper()
	var last int64
	s, err := flv.NewStream(bytes.NewReader(b))
	require.NoError(t, err)
	require.NoError(t, flv.Walk(s, flv.Handlers{VideoTag: func(tag flv.TagHeader, v flv.VideoTag) error {
		if v.IsKeyframe() {
			last = s.CurrentTagOffset()
		}
		return nil
	}}))
	return last
}

func TestRemuxStartOffset(t *testing.T) {
	in := source(t)
	out, st := run(t, in, Options{StartOffset: lastKeyframe(t, in)})
	// metadata, both sequence headers and the final keyframe survive
	require.Equal(t, 4, st.Tags)
	require.Equal(t, []flv.TagType{
		flv.TagTypeScript, flv.TagTypeVideo, flv.TagTypeAudio, flv.TagTypeVideo,
	}, types(t, out))
}

func TestRemuxRebase(t *testing.T) {
	out, _ := run(t, source(t), Options{StartOffset: lastKeyframe(t, source(t)), Rebase: true})
	s, err := flv.NewStream(bytes.NewReader(out))
	require.NoError(t, err)
	var stamps []uint32
	require.NoError(t, flv.Walk(s, flv.Handlers{Tag: func(tag flv.TagHeader) error {
		stamps = append(stamps, tag.Time())
		return nil
	}}))
	require.Equal(t, []uint32{0, 0, 0, 0}, stamps)

	r := rebaser{}
	frame := []byte{0x27, 0x01}
	require.Equal(t, uint32(0), r.time(flv.TagHeader{Type: flv.TagTypeVideo, Timestamp: 500}, frame))
	require.Equal(t, uint32(40), r.time(flv.TagHeader{Type: flv.TagTypeVideo, Timestamp: 540}, frame))
	require.Equal(t, uint32(0), r.time(flv.TagHeader{Type: flv.TagTypeAudio, Timestamp: 400}, []byte{0xaf, 0x01}))
}

func TestRemuxCancelled(t *testing.T) {
	s, err := flv.NewStream(bytes.NewReader(source(t)))
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Remux(ctx, s, &bytes.Buffer{}, Options{})
	require.ErrorIs(t, err, context.Canceled)
}

func TestFilterErrors(t *testing.T) {
	_, err := NewFilter(`size +`)
	require.Error(t, err)

	_, err = NewFilter(`size`)
	require.Error(t, err)

	f, err := NewFilter("")
	require.NoError(t, err)
	keep, err := f.Keep(TagInfo{})
	require.NoError(t, err)
	require.True(t, keep)

	f, err = NewFilter(`timestamp >= 1000 && size > 3`)
	require.NoError(t, err)
	keep, err = f.Keep(TagInfo{Timestamp: 1500, Size: 4})
	require.NoError(t, err)
	require.True(t, keep)
	require.Equal(t, `timestamp >= 1000 && size > 3`, f.String())
}
