// If you are AI: This file implements the tag-level re-muxer.
// Audio and video bodies are copied verbatim; metadata is decoded, optionally rewritten and re-encoded.

package remux

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"flvkit/internal/core/protocol/flv"
)

// Options controls a remux run.
type Options struct {
	Filter          *Filter
	DropAudio       bool
	DropVideo       bool
	MetadataCreator string
	// StartOffset is a tag offset, usually from the keyframe index. Media
	// tags before it are dropped except codec sequence headers.
	StartOffset int64
	// Rebase shifts media timestamps so the first kept media frame plays
	// at 0. Metadata and sequence headers are stamped 0.
	Rebase   bool
	MaxDepth int
	Logger   *log.Logger
}

// Stats summarises a remux run.
type Stats struct {
	Tags     int
	Dropped  int
	Metadata int
	Bytes    int64
}

// Remux copies the container read from s to w, applying opts.
// The stream is read from its header; w receives a complete container.
// Cancelling ctx stops between tags.
func Remux(ctx context.Context, s *flv.Stream, w io.Writer, opts Options) (Stats, error) {
	var st Stats
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	hdr, err := s.ReadHeader()
	if err != nil {
		return st, err
	}
	if opts.DropAudio {
		hdr.Flags &^= flv.FlagAudio
	}
	if opts.DropVideo {
		hdr.Flags &^= flv.FlagVideo
	}
	hdr.Offset = flv.HeaderSize

	var rb rebaser
	out := flv.NewWriter(w)
	if err := out.WriteHeader(hdr); err != nil {
		return st, err
	}

	for {
		if err := ctx.Err(); err != nil {
			return st, err
		}
		tag, err := s.ReadTag()
		if errors.Is(err, flv.ErrEOF) {
			break
		}
		if err != nil {
			return st, err
		}
		offset := s.CurrentTagOffset()

		body := make([]byte, tag.BodyLength)
		n, err := s.ReadTagBody(body)
		if err != nil {
			return st, fmt.Errorf("tag at %d: %w", offset, err)
		}
		body = body[:n]

		keep, err := keepTag(tag, body, offset, opts)
		if err != nil {
			return st, err
		}
		if !keep {
			st.Dropped++
			continue
		}

		if tag.Type == flv.TagTypeScript {
			body = rewriteMetadata(body, opts, logger)
			st.Metadata++
		}
		if opts.Rebase {
			tag.SetTime(rb.time(tag, body))
		}
		if err := out.WriteTagHeader(tag, body); err != nil {
			return st, err
		}
		st.Tags++
	}

	st.Bytes = out.Offset()
	return st, nil
}

// keepTag applies the drop flags, the start offset and the filter.
func keepTag(tag flv.TagHeader, body []byte, offset int64, opts Options) (bool, error) {
	switch tag.Type {
	case flv.TagTypeAudio:
		if opts.DropAudio {
			return false, nil
		}
	case flv.TagTypeVideo:
		if opts.DropVideo {
			return false, nil
		}
	}
	if offset < opts.StartOffset && isMedia(tag.Type) && !isSequenceHeader(tag.Type, body) {
		return false, nil
	}
	return opts.Filter.Keep(TagInfo{
		Type:      tag.Type.String(),
		Timestamp: tag.Time(),
		Size:      tag.BodyLength,
		Keyframe:  tag.Type == flv.TagTypeVideo && flv.IsVideoKeyframe(body),
	})
}

// isMedia reports whether t is an audio or video tag.
func isMedia(t flv.TagType) bool {
	return t == flv.TagTypeAudio || t == flv.TagTypeVideo
}

// isSequenceHeader reports whether body carries AVC or AAC decoder configuration.
func isSequenceHeader(t flv.TagType, body []byte) bool {
	if len(body) < 2 {
		return false
	}
	switch t {
	case flv.TagTypeVideo:
		return flv.ParseVideoTag(body[0]).Codec == flv.CodecAVC && body[1] == flv.AVCPacketTypeSequenceHeader
	case flv.TagTypeAudio:
		return flv.ParseAudioTag(body[0]).Format == flv.SoundFormatAAC && body[1] == flv.AACPacketTypeSequenceHeader
	}
	return false
}

// rebaser tracks the first media timestamp of a rebased run.
type rebaser struct {
	base uint32
	set  bool
}

// time returns the rebased timestamp of tag.
func (r *rebaser) time(tag flv.TagHeader, body []byte) uint32 {
	if !isMedia(tag.Type) || isSequenceHeader(tag.Type, body) {
		return 0
	}
	ts := tag.Time()
	if !r.set {
		r.base, r.set = ts, true
	}
	if ts < r.base {
		return 0
	}
	return ts - r.base
}
