// If you are AI: This file walks a container once to summarise it or collect its metadata.
// Both the API and the CLI info command render these results.

package media

import (
	"os"

	"flvkit/internal/core/protocol/amf0"
	"flvkit/internal/core/protocol/flv"
)

// Summary counts the tags of one container.
type Summary struct {
	Size       int64  `json:"size"`
	Version    uint8  `json:"version"`
	HasAudio   bool   `json:"has_audio"`
	HasVideo   bool   `json:"has_video"`
	Tags       int    `json:"tags"`
	Audio      int    `json:"audio"`
	Video      int    `json:"video"`
	Metadata   int    `json:"metadata"`
	Unknown    int    `json:"unknown"`
	Keyframes  int    `json:"keyframes"`
	DurationMs uint32 `json:"duration_ms"` // timestamp of the last tag
}

// MetadataEntry is one decoded script tag.
type MetadataEntry struct {
	Offset    int64      `json:"offset"`
	Timestamp uint32     `json:"timestamp"`
	Name      amf0.Value `json:"name"`
	Data      amf0.Value `json:"data"`
}

// Summarize walks the container at path.
func Summarize(path string, opts ...flv.Option) (Summary, error) {
	var sum Summary
	if fi, err := os.Stat(path); err == nil {
		sum.Size = fi.Size()
	}
	err := flv.Parse(path, flv.Handlers{
		Header: func(h flv.Header) error {
			sum.Version = h.Version
			sum.HasAudio = h.HasAudio()
			sum.HasVideo = h.HasVideo()
			return nil
		},
		Tag: func(tag flv.TagHeader) error {
			sum.Tags++
			switch tag.Type {
			case flv.TagTypeAudio:
				sum.Audio++
			case flv.TagTypeVideo:
				sum.Video++
			case flv.TagTypeScript:
				sum.Metadata++
			default:
				sum.Unknown++
			}
			sum.DurationMs = max(sum.DurationMs, tag.Time())
			return nil
		},
		VideoTag: func(_ flv.TagHeader, v flv.VideoTag) error {
			if v.IsKeyframe() {
				sum.Keyframes++
			}
			return nil
		},
	}, opts...)
	return sum, err
}

// Metadata decodes every well-formed script tag of the container at path.
func Metadata(path string, opts ...flv.Option) ([]MetadataEntry, error) {
	s, err := flv.Open(path, opts...)
	if err != nil {
		return nil, err
	}
	entries := []MetadataEntry{}
	err = flv.Walk(s, flv.Handlers{
		MetadataTag: func(tag flv.TagHeader, name, data amf0.Value) error {
			entries = append(entries, MetadataEntry{
				Offset:    s.CurrentTagOffset(),
				Timestamp: tag.Time(),
				Name:      name,
				Data:      data,
			})
			return nil
		},
	})
	return entries, err
}

// Summarize summarises the container backing name.
func (l *Library) Summarize(name string) (Summary, error) {
	path, err := l.Path(name)
	if err != nil {
		return Summary{}, err
	}
	return Summarize(path, l.opts...)
}

// Metadata collects the script tags of the container backing name.
func (l *Library) Metadata(name string) ([]MetadataEntry, error) {
	path, err := l.Path(name)
	if err != nil {
		return nil, err
	}
	return Metadata(path, l.opts...)
}
