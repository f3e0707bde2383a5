// If you are AI: This file implements the event-driven walk over a whole FLV container.
// The first error from a reader or a handler stops the walk and is returned unchanged.

package flv

import (
	"errors"

	"flvkit/internal/core/protocol/amf0"
)

// Handler receives walk events in file order. Returning a non-nil error
// aborts the walk.
type Handler interface {
	OnHeader(h Header) error
	OnTag(tag TagHeader) error
	OnMetadataTag(tag TagHeader, name, data amf0.Value) error
	OnAudioTag(tag TagHeader, audio AudioTag) error
	OnVideoTag(tag TagHeader, video VideoTag) error
	OnUnknownTag(tag TagHeader) error
	OnPrevTagSize(size uint32) error
	OnStreamEnd() error
}

// Handlers implements Handler with optional funcs; a nil func is a no-op.
type Handlers struct {
	Header      func(h Header) error
	Tag         func(tag TagHeader) error
	MetadataTag func(tag TagHeader, name, data amf0.Value) error
	AudioTag    func(tag TagHeader, audio AudioTag) error
	VideoTag    func(tag TagHeader, video VideoTag) error
	UnknownTag  func(tag TagHeader) error
	PrevTagSize func(size uint32) error
	StreamEnd   func() error
}

// OnHeader calls h.Header if set.
func (h Handlers) OnHeader(hdr Header) error {
	if h.Header == nil {
		return nil
	}
	return h.Header(hdr)
}

// OnTag calls h.Tag if set.
func (h Handlers) OnTag(tag TagHeader) error {
	if h.Tag == nil {
		return nil
	}
	return h.Tag(tag)
}

// OnMetadataTag calls h.MetadataTag if set.
func (h Handlers) OnMetadataTag(tag TagHeader, name, data amf0.Value) error {
	if h.MetadataTag == nil {
		return nil
	}
	return h.MetadataTag(tag, name, data)
}

// OnAudioTag calls h.AudioTag if set.
func (h Handlers) OnAudioTag(tag TagHeader, audio AudioTag) error {
	if h.AudioTag == nil {
		return nil
	}
	return h.AudioTag(tag, audio)
}

// OnVideoTag calls h.VideoTag if set.
func (h Handlers) OnVideoTag(tag TagHeader, video VideoTag) error {
	if h.VideoTag == nil {
		return nil
	}
	return h.VideoTag(tag, video)
}

// OnUnknownTag calls h.UnknownTag if set.
func (h Handlers) OnUnknownTag(tag TagHeader) error {
	if h.UnknownTag == nil {
		return nil
	}
	return h.UnknownTag(tag)
}

// OnPrevTagSize calls h.PrevTagSize if set.
func (h Handlers) OnPrevTagSize(size uint32) error {
	if h.PrevTagSize == nil {
		return nil
	}
	return h.PrevTagSize(size)
}

// OnStreamEnd calls h.StreamEnd if set.
func (h Handlers) OnStreamEnd() error {
	if h.StreamEnd == nil {
		return nil
	}
	return h.StreamEnd()
}

// Parse opens the file at path and walks it with h.
func Parse(path string, h Handler, opts ...Option) error {
	s, err := Open(path, opts...)
	if err != nil {
		return err
	}
	return Walk(s, h)
}

// Walk reads s from its header to the end, calling h for every event.
// The walk ends normally when no further tag header can be read.
// Empty audio and video tags and invalid metadata tags are passed over
// without their callback. s is closed when Walk returns.
func Walk(s *Stream, h Handler) error {
	defer s.Close()

	hdr, err := s.ReadHeader()
	if err != nil {
		return err
	}
	if err := h.OnHeader(hdr); err != nil {
		return err
	}

	for {
		tag, err := s.ReadTag()
		if errors.Is(err, ErrEOF) {
			break
		}
		if err != nil {
			return err
		}
		if err := h.OnTag(tag); err != nil {
			return err
		}
		if err := dispatch(s, h, tag); err != nil {
			return err
		}

		size, err := s.ReadPrevTagSize()
		if err != nil {
			return err
		}
		if err := h.OnPrevTagSize(size); err != nil {
			return err
		}
	}

	return h.OnStreamEnd()
}

// dispatch reads the typed part of tag and calls the matching handler.
func dispatch(s *Stream, h Handler, tag TagHeader) error {
	switch tag.Type {
	case TagTypeAudio:
		audio, err := s.ReadAudioTag()
		if errors.Is(err, ErrEmptyTag) {
			return nil
		}
		if err != nil {
			return err
		}
		return h.OnAudioTag(tag, audio)
	case TagTypeVideo:
		video, err := s.ReadVideoTag()
		if errors.Is(err, ErrEmptyTag) {
			return nil
		}
		if err != nil {
			return err
		}
		return h.OnVideoTag(tag, video)
	case TagTypeScript:
		name, data, err := s.ReadMetadata()
		if errors.Is(err, ErrEOF) {
			return err
		}
		if err != nil {
			s.log.Printf("flv: skip metadata at %d: %v", s.tagOffset, err)
			return nil
		}
		return h.OnMetadataTag(tag, name, data)
	default:
		return h.OnUnknownTag(tag)
	}
}
