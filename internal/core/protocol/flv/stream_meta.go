// If you are AI: This file implements metadata reads and cursor positioning for Stream.
// Metadata accounting subtracts the re-encoded size of each decoded value from the declared body.

package flv

import (
	"fmt"
	"io"

	"flvkit/internal/core/protocol/amf0"
)

// decodeFailure classifies a value decode failure: end of input or invalid.
func decodeFailure(err error, invalid error, what string) error {
	if amf0.CodeOf(err) == amf0.CodeEOF {
		return fmt.Errorf("%w: %s: %w", ErrEOF, what, err)
	}
	return fmt.Errorf("%w: %w", invalid, err)
}

// ReadMetadata decodes the name and payload of the current script tag.
//
// A name that alone needs more bytes than the body declares fails with
// ErrInvalidMetadataName and no payload is decoded; a name that fills the
// body exactly fails with ErrInvalidMetadata. A payload larger than the rest
// of the body is returned together with ErrInvalidMetadata. In each of these
// cases the cursor is left on the next tag boundary.
func (s *Stream) ReadMetadata() (name, data amf0.Value, err error) {
	if err := s.inBody(); err != nil {
		return nil, nil, err
	}
	if s.remaining == 0 {
		return nil, nil, fmt.Errorf("%w: metadata at %d", ErrEmptyTag, s.tagOffset)
	}

	dec := amf0.NewDecoder(s.rs, amf0.WithMaxDepth(s.maxDepth))
	name, err = dec.Decode()
	if err != nil {
		return nil, nil, decodeFailure(err, ErrInvalidMetadataName, "metadata name")
	}

	size := uint32(amf0.Size(name))
	if size >= s.remaining {
		exact := size == s.remaining
		if err := s.consume(size); err != nil {
			return nil, nil, err
		}
		if exact {
			return name, nil, fmt.Errorf("%w: tag at %d holds a name only", ErrInvalidMetadata, s.tagOffset)
		}
		return name, nil, fmt.Errorf("%w: %d-byte name exceeds tag at %d", ErrInvalidMetadataName, size, s.tagOffset)
	}
	if err := s.consume(size); err != nil {
		return nil, nil, err
	}

	data, err = dec.Decode()
	if err != nil {
		return name, nil, decodeFailure(err, ErrInvalidMetadata, "metadata payload")
	}

	size = uint32(amf0.Size(data))
	over := size > s.remaining
	if err := s.consume(size); err != nil {
		return name, data, err
	}
	if over {
		return name, data, fmt.Errorf("%w: payload exceeds tag at %d", ErrInvalidMetadata, s.tagOffset)
	}
	return name, data, nil
}

// CurrentTag returns the last tag header read.
func (s *Stream) CurrentTag() TagHeader {
	return s.tag
}

// CurrentTagOffset returns the byte offset of the last tag header read.
func (s *Stream) CurrentTagOffset() int64 {
	return s.tagOffset
}

// Offset returns the current byte offset of the underlying source.
func (s *Stream) Offset() (int64, error) {
	if s.rs == nil {
		return 0, ErrState
	}
	return s.rs.Seek(0, io.SeekCurrent)
}

// Reset rewinds to just after the signature, as if freshly opened.
func (s *Stream) Reset() error {
	if s.rs == nil {
		return ErrState
	}
	if err := s.seek(int64(len(Signature)), io.SeekStart); err != nil {
		return err
	}
	s.state = StateStart
	s.tag = TagHeader{}
	s.tagOffset = 0
	s.remaining, s.overflow = 0, 0
	return nil
}

// SeekTag positions the cursor on the tag header at offset, which must be
// a tag boundary such as one recorded from CurrentTagOffset.
func (s *Stream) SeekTag(offset int64) error {
	if s.rs == nil {
		return ErrState
	}
	if offset < HeaderSize+PrevTagSizeSize {
		return fmt.Errorf("%w: offset %d precedes the first tag", ErrState, offset)
	}
	if err := s.seek(offset, io.SeekStart); err != nil {
		return err
	}
	s.state = StateTag
	s.remaining, s.overflow = 0, 0
	return nil
}

// Close releases the source if the stream opened it. Further calls fail with ErrState.
func (s *Stream) Close() error {
	if s.rs == nil {
		return nil
	}
	s.rs = nil
	if s.closer != nil {
		return s.closer.Close()
	}
	return nil
}
