// If you are AI: This file implements the tag stream cursor over a seekable FLV source.
// sync is the only place that skips forward; consume is the only place that seeks back.
// Lock expectations: a Stream is owned by one goroutine.

package flv

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"flvkit/internal/core/protocol/amf0"
)

// State is the position of the cursor within the tag cycle.
type State uint8

// Cursor states
const (
	StateStart State = iota
	StateTag
	StateTagBody
	StatePrevTagSize
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateStart:
		return "start"
	case StateTag:
		return "tag"
	case StateTagBody:
		return "tag-body"
	case StatePrevTagSize:
		return "prev-tag-size"
	default:
		return fmt.Sprintf("state(%d)", uint8(s))
	}
}

// Stream reads an FLV container tag by tag.
type Stream struct {
	rs     io.ReadSeeker
	closer io.Closer
	log    *log.Logger

	maxDepth int

	state     State
	tag       TagHeader
	tagOffset int64
	remaining uint32
	overflow  uint32

	scratch [TagHeaderSize]byte
}

// Option configures a Stream.
type Option func(*Stream)

// WithLogger sets the logger used for skip and resync diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(s *Stream) {
		if l != nil {
			s.log = l
		}
	}
}

// WithMaxDepth bounds metadata nesting; see amf0.WithMaxDepth.
func WithMaxDepth(depth int) Option {
	return func(s *Stream) {
		s.maxDepth = depth
	}
}

// Open opens the file at path and validates its signature.
func Open(path string, opts ...Option) (*Stream, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpen, err)
	}
	s, err := NewStream(f, opts...)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	s.closer = f
	return s, nil
}

// NewStream validates the signature at the current position of rs,
// which must be the start of the container.
func NewStream(rs io.ReadSeeker, opts ...Option) (*Stream, error) {
	s := &Stream{rs: rs, log: log.New(io.Discard, "", 0)}
	for _, opt := range opts {
		opt(s)
	}

	sig := s.scratch[:len(Signature)]
	if _, err := io.ReadFull(rs, sig); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpenRead, err)
	}
	if string(sig) != Signature {
		return nil, fmt.Errorf("%w: signature %q", ErrNotFLV, sig)
	}
	s.state = StateStart
	return s, nil
}

// State returns the cursor state.
func (s *Stream) State() State {
	return s.state
}

// read fills the scratch buffer with n bytes.
func (s *Stream) read(n int) ([]byte, error) {
	if s.rs == nil {
		return nil, ErrState
	}
	b := s.scratch[:n]
	if _, err := io.ReadFull(s.rs, b); err != nil {
		return nil, eof(err)
	}
	return b, nil
}

// eof wraps a transport failure as end of stream.
func eof(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return ErrEOF
	}
	return fmt.Errorf("%w: %w", ErrEOF, err)
}

// seek moves the transport, reporting failures as end of stream.
func (s *Stream) seek(offset int64, whence int) error {
	if _, err := s.rs.Seek(offset, whence); err != nil {
		return fmt.Errorf("%w: seek: %w", ErrEOF, err)
	}
	return nil
}

// sync advances the cursor until it is in state want, skipping whatever
// lies in between. Only forward moves are possible; asking for an earlier
// state yields ErrState.
func (s *Stream) sync(want State) error {
	if s.rs == nil {
		return ErrState
	}
	for s.state != want {
		switch s.state {
		case StateStart:
			s.log.Printf("flv: skip header")
			if err := s.seek(HeaderSize-int64(len(Signature)), io.SeekCurrent); err != nil {
				return err
			}
			s.state = StatePrevTagSize
		case StateTagBody:
			s.log.Printf("flv: skip tag body at %d", s.tagOffset)
			if err := s.seek(s.tagOffset+int64(s.tag.Size()), io.SeekStart); err != nil {
				return err
			}
			s.remaining, s.overflow = 0, 0
			s.state = StatePrevTagSize
		case StatePrevTagSize:
			if want != StateTag {
				return fmt.Errorf("%w: at %s, want %s", ErrState, s.state, want)
			}
			s.log.Printf("flv: skip previous tag size")
			if err := s.seek(PrevTagSizeSize, io.SeekCurrent); err != nil {
				return err
			}
			s.state = StateTag
		default:
			return fmt.Errorf("%w: at %s, want %s", ErrState, s.state, want)
		}
	}
	return nil
}

// consume accounts n body bytes just read. When the body is exhausted the
// cursor moves to the trailing size, seeking back over any bytes read past
// the declared body end.
func (s *Stream) consume(n uint32) error {
	if s.remaining >= n {
		s.remaining -= n
	} else {
		s.overflow = n - s.remaining
		s.remaining = 0
	}
	if s.remaining > 0 {
		return nil
	}
	s.state = StatePrevTagSize
	if s.overflow > 0 {
		s.log.Printf("flv: resync %d bytes back at tag %d", s.overflow, s.tagOffset)
		return s.seek(-int64(s.overflow), io.SeekCurrent)
	}
	return nil
}

// inBody checks that a tag header was read and its body not exhausted.
func (s *Stream) inBody() error {
	if s.rs == nil || s.state != StateTagBody {
		return fmt.Errorf("%w: at %s, want %s", ErrState, s.state, StateTagBody)
	}
	return nil
}

// ReadHeader reads the file header. Only valid right after opening.
func (s *Stream) ReadHeader() (Header, error) {
	if s.rs == nil || s.state != StateStart {
		return Header{}, fmt.Errorf("%w: header already consumed", ErrState)
	}
	b, err := s.read(HeaderSize - len(Signature))
	if err != nil {
		return Header{}, err
	}
	s.state = StatePrevTagSize
	return parseHeader(b), nil
}

// ReadPrevTagSize reads a trailing size field, skipping any unread body.
// The value is returned as stored; it is not validated.
func (s *Stream) ReadPrevTagSize() (uint32, error) {
	if err := s.sync(StatePrevTagSize); err != nil {
		return 0, err
	}
	b, err := s.read(PrevTagSizeSize)
	if err != nil {
		return 0, err
	}
	s.state = StateTag
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3]), nil
}

// ReadTag reads the next tag header, skipping the file header, any unread
// body and the trailing size as needed.
func (s *Stream) ReadTag() (TagHeader, error) {
	if err := s.sync(StateTag); err != nil {
		return TagHeader{}, err
	}
	off, err := s.rs.Seek(0, io.SeekCurrent)
	if err != nil {
		return TagHeader{}, fmt.Errorf("%w: tell: %w", ErrEOF, err)
	}
	b, err := s.read(TagHeaderSize)
	if err != nil {
		return TagHeader{}, err
	}
	s.tag = parseTagHeader(b)
	s.tagOffset = off
	s.remaining = s.tag.BodyLength
	s.overflow = 0
	s.state = StateTagBody
	return s.tag, nil
}

// ReadTagBody reads up to len(p) bytes of the current tag body.
func (s *Stream) ReadTagBody(p []byte) (int, error) {
	if err := s.inBody(); err != nil {
		return 0, err
	}
	n := min(uint32(len(p)), s.remaining)
	read, err := io.ReadFull(s.rs, p[:n])
	s.remaining -= uint32(read)
	if s.remaining == 0 {
		s.state = StatePrevTagSize
	}
	if err != nil {
		return read, eof(err)
	}
	return read, nil
}

// SkipTag moves the cursor to the trailing size of the current tag.
func (s *Stream) SkipTag() error {
	return s.sync(StatePrevTagSize)
}
