// If you are AI: This file provides the bounds-checked in-memory transport.
// Any io.Reader or io.Writer is a transport; Buffer adds all-or-nothing semantics over a byte slice.

package amf0

import "io"

// Buffer is a fixed-size memory transport.
// A read or write that does not fit the remaining space transfers nothing.
// Lock expectations: single goroutine.
type Buffer struct {
	buf []byte
	off int
}

// NewBuffer returns a Buffer positioned at the start of b, for reading.
func NewBuffer(b []byte) *Buffer {
	return &Buffer{buf: b}
}

// NewFixedBuffer returns an n-byte Buffer for writing.
func NewFixedBuffer(n int) *Buffer {
	return &Buffer{buf: make([]byte, n)}
}

// Read copies exactly len(p) bytes or fails with io.EOF without consuming.
func (b *Buffer) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if len(p) > len(b.buf)-b.off {
		return 0, io.EOF
	}
	n := copy(p, b.buf[b.off:])
	b.off += n
	return n, nil
}

// Write stores exactly len(p) bytes or fails with ErrBufferFull without writing.
func (b *Buffer) Write(p []byte) (int, error) {
	if len(p) > len(b.buf)-b.off {
		return 0, ErrBufferFull
	}
	n := copy(b.buf[b.off:], p)
	b.off += n
	return n, nil
}

// Bytes returns the bytes before the current offset.
func (b *Buffer) Bytes() []byte {
	return b.buf[:b.off]
}

// Offset returns the number of bytes read or written so far.
func (b *Buffer) Offset() int {
	return b.off
}

// Len returns the number of bytes remaining.
func (b *Buffer) Len() int {
	return len(b.buf) - b.off
}
