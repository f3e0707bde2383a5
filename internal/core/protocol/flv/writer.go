// If you are AI: This file implements fixed-layout FLV emission: header, then tags with trailing sizes.
// The writer keeps no muxing state beyond a byte count.

package flv

import (
	"fmt"
	"io"
)

// Writer emits an FLV container to an io.Writer.
type Writer struct {
	w io.Writer
	n int64
}

// NewWriter returns a Writer writing to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// write sends p and counts it.
func (w *Writer) write(p []byte) error {
	n, err := w.w.Write(p)
	w.n += int64(n)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrOpenWrite, err)
	}
	return nil
}

// WriteHeader writes the file header and the zero trailing size that follows it.
func (w *Writer) WriteHeader(h Header) error {
	b := h.Bytes()
	b = append(b, 0, 0, 0, 0)
	return w.write(b)
}

// WriteTag writes a complete tag and its trailing size.
func (w *Writer) WriteTag(t *Tag) error {
	return w.write(t.Bytes())
}

// WriteTagHeader writes a tag header and body as given, then a trailing
// size computed from the body actually written.
func (w *Writer) WriteTagHeader(h TagHeader, body []byte) error {
	h.BodyLength = uint32(len(body))
	b := make([]byte, TagHeaderSize, TagHeaderSize+len(body)+PrevTagSizeSize)
	h.put(b)
	b = append(b, body...)
	b = b[:len(b)+PrevTagSizeSize]
	PutPrevTagSize(b[len(b)-PrevTagSizeSize:], h.Size())
	return w.write(b)
}

// Offset returns the number of bytes written so far.
func (w *Writer) Offset() int64 {
	return w.n
}
