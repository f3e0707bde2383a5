// If you are AI: This file implements the response writer used for one HTTP-FLV replay.
// Every tag is flushed as soon as it is written so players can start early.

package httpflv

import (
	"bufio"
	"net/http"
)

// viewer buffers one tag at a time and flushes it to the client.
type viewer struct {
	w  *bufio.Writer
	rc *http.ResponseController
}

// newViewer wraps w for tag-at-a-time delivery.
func newViewer(w http.ResponseWriter) *viewer {
	return &viewer{
		w:  bufio.NewWriter(w),
		rc: http.NewResponseController(w),
	}
}

// Write sends p and flushes it; a failed flush means the client went away.
func (v *viewer) Write(p []byte) (int, error) {
	n, err := v.w.Write(p)
	if err != nil {
		return n, err
	}
	if err := v.w.Flush(); err != nil {
		return n, err
	}
	if err := v.rc.Flush(); err != nil && err != http.ErrNotSupported {
		return n, err
	}
	return n, nil
}
