// If you are AI: This file implements the HTTP handler for FLV replay requests.
// Handles GET /{name}.flv with an optional ?start=ms seek through the keyframe index.

package httpflv

import (
	"net/http"
	"strconv"
	"strings"

	"flvkit/internal/svc/media"
)

// Handler handles HTTP-FLV requests.
type Handler struct {
	library *media.Library
}

// NewHandler creates a new HTTP-FLV handler.
func NewHandler(library *media.Library) *Handler {
	return &Handler{
		library: library,
	}
}

// ServeHTTP replays a container. Errors found before the first byte is
// written map to a status; later errors end the response.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	name, ok := strings.CutSuffix(r.PathValue("file"), media.Ext)
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	var ms uint64
	if q := r.URL.Query().Get("start"); q != "" {
		var err error
		if ms, err = strconv.ParseUint(q, 10, 32); err != nil {
			http.Error(w, "start must be milliseconds", http.StatusBadRequest)
			return
		}
	}
	start, err := h.library.StartOffset(name, uint32(ms))
	if err != nil {
		http.Error(w, err.Error(), media.StatusOf(err))
		return
	}
	s, err := h.library.Open(name)
	if err != nil {
		http.Error(w, err.Error(), media.StatusOf(err))
		return
	}

	w.Header().Set("Content-Type", "video/x-flv")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)

	// errors are logged by the library; the client sees a short body
	_, _ = h.library.Replay(r.Context(), name, s, media.Seek{Offset: start, Rebase: ms > 0}, newViewer(w))
}

// RegisterRoutes registers GET /{file}; only names ending in .flv are served.
// More specific routes such as /healthz take precedence.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.Handle("GET /{file}", h)
}
