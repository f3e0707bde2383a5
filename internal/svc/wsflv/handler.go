// If you are AI: This file implements the WebSocket handler for FLV replay requests.
// Handles GET /ws/{name} requests: header frame first, then one frame per tag.

package wsflv

import (
	"net/http"
	"strconv"

	"flvkit/internal/svc/media"

	"github.com/gorilla/websocket"
)

// Handler handles WebSocket-FLV requests.
type Handler struct {
	library  *media.Library
	upgrader websocket.Upgrader
}

// NewHandler creates a new WebSocket-FLV handler.
func NewHandler(library *media.Library) *Handler {
	return &Handler{
		library: library,
		upgrader: websocket.Upgrader{
			// replay is read-only; any page may embed a player
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// ServeHTTP upgrades and replays name with timestamps rebased to zero.
// Name and seek errors are answered before the upgrade with a status.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

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

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade failed, response already sent
		s.Close()
		return
	}
	defer conn.Close()

	fw := &frameWriter{conn: conn}
	seek := media.Seek{Offset: start, Rebase: true}
	if _, err := h.library.Replay(r.Context(), name, s, seek, fw); err != nil {
		_ = closeWith(conn, websocket.CloseInternalServerErr)
		return
	}
	_ = closeWith(conn, websocket.CloseNormalClosure)
}

// RegisterRoutes registers WebSocket-FLV routes on the given mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.Handle("GET /ws/{name}", h)
}
