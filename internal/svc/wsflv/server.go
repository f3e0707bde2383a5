// If you are AI: This file provides WebSocket-FLV service integration.
// The service is integrated into the main HTTP server.

package wsflv

import (
	"net/http"

	"flvkit/internal/svc/media"
)

// Service provides WebSocket-FLV replay.
type Service struct {
	handler *Handler
}

// NewService creates a new WebSocket-FLV service over library.
func NewService(library *media.Library) *Service {
	return &Service{
		handler: NewHandler(library),
	}
}

// RegisterRoutes registers WebSocket-FLV routes on the provided mux.
func (s *Service) RegisterRoutes(mux *http.ServeMux) {
	s.handler.RegisterRoutes(mux)
}
