// If you are AI: This file provides HTTP-FLV service integration.
// The service is integrated into the main HTTP server.

package httpflv

import (
	"net/http"

	"flvkit/internal/svc/media"
)

// Service provides HTTP-FLV replay.
type Service struct {
	handler *Handler
}

// NewService creates a new HTTP-FLV service over library.
func NewService(library *media.Library) *Service {
	return &Service{
		handler: NewHandler(library),
	}
}

// RegisterRoutes registers HTTP-FLV routes on the provided mux.
func (s *Service) RegisterRoutes(mux *http.ServeMux) {
	s.handler.RegisterRoutes(mux)
}
