// If you are AI: This file implements the health check endpoint for monitoring and integration tests.

package health

import (
	"net/http"
)

// Check reports a failing dependency with a non-nil error.
type Check func() error

// Service provides health check functionality.
type Service struct {
	checks []Check
}

// New creates a health service that runs checks on every probe.
func New(checks ...Check) *Service {
	return &Service{checks: checks}
}

// RegisterRoutes adds GET /healthz to the provided mux.
func (s *Service) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", s.handleHealth)
}

// handleHealth returns 200 when every check passes and 503 with the
// first failure otherwise.
func (s *Service) handleHealth(w http.ResponseWriter, r *http.Request) {
	for _, check := range s.checks {
		if err := check(); err != nil {
			http.Error(w, err.Error(), http.StatusServiceUnavailable)
			return
		}
	}
	w.WriteHeader(http.StatusOK)
}
