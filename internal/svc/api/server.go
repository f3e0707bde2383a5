// If you are AI: This file provides HTTP API service integration.
// The API exposes the media library and its containers as JSON.

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"flvkit/internal/svc/media"
)

// Version is reported by GET /api/server.
var Version = "dev"

// Service provides HTTP API functionality.
type Service struct {
	library   *media.Library
	startTime int64

	cpu cpuFunc
	ram ramFunc
}

type cpuFunc func(context.Context, time.Duration, bool) ([]float64, error)
type ramFunc func() (*mem.VirtualMemoryStat, error)

// NewService creates a new API service over library.
func NewService(library *media.Library) *Service {
	return &Service{
		library:   library,
		startTime: getCurrentTime(),
		cpu:       cpu.PercentWithContext,
		ram:       mem.VirtualMemory,
	}
}

// RegisterRoutes registers API routes on the provided mux.
func (s *Service) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/server", s.handleServer)
	mux.HandleFunc("GET /api/files", s.handleFiles)
	mux.HandleFunc("GET /api/files/{name}", s.handleFile)
	mux.HandleFunc("GET /api/files/{name}/metadata", s.handleMetadata)
}

// getCurrentTime returns current Unix timestamp.
// Extracted for testability.
func getCurrentTime() int64 {
	return time.Now().Unix()
}
