// If you are AI: This file implements HTTP API handlers.
// Handlers read containers per request and never hold a file open between requests.

package api

import (
	"context"
	"encoding/json"
	"net/http"
	"runtime"

	"flvkit/internal/svc/media"
)

// ServerResponse represents the /api/server response.
type ServerResponse struct {
	Version         string       `json:"version"`
	Uptime          int64        `json:"uptime"` // seconds
	GoVersion       string       `json:"go_version"`
	EnabledServices []string     `json:"enabled_services"`
	System          SystemStatus `json:"system"`
}

// SystemStatus reports host load; fields are zero when unavailable.
type SystemStatus struct {
	CPUUsage int `json:"cpu_usage"` // percent since the previous probe
	RAMUsage int `json:"ram_usage"` // percent
}

// FilesResponse represents the /api/files response.
type FilesResponse struct {
	Files []FileInfo `json:"files"`
}

// FileInfo is one entry of the /api/files response.
type FileInfo struct {
	Name string `json:"name"`
	media.Summary
	Viewers int    `json:"viewers"`
	Error   string `json:"error,omitempty"`
}

// MetadataResponse represents the /api/files/{name}/metadata response.
type MetadataResponse struct {
	Name string                `json:"name"`
	Tags []media.MetadataEntry `json:"tags"`
}

// ErrorResponse represents an API error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// handleServer handles GET /api/server.
func (s *Service) handleServer(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, ServerResponse{
		Version:         Version,
		Uptime:          getCurrentTime() - s.startTime,
		GoVersion:       runtime.Version(),
		EnabledServices: []string{"api", "http_flv", "ws_flv"},
		System:          s.systemStatus(r.Context()),
	})
}

// systemStatus samples cpu and ram without blocking the request.
func (s *Service) systemStatus(ctx context.Context) SystemStatus {
	var st SystemStatus
	if usage, err := s.cpu(ctx, 0, false); err == nil && len(usage) > 0 {
		st.CPUUsage = int(usage[0])
	}
	if ram, err := s.ram(); err == nil {
		st.RAMUsage = int(ram.UsedPercent)
	}
	return st
}

// handleFiles handles GET /api/files.
// A container that fails to parse is listed with its error.
func (s *Service) handleFiles(w http.ResponseWriter, r *http.Request) {
	names, err := s.library.Names()
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	files := make([]FileInfo, 0, len(names))
	for _, name := range names {
		info, err := s.summarize(name)
		if err != nil {
			info.Error = err.Error()
		}
		files = append(files, info)
	}
	s.writeJSON(w, http.StatusOK, FilesResponse{Files: files})
}

// handleFile handles GET /api/files/{name}.
func (s *Service) handleFile(w http.ResponseWriter, r *http.Request) {
	info, err := s.summarize(r.PathValue("name"))
	if err != nil {
		s.writeFailure(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, info)
}

// handleMetadata handles GET /api/files/{name}/metadata.
// Properties keep their wire order in the JSON output.
func (s *Service) handleMetadata(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	tags, err := s.library.Metadata(name)
	if err != nil {
		s.writeFailure(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, MetadataResponse{Name: name, Tags: tags})
}

// summarize builds the API view of name.
func (s *Service) summarize(name string) (FileInfo, error) {
	sum, err := s.library.Summarize(name)
	return FileInfo{Name: name, Summary: sum, Viewers: s.library.Viewers(name)}, err
}

// writeJSON writes a JSON response.
func (s *Service) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func (s *Service) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, ErrorResponse{Error: message})
}

// writeFailure maps library and container errors to a status.
func (s *Service) writeFailure(w http.ResponseWriter, err error) {
	s.writeError(w, media.StatusOf(err), err.Error())
}
