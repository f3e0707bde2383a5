// If you are AI: This file implements the HTTP server lifecycle and routing.
// Health answers on its own port; the API and replay surfaces share the media port.

package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"flvkit/internal/config"
	"flvkit/internal/core/protocol/flv"
	"flvkit/internal/index"
	"flvkit/internal/remux"
	"flvkit/internal/svc/api"
	"flvkit/internal/svc/health"
	"flvkit/internal/svc/httpflv"
	"flvkit/internal/svc/media"
	"flvkit/internal/svc/wsflv"
)

// ShutdownTimeout bounds a graceful shutdown.
const ShutdownTimeout = 5 * time.Second

// Server wraps the HTTP servers and their dependencies.
type Server struct {
	healthServer *http.Server
	mediaServer  *http.Server
	library      *media.Library
	log          *log.Logger
}

// New creates a new server instance with the given configuration.
// ix may be nil, which disables ?start seeking.
// The server is not started until Start is called.
func New(cfg *config.Config, ix *index.Index, logger *log.Logger) (*Server, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	opts, err := remux.OptionsFromConfig(cfg.Remux, cfg.Decode.MaxDepth, logger)
	if err != nil {
		return nil, fmt.Errorf("remux config: %w", err)
	}
	library := media.NewLibrary(cfg.Server.MediaDir, ix, opts,
		flv.WithMaxDepth(cfg.Decode.MaxDepth),
		flv.WithLogger(cfg.Log.DebugLogger()),
	)

	healthSvc := health.New(func() error {
		_, err := os.Stat(cfg.Server.MediaDir)
		return err
	})

	healthMux := http.NewServeMux()
	healthSvc.RegisterRoutes(healthMux)

	mediaMux := http.NewServeMux()
	healthSvc.RegisterRoutes(mediaMux)
	api.NewService(library).RegisterRoutes(mediaMux)
	wsflv.NewService(library).RegisterRoutes(mediaMux)
	httpflv.NewService(library).RegisterRoutes(mediaMux)

	return &Server{
		healthServer: &http.Server{
			Addr:    fmt.Sprintf(":%d", cfg.Server.HealthPort),
			Handler: healthMux,
		},
		mediaServer: &http.Server{
			Addr:    fmt.Sprintf(":%d", cfg.Server.HTTPPort),
			Handler: mediaMux,
		},
		library: library,
		log:     logger,
	}, nil
}

// Handler returns the media port's routes.
func (s *Server) Handler() http.Handler {
	return s.mediaServer.Handler
}

// Start serves both ports and blocks until one of them stops.
// A clean shutdown returns nil.
func (s *Server) Start() error {
	errc := make(chan error, 2)
	for _, srv := range []*http.Server{s.healthServer, s.mediaServer} {
		go func() {
			s.log.Printf("listening on %s", srv.Addr)
			errc <- srv.ListenAndServe()
		}()
	}
	err := <-errc
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown gracefully stops both servers.
// Returns an error if shutdown fails or times out.
func (s *Server) Shutdown(ctx context.Context) error {
	return errors.Join(
		s.healthServer.Shutdown(ctx),
		s.mediaServer.Shutdown(ctx),
	)
}

// ShutdownWithTimeout stops the servers within ShutdownTimeout.
func (s *Server) ShutdownWithTimeout() error {
	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	return s.Shutdown(ctx)
}
