// If you are AI: This file handles graceful shutdown orchestration for the server process.

package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// Run starts srv and blocks until ctx ends, SIGINT or SIGTERM arrives, or a
// listener fails. The servers are shut down gracefully before Run returns.
func Run(ctx context.Context, srv *Server) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() { errc <- srv.Start() }()

	select {
	case err := <-errc:
		// one listener failed; stop the other
		_ = srv.ShutdownWithTimeout()
		return err
	case <-ctx.Done():
	}

	srv.log.Printf("shutting down")
	if err := srv.ShutdownWithTimeout(); err != nil {
		return err
	}
	return <-errc
}
