// If you are AI: This file implements the serve subcommand.
// It handles configuration, server startup, and graceful shutdown.

package main

import (
	"context"
	"log"
	"os"

	"github.com/google/gops/agent"
	"github.com/scott-cotton/cli"

	"flvkit/internal/config"
	"flvkit/internal/index"
	"flvkit/internal/server"
)

// serve runs the HTTP surfaces until interrupted.
func serve(cfg *ServeConfig, cc *cli.Context, args []string) error {
	if _, err := cfg.Serve.Parse(cc, args); err != nil {
		return err
	}
	conf, err := loadConfig(cfg.ConfigFile, func(c *config.Config) {
		if cfg.Dir != "" {
			c.Server.MediaDir = cfg.Dir
		}
		if cfg.Port != 0 {
			c.Server.HTTPPort = cfg.Port
		}
		if cfg.HealthPort != 0 {
			c.Server.HealthPort = cfg.HealthPort
		}
	})
	if err != nil {
		return err
	}
	logger := log.New(os.Stderr, "flvkit: ", log.LstdFlags)

	if cfg.Gops {
		if err := agent.Listen(agent.Options{}); err != nil {
			logger.Printf("gops agent failed: %v", err)
		}
		defer agent.Close()
	}

	var ix *index.Index
	if !cfg.NoIndex {
		if ix, err = index.Open(conf.Index.Path, streamOptions(conf)...); err != nil {
			return err
		}
		defer ix.Close()
	}

	srv, err := server.New(conf, ix, logger)
	if err != nil {
		return err
	}
	if err := server.Run(context.Background(), srv); err != nil {
		return err
	}
	logger.Println("server shut down cleanly")
	return nil
}
