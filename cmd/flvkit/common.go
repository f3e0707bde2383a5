// If you are AI: This file holds helpers shared by the subcommands: config loading,
// terminal detection and the mapping from failures to exit codes.

package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"

	"flvkit/internal/config"
	"flvkit/internal/core/protocol/flv"
)

// exitFailure is the exit code of failures that are not container errors.
const exitFailure = 1

// loadConfig reads path, or returns the defaults when path is empty.
// The result is validated after apply has set flag overrides.
func loadConfig(path string, apply func(*config.Config)) (*config.Config, error) {
	cfg := config.Default()
	if path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return nil, err
		}
	}
	if apply != nil {
		apply(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// streamOptions returns the cursor options implied by cfg.
func streamOptions(cfg *config.Config) []flv.Option {
	return []flv.Option{
		flv.WithMaxDepth(cfg.Decode.MaxDepth),
		flv.WithLogger(cfg.Log.DebugLogger()),
	}
}

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

// exit prints err and converts it to an exit code. Container errors exit
// with their result code; usage errors are left to the command runner.
func exit(err error) error {
	if err == nil || errors.Is(err, cli.ErrUsage) {
		return err
	}
	fmt.Fprintf(os.Stderr, "flvkit: %v\n", err)
	return cli.ExitCodeErr(exitCode(err))
}

// exitCode returns the process exit code for err.
func exitCode(err error) int {
	if code := flv.CodeOf(err); code != flv.CodeEOF || errors.Is(err, flv.ErrEOF) {
		return int(code)
	}
	return exitFailure
}
