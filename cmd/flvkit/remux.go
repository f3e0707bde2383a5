// If you are AI: This file implements the remux subcommand.

package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/scott-cotton/cli"

	"flvkit/internal/config"
	"flvkit/internal/core/protocol/flv"
	"flvkit/internal/index"
	"flvkit/internal/remux"
)

// remuxFile copies args[0] to args[1] through the remuxer.
func remuxFile(cfg *RemuxConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Remux.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: remux requires an input and an output file, got %v", cli.ErrUsage, args)
	}
	if cfg.Start < 0 {
		return fmt.Errorf("%w: -start must not be negative", cli.ErrUsage)
	}
	conf, err := loadConfig(cfg.ConfigFile, func(c *config.Config) {
		if cfg.Filter != "" {
			c.Remux.Filter = cfg.Filter
		}
		c.Remux.DropAudio = c.Remux.DropAudio || cfg.DropAudio
		c.Remux.DropVideo = c.Remux.DropVideo || cfg.DropVideo
		if cfg.Creator != "" {
			c.Remux.MetadataCreator = cfg.Creator
		}
	})
	if err != nil {
		return err
	}
	logger := log.New(os.Stderr, "flvkit: ", 0)
	opts, err := remux.OptionsFromConfig(conf.Remux, conf.Decode.MaxDepth, logger)
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	opts.Rebase = cfg.Rebase

	in, out := args[0], args[1]
	if cfg.Start > 0 {
		if opts.StartOffset, err = startOffset(conf, in, uint32(cfg.Start)); err != nil {
			return err
		}
	}

	s, err := flv.Open(in, streamOptions(conf)...)
	if err != nil {
		return err
	}
	defer s.Close()

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("%w: %w", flv.ErrOpenWrite, err)
	}
	bw := bufio.NewWriter(f)
	st, err := remux.Remux(context.Background(), s, bw, opts)
	if err == nil {
		err = bw.Flush()
	}
	if cerr := f.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("%w: %w", flv.ErrOpenWrite, cerr)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(cc.Out, "%s: %d tags written, %d dropped, %d metadata, %d bytes\n",
		out, st.Tags, st.Dropped, st.Metadata, st.Bytes)
	return nil
}

// startOffset finds the keyframe to start from through the index database.
func startOffset(conf *config.Config, path string, ms uint32) (int64, error) {
	path, err := filepath.Abs(path)
	if err != nil {
		return 0, err
	}
	ix, err := index.Open(conf.Index.Path, streamOptions(conf)...)
	if err != nil {
		return 0, err
	}
	defer ix.Close()
	if err := ix.Ensure(path); err != nil {
		return 0, err
	}
	e, err := ix.Lookup(path, ms)
	if errors.Is(err, index.ErrNoKeyframe) {
		return 0, nil
	}
	return e.Offset, err
}
