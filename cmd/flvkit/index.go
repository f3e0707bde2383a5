// If you are AI: This file implements the index subcommand.

package main

import (
	"fmt"
	"path/filepath"

	"github.com/scott-cotton/cli"

	"flvkit/internal/index"
)

// indexFiles builds or refreshes the keyframe index of each file.
func indexFiles(cfg *IndexConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Index.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: index requires at least one file", cli.ErrUsage)
	}
	conf, err := loadConfig(cfg.ConfigFile, nil)
	if err != nil {
		return err
	}
	ix, err := index.Open(conf.Index.Path, streamOptions(conf)...)
	if err != nil {
		return err
	}
	defer ix.Close()

	for _, file := range args {
		// keys must match the paths serve looks up
		path, err := filepath.Abs(file)
		if err != nil {
			return err
		}
		entries, err := ix.Build(path)
		if err != nil {
			return err
		}
		fmt.Fprintf(cc.Out, "%s: %d keyframes\n", file, len(entries))
		if !cfg.List {
			continue
		}
		for _, e := range entries {
			fmt.Fprintf(cc.Out, "  %10d ms  offset %d\n", e.Timestamp, e.Offset)
		}
	}
	return nil
}
