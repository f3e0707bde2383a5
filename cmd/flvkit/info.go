// If you are AI: This file implements the info subcommand.

package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/scott-cotton/cli"

	"flvkit/internal/svc/media"
)

// fileSummary is the JSON shape of one info result.
type fileSummary struct {
	File string `json:"file"`
	media.Summary
}

// info prints a summary of each file.
func info(cfg *InfoConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Info.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: info requires at least one file", cli.ErrUsage)
	}
	conf, err := loadConfig(cfg.ConfigFile, nil)
	if err != nil {
		return err
	}

	var out []fileSummary
	for _, file := range args {
		sum, err := media.Summarize(file, streamOptions(conf)...)
		if err != nil {
			return fmt.Errorf("%s: %w", file, err)
		}
		if cfg.JSON {
			out = append(out, fileSummary{File: file, Summary: sum})
			continue
		}
		fmt.Fprintf(cc.Out, "%s\n", file)
		fmt.Fprintf(cc.Out, "  version   %d\n", sum.Version)
		fmt.Fprintf(cc.Out, "  streams   audio=%t video=%t\n", sum.HasAudio, sum.HasVideo)
		fmt.Fprintf(cc.Out, "  size      %d bytes\n", sum.Size)
		fmt.Fprintf(cc.Out, "  tags      %d (audio %d, video %d, metadata %d, unknown %d)\n",
			sum.Tags, sum.Audio, sum.Video, sum.Metadata, sum.Unknown)
		fmt.Fprintf(cc.Out, "  keyframes %d\n", sum.Keyframes)
		fmt.Fprintf(cc.Out, "  duration  %s\n", time.Duration(sum.DurationMs)*time.Millisecond)
	}
	if cfg.JSON {
		enc := json.NewEncoder(cc.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}
	return nil
}
