// If you are AI: This file implements the dump subcommand, a line per walker event.

package main

import (
	"fmt"
	"io"

	"github.com/scott-cotton/cli"

	"flvkit/internal/config"
	"flvkit/internal/core/protocol/amf0"
	"flvkit/internal/core/protocol/flv"
)

// dump walks each file and prints its events to cc.Out.
func dump(cfg *DumpConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Dump.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: dump requires at least one file", cli.ErrUsage)
	}
	conf, err := loadConfig(cfg.ConfigFile, func(c *config.Config) {
		if cfg.Debug {
			c.Log.Level = "debug"
		}
	})
	if err != nil {
		return err
	}

	color := !cfg.NoColor && (cfg.Color || isTerminal(cc.Out))
	for i, file := range args {
		if len(args) > 1 {
			if i > 0 {
				fmt.Fprintln(cc.Out)
			}
			fmt.Fprintf(cc.Out, "== %s\n", file)
		}
		if err := flv.Parse(file, eventPrinter(cc.Out, color), streamOptions(conf)...); err != nil {
			return fmt.Errorf("%s: %w", file, err)
		}
	}
	return nil
}

// eventPrinter returns handlers that print one line per event and dump
// metadata values below their tag line.
func eventPrinter(w io.Writer, color bool) flv.Handlers {
	opts := amf0.DumpOptions{Color: color}
	return flv.Handlers{
		Header: func(h flv.Header) error {
			_, err := fmt.Fprintf(w, "header version=%d audio=%t video=%t offset=%d\n",
				h.Version, h.HasAudio(), h.HasVideo(), h.Offset)
			return err
		},
		Tag: func(tag flv.TagHeader) error {
			_, err := fmt.Fprintf(w, "tag type=%s size=%d time=%d stream=%d\n",
				tag.Type, tag.BodyLength, tag.Time(), tag.StreamID)
			return err
		},
		MetadataTag: func(_ flv.TagHeader, name, data amf0.Value) error {
			if err := amf0.Dump(w, name, opts); err != nil {
				return err
			}
			return amf0.Dump(w, data, opts)
		},
		AudioTag: func(_ flv.TagHeader, a flv.AudioTag) error {
			_, err := fmt.Fprintf(w, "  audio format=%d rate=%dHz size=%d type=%d\n",
				a.Format, a.Rate.Hz(), a.Size, a.Type)
			return err
		},
		VideoTag: func(_ flv.TagHeader, v flv.VideoTag) error {
			_, err := fmt.Fprintf(w, "  video frame=%d codec=%d keyframe=%t\n",
				v.FrameType, v.Codec, v.IsKeyframe())
			return err
		},
		PrevTagSize: func(size uint32) error {
			_, err := fmt.Fprintf(w, "size %d\n", size)
			return err
		},
		StreamEnd: func() error {
			_, err := fmt.Fprintln(w, "end")
			return err
		},
	}
}
