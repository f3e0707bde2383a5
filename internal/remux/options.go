// If you are AI: This file builds remux options from the configuration file section.

package remux

import (
	"log"

	"flvkit/internal/config"
)

// OptionsFromConfig compiles the configured filter and copies the drop and
// rewrite settings. maxDepth bounds metadata decoding.
func OptionsFromConfig(c config.RemuxConfig, maxDepth int, logger *log.Logger) (Options, error) {
	f, err := NewFilter(c.Filter)
	if err != nil {
		return Options{}, err
	}
	return Options{
		Filter:          f,
		DropAudio:       c.DropAudio,
		DropVideo:       c.DropVideo,
		MetadataCreator: c.MetadataCreator,
		MaxDepth:        maxDepth,
		Logger:          logger,
	}, nil
}
