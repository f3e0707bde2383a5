// If you are AI: This file rewrites onMetaData script bodies during a remux.
// Bodies that do not decode are passed through unchanged.

package remux

import (
	"bytes"
	"log"

	"flvkit/internal/core/protocol/amf0"
)

// MetadataName is the script tag name carrying stream properties.
const MetadataName = "onMetaData"

// rewriteMetadata decodes name and payload from body, applies the rewrite
// and re-encodes. On any failure body is returned as is.
func rewriteMetadata(body []byte, opts Options, logger *log.Logger) []byte {
	if opts.MetadataCreator == "" && !opts.DropAudio && !opts.DropVideo {
		return body
	}

	dec := amf0.NewDecoder(amf0.NewBuffer(body), amf0.WithMaxDepth(opts.MaxDepth))
	name, err := dec.Decode()
	if err != nil {
		logger.Printf("remux: keep undecodable metadata name: %v", err)
		return body
	}
	if name != amf0.String(MetadataName) {
		return body
	}
	data, err := dec.Decode()
	if err != nil {
		logger.Printf("remux: keep undecodable metadata: %v", err)
		return body
	}

	props := properties(data)
	if props == nil {
		return body
	}
	if opts.MetadataCreator != "" {
		put(props, "metadatacreator", amf0.String(opts.MetadataCreator))
	}
	if opts.DropAudio {
		put(props, "hasAudio", amf0.Boolean(false))
	}
	if opts.DropVideo {
		put(props, "hasVideo", amf0.Boolean(false))
	}

	var buf bytes.Buffer
	if _, err := amf0.Encode(&buf, name); err != nil {
		return body
	}
	if _, err := amf0.Encode(&buf, data); err != nil {
		logger.Printf("remux: keep original metadata: %v", err)
		return body
	}
	return buf.Bytes()
}

// properties returns the named entries of an object-shaped value.
func properties(v amf0.Value) *amf0.Properties {
	switch v := v.(type) {
	case *amf0.AssociativeArray:
		return &v.Properties
	case *amf0.Object:
		return &v.Properties
	}
	return nil
}

// put replaces the first entry named name or appends one.
func put(p *amf0.Properties, name string, v amf0.Value) {
	if !p.Set(name, v) {
		p.Add(name, v)
	}
}
