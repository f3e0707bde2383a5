// If you are AI: This file defines the configuration structure for flvkit.
// It uses strict YAML decoding and explicit defaults.

package config

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"flvkit/internal/core/protocol/amf0"
)

// Config holds the complete flvkit configuration.
// All fields must have explicit defaults or be required.
type Config struct {
	Log    LogConfig    `yaml:"log"`
	Decode DecodeConfig `yaml:"decode"`
	Server ServerConfig `yaml:"server"`
	Index  IndexConfig  `yaml:"index"`
	Remux  RemuxConfig  `yaml:"remux"`
}

// LogConfig defines diagnostic output.
type LogConfig struct {
	Level string `yaml:"level"` // "info" or "debug"
}

// DecodeConfig bounds metadata decoding.
type DecodeConfig struct {
	MaxDepth int `yaml:"max_depth"` // Deepest accepted composite nesting
}

// ServerConfig defines HTTP server settings.
type ServerConfig struct {
	HealthPort int    `yaml:"health_port"` // Port for health endpoint
	HTTPPort   int    `yaml:"http_port"`   // Port for API and replay endpoints
	MediaDir   string `yaml:"media_dir"`   // Directory of served .flv files
}

// IndexConfig locates the keyframe index database.
type IndexConfig struct {
	Path string `yaml:"path"`
}

// RemuxConfig defines the default tag filter and metadata rewrite.
type RemuxConfig struct {
	Filter          string `yaml:"filter,omitempty"`           // Keep tags for which this expression is true
	DropAudio       bool   `yaml:"drop_audio,omitempty"`       // Drop every audio tag
	DropVideo       bool   `yaml:"drop_video,omitempty"`       // Drop every video tag
	MetadataCreator string `yaml:"metadata_creator,omitempty"` // Stamped into onMetaData when set
}

// Load reads configuration from a YAML file.
// Returns an error if the file cannot be read or decoded.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML configuration and applies defaults.
// Empty input yields the defaults.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields

	if err := decoder.Decode(&cfg); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	// Apply defaults
	cfg.setDefaults()

	return &cfg, nil
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	var cfg Config
	cfg.setDefaults()
	return &cfg
}

// setDefaults applies explicit default values to unset fields.
func (c *Config) setDefaults() {
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Decode.MaxDepth == 0 {
		c.Decode.MaxDepth = amf0.DefaultMaxDepth
	}
	if c.Server.HealthPort == 0 {
		c.Server.HealthPort = 8080
	}
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8081
	}
	if c.Server.MediaDir == "" {
		c.Server.MediaDir = "."
	}
	if c.Index.Path == "" {
		c.Index.Path = filepath.Join(os.TempDir(), "flvkit-index.db")
	}
}

// Debug reports whether debug diagnostics are enabled.
func (l LogConfig) Debug() bool {
	return l.Level == "debug"
}

// DebugLogger returns a logger for cursor diagnostics: stderr when debug
// is enabled, a discarding logger otherwise.
func (l LogConfig) DebugLogger() *log.Logger {
	if !l.Debug() {
		return log.New(io.Discard, "", 0)
	}
	return log.New(os.Stderr, "debug: ", log.LstdFlags)
}
