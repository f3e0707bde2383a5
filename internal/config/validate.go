// If you are AI: This file validates configuration values and returns descriptive errors.

package config

import (
	"fmt"
)

// Validate checks that all configuration values are within acceptable ranges.
// Returns an error describing the first validation failure found.
func (c *Config) Validate() error {
	if c.Log.Level != "info" && c.Log.Level != "debug" {
		return fmt.Errorf("log config: level must be info or debug, got %q", c.Log.Level)
	}
	if c.Decode.MaxDepth < 1 {
		return fmt.Errorf("decode config: max_depth must be positive, got %d", c.Decode.MaxDepth)
	}
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("server config: %w", err)
	}
	if c.Remux.DropAudio && c.Remux.DropVideo {
		return fmt.Errorf("remux config: drop_audio and drop_video cannot both be set")
	}
	return nil
}

// Validate checks server configuration values.
func (s *ServerConfig) Validate() error {
	if s.HealthPort <= 0 || s.HealthPort > 65535 {
		return fmt.Errorf("health_port must be between 1 and 65535, got %d", s.HealthPort)
	}
	if s.HTTPPort <= 0 || s.HTTPPort > 65535 {
		return fmt.Errorf("http_port must be between 1 and 65535, got %d", s.HTTPPort)
	}
	if s.HealthPort == s.HTTPPort {
		return fmt.Errorf("health_port and http_port must be different, both are %d", s.HealthPort)
	}
	if s.MediaDir == "" {
		return fmt.Errorf("media_dir must be set")
	}
	return nil
}
