// Package config provides configuration management for the InkStudio
// CLI. Values are merged from defaults, an optional YAML file,
// INKSTUDIO_ environment variables and command-line flags.
package config

import (
	"time"

	"github.com/inkworks-labs/inkstudio/internal/generation"
	"github.com/inkworks-labs/inkstudio/internal/studio"
	"github.com/inkworks-labs/inkstudio/internal/tattoo"
)

// BackendConfig selects the tattoo generation backend.
type BackendConfig struct {
	// BaseURL of an external backend. Ignored when a Gemini API key is
	// configured, which mounts the bundled backend instead.
	BaseURL string `koanf:"base_url"`
}

// GeminiConfig holds credentials for the bundled generation backend.
type GeminiConfig struct {
	APIKey string `koanf:"api_key"`
	Model  string `koanf:"model"`
}

// ServerConfig holds the web server options.
type ServerConfig struct {
	Port          int           `koanf:"port"`
	AutoOpen      bool          `koanf:"auto_open"`
	Watch         bool          `koanf:"watch"`
	SessionSecret string        `koanf:"session_secret"`
	SessionTTL    time.Duration `koanf:"session_ttl"`
}

// Config holds all CLI configuration options.
type Config struct {
	Verbose bool           `koanf:"verbose"`
	Server  *ServerConfig  `koanf:"server"`
	Backend *BackendConfig `koanf:"backend"`
	Gemini  *GeminiConfig  `koanf:"gemini"`
}

// Default configuration values.
const (
	DefaultPort = 8742
)

// GetServerConfig returns the server config with defaults applied for
// any unset values.
func (c *Config) GetServerConfig() *ServerConfig {
	srv := c.Server
	if srv == nil {
		srv = &ServerConfig{AutoOpen: true, Watch: true}
	}
	if srv.Port == 0 {
		srv.Port = DefaultPort
	}
	if srv.SessionTTL == 0 {
		srv.SessionTTL = studio.DefaultSessionTTL
	}
	return srv
}

// GetBackendConfig returns the backend config with defaults applied.
func (c *Config) GetBackendConfig() *BackendConfig {
	b := c.Backend
	if b == nil {
		b = &BackendConfig{}
	}
	if b.BaseURL == "" {
		b.BaseURL = tattoo.DefaultBaseURL
	}
	return b
}

// GetGeminiConfig returns the Gemini config with defaults applied.
func (c *Config) GetGeminiConfig() *GeminiConfig {
	g := c.Gemini
	if g == nil {
		g = &GeminiConfig{}
	}
	if g.Model == "" {
		g.Model = generation.DefaultModel
	}
	return g
}
