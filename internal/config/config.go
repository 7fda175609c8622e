// Package config holds the configuration shared by the showcase server and
// its command line client. Values come from an optional TOML file, then
// environment variables, then command line flags.
package config

import "time"

// Config holds all configuration for the server and the CLI
type Config struct {
	Env      string `toml:"env"`       // "dev" enables console logging
	LogLevel string `toml:"log_level"` // debug, info, warn, error

	Server ServerConfig `toml:"server"`
	Client ClientConfig `toml:"client"`
	Chat   ChatConfig   `toml:"chat"`
}

// ServerConfig configures cmd/server
type ServerConfig struct {
	HTTPAddr    string          `toml:"http_addr"`
	DataDir     string          `toml:"data_dir"`     // JSON documents live here
	DatabaseURL string          `toml:"database_url"` // when set, documents live in Postgres instead
	StaticDir   string          `toml:"static_dir"`   // optional front-end pages
	RateLimit   RateLimitConfig `toml:"rate_limit"`
}

// RateLimitConfig is the per-client token bucket policy
type RateLimitConfig struct {
	WindowSeconds int `toml:"window_seconds"`
	MaxRequests   int `toml:"max_requests"`
	Burst         int `toml:"burst"`
}

// ClientConfig configures cmd/showcasectl
type ClientConfig struct {
	APIBaseURL     string `toml:"api_base_url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Timeout returns the per-request timeout of the HTTP client
func (c ClientConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// ChatConfig configures the assistant
type ChatConfig struct {
	GeminiAPIKey string `toml:"gemini_api_key"`
	Model        string `toml:"model"`
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Env:      "dev",
		LogLevel: "info",
		Server: ServerConfig{
			HTTPAddr: ":5000",
			DataDir:  "data",
			RateLimit: RateLimitConfig{
				WindowSeconds: 60,
				MaxRequests:   600,
				Burst:         120,
			},
		},
		Client: ClientConfig{
			APIBaseURL:     "http://localhost:5000",
			TimeoutSeconds: 10,
		},
	}
}

// ValidateServer checks the settings cmd/server depends on
func (c *Config) ValidateServer() error {
	if c.Server.HTTPAddr == "" {
		return ErrMissingHTTPAddr
	}
	if c.Server.DatabaseURL == "" && c.Server.DataDir == "" {
		return ErrMissingDataDir
	}
	rl := c.Server.RateLimit
	if rl.WindowSeconds <= 0 || rl.MaxRequests <= 0 || rl.Burst <= 0 {
		return ErrInvalidRateLimit
	}
	return nil
}

// ValidateClient checks the settings cmd/showcasectl depends on
func (c *Config) ValidateClient() error {
	if c.Client.APIBaseURL == "" {
		return ErrMissingAPIBaseURL
	}
	return nil
}
