package config

import (
	"fmt"
	"os"
	"strconv"

	toml "github.com/pelletier/go-toml/v2"
)

// Load loads configuration from a TOML file path and applies environment variable overrides.
// An empty path skips the file. Validation is deferred to allow CLI flag overrides to be applied first.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if err := loadFromFile(configPath, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	applyEnvironmentOverrides(cfg)

	// Note: Validation is NOT performed here to allow CLI flags to override
	// Call cfg.ValidateServer() or cfg.ValidateClient() in the caller

	return cfg, nil
}

// loadFromFile decodes the TOML file at path over the defaults in cfg
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrConfigFileNotFound
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfigFormat, err)
	}
	return nil
}

// applyEnvironmentOverrides applies configuration from environment variables
func applyEnvironmentOverrides(cfg *Config) {
	if env := os.Getenv("ENV"); env != "" {
		cfg.Env = env
	}
	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		cfg.LogLevel = logLevel
	}

	// Server
	if addr := os.Getenv("HTTP_ADDR"); addr != "" {
		cfg.Server.HTTPAddr = addr
	} else if port := os.Getenv("PORT"); port != "" {
		cfg.Server.HTTPAddr = ":" + port
	}
	if dir := os.Getenv("DATA_DIR"); dir != "" {
		cfg.Server.DataDir = dir
	}
	if url := os.Getenv("DATABASE_URL"); url != "" {
		cfg.Server.DatabaseURL = url
	}
	if dir := os.Getenv("STATIC_DIR"); dir != "" {
		cfg.Server.StaticDir = dir
	}
	envInt("RATE_LIMIT_WINDOW_SECONDS", &cfg.Server.RateLimit.WindowSeconds)
	envInt("RATE_LIMIT_MAX_REQUESTS", &cfg.Server.RateLimit.MaxRequests)
	envInt("RATE_LIMIT_BURST", &cfg.Server.RateLimit.Burst)

	// Client
	if apiURL := os.Getenv("SHOWCASE_API_URL"); apiURL != "" {
		cfg.Client.APIBaseURL = apiURL
	}
	envInt("SHOWCASE_TIMEOUT_SECONDS", &cfg.Client.TimeoutSeconds)

	// Chat
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		cfg.Chat.GeminiAPIKey = key
	}
	if model := os.Getenv("GEMINI_MODEL"); model != "" {
		cfg.Chat.Model = model
	}
}

// envInt overwrites *dst with the integer value of key when it parses
func envInt(key string, dst *int) {
	v := os.Getenv(key)
	if v == "" {
		return
	}
	if n, err := strconv.Atoi(v); err == nil {
		*dst = n
	}
}
