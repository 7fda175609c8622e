package config

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// SetupLogging configures the global logger for service.
// dev env gets pretty console output, anything else JSON.
func SetupLogging(cfg *Config, service string) {
	SetupLoggingTo(os.Stderr, cfg, service)
}

// SetupLoggingTo is SetupLogging writing to w
func SetupLoggingTo(w io.Writer, cfg *Config, service string) {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerolog.SetGlobalLevel(ParseLogLevel(cfg.LogLevel))

	if cfg.Env == "dev" {
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}).
			With().Timestamp().Str("service", service).Logger()
		return
	}

	log.Logger = zerolog.New(w).
		With().
		Timestamp().
		Str("service", service).
		Logger()
}

// ParseLogLevel converts a string log level to zerolog.Level
func ParseLogLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
