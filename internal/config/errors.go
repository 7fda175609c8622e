package config

import "errors"

var (
	// ErrMissingHTTPAddr indicates that the server listen address is empty
	ErrMissingHTTPAddr = errors.New("http_addr is required in configuration")

	// ErrMissingDataDir indicates that neither a data directory nor a database is configured
	ErrMissingDataDir = errors.New("data_dir is required when database_url is not set")

	// ErrMissingAPIBaseURL indicates that the client has no server to talk to
	ErrMissingAPIBaseURL = errors.New("api_base_url is required in configuration")

	// ErrInvalidRateLimit indicates a non-positive rate limit setting
	ErrInvalidRateLimit = errors.New("rate_limit window_seconds, max_requests and burst must be positive")

	// ErrConfigFileNotFound indicates that the config file was not found
	ErrConfigFileNotFound = errors.New("configuration file not found")

	// ErrInvalidConfigFormat indicates that the config file has invalid TOML
	ErrInvalidConfigFormat = errors.New("invalid configuration file format")
)
