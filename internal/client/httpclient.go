package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// DefaultTimeout bounds every request when no timeout is configured
const DefaultTimeout = 10 * time.Second

// HTTPClient wraps http.Client for the showcase API.
// Every request carries a fresh X-Correlation-ID and is logged at debug.
// Requests are never retried: one failed call is one error to the caller.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPClient creates a client for the API rooted at baseURL
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// BaseURL returns the API root the client talks to
func (c *HTTPClient) BaseURL() string { return c.baseURL }

// Do executes req with a correlation ID. Transport failures come back as
// ErrNetwork and 429 answers as ErrRateLimited; other statuses are left to
// the caller.
func (c *HTTPClient) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	correlationID := uuid.New().String()

	logger := log.With().
		Str("method", req.Method).
		Str("url", req.URL.String()).
		Str("correlationId", correlationID).
		Logger()

	req = req.WithContext(ctx)
	req.Header.Set("X-Correlation-ID", correlationID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)

	if err != nil {
		logger.Error().Err(err).Dur("duration", duration).Msg("HTTP request failed")
		return nil, ErrNetwork{Err: err}
	}

	logger.Debug().
		Int("status", resp.StatusCode).
		Dur("duration", duration).
		Msg("HTTP request completed")

	if resp.StatusCode == http.StatusTooManyRequests {
		resp.Body.Close()
		retryAfter := parseRetryAfter(resp.Header.Get("Retry-After"))
		logger.Warn().
			Dur("retryAfter", retryAfter).
			Str("rateLimitRemaining", resp.Header.Get("X-RateLimit-Remaining")).
			Msg("Rate limited")
		return nil, ErrRateLimited{RetryAfter: int(retryAfter.Seconds())}
	}

	return resp, nil
}

// doJSON sends body (if any) as JSON to path and decodes a 2xx answer into
// out (if any). id names the addressed item for ErrNotFound.
func (c *HTTPClient) doJSON(ctx context.Context, method, path, id string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.Do(ctx, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp, id)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return ErrNetwork{Err: fmt.Errorf("failed to decode %s %s response: %w", method, path, err)}
	}
	return nil
}

// statusError turns a non-2xx response into a typed error
func statusError(resp *http.Response, id string) error {
	if resp.StatusCode == http.StatusNotFound && id != "" {
		return ErrNotFound{ID: id}
	}

	var errResp struct {
		Error string `json:"error"`
	}
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err := json.Unmarshal(data, &errResp); err != nil || errResp.Error == "" {
		errResp.Error = strings.TrimSpace(string(data))
	}
	return ErrServer{Status: resp.StatusCode, Message: errResp.Error}
}

// parseRetryAfter parses the Retry-After header
// Supports both integer seconds and HTTP-date format
func parseRetryAfter(value string) time.Duration {
	if value == "" {
		return 0
	}

	if seconds, err := strconv.Atoi(value); err == nil && seconds > 0 {
		return time.Duration(seconds) * time.Second
	}

	if t, err := http.ParseTime(value); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}

	return 0
}

// IsNotFound reports whether err is an ErrNotFound
func IsNotFound(err error) bool {
	var nf ErrNotFound
	return errors.As(err, &nf)
}
