package httpapi

import (
	"net/http/httptest"
	"strconv"
	"testing"
	"time"
)

func TestRateLimiting_429Response(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	srv.RateLimitConfig = RateLimitInfo{
		WindowSeconds: 60,
		MaxRequests:   10, // Very low for testing
		Burst:         2,  // Allow only 2 requests in burst
	}
	router := srv.Routes()

	// Burst is 2, so first 2 should succeed, 3rd should fail with 429
	for i := 1; i <= 3; i++ {
		req := httptest.NewRequest("GET", "/api/tasks", nil)
		req.RemoteAddr = "10.0.0.1:5555"
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		for _, h := range []string{"X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset", "X-RateLimit-Burst"} {
			if rec.Header().Get(h) == "" {
				t.Errorf("Request %d: %s header missing", i, h)
			}
		}

		remaining, _ := strconv.Atoi(rec.Header().Get("X-RateLimit-Remaining"))

		if i <= 2 {
			if rec.Code != 200 {
				t.Errorf("Request %d: Expected 200 (within burst), got %d: %s", i, rec.Code, rec.Body.String())
			}
			if remaining != 2-i {
				t.Errorf("Request %d: Expected remaining=%d, got %d", i, 2-i, remaining)
			}
			continue
		}

		if rec.Code != 429 {
			t.Errorf("Request %d: Expected 429 Too Many Requests, got %d: %s", i, rec.Code, rec.Body.String())
		}
		retryAfter, err := strconv.Atoi(rec.Header().Get("Retry-After"))
		if err != nil || retryAfter < 1 {
			t.Errorf("Retry-After should be an integer >= 1, got %q", rec.Header().Get("Retry-After"))
		}
	}
}

func TestRateLimiting_PerClient(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	srv.RateLimitConfig = RateLimitInfo{WindowSeconds: 60, MaxRequests: 10, Burst: 1}
	router := srv.Routes()

	for _, addr := range []string{"10.0.0.1:1", "10.0.0.2:1"} {
		req := httptest.NewRequest("GET", "/api/tasks", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != 200 {
			t.Errorf("client %s: expected 200, got %d", addr, rec.Code)
		}
	}
}

func TestRateLimiting_HealthzNotLimited(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	srv.RateLimitConfig = RateLimitInfo{WindowSeconds: 60, MaxRequests: 1, Burst: 1}
	router := srv.Routes()

	for i := 0; i < 5; i++ {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest("GET", "/healthz", nil))
		if rec.Code != 200 {
			t.Fatalf("healthz request %d: got %d", i, rec.Code)
		}
	}
}

func TestTokenBucket_Refill(t *testing.T) {
	bucket := NewTokenBucket(1, 10) // one token per 100ms

	if ok, _, _, _ := bucket.Allow(); !ok {
		t.Fatal("first request should be allowed")
	}
	if ok, _, _, _ := bucket.Allow(); ok {
		t.Fatal("second immediate request should be limited")
	}

	time.Sleep(150 * time.Millisecond)

	if ok, _, _, _ := bucket.Allow(); !ok {
		t.Error("request after refill should be allowed")
	}
}
