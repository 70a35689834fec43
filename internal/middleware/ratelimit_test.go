package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRateLimiter_AllowsWithinLimit(t *testing.T) {
	rl := NewRateLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		if !rl.allow("10.0.0.1:1234") {
			t.Fatalf("Request %d should be allowed", i+1)
		}
	}
	if rl.allow("10.0.0.1:1234") {
		t.Error("Request over the limit should be blocked")
	}
}

func TestRateLimiter_PerIP(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)

	if !rl.allow("10.0.0.1:1234") {
		t.Fatal("First IP should be allowed")
	}
	if !rl.allow("10.0.0.2:1234") {
		t.Error("A different IP should have its own window")
	}
}

func TestRateLimiter_WindowReset(t *testing.T) {
	rl := NewRateLimiter(1, 10*time.Millisecond)

	if !rl.allow("10.0.0.1:1234") {
		t.Fatal("First request should be allowed")
	}
	if rl.allow("10.0.0.1:1234") {
		t.Fatal("Second request in the window should be blocked")
	}

	time.Sleep(20 * time.Millisecond)

	if !rl.allow("10.0.0.1:1234") {
		t.Error("Request after the window expired should be allowed")
	}
}

func TestRateLimiter_Middleware(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)

	handler := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
	req.RemoteAddr = "10.0.0.1:1234"

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusTooManyRequests {
		t.Fatalf("Expected 429, got %d", rr.Code)
	}
}
