package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/annalofgren/wishvault-backend/pkg/ratelimit"
)

func loginRequest(email, ip string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{"email":"`+email+`","password":"x"}`))
	r.RemoteAddr = ip + ":51000"
	return r
}

func TestAuthRateLimitBlocksAfterLimit(t *testing.T) {
	policy := NewAuthRateLimitPolicy("login", time.Minute, 3, 3)
	store := ratelimit.NewMemoryStore()

	handler := AuthRateLimit(policy, store, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, loginRequest("anna@example.com", "10.0.0.1"))
		if w.Code != http.StatusOK {
			t.Fatalf("attempt %d should pass, got %d", i+1, w.Code)
		}
	}

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, loginRequest("anna@example.com", "10.0.0.1"))
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("fourth attempt should be throttled, got %d", w.Code)
	}
}

func TestAuthRateLimitIsolatesEmails(t *testing.T) {
	// ip limit high so only the email counter can trip
	policy := NewAuthRateLimitPolicy("login", time.Minute, 100, 2)
	store := ratelimit.NewMemoryStore()

	handler := AuthRateLimit(policy, store, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, loginRequest("anna@example.com", "10.0.0.1"))
		if w.Code != http.StatusOK {
			t.Fatalf("attempt %d should pass, got %d", i+1, w.Code)
		}
	}

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, loginRequest("anna@example.com", "10.0.0.1"))
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("email should be throttled, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, loginRequest("bert@example.com", "10.0.0.1"))
	if w.Code != http.StatusOK {
		t.Fatalf("another email should still pass, got %d", w.Code)
	}
}

func TestAuthRateLimitDisabledPolicyPassesThrough(t *testing.T) {
	policy := NewAuthRateLimitPolicy("login", 0, 0, 0)
	store := ratelimit.NewMemoryStore()

	handler := AuthRateLimit(policy, store, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 20; i++ {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, loginRequest("anna@example.com", "10.0.0.1"))
		if w.Code != http.StatusOK {
			t.Fatalf("disabled policy should never block, got %d", w.Code)
		}
	}
}

func TestAuthRateLimitPreservesBody(t *testing.T) {
	policy := NewAuthRateLimitPolicy("login", time.Minute, 10, 10)
	store := ratelimit.NewMemoryStore()

	var got string
	handler := AuthRateLimit(policy, store, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			t.Fatalf("read body: %v", err)
		}
		got = string(body)
		w.WriteHeader(http.StatusOK)
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, loginRequest("anna@example.com", "10.0.0.1"))

	if !strings.Contains(got, "anna@example.com") {
		t.Fatalf("downstream handler should still see the body, got %q", got)
	}
}
