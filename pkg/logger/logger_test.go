package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestInfoIncludesServiceAndFields(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{ServiceName: "wishvault", Level: zerolog.InfoLevel, Output: &buf})

	ctx := log.WithRequestID(context.Background(), "req-123")
	ctx = log.WithUserID(ctx, "user-456")
	log.Info(ctx, "hello")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log output was not JSON: %v", err)
	}
	if entry["service"] != "wishvault" {
		t.Fatalf("expected service field, got %v", entry["service"])
	}
	if entry["request_id"] != "req-123" {
		t.Fatalf("expected request_id field, got %v", entry["request_id"])
	}
	if entry["user_id"] != "user-456" {
		t.Fatalf("expected user_id field, got %v", entry["user_id"])
	}
	if entry["message"] != "hello" {
		t.Fatalf("expected message, got %v", entry["message"])
	}
}

func TestContextFieldsDoNotLeakAcrossContexts(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{ServiceName: "wishvault", Output: &buf})

	withField := log.WithField(context.Background(), "wishlist_id", "wl-1")
	_ = withField

	log.Info(context.Background(), "plain")

	if strings.Contains(buf.String(), "wl-1") {
		t.Fatal("field from a derived context leaked into the base logger")
	}
}

func TestErrorAlwaysCarriesStack(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{ServiceName: "wishvault", Output: &buf})

	log.Error(context.Background(), "boom", errors.New("db down"))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log output was not JSON: %v", err)
	}
	if entry["error"] != "db down" {
		t.Fatalf("expected error field, got %v", entry["error"])
	}
	if stack, _ := entry["stack"].(string); stack == "" {
		t.Fatal("expected stack trace on error logs")
	}
}

func TestWarnStackOptIn(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{ServiceName: "wishvault", WarnStack: true, Output: &buf})

	log.Warn(context.Background(), "careful")

	if !strings.Contains(buf.String(), "stack") {
		t.Fatal("expected stack on warn when WarnStack is set")
	}
}

func TestParseLevel(t *testing.T) {
	if got := ParseLevel("debug"); got != zerolog.DebugLevel {
		t.Fatalf("expected debug, got %v", got)
	}
	if got := ParseLevel("  WARN "); got != zerolog.WarnLevel {
		t.Fatalf("expected warn, got %v", got)
	}
	if got := ParseLevel(""); got != zerolog.InfoLevel {
		t.Fatalf("expected info fallback, got %v", got)
	}
	if got := ParseLevel("bogus"); got != zerolog.InfoLevel {
		t.Fatalf("expected info fallback for bogus input, got %v", got)
	}
}
