package logging

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"go.opentelemetry.io/otel/trace"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()

	line := strings.TrimSpace(buf.String())
	if line == "" {
		t.Fatalf("expected a log line")
	}
	var out map[string]any
	if err := sonic.UnmarshalString(line, &out); err != nil {
		t.Fatalf("decode log line %q: %v", line, err)
	}
	return out
}

func TestLogger_WritesBaseAndKeyValueFields(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Level: LevelInfo, Service: "aoc-leaderboard", Env: "dev", Output: &buf})

	logger.Named("leaderboard").Warn("profile lookup failed", "local_id", "abc", "error", errors.New("boom"))

	line := decodeLine(t, &buf)
	if line["service"] != "aoc-leaderboard" || line["env"] != "dev" {
		t.Fatalf("missing base fields: %v", line)
	}
	if line["component"] != "leaderboard" {
		t.Fatalf("missing component: %v", line)
	}
	if line["local_id"] != "abc" || line["error"] != "boom" {
		t.Fatalf("missing key/value fields: %v", line)
	}
	if line["level"] != "WARN" {
		t.Fatalf("unexpected level: %v", line["level"])
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Level: LevelWarn, Output: &buf})

	logger.Info("dropped")
	if buf.Len() != 0 {
		t.Fatalf("expected info entry to be filtered, got %q", buf.String())
	}
}

func TestLogger_ContextAddsTraceIDs(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Level: LevelDebug, Output: &buf})

	traceID, _ := trace.TraceIDFromHex("0123456789abcdef0123456789abcdef")
	spanID, _ := trace.SpanIDFromHex("0123456789abcdef")
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	}))

	logger.InfoContext(ctx, "cache miss", "key", "leaderboard_2023")

	line := decodeLine(t, &buf)
	if line["trace_id"] != traceID.String() || line["span_id"] != spanID.String() {
		t.Fatalf("missing trace fields: %v", line)
	}
}

func TestLogger_OddArgsKeepsDanglingKey(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Level: LevelInfo, Output: &buf})

	logger.Info("odd", "dangling")

	line := decodeLine(t, &buf)
	if _, ok := line["dangling"]; !ok {
		t.Fatalf("expected dangling key, got %v", line)
	}
}

func TestDefault_NilFallsBackToNop(t *testing.T) {
	SetDefault(nil)
	if Default() == nil {
		t.Fatalf("expected non-nil default logger")
	}

	var nilLogger *Logger
	nilLogger.Info("no panic")
}
