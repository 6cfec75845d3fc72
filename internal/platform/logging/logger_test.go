package logging

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"go.opentelemetry.io/otel/trace"
)

func TestLogger_WritesJSONFields(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := New(&buf, LevelInfo).Named("usecase.fetch")
	logger.Info("season fetched", "season", 2021, "error", errors.New("boom"))

	var entry map[string]any
	if err := sonic.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("decode log line %q: %v", buf.String(), err)
	}
	if entry["msg"] != "season fetched" {
		t.Fatalf("unexpected msg: %v", entry["msg"])
	}
	if entry["logger"] != "usecase.fetch" {
		t.Fatalf("unexpected logger name: %v", entry["logger"])
	}
	if entry["season"] != float64(2021) {
		t.Fatalf("unexpected season field: %v", entry["season"])
	}
	if entry["error"] != "boom" {
		t.Fatalf("unexpected error field: %v", entry["error"])
	}
}

func TestLogger_RespectsLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := New(&buf, LevelWarn)
	logger.InfoContext(context.Background(), "hidden")
	logger.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info line should be filtered at warn level: %s", out)
	}
	if !strings.Contains(out, "shown") {
		t.Fatalf("warn line missing: %s", out)
	}
}

func TestZapFields_OddArgsAndBadKeys(t *testing.T) {
	t.Parallel()

	fields := zapFields([]any{"team", "Bayern Munich", 42, "value", "dangling"})
	if len(fields) != 3 {
		t.Fatalf("expected 3 fields, got %d", len(fields))
	}
	if fields[1].Key != "arg" {
		t.Fatalf("expected non-string key to become arg, got %q", fields[1].Key)
	}
	if fields[2].Key != "dangling" {
		t.Fatalf("expected dangling key preserved, got %q", fields[2].Key)
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	cases := map[string]Level{
		"debug":   LevelDebug,
		" WARN ":  LevelWarn,
		"warning": LevelWarn,
		"error":   LevelError,
		"":        LevelInfo,
		"verbose": LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q)=%s want %s", in, got, want)
		}
	}
}

func TestNilLoggerFallsBackToDefault(t *testing.T) {
	t.Parallel()

	var logger *Logger
	logger.Info("no panic")
	if logger.With("k", "v") == nil {
		t.Fatalf("expected nop logger from nil receiver")
	}
}

func TestSetMirror_ReceivesEnabledEntriesOnly(t *testing.T) {
	var got []string
	SetMirror(func(_ context.Context, level Level, msg string, args ...any) {
		got = append(got, level.String()+":"+msg)
	})
	t.Cleanup(func() { SetMirror(nil) })

	logger := New(io.Discard, LevelInfo)
	logger.Debug("dropped")
	logger.InfoContext(context.Background(), "dataset written", "rows", 34)
	logger.Warn("skip match document")

	if len(got) != 2 || got[0] != "info:dataset written" || got[1] != "warn:skip match document" {
		t.Fatalf("unexpected mirrored entries: %v", got)
	}
}

func TestLogger_ErrorContextAddsTraceFields(t *testing.T) {
	t.Parallel()

	spanCtx := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    trace.TraceID{0x0a, 0x0b},
		SpanID:     trace.SpanID{0x01},
		TraceFlags: trace.FlagsSampled,
	})
	ctx := trace.ContextWithSpanContext(context.Background(), spanCtx)

	var buf bytes.Buffer
	New(&buf, LevelInfo).ErrorContext(ctx, "command failed", "error", errors.New("no json documents"))

	var entry map[string]any
	if err := sonic.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("decode log line %q: %v", buf.String(), err)
	}
	if entry["level"] != "ERROR" {
		t.Fatalf("unexpected level: %v", entry["level"])
	}
	if entry["trace_id"] != spanCtx.TraceID().String() || entry["span_id"] != spanCtx.SpanID().String() {
		t.Fatalf("trace fields missing: %v", entry)
	}
	if entry["error"] != "no json documents" {
		t.Fatalf("unexpected error field: %v", entry["error"])
	}
}
