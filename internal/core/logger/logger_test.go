package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
)

func TestInitWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf, slog.LevelInfo, "json")
	t.Cleanup(func() { defaultLogger = nil })

	Debug("hidden")
	ctx := context.WithValue(context.Background(), middleware.RequestIDKey, "req-1")
	InfoContext(ctx, "Batch processed", "rows", 3)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 log line, got %d: %q", len(lines), buf.String())
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if entry["msg"] != "Batch processed" || entry["request_id"] != "req-1" || entry["rows"] != float64(3) {
		t.Errorf("unexpected entry %v", entry)
	}
	if _, ok := entry["trace_id"]; ok {
		t.Error("trace_id set without a span")
	}
}

func TestInitWriter_Text(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf, slog.LevelDebug, "text")
	t.Cleanup(func() { defaultLogger = nil })

	Debug("Row failed", "row", 2)
	if out := buf.String(); !strings.Contains(out, `msg="Row failed"`) || !strings.Contains(out, "row=2") {
		t.Errorf("unexpected text output %q", out)
	}
}
