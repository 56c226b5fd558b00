package log

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/easelhq/easel/internal/config"
)

func TestNewLoggerWithWriterJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, config.LogFormatJSON, "INFO")

	logger.Info("episode imported", "title", "Mountain Majesty", "season", 1)

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}
	if record["msg"] != "episode imported" {
		t.Errorf("msg = %v", record["msg"])
	}
	if record["title"] != "Mountain Majesty" {
		t.Errorf("title = %v", record["title"])
	}
}

func TestNewLoggerWithWriterPretty(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, config.LogFormatPretty, "INFO")

	logger.Info("server started", "port", 8080)

	out := buf.String()
	if !strings.Contains(out, "INF") {
		t.Errorf("missing level label: %q", out)
	}
	if !strings.Contains(out, "server started") {
		t.Errorf("missing message: %q", out)
	}
	if !strings.Contains(out, "port=") {
		t.Errorf("missing attribute: %q", out)
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, config.LogFormatPretty, "WARN")

	logger.Info("should be dropped")
	logger.Warn("should appear")

	out := buf.String()
	if strings.Contains(out, "should be dropped") {
		t.Errorf("info record leaked through WARN level: %q", out)
	}
	if !strings.Contains(out, "should appear") {
		t.Errorf("warn record missing: %q", out)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"DEBUG", slog.LevelDebug},
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"WARNING", slog.LevelWarn},
		{"ERROR", slog.LevelError},
		{"nonsense", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := parseLevel(tt.input); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestWithContext(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, config.LogFormatJSON, "INFO")

	ctx := WithCorrelationID(context.Background(), "corr-123")
	ctx = WithRequestID(ctx, "req-456")

	logger.WithContext(ctx).Info("handled")

	out := buf.String()
	if !strings.Contains(out, "corr-123") {
		t.Errorf("correlation id missing: %q", out)
	}
	if !strings.Contains(out, "req-456") {
		t.Errorf("request id missing: %q", out)
	}
}

func TestWithContextEmpty(t *testing.T) {
	logger := NewLoggerWithWriter(&bytes.Buffer{}, config.LogFormatJSON, "INFO")
	if logger.WithContext(context.Background()) != logger {
		t.Error("empty context should return the same logger")
	}
}

func TestTerminalHandlerQuotesValues(t *testing.T) {
	var buf bytes.Buffer
	h := newTerminalHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})
	logger := slog.New(h)

	logger.Info("msg", "title", "A Walk in the Woods")

	if !strings.Contains(buf.String(), `"A Walk in the Woods"`) {
		t.Errorf("value with spaces should be quoted: %q", buf.String())
	}
}

func TestTerminalHandlerGroups(t *testing.T) {
	var buf bytes.Buffer
	h := newTerminalHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})
	logger := slog.New(h).WithGroup("db")

	logger.Info("query", "rows", 3)

	if !strings.Contains(buf.String(), "db.rows=") {
		t.Errorf("group prefix missing: %q", buf.String())
	}
}
