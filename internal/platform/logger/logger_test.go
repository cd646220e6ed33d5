package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{in: "DEBUG", want: slog.LevelDebug},
		{in: "info", want: slog.LevelInfo},
		{in: "WARN", want: slog.LevelWarn},
		{in: "ERROR", want: slog.LevelError},
		{in: "verbose", want: slog.LevelError},
		{in: "", want: slog.LevelError},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNew_WritesJSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "INFO")

	log.Debug("hidden")
	log.Info("report generated", "total_requests", 100)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not a single JSON line: %v\n%s", err, buf.String())
	}
	if entry["msg"] != "report generated" {
		t.Errorf("msg = %v, want %q", entry["msg"], "report generated")
	}
	if entry["total_requests"] != float64(100) {
		t.Errorf("total_requests = %v, want 100", entry["total_requests"])
	}
	if _, ok := entry["source"]; !ok {
		t.Error("source location missing")
	}
}
