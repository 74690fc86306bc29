package logger

import (
	"log/slog"
	"testing"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		level    string
		format   string
		expected slog.Level
	}{
		{"debug", "json", slog.LevelDebug},
		{"info", "json", slog.LevelInfo},
		{"warn", "text", slog.LevelWarn},
		{"error", "text", slog.LevelError},
		{"invalid", "json", slog.LevelInfo}, // Defaults to info
		{"", "", slog.LevelInfo},            // Defaults to info + JSON
	}

	for _, tt := range tests {
		t.Run(tt.level+"/"+tt.format, func(t *testing.T) {
			log := New(tt.level, tt.format)
			if log == nil {
				t.Fatal("expected non-nil logger")
			}
			if got := parseLevel(tt.level); got != tt.expected {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.level, got, tt.expected)
			}
		})
	}
}
