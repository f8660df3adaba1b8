package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestSlogAdapter(t *testing.T) {
	var buf bytes.Buffer
	handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})

	var logger Logger = NewSlogAdapter(slog.New(handler))
	logger.Info("info message", "key", 1)
	logger.Warn("warn message")
	logger.Error("error message")
	logger.Debug("debug message")

	out := buf.String()
	for _, want := range []string{"level=INFO msg=\"info message\" key=1", "level=WARN", "level=ERROR", "level=DEBUG"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q does not contain %q", out, want)
		}
	}
}

func TestNewSlogAdapter_NilLogger(t *testing.T) {
	if NewSlogAdapter(nil).logger == nil {
		t.Error("nil logger should fall back to slog.Default()")
	}
}
