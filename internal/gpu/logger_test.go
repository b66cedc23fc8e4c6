package gpu

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestSetLoggerTagsBackend(t *testing.T) {
	t.Cleanup(func() { SetLogger(nil) })

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	slogger().Debug("gpu: frame", "width", 4)

	out := buf.String()
	if !strings.Contains(out, "backend=gpu") || !strings.Contains(out, "width=4") {
		t.Errorf("log output = %q, want backend=gpu and width=4", out)
	}
}

func TestSetLoggerNilDiscards(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	SetLogger(nil)

	l := slogger()
	if l == nil {
		t.Fatal("slogger() returned nil")
	}
	if l.Enabled(t.Context(), slog.LevelError) {
		t.Error("default logger should be disabled")
	}
	l.Error("dropped")
	if buf.Len() != 0 {
		t.Errorf("discarded logger wrote %q", buf.String())
	}
}
