package charmlog

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewLoggerLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := NewLogger(Options{Writer: &buf, Level: "warn"})

	l.Info("hidden")
	l.Warn("shown", "key", "value")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info message logged at warn level: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "key=value") {
		t.Errorf("expected warn message with key/value, got %q", out)
	}
}

func TestNewLoggerInvalidLevelFallsBackToInfo(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := NewLogger(Options{Writer: &buf, Level: "loud"})

	l.Debug("debug")
	l.Info("info")

	out := buf.String()
	if strings.Contains(out, "debug") || !strings.Contains(out, "info") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestNewLoggerPrefix(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	NewLogger(Options{Writer: &buf, Level: "info", Prefix: "todo"}).Info("hello")

	if !strings.Contains(buf.String(), "todo") {
		t.Errorf("expected prefix in %q", buf.String())
	}
}
