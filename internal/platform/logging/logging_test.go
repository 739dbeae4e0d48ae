package logging_test

import (
	"bytes"
	"strings"
	"testing"

	"timelog/internal/platform/logging"
)

func TestNewRespectsLevel(t *testing.T) {
	t.Parallel()
	buf := &bytes.Buffer{}
	logger := logging.New("error", buf)
	logger.Info("hidden")
	logger.Error("shown", "title", "T")
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info line should be filtered at error level: %s", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "title=T") {
		t.Fatalf("expected error line with fields, got %s", out)
	}
}

func TestNewUnknownLevelFallsBackToInfo(t *testing.T) {
	t.Parallel()
	buf := &bytes.Buffer{}
	logger := logging.New("chatty", buf)
	logger.Debug("debug line")
	logger.Info("info line")
	if strings.Contains(buf.String(), "debug line") || !strings.Contains(buf.String(), "info line") {
		t.Fatalf("expected info level fallback, got %s", buf.String())
	}
}
