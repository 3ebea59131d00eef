package shared

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestGenerateState(t *testing.T) {
	seen := make(map[string]bool)
	for range 50 {
		state := GenerateState()
		if state == "" {
			t.Fatal("expected a non-empty state")
		}
		if seen[state] {
			t.Fatalf("state %s repeated", state)
		}
		seen[state] = true
	}
}

func TestOpenBrowser(t *testing.T) {
	orig := getRuntime
	getRuntime = func() string { return "plan9" }
	defer func() { getRuntime = orig }()

	if err := OpenBrowser("http://example.com"); err == nil {
		t.Error("expected an error on an unsupported platform")
	}
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf)

	logger.Info("hello", "key", "value")
	if got := buf.String(); !strings.Contains(got, "hello") || !strings.Contains(got, "value") {
		t.Errorf("unexpected log output %q", got)
	}

	buf.Reset()
	SetLogLevel(logger, log.ErrorLevel)
	logger.Info("suppressed")
	if buf.Len() != 0 {
		t.Errorf("expected info to be suppressed, got %q", buf.String())
	}

	child := WithLogger(logger, "component", "test")
	child.Error("boom")
	if !strings.Contains(buf.String(), "component") {
		t.Errorf("expected child logger context, got %q", buf.String())
	}
}
