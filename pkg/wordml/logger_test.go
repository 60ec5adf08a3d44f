package wordml

import (
	"bytes"
	"strings"
	"testing"
)

func TestLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, LogWarn)

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message")

	out := buf.String()
	if strings.Contains(out, "debug message") || strings.Contains(out, "info message") {
		t.Errorf("messages below WARN leaked through: %q", out)
	}
	if !strings.Contains(out, "warn message") || !strings.Contains(out, "error message") {
		t.Errorf("expected warn and error messages, got %q", out)
	}
}

func TestLoggerWithField(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, LogInfo).WithField("part", "document.xml")

	logger.Info("parsed %d paragraphs", 3)

	out := buf.String()
	if !strings.Contains(out, "parsed 3 paragraphs") {
		t.Errorf("formatted message missing from %q", out)
	}
	if !strings.Contains(out, "part=document.xml") {
		t.Errorf("context field missing from %q", out)
	}
}

func TestLoggerOff(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, LogOff)
	logger.Error("should not appear")
	if buf.Len() != 0 {
		t.Errorf("LogOff still wrote output: %q", buf.String())
	}
}

func TestSetLoggerIgnoresNil(t *testing.T) {
	orig := GetLogger()
	defer SetLogger(orig)

	SetLogger(nil)
	if GetLogger() == nil {
		t.Fatal("nil logger installed")
	}

	replacement := NewLogger(&bytes.Buffer{}, LogDebug)
	SetLogger(replacement)
	if GetLogger() != replacement {
		t.Error("replacement logger not installed")
	}
}
