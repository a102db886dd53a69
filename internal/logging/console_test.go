package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  log.Level
	}{
		{"debug", log.DebugLevel},
		{"info", log.InfoLevel},
		{"warn", log.WarnLevel},
		{"warning", log.WarnLevel},
		{"error", log.ErrorLevel},
		{"fatal", log.FatalLevel},
		{"bogus", log.WarnLevel},
		{"", log.WarnLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.want {
				t.Errorf("ParseLevel(%q): got %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseFormatter(t *testing.T) {
	tests := []struct {
		input string
		want  log.Formatter
	}{
		{"text", log.TextFormatter},
		{"json", log.JSONFormatter},
		{"logfmt", log.LogfmtFormatter},
		{"bogus", log.TextFormatter},
		{"", log.TextFormatter},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseFormatter(tt.input); got != tt.want {
				t.Errorf("ParseFormatter(%q): got %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNewWithWriterRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, Options{
		Level:     log.WarnLevel,
		Formatter: log.TextFormatter,
	})

	logger.Debug("hidden message")
	logger.Warn("visible message")

	out := buf.String()
	if strings.Contains(out, "hidden message") {
		t.Error("debug message logged below warn level")
	}
	if !strings.Contains(out, "visible message") {
		t.Errorf("warn message missing from output: %q", out)
	}
}

func TestFromConfig(t *testing.T) {
	logger := FromConfig("debug", "logfmt", true)
	if got := logger.GetLevel(); got != log.DebugLevel {
		t.Errorf("GetLevel: got %v, want %v", got, log.DebugLevel)
	}
}
