package ui

import (
	"bytes"
	"strings"
	"testing"
)

func TestInfoVerbose(t *testing.T) {
	tests := []struct {
		name           string
		verbose        bool
		format         string
		args           []interface{}
		expectOutput   bool
		expectedSubstr string
	}{
		{
			name:           "verbose enabled - should output",
			verbose:        true,
			format:         "test message: %s",
			args:           []interface{}{"hello"},
			expectOutput:   true,
			expectedSubstr: "test message: hello",
		},
		{
			name:         "verbose disabled - should not output",
			verbose:      false,
			format:       "test message: %s",
			args:         []interface{}{"hello"},
			expectOutput: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := NewLoggerWithWriter(tt.verbose, false, buf)

			logger.InfoVerbose(tt.format, tt.args...)

			output := buf.String()
			if tt.expectOutput {
				if !strings.Contains(output, tt.expectedSubstr) {
					t.Errorf("expected output to contain %q, got %q", tt.expectedSubstr, output)
				}
			} else {
				if output != "" {
					t.Errorf("expected no output, got %q", output)
				}
			}
		})
	}
}

func TestLoggerBasicFunctions(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewLoggerWithWriter(false, false, buf)

	logger.Info("info %d", 1)
	logger.Success("success")
	logger.Warning("warning")
	logger.Error("error")
	logger.Title("title")

	output := buf.String()
	for _, want := range []string{"info 1", "success", "warning", "error", "title"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected output to contain %q, got %q", want, output)
		}
	}
	if strings.Contains(output, "\033[") {
		t.Errorf("expected no ANSI escapes with color disabled, got %q", output)
	}
}

func TestLoggerColorOutput(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewLoggerWithWriter(false, true, buf)

	logger.Error("boom")

	if !strings.Contains(buf.String(), colorRed) {
		t.Errorf("expected red escape code in output, got %q", buf.String())
	}
}

func TestNilLogger(t *testing.T) {
	// Should not panic with nil logger
	var logger *Logger
	logger.Info("test message")
	logger.InfoVerbose("test message")
	logger.Error("test message")
	logger.SetVerbose(true)
}

func TestSetVerbose(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewLoggerWithWriter(false, false, buf)

	logger.InfoVerbose("hidden")
	logger.SetVerbose(true)
	logger.InfoVerbose("shown")

	output := buf.String()
	if strings.Contains(output, "hidden") {
		t.Errorf("expected verbose-off message to be suppressed, got %q", output)
	}
	if !strings.Contains(output, "shown") {
		t.Errorf("expected verbose-on message to appear, got %q", output)
	}
}
