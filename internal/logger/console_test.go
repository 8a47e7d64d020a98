package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConsoleLoggerLevelFiltering(t *testing.T) {
	tests := []struct {
		name       string
		level      string
		wantLogged []string
		wantHidden []string
	}{
		{
			name:       "default info",
			level:      "",
			wantLogged: []string{"[INFO]", "[WARN]", "[ERROR]"},
			wantHidden: []string{"[TRACE]", "[DEBUG]"},
		},
		{
			name:       "debug shows everything but trace",
			level:      "debug",
			wantLogged: []string{"[DEBUG]", "[INFO]", "[WARN]", "[ERROR]"},
			wantHidden: []string{"[TRACE]"},
		},
		{
			name:       "error only",
			level:      "error",
			wantLogged: []string{"[ERROR]"},
			wantHidden: []string{"[TRACE]", "[DEBUG]", "[INFO]", "[WARN]"},
		},
		{
			name:       "invalid level falls back to info",
			level:      "loud",
			wantLogged: []string{"[INFO]"},
			wantHidden: []string{"[DEBUG]"},
		},
		{
			name:       "level is case-insensitive",
			level:      "WARN",
			wantLogged: []string{"[WARN]", "[ERROR]"},
			wantHidden: []string{"[INFO]"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			cl := NewConsoleLogger(&buf, tt.level)

			cl.LogTrace("trace message")
			cl.LogDebug("debug message")
			cl.LogInfo("info message")
			cl.LogWarn("warn message")
			cl.LogError("error message")

			output := buf.String()
			for _, want := range tt.wantLogged {
				assert.Contains(t, output, want)
			}
			for _, hidden := range tt.wantHidden {
				assert.NotContains(t, output, hidden)
			}
		})
	}
}

func TestConsoleLoggerFormat(t *testing.T) {
	var buf bytes.Buffer
	cl := NewConsoleLogger(&buf, "info")

	cl.LogInfo("checking 3 files")

	line := buf.String()
	assert.True(t, strings.HasSuffix(line, "] [INFO] checking 3 files\n"))
	assert.Regexp(t, `^\[\d{2}:\d{2}:\d{2}\] `, line)
}

func TestConsoleLoggerNilWriter(t *testing.T) {
	cl := NewConsoleLogger(nil, "info")

	// Must not panic.
	cl.LogInfo("into the void")
	cl.LogError("still nothing")
}

func TestNoOpLoggerSatisfiesInterface(t *testing.T) {
	var log Logger = NewNoOpLogger()

	log.LogTrace("a")
	log.LogDebug("b")
	log.LogInfo("c")
	log.LogWarn("d")
	log.LogError("e")
}
