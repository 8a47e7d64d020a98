package report

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/marlowe/spellsweep/internal/engine"
)

func TestDiagnosticFormat(t *testing.T) {
	var buf bytes.Buffer
	rep := NewPlainReporter(&buf)

	rep.Diagnostic(engine.Diagnostic{
		Path:   "src/main.go",
		Line:   3,
		Column: 7,
		Word:   "Wrng",
	})

	assert.Equal(t, "src/main.go:3:7: SP100 spelling mistake 'Wrng'\n", buf.String())
}

func TestWarningFormat(t *testing.T) {
	var buf bytes.Buffer
	rep := NewPlainReporter(&buf)

	rep.NotUTF8("data.bin")
	rep.SkippedFile("gone.txt", errors.New("permission denied"))

	assert.Equal(t,
		"WARNING: data.bin did not contain valid UTF-8.\n"+
			"WARNING: gone.txt could not be read: permission denied\n",
		buf.String())
}

func TestSummaryFormat(t *testing.T) {
	tests := []struct {
		name     string
		files    int
		mistakes int
		want     string
	}{
		{name: "clean", files: 4, mistakes: 0, want: "checked 4 files in 5ms: 0 mistakes\n"},
		{name: "singular", files: 1, mistakes: 1, want: "checked 1 files in 5ms: 1 mistake\n"},
		{name: "plural", files: 9, mistakes: 12, want: "checked 9 files in 5ms: 12 mistakes\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			rep := NewPlainReporter(&buf)

			rep.Summary(tt.files, tt.mistakes, 5*time.Millisecond)

			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestNewReporterBufferIsPlain(t *testing.T) {
	// Non-file writers never get color codes.
	var buf bytes.Buffer
	rep := NewReporter(&buf)

	rep.Diagnostic(engine.Diagnostic{Path: "a", Line: 1, Column: 1, Word: "Glorp"})

	assert.NotContains(t, buf.String(), "\x1b[")
}
