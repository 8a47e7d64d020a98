// Package report renders user-facing spell-check output: per-mistake
// diagnostic lines, warnings, and the run summary.
package report

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/marlowe/spellsweep/internal/engine"
	"github.com/mattn/go-isatty"
)

// DiagnosticCode identifies a flagged spelling mistake in diagnostic output.
const DiagnosticCode = "SP100"

// Reporter writes diagnostics and summaries to a single output writer.
// Color is enabled only when the writer is a TTY.
type Reporter struct {
	out      io.Writer
	useColor bool
}

// NewReporter creates a Reporter for out, detecting TTY support when out is
// an *os.File.
func NewReporter(out io.Writer) *Reporter {
	return &Reporter{
		out:      out,
		useColor: writerIsTerminal(out),
	}
}

// NewPlainReporter creates a Reporter with color disabled regardless of the
// writer. Used by tests and by --no-color.
func NewPlainReporter(out io.Writer) *Reporter {
	return &Reporter{out: out}
}

// writerIsTerminal reports whether out is a terminal with color support.
func writerIsTerminal(out io.Writer) bool {
	f, ok := out.(*os.File)
	if !ok {
		return false
	}
	if color.NoColor {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Diagnostic writes one flagged sub-word as
// "<path>:<line>:<column>: SP100 spelling mistake '<word>'".
func (r *Reporter) Diagnostic(d engine.Diagnostic) {
	word := d.Word
	if r.useColor {
		word = color.New(color.FgRed, color.Bold).Sprint(word)
	}
	fmt.Fprintf(r.out, "%s:%d:%d: %s spelling mistake '%s'\n",
		d.Path, d.Line, d.Column, DiagnosticCode, word)
}

// Warning writes a standalone warning line. Warnings never affect the run's
// pass/fail outcome.
func (r *Reporter) Warning(message string) {
	line := "WARNING: " + message
	if r.useColor {
		line = color.New(color.FgYellow).Sprint(line)
	}
	fmt.Fprintln(r.out, line)
}

// NotUTF8 writes the warning for a file that failed UTF-8 decoding.
func (r *Reporter) NotUTF8(path string) {
	r.Warning(fmt.Sprintf("%s did not contain valid UTF-8.", path))
}

// SkippedFile writes the warning for a file that could not be opened.
func (r *Reporter) SkippedFile(path string, err error) {
	r.Warning(fmt.Sprintf("%s could not be read: %v", path, err))
}

// Summary writes the run totals. Mistake counts render red when present,
// green when the run is clean.
func (r *Reporter) Summary(files, mistakes int, elapsed time.Duration) {
	verdict := fmt.Sprintf("%d mistakes", mistakes)
	if mistakes == 1 {
		verdict = "1 mistake"
	}
	if r.useColor {
		if mistakes > 0 {
			verdict = color.New(color.FgRed).Sprint(verdict)
		} else {
			verdict = color.New(color.FgGreen).Sprint(verdict)
		}
	}
	fmt.Fprintf(r.out, "checked %d files in %s: %s\n",
		files, elapsed.Round(time.Millisecond), verdict)
}
