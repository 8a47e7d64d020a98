// Package engine implements the per-file spell check: a single streaming
// pass that assembles tokens from word characters, tracks line and column
// positions, and flags sub-words the dictionary rejects.
package engine

import (
	"bufio"
	"io"
	"os"
	"unicode/utf8"

	"github.com/marlowe/spellsweep/internal/dictionary"
)

// ResultKind classifies the outcome of checking one file.
type ResultKind int

const (
	// Clean means no flagged sub-words were found.
	Clean ResultKind = iota
	// Misspelled means at least one sub-word was flagged.
	Misspelled
	// NotUTF8 means the file's content was not valid UTF-8. Reported as a
	// warning upstream, never as a mistake.
	NotUTF8
	// IOError means the file could not be opened or read. The file is
	// skipped with a warning and the run continues.
	IOError
)

// Diagnostic locates one flagged sub-word. Line and Column are 1-based;
// Column points at the sub-word's first character.
type Diagnostic struct {
	Path   string
	Line   int
	Column int
	Word   string
}

// Result is the outcome of checking a single file. Diagnostics carries every
// flagged sub-word across the whole file, not just the first. Err is set
// only for IOError results.
type Result struct {
	Path        string
	Kind        ResultKind
	Diagnostics []Diagnostic
	Err         error
}

// Checker runs per-file checks against a shared read-only dictionary. It is
// safe for concurrent use: checks hold no state between files and the
// dictionary is never mutated.
type Checker struct {
	dict *dictionary.Dictionary
}

// New returns a Checker backed by dict.
func New(dict *dictionary.Dictionary) *Checker {
	return &Checker{dict: dict}
}

// CheckFile opens and checks one file. An unopenable file yields an IOError
// result without inspecting content; invalid UTF-8 yields a NotUTF8 result
// and discards any partial diagnostics for the file.
func (c *Checker) CheckFile(path string) Result {
	f, err := os.Open(path)
	if err != nil {
		return Result{Path: path, Kind: IOError, Err: err}
	}
	defer f.Close()

	return c.checkStream(path, bufio.NewReader(f))
}

// checkStream consumes the decoded character stream, maintaining a running
// token buffer and line/column counters. A token closes on the first
// non-word character after it, or at end of stream.
func (c *Checker) checkStream(path string, r *bufio.Reader) Result {
	var (
		diags []Diagnostic
		token []rune
		line  = 1
		col   = 0
	)

	// closeToken runs the splitter on the buffered token. closeCol is the
	// column just past the token's last character (the delimiter's column,
	// or one past end of line at EOF), so the token starts at closeCol
	// minus its length.
	closeToken := func(closeCol int) {
		start := closeCol - len(token)
		for _, f := range splitToken(token, c.dict.Words) {
			diags = append(diags, Diagnostic{
				Path:   path,
				Line:   line,
				Column: start + f.offset,
				Word:   f.word,
			})
		}
		token = token[:0]
	}

	for {
		ch, size, err := r.ReadRune()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Result{Path: path, Kind: IOError, Err: err}
		}
		if ch == utf8.RuneError && size == 1 {
			return Result{Path: path, Kind: NotUTF8}
		}

		col++
		if c.dict.IsWordRune(ch) {
			token = append(token, ch)
			continue
		}
		if len(token) > 0 {
			closeToken(col)
		}
		if ch == '\n' {
			// The token close above already measured against the
			// pre-reset column.
			line++
			col = 0
		}
	}

	if len(token) > 0 {
		closeToken(col + 1)
	}

	if len(diags) > 0 {
		return Result{Path: path, Kind: Misspelled, Diagnostics: diags}
	}
	return Result{Path: path, Kind: Clean}
}
