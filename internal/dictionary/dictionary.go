// Package dictionary loads the word list a spell-check run validates against
// and derives the two views the engine needs: the set of accepted words and
// the set of characters that may appear inside a token.
package dictionary

import (
	"bufio"
	_ "embed"
	"fmt"
	"os"
	"strings"
	"unicode"
)

//go:embed dictionaries/en.txt
var embeddedEnglish string

// WordSet holds every accepted word, keyed by its lowercase form.
type WordSet map[string]struct{}

// Contains reports whether word is accepted. Comparison is case-insensitive:
// the set is keyed lowercase and the probe is lowered before lookup.
func (ws WordSet) Contains(word string) bool {
	_, ok := ws[strings.ToLower(word)]
	return ok
}

// CharacterSet holds every rune that appeared in a dictionary word, in both
// its original and uppercase forms. It widens tokenization beyond plain
// letters (apostrophes, accented characters) when the word list uses them.
type CharacterSet map[rune]struct{}

// Contains reports whether r is a member of the set.
func (cs CharacterSet) Contains(r rune) bool {
	_, ok := cs[r]
	return ok
}

// Dictionary is the immutable pair of views shared read-only across every
// file check in a run.
type Dictionary struct {
	Words      WordSet
	Characters CharacterSet
}

// IsWordRune reports whether r may form part of a token: any alphabetic rune,
// or any rune appearing in a dictionary word.
func (d *Dictionary) IsWordRune(r rune) bool {
	return unicode.IsLetter(r) || d.Characters.Contains(r)
}

// AddWords merges extra accepted words (typically the configuration's
// allowed-words list) into the dictionary before a run starts.
func (d *Dictionary) AddWords(words []string) {
	for _, word := range words {
		word = strings.TrimSpace(word)
		if word == "" {
			continue
		}
		d.Words[strings.ToLower(word)] = struct{}{}
		addRunes(d.Characters, word)
	}
}

// Load reads a newline-delimited word list from path. A missing or unreadable
// word list is fatal to the run, so the error is returned rather than
// reported as a warning.
func Load(path string) (*Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dictionary %s: %w", path, err)
	}
	defer f.Close()

	dict, err := parse(bufio.NewScanner(f))
	if err != nil {
		return nil, fmt.Errorf("failed to read dictionary %s: %w", path, err)
	}
	return dict, nil
}

// LoadEmbedded returns the dictionary built from the English word list
// compiled into the binary. Used when no dictionary path is configured.
func LoadEmbedded() *Dictionary {
	dict, err := parse(bufio.NewScanner(strings.NewReader(embeddedEnglish)))
	if err != nil {
		// The embedded asset is fixed at build time; a scan failure here
		// would mean a corrupted binary.
		panic(fmt.Sprintf("embedded dictionary unreadable: %v", err))
	}
	return dict
}

// parse consumes one word per line, skipping empty lines. Case is preserved
// for character derivation; word membership is keyed lowercase.
func parse(scanner *bufio.Scanner) (*Dictionary, error) {
	dict := &Dictionary{
		Words:      make(WordSet),
		Characters: make(CharacterSet),
	}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		dict.Words[strings.ToLower(line)] = struct{}{}
		addRunes(dict.Characters, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return dict, nil
}

// addRunes records every rune of word, plus its uppercase form, so that
// tokens written in any casing of a dictionary word stay intact.
func addRunes(cs CharacterSet, word string) {
	for _, r := range word {
		cs[r] = struct{}{}
		cs[unicode.ToUpper(r)] = struct{}{}
	}
}
