package engine

import (
	"unicode"

	"github.com/marlowe/spellsweep/internal/dictionary"
)

// flaggedWord is a sub-word the dictionary rejected, with its rune offset
// inside the token it came from.
type flaggedWord struct {
	word   string
	offset int
}

// wordIsFlagged reports whether a sub-word is a mistake: its lowercase form
// is absent from the word set and it is longer than three runes. Short words
// and abbreviations are never flagged.
func wordIsFlagged(word []rune, words dictionary.WordSet) bool {
	return len(word) > 3 && !words.Contains(string(word))
}

// splitToken decomposes a compound token into its casing-delimited sub-words
// and checks each against the word set. A token like "ABCMethod" contains the
// sub-words "ABC" and "Method"; "leftRight" contains "left" and "Right".
//
// The decision about what kind of sub-word is being read happens on its
// second character: a lowercase first character followed by an uppercase one
// makes the first character a complete single-letter sub-word (exempt from
// checking); two uppercase characters open an acronym run; a lowercase second
// character means a normal word, closed by the next uppercase character.
func splitToken(token []rune, words dictionary.WordSet) []flaggedWord {
	var flags []flaggedWord
	var word []rune
	wordStart := 0
	newWordOnUpper := false
	isAcronym := false

	closeWord := func() {
		if wordIsFlagged(word, words) {
			flags = append(flags, flaggedWord{word: string(word), offset: wordStart})
		}
	}

	for i, r := range token {
		isUpper := unicode.IsUpper(r)

		switch {
		case len(word) == 0:
			wordStart = i
			word = append(word, r)

		case len(word) == 1:
			if unicode.IsLower(word[0]) && isUpper {
				// Single-character sub-word; not spell-checked.
				word = word[:0]
				wordStart = i
			} else if isUpper {
				isAcronym = true
			} else {
				newWordOnUpper = true
			}
			word = append(word, r)

		case newWordOnUpper && isUpper:
			closeWord()
			word = word[:0]
			newWordOnUpper = false
			wordStart = i
			word = append(word, r)

		case isAcronym && !isUpper:
			// The run was an acronym followed by the first letter of a new
			// capitalized word: in "ABCMethod" the 'e' arrives while "ABCM"
			// is buffered. The 'M' belongs to the new word, not the acronym.
			previous := word[len(word)-1]
			word = word[:len(word)-1]
			closeWord()
			word = word[:0]
			wordStart = i - 1
			word = append(word, previous, r)
			isAcronym = false
			newWordOnUpper = true

		default:
			word = append(word, r)
		}
	}

	if len(word) > 0 {
		closeWord()
	}
	return flags
}
