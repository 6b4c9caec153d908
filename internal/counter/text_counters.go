package counter

import (
	"log/slog"
	"regexp"
	"unicode/utf8"
)

// wordRegex matches maximal runs of word characters (Unicode letters,
// digits, underscore) so that the summary's word total agrees with the
// tokenization used for word-mode frequency tables.
var wordRegex = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// CharCounter totals Unicode code points (runes), whitespace included.
// This is the same unit a char-mode frequency table keys on, so the
// summary's character total equals that table's Total.
type CharCounter struct{}

// NewCharCounter creates a new CharCounter instance.
func NewCharCounter() Counter {
	return &CharCounter{}
}

// Count returns the number of runes in the given text.
func (cc *CharCounter) Count(text string) int {
	charCount := utf8.RuneCountInString(text)

	slog.Debug("Character total calculated", "textLength", len(text), "charCount", charCount)
	return charCount
}

// Name returns the name of this counting method for logging and debugging.
func (cc *CharCounter) Name() string {
	return "characters"
}

// WordCounter totals word-character runs, mirroring word-mode tokenization.
type WordCounter struct{}

// NewWordCounter creates a new WordCounter instance.
func NewWordCounter() Counter {
	return &WordCounter{}
}

// Count returns the number of words in the given text.
func (wc *WordCounter) Count(text string) int {
	if text == "" {
		return 0
	}

	wordCount := len(wordRegex.FindAllStringIndex(text, -1))

	slog.Debug("Word total calculated", "textLength", len(text), "wordCount", wordCount)
	return wordCount
}

// Name returns the name of this counting method for logging and debugging.
func (wc *WordCounter) Name() string {
	return "words"
}
