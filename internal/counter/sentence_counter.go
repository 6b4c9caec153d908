package counter

import (
	"log/slog"

	prose "github.com/jdkato/prose/v2"
)

// SentenceCounter counts sentences using prose's statistical segmenter,
// which handles abbreviations and decimal points better than naive
// punctuation splitting.
type SentenceCounter struct{}

// NewSentenceCounter creates a new SentenceCounter instance.
func NewSentenceCounter() Counter {
	return &SentenceCounter{}
}

// Count returns the number of sentences in the given text. Segmentation
// failures are treated as zero sentences rather than surfaced; sentence
// totals are advisory.
func (sc *SentenceCounter) Count(text string) int {
	if text == "" {
		return 0
	}

	// only segmentation is needed; skip tokenization, tagging, and entity extraction
	doc, err := prose.NewDocument(text,
		prose.WithTokenization(false),
		prose.WithTagging(false),
		prose.WithExtraction(false))
	if err != nil {
		slog.Debug("Sentence segmentation failed", "error", err)
		return 0
	}

	sentenceCount := len(doc.Sentences())

	slog.Debug("Sentence total calculated", "textLength", len(text), "sentenceCount", sentenceCount)
	return sentenceCount
}

// Name returns the name of this counting method for logging and debugging.
func (sc *SentenceCounter) Name() string {
	return "sentences"
}
