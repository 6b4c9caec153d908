// Package normalize provides word-token shaping for frequency tables.
//
// The normalize package applies optional transformations to a completed
// word-mode frequency table: case folding, snowball stemming, stopword
// removal, and count-based selection. Tokens whose keys collide after a
// transformation have their counts summed, so the table invariant (one
// entry per distinct token) is preserved.
package normalize

import (
	"log/slog"
	"strings"

	"github.com/kljensen/snowball"

	"github.com/chriscorrea/tally/internal/freq"
)

// stopwords contains common English function words that carry little
// frequency-analysis signal. Lookup also consults the stemmed form of a
// token, so inflected variants ("being", "having") are caught as well.
var stopwords = map[string]struct{}{
	"a": {}, "about": {}, "after": {}, "all": {}, "also": {},
	"an": {}, "and": {}, "any": {}, "are": {}, "as": {}, "at": {},
	"be": {}, "but": {}, "by": {}, "can": {}, "do": {}, "for": {},
	"from": {}, "had": {}, "has": {}, "have": {}, "he": {}, "her": {},
	"his": {}, "how": {}, "i": {}, "if": {}, "in": {}, "into": {},
	"is": {}, "it": {}, "its": {}, "just": {}, "me": {}, "my": {},
	"no": {}, "not": {}, "of": {}, "on": {}, "or": {}, "out": {},
	"over": {}, "she": {}, "so": {}, "than": {}, "that": {}, "the": {},
	"their": {}, "them": {}, "then": {}, "there": {}, "these": {},
	"they": {}, "this": {}, "to": {}, "up": {}, "was": {}, "we": {},
	"were": {}, "what": {}, "when": {}, "where": {}, "which": {},
	"who": {}, "will": {}, "with": {}, "would": {}, "you": {},
}

// Options selects which transformations to apply. The zero value applies
// none and returns the table unchanged (aside from copying).
type Options struct {
	Lower         bool // fold tokens to lower case before counting collisions
	Stem          bool // reduce tokens to their snowball (English) stem
	DropStopwords bool // remove common English stopwords
	MinCount      int  // drop entries with a count below this (0 = keep all)
	Top           int  // keep only the N highest-count entries (0 = keep all)
}

// Apply returns a new table with the selected transformations applied.
// The input table is not modified.
func Apply(table freq.Table, opts Options) freq.Table {
	result := make(freq.Table, len(table))

	for token, count := range table {
		key := token
		if opts.Lower {
			key = strings.ToLower(key)
		}

		if opts.DropStopwords && isStopword(key) {
			continue
		}

		if opts.Stem {
			// if stemming fails, keep the original token
			if stemmed, err := snowball.Stem(key, "english", true); err == nil && stemmed != "" {
				key = stemmed
			}
		}

		result[key] += count
	}

	if opts.MinCount > 1 {
		for token, count := range result {
			if count < opts.MinCount {
				delete(result, token)
			}
		}
	}

	if opts.Top > 0 && len(result) > opts.Top {
		kept := make(freq.Table, opts.Top)
		for _, entry := range result.Entries()[:opts.Top] {
			kept[entry.Token] = entry.Count
		}
		result = kept
	}

	slog.Debug("Normalization applied", "inputTokens", len(table), "outputTokens", len(result),
		"lower", opts.Lower, "stem", opts.Stem, "dropStopwords", opts.DropStopwords)
	return result
}

// isStopword reports whether a token (or its stem) is a common English stopword.
func isStopword(token string) bool {
	lower := strings.ToLower(token)
	if _, ok := stopwords[lower]; ok {
		return true
	}

	stemmed, err := snowball.Stem(lower, "english", true)
	if err != nil {
		return false
	}
	_, ok := stopwords[stemmed]
	return ok
}
