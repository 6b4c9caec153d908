// Package counter provides whole-document totals for the tally CLI tool.
//
// Unlike the freq package, which counts occurrences per distinct token,
// this package answers "how big is this document" questions: total
// characters, words, sentences, and model tokens (using OpenAI's tiktoken
// with the cl100k_base encoding). These totals back the --summary output.
//
// The package exposes multiple counting strategies through the Counter
// interface, plus a Summarize convenience that runs all of them over a
// single text.
package counter

// Counter defines the interface for different document-total strategies.
type Counter interface {
	// Count returns the number of units (characters, words, sentences, or tokens) in the given text.
	Count(text string) int

	// Name returns a human-readable name for this counting method (for logging)
	Name() string
}

// CountingMethod represents the different available total strategies.
type CountingMethod int

const (
	// Characters counts Unicode code points, including whitespace
	Characters CountingMethod = iota
	// Words counts word-character runs, matching the tokenization used for word frequency tables
	Words
	// Sentences counts sentences using prose segmentation
	Sentences
	// Tokens uses tiktoken with cl100k_base encoding
	Tokens
)

// String returns the string representation of the counting method.
func (cm CountingMethod) String() string {
	switch cm {
	case Characters:
		return "characters"
	case Words:
		return "words"
	case Sentences:
		return "sentences"
	case Tokens:
		return "tokens"
	default:
		return "unknown"
	}
}

// NewCounter creates a new Counter instance based on the specified method.
// Returns an error if the counter cannot be initialized (e.g., tiktoken
// encoding fails to load).
func NewCounter(method CountingMethod) (Counter, error) {
	switch method {
	case Words:
		return NewWordCounter(), nil
	case Sentences:
		return NewSentenceCounter(), nil
	case Tokens:
		return NewTokenCounter()
	default:
		return NewCharCounter(), nil
	}
}

// Summary holds the whole-document totals reported by --summary.
type Summary struct {
	Characters int
	Words      int
	Sentences  int
	Tokens     int
}

// Summarize computes all document totals for the given text. A tiktoken
// initialization failure is the only error condition; character, word, and
// sentence totals never fail.
func Summarize(text string) (Summary, error) {
	summary := Summary{
		Characters: NewCharCounter().Count(text),
		Words:      NewWordCounter().Count(text),
		Sentences:  NewSentenceCounter().Count(text),
	}

	tokenCounter, err := NewTokenCounter()
	if err != nil {
		return summary, err
	}
	summary.Tokens = tokenCounter.Count(text)

	return summary, nil
}
