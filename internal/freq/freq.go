// Package freq provides frequency table computation for the tally CLI tool.
//
// This package implements the single counting core: it reads line-oriented
// UTF-8 text from an io.Reader and produces a mapping from each distinct
// token to its occurrence count. The token granularity is selected by a
// Mode: individual Unicode code points, word-character runs, or whole lines.
//
// Usage Example:
//
//	table, err := freq.Count(strings.NewReader("aa bb cc bb"), freq.Word)
//	// table["aa"] == 1, table["bb"] == 2, table["cc"] == 1
//
// Decoding is strict: input that is not valid UTF-8 aborts the count with
// an error wrapping ErrInvalidUTF8, and no partial table is returned.
package freq

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

// wordRegex is compiled once at package initialization; it matches maximal
// runs of word characters (Unicode letters, digits, and underscore), the
// Unicode-aware equivalent of \w+
var wordRegex = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// ErrInvalidUTF8 is returned (wrapped) when an input line cannot be decoded
// as valid UTF-8. Malformed input is treated as a data error, never skipped.
var ErrInvalidUTF8 = errors.New("input is not valid UTF-8")

// Mode represents the available token granularities for counting.
type Mode int

const (
	// Word counts maximal runs of word characters (default)
	Word Mode = iota
	// Char counts individual Unicode code points
	Char
	// Line counts whole lines with terminators stripped
	Line
)

// String returns the string representation of the counting mode.
func (m Mode) String() string {
	switch m {
	case Word:
		return "words"
	case Char:
		return "characters"
	case Line:
		return "lines"
	default:
		return "unknown"
	}
}

// Table maps each distinct token to its occurrence count.
// Iteration order of the map is unspecified; use Entries for a
// deterministic ordering.
type Table map[string]int

// Total returns the sum of all counts in the table.
func (t Table) Total() int {
	total := 0
	for _, count := range t {
		total += count
	}
	return total
}

// Merge adds the counts from other into t, summing counts for identical
// tokens. This is the safe combination strategy for tables computed over
// independent inputs (e.g., one table per source file).
func (t Table) Merge(other Table) {
	for token, count := range other {
		t[token] += count
	}
}

// Entry pairs a token with its occurrence count.
type Entry struct {
	Token string
	Count int
}

// Entries returns a snapshot of the table sorted by count (highest first),
// breaking ties by token in ascending byte order. The underlying table is
// not modified.
func (t Table) Entries() []Entry {
	entries := make([]Entry, 0, len(t))
	for token, count := range t {
		entries = append(entries, Entry{Token: token, Count: count})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Token < entries[j].Token
	})

	return entries
}

// Count reads input to exhaustion, one line at a time, and returns the
// completed frequency table for the given mode.
//
// Lines are terminated by "\n" or "\r\n"; the terminator is stripped before
// processing, and a final line without a trailing newline still counts.
// Each line is processed independently; a token never spans two lines.
//
// If any line is not valid UTF-8, Count fails with an error wrapping
// ErrInvalidUTF8 and returns no table. Empty input is not an error and
// yields an empty table.
func Count(input io.Reader, mode Mode) (Table, error) {
	table := make(Table)

	// a bufio.Reader rather than bufio.Scanner: lines have no length cap,
	// so arbitrarily long valid lines count successfully
	reader := bufio.NewReader(input)

	lineNum := 0
	for {
		line, readErr := reader.ReadString('\n')
		if readErr != nil && readErr != io.EOF {
			return nil, fmt.Errorf("failed to read input: %w", readErr)
		}
		if line == "" && readErr == io.EOF {
			break
		}
		lineNum++

		// strip the terminator; a lone \r is not a terminator, so \r is
		// only dropped when it precedes the \n
		if strings.HasSuffix(line, "\n") {
			line = strings.TrimSuffix(line, "\n")
			line = strings.TrimSuffix(line, "\r")
		}

		// validate encoding before any tokenization; malformed input
		// aborts the whole operation with no partial result
		if !utf8.ValidString(line) {
			return nil, fmt.Errorf("line %d: %w", lineNum, ErrInvalidUTF8)
		}

		switch mode {
		case Char:
			for _, r := range line {
				table[string(r)]++
			}
		case Word:
			for _, word := range wordRegex.FindAllString(line, -1) {
				table[word]++
			}
		case Line:
			table[line]++
		default:
			return nil, fmt.Errorf("unknown counting mode: %d", int(mode))
		}

		if readErr == io.EOF {
			break
		}
	}

	slog.Debug("Frequency count completed", "mode", mode.String(), "lines", lineNum, "distinctTokens", len(table))
	return table, nil
}
