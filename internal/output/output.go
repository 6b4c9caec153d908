// Package output renders completed frequency tables for display or export.
//
// Rendering is deliberately separate from counting: the core produces an
// unordered table, and this package imposes a deterministic ordering
// (count descending, token ascending) and a textual shape on it. Three
// formats are supported: aligned text columns, JSON, and CSV.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"text/tabwriter"
	"unicode"

	"github.com/chriscorrea/tally/internal/freq"
)

// Format defines the output format for a rendered table.
type Format int

const (
	// aligned text columns (default)
	Text Format = iota
	// JSON array of token/count pairs
	JSON
	// CSV with a header row
	CSV
)

// String returns the string representation of the output format.
func (f Format) String() string {
	switch f {
	case Text:
		return "text"
	case JSON:
		return "JSON"
	case CSV:
		return "CSV"
	default:
		return "unknown"
	}
}

// entryJSON is the serialized shape of a single table entry.
type entryJSON struct {
	Token string `json:"token"`
	Count int    `json:"count"`
}

// Render produces a textual rendering of the table in the given format.
// Entries are ordered by count (highest first), ties broken by token.
func Render(table freq.Table, format Format) (string, error) {
	entries := table.Entries()
	slog.Debug("Rendering frequency table", "format", format.String(), "entries", len(entries))

	switch format {
	case JSON:
		return renderJSON(entries)
	case CSV:
		return renderCSV(entries)
	default:
		return renderText(entries, table.Total()), nil
	}
}

// renderText writes aligned columns: count, relative frequency, token.
func renderText(entries []freq.Entry, total int) string {
	if len(entries) == 0 {
		return ""
	}

	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', tabwriter.AlignRight)

	for _, entry := range entries {
		share := 0.0
		if total > 0 {
			// relative frequency: count over total token occurrences
			share = float64(entry.Count) / float64(total) * 100
		}
		fmt.Fprintf(w, "%d\t%.1f%%\t %s\n", entry.Count, share, displayToken(entry.Token))
	}

	w.Flush()
	return sb.String()
}

// renderJSON marshals entries as an ordered JSON array.
func renderJSON(entries []freq.Entry) (string, error) {
	out := make([]entryJSON, 0, len(entries))
	for _, entry := range entries {
		out = append(out, entryJSON{Token: entry.Token, Count: entry.Count})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal table to JSON: %w", err)
	}
	return string(data) + "\n", nil
}

// renderCSV writes a header row followed by one record per entry.
func renderCSV(entries []freq.Entry) (string, error) {
	var sb strings.Builder
	w := csv.NewWriter(&sb)

	if err := w.Write([]string{"token", "count"}); err != nil {
		return "", fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, entry := range entries {
		if err := w.Write([]string{entry.Token, strconv.Itoa(entry.Count)}); err != nil {
			return "", fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("failed to render CSV: %w", err)
	}
	return sb.String(), nil
}

// displayToken makes whitespace and control tokens visible in text output.
// Char-mode tables routinely contain a space or tab token; printed raw they
// would be indistinguishable from column padding.
func displayToken(token string) string {
	if token == "" {
		return `""`
	}
	for _, r := range token {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return strconv.Quote(token)
		}
	}
	return token
}
