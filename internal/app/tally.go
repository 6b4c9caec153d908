// Package app contains the core application logic for the tally CLI tool.
// It handles the main business logic separated from CLI concerns.
package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/chriscorrea/tally/internal/counter"
	"github.com/chriscorrea/tally/internal/extract"
	"github.com/chriscorrea/tally/internal/fetch"
	"github.com/chriscorrea/tally/internal/freq"
	"github.com/chriscorrea/tally/internal/normalize"
	"github.com/chriscorrea/tally/internal/output"
	"github.com/chriscorrea/tally/internal/spinner"
)

// Config holds all configuration options for the tally application.
type Config struct {
	Sources      []string          // URLs, file paths, or "-" for stdin
	Mode         freq.Mode         // token granularity (chars/words/lines)
	Selector     string            // CSS selector for content extraction from HTML sources
	OutputFormat output.Format     // output format (text/json/csv)
	Normalize    normalize.Options // word-token shaping (lower/stem/stopwords/min-count/top)
	ShowSummary  bool              // append whole-document totals
	IncludeAll   bool              // include all HTML content without readability filtering
	Quiet        bool              // suppress info messages
	Debug        bool
}

// Run executes the main tally application logic with the given configuration.
//
// Processing Pipeline:
//  1. Fetch each source and reduce HTML sources to readable text
//  2. Count token frequencies per source and merge the tables
//  3. Apply word-token normalization and selection
//  4. Render the merged table (plus optional summary)
//
// A source that cannot be fetched or extracted is skipped with a warning;
// a source whose content is not valid UTF-8 aborts the whole run.
//
// ctx allows for cancellation and timeout control of fetch operations.
func Run(ctx context.Context, cfg Config) (string, error) {
	if len(cfg.Sources) == 0 {
		return "", fmt.Errorf("no sources provided")
	}

	combined := make(freq.Table)
	var combinedText strings.Builder
	processed := 0

	for _, source := range cfg.Sources {
		text, err := readSource(ctx, source, cfg)
		if err != nil {
			if !cfg.Quiet {
				fmt.Fprintf(os.Stderr, "Warning: failed to process source %q: %v\n", source, err)
			}
			continue
		}

		table, err := freq.Count(strings.NewReader(text), cfg.Mode)
		if err != nil {
			// decoding failures are fatal: no partial table is usable
			if errors.Is(err, freq.ErrInvalidUTF8) {
				return "", fmt.Errorf("source %q: %w", source, err)
			}
			return "", fmt.Errorf("failed to count source %q: %w", source, err)
		}

		combined.Merge(table)
		processed++

		if cfg.ShowSummary {
			if combinedText.Len() > 0 {
				combinedText.WriteString("\n\n")
			}
			combinedText.WriteString(text)
		}
	}

	if processed == 0 {
		return "", fmt.Errorf("no content read from any source")
	}

	combined = normalize.Apply(combined, normalizeOptions(cfg))

	rendered, err := output.Render(combined, cfg.OutputFormat)
	if err != nil {
		return "", fmt.Errorf("failed to render table: %w", err)
	}

	if cfg.ShowSummary {
		rendered = appendSummary(rendered, combinedText.String(), cfg)
	}

	return rendered, nil
}

// normalizeOptions restricts token-shaping transformations to word mode;
// folding or stemming char and line tokens would change what they mean.
// Count-based selection (MinCount/Top) applies in every mode.
func normalizeOptions(cfg Config) normalize.Options {
	opts := cfg.Normalize
	if cfg.Mode != freq.Word {
		opts.Lower = false
		opts.Stem = false
		opts.DropStopwords = false
	}
	return opts
}

// readSource fetches one source and reduces it to countable text.
// HTML sources pass through readability/selector extraction first.
func readSource(ctx context.Context, source string, cfg Config) (string, error) {
	isURL := strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")

	// display spinner for network fetches
	var sp *spinner.Spinner
	if isURL && !cfg.Quiet {
		sp = spinner.New(ctx, os.Stderr, fmt.Sprintf("Fetching %s...", source))
		sp.Start()
		defer sp.Stop()
	}

	reader, err := fetch.GetContent(ctx, source)
	if err != nil {
		return "", fmt.Errorf("failed to fetch content: %w", err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("failed to read content: %w", err)
	}

	if !looksLikeHTML(data) {
		return string(data), nil
	}

	// parse source URL for context during readability extraction (if it's a URL)
	var baseURL *url.URL
	if isURL {
		baseURL, _ = url.Parse(source) // ignore parse errors, will use nil
	}

	text, err := extract.ReadableText(bytes.NewReader(data), cfg.Selector, cfg.IncludeAll, baseURL)
	if err != nil {
		return "", fmt.Errorf("failed to extract content: %w", err)
	}

	return text, nil
}

// looksLikeHTML sniffs whether content should go through HTML extraction.
func looksLikeHTML(data []byte) bool {
	if strings.Contains(http.DetectContentType(data), "text/html") {
		return true
	}

	// DetectContentType only inspects a short prefix; also check for
	// document-level tags past any leading comments or whitespace
	head := strings.ToLower(string(data[:min(len(data), 1024)]))
	return strings.Contains(head, "<html") || strings.Contains(head, "<!doctype html")
}

// appendSummary attaches whole-document totals to the rendered table.
// Machine-readable formats (JSON/CSV) must stay parseable, so their
// summary goes to stderr instead of the returned output.
func appendSummary(rendered, text string, cfg Config) string {
	summary, err := counter.Summarize(text)
	if err != nil && !cfg.Quiet {
		fmt.Fprintf(os.Stderr, "Warning: token total unavailable: %v\n", err)
	}

	block := formatSummary(summary, err == nil)
	if cfg.OutputFormat == output.Text {
		return rendered + block
	}

	if !cfg.Quiet {
		fmt.Fprint(os.Stderr, block)
	}
	return rendered
}

// formatSummary renders the totals footer block.
func formatSummary(summary counter.Summary, withTokens bool) string {
	var sb strings.Builder
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "characters: %d\n", summary.Characters)
	fmt.Fprintf(&sb, "words:      %d\n", summary.Words)
	fmt.Fprintf(&sb, "sentences:  %d\n", summary.Sentences)
	if withTokens {
		fmt.Fprintf(&sb, "tokens:     %d (cl100k_base)\n", summary.Tokens)
	}
	return sb.String()
}
