package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chriscorrea/tally/internal/freq"
	"github.com/chriscorrea/tally/internal/normalize"
	"github.com/chriscorrea/tally/internal/output"
)

// writeSource creates a temp file with the given content and returns its path.
func writeSource(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write source file: %v", err)
	}
	return path
}

func TestRunWordMode(t *testing.T) {
	path := writeSource(t, "input.txt", "aa bb cc bb\n")

	result, err := Run(context.Background(), Config{
		Sources:      []string{path},
		Mode:         freq.Word,
		OutputFormat: output.CSV,
		Quiet:        true,
	})
	if err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimRight(result, "\n"), "\n")
	expected := []string{"token,count", "bb,2", "aa,1", "cc,1"}
	if len(lines) != len(expected) {
		t.Fatalf("Run() produced %d lines, want %d:\n%s", len(lines), len(expected), result)
	}
	for i, want := range expected {
		if lines[i] != want {
			t.Errorf("line %d = %q, want %q", i, lines[i], want)
		}
	}
}

func TestRunMergesSources(t *testing.T) {
	first := writeSource(t, "a.txt", "aa bb\n")
	second := writeSource(t, "b.txt", "bb cc\n")

	result, err := Run(context.Background(), Config{
		Sources:      []string{first, second},
		Mode:         freq.Word,
		OutputFormat: output.CSV,
		Quiet:        true,
	})
	if err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}

	if !strings.Contains(result, "bb,2") {
		t.Errorf("Run() = %q, want merged count bb,2", result)
	}
	if !strings.Contains(result, "aa,1") || !strings.Contains(result, "cc,1") {
		t.Errorf("Run() = %q, want aa,1 and cc,1", result)
	}
}

func TestRunLineMode(t *testing.T) {
	path := writeSource(t, "input.txt", "hello\nhello\n")

	result, err := Run(context.Background(), Config{
		Sources:      []string{path},
		Mode:         freq.Line,
		OutputFormat: output.CSV,
		Quiet:        true,
	})
	if err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}

	if !strings.Contains(result, "hello,2") {
		t.Errorf("Run() = %q, want hello,2", result)
	}
}

func TestRunInvalidUTF8IsFatal(t *testing.T) {
	path := writeSource(t, "bad.txt", "ok line\n"+string([]byte{0xf9, 0x90, 0x80}))

	_, err := Run(context.Background(), Config{
		Sources:      []string{path},
		Mode:         freq.Word,
		OutputFormat: output.Text,
		Quiet:        true,
	})
	if err == nil {
		t.Fatal("Run() expected error for invalid UTF-8, got nil")
	}
	if !errors.Is(err, freq.ErrInvalidUTF8) {
		t.Errorf("Run() error = %v, want wrapped freq.ErrInvalidUTF8", err)
	}
}

func TestRunSkipsFailedSource(t *testing.T) {
	good := writeSource(t, "good.txt", "aa aa\n")
	missing := filepath.Join(t.TempDir(), "missing.txt")

	result, err := Run(context.Background(), Config{
		Sources:      []string{missing, good},
		Mode:         freq.Word,
		OutputFormat: output.CSV,
		Quiet:        true,
	})
	if err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}
	if !strings.Contains(result, "aa,2") {
		t.Errorf("Run() = %q, want counts from the readable source", result)
	}
}

func TestRunAllSourcesFail(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.txt")

	_, err := Run(context.Background(), Config{
		Sources:      []string{missing},
		Mode:         freq.Word,
		OutputFormat: output.Text,
		Quiet:        true,
	})
	if err == nil {
		t.Fatal("Run() expected error when every source fails, got nil")
	}
}

func TestRunNoSources(t *testing.T) {
	_, err := Run(context.Background(), Config{Quiet: true})
	if err == nil {
		t.Fatal("Run() expected error for empty source list, got nil")
	}
}

func TestRunNormalization(t *testing.T) {
	path := writeSource(t, "input.txt", "The the quick fox fox\n")

	result, err := Run(context.Background(), Config{
		Sources:      []string{path},
		Mode:         freq.Word,
		OutputFormat: output.CSV,
		Normalize:    normalize.Options{Lower: true, DropStopwords: true},
		Quiet:        true,
	})
	if err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}

	if strings.Contains(result, "the") || strings.Contains(result, "The") {
		t.Errorf("Run() = %q, stopword should be dropped", result)
	}
	if !strings.Contains(result, "fox,2") {
		t.Errorf("Run() = %q, want fox,2", result)
	}
}

func TestRunHTMLSourceIsExtracted(t *testing.T) {
	html := `<html><body><p>alpha beta alpha</p></body></html>`
	path := writeSource(t, "page.html", html)

	result, err := Run(context.Background(), Config{
		Sources:      []string{path},
		Mode:         freq.Word,
		OutputFormat: output.CSV,
		IncludeAll:   true,
		Quiet:        true,
	})
	if err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}

	if !strings.Contains(result, "alpha,2") {
		t.Errorf("Run() = %q, want alpha,2 from extracted text", result)
	}
	if strings.Contains(result, "html") || strings.Contains(result, "body") {
		t.Errorf("Run() = %q, markup should not be counted", result)
	}
}

func TestNormalizeOptionsGatedByMode(t *testing.T) {
	cfg := Config{
		Mode:      freq.Char,
		Normalize: normalize.Options{Lower: true, Stem: true, DropStopwords: true, Top: 5},
	}

	opts := normalizeOptions(cfg)
	if opts.Lower || opts.Stem || opts.DropStopwords {
		t.Errorf("char mode should disable token shaping, got %+v", opts)
	}
	if opts.Top != 5 {
		t.Errorf("count-based selection should survive mode gating, Top = %d", opts.Top)
	}
}

func TestLooksLikeHTML(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		expected bool
	}{
		{"plain text", "just some words\n", false},
		{"doctype", "<!DOCTYPE html><html><body>x</body></html>", true},
		{"html tag after comment", "<!-- note -->\n<html><body>x</body></html>", true},
		{"angle brackets in prose", "a < b and b > c", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := looksLikeHTML([]byte(tt.data)); got != tt.expected {
				t.Errorf("looksLikeHTML(%q) = %v, want %v", tt.data, got, tt.expected)
			}
		})
	}
}

func TestRunSummaryAppendedInTextFormat(t *testing.T) {
	path := writeSource(t, "input.txt", "one two. three four.\n")

	result, err := Run(context.Background(), Config{
		Sources:      []string{path},
		Mode:         freq.Word,
		OutputFormat: output.Text,
		ShowSummary:  true,
		Quiet:        true,
	})
	if err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}

	if !strings.Contains(result, "words:") {
		t.Errorf("Run() = %q, want summary footer", result)
	}
	if !strings.Contains(result, "sentences:") {
		t.Errorf("Run() = %q, want sentence total in footer", result)
	}
}
