// Package extract turns HTML sources into countable text for the tally CLI tool.
//
// Frequency counts over raw HTML are dominated by markup, so HTML sources
// are reduced to their readable content first: main-article extraction via
// go-readability (or a caller-supplied CSS selector), then conversion to
// Markdown-flavored plain text. Word-mode counting ignores the residual
// Markdown punctuation, since punctuation is never part of a word token.
package extract

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"
)

// ReadableText extracts the main content from HTML and converts it to text.
//
// Parameters:
//   - content: io.Reader containing HTML content
//   - selector: optional CSS selector to filter content (empty string for main content extraction)
//   - includeAll: if true, skips readability extraction and converts all HTML content
//   - baseURL: optional URL for context during readability extraction (can be nil)
//
// Returns clean text or an error if extraction/conversion fails.
func ReadableText(content io.Reader, selector string, includeAll bool, baseURL *url.URL) (string, error) {
	// an explicit selector overrides the includeAll setting
	if selector != "" {
		return extractWithSelector(content, selector)
	}

	if includeAll {
		return convertAllHTML(content)
	}

	// default: use go-readability to extract main content
	return extractMainContent(content, baseURL)
}

// extractMainContent uses go-readability to extract the main article content
func extractMainContent(content io.Reader, baseURL *url.URL) (string, error) {
	if baseURL == nil {
		baseURL = &url.URL{}
	}

	article, err := readability.FromReader(content, baseURL)
	if err != nil {
		return "", fmt.Errorf("failed to extract main content: %w", err)
	}

	return convertToText(article.Content)
}

// extractWithSelector uses a CSS selector to extract specific content
func extractWithSelector(content io.Reader, selector string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(content)
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	selection := doc.Find(selector)
	if selection.Length() == 0 {
		return "", fmt.Errorf("no elements found matching selector: %s", selector)
	}

	// collect the HTML of all selected elements, preserving element structure
	var htmlParts []string
	selection.Each(func(i int, s *goquery.Selection) {
		html, err := s.Html()
		if err == nil {
			tagName := goquery.NodeName(s)
			htmlParts = append(htmlParts, fmt.Sprintf("<%s>%s</%s>", tagName, html, tagName))
		}
	})

	if len(htmlParts) == 0 {
		return "", fmt.Errorf("failed to extract HTML from selection")
	}

	return convertToText(strings.Join(htmlParts, "\n"))
}

// convertAllHTML converts all HTML content to text without readability filtering
func convertAllHTML(content io.Reader) (string, error) {
	htmlBytes, err := io.ReadAll(content)
	if err != nil {
		return "", fmt.Errorf("failed to read HTML content: %w", err)
	}

	return convertToText(string(htmlBytes))
}

// convertToText converts an HTML string to Markdown-flavored plain text
func convertToText(htmlString string) (string, error) {
	converter := md.NewConverter("", true, nil)

	// tidy excessive whitespace during conversion
	converter.Use(md.Plugin(func(c *md.Converter) []md.Rule {
		return []md.Rule{
			{
				Filter: []string{"*"},
				Replacement: func(content string, selec *goquery.Selection, opt *md.Options) *string {
					cleaned := strings.TrimSpace(content)
					result := strings.ReplaceAll(cleaned, "\n\n\n", "\n\n")
					return &result
				},
			},
		}
	}))

	text, err := converter.ConvertString(htmlString)
	if err != nil {
		return "", fmt.Errorf("failed to convert HTML to text: %w", err)
	}

	cleaned := strings.TrimSpace(text)
	cleaned = strings.ReplaceAll(cleaned, "\n\n\n", "\n\n")

	return cleaned, nil
}
