// Package content provides the shared extraction primitives used by every
// site extractor: whitespace and paragraph normalization, date parsing, and
// the JSON-LD structured data reader.
package content

import (
	"regexp"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// whitespaceRun matches any run of whitespace, including newlines.
var whitespaceRun = regexp.MustCompile(`\s+`)

// dateFormats are tried in order before falling back to lenient parsing.
var dateFormats = []string{
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05Z",
	"2006-01-02T15:04:05.999999Z07:00",
	"2006-01-02T15:04:05.999999Z",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// NormalizeWhitespace collapses all whitespace runs to a single space and
// trims the result. Returns the empty string for empty input.
func NormalizeWhitespace(text string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(text, " "))
}

// JoinList normalizes each item and joins the non-empty survivors with ", ".
// Used for multi-valued fields such as JSON-LD author lists and
// articleSection arrays.
func JoinList(items []string) string {
	cleaned := make([]string, 0, len(items))
	for _, item := range items {
		if normalized := NormalizeWhitespace(item); normalized != "" {
			cleaned = append(cleaned, normalized)
		}
	}
	return strings.Join(cleaned, ", ")
}

// JoinParagraphs strips each paragraph, drops the empty ones, and joins the
// survivors with a blank line. Order is preserved.
func JoinParagraphs(paragraphs []string) string {
	cleaned := make([]string, 0, len(paragraphs))
	for _, para := range paragraphs {
		if stripped := strings.TrimSpace(para); stripped != "" {
			cleaned = append(cleaned, stripped)
		}
	}
	return strings.Join(cleaned, "\n\n")
}

// ParseDate parses a date string from meta tags or JSON-LD. A fixed list of
// ISO-8601 layouts is tried in order, then dateparse as a lenient fallback.
// The result is always normalized to UTC; a date-only input is interpreted as
// midnight UTC. Returns the zero time rather than guessing when nothing
// parses.
func ParseDate(input string) time.Time {
	input = strings.TrimSpace(input)
	if input == "" {
		return time.Time{}
	}

	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, input); err == nil {
			return t.UTC()
		}
	}

	if t, err := dateparse.ParseIn(input, time.UTC); err == nil {
		return t.UTC()
	}

	return time.Time{}
}
