package article

import "time"

// DefaultSummaryMaxChars caps the derived summary field.
const DefaultSummaryMaxChars = 512

// Record is the final, sink-facing article record. Its JSON field set is the
// wire format for file- and queue-based sinks and must remain stable.
//
// A Record is emitted for every fetched candidate article page: even a total
// parse failure yields one with ParseOK=false and populated identity fields,
// so per-source failure rates stay observable.
type Record struct {
	URL    string `json:"url"`
	Source string `json:"source"`

	Title       string   `json:"title,omitempty"`
	Author      string   `json:"author,omitempty"`
	Text        string   `json:"text,omitempty"`
	Summary     string   `json:"summary,omitempty"`
	Section     string   `json:"section,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	PublishedAt string   `json:"published_at,omitempty"`
	ModifiedAt  string   `json:"modified_at,omitempty"`

	// ScrapedAt is always set, ISO-8601 UTC.
	ScrapedAt string `json:"scraped_at"`

	// URLHash is the SHA-256 of the canonicalized URL; Fingerprint is the
	// content-derived near-duplicate key.
	URLHash     string `json:"url_hash"`
	Fingerprint string `json:"fingerprint"`

	Confidence       float64 `json:"confidence"`
	ExtractionMethod string  `json:"extraction_method"`
	ContentLength    int     `json:"content_length_chars"`
	AuthorSource     string  `json:"author_source"`

	SummaryMaxChars  int  `json:"summary_max_chars"`
	SummaryTruncated bool `json:"summary_truncated"`

	ParseOK    bool   `json:"parse_ok"`
	ParseError string `json:"parse_error,omitempty"`
}

// FormatTime renders a timestamp for the record, empty for the zero time.
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// Summarize truncates body text to maxChars runes for the summary field,
// reporting whether truncation happened.
func Summarize(text string, maxChars int) (string, bool) {
	if maxChars <= 0 {
		maxChars = DefaultSummaryMaxChars
	}
	runes := []rune(text)
	if len(runes) <= maxChars {
		return text, false
	}
	return string(runes[:maxChars]), true
}
