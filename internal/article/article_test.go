package article_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/newscrawl/internal/article"
)

func TestNewExtracted_ConfidenceBounds(t *testing.T) {
	t.Parallel()

	for _, valid := range []float64{0.0, 0.5, 1.0} {
		e, err := article.NewExtracted(article.MethodDOM, valid)
		require.NoError(t, err)
		assert.InDelta(t, valid, e.Confidence, 0)
	}

	for _, invalid := range []float64{-0.1, 1.01, 2.0} {
		_, err := article.NewExtracted(article.MethodDOM, invalid)
		assert.Error(t, err, "confidence %g should be rejected", invalid)
	}
}

func TestExtracted_Validate(t *testing.T) {
	t.Parallel()

	e := &article.Extracted{Method: article.MethodHybrid, Confidence: 0.95}
	assert.NoError(t, e.Validate())

	e.Confidence = 1.5
	assert.Error(t, e.Validate())
}

func TestExtracted_ErrorsDoNotImplyZeroConfidence(t *testing.T) {
	t.Parallel()

	e := &article.Extracted{Method: article.MethodDOM, Confidence: 0.75}
	e.AddError("author not found")
	e.AddError("section not found")

	assert.Len(t, e.Errors, 2)
	assert.NoError(t, e.Validate())
	assert.InDelta(t, 0.75, e.Confidence, 0)
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	short, truncated := article.Summarize("brief", 512)
	assert.Equal(t, "brief", short)
	assert.False(t, truncated)

	long := strings.Repeat("x", 600)
	summary, truncated := article.Summarize(long, 512)
	assert.Len(t, summary, 512)
	assert.True(t, truncated)
}

// The record's JSON field set is the wire format for file and queue sinks;
// renaming a field is a breaking change.
func TestRecord_WireFieldNames(t *testing.T) {
	t.Parallel()

	rec := article.Record{
		URL:              "https://example.com/article/a-b-c-d",
		Source:           "example",
		Title:            "T",
		Text:             "body",
		ScrapedAt:        "2026-01-29T12:00:00Z",
		URLHash:          "abc",
		Fingerprint:      "def",
		Confidence:       0.9,
		ExtractionMethod: article.MethodHybrid,
		ContentLength:    4,
		AuthorSource:     article.AuthorSourceMissing,
		SummaryMaxChars:  512,
		ParseOK:          true,
	}

	data, err := json.Marshal(rec)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))

	for _, key := range []string{
		"url", "source", "title", "text", "scraped_at",
		"url_hash", "fingerprint", "confidence", "extraction_method",
		"content_length_chars", "author_source",
		"summary_max_chars", "summary_truncated", "parse_ok",
	} {
		assert.Contains(t, decoded, key)
	}
}
