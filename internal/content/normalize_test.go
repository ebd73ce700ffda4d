package content_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jonesrussell/newscrawl/internal/content"
)

func TestNormalizeWhitespace(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want string
	}{
		{"collapses runs", "a  b\t\tc", "a b c"},
		{"collapses newlines", "line one\n\nline two", "line one line two"},
		{"trims", "  padded  ", "padded"},
		{"empty", "", ""},
		{"only whitespace", " \n\t ", ""},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, content.NormalizeWhitespace(tc.in))
		})
	}
}

func TestJoinList(t *testing.T) {
	t.Parallel()

	got := content.JoinList([]string{" Jane Doe ", "", "John  Smith"})
	assert.Equal(t, "Jane Doe, John Smith", got)
}

func TestJoinParagraphs(t *testing.T) {
	t.Parallel()

	got := content.JoinParagraphs([]string{" First. ", "", "  ", "Second."})
	assert.Equal(t, "First.\n\nSecond.", got)

	assert.Empty(t, content.JoinParagraphs(nil))
	assert.Empty(t, content.JoinParagraphs([]string{"", "  "}))
}

func TestParseDate_ISOFormats(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want time.Time
	}{
		{
			"zulu",
			"2026-01-29T12:00:00Z",
			time.Date(2026, 1, 29, 12, 0, 0, 0, time.UTC),
		},
		{
			"offset normalized to UTC",
			"2026-01-29T12:00:00+02:00",
			time.Date(2026, 1, 29, 10, 0, 0, 0, time.UTC),
		},
		{
			"microseconds",
			"2026-01-29T12:00:00.123456Z",
			time.Date(2026, 1, 29, 12, 0, 0, 123456000, time.UTC),
		},
		{
			"no timezone treated as UTC",
			"2026-01-29T12:00:00",
			time.Date(2026, 1, 29, 12, 0, 0, 0, time.UTC),
		},
		{
			"date only is midnight UTC",
			"2026-01-29",
			time.Date(2026, 1, 29, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := content.ParseDate(tc.in)
			assert.True(t, tc.want.Equal(got), "want %v, got %v", tc.want, got)
		})
	}
}

func TestParseDate_LenientFallback(t *testing.T) {
	t.Parallel()

	got := content.ParseDate("January 29, 2026")
	assert.False(t, got.IsZero())
	assert.Equal(t, 2026, got.Year())
	assert.Equal(t, time.January, got.Month())
	assert.Equal(t, 29, got.Day())
}

func TestParseDate_NeverInvents(t *testing.T) {
	t.Parallel()

	assert.True(t, content.ParseDate("").IsZero())
	assert.True(t, content.ParseDate("   ").IsZero())
	assert.True(t, content.ParseDate("not a date").IsZero())
}
