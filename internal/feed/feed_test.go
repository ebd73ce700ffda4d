package feed

import (
	"testing"

	"github.com/mmcdole/gofeed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:dc="http://purl.org/dc/elements/1.1/">
  <channel>
    <title>World News</title>
    <item>
      <title>Storm reaches the coast</title>
      <link>https://example.com/article/storm-reaches-the-coast</link>
      <dc:creator>Jane Doe</dc:creator>
      <pubDate>Thu, 29 Jan 2026 12:00:00 GMT</pubDate>
    </item>
    <item>
      <title>No link entry</title>
    </item>
    <item>
      <title>Anonymous item</title>
      <link>https://example.com/article/anonymous-item-report-today</link>
    </item>
  </channel>
</rss>`

func TestItemsFrom(t *testing.T) {
	t.Parallel()

	parsed, err := gofeed.NewParser().ParseString(sampleRSS)
	require.NoError(t, err)

	items := itemsFrom(parsed)
	require.Len(t, items, 2, "link-less entries are dropped")

	first := items[0]
	assert.Equal(t, "https://example.com/article/storm-reaches-the-coast", first.URL)
	assert.Equal(t, "Storm reaches the coast", first.Title)
	assert.Equal(t, "Jane Doe", first.Author)
	assert.Equal(t, 2026, first.Published.Year())
	assert.Equal(t, "UTC", first.Published.Location().String())

	assert.Empty(t, items[1].Author)
	assert.True(t, items[1].Published.IsZero())
}
