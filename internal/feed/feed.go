// Package feed seeds a crawl from a source's RSS/Atom feeds. Feed items give
// the crawl a head start over pure link discovery and carry author names that
// the extractor frequently cannot find in the page itself.
package feed

import (
	"context"
	"fmt"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/jonesrussell/newscrawl/internal/logger"
	"github.com/jonesrussell/newscrawl/internal/sites"
)

// Item is one feed entry relevant to the crawl.
type Item struct {
	URL       string
	Title     string
	Author    string
	Published time.Time
}

// Reader fetches and parses feeds.
type Reader struct {
	parser *gofeed.Parser
	logger logger.Interface
}

// NewReader builds a feed reader.
func NewReader(log logger.Interface) *Reader {
	if log == nil {
		log = logger.NewNoop()
	}
	return &Reader{
		parser: gofeed.NewParser(),
		logger: log.WithComponent("feed"),
	}
}

// Fetch retrieves one feed and returns its entries.
func (r *Reader) Fetch(ctx context.Context, feedURL string) ([]Item, error) {
	parsed, err := r.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed %s: %w", feedURL, err)
	}
	return itemsFrom(parsed), nil
}

// Seed collects article candidates from every feed of a source, filtered
// through the site's own URL heuristic. A failing feed is logged and skipped;
// seeding is best-effort.
func (r *Reader) Seed(ctx context.Context, site sites.Site) []Item {
	var items []Item
	for _, feedURL := range site.FeedURLs() {
		fetched, err := r.Fetch(ctx, feedURL)
		if err != nil {
			r.logger.Warn("Skipping feed", "source", site.Name(), "feed", feedURL, "error", err)
			continue
		}
		for _, item := range fetched {
			if site.IsArticleURL(item.URL) {
				items = append(items, item)
			}
		}
	}
	return items
}

// itemsFrom maps parsed feed entries, dropping link-less ones.
func itemsFrom(parsed *gofeed.Feed) []Item {
	items := make([]Item, 0, len(parsed.Items))
	for _, entry := range parsed.Items {
		if entry == nil || entry.Link == "" {
			continue
		}
		item := Item{
			URL:    entry.Link,
			Title:  entry.Title,
			Author: entryAuthor(entry),
		}
		if entry.PublishedParsed != nil {
			item.Published = entry.PublishedParsed.UTC()
		}
		items = append(items, item)
	}
	return items
}

// entryAuthor returns the first author name on a feed entry.
func entryAuthor(entry *gofeed.Item) string {
	for _, person := range entry.Authors {
		if person != nil && person.Name != "" {
			return person.Name
		}
	}
	if entry.Author != nil {
		return entry.Author.Name
	}
	return ""
}
