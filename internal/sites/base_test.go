package sites_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonesrussell/newscrawl/internal/fetch"
	"github.com/jonesrussell/newscrawl/internal/sites"
)

func htmlPage(t *testing.T, url, html string) *fetch.Page {
	t.Helper()
	header := http.Header{"Content-Type": []string{"text/html; charset=utf-8"}}
	return fetch.NewPage(url, http.StatusOK, header, []byte(html))
}

func TestDefaultIsArticleURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		url  string
		want bool
	}{
		{"homepage", "https://example.com/", false},
		{"empty path", "https://example.com", false},
		{"section root news", "https://example.com/news/", false},
		{"section root world", "https://example.com/world", false},
		{"tag hub", "https://example.com/tag/economy", false},
		{"author hub", "https://example.com/author/jane-doe", false},
		{"search", "https://example.com/search?q=storm", false},
		{"rss feed", "https://example.com/rss.xml", false},
		{"sitemap", "https://example.com/sitemap.xml", false},
		{"article path", "https://example.com/article/some-story", true},
		{"articles path", "https://example.com/articles/some-story", true},
		{"date path", "https://example.com/2026/01/29/big-story", true},
		{"year month path", "https://example.com/2026/01/big-story", true},
		{"trailing numeric id", "https://example.com/story-123456789", true},
		{"short numeric suffix", "https://example.com/p-123", false},
		{"multi hyphen slug", "https://example.com/big-storm-hits-coast", true},
		{"short plain path", "https://example.com/about", false},
		{"long plain path", "https://example.com/some/longer/path/here", true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, sites.DefaultIsArticleURL(tt.url), "url %q", tt.url)
		})
	}
}

// A minimal page with no og:type, no article tag, and a section-root URL
// must classify as not-article: false negatives are acceptable, false
// positives pollute the corpus.
func TestDefaultIsArticlePage_Conservative(t *testing.T) {
	t.Parallel()

	page := htmlPage(t, "https://example.com/news/",
		"<html><head></head><body><p>headlines</p></body></html>")
	assert.False(t, sites.DefaultIsArticlePage(page))
}

func TestDefaultIsArticlePage_Markers(t *testing.T) {
	t.Parallel()

	ogType := htmlPage(t, "https://example.com/news/",
		`<html><head><meta property="og:type" content="article"></head><body></body></html>`)
	assert.True(t, sites.DefaultIsArticlePage(ogType))

	articleTag := htmlPage(t, "https://example.com/news/",
		"<html><body><article><p>text</p></article></body></html>")
	assert.True(t, sites.DefaultIsArticlePage(articleTag))
}

func TestDefaultIsArticlePage_RejectsNonHTML(t *testing.T) {
	t.Parallel()

	header := http.Header{"Content-Type": []string{"application/json"}}
	page := fetch.NewPage("https://example.com/article/api", http.StatusOK, header, []byte(`{}`))
	assert.False(t, sites.DefaultIsArticlePage(page))

	header = http.Header{"Content-Type": []string{"application/rss+xml"}}
	page = fetch.NewPage("https://example.com/article/feed-like", http.StatusOK, header, []byte("<rss/>"))
	assert.False(t, sites.DefaultIsArticlePage(page))
}

func TestRegistry(t *testing.T) {
	t.Parallel()

	reg := sites.Builtin()

	for _, name := range []string{
		"ap", "bbc", "cbs", "cnn", "foxnews", "guardian", "nbc", "nyt",
		"reuters", "wsj", "washingtonpost", "aljazeera",
	} {
		site, ok := reg.Lookup(name)
		assert.True(t, ok, "site %q should be registered", name)
		assert.Equal(t, name, site.Name())
	}

	_, ok := reg.Lookup("unknown")
	assert.False(t, ok)

	site, ok := reg.ForHost("www.apnews.com")
	assert.True(t, ok)
	assert.Equal(t, "ap", site.Name())

	_, ok = reg.ForHost("example.com")
	assert.False(t, ok)
}
