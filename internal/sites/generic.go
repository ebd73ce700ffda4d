package sites

import (
	"strings"

	"github.com/jonesrussell/newscrawl/internal/article"
	"github.com/jonesrussell/newscrawl/internal/content"
	"github.com/jonesrussell/newscrawl/internal/fetch"
)

// Generic serves sources that have site-specific classification markers but
// no dedicated extractor: the shared heuristics plus a generic JSON-LD-first
// extraction capped at 0.80.
type Generic struct {
	Info

	// urlMarkers are path substrings that mark an article URL for this
	// source ahead of the shared heuristic.
	urlMarkers []string
}

// NewReuters builds the Reuters site.
func NewReuters() *Generic {
	return &Generic{
		Info: Info{
			name:           "reuters",
			allowedDomains: []string{"reuters.com", "www.reuters.com"},
			startURLs: []string{
				"https://www.reuters.com",
				"https://www.reuters.com/world",
				"https://www.reuters.com/technology",
			},
		},
		urlMarkers: []string{"/article/"},
	}
}

// NewWSJ builds the Wall Street Journal site.
func NewWSJ() *Generic {
	return &Generic{
		Info: Info{
			name:           "wsj",
			allowedDomains: []string{"wsj.com", "www.wsj.com"},
			startURLs: []string{
				"https://www.wsj.com",
				"https://www.wsj.com/news/world",
				"https://www.wsj.com/news/technology",
			},
			feedURLs: []string{"https://feeds.a.dj.com/rss/RSSWorldNews.xml"},
		},
		urlMarkers: []string{"/articles/"},
	}
}

// NewWashingtonPost builds the Washington Post site.
func NewWashingtonPost() *Generic {
	return &Generic{
		Info: Info{
			name:           "washingtonpost",
			allowedDomains: []string{"washingtonpost.com", "www.washingtonpost.com"},
			startURLs: []string{
				"https://www.washingtonpost.com",
				"https://www.washingtonpost.com/politics/",
				"https://www.washingtonpost.com/technology/",
			},
			feedURLs: []string{"https://feeds.washingtonpost.com/rss/world"},
		},
		urlMarkers: []string{"/202"},
	}
}

// NewAlJazeera builds the Al Jazeera site.
func NewAlJazeera() *Generic {
	return &Generic{
		Info: Info{
			name:           "aljazeera",
			allowedDomains: []string{"aljazeera.com", "www.aljazeera.com"},
			startURLs: []string{
				"https://www.aljazeera.com",
				"https://www.aljazeera.com/news/",
				"https://www.aljazeera.com/topics/",
			},
			feedURLs: []string{"https://www.aljazeera.com/xml/rss/all.xml"},
		},
		urlMarkers: []string{"/news/20"},
	}
}

// IsArticleURL accepts the source's own path markers ahead of the shared
// heuristic.
func (g *Generic) IsArticleURL(url string) bool {
	lower := strings.ToLower(url)
	for _, marker := range g.urlMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return DefaultIsArticleURL(url)
}

// IsArticlePage checks the shared page markers, then the source's URL
// markers as a last resort.
func (g *Generic) IsArticlePage(page *fetch.Page) bool {
	if DefaultIsArticlePage(page) {
		return true
	}
	lower := strings.ToLower(page.URL)
	for _, marker := range g.urlMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// Extract is the generic JSON-LD-first extraction with a plain article-body
// fallback.
func (g *Generic) Extract(page *fetch.Page) *article.Extracted {
	out := &article.Extracted{Method: article.MethodHybrid, Confidence: genericFloor}

	doc, err := page.Document()
	if err != nil {
		out.AddError("page could not be parsed: " + err.Error())
		return out
	}

	objects := content.ReadJSONLD(doc)
	meta := readStructured(objects)
	if meta.found {
		out.Title = meta.title
		out.Author = meta.author
		out.PublishedAt = meta.published
		out.ModifiedAt = meta.modified
		out.Section = meta.section
		out.Tags = meta.tags
		if out.Author != "" {
			out.AuthorSource = article.AuthorSourceExtractor
		}
	}

	paragraphs := paragraphTexts(doc, "article p")
	if len(paragraphs) == 0 {
		paragraphs = paragraphTexts(doc, "p")
	}
	if len(paragraphs) > 0 {
		out.Body = content.JoinParagraphs(paragraphs)
	} else {
		out.AddError("No article body paragraphs found")
	}

	if out.Title == "" {
		out.Title = firstText(doc, "h1")
		if out.Title == "" {
			out.Title = metaProperty(doc, "og:title")
		}
	}
	if out.Author == "" {
		if author := metaName(doc, "author"); author != "" {
			out.Author = author
			out.AuthorSource = article.AuthorSourceMeta
		}
	}
	if out.PublishedAt.IsZero() {
		if pub := metaProperty(doc, "article:published_time"); pub != "" {
			out.PublishedAt = content.ParseDate(pub)
		} else if datetime := timeDatetime(doc); datetime != "" {
			out.PublishedAt = content.ParseDate(datetime)
		}
	}

	out.Confidence = GenericScore(Signals{
		HasJSONLD: meta.found,
		HasTitle:  out.HasTitle(),
		HasAuthor: out.Author != "",
		BodyLen:   len(out.Body),
	})
	if out.Confidence <= genericFloor {
		out.AddError("Low confidence: missing critical content")
	}

	if len(objects) == 0 {
		out.Method = article.MethodDOM
	}

	return out
}
