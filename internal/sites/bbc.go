package sites

import (
	"github.com/jonesrussell/newscrawl/internal/article"
	"github.com/jonesrussell/newscrawl/internal/content"
	"github.com/jonesrussell/newscrawl/internal/fetch"
)

// BBC crawls bbc.com. The HTML structure is clean enough that DOM selectors
// are the primary strategy; JSON-LD only backfills metadata. Confidence is
// hard-capped at 0.90.
type BBC struct {
	Info
}

// NewBBC builds the BBC site.
func NewBBC() *BBC {
	return &BBC{Info: Info{
		name:           "bbc",
		allowedDomains: []string{"bbc.com", "www.bbc.com"},
		startURLs: []string{
			"https://www.bbc.com/news",
			"https://www.bbc.com/news/world",
			"https://www.bbc.com/news/technology",
		},
		feedURLs: []string{"https://feeds.bbci.co.uk/news/rss.xml"},
	}}
}

// IsArticleURL defers to the shared heuristic; BBC story slugs carry a long
// trailing numeric id that the base rules already accept.
func (s *BBC) IsArticleURL(url string) bool {
	return DefaultIsArticleURL(url)
}

// IsArticlePage defers to the shared page markers.
func (s *BBC) IsArticlePage(page *fetch.Page) bool {
	return DefaultIsArticlePage(page)
}

// Extract reads the body from article paragraphs with a text-block fallback;
// the author is frequently missing on BBC pages and that is acceptable.
func (s *BBC) Extract(page *fetch.Page) *article.Extracted {
	out := &article.Extracted{Method: article.MethodDOM, Confidence: bbcFloor}

	doc, err := page.Document()
	if err != nil {
		out.AddError("page could not be parsed: " + err.Error())
		return out
	}

	out.Title = firstText(doc, "h1")
	if out.Title == "" {
		// BBC often carries the title only in meta tags.
		out.Title = metaProperty(doc, "og:title")
	}
	if out.Title == "" {
		out.AddError("Title not found")
	}

	paragraphs := paragraphTexts(doc, "article p")
	if len(paragraphs) == 0 {
		paragraphs = paragraphTexts(doc, "div[data-component='text-block'] p")
	}
	if len(paragraphs) > 0 {
		out.Body = content.JoinParagraphs(paragraphs)
	} else {
		out.AddError("No article body paragraphs found")
	}

	if datetime := timeDatetime(doc); datetime != "" {
		out.PublishedAt = content.ParseDate(datetime)
	} else if pub := metaProperty(doc, "article:published_time"); pub != "" {
		out.PublishedAt = content.ParseDate(pub)
	}

	if author := metaName(doc, "author"); author != "" {
		out.Author = author
		out.AuthorSource = article.AuthorSourceMeta
	} else if byline := firstText(doc, "[class*='byline']"); byline != "" {
		out.Author = byline
		out.AuthorSource = article.AuthorSourceExtractor
	}

	meta := readStructured(content.ReadJSONLD(doc))
	if meta.found {
		if out.Author == "" && meta.author != "" {
			out.Author = meta.author
			out.AuthorSource = article.AuthorSourceExtractor
		}
		if out.Section == "" {
			out.Section = meta.section
		}
		if len(out.Tags) == 0 {
			out.Tags = meta.tags
		}
	}

	out.Confidence = BBCScore(Signals{
		HasJSONLD: meta.found,
		HasTitle:  out.HasTitle(),
		HasAuthor: out.Author != "",
		BodyLen:   len(out.Body),
	})
	if out.Confidence <= bbcFloor {
		out.AddError("Low confidence: missing critical content")
	}

	return out
}
