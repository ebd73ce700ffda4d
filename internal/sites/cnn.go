package sites

import (
	"regexp"
	"strings"

	"github.com/jonesrussell/newscrawl/internal/article"
	"github.com/jonesrussell/newscrawl/internal/content"
	"github.com/jonesrussell/newscrawl/internal/fetch"
)

var (
	// cnnDenyPattern rejects non-article CNN verticals before the date check.
	cnnDenyPattern = regexp.MustCompile(`(?i)/(video|gallery|live-news|cnn-underscored)/`)
	cnnDatePattern = regexp.MustCompile(`/\d{4}/\d{2}/\d{2}/`)
)

// CNN crawls cnn.com. Article URLs always carry a full date path; pages are
// confirmed through the body data-page-type attribute. Extraction is hybrid.
type CNN struct {
	Info
}

// NewCNN builds the CNN site.
func NewCNN() *CNN {
	return &CNN{Info: Info{
		name:           "cnn",
		allowedDomains: []string{"cnn.com", "www.cnn.com"},
		startURLs: []string{
			"https://www.cnn.com",
			"https://www.cnn.com/politics",
			"https://www.cnn.com/business",
			"https://www.cnn.com/world",
			"https://www.cnn.com/us",
			"https://www.cnn.com/health",
			"https://www.cnn.com/entertainment",
		},
		feedURLs: []string{"http://rss.cnn.com/rss/cnn_topstories.rss"},
	}}
}

// IsArticleURL accepts only date-pattern paths; video, gallery, and live
// verticals are rejected outright.
func (s *CNN) IsArticleURL(url string) bool {
	if cnnDenyPattern.MatchString(url) {
		return false
	}
	return cnnDatePattern.MatchString(url)
}

// IsArticlePage checks the CNN data-page-type marker ahead of the shared
// rules.
func (s *CNN) IsArticlePage(page *fetch.Page) bool {
	if page.IsHTML() {
		if doc, err := page.Document(); err == nil {
			if pageType := firstAttr(doc, "body", "data-page-type"); strings.Contains(pageType, "article") {
				return true
			}
		}
	}
	return DefaultIsArticlePage(page)
}

// Extract combines JSON-LD metadata with a DOM body.
func (s *CNN) Extract(page *fetch.Page) *article.Extracted {
	out := &article.Extracted{Method: article.MethodHybrid, Confidence: cnnFloor}

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

	if out.Title == "" {
		out.Title = firstText(doc, "h1")
	}
	if out.Author == "" {
		if byline := firstText(doc, "[data-testid='byline']"); byline != "" {
			out.Author = byline
			out.AuthorSource = article.AuthorSourceExtractor
		} else if author := metaName(doc, "author"); author != "" {
			out.Author = author
			out.AuthorSource = article.AuthorSourceMeta
		}
	}
	if out.PublishedAt.IsZero() {
		if pub := metaProperty(doc, "article:published_time"); pub != "" {
			out.PublishedAt = content.ParseDate(pub)
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

	out.Confidence = CNNScore(Signals{
		HasJSONLD: meta.found,
		HasTitle:  out.HasTitle(),
		HasAuthor: out.Author != "",
		BodyLen:   len(out.Body),
	})
	if out.Confidence <= cnnFloor {
		out.AddError("Low confidence: missing critical content")
	}

	if len(objects) == 0 {
		out.Method = article.MethodDOM
		out.AddError("JSON-LD not found, using DOM extraction only")
	}

	return out
}
