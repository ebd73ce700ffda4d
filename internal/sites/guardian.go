package sites

import (
	"github.com/jonesrussell/newscrawl/internal/article"
	"github.com/jonesrussell/newscrawl/internal/content"
	"github.com/jonesrussell/newscrawl/internal/fetch"
)

// Guardian crawls theguardian.com. JSON-LD is dependable here and leads the
// extraction; the body comes from the itemprop-marked article block.
type Guardian struct {
	Info
}

// NewGuardian builds the Guardian site.
func NewGuardian() *Guardian {
	return &Guardian{Info: Info{
		name:           "guardian",
		allowedDomains: []string{"theguardian.com", "www.theguardian.com"},
		startURLs: []string{
			"https://www.theguardian.com/international",
			"https://www.theguardian.com/world",
			"https://www.theguardian.com/technology",
		},
		feedURLs: []string{"https://www.theguardian.com/world/rss"},
	}}
}

// IsArticleURL defers to the shared heuristic; Guardian article paths carry
// a date segment the base rules accept.
func (s *Guardian) IsArticleURL(url string) bool {
	return DefaultIsArticleURL(url)
}

// IsArticlePage defers to the shared page markers.
func (s *Guardian) IsArticlePage(page *fetch.Page) bool {
	return DefaultIsArticlePage(page)
}

// Extract leads with JSON-LD and reads the body from the articleBody block.
func (s *Guardian) Extract(page *fetch.Page) *article.Extracted {
	out := &article.Extracted{Method: article.MethodJSONLD, Confidence: guardianFloor}

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

	paragraphs := paragraphTexts(doc, "div[itemprop='articleBody'] p")
	if len(paragraphs) == 0 {
		paragraphs = paragraphTexts(doc, "article p")
	}
	if len(paragraphs) > 0 {
		out.Body = content.JoinParagraphs(paragraphs)
	} else {
		out.AddError("No article body paragraphs found")
	}

	if out.Title == "" {
		out.Title = firstText(doc, "h1")
	}
	if out.Author == "" {
		if byline := firstText(doc, "a[rel='author']"); byline != "" {
			out.Author = byline
			out.AuthorSource = article.AuthorSourceExtractor
		} else if author := metaName(doc, "author"); author != "" {
			out.Author = author
			out.AuthorSource = article.AuthorSourceMeta
		}
	}
	if out.PublishedAt.IsZero() {
		if datetime := timeDatetime(doc); datetime != "" {
			out.PublishedAt = content.ParseDate(datetime)
		}
	}

	out.Confidence = GuardianScore(Signals{
		HasJSONLD: meta.found,
		HasTitle:  out.HasTitle(),
		HasAuthor: out.Author != "",
		BodyLen:   len(out.Body),
	})
	if out.Confidence <= guardianFloor {
		out.AddError("Low confidence: missing critical content")
	}

	if len(objects) == 0 {
		out.Method = article.MethodDOM
		out.AddError("JSON-LD not found (unusual for Guardian)")
	}

	return out
}
