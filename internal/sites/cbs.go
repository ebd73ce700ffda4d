package sites

import (
	"github.com/jonesrussell/newscrawl/internal/article"
	"github.com/jonesrussell/newscrawl/internal/content"
	"github.com/jonesrussell/newscrawl/internal/fetch"
)

// CBS crawls cbsnews.com. CBS is the one source whose JSON-LD regularly
// carries the complete articleBody; when it does, the structured data is
// authoritative, DOM body extraction is skipped, and confidence is exactly
// 1.0 with method jsonld_full.
type CBS struct {
	Info
}

// NewCBS builds the CBS News site.
func NewCBS() *CBS {
	return &CBS{Info: Info{
		name:           "cbs",
		allowedDomains: []string{"cbsnews.com", "www.cbsnews.com"},
		startURLs: []string{
			"https://www.cbsnews.com",
			"https://www.cbsnews.com/politics",
			"https://www.cbsnews.com/business",
		},
		feedURLs: []string{"https://www.cbsnews.com/latest/rss/main"},
	}}
}

// IsArticleURL defers to the shared heuristic.
func (s *CBS) IsArticleURL(url string) bool {
	return DefaultIsArticleURL(url)
}

// IsArticlePage checks the CBS content body wrapper ahead of the shared
// markers.
func (s *CBS) IsArticlePage(page *fetch.Page) bool {
	if page.IsHTML() {
		if doc, err := page.Document(); err == nil {
			if doc.Find("article.content__body").Length() > 0 {
				return true
			}
		}
	}
	return DefaultIsArticlePage(page)
}

// Extract prefers JSON-LD throughout, including the body when present.
func (s *CBS) Extract(page *fetch.Page) *article.Extracted {
	out := &article.Extracted{Method: article.MethodJSONLD, Confidence: cbsFloor}

	doc, err := page.Document()
	if err != nil {
		out.AddError("page could not be parsed: " + err.Error())
		return out
	}

	objects := content.ReadJSONLD(doc)
	meta := readStructured(objects)
	jsonldBody := false

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
		if meta.body != "" {
			out.Body = meta.body
			jsonldBody = true
			out.Method = article.MethodJSONLDFull
		}
	}

	if !jsonldBody {
		paragraphs := paragraphTexts(doc, ".content__body p")
		if len(paragraphs) == 0 {
			paragraphs = paragraphTexts(doc, "article p")
		}
		if len(paragraphs) > 0 {
			out.Body = content.JoinParagraphs(paragraphs)
		} else {
			out.AddError("No article body paragraphs found")
		}
	}

	if out.Title == "" {
		out.Title = firstText(doc, "h1")
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

	if jsonldBody && out.HasBody() && out.HasTitle() {
		out.Confidence = 1.0
	} else {
		out.Confidence = CBSScore(Signals{
			HasJSONLD: meta.found,
			HasTitle:  out.HasTitle(),
			HasAuthor: out.Author != "",
			BodyLen:   len(out.Body),
		})
		if out.Confidence <= cbsFloor {
			out.AddError("Low confidence: missing critical content")
		}
	}

	if len(objects) == 0 {
		out.Method = article.MethodDOM
		out.AddError("JSON-LD not found")
	}

	return out
}
