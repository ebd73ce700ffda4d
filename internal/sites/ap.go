package sites

import (
	"strings"

	"github.com/jonesrussell/newscrawl/internal/article"
	"github.com/jonesrussell/newscrawl/internal/content"
	"github.com/jonesrussell/newscrawl/internal/fetch"
)

// AP crawls apnews.com. JSON-LD is reliable for metadata but never carries
// the article body, so extraction is hybrid: structured metadata plus a DOM
// body.
type AP struct {
	Info
}

// NewAP builds the AP News site.
func NewAP() *AP {
	return &AP{Info: Info{
		name:           "ap",
		allowedDomains: []string{"apnews.com", "www.apnews.com"},
		startURLs: []string{
			"https://apnews.com",
			"https://apnews.com/hub/politics",
			"https://apnews.com/hub/technology",
		},
	}}
}

// IsArticleURL accepts the /article/ path AP uses for every story.
func (s *AP) IsArticleURL(url string) bool {
	if strings.Contains(strings.ToLower(url), "/article/") {
		return true
	}
	return DefaultIsArticleURL(url)
}

// IsArticlePage defers to the shared page markers.
func (s *AP) IsArticlePage(page *fetch.Page) bool {
	return DefaultIsArticlePage(page)
}

// Extract pulls metadata from JSON-LD and the body from the story DOM.
func (s *AP) Extract(page *fetch.Page) *article.Extracted {
	out := &article.Extracted{Method: article.MethodDOM, Confidence: apFloor}

	doc, err := page.Document()
	if err != nil {
		out.AddError("page could not be parsed: " + err.Error())
		return out
	}

	meta := readStructured(content.ReadJSONLD(doc))
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

	// AP's JSON-LD omits articleBody; the body always comes from the DOM.
	paragraphs := paragraphTexts(doc, ".RichTextStoryBody p")
	if len(paragraphs) == 0 {
		paragraphs = paragraphTexts(doc, "article p")
	}
	if len(paragraphs) > 0 {
		out.Body = content.JoinParagraphs(paragraphs)
	} else {
		out.AddError("No article body paragraphs found")
	}

	out.Confidence = APScore(Signals{
		HasJSONLD: meta.found,
		HasTitle:  out.HasTitle(),
		HasAuthor: out.Author != "",
		BodyLen:   len(out.Body),
	})
	if meta.found && out.HasBody() {
		out.Method = article.MethodHybrid
	}
	if !out.HasBody() {
		out.AddError("Low confidence: missing critical content")
	}

	if out.Title == "" {
		out.Title = firstText(doc, "h1")
		if out.Title == "" {
			out.AddError("Title not found in JSON-LD or DOM")
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
		}
	}

	return out
}
