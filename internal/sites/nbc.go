package sites

import (
	"strings"

	"github.com/jonesrussell/newscrawl/internal/article"
	"github.com/jonesrussell/newscrawl/internal/content"
	"github.com/jonesrussell/newscrawl/internal/fetch"
)

// nbcMinParagraphChars drops navigation-sized fragments from the body.
const nbcMinParagraphChars = 25

// nbcPromoPhrases mark newsletter and cross-link paragraphs.
var nbcPromoPhrases = []string{"sign up", "subscribe", "click here", "read more"}

// nbcArticleBodyClass is the body class marker NBC sets on article pages.
const nbcArticleBodyClass = "articlePage news_scraper savory"

// NBC crawls nbcnews.com. JSON-LD supplies the metadata; the body comes from
// article paragraphs with promo filtering.
type NBC struct {
	Info
}

// NewNBC builds the NBC News site.
func NewNBC() *NBC {
	return &NBC{Info: Info{
		name:           "nbc",
		allowedDomains: []string{"nbcnews.com", "www.nbcnews.com"},
		startURLs: []string{
			"https://www.nbcnews.com",
			"https://www.nbcnews.com/us-news",
			"https://www.nbcnews.com/politics",
		},
		feedURLs: []string{"https://feeds.nbcnews.com/nbcnews/public/news"},
	}}
}

// IsArticleURL defers to the shared heuristic.
func (s *NBC) IsArticleURL(url string) bool {
	return DefaultIsArticleURL(url)
}

// IsArticlePage checks the NBC body class marker ahead of the shared rules.
func (s *NBC) IsArticlePage(page *fetch.Page) bool {
	if page.IsHTML() {
		if doc, err := page.Document(); err == nil {
			if class := firstAttr(doc, "body", "class"); strings.Contains(class, nbcArticleBodyClass) {
				return true
			}
		}
	}
	return DefaultIsArticlePage(page)
}

// Extract combines JSON-LD metadata with a filtered DOM body.
func (s *NBC) Extract(page *fetch.Page) *article.Extracted {
	out := &article.Extracted{Method: article.MethodHybrid, Confidence: nbcFloor}

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

	paragraphs := paragraphTexts(doc, "article p")
	filtered := filterNBCParagraphs(paragraphs)
	if len(filtered) > 0 {
		out.Body = content.JoinParagraphs(filtered)
	} else if len(paragraphs) > 0 {
		out.Body = content.JoinParagraphs(paragraphs)
	} else {
		out.AddError("No article body paragraphs found")
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
		}
	}

	out.Confidence = NBCScore(Signals{
		HasJSONLD: meta.found,
		HasTitle:  out.HasTitle(),
		HasAuthor: out.Author != "",
		BodyLen:   len(out.Body),
	})
	if out.Confidence <= nbcFloor {
		out.AddError("Low confidence: missing critical content")
	}

	return out
}

// filterNBCParagraphs drops short fragments and promotional paragraphs.
func filterNBCParagraphs(paragraphs []string) []string {
	var kept []string
	for _, para := range paragraphs {
		text := strings.TrimSpace(para)
		if text == "" || len(text) < nbcMinParagraphChars {
			continue
		}
		if containsAny(strings.ToLower(text), nbcPromoPhrases) {
			continue
		}
		kept = append(kept, text)
	}
	return kept
}

// containsAny reports whether text contains any of the given substrings.
func containsAny(text string, substrings []string) bool {
	for _, sub := range substrings {
		if strings.Contains(text, sub) {
			return true
		}
	}
	return false
}
