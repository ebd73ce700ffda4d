package sites

import (
	"strings"

	"github.com/jonesrussell/newscrawl/internal/article"
	"github.com/jonesrussell/newscrawl/internal/content"
	"github.com/jonesrussell/newscrawl/internal/fetch"
)

// Fox paragraph filter thresholds.
const (
	foxMinParagraphChars = 20
	foxMaxAllCapsChars   = 100
)

// Fox crawls foxnews.com. Article bodies are interleaved with promotional
// blocks, so candidate paragraphs are filtered before joining. JSON-LD is
// often incomplete; confidence is hard-capped at 0.75.
type Fox struct {
	Info
}

// NewFox builds the Fox News site.
func NewFox() *Fox {
	return &Fox{Info: Info{
		name:           "foxnews",
		allowedDomains: []string{"foxnews.com", "www.foxnews.com"},
		startURLs: []string{
			"https://foxnews.com",
			"https://www.foxnews.com/politics",
			"https://www.foxnews.com/us",
		},
		feedURLs: []string{"https://moxie.foxnews.com/google-publisher/latest.xml"},
	}}
}

// IsArticleURL defers to the shared heuristic.
func (s *Fox) IsArticleURL(url string) bool {
	return DefaultIsArticleURL(url)
}

// IsArticlePage checks the Fox single-article body class ahead of the shared
// rules.
func (s *Fox) IsArticlePage(page *fetch.Page) bool {
	if page.IsHTML() {
		if doc, err := page.Document(); err == nil {
			if class := firstAttr(doc, "body", "class"); strings.Contains(class, "fn article-single") {
				return true
			}
		}
	}
	return DefaultIsArticlePage(page)
}

// Extract reads the body from the article-body block, dropping promotional
// paragraphs.
func (s *Fox) Extract(page *fetch.Page) *article.Extracted {
	out := &article.Extracted{Method: article.MethodDOM, Confidence: foxFloor}

	doc, err := page.Document()
	if err != nil {
		out.AddError("page could not be parsed: " + err.Error())
		return out
	}

	out.Title = firstText(doc, "h1")
	if out.Title == "" {
		out.AddError("Title not found")
	}

	filtered := filterFoxParagraphs(paragraphTexts(doc, ".article-body p"))
	if len(filtered) > 0 {
		out.Body = content.JoinParagraphs(filtered)
	} else if paragraphs := paragraphTexts(doc, "article p"); len(paragraphs) > 0 {
		out.Body = content.JoinParagraphs(paragraphs)
	} else {
		out.AddError("No article body paragraphs found")
	}

	meta := readStructured(content.ReadJSONLD(doc))
	if meta.found {
		if meta.author != "" {
			out.Author = meta.author
			out.AuthorSource = article.AuthorSourceExtractor
		}
		out.PublishedAt = meta.published
		out.ModifiedAt = meta.modified
		out.Section = meta.section
	}

	if out.Author == "" {
		if author := metaName(doc, "author"); author != "" {
			out.Author = author
			out.AuthorSource = article.AuthorSourceMeta
		} else if byline := firstText(doc, "[class*='author']"); byline != "" {
			out.Author = byline
			out.AuthorSource = article.AuthorSourceExtractor
		}
	}
	if out.PublishedAt.IsZero() {
		if pub := metaProperty(doc, "article:published_time"); pub != "" {
			out.PublishedAt = content.ParseDate(pub)
		} else if datetime := timeDatetime(doc); datetime != "" {
			out.PublishedAt = content.ParseDate(datetime)
		}
	}

	out.Confidence = FoxScore(Signals{
		HasJSONLD: meta.found,
		HasTitle:  out.HasTitle(),
		HasAuthor: out.Author != "",
		BodyLen:   len(out.Body),
	})
	if out.Confidence <= foxFloor {
		out.AddError("Low confidence: missing critical content")
	}

	return out
}

// filterFoxParagraphs drops promotional content: WATCH: lines, very short
// navigation fragments, and short all-caps teasers.
func filterFoxParagraphs(paragraphs []string) []string {
	var kept []string
	for _, para := range paragraphs {
		text := strings.TrimSpace(para)
		if text == "" {
			continue
		}
		if strings.HasPrefix(strings.ToUpper(text), "WATCH:") {
			continue
		}
		if len(text) < foxMinParagraphChars {
			continue
		}
		if isAllCaps(text) && len(text) < foxMaxAllCapsChars {
			continue
		}
		kept = append(kept, text)
	}
	return kept
}

// isAllCaps reports whether the text has letters and none of them are
// lowercase.
func isAllCaps(text string) bool {
	return text == strings.ToUpper(text) && text != strings.ToLower(text)
}
