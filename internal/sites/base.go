package sites

import (
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonesrussell/newscrawl/internal/content"
	"github.com/jonesrussell/newscrawl/internal/fetch"
)

// Base URL heuristic thresholds.
const (
	// minArticlePathLen is the shortest path accepted without a stronger
	// article signal.
	minArticlePathLen = 15
	// minSlugTokens is how many hyphenated tokens make a path segment look
	// like a headline slug.
	minSlugTokens = 4
	// minTrailingIDDigits is the shortest trailing numeric id accepted as an
	// article marker.
	minTrailingIDDigits = 6
)

var (
	// sectionRootPattern matches the root of a section or hub, never an
	// article.
	sectionRootPattern = regexp.MustCompile(`(?i)^/(news|world|us|uk|politics|business|technology|tech|sport|sports|health|science|entertainment|opinion|travel|style|culture|video|live)/?$`)

	datePathPattern   = regexp.MustCompile(`/\d{4}/\d{2}(/\d{2})?/`)
	trailingIDPattern = regexp.MustCompile(`(\d{6,})/?$`)
)

// denySubstrings mark paths that are never articles: tag/author/search hubs
// and feed or sitemap endpoints.
var denySubstrings = []string{
	"/tag/", "/author/", "/topics/", "/search",
	"rss", "feed", "sitemap", "atom",
}

// DefaultIsArticleURL is the shared URL-shape heuristic: reject known
// section roots and feed endpoints, accept article-path markers, date
// segments, long numeric ids, and multi-hyphen slugs, and fall back to path
// length. Absence of evidence means "not an article".
func DefaultIsArticleURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}

	path := u.Path
	if path == "" || path == "/" {
		return false
	}

	lower := strings.ToLower(path)
	for _, deny := range denySubstrings {
		if strings.Contains(lower, deny) {
			return false
		}
	}
	if sectionRootPattern.MatchString(path) {
		return false
	}

	if strings.Contains(lower, "/article/") || strings.Contains(lower, "/articles/") {
		return true
	}
	if datePathPattern.MatchString(path) {
		return true
	}
	if m := trailingIDPattern.FindStringSubmatch(path); m != nil && len(m[1]) >= minTrailingIDDigits {
		return true
	}
	if slugTokens(path) >= minSlugTokens {
		return true
	}

	return len(path) >= minArticlePathLen
}

// slugTokens counts hyphenated tokens in the last path segment.
func slugTokens(path string) int {
	path = strings.Trim(path, "/")
	segments := strings.Split(path, "/")
	last := segments[len(segments)-1]

	count := 0
	for _, token := range strings.Split(last, "-") {
		if token != "" {
			count++
		}
	}
	return count
}

// DefaultIsArticlePage is the shared page-content confirmation: non-HTML
// responses are never articles, og:type and an <article> tag are accepted,
// and the URL heuristic is the last resort.
func DefaultIsArticlePage(page *fetch.Page) bool {
	if !page.IsHTML() {
		return false
	}

	doc, err := page.Document()
	if err != nil {
		return DefaultIsArticleURL(page.URL)
	}

	if metaProperty(doc, "og:type") == "article" {
		return true
	}
	if doc.Find("article").Length() > 0 {
		return true
	}
	return DefaultIsArticleURL(page.URL)
}

// structuredMeta is the article metadata pulled from a JSON-LD
// NewsArticle/Article object.
type structuredMeta struct {
	found     bool
	title     string
	author    string
	section   string
	body      string
	tags      []string
	published time.Time
	modified  time.Time
}

// readStructured locates the first NewsArticle/Article object among the
// parsed JSON-LD objects and pulls the standard metadata fields from it.
func readStructured(objects []map[string]any) structuredMeta {
	obj := content.FindByType(objects, "NewsArticle", "Article")
	if obj == nil {
		return structuredMeta{}
	}

	return structuredMeta{
		found:     true,
		title:     content.JSONLDString(obj, "headline"),
		author:    content.JSONLDAuthor(obj),
		section:   content.JSONLDString(obj, "articleSection"),
		body:      content.JSONLDString(obj, "articleBody"),
		tags:      content.JSONLDKeywords(obj),
		published: content.JSONLDDate(obj, "datePublished"),
		modified:  content.JSONLDDate(obj, "dateModified"),
	}
}

// paragraphTexts returns the text of every element matched by the selector.
func paragraphTexts(doc *goquery.Document, selector string) []string {
	var texts []string
	doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
		texts = append(texts, sel.Text())
	})
	return texts
}

// firstText returns the normalized text of the first match.
func firstText(doc *goquery.Document, selector string) string {
	return content.NormalizeWhitespace(doc.Find(selector).First().Text())
}

// firstAttr returns the first match's attribute value, trimmed.
func firstAttr(doc *goquery.Document, selector, attr string) string {
	val, _ := doc.Find(selector).First().Attr(attr)
	return strings.TrimSpace(val)
}

// metaName reads <meta name=...> content.
func metaName(doc *goquery.Document, name string) string {
	return content.NormalizeWhitespace(firstAttr(doc, "meta[name='"+name+"']", "content"))
}

// metaProperty reads <meta property=...> content.
func metaProperty(doc *goquery.Document, property string) string {
	return content.NormalizeWhitespace(firstAttr(doc, "meta[property='"+property+"']", "content"))
}

// timeDatetime reads the datetime attribute of the first <time> element.
func timeDatetime(doc *goquery.Document) string {
	return firstAttr(doc, "time", "datetime")
}
