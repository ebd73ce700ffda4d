package content

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// jsonLDSelector locates embedded structured data blocks.
const jsonLDSelector = `script[type='application/ld+json']`

// ReadJSONLD parses every JSON-LD script block in the document into generic
// objects. A block holding a JSON array contributes each contained object; a
// single object contributes itself. Malformed blocks are skipped silently;
// a broken script must never fail the page. Insertion order across blocks and
// array items is preserved.
func ReadJSONLD(doc *goquery.Document) []map[string]any {
	var objects []map[string]any

	doc.Find(jsonLDSelector).Each(func(_ int, sel *goquery.Selection) {
		var data any
		if err := json.Unmarshal([]byte(sel.Text()), &data); err != nil {
			return
		}

		switch v := data.(type) {
		case []any:
			for _, item := range v {
				if obj, ok := item.(map[string]any); ok {
					objects = append(objects, obj)
				}
			}
		case map[string]any:
			objects = append(objects, v)
		}
	})

	return objects
}

// FindByType returns the first object whose @type matches one of the given
// schema type names (e.g. "NewsArticle", "Article"), or nil.
func FindByType(objects []map[string]any, typeNames ...string) map[string]any {
	for _, obj := range objects {
		typeVal, ok := obj["@type"].(string)
		if !ok {
			continue
		}
		for _, name := range typeNames {
			if typeVal == name {
				return obj
			}
		}
	}
	return nil
}

// JSONLDString extracts a string field from a JSON-LD object, whitespace
// normalized. String-array values are joined with ", " (articleSection is an
// array on some sites).
func JSONLDString(obj map[string]any, key string) string {
	switch v := obj[key].(type) {
	case string:
		return NormalizeWhitespace(v)
	case []any:
		items := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				items = append(items, s)
			}
		}
		return JoinList(items)
	default:
		return ""
	}
}

// JSONLDAuthor extracts the author field, which sites publish as a plain
// string, an object with a name, or a list of either. Multiple names are
// joined with ", ".
func JSONLDAuthor(obj map[string]any) string {
	switch v := obj["author"].(type) {
	case string:
		return NormalizeWhitespace(v)
	case map[string]any:
		if name, ok := v["name"].(string); ok {
			return NormalizeWhitespace(name)
		}
	case []any:
		names := make([]string, 0, len(v))
		for _, item := range v {
			switch a := item.(type) {
			case string:
				names = append(names, a)
			case map[string]any:
				if name, ok := a["name"].(string); ok {
					names = append(names, name)
				}
			}
		}
		return JoinList(names)
	}
	return ""
}

// JSONLDKeywords extracts the keywords field as an ordered tag list. A string
// value is comma-split; a list value is taken item by item. Each tag is
// trimmed and empty tags are dropped.
func JSONLDKeywords(obj map[string]any) []string {
	switch v := obj["keywords"].(type) {
	case string:
		return SplitTags(v)
	case []any:
		var tags []string
		for _, item := range v {
			if s, ok := item.(string); ok {
				if tag := NormalizeWhitespace(s); tag != "" {
					tags = append(tags, tag)
				}
			}
		}
		return tags
	default:
		return nil
	}
}

// JSONLDDate extracts and parses a date field (datePublished, dateModified).
// Returns the zero time when absent or unparseable.
func JSONLDDate(obj map[string]any, key string) time.Time {
	if s, ok := obj[key].(string); ok {
		return ParseDate(s)
	}
	return time.Time{}
}

// SplitTags splits a comma-separated keyword string into trimmed, non-empty
// tags, preserving source order.
func SplitTags(s string) []string {
	var tags []string
	for _, part := range strings.Split(s, ",") {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
