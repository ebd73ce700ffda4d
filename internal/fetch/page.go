// Package fetch provides the fetched-page value consumed by classifiers and
// extractors, and the colly-backed engine that produces them.
package fetch

import (
	"bytes"
	"net/http"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
)

// Page is a successfully fetched page: status, headers, and raw HTML. The
// parsed document is built lazily and cached; a Page is immutable once handed
// to the orchestrator, so concurrent reads are safe after the first
// Document call.
type Page struct {
	URL        string
	StatusCode int
	Header     http.Header
	Body       []byte

	docOnce sync.Once
	doc     *goquery.Document
	docErr  error
}

// NewPage builds a Page from a completed fetch.
func NewPage(url string, statusCode int, header http.Header, body []byte) *Page {
	return &Page{
		URL:        url,
		StatusCode: statusCode,
		Header:     header,
		Body:       body,
	}
}

// ContentType returns the lowercased Content-Type header value.
func (p *Page) ContentType() string {
	if p.Header == nil {
		return ""
	}
	return strings.ToLower(p.Header.Get("Content-Type"))
}

// IsHTML reports whether the response looks like an HTML document. Feed and
// API responses (xml, json) are never article pages.
func (p *Page) IsHTML() bool {
	ct := p.ContentType()
	if ct == "" {
		return true
	}
	if strings.Contains(ct, "xml") || strings.Contains(ct, "json") {
		return false
	}
	return strings.Contains(ct, "html") || strings.Contains(ct, "text/plain")
}

// Document parses the page body into a goquery document, caching the result.
func (p *Page) Document() (*goquery.Document, error) {
	p.docOnce.Do(func() {
		p.doc, p.docErr = goquery.NewDocumentFromReader(bytes.NewReader(p.Body))
	})
	return p.doc, p.docErr
}
