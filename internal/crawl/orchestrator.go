// Package crawl drives the per-page pipeline: classify a fetched page,
// extract article content or discovery links, compute dedup identity, apply
// the content-quality gate, and hand records to the sink.
package crawl

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonesrussell/newscrawl/internal/article"
	"github.com/jonesrussell/newscrawl/internal/dedupe"
	"github.com/jonesrussell/newscrawl/internal/fetch"
	"github.com/jonesrussell/newscrawl/internal/logger"
	"github.com/jonesrussell/newscrawl/internal/sink"
	"github.com/jonesrussell/newscrawl/internal/sites"
	"github.com/jonesrussell/newscrawl/internal/urlutil"
)

// Quality gate and fan-out defaults.
const (
	// DefaultMaxLinksPerPage caps discovery fan-out per page.
	DefaultMaxLinksPerPage = 100
	// DefaultMinBodyChars is the minimum normalized body length for a
	// record to count as parsed.
	DefaultMinBodyChars = 250

	// junkShortLineChars and junkShortLineRatio detect navigation-like
	// content: a body dominated by short lines is junk even when long.
	junkShortLineChars = 30
	junkShortLineRatio = 0.70
)

// Config controls one orchestrator instance.
type Config struct {
	MaxLinksPerPage int
	MinBodyChars    int
	SummaryMaxChars int
	// PageBudget stops scheduling new discovery links once this many pages
	// have been handled. Zero means unlimited.
	PageBudget int
}

func (c Config) withDefaults() Config {
	if c.MaxLinksPerPage <= 0 {
		c.MaxLinksPerPage = DefaultMaxLinksPerPage
	}
	if c.MinBodyChars <= 0 {
		c.MinBodyChars = DefaultMinBodyChars
	}
	if c.SummaryMaxChars <= 0 {
		c.SummaryMaxChars = article.DefaultSummaryMaxChars
	}
	return c
}

// LinkCandidate is a discovered article link, tied to the page it came from.
type LinkCandidate struct {
	AbsoluteURL string
	SourcePage  string
}

// Orchestrator runs the classify-extract-dedupe-emit loop for one source. It
// implements fetch.Handler so it can be plugged straight into the fetch
// engine.
type Orchestrator struct {
	site    sites.Site
	sink    sink.Sink
	cfg     Config
	logger  logger.Interface
	metrics *Metrics

	pagesHandled atomic.Int64

	// authorHints carries feed-provided author names keyed by canonical
	// URL, used when the extractor finds no author.
	hintMu      sync.RWMutex
	authorHints map[string]string

	now func() time.Time
}

// NewOrchestrator builds an orchestrator for the given source and sink.
func NewOrchestrator(site sites.Site, snk sink.Sink, cfg Config, log logger.Interface) *Orchestrator {
	if log == nil {
		log = logger.NewNoop()
	}
	return &Orchestrator{
		site:        site,
		sink:        snk,
		cfg:         cfg.withDefaults(),
		logger:      log.WithSource(site.Name()),
		metrics:     NewMetrics(),
		authorHints: make(map[string]string),
		now:         time.Now,
	}
}

// Metrics returns the run counters.
func (o *Orchestrator) Metrics() *Metrics { return o.metrics }

// AddAuthorHint records a feed-provided author for a URL. The hint only
// applies when extraction finds no author of its own.
func (o *Orchestrator) AddAuthorHint(rawURL, author string) {
	if author == "" {
		return
	}
	o.hintMu.Lock()
	defer o.hintMu.Unlock()
	o.authorHints[urlutil.Canonicalize(rawURL)] = author
}

func (o *Orchestrator) authorHint(rawURL string) string {
	o.hintMu.RLock()
	defer o.hintMu.RUnlock()
	return o.authorHints[urlutil.Canonicalize(rawURL)]
}

// HandlePage processes one fetched page. Article pages produce exactly one
// record and no follow links; discovery pages produce follow links and no
// record.
func (o *Orchestrator) HandlePage(ctx context.Context, page *fetch.Page) []string {
	handled := o.pagesHandled.Add(1)
	o.metrics.PageSeen()

	if o.site.IsArticlePage(page) {
		o.processArticle(ctx, page)
		return nil
	}

	if ctx.Err() != nil {
		return nil
	}
	if o.cfg.PageBudget > 0 && handled >= int64(o.cfg.PageBudget) {
		o.logger.Debug("Page budget reached, not scheduling more links",
			"budget", o.cfg.PageBudget)
		return nil
	}

	candidates := o.DiscoverLinks(page)
	links := make([]string, 0, len(candidates))
	for _, c := range candidates {
		links = append(links, c.AbsoluteURL)
	}
	o.metrics.LinksFollowed(len(links))
	return links
}

// DiscoverLinks extracts outbound links from a discovery page, keeps the
// ones inside the source's domains that look like articles, and caps the
// result to bound fan-out.
func (o *Orchestrator) DiscoverLinks(page *fetch.Page) []LinkCandidate {
	doc, err := page.Document()
	if err != nil {
		o.logger.Debug("Discovery page could not be parsed", "url", page.URL, "error", err)
		return nil
	}

	base, err := url.Parse(page.URL)
	if err != nil {
		return nil
	}

	seen := make(map[string]struct{})
	var candidates []LinkCandidate

	doc.Find("a[href]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		href, _ := sel.Attr("href")
		absolute := resolveLink(base, href)
		if absolute == "" {
			return true
		}
		if !o.allowedDomain(absolute) {
			return true
		}
		if !o.site.IsArticleURL(absolute) {
			return true
		}

		key := urlutil.Canonicalize(absolute)
		if _, dup := seen[key]; dup {
			return true
		}
		seen[key] = struct{}{}

		candidates = append(candidates, LinkCandidate{AbsoluteURL: absolute, SourcePage: page.URL})
		return len(candidates) < o.cfg.MaxLinksPerPage
	})

	return candidates
}

// resolveLink turns an href into an absolute http(s) URL, or empty.
func resolveLink(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") ||
		strings.HasPrefix(href, "javascript:") || strings.HasPrefix(href, "mailto:") {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return ""
	}
	return resolved.String()
}

func (o *Orchestrator) allowedDomain(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	host := strings.ToLower(u.Hostname())
	for _, domain := range o.site.AllowedDomains() {
		if host == domain || strings.HasSuffix(host, "."+domain) {
			return true
		}
	}
	return false
}

// processArticle extracts, gates, and emits exactly one record for the page.
func (o *Orchestrator) processArticle(ctx context.Context, page *fetch.Page) {
	record := o.BuildRecord(page)
	o.metrics.ArticleEmitted(!record.ParseOK)

	if err := o.sink.Send(ctx, record); err != nil {
		o.metrics.SinkError()
		o.logger.Error("Failed to deliver record", "url", record.URL, "error", err)
		return
	}

	o.logger.Debug("Article emitted",
		"url", record.URL,
		"parse_ok", record.ParseOK,
		"confidence", record.Confidence,
		"method", record.ExtractionMethod)
}

// BuildRecord maps a candidate article page to its sink-facing record. A
// record is always produced: total extraction failure yields one with
// parse_ok=false and identity fields still populated.
func (o *Orchestrator) BuildRecord(page *fetch.Page) *article.Record {
	record := &article.Record{
		URL:             page.URL,
		Source:          o.site.Name(),
		ScrapedAt:       o.now().UTC().Format(time.RFC3339),
		URLHash:         dedupe.URLHash(page.URL),
		SummaryMaxChars: o.cfg.SummaryMaxChars,
	}

	extracted := o.extract(page)

	record.Title = extracted.Title
	record.Author = extracted.Author
	record.Text = extracted.Body
	record.Section = extracted.Section
	record.Tags = extracted.Tags
	record.PublishedAt = article.FormatTime(extracted.PublishedAt)
	record.ModifiedAt = article.FormatTime(extracted.ModifiedAt)
	record.Confidence = extracted.Confidence
	record.ExtractionMethod = extracted.Method
	record.ContentLength = utf8.RuneCountInString(extracted.Body)
	record.Summary, record.SummaryTruncated = article.Summarize(extracted.Body, o.cfg.SummaryMaxChars)
	record.Fingerprint = dedupe.Fingerprint(extracted.Title, extracted.PublishedAt, o.site.Name(), extracted.Body)

	record.AuthorSource = extracted.AuthorSource
	if record.Author == "" {
		if hint := o.authorHint(page.URL); hint != "" {
			record.Author = hint
			record.AuthorSource = article.AuthorSourceFeed
		} else {
			record.AuthorSource = article.AuthorSourceMissing
		}
	}

	record.ParseOK, record.ParseError = o.qualityGate(extracted)
	return record
}

// extract invokes the site extractor with a recovery boundary: a panicking
// parse on one page must never abort the run.
func (o *Orchestrator) extract(page *fetch.Page) (out *article.Extracted) {
	defer func() {
		if r := recover(); r != nil {
			o.logger.Error("Extractor panicked", "url", page.URL, "panic", fmt.Sprint(r))
			out = &article.Extracted{Method: article.MethodDOM}
			out.AddError(fmt.Sprintf("extractor panic: %v", r))
		}
	}()

	out = o.site.Extract(page)
	if out == nil {
		out = &article.Extracted{Method: article.MethodDOM}
		out.AddError("extractor returned no result")
		return out
	}
	if err := out.Validate(); err != nil {
		out.Confidence = 0
		out.AddError("invalid extraction result: " + err.Error())
	}
	return out
}

// qualityGate decides parse_ok. Sub-standard pages are still emitted, only
// flagged, so failure rates stay observable per source.
func (o *Orchestrator) qualityGate(extracted *article.Extracted) (bool, string) {
	switch {
	case !extracted.HasTitle() && !extracted.HasBody():
		if len(extracted.Errors) > 0 {
			return false, strings.Join(extracted.Errors, "; ")
		}
		return false, "no title and no body extracted"
	case utf8.RuneCountInString(extracted.Body) < o.cfg.MinBodyChars:
		return false, fmt.Sprintf("body below minimum length (%d < %d chars)",
			utf8.RuneCountInString(extracted.Body), o.cfg.MinBodyChars)
	case isNavigationLike(extracted.Body):
		return false, "body dominated by navigation-like short lines"
	default:
		return true, ""
	}
}

// isNavigationLike reports whether the body is mostly short lines.
func isNavigationLike(body string) bool {
	var total, short int
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		total++
		if utf8.RuneCountInString(line) < junkShortLineChars {
			short++
		}
	}
	if total == 0 {
		return false
	}
	return float64(short)/float64(total) > junkShortLineRatio
}

// LogSummary writes the per-source run summary used for failure-rate
// monitoring.
func (o *Orchestrator) LogSummary() {
	snap := o.metrics.Snapshot()
	o.logger.Info("Crawl run finished",
		"pages", snap.PagesSeen,
		"articles", snap.Articles,
		"parse_failures", snap.ParseFailures,
		"failure_rate", fmt.Sprintf("%.2f", snap.FailureRate()),
		"links_followed", snap.LinksFollowed,
		"sink_errors", snap.SinkErrors,
		"duration", snap.Duration.Round(time.Millisecond))
}
