package fetch

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	colly "github.com/gocolly/colly/v2"

	"github.com/jonesrussell/newscrawl/internal/logger"
)

// Engine defaults, applied when the config leaves a field zero.
const (
	defaultParallelism    = 4
	defaultRateLimit      = 2 * time.Second
	defaultRequestTimeout = 30 * time.Second
	defaultMaxDepth       = 3
	defaultMaxRetries     = 2
)

// RandomDelayDivisor derives the random jitter from the rate limit.
const RandomDelayDivisor = 2

// retryCountKey is the request context key tracking HTTP retries in OnError.
const retryCountKey = "retry_count"

// ErrEngineStopped is returned when Visit is called after the run context
// was cancelled.
var ErrEngineStopped = errors.New("fetch engine stopped")

// Handler consumes successfully fetched pages and returns the URLs the crawl
// should follow next. Retry and politeness policy stay inside the engine; the
// handler only ever sees pages that fetched cleanly.
type Handler interface {
	HandlePage(ctx context.Context, page *Page) (followURLs []string)
}

// Config controls one engine instance. The user agent is an explicit value
// passed in at construction, never a process-wide default.
type Config struct {
	UserAgent      string
	AllowedDomains []string
	Parallelism    int
	RateLimit      time.Duration
	RequestTimeout time.Duration
	MaxDepth       int
	MaxRetries     int
}

// withDefaults fills unset fields.
func (c Config) withDefaults() Config {
	if c.Parallelism <= 0 {
		c.Parallelism = defaultParallelism
	}
	if c.RateLimit <= 0 {
		c.RateLimit = defaultRateLimit
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = defaultRequestTimeout
	}
	if c.MaxDepth <= 0 {
		c.MaxDepth = defaultMaxDepth
	}
	if c.MaxRetries <= 0 {
		c.MaxRetries = defaultMaxRetries
	}
	return c
}

// Engine drives the fetch loop for one site using a colly collector: bounded
// parallelism, per-host rate limiting, already-visited suppression, and retry
// on transient network failures. Pages are handed to the Handler; follow-up
// URLs returned by the handler are queued back into the collector.
type Engine struct {
	cfg       Config
	logger    logger.Interface
	collector *colly.Collector
	handler   Handler
}

// NewEngine builds an engine for the given domains and handler.
func NewEngine(cfg Config, handler Handler, log logger.Interface) (*Engine, error) {
	if handler == nil {
		return nil, errors.New("handler cannot be nil")
	}
	cfg = cfg.withDefaults()

	opts := []colly.CollectorOption{
		colly.Async(true),
		colly.MaxDepth(cfg.MaxDepth),
	}
	if len(cfg.AllowedDomains) > 0 {
		opts = append(opts, colly.AllowedDomains(cfg.AllowedDomains...))
	}
	if cfg.UserAgent != "" {
		opts = append(opts, colly.UserAgent(cfg.UserAgent))
	}

	c := colly.NewCollector(opts...)
	c.SetRequestTimeout(cfg.RequestTimeout)

	if err := c.Limit(&colly.LimitRule{
		DomainGlob:  "*",
		Parallelism: cfg.Parallelism,
		Delay:       cfg.RateLimit,
		RandomDelay: cfg.RateLimit / RandomDelayDivisor,
	}); err != nil {
		return nil, fmt.Errorf("failed to set rate limit: %w", err)
	}

	return &Engine{cfg: cfg, logger: log, collector: c, handler: handler}, nil
}

// Run crawls from the given start URLs until the frontier drains or the
// context is cancelled. Cancellation is cooperative: in-flight requests
// finish and their pages are still handled, but no new requests are
// scheduled.
func (e *Engine) Run(ctx context.Context, startURLs []string) error {
	e.collector.OnRequest(func(r *colly.Request) {
		if ctx.Err() != nil {
			r.Abort()
		}
	})

	e.collector.OnResponse(func(r *colly.Response) {
		page := NewPage(r.Request.URL.String(), r.StatusCode, *r.Headers, r.Body)
		for _, follow := range e.handler.HandlePage(ctx, page) {
			if err := e.visit(ctx, r, follow); err != nil {
				e.logger.Debug("Skipping follow link", "url", follow, "error", err)
			}
		}
	})

	e.collector.OnError(func(r *colly.Response, err error) {
		e.handleError(r, err)
	})

	for _, u := range startURLs {
		if err := e.collector.Visit(u); err != nil {
			e.logger.Warn("Failed to queue start URL", "url", u, "error", err)
		}
	}

	e.collector.Wait()
	return ctx.Err()
}

// visit schedules a follow-up fetch, preserving colly's depth accounting.
func (e *Engine) visit(ctx context.Context, r *colly.Response, link string) error {
	if ctx.Err() != nil {
		return ErrEngineStopped
	}
	return r.Request.Visit(link)
}

// handleError retries transient network failures up to MaxRetries; everything
// else is logged and dropped; a dead page never aborts the run.
func (e *Engine) handleError(r *colly.Response, err error) {
	if !isTransient(err) {
		e.logger.Debug("Fetch failed", "url", r.Request.URL.String(), "error", err)
		return
	}

	retries, _ := r.Ctx.GetAny(retryCountKey).(int)
	if retries >= e.cfg.MaxRetries {
		e.logger.Warn("Fetch failed after retries",
			"url", r.Request.URL.String(),
			"error", err,
			"retries", retries)
		return
	}

	r.Ctx.Put(retryCountKey, retries+1)
	if retryErr := r.Request.Retry(); retryErr != nil {
		e.logger.Debug("Retry failed", "url", r.Request.URL.String(), "error", retryErr)
	}
}

// isTransient reports whether a fetch error is worth retrying.
func isTransient(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}
	return false
}
