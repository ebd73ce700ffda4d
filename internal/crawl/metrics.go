package crawl

import (
	"sync"
	"time"
)

// Metrics tracks one crawl run for a single source. Per-source failure rates
// are the primary observability contract: they must be computable from the
// emitted records alone, and these counters mirror that aggregation for the
// run summary log line.
type Metrics struct {
	mu            sync.RWMutex
	startTime     time.Time
	pagesSeen     int64
	articles      int64
	parseFailures int64
	linksFollowed int64
	sinkErrors    int64
	lastProcessed time.Time
}

// NewMetrics creates a metrics tracker for a run starting now.
func NewMetrics() *Metrics {
	return &Metrics{startTime: time.Now()}
}

// PageSeen records a handled page of any kind.
func (m *Metrics) PageSeen() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pagesSeen++
	m.lastProcessed = time.Now()
}

// ArticleEmitted records an emitted article record; failed marks parse_ok
// being false on it.
func (m *Metrics) ArticleEmitted(failed bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.articles++
	if failed {
		m.parseFailures++
	}
}

// LinksFollowed records discovery links handed back to the fetch engine.
func (m *Metrics) LinksFollowed(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.linksFollowed += int64(n)
}

// SinkError records a failed delivery attempt.
func (m *Metrics) SinkError() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sinkErrors++
}

// Snapshot is a point-in-time copy of the run counters.
type Snapshot struct {
	PagesSeen     int64
	Articles      int64
	ParseFailures int64
	LinksFollowed int64
	SinkErrors    int64
	Duration      time.Duration
}

// FailureRate returns the share of emitted records with parse_ok=false.
func (s Snapshot) FailureRate() float64 {
	if s.Articles == 0 {
		return 0
	}
	return float64(s.ParseFailures) / float64(s.Articles)
}

// Snapshot returns a copy of the current counters.
func (m *Metrics) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return Snapshot{
		PagesSeen:     m.pagesSeen,
		Articles:      m.articles,
		ParseFailures: m.parseFailures,
		LinksFollowed: m.linksFollowed,
		SinkErrors:    m.sinkErrors,
		Duration:      time.Since(m.startTime),
	}
}
