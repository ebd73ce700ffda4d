// Package sink provides the delivery backends article records are handed to:
// newline-delimited JSON files, Kafka, MongoDB, and Elasticsearch.
package sink

import (
	"context"

	"github.com/jonesrussell/newscrawl/internal/article"
)

// Sink receives article records from the orchestrator. Send is attempted
// exactly once per accepted page; delivery retries, if any, are the sink's
// own concern.
type Sink interface {
	Open(ctx context.Context) error
	Send(ctx context.Context, record *article.Record) error
	Close() error
}

// Discard drops every record. Used in tests and dry runs.
type Discard struct{}

// NewDiscard creates a sink that drops everything.
func NewDiscard() *Discard { return &Discard{} }

func (d *Discard) Open(context.Context) error                  { return nil }
func (d *Discard) Send(context.Context, *article.Record) error { return nil }
func (d *Discard) Close() error                                { return nil }
