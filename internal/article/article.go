// Package article defines the extraction result and the sink-facing record
// types shared by the site extractors and the crawl orchestrator.
package article

import (
	"fmt"
	"time"
)

// Extraction method vocabulary. The method records which signal source(s)
// contributed to an extraction.
const (
	// MethodDOM means all content came from DOM selectors.
	MethodDOM = "dom"
	// MethodJSONLD means metadata came from JSON-LD structured data.
	MethodJSONLD = "json-ld"
	// MethodHybrid means JSON-LD metadata combined with a DOM body.
	MethodHybrid = "hybrid"
	// MethodJSONLDFull means the full article body was taken from JSON-LD
	// articleBody, skipping DOM body extraction entirely.
	MethodJSONLDFull = "jsonld_full"
)

// Author provenance values recorded on the final record.
const (
	AuthorSourceFeed      = "feed"
	AuthorSourceExtractor = "extractor"
	AuthorSourceMeta      = "meta"
	AuthorSourceMissing   = "missing"
)

// Extracted is the intermediate result of a single extractor call: typed
// content plus a per-site confidence score and the non-fatal issues hit along
// the way. It is created fresh per page, owned by the caller, and never
// persisted directly; the orchestrator folds it into a Record.
//
// Confidence is calibrated per site and is not comparable across sites.
type Extracted struct {
	Title       string
	Body        string
	Author      string
	PublishedAt time.Time
	ModifiedAt  time.Time
	Section     string
	Tags        []string

	// AuthorSource records where Author came from (extractor or meta);
	// empty when Author is empty.
	AuthorSource string

	Method     string
	Confidence float64
	Errors     []string
}

// NewExtracted builds an extraction result, enforcing the confidence
// invariant: a value outside [0, 1] is a construction error, not a warning.
func NewExtracted(method string, confidence float64) (*Extracted, error) {
	if confidence < 0.0 || confidence > 1.0 {
		return nil, fmt.Errorf("confidence must be between 0.0 and 1.0, got %g", confidence)
	}
	return &Extracted{Method: method, Confidence: confidence}, nil
}

// Validate checks the invariants enforced at construction. Extractors that
// assemble the struct directly call this before returning.
func (e *Extracted) Validate() error {
	if e.Confidence < 0.0 || e.Confidence > 1.0 {
		return fmt.Errorf("confidence must be between 0.0 and 1.0, got %g", e.Confidence)
	}
	return nil
}

// AddError records a human-readable, non-fatal extraction issue. Errors
// accumulate; their presence does not imply a zero confidence.
func (e *Extracted) AddError(msg string) {
	e.Errors = append(e.Errors, msg)
}

// HasTitle reports whether a headline was found.
func (e *Extracted) HasTitle() bool { return e.Title != "" }

// HasBody reports whether any body text was found.
func (e *Extracted) HasBody() bool { return e.Body != "" }
