// Package sites holds the per-source crawl logic: URL and page
// classification plus the site-specific article extractors. Each source
// implements the Site contract and is selected through a Registry; shared
// default behavior lives in exported base functions that site variants call
// into explicitly.
package sites

import (
	"sort"
	"strings"

	"github.com/jonesrussell/newscrawl/internal/article"
	"github.com/jonesrussell/newscrawl/internal/fetch"
)

// Site is the per-source contract consumed by the orchestrator. URL
// classification is cheap and fetch-free; page classification confirms on
// fetched content; Extract is a pure function of the page.
type Site interface {
	Name() string
	AllowedDomains() []string
	StartURLs() []string
	FeedURLs() []string

	IsArticleURL(url string) bool
	IsArticlePage(page *fetch.Page) bool
	Extract(page *fetch.Page) *article.Extracted
}

// Info carries the static identity of a source. Site implementations embed
// it for the descriptive half of the contract.
type Info struct {
	name           string
	allowedDomains []string
	startURLs      []string
	feedURLs       []string
}

// Name returns the source identifier used in records and the registry.
func (i Info) Name() string { return i.name }

// AllowedDomains returns the hosts the crawl may touch for this source.
func (i Info) AllowedDomains() []string { return i.allowedDomains }

// StartURLs returns the section pages the crawl seeds from.
func (i Info) StartURLs() []string { return i.startURLs }

// FeedURLs returns RSS feeds used as an additional discovery seed.
func (i Info) FeedURLs() []string { return i.feedURLs }

// Registry maps source identifiers to Site implementations.
type Registry struct {
	byName map[string]Site
}

// NewRegistry builds a registry from the given sites.
func NewRegistry(sites ...Site) *Registry {
	r := &Registry{byName: make(map[string]Site, len(sites))}
	for _, s := range sites {
		r.byName[s.Name()] = s
	}
	return r
}

// Builtin returns a registry holding every supported source.
func Builtin() *Registry {
	return NewRegistry(
		NewAP(),
		NewBBC(),
		NewCBS(),
		NewCNN(),
		NewFox(),
		NewGuardian(),
		NewNBC(),
		NewNYT(),
		NewReuters(),
		NewWSJ(),
		NewWashingtonPost(),
		NewAlJazeera(),
	)
}

// Lookup returns the site registered under the given name.
func (r *Registry) Lookup(name string) (Site, bool) {
	s, ok := r.byName[strings.ToLower(name)]
	return s, ok
}

// ForHost returns the site whose allowed domains cover the given host.
func (r *Registry) ForHost(host string) (Site, bool) {
	host = strings.ToLower(host)
	for _, s := range r.byName {
		for _, domain := range s.AllowedDomains() {
			if host == domain || strings.HasSuffix(host, "."+domain) {
				return s, true
			}
		}
	}
	return nil, false
}

// Names returns the registered source identifiers, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
