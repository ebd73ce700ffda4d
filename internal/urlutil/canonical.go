// Package urlutil provides URL canonicalization for stable identity hashing.
package urlutil

import (
	"net/url"
	"sort"
	"strings"
)

// trackingParams are query parameter keys (lowercased) stripped during
// canonicalization. Two URLs that differ only in these parameters identify
// the same page.
var trackingParams = map[string]bool{
	"gclid":    true,
	"fbclid":   true,
	"msclkid":  true,
	"twclid":   true,
	"igshid":   true,
	"mc_cid":   true,
	"mc_eid":   true,
	"ref":      true,
	"referer":  true,
	"referrer": true,
	"source":   true,
	"_ga":      true,
	"_gl":      true,
	"_hsenc":   true,
	"_hsmi":    true,
	"trk":      true,
	"trkinfo":  true,
}

// trackingPrefixes match parameter families rather than exact keys (utm_source,
// utm_medium, utm_campaign and friends).
var trackingPrefixes = []string{"utm_"}

// Canonicalize normalizes a URL for deduplication hashing: tracking parameters
// are removed, the remaining query is re-encoded in sorted key order, scheme
// and host are lowercased, a trailing slash is trimmed from non-root paths,
// and the fragment is dropped.
//
// Canonicalize never fails; if the input cannot be parsed it is returned
// unchanged. The operation is idempotent.
func Canonicalize(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil {
		return raw
	}

	parsed.Scheme = strings.ToLower(parsed.Scheme)
	parsed.Host = strings.ToLower(parsed.Host)
	parsed.Fragment = ""
	parsed.RawQuery = canonicalQuery(parsed.Query())

	if len(parsed.Path) > 1 {
		parsed.Path = strings.TrimRight(parsed.Path, "/")
	}

	return parsed.String()
}

// canonicalQuery drops tracking parameters and re-encodes the survivors with
// keys in sorted order so equivalent URLs serialize identically.
func canonicalQuery(values url.Values) string {
	keys := make([]string, 0, len(values))
	for key := range values {
		if isTrackingParam(key) {
			continue
		}
		keys = append(keys, key)
	}
	if len(keys) == 0 {
		return ""
	}

	sort.Strings(keys)

	var b strings.Builder
	for _, key := range keys {
		for _, value := range values[key] {
			if b.Len() > 0 {
				b.WriteByte('&')
			}
			b.WriteString(url.QueryEscape(key))
			b.WriteByte('=')
			b.WriteString(url.QueryEscape(value))
		}
	}
	return b.String()
}

// isTrackingParam reports whether a query key belongs to the tracking deny set.
func isTrackingParam(key string) bool {
	lower := strings.ToLower(key)
	if trackingParams[lower] {
		return true
	}
	for _, prefix := range trackingPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}
