// Package dedupe computes the identity keys used for duplicate suppression:
// a URL hash for exact identity and a content fingerprint for catching the
// same story reachable via different URLs. Both are pure functions; actual
// dedup-set membership lives with the sink or storage layer.
package dedupe

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/jonesrussell/newscrawl/internal/urlutil"
)

// fingerprintBodyChars is how much body text feeds the fingerprint. Enough to
// distinguish stories while staying stable across trailing-content edits.
const fingerprintBodyChars = 2000

// URLHash returns the hex SHA-256 of the canonicalized URL. URLs differing
// only in tracking parameters, trailing slash, or fragment hash identically.
func URLHash(rawURL string) string {
	return hash(urlutil.Canonicalize(rawURL))
}

// Fingerprint returns a content-derived dedup key. With a body present it
// hashes the title plus the first 2000 characters of body text; without one
// it falls back to title, published time, and source.
func Fingerprint(title string, publishedAt time.Time, source, body string) string {
	if body != "" {
		runes := []rune(body)
		if len(runes) > fingerprintBodyChars {
			runes = runes[:fingerprintBodyChars]
		}
		return hash(title + "|" + string(runes))
	}

	published := ""
	if !publishedAt.IsZero() {
		published = publishedAt.UTC().Format(time.RFC3339)
	}
	return hash(title + "|" + published + "|" + source)
}

func hash(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
