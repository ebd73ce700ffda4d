package urlutil_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonesrussell/newscrawl/internal/urlutil"
)

func TestCanonicalize_StripsTrackingParams(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "utm family",
			in:   "https://example.com/a?utm_source=foo&utm_medium=email&utm_campaign=x",
			want: "https://example.com/a",
		},
		{
			name: "click ids",
			in:   "https://example.com/a?gclid=123&fbclid=456&msclkid=789",
			want: "https://example.com/a",
		},
		{
			name: "referrer variants",
			in:   "https://example.com/a?ref=home&referer=x&referrer=y&source=tw",
			want: "https://example.com/a",
		},
		{
			name: "mixed tracking and real params",
			in:   "https://example.com/a?utm_source=foo&page=2",
			want: "https://example.com/a?page=2",
		},
		{
			name: "case insensitive keys",
			in:   "https://example.com/a?UTM_Source=foo&trkInfo=abc",
			want: "https://example.com/a",
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, urlutil.Canonicalize(tc.in))
		})
	}
}

func TestCanonicalize_TrackingParamInvariance(t *testing.T) {
	t.Parallel()

	assert.Equal(t,
		urlutil.Canonicalize("https://x.com/a"),
		urlutil.Canonicalize("https://x.com/a?utm_source=foo"))
}

func TestCanonicalize_SortsRemainingParams(t *testing.T) {
	t.Parallel()

	assert.Equal(t,
		urlutil.Canonicalize("https://example.com/a?b=2&a=1"),
		urlutil.Canonicalize("https://example.com/a?a=1&b=2"))
}

func TestCanonicalize_LowercasesSchemeAndHost(t *testing.T) {
	t.Parallel()

	got := urlutil.Canonicalize("HTTPS://Example.COM/Path")
	assert.Equal(t, "https://example.com/Path", got)
}

func TestCanonicalize_TrimsTrailingSlashAndFragment(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "https://example.com/news/story",
		urlutil.Canonicalize("https://example.com/news/story/#comments"))

	// Root path is preserved.
	assert.Equal(t, "https://example.com/", urlutil.Canonicalize("https://example.com/"))
}

func TestCanonicalize_Idempotent(t *testing.T) {
	t.Parallel()

	urls := []string{
		"https://example.com/a?utm_source=foo&page=2&b=1",
		"HTTP://EXAMPLE.com/path/",
		"https://example.com/2026/01/29/some-slug#top",
		"not a url at all",
	}
	for _, u := range urls {
		once := urlutil.Canonicalize(u)
		assert.Equal(t, once, urlutil.Canonicalize(once), "not idempotent for %q", u)
	}
}

func TestCanonicalize_UnparseableReturnsInput(t *testing.T) {
	t.Parallel()

	in := "http://%zz"
	assert.Equal(t, in, urlutil.Canonicalize(in))
}
