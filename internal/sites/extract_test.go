package sites_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/newscrawl/internal/article"
	"github.com/jonesrussell/newscrawl/internal/sites"
)

func TestCBS_Extract_JSONLDFullBody(t *testing.T) {
	t.Parallel()

	body := strings.Repeat("the senate voted on the measure late on tuesday ", 15)
	html := `<html><head><script type="application/ld+json">` +
		`{"@type":"NewsArticle","headline":"Vote","articleBody":"` + body + `","author":{"name":"Jane Doe"}}` +
		`</script></head><body></body></html>`
	page := htmlPage(t, "https://www.cbsnews.com/news/senate-vote-measure-tuesday/", html)

	out := sites.NewCBS().Extract(page)

	assert.Equal(t, article.MethodJSONLDFull, out.Method)
	assert.InDelta(t, 1.0, out.Confidence, 0)
	assert.Equal(t, "Vote", out.Title)
	assert.Equal(t, "Jane Doe", out.Author)
	assert.Equal(t, article.AuthorSourceExtractor, out.AuthorSource)
	assert.NotEmpty(t, out.Body)
	require.NoError(t, out.Validate())
}

func TestCBS_Extract_DOMBodyWhenJSONLDLacksIt(t *testing.T) {
	t.Parallel()

	paragraphs := strings.Repeat("<p>"+strings.Repeat("c", 60)+"</p>", 10)
	html := `<html><head><script type="application/ld+json">` +
		`{"@type":"NewsArticle","headline":"T","author":"Jane Doe"}` +
		`</script></head><body><div class="content__body">` + paragraphs + `</div></body></html>`
	page := htmlPage(t, "https://www.cbsnews.com/news/some-story-here-now/", html)

	out := sites.NewCBS().Extract(page)

	assert.Equal(t, article.MethodJSONLD, out.Method)
	assert.InDelta(t, 0.85, out.Confidence, 0)
}

func TestCBS_Extract_NoJSONLD(t *testing.T) {
	t.Parallel()

	paragraphs := strings.Repeat("<p>"+strings.Repeat("c", 60)+"</p>", 10)
	page := htmlPage(t, "https://www.cbsnews.com/news/some-story-here-now/",
		"<html><body><h1>T</h1><article>"+paragraphs+"</article></body></html>")

	out := sites.NewCBS().Extract(page)

	assert.Equal(t, article.MethodDOM, out.Method)
	assert.Contains(t, out.Errors, "JSON-LD not found")
}

func TestCNN_IsArticleURL(t *testing.T) {
	t.Parallel()

	cnn := sites.NewCNN()
	assert.True(t, cnn.IsArticleURL("https://www.cnn.com/2026/01/27/politics/some-story/index.html"))
	assert.False(t, cnn.IsArticleURL("https://www.cnn.com/video/2026/01/27/clip.cnn"))
	assert.False(t, cnn.IsArticleURL("https://www.cnn.com/live-news/storm-updates"))
	assert.False(t, cnn.IsArticleURL("https://www.cnn.com/politics"))
}

func TestCNN_IsArticlePage_DataPageType(t *testing.T) {
	t.Parallel()

	cnn := sites.NewCNN()
	page := htmlPage(t, "https://www.cnn.com/politics",
		`<html><body data-page-type="article"><p>x</p></body></html>`)
	assert.True(t, cnn.IsArticlePage(page))

	section := htmlPage(t, "https://www.cnn.com/politics",
		`<html><body data-page-type="section front"><p>x</p></body></html>`)
	assert.False(t, cnn.IsArticlePage(section))
}

func TestCNN_Extract_BylineFallback(t *testing.T) {
	t.Parallel()

	paragraphs := strings.Repeat("<p>"+strings.Repeat("d", 60)+"</p>", 10)
	html := `<html><body><h1>Headline Here</h1>` +
		`<span data-testid="byline">Jane Doe, CNN</span>` +
		`<article>` + paragraphs + `</article></body></html>`
	page := htmlPage(t, "https://www.cnn.com/2026/01/27/politics/story/index.html", html)

	out := sites.NewCNN().Extract(page)

	assert.Equal(t, "Jane Doe, CNN", out.Author)
	assert.Equal(t, article.AuthorSourceExtractor, out.AuthorSource)
	assert.InDelta(t, 0.85, out.Confidence, 0)
	assert.Equal(t, article.MethodDOM, out.Method)
}

func TestFox_Extract_FiltersPromoParagraphs(t *testing.T) {
	t.Parallel()

	story := strings.Repeat("the city council approved the new budget on thursday evening ", 10)
	html := `<html><body><h1>Budget Approved</h1><div class="article-body">` +
		`<p>WATCH: the mayor speaks about the vote tonight</p>` +
		`<p>short</p>` +
		`<p>CLICK FOR THE LATEST UPDATES</p>` +
		`<p>` + story + `</p>` +
		`</div></body></html>`
	page := htmlPage(t, "https://www.foxnews.com/politics/city-council-budget-vote", html)

	out := sites.NewFox().Extract(page)

	assert.NotContains(t, out.Body, "WATCH:")
	assert.NotContains(t, out.Body, "short")
	assert.NotContains(t, out.Body, "CLICK FOR THE LATEST UPDATES")
	assert.Contains(t, out.Body, "city council approved")
	assert.LessOrEqual(t, out.Confidence, 0.75)
}

func TestNBC_Extract_FiltersPromoParagraphs(t *testing.T) {
	t.Parallel()

	story := strings.Repeat("officials said the storm would reach the coast by early morning ", 10)
	html := `<html><body><h1>Storm Warning</h1><article>` +
		`<p>Sign up for our morning newsletter to get the latest headlines</p>` +
		`<p>Menu</p>` +
		`<p>` + story + `</p>` +
		`</article></body></html>`
	page := htmlPage(t, "https://www.nbcnews.com/us-news/storm-warning-coast-morning", html)

	out := sites.NewNBC().Extract(page)

	assert.NotContains(t, out.Body, "Sign up")
	assert.NotContains(t, out.Body, "Menu")
	assert.Contains(t, out.Body, "storm would reach the coast")
}

func TestGuardian_Extract_ItempropBody(t *testing.T) {
	t.Parallel()

	paragraphs := strings.Repeat("<p>"+strings.Repeat("e", 60)+"</p>", 10)
	html := `<html><head><script type="application/ld+json">` +
		`{"@type":"NewsArticle","headline":"G","author":[{"name":"A One"},{"name":"B Two"}],"keywords":"world, uk"}` +
		`</script></head><body><div itemprop="articleBody">` + paragraphs + `</div></body></html>`
	page := htmlPage(t, "https://www.theguardian.com/world/2026/jan/29/some-story", html)

	out := sites.NewGuardian().Extract(page)

	assert.Equal(t, article.MethodJSONLD, out.Method)
	assert.Equal(t, "A One, B Two", out.Author)
	assert.Equal(t, []string{"world", "uk"}, out.Tags)
	assert.InDelta(t, 0.90, out.Confidence, 0)
}

func TestNYT_Extract_BylMetaAndCap(t *testing.T) {
	t.Parallel()

	paragraphs := strings.Repeat("<p>"+strings.Repeat("f", 60)+"</p>", 10)
	html := `<html><head><meta name="byl" content="By Jane Doe"></head>` +
		`<body><h1>N</h1><section name="articleBody">` + paragraphs + `</section></body></html>`
	page := htmlPage(t, "https://www.nytimes.com/2026/01/29/world/some-story.html", html)

	out := sites.NewNYT().Extract(page)

	assert.Equal(t, "Jane Doe", out.Author)
	assert.Equal(t, article.AuthorSourceMeta, out.AuthorSource)
	assert.LessOrEqual(t, out.Confidence, 0.70)
	assert.InDelta(t, 0.70, out.Confidence, 0)
}

func TestExtract_NeverPanicsOnHostileInput(t *testing.T) {
	t.Parallel()

	fixtures := []string{
		"",
		"not html at all",
		"<html><head><script type='application/ld+json'>{broken</script></head><body></body></html>",
		"<html><body>" + strings.Repeat("<div>", 200) + "</body></html>",
	}
	for _, site := range []sites.Site{
		sites.NewAP(), sites.NewBBC(), sites.NewCBS(), sites.NewCNN(),
		sites.NewFox(), sites.NewGuardian(), sites.NewNBC(), sites.NewNYT(),
		sites.NewReuters(),
	} {
		for _, html := range fixtures {
			out := site.Extract(htmlPage(t, "https://example.com/article/x-y-z-w", html))
			require.NotNil(t, out, "site %s", site.Name())
			require.NoError(t, out.Validate(), "site %s", site.Name())
		}
	}
}
