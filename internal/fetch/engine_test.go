package fetch_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/newscrawl/internal/fetch"
	"github.com/jonesrussell/newscrawl/internal/logger"
)

// collectHandler records every page it sees and delegates follow-up links.
type collectHandler struct {
	mu     sync.Mutex
	urls   []string
	follow func(page *fetch.Page) []string
}

func (h *collectHandler) HandlePage(_ context.Context, page *fetch.Page) []string {
	h.mu.Lock()
	h.urls = append(h.urls, page.URL)
	h.mu.Unlock()

	if h.follow == nil {
		return nil
	}
	return h.follow(page)
}

func (h *collectHandler) seen() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.urls...)
}

func TestNewEngine_NilHandler(t *testing.T) {
	t.Parallel()

	_, err := fetch.NewEngine(fetch.Config{}, nil, logger.NewNoop())
	assert.Error(t, err)
}

func TestEngine_RunFollowsHandlerLinks(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/":
			fmt.Fprint(w, `<html><body><a href="/story">story</a></body></html>`)
		case "/story":
			fmt.Fprint(w, `<html><body><p>leaf page</p></body></html>`)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	handler := &collectHandler{follow: func(page *fetch.Page) []string {
		if strings.HasSuffix(page.URL, "/") {
			return []string{srv.URL + "/story"}
		}
		return nil
	}}

	engine, err := fetch.NewEngine(fetch.Config{
		Parallelism:    2,
		RateLimit:      time.Millisecond,
		RequestTimeout: 5 * time.Second,
	}, handler, logger.NewNoop())
	require.NoError(t, err)

	require.NoError(t, engine.Run(context.Background(), []string{srv.URL + "/"}))

	seen := handler.seen()
	assert.Contains(t, seen, srv.URL+"/")
	assert.Contains(t, seen, srv.URL+"/story")
}

func TestEngine_RunCancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `<html><body></body></html>`)
	}))
	defer srv.Close()

	handler := &collectHandler{}
	engine, err := fetch.NewEngine(fetch.Config{
		RateLimit:      time.Millisecond,
		RequestTimeout: time.Second,
	}, handler, logger.NewNoop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = engine.Run(ctx, []string{srv.URL + "/"})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, handler.seen())
}
