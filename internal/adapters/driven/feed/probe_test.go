package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/raiz-cli/internal/core/domain"
)

const rssBody = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
  <title>El Diario Verde</title>
  <link>https://verde.example.com</link>
  <description>Noticias</description>
  <item><title>Clima extremo</title><link>https://verde.example.com/1</link></item>
  <item><title>Sequía</title><link>https://verde.example.com/2</link></item>
</channel>
</rss>`

func serve(t *testing.T, status int, contentType, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestProbe_RSS(t *testing.T) {
	srv := serve(t, http.StatusOK, "application/rss+xml", rssBody)

	preview, err := NewProbe(srv.Client(), time.Second).Probe(context.Background(), srv.URL+"/feed")
	require.NoError(t, err)

	assert.Equal(t, "El Diario Verde", preview.Title)
	assert.Equal(t, "https://verde.example.com", preview.Link)
	assert.Equal(t, srv.URL+"/feed", preview.FeedLink)
	assert.Equal(t, 2, preview.ItemCount)
}

func TestProbe_NotAFeed(t *testing.T) {
	srv := serve(t, http.StatusOK, "text/html", "<html><body>hola</body></html>")

	_, err := NewProbe(srv.Client(), time.Second).Probe(context.Background(), srv.URL)
	assert.ErrorIs(t, err, ErrNotAFeed)
}

func TestProbe_HTTPError(t *testing.T) {
	srv := serve(t, http.StatusNotFound, "text/plain", "missing")

	_, err := NewProbe(srv.Client(), time.Second).Probe(context.Background(), srv.URL)
	assert.ErrorIs(t, err, ErrUnreachable)
}

func TestProbe_InvalidURL(t *testing.T) {
	p := NewProbe(nil, 0)

	for _, raw := range []string{"", "not a url", "ftp://example.com/feed"} {
		_, err := p.Probe(context.Background(), raw)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, raw)
	}
}
