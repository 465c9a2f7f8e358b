package api

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/raiz-cli/internal/core/domain"
)

const articleJSON = `{
	"id": 7,
	"title": "Clima extremo",
	"content": "Cuerpo",
	"url": "https://efe.com/a",
	"source": "EFE",
	"published_at": null,
	"summary": null,
	"original_content": "Original",
	"tags": "clima, agua",
	"status": "draft",
	"created_at": "2024-03-10T12:30:00.123456"
}`

func TestArticleRepository_List(t *testing.T) {
	var status string
	c := newTestClient(t, map[string]http.HandlerFunc{
		"GET /articles": func(w http.ResponseWriter, r *http.Request) {
			status = r.URL.Query().Get("status")
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte("[" + articleJSON + "]"))
		},
	})

	articles, err := c.Articles().List(context.Background(), domain.FilterFor(domain.StatusDraft), "tok")
	require.NoError(t, err)

	assert.Equal(t, "draft", status)
	require.Len(t, articles, 1)
	a := articles[0]
	assert.Equal(t, int64(7), a.ID)
	assert.Nil(t, a.PublishedAt)
	assert.Empty(t, a.Summary)
	assert.Equal(t, "Original", a.OriginalContent)
	assert.Equal(t, domain.StatusDraft, a.Status)
	assert.Equal(t, time.Date(2024, 3, 10, 12, 30, 0, 123456000, time.UTC), a.CreatedAt)
}

func TestArticleRepository_Update(t *testing.T) {
	var body map[string]any
	c := newTestClient(t, map[string]http.HandlerFunc{
		"PUT /articles/{id}": func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "7", r.PathValue("id"))
			_ = json.NewDecoder(r.Body).Decode(&body)
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(articleJSON))
		},
	})

	_, err := c.Articles().Update(context.Background(), domain.Article{
		ID: 7, Title: "T", Content: "C", Summary: "S", Tags: "a", Status: domain.StatusArchived,
	}, "tok")
	require.NoError(t, err)

	assert.Equal(t, "T", body["title"])
	assert.Equal(t, "C", body["content"])
	assert.Equal(t, "S", body["summary"])
	assert.Equal(t, "archived", body["status"])
}

func TestArticleRepository_RefineAndAudit(t *testing.T) {
	var refineBody map[string]string
	c := newTestClient(t, map[string]http.HandlerFunc{
		"POST /articles/{id}/refine": func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewDecoder(r.Body).Decode(&refineBody)
			writeJSON(w, http.StatusOK, map[string]string{"refined_content": "Nuevo"})
		},
		"POST /articles/{id}/audit": func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, map[string]string{"audit_report": "Sin errores"})
		},
	})
	ctx := context.Background()

	refined, err := c.Articles().Refine(ctx, 7, "Viejo", "Hacer más conciso", "tok")
	require.NoError(t, err)
	assert.Equal(t, "Nuevo", refined)
	assert.Equal(t, "Viejo", refineBody["content"])
	assert.Equal(t, "Hacer más conciso", refineBody["instruction"])

	report, err := c.Articles().Audit(ctx, 7, "tok")
	require.NoError(t, err)
	assert.Equal(t, "Sin errores", report)
}

func TestArticleRepository_RegenerateAndScrape(t *testing.T) {
	c := newTestClient(t, map[string]http.HandlerFunc{
		"POST /articles/{id}/regenerate": func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(articleJSON))
		},
		"POST /articles/{id}/scrape": func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"detail": "Scraping failed: timeout"})
		},
	})
	ctx := context.Background()

	a, err := c.Articles().Regenerate(ctx, 7, "tok")
	require.NoError(t, err)
	assert.Equal(t, "Clima extremo", a.Title)

	_, err = c.Articles().Scrape(ctx, 7, "tok")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Scraping failed: timeout", apiErr.Detail)
}

func TestArticleRepository_DeleteAndSearch(t *testing.T) {
	var query string
	c := newTestClient(t, map[string]http.HandlerFunc{
		"DELETE /articles/{id}": func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
		},
		"GET /search": func(w http.ResponseWriter, r *http.Request) {
			query = r.URL.Query().Get("query")
			writeJSON(w, http.StatusOK, []map[string]any{{
				"id":              3,
				"score":           0.42,
				"metadata":        map[string]any{"title": "Sequía", "published_at": "2024-03-01"},
				"content_snippet": "Falta agua",
			}})
		},
	})
	ctx := context.Background()

	require.NoError(t, c.Articles().Delete(ctx, 7, "tok"))

	results, err := c.Articles().Search(ctx, "sequía en el sur")
	require.NoError(t, err)
	assert.Equal(t, "sequía en el sur", query)
	require.Len(t, results, 1)
	assert.Equal(t, "Sequía", results[0].Metadata.Title)
	assert.InDelta(t, 0.42, results[0].Score, 0.0001)
}
