package cli

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/raiz-cli/internal/core/domain"
)

func TestArticleCmd_Subcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range articleCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"list", "show", "search", "edit", "publish", "archive", "delete", "refine", "audit"} {
		assert.True(t, names[want], want)
	}
}

func TestArticleList_Published(t *testing.T) {
	ts := setupTestServices(t, nil)

	out, err := execute(t, "", "article", "list")

	require.NoError(t, err)
	assert.Contains(t, out, "Clima extremo")
	assert.Contains(t, out, "Economía")
	assert.NotContains(t, out, "Borrador sin revisar")
	assert.Equal(t, domain.FilterFor(domain.StatusPublished), ts.articles.LastFilter)
}

func TestArticleList_TextFilter(t *testing.T) {
	setupTestServices(t, nil)

	out, err := execute(t, "", "article", "list", "--filter", "clima")

	require.NoError(t, err)
	assert.Contains(t, out, "Clima extremo")
	assert.NotContains(t, out, "Economía")
}

func TestArticleList_StatusFlag(t *testing.T) {
	ts := setupTestServices(t, testAdmin)

	out, err := execute(t, "", "article", "list", "--status", "draft")

	require.NoError(t, err)
	assert.Contains(t, out, "Borrador sin revisar")
	assert.Equal(t, domain.FilterFor(domain.StatusDraft), ts.articles.LastFilter)
}

func TestArticleList_InvalidStatus(t *testing.T) {
	setupTestServices(t, nil)

	_, err := execute(t, "", "article", "list", "--status", "pending")

	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestArticleList_InvalidDate(t *testing.T) {
	setupTestServices(t, nil)

	_, err := execute(t, "", "article", "list", "--from", "10/03/2024")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestArticleList_Columns(t *testing.T) {
	ts := setupTestServices(t, testAdmin)

	out, err := execute(t, "", "article", "list", "--columns")

	require.NoError(t, err)
	assert.Equal(t, domain.StatusFilterAll, ts.articles.LastFilter)
	assert.Contains(t, out, "== Borradores (1) ==")
	assert.Contains(t, out, "== Validados (2) ==")
}

func TestArticleList_JSON(t *testing.T) {
	setupTestServices(t, nil)

	out, err := execute(t, "", "article", "list", "--json")

	require.NoError(t, err)
	assert.Contains(t, out, `"title": "Clima extremo"`)
}

func TestArticleList_Error(t *testing.T) {
	ts := setupTestServices(t, nil)
	ts.articles.ListErr = errors.New("connection refused")

	_, err := execute(t, "", "article", "list")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestArticleShow(t *testing.T) {
	setupTestServices(t, nil)

	out, err := execute(t, "", "article", "show", "1")

	require.NoError(t, err)
	assert.Contains(t, out, "Clima extremo")
	assert.Contains(t, out, "Olas de calor.")
}

func TestArticleShow_InvalidID(t *testing.T) {
	setupTestServices(t, nil)

	_, err := execute(t, "", "article", "show", "abc")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestArticleShow_NotFound(t *testing.T) {
	setupTestServices(t, nil)

	_, err := execute(t, "", "article", "show", "99")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestArticleSearch(t *testing.T) {
	ts := setupTestServices(t, nil)
	ts.articles.SearchResults = []domain.SearchResult{{
		ID: 1, Score: 0.9, Metadata: domain.SearchMetadata{Title: "Clima extremo", Source: "El Diario"},
	}}

	out, err := execute(t, "", "article", "search", "clima", "extremo")

	require.NoError(t, err)
	assert.Contains(t, out, "Results:")
	assert.Contains(t, out, "[1] Clima extremo (0.90)")
	assert.Contains(t, out, "El Diario")
}

func TestArticleSearch_NoResults(t *testing.T) {
	setupTestServices(t, nil)

	out, err := execute(t, "", "article", "search", "nada")

	require.NoError(t, err)
	assert.Contains(t, out, "No results found.")
}

func TestArticleEdit(t *testing.T) {
	ts := setupTestServices(t, testAdmin)

	out, err := execute(t, "", "article", "edit", "3", "--title", "Revisado", "--tags", " clima ,, agua ")

	require.NoError(t, err)
	assert.Contains(t, out, "Article 3 saved")
	require.Len(t, ts.articles.Updated, 1)
	assert.Equal(t, "Revisado", ts.articles.Updated[0].Title)
	assert.Equal(t, "clima, agua", ts.articles.Updated[0].Tags)
}

func TestArticleEdit_ContentFile(t *testing.T) {
	ts := setupTestServices(t, testAdmin)
	path := filepath.Join(t.TempDir(), "body.txt")
	require.NoError(t, os.WriteFile(path, []byte("Cuerpo nuevo\n"), 0o600))

	_, err := execute(t, "", "article", "edit", "3", "--content-file", path)

	require.NoError(t, err)
	require.Len(t, ts.articles.Updated, 1)
	assert.Equal(t, "Cuerpo nuevo", ts.articles.Updated[0].Content)
}

func TestArticleEdit_NothingToChange(t *testing.T) {
	ts := setupTestServices(t, testAdmin)

	out, err := execute(t, "", "article", "edit", "3")

	require.NoError(t, err)
	assert.Contains(t, out, "Nothing to change.")
	assert.Empty(t, ts.articles.Updated)
}

func TestArticleEdit_InvalidStatus(t *testing.T) {
	setupTestServices(t, testAdmin)

	_, err := execute(t, "", "article", "edit", "3", "--status", "pending")

	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestArticlePublish(t *testing.T) {
	ts := setupTestServices(t, testAdmin)

	out, err := execute(t, "", "article", "publish", "3")

	require.NoError(t, err)
	assert.Contains(t, out, "Article 3 published.")
	require.Len(t, ts.articles.Updated, 1)
	assert.Equal(t, domain.StatusPublished, ts.articles.Updated[0].Status)
}

func TestArticlePublish_AllFail(t *testing.T) {
	setupTestServices(t, testAdmin)

	_, err := execute(t, "", "article", "publish", "42")

	assert.Error(t, err)
}

func TestArticleDelete_PartialFailure(t *testing.T) {
	ts := setupTestServices(t, testAdmin)
	ts.articles.Fail[2] = errors.New("locked")

	out, err := execute(t, "", "article", "delete", "1", "2", "3", "--yes")

	require.NoError(t, err)
	assert.Contains(t, out, "2 article(s) deleted.")
	assert.Contains(t, out, "article 2: locked")
	assert.ElementsMatch(t, []int64{1, 3}, ts.articles.Deleted)
	remaining := ts.articles.All()
	require.Len(t, remaining, 1)
	assert.Equal(t, int64(2), remaining[0].ID)
}

func TestArticleDelete_Aborted(t *testing.T) {
	ts := setupTestServices(t, testAdmin)

	out, err := execute(t, "n\n", "article", "delete", "1")

	require.NoError(t, err)
	assert.Contains(t, out, "Aborted.")
	assert.Empty(t, ts.articles.Deleted)
}

func TestArticleDelete_Confirmed(t *testing.T) {
	ts := setupTestServices(t, testAdmin)

	_, err := execute(t, "s\n", "article", "delete", "1")

	require.NoError(t, err)
	assert.Equal(t, []int64{1}, ts.articles.Deleted)
}

func TestArticleDelete_AllFail(t *testing.T) {
	ts := setupTestServices(t, testAdmin)
	ts.articles.Fail[1] = errors.New("locked")

	_, err := execute(t, "", "article", "delete", "1", "-y")

	assert.Error(t, err)
}

func TestArticleArchive_SkipsUnknown(t *testing.T) {
	ts := setupTestServices(t, testAdmin)

	out, err := execute(t, "", "article", "archive", "1", "77")

	require.NoError(t, err)
	assert.Contains(t, out, "1 article(s) archived.")
	assert.Contains(t, out, "article 77: not found, skipped")
	require.Len(t, ts.articles.Updated, 1)
	assert.Equal(t, domain.StatusArchived, ts.articles.Updated[0].Status)
}
