package cli

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/raiz-cli/internal/core/domain"
)

func TestArticleRegenerate_PreviewOnly(t *testing.T) {
	ts := setupTestServices(t, testAdmin)
	ts.articles.RegenerateFunc = func(context.Context, int64) (*domain.Article, error) {
		return &domain.Article{ID: 1, Title: "Titular nuevo", Content: "Texto reescrito", Tags: "clima"}, nil
	}

	out, err := execute(t, "", "article", "regenerate", "1")

	require.NoError(t, err)
	assert.Contains(t, out, "Titular nuevo")
	assert.Contains(t, out, "Texto reescrito")
	assert.Contains(t, out, "Not saved")
	assert.Empty(t, ts.articles.Updated)
}

func TestArticleRegenerate_Error(t *testing.T) {
	ts := setupTestServices(t, testAdmin)
	ts.articles.RegenerateFunc = func(context.Context, int64) (*domain.Article, error) {
		return nil, errors.New("generator down")
	}

	_, err := execute(t, "", "article", "regenerate", "1", "--save")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "generator down")
	assert.Empty(t, ts.articles.Updated)
}

func TestArticleRefine_PresetAndSave(t *testing.T) {
	ts := setupTestServices(t, testAdmin)
	var instruction string
	ts.articles.RefineFunc = func(_ context.Context, _ int64, content, instr string) (string, error) {
		instruction = instr
		return content + " Corregido.", nil
	}

	out, err := execute(t, "", "article", "refine", "1", "--preset", "1", "--save")

	require.NoError(t, err)
	assert.Equal(t, "Corregir gramática y estilo", instruction)
	assert.Contains(t, out, "Article 1 saved")
	require.Len(t, ts.articles.Updated, 1)
	assert.Equal(t, "Olas de calor. Corregido.", ts.articles.Updated[0].Content)
}

func TestArticleRefine_RequiresInstruction(t *testing.T) {
	setupTestServices(t, testAdmin)

	_, err := execute(t, "", "article", "refine", "1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = execute(t, "", "article", "refine", "1", "--preset", "9")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestArticleAudit(t *testing.T) {
	setupTestServices(t, testAdmin)

	out, err := execute(t, "", "article", "audit", "1")

	require.NoError(t, err)
	assert.Contains(t, out, "Audit report:")
	assert.Contains(t, out, "sin errores")
}

func TestArticleAudit_Fix(t *testing.T) {
	ts := setupTestServices(t, testAdmin)
	var instruction string
	ts.articles.AuditFunc = func(context.Context, int64) (string, error) { return "fecha incorrecta", nil }
	ts.articles.RefineFunc = func(_ context.Context, _ int64, _, instr string) (string, error) {
		instruction = instr
		return "Texto corregido", nil
	}

	_, err := execute(t, "", "article", "audit", "1", "--fix", "--save")

	require.NoError(t, err)
	assert.Contains(t, instruction, "fecha incorrecta")
	require.Len(t, ts.articles.Updated, 1)
	assert.Equal(t, "Texto corregido", ts.articles.Updated[0].Content)
}

func TestArticleScrape(t *testing.T) {
	ts := setupTestServices(t, testAdmin)
	ts.articles.ScrapeFunc = func(context.Context, int64) (*domain.Article, error) {
		return &domain.Article{ID: 1, OriginalContent: "Texto original de la fuente"}, nil
	}

	out, err := execute(t, "", "article", "scrape", "1")

	require.NoError(t, err)
	assert.Contains(t, out, "Texto original de la fuente")
}

func TestArticleRecover_NoOriginal(t *testing.T) {
	setupTestServices(t, testAdmin)

	_, err := execute(t, "", "article", "recover", "1")

	require.ErrorIs(t, err, domain.ErrNoOriginalContent)
	assert.Contains(t, err.Error(), "raiz article scrape 1")
}

func TestArticleKB(t *testing.T) {
	ts := setupTestServices(t, testAdmin)

	out, err := execute(t, "", "article", "kb", "1")

	require.NoError(t, err)
	assert.Contains(t, out, "Knowledge item 1 created from article 1.")
	require.Len(t, ts.articles.Knowledge, 1)
	assert.Equal(t, "Olas de calor.", ts.articles.Knowledge[0].Content)
}

func TestArticleSuggestions_ByTags(t *testing.T) {
	ts := setupTestServices(t, testAdmin)
	var got domain.SuggestionQuery
	ts.articles.SuggestionsFunc = func(_ context.Context, q domain.SuggestionQuery) ([]domain.KnowledgeItem, error) {
		got = q
		return []domain.KnowledgeItem{{ID: 5, Content: "Contexto climático", Tags: "clima"}}, nil
	}

	out, err := execute(t, "", "article", "suggestions", "--tags", "clima", "-q", "calor")

	require.NoError(t, err)
	assert.Equal(t, domain.SuggestionQuery{Tags: "clima", Query: "calor"}, got)
	assert.Contains(t, out, "Contexto climático")
}

func TestArticleSuggestions_Empty(t *testing.T) {
	setupTestServices(t, testAdmin)

	out, err := execute(t, "", "article", "suggestions", "1")

	require.NoError(t, err)
	assert.Contains(t, out, "No suggestions.")
}

func TestArticlePresets(t *testing.T) {
	setupTestServices(t, nil)

	out, err := execute(t, "", "article", "presets")

	require.NoError(t, err)
	for i, p := range domain.DefaultRefinePresets {
		assert.Contains(t, out, p, i)
	}
	assert.Contains(t, out, "1. Corregir gramática y estilo")
}
