package editor

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/raiz-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/raiz-cli/internal/core/domain"
	"github.com/custodia-labs/raiz-cli/internal/core/ports/driving/drivingtest"
)

func ctrl(t tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: t} }

func newEditor(t *testing.T, a domain.Article) (*View, *drivingtest.Articles) {
	t.Helper()
	svc := drivingtest.NewArticles(a)
	v := NewView(nil, svc)
	v.SetArticle(a)
	return v, svc
}

// finish runs the action command and feeds the result back.
func finish(t *testing.T, v *View, cmd tea.Cmd) tea.Cmd {
	t.Helper()
	require.NotNil(t, cmd)
	require.True(t, v.Busy())
	_, next := v.Update(cmd())
	assert.False(t, v.Busy())
	return next
}

func TestSetArticle_LoadsFields(t *testing.T) {
	v, _ := newEditor(t, domain.Article{ID: 1, Title: "Uno", Summary: "Solo resumen", Tags: "a,b"})

	assert.Equal(t, "Uno", v.title.Value())
	assert.Equal(t, "a,b", v.tags.Value())
	assert.Equal(t, "Solo resumen", v.content.Value())
	assert.Contains(t, v.View(), "Editar artículo #1")
}

func TestSave_EmitsArticleSaved(t *testing.T) {
	v, svc := newEditor(t, domain.Article{ID: 1, Title: "Uno", Content: "texto", Status: domain.StatusDraft})
	v.title.SetValue("Nuevo título")

	_, cmd := v.Update(ctrl(tea.KeyCtrlS))
	next := finish(t, v, cmd)

	require.NotNil(t, next)
	saved, ok := next().(messages.ArticleSaved)
	require.True(t, ok)
	assert.Equal(t, "Nuevo título", saved.Article.Title)
	assert.Equal(t, "Guardado", v.Notice())

	stored, err := svc.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Nuevo título", stored.Title)
	assert.Equal(t, "texto", stored.Summary)
}

func TestRegenerate_ReplacesFields(t *testing.T) {
	v, svc := newEditor(t, domain.Article{ID: 1, Title: "Uno", Content: "viejo"})
	svc.RegenerateFunc = func(context.Context, int64) (*domain.Article, error) {
		return &domain.Article{ID: 1, Title: "Regenerado", Summary: "nuevo", Tags: "x"}, nil
	}

	_, cmd := v.Update(ctrl(tea.KeyCtrlG))
	finish(t, v, cmd)

	assert.Equal(t, "Regenerado", v.title.Value())
	assert.Equal(t, "nuevo", v.content.Value())
	assert.Equal(t, "x", v.tags.Value())
}

func TestFailedActionLeavesState(t *testing.T) {
	v, svc := newEditor(t, domain.Article{ID: 1, Title: "Uno", Content: "viejo"})
	svc.RegenerateFunc = func(context.Context, int64) (*domain.Article, error) {
		return nil, errors.New("servicio caído")
	}

	_, cmd := v.Update(ctrl(tea.KeyCtrlG))
	finish(t, v, cmd)

	assert.EqualError(t, v.Err(), "servicio caído")
	assert.Equal(t, "Uno", v.title.Value())
	assert.Equal(t, "viejo", v.content.Value())
}

func TestRefine_PresetPicker(t *testing.T) {
	v, svc := newEditor(t, domain.Article{ID: 1, Content: "hola"})
	var gotInstruction string
	svc.RefineFunc = func(_ context.Context, _ int64, content, instruction string) (string, error) {
		gotInstruction = instruction
		return content + " refinado", nil
	}

	v.Update(ctrl(tea.KeyCtrlR))
	require.True(t, v.Picking())
	assert.Contains(t, v.View(), "Corregir gramática y estilo")

	v.Update(tea.KeyMsg{Type: tea.KeyDown})
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	finish(t, v, cmd)

	assert.Equal(t, "Hacer más conciso", gotInstruction)
	assert.Equal(t, "hola refinado", v.content.Value())
}

func TestAuditThenFix(t *testing.T) {
	v, svc := newEditor(t, domain.Article{ID: 1, Content: "persistido"})
	svc.AuditFunc = func(context.Context, int64) (string, error) { return "falta una coma", nil }
	var gotContent, gotInstruction string
	svc.RefineFunc = func(_ context.Context, _ int64, content, instruction string) (string, error) {
		gotContent, gotInstruction = content, instruction
		return "corregido", nil
	}

	_, cmd := v.Update(ctrl(tea.KeyCtrlA))
	finish(t, v, cmd)
	assert.Equal(t, "falta una coma", v.Editor().AuditReport())
	assert.Contains(t, v.View(), "falta una coma")

	v.content.SetValue("editado localmente")
	v.Update(ctrl(tea.KeyCtrlR))
	require.Equal(t, auditFixLabel, v.presets[len(v.presets)-1])
	v.selected = len(v.presets) - 1
	_, cmd = v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	finish(t, v, cmd)

	assert.Equal(t, "persistido", gotContent)
	assert.Contains(t, gotInstruction, "falta una coma")
	assert.Equal(t, "corregido", v.content.Value())
}

func TestRecover_WithoutOriginal(t *testing.T) {
	v, _ := newEditor(t, domain.Article{ID: 1, Content: "actual"})

	v.Update(ctrl(tea.KeyCtrlU))

	assert.ErrorIs(t, v.Err(), domain.ErrNoOriginalContent)
	assert.Equal(t, "actual", v.content.Value())
	assert.Contains(t, v.View(), "No hay contenido original")
}

func TestScrapeThenRecover(t *testing.T) {
	v, svc := newEditor(t, domain.Article{ID: 1, Content: "actual"})
	svc.ScrapeFunc = func(context.Context, int64) (*domain.Article, error) {
		return &domain.Article{ID: 1, OriginalContent: "original"}, nil
	}

	_, cmd := v.Update(ctrl(tea.KeyCtrlO))
	finish(t, v, cmd)
	v.Update(ctrl(tea.KeyCtrlU))

	assert.NoError(t, v.Err())
	assert.Equal(t, "original", v.content.Value())
}

func TestKnowledgeAndSuggestions(t *testing.T) {
	v, svc := newEditor(t, domain.Article{ID: 5, Content: "dato", Tags: "clima"})
	var gotTags string
	svc.SuggestionsFunc = func(_ context.Context, q domain.SuggestionQuery) ([]domain.KnowledgeItem, error) {
		gotTags = q.Tags
		return []domain.KnowledgeItem{{ID: 1, Content: "El clima cambia"}}, nil
	}

	_, cmd := v.Update(ctrl(tea.KeyCtrlK))
	finish(t, v, cmd)
	require.Len(t, svc.Knowledge, 1)
	assert.Equal(t, "dato", svc.Knowledge[0].Content)

	_, cmd = v.Update(ctrl(tea.KeyCtrlT))
	finish(t, v, cmd)
	assert.Equal(t, "clima", gotTags)
	assert.Contains(t, v.View(), "El clima cambia")
}

func TestStatusCycles(t *testing.T) {
	v, _ := newEditor(t, domain.Article{ID: 1, Status: domain.StatusDraft})

	v.Update(ctrl(tea.KeyCtrlP))
	assert.Equal(t, domain.StatusPublished, v.Editor().Status())
	assert.Contains(t, v.View(), "(sin guardar)")
}

func TestEscReturnsToList(t *testing.T) {
	v, _ := newEditor(t, domain.Article{ID: 1})

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})

	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewArticles}, cmd())
}

func TestTypingGoesToFocusedField(t *testing.T) {
	v, _ := newEditor(t, domain.Article{ID: 1})

	v.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, focusTitle, v.focus)
	v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("T")})

	assert.Equal(t, "T", v.title.Value())
}
