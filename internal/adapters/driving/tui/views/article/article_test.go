package article

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/raiz-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/raiz-cli/internal/core/domain"
	"github.com/custodia-labs/raiz-cli/internal/core/ports/driving/drivingtest"
)

func TestView_Empty(t *testing.T) {
	v := NewView(nil, nil, nil)

	assert.Contains(t, v.View(), "Ningún artículo")
}

func TestView_RendersArticle(t *testing.T) {
	v := NewView(nil, drivingtest.NewArticles(), nil)
	v.SetArticle(domain.Article{
		ID:      1,
		Title:   "Clima extremo",
		Summary: "Resumen del clima",
		Source:  "El Diario",
		Tags:    "clima, sequía",
		Status:  domain.StatusPublished,
	})

	out := v.View()
	assert.Contains(t, out, "Clima extremo")
	assert.Contains(t, out, "El Diario")
	assert.Contains(t, out, "clima, sequía")
	assert.Contains(t, out, "Resumen del clima")
	assert.NotContains(t, out, "[e] Editar")
}

func TestView_EditGatedByCallback(t *testing.T) {
	a := domain.Article{ID: 3, Title: "Nota"}

	v := NewView(nil, nil, nil)
	v.SetArticle(a)
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'e'}})
	assert.Nil(t, cmd)

	v = NewView(nil, nil, func() bool { return true })
	v.SetArticle(a)
	_, cmd = v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'e'}})
	require.NotNil(t, cmd)
	assert.Equal(t, messages.EditRequested{Article: a}, cmd())
}

func TestView_EscReturnsToList(t *testing.T) {
	v := NewView(nil, nil, nil)

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})

	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewArticles}, cmd())
}

func TestView_RefreshesOnSave(t *testing.T) {
	v := NewView(nil, nil, nil)
	v.SetArticle(domain.Article{ID: 3, Title: "Viejo"})

	v.Update(messages.ArticleSaved{Article: &domain.Article{ID: 3, Title: "Nuevo"}})
	assert.Equal(t, "Nuevo", v.Article().Title)

	v.Update(messages.ArticleSaved{Article: &domain.Article{ID: 4, Title: "Otro"}})
	assert.Equal(t, "Nuevo", v.Article().Title)
}
