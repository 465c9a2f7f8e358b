package menu

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/raiz-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/raiz-cli/internal/core/domain"
)

func labels(v *View) []string {
	out := make([]string, 0, len(v.items))
	for _, it := range v.Items() {
		out = append(out, it.Label)
	}
	return out
}

func TestNewView_Anonymous(t *testing.T) {
	view := NewView(nil)

	require.NotNil(t, view)
	assert.Equal(t, []string{"Artículos", "Iniciar sesión", "Registrarse", "Ajustes", "Ayuda", "Salir"}, labels(view))
}

func TestSetUser_AdminSeesAdminEntries(t *testing.T) {
	view := NewView(nil)
	view.SetUser(&domain.User{Username: "ana", Role: domain.RoleAdmin})

	assert.Equal(t, []string{"Artículos", "Fuentes", "Usuarios", "Cerrar sesión", "Ajustes", "Ayuda", "Salir"}, labels(view))
}

func TestSetUser_RegularUserHasNoAdminEntries(t *testing.T) {
	view := NewView(nil)
	view.SetUser(&domain.User{Username: "leo", Role: domain.RoleUser})

	assert.NotContains(t, labels(view), "Fuentes")
	assert.NotContains(t, labels(view), "Usuarios")
	assert.Contains(t, labels(view), "Cerrar sesión")
}

func TestSetUser_ClampsSelection(t *testing.T) {
	view := NewView(nil)
	view.SetUser(&domain.User{Username: "ana", Role: domain.RoleAdmin})
	view.selected = len(view.items) - 1

	view.SetUser(&domain.User{Username: "leo", Role: domain.RoleUser})

	assert.Equal(t, len(view.items)-1, view.Selected())
}

func TestUpdate_Navigation(t *testing.T) {
	view := NewView(nil)

	view.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, view.Selected())

	view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	assert.Equal(t, 0, view.Selected())

	for range 10 {
		view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	}
	assert.Equal(t, len(view.items)-1, view.Selected())
}

func TestUpdate_EnterNavigates(t *testing.T) {
	view := NewView(nil)

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewArticles}, cmd())
}

func TestUpdate_EnterLogout(t *testing.T) {
	view := NewView(nil)
	view.SetUser(&domain.User{Username: "leo", Role: domain.RoleUser})
	view.selected = 1

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd)
	assert.Equal(t, messages.LogoutRequested{}, cmd())
}

func TestUpdate_QuitItem(t *testing.T) {
	view := NewView(nil)
	view.selected = len(view.items) - 1

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestView_Render(t *testing.T) {
	view := NewView(nil)
	assert.Equal(t, "Initialising...", view.View())

	view.SetDimensions(80, 24)
	out := view.View()
	assert.Contains(t, out, "Raíz")
	assert.Contains(t, out, "Iniciar sesión")
}
