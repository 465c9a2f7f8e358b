package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func typeText(f *Form, s string) {
	for _, r := range s {
		f.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestField_Value(t *testing.T) {
	f := NewField(nil, "Usuario", "nombre")

	f.SetValue("ana")
	assert.Equal(t, "ana", f.Value())
	assert.Equal(t, "Usuario", f.Label())

	f.Reset()
	assert.Empty(t, f.Value())
}

func TestPasswordField_MasksInput(t *testing.T) {
	f := NewPasswordField(nil, "Contraseña")
	f.Focus()
	f.SetValue("secreto")

	assert.Equal(t, "secreto", f.Value())
	assert.NotContains(t, f.View(), "secreto")
}

func TestForm_FocusCycles(t *testing.T) {
	a := NewField(nil, "A", "")
	b := NewField(nil, "B", "")
	form := NewForm(a, b)

	assert.Equal(t, 0, form.Focus())
	assert.True(t, a.Focused())

	form.Next()
	assert.Equal(t, 1, form.Focus())
	assert.True(t, form.OnLast())
	assert.False(t, a.Focused())

	form.Next()
	assert.Equal(t, 0, form.Focus())

	form.Prev()
	assert.Equal(t, 1, form.Focus())
}

func TestForm_TypingGoesToFocusedField(t *testing.T) {
	a := NewField(nil, "A", "")
	b := NewField(nil, "B", "")
	form := NewForm(a, b)

	typeText(form, "uno")
	form.Next()
	typeText(form, "dos")

	assert.Equal(t, "uno", a.Value())
	assert.Equal(t, "dos", b.Value())

	form.Reset()
	assert.Empty(t, a.Value())
	assert.Empty(t, b.Value())
	assert.Equal(t, 0, form.Focus())
}
