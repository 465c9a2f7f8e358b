// Package input provides labelled text input components for the TUI.
package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/raiz-cli/internal/adapters/driving/tui/styles"
)

// Field wraps a bubbles textinput with a label.
type Field struct {
	label     string
	textinput textinput.Model
	styles    *styles.Styles
}

// NewField creates a text field with the given label and placeholder.
func NewField(s *styles.Styles, label, placeholder string) *Field {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 512
	ti.Width = 50

	return &Field{label: label, textinput: ti, styles: s}
}

// NewPasswordField creates a field that masks its input.
func NewPasswordField(s *styles.Styles, label string) *Field {
	f := NewField(s, label, "")
	f.textinput.EchoMode = textinput.EchoPassword
	f.textinput.EchoCharacter = '•'
	return f
}

// Update handles input messages.
func (f *Field) Update(msg tea.Msg) (*Field, tea.Cmd) {
	var cmd tea.Cmd
	f.textinput, cmd = f.textinput.Update(msg)
	return f, cmd
}

// View renders the label and input.
func (f *Field) View() string {
	label := f.styles.Subtitle.Render(f.label + ": ")
	if f.textinput.Focused() {
		label = f.styles.Title.Render(f.label + ": ")
	}
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.JoinHorizontal(lipgloss.Center, label, f.styles.InputField.Render(f.textinput.View()))
}

// Label returns the field label.
func (f *Field) Label() string { return f.label }

// Value returns the current input value.
func (f *Field) Value() string { return f.textinput.Value() }

// SetValue sets the input value.
func (f *Field) SetValue(value string) { f.textinput.SetValue(value) }

// Focus sets focus on the input.
func (f *Field) Focus() tea.Cmd { return f.textinput.Focus() }

// Blur removes focus from the input.
func (f *Field) Blur() { f.textinput.Blur() }

// Focused returns whether the input is focused.
func (f *Field) Focused() bool { return f.textinput.Focused() }

// SetWidth sets the width of the input.
func (f *Field) SetWidth(width int) {
	f.textinput.Width = max(width-len(f.label)-8, 20)
}

// Reset clears the input.
func (f *Field) Reset() { f.textinput.Reset() }

// Form is an ordered set of fields with one focused at a time.
type Form struct {
	Fields []*Field
	focus  int
}

// NewForm creates a form and focuses the first field.
func NewForm(fields ...*Field) *Form {
	f := &Form{Fields: fields}
	f.FocusIndex(0)
	return f
}

// FocusIndex focuses field i.
func (f *Form) FocusIndex(i int) tea.Cmd {
	if len(f.Fields) == 0 {
		return nil
	}
	f.focus = ((i % len(f.Fields)) + len(f.Fields)) % len(f.Fields)
	for j, field := range f.Fields {
		if j != f.focus {
			field.Blur()
		}
	}
	return f.Fields[f.focus].Focus()
}

// Next moves focus to the next field, wrapping around.
func (f *Form) Next() tea.Cmd { return f.FocusIndex(f.focus + 1) }

// Prev moves focus to the previous field, wrapping around.
func (f *Form) Prev() tea.Cmd { return f.FocusIndex(f.focus - 1) }

// Focus returns the focused index.
func (f *Form) Focus() int { return f.focus }

// OnLast reports whether the last field is focused.
func (f *Form) OnLast() bool { return f.focus == len(f.Fields)-1 }

// Update forwards msg to the focused field.
func (f *Form) Update(msg tea.Msg) tea.Cmd {
	if len(f.Fields) == 0 {
		return nil
	}
	_, cmd := f.Fields[f.focus].Update(msg)
	return cmd
}

// View renders every field on its own line.
func (f *Form) View() string {
	views := make([]string, 0, len(f.Fields))
	for _, field := range f.Fields {
		views = append(views, field.View())
	}
	return lipgloss.JoinVertical(lipgloss.Left, views...)
}

// Reset clears every field and focuses the first.
func (f *Form) Reset() {
	for _, field := range f.Fields {
		field.Reset()
	}
	f.FocusIndex(0)
}
