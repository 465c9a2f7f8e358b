// Package register provides the account registration view for the TUI.
package register

import (
	"context"
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/raiz-cli/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/raiz-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/raiz-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/raiz-cli/internal/core/domain"
	"github.com/custodia-labs/raiz-cli/internal/core/ports/driving"
)

// View is the registration form.
type View struct {
	styles   *styles.Styles
	session  driving.SessionService
	username *input.Field
	password *input.Field
	confirm  *input.Field
	form     *input.Form

	err     string
	done    string
	loading bool
}

// NewView creates a registration view.
func NewView(s *styles.Styles, session driving.SessionService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	v := &View{
		styles:   s,
		session:  session,
		username: input.NewField(s, "Usuario", "nombre de usuario"),
		password: input.NewPasswordField(s, "Contraseña"),
		confirm:  input.NewPasswordField(s, "Confirmar"),
	}
	v.form = input.NewForm(v.username, v.password, v.confirm)
	return v
}

// Init focuses the first field.
func (v *View) Init() tea.Cmd {
	return v.form.FocusIndex(0)
}

// Reset clears the form.
func (v *View) Reset() {
	v.form.Reset()
	v.err = ""
	v.done = ""
	v.loading = false
}

// Update handles messages for the registration view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case messages.RegisterCompleted:
		v.loading = false
		if msg.Err != nil {
			v.err = errorText(msg.Err)
			return v, nil
		}
		v.form.Reset()
		v.err = ""
		v.done = "Cuenta creada: " + msg.Username + ". Ya puedes iniciar sesión."
		return v, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEsc:
			return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewMenu} }
		case tea.KeyTab, tea.KeyDown:
			return v, v.form.Next()
		case tea.KeyShiftTab, tea.KeyUp:
			return v, v.form.Prev()
		case tea.KeyEnter:
			if !v.form.OnLast() {
				return v, v.form.Next()
			}
			return v, v.submit()
		}
		return v, v.form.Update(msg)
	}
	return v, nil
}

func (v *View) submit() tea.Cmd {
	if v.loading {
		return nil
	}
	username := strings.TrimSpace(v.username.Value())
	password := v.password.Value()
	confirm := v.confirm.Value()
	v.done = ""
	if username == "" || password == "" {
		v.err = "Usuario y contraseña son obligatorios"
		return nil
	}
	if password != confirm {
		v.err = errorText(domain.ErrPasswordMismatch)
		return nil
	}
	v.loading = true
	v.err = ""
	session := v.session
	return func() tea.Msg {
		if session == nil {
			return messages.RegisterCompleted{Err: errors.New("session service not available")}
		}
		err := session.Register(context.Background(), username, password, confirm)
		return messages.RegisterCompleted{Username: username, Err: err}
	}
}

func errorText(err error) string {
	if errors.Is(err, domain.ErrPasswordMismatch) {
		return "Las contraseñas no coinciden"
	}
	return err.Error()
}

// View renders the registration form.
func (v *View) View() string {
	var b strings.Builder
	b.WriteString(v.styles.Title.Render("Registrarse"))
	b.WriteString("\n\n")
	b.WriteString(v.form.View())
	b.WriteString("\n\n")
	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Creando cuenta..."))
	case v.err != "":
		b.WriteString(v.styles.Error.Render(v.err))
	case v.done != "":
		b.WriteString(v.styles.Success.Render(v.done))
	}
	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("[tab] Siguiente  [enter] Crear  [esc] Volver"))
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, _ int) {
	v.username.SetWidth(width)
	v.password.SetWidth(width)
	v.confirm.SetWidth(width)
}

// Err returns the error currently shown.
func (v *View) Err() string { return v.err }
