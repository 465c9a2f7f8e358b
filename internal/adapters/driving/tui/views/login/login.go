// Package login provides the login form view for the TUI.
package login

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

// View is the login form.
type View struct {
	styles   *styles.Styles
	session  driving.SessionService
	username *input.Field
	password *input.Field
	form     *input.Form

	err     string
	loading bool
	width   int
	height  int
}

// NewView creates a login view.
func NewView(s *styles.Styles, session driving.SessionService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	v := &View{
		styles:   s,
		session:  session,
		username: input.NewField(s, "Usuario", "nombre de usuario"),
		password: input.NewPasswordField(s, "Contraseña"),
		width:    80,
		height:   24,
	}
	v.form = input.NewForm(v.username, v.password)
	return v
}

// Init focuses the first field.
func (v *View) Init() tea.Cmd {
	return v.form.FocusIndex(0)
}

// Reset clears the form and any error.
func (v *View) Reset() {
	v.form.Reset()
	v.err = ""
	v.loading = false
}

// Update handles messages for the login view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.LoginCompleted:
		v.loading = false
		if msg.Err != nil {
			v.err = errorText(msg.Err)
			v.password.Reset()
			return v, nil
		}
		v.Reset()
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
	if username == "" || password == "" {
		v.err = "Usuario y contraseña son obligatorios"
		return nil
	}
	v.loading = true
	v.err = ""
	session := v.session
	return func() tea.Msg {
		if session == nil {
			return messages.LoginCompleted{Err: errors.New("session service not available")}
		}
		user, err := session.Login(context.Background(), username, password)
		return messages.LoginCompleted{User: user, Err: err}
	}
}

func errorText(err error) string {
	if errors.Is(err, domain.ErrInvalidCredentials) {
		return "Credenciales inválidas"
	}
	return err.Error()
}

// View renders the login form.
func (v *View) View() string {
	var b strings.Builder
	b.WriteString(v.styles.Title.Render("Iniciar sesión"))
	b.WriteString("\n\n")
	b.WriteString(v.form.View())
	b.WriteString("\n\n")
	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Entrando..."))
	case v.err != "":
		b.WriteString(v.styles.Error.Render(v.err))
	}
	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("[tab] Siguiente  [enter] Entrar  [esc] Volver"))
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.username.SetWidth(width)
	v.password.SetWidth(width)
}

// Err returns the error currently shown.
func (v *View) Err() string { return v.err }

// Loading reports whether a login request is in flight.
func (v *View) Loading() bool { return v.loading }
