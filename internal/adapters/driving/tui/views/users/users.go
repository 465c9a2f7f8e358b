// Package users provides the user administration view for the TUI.
package users

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/raiz-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/raiz-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/raiz-cli/internal/core/domain"
	"github.com/custodia-labs/raiz-cli/internal/core/ports/driving"
)

// View lists accounts and lets an admin delete them or change roles.
type View struct {
	styles  *styles.Styles
	users   driving.UserService
	self    func() *domain.User
	list    []domain.Account
	cursor  int
	confirm bool
	loading bool
	err     error
	notice  string
}

// NewView creates a users view. self returns the signed-in user, who
// cannot delete their own account from here.
func NewView(s *styles.Styles, users driving.UserService, self func() *domain.User) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if self == nil {
		self = func() *domain.User { return nil }
	}
	return &View{styles: s, users: users, self: self}
}

// Init loads the accounts.
func (v *View) Init() tea.Cmd {
	v.confirm = false
	return v.load()
}

func (v *View) load() tea.Cmd {
	v.loading = true
	svc := v.users
	return func() tea.Msg {
		if svc == nil {
			return messages.UsersLoaded{Err: fmt.Errorf("user service not available")}
		}
		accounts, err := svc.List(context.Background())
		return messages.UsersLoaded{Accounts: accounts, Err: err}
	}
}

// Update handles messages for the users view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case messages.UsersLoaded:
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.list = msg.Accounts
		if v.cursor >= len(v.list) {
			v.cursor = max(len(v.list)-1, 0)
		}
		return v, nil

	case messages.UserChanged:
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		return v, v.load()

	case tea.KeyMsg:
		if v.confirm {
			v.confirm = false
			if s := msg.String(); s == "y" || s == "Y" || s == "s" || s == "S" {
				return v, v.remove()
			}
			return v, nil
		}
		return v.handleKey(msg)
	}
	return v, nil
}

func (v *View) handleKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewMenu} }
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
	case "down", "j":
		if v.cursor < len(v.list)-1 {
			v.cursor++
		}
	case "r":
		return v, v.load()
	case "d", "delete":
		a := v.current()
		if a == nil {
			return v, nil
		}
		if me := v.self(); me != nil && me.Username == a.Username {
			v.err = fmt.Errorf("no puedes eliminar tu propia cuenta: %w", domain.ErrInvalidInput)
			return v, nil
		}
		v.confirm = true
	case "enter", "R":
		return v, v.toggleRole()
	}
	return v, nil
}

func (v *View) current() *domain.Account {
	if v.cursor < 0 || v.cursor >= len(v.list) {
		return nil
	}
	return &v.list[v.cursor]
}

func (v *View) remove() tea.Cmd {
	a := v.current()
	if a == nil {
		return nil
	}
	id := a.ID
	svc := v.users
	v.loading = true
	v.notice = fmt.Sprintf("Usuario %s eliminado", a.Username)
	return func() tea.Msg {
		return messages.UserChanged{Err: svc.Delete(context.Background(), id)}
	}
}

func (v *View) toggleRole() tea.Cmd {
	a := v.current()
	if a == nil || v.users == nil {
		return nil
	}
	role := domain.RoleAdmin
	if a.Role == domain.RoleAdmin {
		role = domain.RoleUser
	}
	id := a.ID
	svc := v.users
	v.loading = true
	v.notice = fmt.Sprintf("%s ahora es %s", a.Username, role)
	return func() tea.Msg {
		_, err := svc.SetRole(context.Background(), id, role)
		return messages.UserChanged{Err: err}
	}
}

// View renders the account list.
func (v *View) View() string {
	var b strings.Builder
	b.WriteString(v.styles.Title.Render("Usuarios"))
	b.WriteString("\n\n")

	if len(v.list) == 0 && !v.loading {
		b.WriteString(v.styles.Muted.Render("No hay usuarios."))
	}
	for i, a := range v.list {
		line := fmt.Sprintf("%4d  %-24s %s", a.ID, a.Username, a.Role)
		if i == v.cursor {
			b.WriteString(v.styles.Selected.Render("> " + line))
		} else {
			b.WriteString("  " + v.styles.Normal.Render(line))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch {
	case v.confirm:
		if a := v.current(); a != nil {
			b.WriteString(v.styles.Warning.Render(fmt.Sprintf("¿Eliminar a %s? [y/n]", a.Username)))
		}
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Cargando..."))
	case v.err != nil:
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
	case v.notice != "":
		b.WriteString(v.styles.Success.Render(v.notice))
	}
	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[enter] cambiar rol  [d] eliminar  [r] recargar  [esc] volver"))
	return b.String()
}

// SetDimensions implements the view contract.
func (v *View) SetDimensions(int, int) {}

// Accounts returns the loaded accounts.
func (v *View) Accounts() []domain.Account { return v.list }

// Err returns the last error.
func (v *View) Err() error { return v.err }
