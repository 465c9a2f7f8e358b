// Package menu provides the main navigation menu view for the TUI.
package menu

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/raiz-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/raiz-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/raiz-cli/internal/core/domain"
)

// Action is what selecting an item does besides navigating.
type Action int

const (
	ActionNavigate Action = iota
	ActionLogout
	ActionQuit
)

// Item represents a single menu option.
type Item struct {
	Label  string
	View   messages.ViewType
	Action Action
}

// View represents the main menu view.
type View struct {
	styles   *styles.Styles
	user     *domain.User
	items    []Item
	selected int
	width    int
	height   int
	ready    bool
}

// NewView creates a new menu view for an anonymous session.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	v := &View{
		styles: s,
		width:  80,
		height: 24,
	}
	v.SetUser(nil)
	return v
}

// SetUser rebuilds the items for the given session user.
// Admin entries are only offered to admins.
func (v *View) SetUser(u *domain.User) {
	v.user = u
	v.items = itemsFor(u)
	if v.selected >= len(v.items) {
		v.selected = len(v.items) - 1
	}
}

func itemsFor(u *domain.User) []Item {
	items := []Item{{Label: "Artículos", View: messages.ViewArticles}}
	if u.IsAdmin() {
		items = append(items,
			Item{Label: "Fuentes", View: messages.ViewSources},
			Item{Label: "Usuarios", View: messages.ViewUsers},
		)
	}
	if u == nil {
		items = append(items,
			Item{Label: "Iniciar sesión", View: messages.ViewLogin},
			Item{Label: "Registrarse", View: messages.ViewRegister},
		)
	} else {
		items = append(items, Item{Label: "Cerrar sesión", Action: ActionLogout})
	}
	return append(items,
		Item{Label: "Ajustes", View: messages.ViewSettings},
		Item{Label: "Ayuda", View: messages.ViewHelp},
		Item{Label: "Salir", Action: ActionQuit},
	)
}

// Init initialises the menu view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if v.selected > 0 {
				v.selected--
			}
			return v, nil

		case "down", "j":
			if v.selected < len(v.items)-1 {
				v.selected++
			}
			return v, nil

		case "enter":
			item := v.items[v.selected]
			switch item.Action {
			case ActionQuit:
				return v, tea.Quit
			case ActionLogout:
				return v, func() tea.Msg { return messages.LogoutRequested{} }
			default:
				return v, func() tea.Msg {
					return messages.ViewChanged{View: item.View}
				}
			}

		case "q":
			return v, tea.Quit
		}
	}

	return v, nil
}

// View renders the menu.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder
	b.WriteString(v.styles.Title.Render("Raíz"))
	b.WriteString("\n\n")
	b.WriteString(v.styles.Muted.Render("Noticias curadas"))
	b.WriteString("\n\n")

	for i, item := range v.items {
		if i == v.selected {
			b.WriteString("> " + v.styles.Selected.Render(item.Label))
		} else {
			b.WriteString("  " + v.styles.Normal.Render(item.Label))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[j/k] Navegar  [Enter] Elegir  [q] Salir"))
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Selected returns the currently selected index.
func (v *View) Selected() int {
	return v.selected
}

// Items returns the visible menu items.
func (v *View) Items() []Item {
	return v.items
}
