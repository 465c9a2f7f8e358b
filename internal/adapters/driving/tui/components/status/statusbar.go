// Package status provides the status bar component for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/raiz-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/raiz-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/raiz-cli/internal/core/domain"
)

// State represents what the bar reports on its left side.
type State string

const (
	StateReady   State = "ready"
	StateLoading State = "loading"
	StateError   State = "error"
	StateNotice  State = "notice"
)

// Bar displays the session, curator mode, a message and key hints.
type Bar struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	state   State
	message string
	user    *domain.User
	curator bool
	hints   []key.Binding
	width   int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &Bar{
		styles: s,
		keymap: km,
		state:  StateReady,
		width:  80,
	}
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderSession() + " " + s.renderMessage()
	right := s.renderHints()

	padding := s.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if padding < 1 {
		padding = 1
	}
	return s.styles.StatusBar.Width(s.width).Render(left + strings.Repeat(" ", padding) + right)
}

// renderSession shows who is logged in and with which role.
func (s *Bar) renderSession() string {
	var out string
	if s.user == nil {
		out = s.styles.Muted.Render("anónimo")
	} else {
		out = s.styles.Normal.Render(fmt.Sprintf("%s (%s)", s.user.Username, s.user.Role))
	}
	if s.curator {
		out += " " + s.styles.Badge.Render("CURADOR")
	}
	return out
}

func (s *Bar) renderMessage() string {
	switch s.state {
	case StateLoading:
		return s.styles.Muted.Render("Cargando...")
	case StateError:
		if s.message != "" {
			return s.styles.Error.Render("Error: " + s.message)
		}
		return s.styles.Error.Render("Error")
	case StateNotice:
		return s.styles.Success.Render(s.message)
	default:
		return ""
	}
}

func (s *Bar) renderHints() string {
	bindings := s.hints
	if len(bindings) == 0 {
		bindings = s.keymap.ShortHelp()
	}
	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return s.styles.Muted.Render(strings.Join(hints, " | "))
}

// SetUser sets the session user; nil means anonymous.
func (s *Bar) SetUser(u *domain.User) { s.user = u }

// User returns the displayed session user.
func (s *Bar) User() *domain.User { return s.user }

// SetCurator toggles the curator badge.
func (s *Bar) SetCurator(on bool) { s.curator = on }

// SetHints replaces the key hints. Nil restores the short help.
func (s *Bar) SetHints(b []key.Binding) { s.hints = b }

// SetError shows err on the bar.
func (s *Bar) SetError(err error) {
	if err == nil {
		s.Clear()
		return
	}
	s.state = StateError
	s.message = err.Error()
}

// SetNotice shows a transient confirmation.
func (s *Bar) SetNotice(text string) {
	s.state = StateNotice
	s.message = text
}

// SetLoading shows the loading indicator.
func (s *Bar) SetLoading() {
	s.state = StateLoading
	s.message = ""
}

// State returns the current state.
func (s *Bar) State() State { return s.state }

// Message returns the current message.
func (s *Bar) Message() string { return s.message }

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) { s.width = width }

// Clear resets the message side of the bar.
func (s *Bar) Clear() {
	s.state = StateReady
	s.message = ""
}
