// Package settings provides the settings configuration view for the TUI.
package settings

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/raiz-cli/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/raiz-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/raiz-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/raiz-cli/internal/core/domain"
	"github.com/custodia-labs/raiz-cli/internal/core/ports/driving"
	"github.com/custodia-labs/raiz-cli/internal/core/services"
)

var descriptions = map[string]string{
	services.KeyAPIURL:                 "URL base de la API",
	services.KeyAPITimeout:             "tiempo máximo por petición",
	services.KeyAPIRateLimit:           "peticiones por segundo, 0 = sin límite",
	services.KeyBulkConcurrency:        "peticiones simultáneas en acciones masivas",
	services.KeyClearSelectionOnFilter: "vaciar la selección al filtrar",
	services.KeySessionBackend:         "file, sqlite o memory",
}

// View is the settings configuration view.
type View struct {
	styles          *styles.Styles
	settingsService driving.SettingsService

	settings *domain.AppSettings
	selected int
	editing  bool
	field    *input.Field
	err      error
	notice   string
	width    int
}

// NewView creates a new settings view.
func NewView(s *styles.Styles, settingsService driving.SettingsService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	v := &View{
		styles:          s,
		settingsService: settingsService,
		field:           input.NewField(s, "Valor", ""),
		width:           80,
	}
	v.field.Blur()
	return v
}

// Init loads the current settings.
func (v *View) Init() tea.Cmd {
	v.editing = false
	v.notice = ""
	return v.loadSettings()
}

func (v *View) loadSettings() tea.Cmd {
	svc := v.settingsService
	return func() tea.Msg {
		if svc == nil {
			return messages.SettingsLoaded{Err: fmt.Errorf("settings service not available")}
		}
		settings, err := svc.Get()
		return messages.SettingsLoaded{Settings: settings, Err: err}
	}
}

// Update handles messages for the settings view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case messages.SettingsLoaded:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.settings = msg.Settings
		return v, nil

	case messages.SettingsSaved:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.notice = "Guardado " + msg.Key + " (se aplica al reiniciar)"
		return v, v.loadSettings()

	case tea.KeyMsg:
		if v.editing {
			return v.updateEditing(msg)
		}
		switch msg.String() {
		case "esc":
			return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewMenu} }
		case "up", "k":
			if v.selected > 0 {
				v.selected--
			}
		case "down", "j":
			if v.selected < len(services.SettingKeys)-1 {
				v.selected++
			}
		case "enter":
			if v.settings == nil {
				return v, nil
			}
			value, _ := services.SettingValue(*v.settings, v.key())
			v.field.SetValue(value)
			v.editing = true
			v.err = nil
			return v, v.field.Focus()
		}
	}
	return v, nil
}

func (v *View) updateEditing(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		v.editing = false
		v.field.Blur()
		return v, nil
	case tea.KeyEnter:
		v.editing = false
		v.field.Blur()
		key, value := v.key(), v.field.Value()
		svc := v.settingsService
		return v, func() tea.Msg {
			return messages.SettingsSaved{Key: key, Err: svc.Set(key, value)}
		}
	}
	_, cmd := v.field.Update(msg)
	return v, cmd
}

func (v *View) key() string {
	return services.SettingKeys[v.selected]
}

// View renders the settings.
func (v *View) View() string {
	var b strings.Builder
	b.WriteString(v.styles.Title.Render("Ajustes"))
	b.WriteString("\n")
	if v.settingsService != nil {
		b.WriteString(v.styles.Muted.Render(v.settingsService.Path()))
	}
	b.WriteString("\n\n")

	for i, key := range services.SettingKeys {
		value := "-"
		if v.settings != nil {
			value, _ = services.SettingValue(*v.settings, key)
		}
		line := fmt.Sprintf("%-34s %-24s", key, value)
		if i == v.selected {
			b.WriteString(v.styles.Selected.Render("> "+line) + "  " + v.styles.Muted.Render(descriptions[key]))
		} else {
			b.WriteString("  " + v.styles.Normal.Render(line))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if v.editing {
		b.WriteString(v.field.View())
		b.WriteString("\n")
	}
	switch {
	case v.err != nil:
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
	case v.notice != "":
		b.WriteString(v.styles.Success.Render(v.notice))
	}
	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[enter] editar  [esc] volver"))
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, _ int) {
	v.width = width
	v.field.SetWidth(width)
}

// Settings returns the loaded settings.
func (v *View) Settings() *domain.AppSettings { return v.settings }

// Err returns the last error.
func (v *View) Err() error { return v.err }
