// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	Quit   key.Binding
	Help   key.Binding
	Back   key.Binding
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Reload key.Binding

	// Article list.
	Curator    key.Binding
	NextStatus key.Binding
	ViewMode   key.Binding
	Filter     key.Binding
	Search     key.Binding
	Dates      key.Binding
	Mark       key.Binding
	MarkAll    key.Binding
	Delete     key.Binding
	Archive    key.Binding
	Edit       key.Binding

	// Editor.
	Save       key.Binding
	NextField  key.Binding
	Regenerate key.Binding
	Refine     key.Binding
	Audit      key.Binding
	Scrape     key.Binding
	Recover    key.Binding
	Knowledge  key.Binding
	Suggest    key.Binding
	Status     key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Back:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Select: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Reload: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),

		Curator:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "curator")),
		NextStatus: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "status")),
		ViewMode:   key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "list/columns")),
		Filter:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
		Search:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "search")),
		Dates:      key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "dates")),
		Mark:       key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "select")),
		MarkAll:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "select all")),
		Delete:     key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "delete")),
		Archive:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "archive")),
		Edit:       key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),

		Save:       key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		NextField:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		Regenerate: key.NewBinding(key.WithKeys("ctrl+g"), key.WithHelp("ctrl+g", "regenerate")),
		Refine:     key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "refine")),
		Audit:      key.NewBinding(key.WithKeys("ctrl+a"), key.WithHelp("ctrl+a", "audit")),
		Scrape:     key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "scrape")),
		Recover:    key.NewBinding(key.WithKeys("ctrl+u"), key.WithHelp("ctrl+u", "recover original")),
		Knowledge:  key.NewBinding(key.WithKeys("ctrl+k"), key.WithHelp("ctrl+k", "add to KB")),
		Suggest:    key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "suggestions")),
		Status:     key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "cycle status")),
	}
}

// ShortHelp returns a short list of keybindings for the status bar.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Back, k.Help, k.Quit}
}

// CuratorHelp returns keybindings for the curator article list.
func (k *KeyMap) CuratorHelp() []key.Binding {
	return []key.Binding{k.NextStatus, k.ViewMode, k.Mark, k.MarkAll, k.Archive, k.Delete, k.Edit}
}

// EditorHelp returns keybindings for the editor.
func (k *KeyMap) EditorHelp() []key.Binding {
	return []key.Binding{
		k.Save, k.NextField, k.Status, k.Regenerate, k.Refine, k.Audit,
		k.Scrape, k.Recover, k.Knowledge, k.Suggest, k.Back,
	}
}

// FullHelp returns the full list of keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select, k.Back, k.Reload},
		{k.Curator, k.Filter, k.Search, k.Dates},
		k.CuratorHelp(),
		k.EditorHelp(),
		{k.Help, k.Quit},
	}
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}
