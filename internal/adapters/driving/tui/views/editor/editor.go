// Package editor provides the curator's article editor view.
package editor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/raiz-cli/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/raiz-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/raiz-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/raiz-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/raiz-cli/internal/core/domain"
	"github.com/custodia-labs/raiz-cli/internal/core/ports/driving"
	"github.com/custodia-labs/raiz-cli/internal/core/services"
)

// Editor actions reported through messages.EditorActionDone.
const (
	ActionSave       = "save"
	ActionRegenerate = "regenerate"
	ActionRefine     = "refine"
	ActionAuditFix   = "audit-fix"
	ActionAudit      = "audit"
	ActionScrape     = "scrape"
	ActionKnowledge  = "knowledge"
)

const (
	focusTitle = iota
	focusTags
	focusContent
	focusCount
)

const auditFixLabel = "Corregir según auditoría"

// View edits one article.
type View struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	articles driving.ArticleService

	editor  *services.Editor
	title   *input.Field
	tags    *input.Field
	content textarea.Model
	focus   int

	picking  bool
	presets  []string
	selected int

	suggestions []domain.KnowledgeItem
	busy        bool
	err         error
	notice      string
	width       int
	height      int
}

// NewView creates an editor view.
func NewView(s *styles.Styles, articles driving.ArticleService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	ta := textarea.New()
	ta.MaxHeight = 0
	ta.ShowLineNumbers = false
	ta.Placeholder = "Contenido del artículo"

	return &View{
		styles:   s,
		keymap:   keymap.DefaultKeyMap(),
		articles: articles,
		title:    input.NewField(s, "Título", ""),
		tags:     input.NewField(s, "Etiquetas", "separadas por comas"),
		content:  ta,
		width:    80,
		height:   24,
	}
}

// SetArticle starts editing an article, discarding any previous state.
func (v *View) SetArticle(a domain.Article) tea.Cmd {
	v.editor = services.NewEditor(v.articles, a)
	v.suggestions = nil
	v.picking = false
	v.busy = false
	v.err = nil
	v.notice = ""
	v.pull()
	return v.focusField(focusContent)
}

// Editor returns the editor state.
func (v *View) Editor() *services.Editor { return v.editor }

// Init implements the view contract.
func (v *View) Init() tea.Cmd { return nil }

func (v *View) pull() {
	v.title.SetValue(v.editor.Title())
	v.tags.SetValue(v.editor.Tags())
	v.content.SetValue(v.editor.Content())
}

func (v *View) push() {
	if v.editor == nil {
		return
	}
	v.editor.SetTitle(v.title.Value())
	v.editor.SetTags(v.tags.Value())
	v.editor.SetContent(v.content.Value())
}

func (v *View) focusField(i int) tea.Cmd {
	v.focus = i % focusCount
	v.title.Blur()
	v.tags.Blur()
	v.content.Blur()
	switch v.focus {
	case focusTitle:
		return v.title.Focus()
	case focusTags:
		return v.tags.Focus()
	default:
		return v.content.Focus()
	}
}

// Update handles messages for the editor.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.EditorActionDone:
		return v.handleDone(msg)

	case messages.SuggestionsLoaded:
		v.busy = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.suggestions = msg.Items
		v.notice = fmt.Sprintf("%d sugerencias", len(msg.Items))
		return v, nil

	case tea.KeyMsg:
		if v.editor == nil {
			if msg.Type == tea.KeyEsc {
				return v, toView(messages.ViewArticles)
			}
			return v, nil
		}
		if v.picking {
			return v.updatePicker(msg)
		}
		return v.updateKeys(msg)
	}
	return v, nil
}

//nolint:gocyclo // one case per editor action
func (v *View) updateKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	k := msg.String()
	km := v.keymap

	if msg.Type == tea.KeyEsc {
		return v, toView(messages.ViewArticles)
	}
	if v.busy {
		return v, nil
	}

	switch {
	case keymap.Matches(k, km.NextField):
		return v, v.focusField(v.focus + 1)
	case keymap.Matches(k, km.Save):
		return v, v.run(ActionSave)
	case keymap.Matches(k, km.Regenerate):
		return v, v.run(ActionRegenerate)
	case keymap.Matches(k, km.Audit):
		return v, v.run(ActionAudit)
	case keymap.Matches(k, km.Scrape):
		return v, v.run(ActionScrape)
	case keymap.Matches(k, km.Knowledge):
		return v, v.run(ActionKnowledge)
	case keymap.Matches(k, km.Suggest):
		return v, v.loadSuggestions()
	case keymap.Matches(k, km.Refine):
		v.push()
		v.openPicker()
		return v, nil
	case keymap.Matches(k, km.Recover):
		v.push()
		if err := v.editor.RecoverOriginal(); err != nil {
			v.err = err
			return v, nil
		}
		v.err = nil
		v.notice = "Contenido original recuperado"
		v.pull()
		return v, nil
	case keymap.Matches(k, km.Status):
		v.push()
		_ = v.editor.SetStatus(nextStatus(v.editor.Status()))
		return v, nil
	}

	var cmd tea.Cmd
	switch v.focus {
	case focusTitle:
		_, cmd = v.title.Update(msg)
	case focusTags:
		_, cmd = v.tags.Update(msg)
	default:
		v.content, cmd = v.content.Update(msg)
	}
	return v, cmd
}

func (v *View) openPicker() {
	v.presets = append([]string(nil), v.refinePresets()...)
	if v.editor.AuditReport() != "" {
		v.presets = append(v.presets, auditFixLabel)
	}
	v.selected = 0
	v.picking = true
}

func (v *View) refinePresets() []string {
	if v.articles == nil {
		return domain.DefaultRefinePresets
	}
	return v.articles.RefinePresets()
}

func (v *View) updatePicker(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "esc":
		v.picking = false
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case "down", "j":
		if v.selected < len(v.presets)-1 {
			v.selected++
		}
	case "enter":
		v.picking = false
		if len(v.presets) == 0 {
			return v, nil
		}
		choice := v.presets[v.selected]
		if choice == auditFixLabel {
			return v, v.run(ActionAuditFix)
		}
		return v, v.runRefine(choice)
	}
	return v, nil
}

// run executes an action on a clone of the editor; the clone replaces
// the current state only when the action succeeds.
func (v *View) run(action string) tea.Cmd {
	return v.runWith(action, "")
}

func (v *View) runRefine(instruction string) tea.Cmd {
	return v.runWith(ActionRefine, instruction)
}

func (v *View) runWith(action, instruction string) tea.Cmd {
	v.push()
	work := v.editor.Clone()
	v.busy = true
	v.err = nil
	v.notice = ""
	return func() tea.Msg {
		detail, err := perform(context.Background(), work, action, instruction)
		if err != nil {
			return messages.EditorActionDone{Action: action, Err: err}
		}
		return messages.EditorActionDone{Action: action, Detail: detail, Editor: work}
	}
}

func perform(ctx context.Context, e *services.Editor, action, instruction string) (string, error) {
	switch action {
	case ActionSave:
		if _, err := e.Save(ctx); err != nil {
			return "", err
		}
		return "Guardado", nil
	case ActionRegenerate:
		return "Artículo regenerado", e.Regenerate(ctx)
	case ActionRefine:
		return "Contenido refinado", e.Refine(ctx, instruction)
	case ActionAuditFix:
		return "Corregido según auditoría", e.RefineWithAudit(ctx, "")
	case ActionAudit:
		if _, err := e.Audit(ctx); err != nil {
			return "", err
		}
		return "Auditoría lista", nil
	case ActionScrape:
		if err := e.Scrape(ctx); err != nil {
			return "", err
		}
		if e.OriginalContent() == "" {
			return "Sin contenido original", nil
		}
		return "Contenido original actualizado", nil
	case ActionKnowledge:
		if _, err := e.AddToKnowledgeBase(ctx); err != nil {
			return "", err
		}
		return "Añadido a la base de conocimiento", nil
	default:
		return "", fmt.Errorf("%w: action %q", domain.ErrInvalidInput, action)
	}
}

func (v *View) handleDone(msg messages.EditorActionDone) (*View, tea.Cmd) {
	v.busy = false
	if msg.Err != nil {
		v.err = msg.Err
		if services.IsAuthError(msg.Err) {
			return v, toView(messages.ViewLogin)
		}
		return v, nil
	}
	if msg.Editor != nil {
		v.editor = msg.Editor
		v.pull()
	}
	v.err = nil
	v.notice = msg.Detail
	if msg.Action == ActionSave {
		saved := v.editor.Article()
		return v, func() tea.Msg { return messages.ArticleSaved{Article: &saved} }
	}
	return v, nil
}

func (v *View) loadSuggestions() tea.Cmd {
	v.push()
	work := v.editor.Clone()
	v.busy = true
	return func() tea.Msg {
		items, err := work.Suggestions(context.Background())
		return messages.SuggestionsLoaded{Items: items, Err: err}
	}
}

func nextStatus(s domain.ArticleStatus) domain.ArticleStatus {
	for i, st := range domain.AllStatuses {
		if st == s {
			return domain.AllStatuses[(i+1)%len(domain.AllStatuses)]
		}
	}
	return domain.StatusDraft
}

func toView(view messages.ViewType) tea.Cmd {
	return func() tea.Msg { return messages.ViewChanged{View: view} }
}

// View renders the editor.
func (v *View) View() string {
	if v.editor == nil {
		return v.styles.Muted.Render("Ningún artículo en edición.")
	}

	var b strings.Builder
	heading := fmt.Sprintf("Editar artículo #%d", v.editor.Article().ID)
	b.WriteString(v.styles.Title.Render(heading))
	b.WriteString("  ")
	b.WriteString(v.styles.Status(v.editor.Status()).Render(string(v.editor.Status())))
	if v.dirty() {
		b.WriteString(v.styles.Warning.Render("  (sin guardar)"))
	}
	b.WriteString("\n\n")
	b.WriteString(v.title.View())
	b.WriteString("\n")
	b.WriteString(v.tags.View())
	b.WriteString("\n\n")

	main := v.content.View()
	if side := v.renderSide(); side != "" {
		main = lipgloss.JoinHorizontal(lipgloss.Top, main, "  ", side)
	}
	b.WriteString(main)
	b.WriteString("\n\n")

	if v.picking {
		b.WriteString(v.renderPicker())
		b.WriteString("\n")
	}

	switch {
	case v.busy:
		b.WriteString(v.styles.Muted.Render("Procesando..."))
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(errorText(v.err)))
	case v.notice != "":
		b.WriteString(v.styles.Success.Render(v.notice))
	}
	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render(
		"[ctrl+s] Guardar  [ctrl+g] Regenerar  [ctrl+r] Refinar  [ctrl+a] Auditar  " +
			"[ctrl+o] Original  [ctrl+u] Recuperar  [ctrl+k] Base  [ctrl+t] Sugerencias  " +
			"[ctrl+p] Estado  [esc] Volver"))
	return b.String()
}

func (v *View) dirty() bool {
	e := v.editor.Clone()
	e.SetTitle(v.title.Value())
	e.SetTags(v.tags.Value())
	e.SetContent(v.content.Value())
	return e.Dirty()
}

func (v *View) renderSide() string {
	var parts []string
	if r := v.editor.AuditReport(); r != "" {
		parts = append(parts, v.styles.Subtitle.Render("Auditoría")+"\n"+r)
	}
	if len(v.suggestions) > 0 {
		lines := []string{v.styles.Subtitle.Render("Sugerencias")}
		for _, s := range v.suggestions {
			lines = append(lines, "• "+s.Content)
		}
		parts = append(parts, strings.Join(lines, "\n"))
	}
	if len(parts) == 0 {
		return ""
	}
	width := max(v.width/3, 20)
	return v.styles.Column.Width(width).Render(strings.Join(parts, "\n\n"))
}

func (v *View) renderPicker() string {
	lines := []string{v.styles.Subtitle.Render("Refinar")}
	for i, p := range v.presets {
		if i == v.selected {
			lines = append(lines, "> "+v.styles.Selected.Render(p))
		} else {
			lines = append(lines, "  "+p)
		}
	}
	return strings.Join(lines, "\n")
}

func errorText(err error) string {
	if errors.Is(err, domain.ErrNoOriginalContent) {
		return "No hay contenido original para recuperar"
	}
	return err.Error()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.title.SetWidth(width)
	v.tags.SetWidth(width)
	v.content.SetWidth(max(width*2/3-4, 30))
	v.content.SetHeight(max(height-14, 5))
}

// Busy reports whether an action is running.
func (v *View) Busy() bool { return v.busy }

// Picking reports whether the refine preset picker is open.
func (v *View) Picking() bool { return v.picking }

// Err returns the last error.
func (v *View) Err() error { return v.err }

// Notice returns the last action summary.
func (v *View) Notice() string { return v.notice }
