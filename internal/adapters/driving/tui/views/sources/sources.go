// Package sources provides the feed source and ingestion view for the TUI.
package sources

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/custodia-labs/raiz-cli/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/raiz-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/raiz-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/raiz-cli/internal/core/domain"
	"github.com/custodia-labs/raiz-cli/internal/core/ports/driving"
	"github.com/custodia-labs/raiz-cli/internal/logger"
)

// Mode is what the view is currently showing or asking for.
type Mode int

const (
	ModeList Mode = iota
	ModeHistory
	ModeAdd
	ModeIngest
	ModeConfirmRemove
)

// View is the source management view.
type View struct {
	styles        *styles.Styles
	sourceService driving.SourceService

	sources    []domain.Source
	successful []domain.Source
	history    []domain.FeedHistory
	selected   int
	prefill    int

	name    *input.Field
	url     *input.Field
	feedURL *input.Field
	addForm *input.Form

	ingestFeed *input.Field
	ingestName *input.Field
	ingestForm *input.Form

	mode    Mode
	loading bool
	err     error
	notice  string
	width   int
	height  int
}

// NewView creates a new sources view.
func NewView(s *styles.Styles, sourceService driving.SourceService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	v := &View{
		styles:        s,
		sourceService: sourceService,
		name:          input.NewField(s, "Nombre", ""),
		url:           input.NewField(s, "URL", "https://"),
		feedURL:       input.NewField(s, "Feed", "https://.../rss"),
		ingestFeed:    input.NewField(s, "Feed", "https://.../rss"),
		ingestName:    input.NewField(s, "Fuente", ""),
		width:         80,
		height:        24,
	}
	v.addForm = input.NewForm(v.name, v.url, v.feedURL)
	v.ingestForm = input.NewForm(v.ingestFeed, v.ingestName)
	v.name.Blur()
	v.ingestFeed.Blur()
	return v
}

// Init loads sources.
func (v *View) Init() tea.Cmd {
	v.mode = ModeList
	return v.loadSources()
}

func (v *View) loadSources() tea.Cmd {
	v.loading = true
	svc := v.sourceService
	return func() tea.Msg {
		if svc == nil {
			return messages.SourcesLoaded{Err: fmt.Errorf("source service not available")}
		}
		ctx := context.Background()
		sources, err := svc.List(ctx)
		if err != nil {
			return messages.SourcesLoaded{Err: err}
		}
		successful, err := svc.Successful(ctx)
		if err != nil {
			logger.Warn("loading successful sources: %v", err)
		}
		return messages.SourcesLoaded{Sources: sources, Successful: successful}
	}
}

func (v *View) loadHistory() tea.Cmd {
	v.loading = true
	svc := v.sourceService
	return func() tea.Msg {
		if svc == nil {
			return messages.HistoryLoaded{Err: fmt.Errorf("source service not available")}
		}
		history, err := svc.History(context.Background())
		return messages.HistoryLoaded{History: history, Err: err}
	}
}

// Update handles messages for the sources view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.SourcesLoaded:
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.sources = msg.Sources
		v.successful = msg.Successful
		if v.selected >= len(v.sources) {
			v.selected = max(len(v.sources)-1, 0)
		}
		return v, nil

	case messages.HistoryLoaded:
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.history = msg.History
		return v, nil

	case messages.SourceAdded:
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.addForm.Reset()
		v.mode = ModeList
		v.notice = "Fuente añadida: " + msg.Source.Name
		return v, v.loadSources()

	case messages.SourceRemoved:
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.notice = fmt.Sprintf("Fuente %d eliminada", msg.ID)
		return v, v.loadSources()

	case messages.IngestCompleted:
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.mode = ModeList
		v.notice = fmt.Sprintf("%s (%d artículos)", msg.Result.Message, msg.Result.Count)
		return v, nil

	case tea.KeyMsg:
		switch v.mode {
		case ModeAdd:
			return v.updateAdd(msg)
		case ModeIngest:
			return v.updateIngest(msg)
		case ModeConfirmRemove:
			return v.updateConfirm(msg)
		default:
			return v.handleKeyMsg(msg)
		}
	}
	return v, nil
}

// handleKeyMsg handles key presses in the list and history modes.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "esc":
		if v.mode == ModeHistory {
			v.mode = ModeList
			return v, nil
		}
		return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewMenu} }
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case "down", "j":
		if v.selected < len(v.sources)-1 {
			v.selected++
		}
	case "h":
		if v.mode == ModeHistory {
			v.mode = ModeList
			return v, nil
		}
		v.mode = ModeHistory
		return v, v.loadHistory()
	case "a":
		v.mode = ModeAdd
		v.err = nil
		return v, v.addForm.FocusIndex(0)
	case "d", "delete":
		if v.current() != nil {
			v.mode = ModeConfirmRemove
		}
	case "i":
		v.openIngest(v.current())
		return v, v.ingestForm.FocusIndex(0)
	case "g":
		v.prefill = 0
		v.openIngest(v.prefillSource())
		return v, v.ingestForm.FocusIndex(0)
	case "r":
		if v.mode == ModeHistory {
			return v, v.loadHistory()
		}
		return v, v.loadSources()
	}
	return v, nil
}

func (v *View) current() *domain.Source {
	if v.selected < 0 || v.selected >= len(v.sources) {
		return nil
	}
	return &v.sources[v.selected]
}

func (v *View) prefillSource() *domain.Source {
	if len(v.successful) == 0 {
		return nil
	}
	return &v.successful[v.prefill%len(v.successful)]
}

func (v *View) openIngest(src *domain.Source) {
	v.mode = ModeIngest
	v.err = nil
	v.ingestForm.Reset()
	if src != nil {
		v.ingestFeed.SetValue(src.FeedURL)
		v.ingestName.SetValue(src.Name)
	}
}

func (v *View) updateAdd(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		v.mode = ModeList
		return v, nil
	case tea.KeyTab, tea.KeyDown:
		return v, v.addForm.Next()
	case tea.KeyShiftTab, tea.KeyUp:
		return v, v.addForm.Prev()
	case tea.KeyEnter:
		if !v.addForm.OnLast() {
			return v, v.addForm.Next()
		}
		src := domain.Source{
			Name:    strings.TrimSpace(v.name.Value()),
			URL:     strings.TrimSpace(v.url.Value()),
			FeedURL: strings.TrimSpace(v.feedURL.Value()),
			Type:    domain.DefaultSourceType,
		}
		if err := src.Validate(); err != nil {
			v.err = fmt.Errorf("nombre, URL y feed son obligatorios: %w", err)
			return v, nil
		}
		v.loading = true
		svc := v.sourceService
		return v, func() tea.Msg {
			if svc == nil {
				return messages.SourceAdded{Err: fmt.Errorf("source service not available")}
			}
			added, err := svc.Add(context.Background(), src, false)
			return messages.SourceAdded{Source: added, Err: err}
		}
	}
	return v, v.addForm.Update(msg)
}

func (v *View) updateIngest(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		v.mode = ModeList
		return v, nil
	case tea.KeyCtrlN:
		if len(v.successful) > 0 {
			v.prefill++
			src := v.prefillSource()
			v.ingestFeed.SetValue(src.FeedURL)
			v.ingestName.SetValue(src.Name)
		}
		return v, nil
	case tea.KeyTab, tea.KeyDown:
		return v, v.ingestForm.Next()
	case tea.KeyShiftTab, tea.KeyUp:
		return v, v.ingestForm.Prev()
	case tea.KeyEnter:
		if !v.ingestForm.OnLast() {
			return v, v.ingestForm.Next()
		}
		feedURL := strings.TrimSpace(v.ingestFeed.Value())
		name := strings.TrimSpace(v.ingestName.Value())
		if feedURL == "" {
			v.err = fmt.Errorf("el feed es obligatorio: %w", domain.ErrInvalidInput)
			return v, nil
		}
		v.loading = true
		svc := v.sourceService
		return v, func() tea.Msg {
			if svc == nil {
				return messages.IngestCompleted{Err: fmt.Errorf("source service not available")}
			}
			res, err := svc.Ingest(context.Background(), feedURL, name)
			return messages.IngestCompleted{Result: res, Err: err}
		}
	}
	return v, v.ingestForm.Update(msg)
}

func (v *View) updateConfirm(msg tea.KeyMsg) (*View, tea.Cmd) {
	v.mode = ModeList
	src := v.current()
	if src == nil {
		return v, nil
	}
	switch msg.String() {
	case "y", "Y", "s", "S":
		return v, v.deleteSource(src.ID)
	}
	return v, nil
}

// deleteSource returns a command that deletes a source.
func (v *View) deleteSource(id int64) tea.Cmd {
	v.loading = true
	svc := v.sourceService
	return func() tea.Msg {
		if svc == nil {
			return messages.SourceRemoved{ID: id, Err: fmt.Errorf("source service not available")}
		}
		err := svc.Remove(context.Background(), id)
		return messages.SourceRemoved{ID: id, Err: err}
	}
}

// View renders the sources view.
func (v *View) View() string {
	var b strings.Builder

	title := "Fuentes"
	if v.mode == ModeHistory {
		title = "Historial de conexiones"
	}
	b.WriteString(v.styles.Title.Render(title))
	b.WriteString("\n\n")

	switch v.mode {
	case ModeHistory:
		b.WriteString(v.renderHistory())
	case ModeAdd:
		b.WriteString(v.styles.Subtitle.Render("Nueva fuente"))
		b.WriteString("\n")
		b.WriteString(v.addForm.View())
	case ModeIngest:
		b.WriteString(v.styles.Subtitle.Render("Ingestar feed"))
		b.WriteString("\n")
		b.WriteString(v.ingestForm.View())
		if len(v.successful) > 0 {
			b.WriteString("\n")
			b.WriteString(v.styles.Muted.Render(
				fmt.Sprintf("[ctrl+n] rellenar desde %d fuentes con éxito", len(v.successful))))
		}
	default:
		b.WriteString(v.renderSources())
		if v.mode == ModeConfirmRemove {
			if src := v.current(); src != nil {
				b.WriteString("\n")
				b.WriteString(v.styles.Warning.Render(fmt.Sprintf("¿Eliminar %q? [y/n]", src.Name)))
			}
		}
	}
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Cargando..."))
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
	case v.notice != "":
		b.WriteString(v.styles.Success.Render(v.notice))
	}
	b.WriteString("\n")
	b.WriteString(v.renderHelp())
	return b.String()
}

func (v *View) renderSources() string {
	if len(v.sources) == 0 {
		return v.styles.Muted.Render("No hay fuentes configuradas.")
	}
	lines := make([]string, 0, len(v.sources))
	for i := range v.sources {
		lines = append(lines, v.renderSource(i, &v.sources[i]))
	}
	return strings.Join(lines, "\n")
}

// renderSource renders a single source line.
func (v *View) renderSource(index int, source *domain.Source) string {
	typeStr := fmt.Sprintf("[%s]", source.Type)
	name := runewidth.Truncate(source.Name, 24, "…")
	feed := runewidth.Truncate(source.FeedURL, max(v.width-len(typeStr)-36, 10), "…")

	if index == v.selected {
		return v.styles.Selected.Render(fmt.Sprintf("> %-6s %-24s %s", typeStr, name, feed))
	}
	return "  " + v.styles.Subtitle.Render(fmt.Sprintf("%-6s ", typeStr)) +
		v.styles.Normal.Render(runewidth.FillRight(name, 24)) + " " + v.styles.Muted.Render(feed)
}

func (v *View) renderHistory() string {
	if len(v.history) == 0 {
		return v.styles.Muted.Render("Sin historial.")
	}
	lines := make([]string, 0, len(v.history))
	for _, h := range v.history {
		line := fmt.Sprintf("%s  %-20s %-8s %4d",
			h.FetchedAt.Format("2006-01-02 15:04"),
			runewidth.Truncate(h.SourceName, 20, "…"), h.Status, h.ArticlesCount)
		if h.Details != nil && *h.Details != "" {
			line += "  " + v.styles.Muted.Render(runewidth.Truncate(*h.Details, 40, "…"))
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// renderHelp renders the help footer.
func (v *View) renderHelp() string {
	switch v.mode {
	case ModeAdd, ModeIngest:
		return v.styles.Help.Render("[tab] siguiente  [enter] confirmar  [esc] cancelar")
	case ModeHistory:
		return v.styles.Help.Render("[h] fuentes  [r] recargar  [esc] volver")
	default:
		return v.styles.Help.Render("[a] añadir  [d] eliminar  [i] ingestar  [g] ingestar feed  [h] historial  [r] recargar  [esc] volver")
	}
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
}

// Sources returns the current list of sources.
func (v *View) Sources() []domain.Source { return v.sources }

// History returns the loaded connection history.
func (v *View) History() []domain.FeedHistory { return v.history }

// SelectedIndex returns the currently selected source index.
func (v *View) SelectedIndex() int { return v.selected }

// Mode returns the current mode.
func (v *View) Mode() Mode { return v.mode }

// Err returns the last error.
func (v *View) Err() error { return v.err }

// Notice returns the last success message.
func (v *View) Notice() string { return v.notice }
