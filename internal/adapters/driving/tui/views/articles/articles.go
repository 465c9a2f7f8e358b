// Package articles provides the article list view, shared by the public
// listing and the curator panel.
package articles

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/raiz-cli/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/raiz-cli/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/raiz-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/raiz-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/raiz-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/raiz-cli/internal/core/domain"
	"github.com/custodia-labs/raiz-cli/internal/core/ports/driving"
	"github.com/custodia-labs/raiz-cli/internal/core/services"
)

const dateLayout = "2006-01-02"

// Mode is the input mode of the view.
type Mode int

const (
	ModeBrowse Mode = iota
	ModeFilter
	ModeSearch
	ModeDates
	ModeConfirmDelete
)

// View is the article list view.
type View struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	articles driving.ArticleService
	settings domain.CuratorSettings

	list    *services.CuratorList
	curator *services.CuratorMode
	table   *list.ArticleList

	filter *input.Field
	search *input.Field
	from   *input.Field
	to     *input.Field
	dates  *input.Form

	mode    Mode
	loading bool
	busy    bool
	err     error
	notice  string
	width   int
	height  int
}

// NewView creates an article list view.
func NewView(
	s *styles.Styles,
	articles driving.ArticleService,
	curator *services.CuratorMode,
	settings domain.CuratorSettings,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if curator == nil {
		curator = services.NewCuratorMode(nil)
	}

	l := services.NewCuratorList()
	l.Configure(settings)
	l.SetStatusFilter(domain.FilterFor(domain.StatusPublished))

	v := &View{
		styles:   s,
		keymap:   keymap.DefaultKeyMap(),
		articles: articles,
		settings: settings,
		list:     l,
		curator:  curator,
		table:    list.NewArticleList(s),
		filter:   input.NewField(s, "Filtrar", "texto en título o resumen"),
		search:   input.NewField(s, "Buscar", "consulta"),
		from:     input.NewField(s, "Desde", dateLayout),
		to:       input.NewField(s, "Hasta", dateLayout),
		width:    80,
		height:   24,
	}
	v.dates = input.NewForm(v.from, v.to)
	v.dates.Fields[0].Blur()
	return v
}

// Init loads the articles for the current status filter.
func (v *View) Init() tea.Cmd {
	if !v.curator.Active() && v.list.StatusFilter() != domain.FilterFor(domain.StatusPublished) {
		v.list.SetStatusFilter(domain.FilterFor(domain.StatusPublished))
	}
	return v.Reload()
}

// Reload fetches the articles again.
func (v *View) Reload() tea.Cmd {
	v.loading = true
	v.err = nil
	filter := v.list.StatusFilter()
	svc := v.articles
	return func() tea.Msg {
		if svc == nil {
			return messages.ArticlesLoaded{Filter: filter, Err: errors.New("article service not available")}
		}
		items, err := svc.List(context.Background(), filter)
		return messages.ArticlesLoaded{Filter: filter, Articles: items, Err: err}
	}
}

// Update handles messages for the article list.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.ArticlesLoaded:
		if msg.Filter != v.list.StatusFilter() {
			return v, nil
		}
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
			if services.IsAuthError(msg.Err) {
				return v, toView(messages.ViewLogin)
			}
			return v, nil
		}
		v.list.SetArticles(msg.Articles)
		v.sync()
		return v, nil

	case messages.SearchCompleted:
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.list.SetSearch(msg.Query, msg.Results)
		v.sync()
		return v, nil

	case messages.BulkCompleted:
		v.busy = false
		if msg.Result.SuccessCount() > 0 {
			v.list.ClearSelection()
		}
		v.notice = bulkNotice(msg.Action, msg.Result)
		return v, v.Reload()

	case tea.KeyMsg:
		switch v.mode {
		case ModeFilter:
			return v.updateFilter(msg)
		case ModeSearch:
			return v.updateSearch(msg)
		case ModeDates:
			return v.updateDates(msg)
		case ModeConfirmDelete:
			return v.updateConfirm(msg)
		default:
			return v.updateBrowse(msg)
		}
	}
	return v, nil
}

//nolint:gocyclo // one case per key binding
func (v *View) updateBrowse(msg tea.KeyMsg) (*View, tea.Cmd) {
	k := msg.String()
	km := v.keymap
	curator := v.curator.Active()

	switch {
	case keymap.Matches(k, km.Back):
		if v.list.Query() != "" {
			v.list.ClearSearch()
			v.search.Reset()
			v.sync()
			return v, nil
		}
		return v, toView(messages.ViewMenu)

	case keymap.Matches(k, km.Up):
		v.table.MoveUp()
	case keymap.Matches(k, km.Down):
		v.table.MoveDown()

	case keymap.Matches(k, km.Select):
		if a := v.table.Current(); a != nil {
			article := *a
			return v, func() tea.Msg { return messages.ArticleSelected{Article: article} }
		}

	case keymap.Matches(k, km.Reload):
		return v, v.Reload()

	case keymap.Matches(k, km.Curator):
		return v, v.toggleCurator()

	case keymap.Matches(k, km.Filter):
		v.mode = ModeFilter
		v.filter.SetValue(v.list.FilterText())
		return v, v.filter.Focus()

	case keymap.Matches(k, km.Search):
		v.mode = ModeSearch
		return v, v.search.Focus()

	case keymap.Matches(k, km.Dates):
		v.mode = ModeDates
		return v, v.dates.FocusIndex(0)

	case curator && keymap.Matches(k, km.NextStatus):
		v.list.SetStatusFilter(nextStatus(v.list.StatusFilter()))
		return v, v.Reload()

	case curator && keymap.Matches(k, km.ViewMode):
		if v.list.ViewMode() == services.ViewColumns {
			v.list.SetViewMode(services.ViewList)
			v.sync()
			return v, nil
		}
		v.list.SetViewMode(services.ViewColumns)
		return v, v.Reload()

	case curator && keymap.Matches(k, km.Mark):
		if a := v.table.Current(); a != nil {
			v.list.ToggleSelect(a.ID)
		}
	case curator && keymap.Matches(k, km.MarkAll):
		v.list.SelectAll()

	case curator && keymap.Matches(k, km.Delete):
		if len(v.list.Selected()) > 0 && !v.busy {
			v.mode = ModeConfirmDelete
		}
	case curator && keymap.Matches(k, km.Archive):
		return v, v.bulk("archive")

	case curator && keymap.Matches(k, km.Edit):
		if a := v.table.Current(); a != nil {
			article := *a
			return v, func() tea.Msg { return messages.EditRequested{Article: article} }
		}
	}
	return v, nil
}

func (v *View) toggleCurator() tea.Cmd {
	if err := v.curator.Toggle(v.list); err != nil {
		v.err = err
		return toView(messages.ViewLogin)
	}
	if !v.curator.Active() {
		v.list.ClearSelection()
		v.list.SetStatusFilter(domain.FilterFor(domain.StatusPublished))
	}
	v.sync()
	return v.Reload()
}

func (v *View) updateFilter(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		v.mode = ModeBrowse
		v.filter.Blur()
		return v, nil
	case tea.KeyEsc:
		v.mode = ModeBrowse
		v.filter.Reset()
		v.filter.Blur()
		v.list.SetFilterText("")
		v.sync()
		return v, nil
	}
	_, cmd := v.filter.Update(msg)
	v.list.SetFilterText(v.filter.Value())
	v.sync()
	return v, cmd
}

func (v *View) updateSearch(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		v.mode = ModeBrowse
		v.search.Blur()
		query := strings.TrimSpace(v.search.Value())
		if query == "" {
			v.list.ClearSearch()
			v.sync()
			return v, nil
		}
		v.loading = true
		svc := v.articles
		return v, func() tea.Msg {
			if svc == nil {
				return messages.SearchCompleted{Query: query, Err: errors.New("article service not available")}
			}
			results, err := svc.Search(context.Background(), query)
			if err != nil {
				return messages.SearchCompleted{Query: query, Err: err}
			}
			return messages.SearchCompleted{Query: query, Results: domain.SearchResultsToArticles(results)}
		}
	case tea.KeyEsc:
		v.mode = ModeBrowse
		v.search.Blur()
		return v, nil
	}
	_, cmd := v.search.Update(msg)
	return v, cmd
}

func (v *View) updateDates(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		v.mode = ModeBrowse
		v.from.Blur()
		v.to.Blur()
		return v, nil
	case tea.KeyTab:
		return v, v.dates.Next()
	case tea.KeyEnter:
		if !v.dates.OnLast() {
			return v, v.dates.Next()
		}
		start, err := parseDay(v.from.Value())
		if err != nil {
			v.err = err
			return v, nil
		}
		end, err := parseDay(v.to.Value())
		if err != nil {
			v.err = err
			return v, nil
		}
		v.err = nil
		v.mode = ModeBrowse
		v.from.Blur()
		v.to.Blur()
		v.list.SetDateRange(start, end)
		v.sync()
		return v, nil
	}
	return v, v.dates.Update(msg)
}

func (v *View) updateConfirm(msg tea.KeyMsg) (*View, tea.Cmd) {
	v.mode = ModeBrowse
	switch msg.String() {
	case "y", "Y", "s", "S":
		return v, v.bulk("delete")
	}
	return v, nil
}

// bulk runs a bulk action on a snapshot of the list so the command
// goroutine never touches state the view is rendering.
func (v *View) bulk(action string) tea.Cmd {
	if v.busy || len(v.list.Selected()) == 0 {
		return nil
	}
	work := services.NewCuratorList()
	work.Configure(v.settings)
	work.SetArticles(v.list.Articles())
	for _, id := range v.list.Selected() {
		work.ToggleSelect(id)
	}
	v.busy = true
	v.notice = ""
	svc := v.articles
	return func() tea.Msg {
		ctx := context.Background()
		var res services.BulkResult
		if action == "delete" {
			res = work.BulkDelete(ctx, svc)
		} else {
			res = work.BulkArchive(ctx, svc)
		}
		return messages.BulkCompleted{Action: action, Result: res}
	}
}

func bulkNotice(action string, res services.BulkResult) string {
	verb := "Eliminados"
	if action == "archive" {
		verb = "Archivados"
	}
	total := res.SuccessCount() + len(res.Failed)
	text := fmt.Sprintf("%s %d de %d", verb, res.SuccessCount(), total)
	if len(res.Failed) > 0 {
		text += fmt.Sprintf(" (%d fallidos)", len(res.Failed))
	}
	if len(res.Skipped) > 0 {
		text += fmt.Sprintf(" (%d omitidos)", len(res.Skipped))
	}
	return text
}

func nextStatus(f domain.StatusFilter) domain.StatusFilter {
	for i, s := range domain.AllStatuses {
		if domain.FilterFor(s) == f {
			return domain.FilterFor(domain.AllStatuses[(i+1)%len(domain.AllStatuses)])
		}
	}
	return domain.FilterFor(domain.AllStatuses[0])
}

func parseDay(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.ParseInLocation(dateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: fecha %q (use %s)", domain.ErrInvalidInput, s, dateLayout)
	}
	return t, nil
}

func toView(view messages.ViewType) tea.Cmd {
	return func() tea.Msg { return messages.ViewChanged{View: view} }
}

func (v *View) sync() {
	v.table.SetArticles(v.list.Displayed())
	if v.curator.Active() {
		v.table.SetMarked(v.list.IsSelected)
	} else {
		v.table.SetMarked(nil)
	}
}

// View renders the article list.
func (v *View) View() string {
	var b strings.Builder

	title := "Artículos"
	if v.curator.Active() {
		title = "Panel de curador"
	}
	b.WriteString(v.styles.Title.Render(title))
	b.WriteString("\n")
	if v.curator.Active() {
		b.WriteString(v.renderTabs())
		b.WriteString("\n")
	}
	if summary := v.renderFilters(); summary != "" {
		b.WriteString(v.styles.Muted.Render(summary))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if v.curator.Active() && v.list.ViewMode() == services.ViewColumns && v.list.Query() == "" {
		b.WriteString(v.renderBoard())
	} else {
		b.WriteString(v.table.View())
	}
	b.WriteString("\n\n")

	switch v.mode {
	case ModeFilter:
		b.WriteString(v.filter.View())
	case ModeSearch:
		b.WriteString(v.search.View())
	case ModeDates:
		b.WriteString(v.dates.View())
	case ModeConfirmDelete:
		b.WriteString(v.styles.Warning.Render(
			fmt.Sprintf("¿Eliminar %d artículos? [y/n]", len(v.list.Selected()))))
	}
	b.WriteString("\n")

	switch {
	case v.loading || v.busy:
		b.WriteString(v.styles.Muted.Render("Cargando..."))
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(v.err.Error()))
	case v.notice != "":
		b.WriteString(v.styles.Success.Render(v.notice))
	}
	return b.String()
}

func (v *View) renderTabs() string {
	tabs := make([]string, 0, len(domain.AllStatuses)+1)
	for _, s := range domain.AllStatuses {
		if domain.FilterFor(s) == v.list.StatusFilter() {
			tabs = append(tabs, v.styles.Selected.Render("["+s.Label()+"]"))
		} else {
			tabs = append(tabs, v.styles.Muted.Render(" "+s.Label()+" "))
		}
	}
	if v.list.StatusFilter() == domain.StatusFilterAll {
		tabs = append(tabs, v.styles.Selected.Render("[Todos]"))
	}
	return strings.Join(tabs, " ")
}

func (v *View) renderFilters() string {
	var parts []string
	if q := v.list.Query(); q != "" {
		parts = append(parts, fmt.Sprintf("búsqueda: %q", q))
	}
	if f := v.list.FilterText(); f != "" {
		parts = append(parts, fmt.Sprintf("filtro: %q", f))
	}
	start, end := v.list.DateRange()
	if !start.IsZero() || !end.IsZero() {
		parts = append(parts, fmt.Sprintf("fechas: %s → %s", dayOrDots(start), dayOrDots(end)))
	}
	if n := len(v.list.Selected()); n > 0 {
		parts = append(parts, fmt.Sprintf("%d seleccionados", n))
	}
	return strings.Join(parts, "  ·  ")
}

func dayOrDots(t time.Time) string {
	if t.IsZero() {
		return "…"
	}
	return t.Format(dateLayout)
}

func (v *View) renderBoard() string {
	board := v.list.Columns()
	columns := make([][]domain.Article, 0, len(domain.AllStatuses))
	headers := make([]string, 0, len(domain.AllStatuses))
	for _, s := range domain.AllStatuses {
		columns = append(columns, board.Column(s))
		headers = append(headers, s.Label())
	}
	out := list.Board(v.styles, columns, headers, v.width, v.height-8, v.list.IsSelected)
	if n := len(board.Unclassified); n > 0 {
		out += "\n" + v.styles.Warning.Render(fmt.Sprintf("%d sin clasificar", n))
	}
	return out
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.table.SetDimensions(width, max(height-10, 3))
	v.filter.SetWidth(width)
	v.search.SetWidth(width)
}

// List exposes the underlying curator list.
func (v *View) List() *services.CuratorList { return v.list }

// CuratorActive reports whether curator mode is on.
func (v *View) CuratorActive() bool { return v.curator.Active() }

// Mode returns the current input mode.
func (v *View) Mode() Mode { return v.mode }

// Err returns the last error.
func (v *View) Err() error { return v.err }

// Notice returns the last bulk-action summary.
func (v *View) Notice() string { return v.notice }

// Busy reports whether a bulk action is running.
func (v *View) Busy() bool { return v.busy }
