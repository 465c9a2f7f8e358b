package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/raiz-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/raiz-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/raiz-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/raiz-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/raiz-cli/internal/adapters/driving/tui/views/article"
	"github.com/custodia-labs/raiz-cli/internal/adapters/driving/tui/views/articles"
	"github.com/custodia-labs/raiz-cli/internal/adapters/driving/tui/views/editor"
	"github.com/custodia-labs/raiz-cli/internal/adapters/driving/tui/views/login"
	"github.com/custodia-labs/raiz-cli/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/raiz-cli/internal/adapters/driving/tui/views/register"
	"github.com/custodia-labs/raiz-cli/internal/adapters/driving/tui/views/settings"
	"github.com/custodia-labs/raiz-cli/internal/adapters/driving/tui/views/sources"
	"github.com/custodia-labs/raiz-cli/internal/adapters/driving/tui/views/users"
	"github.com/custodia-labs/raiz-cli/internal/core/domain"
	"github.com/custodia-labs/raiz-cli/internal/core/services"
	"github.com/custodia-labs/raiz-cli/internal/logger"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles
	keymap *keymap.KeyMap

	curator   *services.CuratorMode
	statusBar *status.Bar
	changes   <-chan domain.SessionChange

	menuView     *menu.View
	articlesView *articles.View
	articleView  *article.View
	editorView   *editor.View
	loginView    *login.View
	registerView *register.View
	sourcesView  *sources.View
	usersView    *users.View
	settingsView *settings.View

	currentView messages.ViewType

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()
	session := ports.Session
	curator := services.NewCuratorMode(session)

	a := &App{
		ports:        ports,
		ctx:          context.Background(),
		styles:       s,
		keymap:       km,
		curator:      curator,
		statusBar:    status.NewBar(s, km),
		menuView:     menu.NewView(s),
		articlesView: articles.NewView(s, ports.Articles, curator, ports.Curator),
		articleView:  article.NewView(s, ports.Articles, session.IsAdmin),
		editorView:   editor.NewView(s, ports.Articles),
		loginView:    login.NewView(s, session),
		registerView: register.NewView(s, session),
		sourcesView:  sources.NewView(s, ports.Sources),
		usersView:    users.NewView(s, ports.Users, session.Current),
		settingsView: settings.NewView(s, ports.Settings),
		currentView:  messages.ViewMenu,
	}
	a.syncSession(session.Current())
	return a, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.SetWindowTitle("raiz")}
	if a.ports.Watcher != nil {
		a.changes = a.ports.Watcher.Watch(a.ctx)
		cmds = append(cmds, a.waitForSessionChange())
	}
	return tea.Batch(cmds...)
}

func (a *App) waitForSessionChange() tea.Cmd {
	ch := a.changes
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		change, ok := <-ch
		if !ok {
			return nil
		}
		return messages.SessionFileChanged{Change: change}
	}
}

func (a *App) restoreSession() tea.Cmd {
	session := a.ports.Session
	ctx := a.ctx
	return func() tea.Msg {
		if err := session.Restore(ctx); err != nil {
			logger.Warn("restoring session: %v", err)
		}
		return messages.SessionChanged{User: session.Current()}
	}
}

func (a *App) syncSession(u *domain.User) {
	a.menuView.SetUser(u)
	a.statusBar.SetUser(u)
}

// Update implements tea.Model.
//
//nolint:gocognit,gocyclo,funlen // central message handler requires complexity
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		a.statusBar.Clear()
		return a, a.updateCurrent(msg)

	case messages.ViewChanged:
		return a, a.navigate(msg.View)

	case messages.Quit:
		return a, tea.Quit

	case messages.ErrorOccurred:
		a.statusBar.SetError(msg.Err)
		return a, nil

	case messages.Notice:
		a.statusBar.SetNotice(msg.Text)
		return a, nil

	case messages.LogoutRequested:
		session := a.ports.Session
		ctx := a.ctx
		return a, func() tea.Msg { return messages.LoggedOut{Err: session.Logout(ctx)} }

	case messages.LoggedOut:
		if msg.Err != nil {
			a.statusBar.SetError(msg.Err)
			return a, nil
		}
		a.syncSession(nil)
		a.statusBar.SetNotice("Sesión cerrada")
		a.currentView = messages.ViewMenu
		return a, nil

	case messages.LoginCompleted:
		a.loginView, cmd = a.loginView.Update(msg)
		if msg.Err != nil {
			return a, cmd
		}
		a.syncSession(msg.User)
		a.statusBar.SetNotice("Bienvenido, " + msg.User.Username)
		return a, a.navigate(messages.ViewArticles)

	case messages.RegisterCompleted:
		a.registerView, cmd = a.registerView.Update(msg)
		return a, cmd

	case messages.SessionFileChanged:
		logger.Debug("session store changed: %s (removed=%v)", msg.Change.Path, msg.Change.Removed)
		return a, tea.Batch(a.restoreSession(), a.waitForSessionChange())

	case messages.SessionChanged:
		a.syncSession(msg.User)
		if a.currentView.AdminOnly() && !msg.User.IsAdmin() {
			a.currentView = messages.ViewMenu
		}
		if a.currentView == messages.ViewArticles {
			return a, a.articlesView.Init()
		}
		return a, nil

	case messages.ArticleSelected:
		a.articleView.SetArticle(msg.Article)
		a.currentView = messages.ViewArticle
		return a, nil

	case messages.EditRequested:
		if !a.ports.Session.IsAdmin() {
			a.statusBar.SetError(domain.ErrForbidden)
			return a, nil
		}
		a.currentView = messages.ViewEditor
		return a, a.editorView.SetArticle(msg.Article)

	case messages.ArticleSaved:
		a.articleView, _ = a.articleView.Update(msg)
		if msg.Err != nil {
			a.statusBar.SetError(msg.Err)
			return a, nil
		}
		a.statusBar.SetNotice("Artículo guardado")
		return a, a.articlesView.Reload()

	case messages.ArticlesLoaded, messages.SearchCompleted, messages.BulkCompleted:
		a.articlesView, cmd = a.articlesView.Update(msg)
		return a, cmd

	case messages.EditorActionDone, messages.SuggestionsLoaded:
		a.editorView, cmd = a.editorView.Update(msg)
		return a, cmd

	case messages.SourcesLoaded, messages.SourceAdded, messages.SourceRemoved,
		messages.HistoryLoaded, messages.IngestCompleted:
		a.sourcesView, cmd = a.sourcesView.Update(msg)
		return a, cmd

	case messages.UsersLoaded, messages.UserChanged:
		a.usersView, cmd = a.usersView.Update(msg)
		return a, cmd

	case messages.SettingsLoaded, messages.SettingsSaved:
		a.settingsView, cmd = a.settingsView.Update(msg)
		return a, cmd
	}

	return a, a.updateCurrent(msg)
}

// updateCurrent forwards msg to the active view.
func (a *App) updateCurrent(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch a.currentView {
	case messages.ViewMenu:
		if k, ok := msg.(tea.KeyMsg); ok && keymap.Matches(k.String(), a.keymap.Help) {
			a.currentView = messages.ViewHelp
			return nil
		}
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewArticles:
		a.articlesView, cmd = a.articlesView.Update(msg)
	case messages.ViewArticle:
		a.articleView, cmd = a.articleView.Update(msg)
	case messages.ViewEditor:
		a.editorView, cmd = a.editorView.Update(msg)
	case messages.ViewLogin:
		a.loginView, cmd = a.loginView.Update(msg)
	case messages.ViewRegister:
		a.registerView, cmd = a.registerView.Update(msg)
	case messages.ViewSources:
		a.sourcesView, cmd = a.sourcesView.Update(msg)
	case messages.ViewUsers:
		a.usersView, cmd = a.usersView.Update(msg)
	case messages.ViewSettings:
		a.settingsView, cmd = a.settingsView.Update(msg)
	case messages.ViewHelp:
		if k, ok := msg.(tea.KeyMsg); ok && k.Type == tea.KeyEsc {
			a.currentView = messages.ViewMenu
		}
	}
	return cmd
}

// navigate switches views, enforcing the admin gate and initialising
// the target view.
func (a *App) navigate(view messages.ViewType) tea.Cmd {
	if view.AdminOnly() && !a.ports.Session.IsAdmin() {
		if a.ports.Session.State() == domain.SessionAnonymous {
			a.statusBar.SetError(domain.ErrAuthRequired)
			view = messages.ViewLogin
		} else {
			a.statusBar.SetError(domain.ErrForbidden)
			return nil
		}
	}

	a.currentView = view
	switch view {
	case messages.ViewArticles:
		return a.articlesView.Init()
	case messages.ViewLogin:
		a.loginView.Reset()
		return a.loginView.Init()
	case messages.ViewRegister:
		a.registerView.Reset()
		return a.registerView.Init()
	case messages.ViewSources:
		return a.sourcesView.Init()
	case messages.ViewUsers:
		return a.usersView.Init()
	case messages.ViewSettings:
		return a.settingsView.Init()
	case messages.ViewMenu, messages.ViewArticle, messages.ViewEditor, messages.ViewHelp:
	}
	return nil
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	a.statusBar.SetCurator(a.curator.Active())
	a.statusBar.SetHints(a.hints())

	var body string
	switch a.currentView {
	case messages.ViewArticles:
		body = a.articlesView.View()
	case messages.ViewArticle:
		body = a.articleView.View()
	case messages.ViewEditor:
		body = a.editorView.View()
	case messages.ViewLogin:
		body = a.loginView.View()
	case messages.ViewRegister:
		body = a.registerView.View()
	case messages.ViewSources:
		body = a.sourcesView.View()
	case messages.ViewUsers:
		body = a.usersView.View()
	case messages.ViewSettings:
		body = a.settingsView.View()
	case messages.ViewHelp:
		body = a.viewHelp()
	default:
		body = a.menuView.View()
	}
	return body + "\n\n" + a.statusBar.View()
}

func (a *App) hints() []key.Binding {
	switch a.currentView {
	case messages.ViewArticles:
		if a.curator.Active() {
			return a.keymap.CuratorHelp()
		}
		return []key.Binding{a.keymap.Curator, a.keymap.Filter, a.keymap.Search}
	case messages.ViewEditor:
		return a.keymap.EditorHelp()
	default:
		return a.keymap.ShortHelp()
	}
}

// viewHelp renders the key bindings.
func (a *App) viewHelp() string {
	var b strings.Builder
	b.WriteString(a.styles.Title.Render("Ayuda"))
	b.WriteString("\n\n")
	for _, group := range a.keymap.FullHelp() {
		for _, binding := range group {
			h := binding.Help()
			fmt.Fprintf(&b, "  %-12s %s\n", h.Key, h.Desc)
		}
		b.WriteString("\n")
	}
	b.WriteString(a.styles.Help.Render("[esc] volver al menú"))
	return b.String()
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && a.ctx.Err() != nil {
		return nil
	}
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// StatusBar returns the status bar.
func (a *App) StatusBar() *status.Bar {
	return a.statusBar
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	body := max(height-2, 1)
	a.statusBar.SetWidth(width)
	a.menuView.SetDimensions(width, body)
	a.articlesView.SetDimensions(width, body)
	a.articleView.SetDimensions(width, body)
	a.editorView.SetDimensions(width, body)
	a.loginView.SetDimensions(width, body)
	a.registerView.SetDimensions(width, body)
	a.sourcesView.SetDimensions(width, body)
	a.usersView.SetDimensions(width, body)
	a.settingsView.SetDimensions(width, body)
}
