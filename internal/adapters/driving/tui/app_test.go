package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/raiz-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/raiz-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/raiz-cli/internal/core/domain"
	"github.com/custodia-labs/raiz-cli/internal/core/ports/driving/drivingtest"
)

var (
	admin  = &domain.User{Username: "ana", Role: domain.RoleAdmin}
	reader = &domain.User{Username: "luis", Role: domain.RoleUser}
)

func newTestApp(t *testing.T, user *domain.User) (*App, *drivingtest.Session) {
	t.Helper()
	session := drivingtest.NewSession(user)
	app, err := NewApp(&Ports{
		Session:  session,
		Articles: drivingtest.NewArticles(domain.Article{ID: 1, Title: "Clima extremo", Status: domain.StatusPublished}),
		Sources:  drivingtest.NewSources(),
		Users:    drivingtest.NewUsers(),
	})
	require.NoError(t, err)
	app.SetDimensions(100, 30)
	return app, session
}

func menuLabels(app *App) []string {
	var labels []string
	for _, item := range app.menuView.Items() {
		labels = append(labels, item.Label)
	}
	return labels
}

type fakeWatcher struct {
	ch chan domain.SessionChange
}

func (w *fakeWatcher) Watch(context.Context) <-chan domain.SessionChange { return w.ch }

func TestNewApp_StartsAtMenu(t *testing.T) {
	app, _ := newTestApp(t, nil)

	assert.Equal(t, messages.ViewMenu, app.CurrentView())
	assert.True(t, app.Ready())
	assert.Contains(t, app.View(), "Iniciar sesión")
}

func TestNewApp_InvalidPorts(t *testing.T) {
	app, err := NewApp(&Ports{})

	assert.Nil(t, app)
	assert.ErrorIs(t, err, ErrInvalidPorts)
}

func TestApp_ViewBeforeWindowSize(t *testing.T) {
	app, err := NewApp(&Ports{Session: drivingtest.NewSession(nil), Articles: drivingtest.NewArticles()})
	require.NoError(t, err)

	assert.False(t, app.Ready())
	assert.Equal(t, "Initialising...", app.View())

	app.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	assert.True(t, app.Ready())
}

func TestApp_CtrlCQuits(t *testing.T) {
	app, _ := newTestApp(t, nil)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestApp_AdminViewsRouteAnonymousToLogin(t *testing.T) {
	app, _ := newTestApp(t, nil)

	app.Update(messages.ViewChanged{View: messages.ViewSources})

	assert.Equal(t, messages.ViewLogin, app.CurrentView())
	assert.Equal(t, status.StateError, app.StatusBar().State())
}

func TestApp_AdminViewsForbiddenForUsers(t *testing.T) {
	app, _ := newTestApp(t, reader)

	app.Update(messages.ViewChanged{View: messages.ViewUsers})

	assert.Equal(t, messages.ViewMenu, app.CurrentView())
	assert.Equal(t, status.StateError, app.StatusBar().State())
}

func TestApp_AdminCanOpenSources(t *testing.T) {
	app, _ := newTestApp(t, admin)

	_, cmd := app.Update(messages.ViewChanged{View: messages.ViewSources})

	assert.Equal(t, messages.ViewSources, app.CurrentView())
	require.NotNil(t, cmd)
	msg := cmd()
	require.IsType(t, messages.SourcesLoaded{}, msg)

	app.Update(msg)
	assert.Equal(t, messages.ViewSources, app.CurrentView())
}

func TestApp_AdminMenuEntries(t *testing.T) {
	app, _ := newTestApp(t, admin)
	assert.Contains(t, menuLabels(app), "Fuentes")
	assert.Contains(t, menuLabels(app), "Usuarios")

	anon, _ := newTestApp(t, nil)
	assert.NotContains(t, menuLabels(anon), "Fuentes")
	assert.NotContains(t, menuLabels(anon), "Usuarios")
}

func TestApp_LoginSuccess(t *testing.T) {
	app, _ := newTestApp(t, nil)
	app.Update(messages.ViewChanged{View: messages.ViewLogin})

	_, cmd := app.Update(messages.LoginCompleted{User: reader})

	assert.Equal(t, messages.ViewArticles, app.CurrentView())
	assert.Equal(t, reader, app.StatusBar().User())
	assert.Contains(t, app.StatusBar().Message(), "luis")
	assert.Contains(t, menuLabels(app), "Cerrar sesión")
	require.NotNil(t, cmd)
	assert.IsType(t, messages.ArticlesLoaded{}, cmd())
}

func TestApp_LoginFailureStaysOnLogin(t *testing.T) {
	app, _ := newTestApp(t, nil)
	app.Update(messages.ViewChanged{View: messages.ViewLogin})

	app.Update(messages.LoginCompleted{Err: domain.ErrInvalidCredentials})

	assert.Equal(t, messages.ViewLogin, app.CurrentView())
	assert.Nil(t, app.StatusBar().User())
	assert.Equal(t, "Credenciales inválidas", app.loginView.Err())
}

func TestApp_Logout(t *testing.T) {
	app, session := newTestApp(t, admin)
	app.Update(messages.ViewChanged{View: messages.ViewArticles})

	_, cmd := app.Update(messages.LogoutRequested{})
	require.NotNil(t, cmd)
	msg := cmd()
	assert.Equal(t, messages.LoggedOut{}, msg)
	app.Update(msg)

	assert.Equal(t, domain.SessionAnonymous, session.State())
	assert.Equal(t, messages.ViewMenu, app.CurrentView())
	assert.Nil(t, app.StatusBar().User())
	assert.NotContains(t, menuLabels(app), "Fuentes")
}

func TestApp_LogoutError(t *testing.T) {
	app, session := newTestApp(t, admin)
	session.LogoutErr = errors.New("disk full")

	_, cmd := app.Update(messages.LogoutRequested{})
	app.Update(cmd())

	assert.Equal(t, status.StateError, app.StatusBar().State())
	assert.Equal(t, admin, app.StatusBar().User())
}

func TestApp_SessionChangedDropsAdminView(t *testing.T) {
	app, _ := newTestApp(t, admin)
	app.Update(messages.ViewChanged{View: messages.ViewUsers})
	require.Equal(t, messages.ViewUsers, app.CurrentView())

	app.Update(messages.SessionChanged{User: nil})

	assert.Equal(t, messages.ViewMenu, app.CurrentView())
	assert.Contains(t, menuLabels(app), "Iniciar sesión")
}

func TestApp_SessionFileChangedRestores(t *testing.T) {
	app, session := newTestApp(t, admin)
	session.RestoreFunc = func(context.Context) (*domain.User, error) {
		return nil, errors.New("malformed token")
	}

	_, cmd := app.Update(messages.SessionFileChanged{Change: domain.SessionChange{Path: "token"}})
	require.NotNil(t, cmd)
	msg := cmd()

	assert.Equal(t, 1, session.Restores)
	assert.Equal(t, messages.SessionChanged{User: nil}, msg)
}

func TestApp_WatcherFeedsSessionChanges(t *testing.T) {
	w := &fakeWatcher{ch: make(chan domain.SessionChange, 1)}
	app, err := NewApp(&Ports{
		Session:  drivingtest.NewSession(nil),
		Articles: drivingtest.NewArticles(),
		Watcher:  w,
	})
	require.NoError(t, err)
	require.NotNil(t, app.Init())

	w.ch <- domain.SessionChange{Path: "token", Removed: true}
	msg := app.waitForSessionChange()()

	assert.Equal(t, messages.SessionFileChanged{Change: domain.SessionChange{Path: "token", Removed: true}}, msg)

	close(w.ch)
	assert.Nil(t, app.waitForSessionChange()())
}

func TestApp_ArticleSelectedOpensDetail(t *testing.T) {
	app, _ := newTestApp(t, nil)
	a := domain.Article{ID: 7, Title: "Economía", Status: domain.StatusPublished}

	app.Update(messages.ArticleSelected{Article: a})

	assert.Equal(t, messages.ViewArticle, app.CurrentView())
	require.NotNil(t, app.articleView.Article())
	assert.Equal(t, int64(7), app.articleView.Article().ID)
}

func TestApp_EditRequestedRequiresAdmin(t *testing.T) {
	a := domain.Article{ID: 1, Title: "Clima extremo", Status: domain.StatusDraft}

	app, _ := newTestApp(t, reader)
	app.Update(messages.EditRequested{Article: a})
	assert.NotEqual(t, messages.ViewEditor, app.CurrentView())
	assert.Equal(t, status.StateError, app.StatusBar().State())

	app, _ = newTestApp(t, admin)
	app.Update(messages.EditRequested{Article: a})
	assert.Equal(t, messages.ViewEditor, app.CurrentView())
	assert.Equal(t, "Clima extremo", app.editorView.Editor().Title())
}

func TestApp_ArticleSavedReloads(t *testing.T) {
	app, _ := newTestApp(t, admin)
	saved := &domain.Article{ID: 1, Title: "Nuevo", Status: domain.StatusDraft}

	_, cmd := app.Update(messages.ArticleSaved{Article: saved})

	assert.Equal(t, "Artículo guardado", app.StatusBar().Message())
	require.NotNil(t, cmd)
	assert.IsType(t, messages.ArticlesLoaded{}, cmd())
}

func TestApp_ErrorAndNoticeMessages(t *testing.T) {
	app, _ := newTestApp(t, nil)

	app.Update(messages.ErrorOccurred{Err: errors.New("boom")})
	assert.Equal(t, status.StateError, app.StatusBar().State())

	app.Update(messages.Notice{Text: "hola"})
	assert.Equal(t, status.StateNotice, app.StatusBar().State())
	assert.Equal(t, "hola", app.StatusBar().Message())
}

func TestApp_HelpView(t *testing.T) {
	app, _ := newTestApp(t, nil)

	app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}})
	assert.Equal(t, messages.ViewHelp, app.CurrentView())
	assert.Contains(t, app.View(), "Ayuda")

	app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, messages.ViewMenu, app.CurrentView())
}

func TestApp_QuitMessage(t *testing.T) {
	app, _ := newTestApp(t, nil)

	_, cmd := app.Update(messages.Quit{})

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
