// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/raiz-cli/internal/core/domain"
	"github.com/custodia-labs/raiz-cli/internal/core/services"
)

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewArticles is the article list (home and curator panel).
	ViewArticles
	// ViewArticle shows one article.
	ViewArticle
	// ViewEditor edits one article.
	ViewEditor
	// ViewLogin is the login form.
	ViewLogin
	// ViewRegister is the registration form.
	ViewRegister
	// ViewSources is source and ingestion management.
	ViewSources
	// ViewUsers is user administration.
	ViewUsers
	// ViewSettings edits application settings.
	ViewSettings
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewArticles:
		return "articles"
	case ViewArticle:
		return "article"
	case ViewEditor:
		return "editor"
	case ViewLogin:
		return "login"
	case ViewRegister:
		return "register"
	case ViewSources:
		return "sources"
	case ViewUsers:
		return "users"
	case ViewSettings:
		return "settings"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// AdminOnly reports whether the view requires an admin session.
func (v ViewType) AdminOnly() bool {
	return v == ViewEditor || v == ViewSources || v == ViewUsers
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// Notice is a transient status bar message.
type Notice struct {
	Text string
}

// LoginCompleted carries the outcome of a login attempt.
type LoginCompleted struct {
	User *domain.User
	Err  error
}

// RegisterCompleted carries the outcome of a registration.
type RegisterCompleted struct {
	Username string
	Err      error
}

// LogoutRequested asks the app to clear the session.
type LogoutRequested struct{}

// LoggedOut signals the session was cleared.
type LoggedOut struct {
	Err error
}

// SessionChanged signals that the session was re-derived, for example
// after another process logged in or out.
type SessionChanged struct {
	User *domain.User
}

// SessionFileChanged carries a token-store change seen by the watcher.
type SessionFileChanged struct {
	Change domain.SessionChange
}

// ArticlesLoaded carries articles for the current status filter.
type ArticlesLoaded struct {
	Filter   domain.StatusFilter
	Articles []domain.Article
	Err      error
}

// SearchCompleted carries search results.
type SearchCompleted struct {
	Query   string
	Results []domain.Article
	Err     error
}

// ArticleSelected opens an article's detail view.
type ArticleSelected struct {
	Article domain.Article
}

// EditRequested opens the editor on an article.
type EditRequested struct {
	Article domain.Article
}

// ArticleSaved signals an article was updated.
type ArticleSaved struct {
	Article *domain.Article
	Err     error
}

// BulkCompleted carries the outcome of a bulk delete or archive.
type BulkCompleted struct {
	Action string
	Result services.BulkResult
}

// EditorActionDone signals an editor side action finished.
// Editor holds the updated state when Err is nil.
type EditorActionDone struct {
	Action string
	Detail string
	Editor *services.Editor
	Err    error
}

// SuggestionsLoaded carries knowledge-base suggestions.
type SuggestionsLoaded struct {
	Items []domain.KnowledgeItem
	Err   error
}

// SourcesLoaded carries the list of sources from the service.
type SourcesLoaded struct {
	Sources    []domain.Source
	Successful []domain.Source
	Err        error
}

// SourceAdded signals a source was added.
type SourceAdded struct {
	Source *domain.Source
	Err    error
}

// SourceRemoved signals a source was removed.
type SourceRemoved struct {
	ID  int64
	Err error
}

// HistoryLoaded carries the ingestion history.
type HistoryLoaded struct {
	History []domain.FeedHistory
	Err     error
}

// IngestCompleted carries the outcome of an ingestion run.
type IngestCompleted struct {
	Result *domain.IngestResult
	Err    error
}

// UsersLoaded carries the account list.
type UsersLoaded struct {
	Accounts []domain.Account
	Err      error
}

// SettingsLoaded carries the current settings.
type SettingsLoaded struct {
	Settings *domain.AppSettings
	Err      error
}

// SettingsSaved signals a setting was written.
type SettingsSaved struct {
	Key string
	Err error
}

// UserChanged signals a user was deleted or had its role changed.
type UserChanged struct {
	Err error
}
