// Package tui provides an interactive terminal user interface for raiz.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"context"
	"fmt"

	"github.com/custodia-labs/raiz-cli/internal/core/domain"
	"github.com/custodia-labs/raiz-cli/internal/core/ports/driving"
)

// SessionWatcher reports changes to the persisted session made by other
// processes.
type SessionWatcher interface {
	Watch(ctx context.Context) <-chan domain.SessionChange
}

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Session derives the signed-in user.
	Session driving.SessionService

	// Articles lists, searches and edits articles.
	Articles driving.ArticleService

	// Sources manages feed sources and ingestion. Optional.
	Sources driving.SourceService

	// Users manages accounts. Optional.
	Users driving.UserService

	// Settings manages application settings. Optional.
	Settings driving.SettingsService

	// Curator configures the curator list.
	Curator domain.CuratorSettings

	// Watcher re-derives the session on external login/logout. Optional.
	Watcher SessionWatcher
}

// Validate ensures the required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Session == nil {
		return fmt.Errorf("%w: %w", ErrInvalidPorts, ErrMissingSessionService)
	}
	if p.Articles == nil {
		return fmt.Errorf("%w: %w", ErrInvalidPorts, ErrMissingArticleService)
	}
	return nil
}
