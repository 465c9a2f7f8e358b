package file

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/raiz-cli/internal/core/domain"
	"github.com/custodia-labs/raiz-cli/internal/logger"
)

// TokenWatcher notifies when another process logs in or out.
type TokenWatcher struct {
	path    string
	watcher *fsnotify.Watcher
}

// NewTokenWatcher watches the directory holding path. The directory is
// watched rather than the file so atomic replaces are seen.
func NewTokenWatcher(path string) (*TokenWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(path)); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
	}
	return &TokenWatcher{path: filepath.Clean(path), watcher: w}, nil
}

// Watch emits token changes until ctx is cancelled. The channel is
// closed when watching stops.
func (t *TokenWatcher) Watch(ctx context.Context) <-chan domain.SessionChange {
	out := make(chan domain.SessionChange, 1)

	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-t.watcher.Events:
				if !ok {
					return
				}
				change := t.handleFsEvent(ev)
				if change == nil {
					continue
				}
				select {
				case out <- *change:
				case <-ctx.Done():
					return
				}
			case err, ok := <-t.watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("token watcher: %v", err)
			}
		}
	}()

	return out
}

// Close stops the underlying watcher.
func (t *TokenWatcher) Close() error {
	return t.watcher.Close()
}

// handleFsEvent maps an fsnotify event to a token change, ignoring
// other files and chmod-only events.
func (t *TokenWatcher) handleFsEvent(ev fsnotify.Event) *domain.SessionChange {
	if filepath.Clean(ev.Name) != t.path {
		return nil
	}
	switch {
	case ev.Has(fsnotify.Remove), ev.Has(fsnotify.Rename):
		return &domain.SessionChange{Path: t.path, Removed: true}
	case ev.Has(fsnotify.Create), ev.Has(fsnotify.Write):
		return &domain.SessionChange{Path: t.path}
	default:
		return nil
	}
}
