package main

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/raiz-cli/internal/adapters/driven/api"
	"github.com/custodia-labs/raiz-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/raiz-cli/internal/adapters/driven/feed"
	"github.com/custodia-labs/raiz-cli/internal/adapters/driven/htmltext"
	"github.com/custodia-labs/raiz-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/raiz-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/raiz-cli/internal/adapters/driven/token"
	"github.com/custodia-labs/raiz-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/raiz-cli/internal/core/domain"
	"github.com/custodia-labs/raiz-cli/internal/core/ports/driven"
	"github.com/custodia-labs/raiz-cli/internal/core/services"
	"github.com/custodia-labs/raiz-cli/internal/logger"
)

// configDir is overridden in tests.
var configDir = ""

// bootstrap wires stores, the API client and services for the CLI.
func bootstrap(ctx context.Context, opts cli.Options) (*cli.Services, func(), error) {
	dir := configDir
	if dir == "" {
		d, err := file.DefaultDir()
		if err != nil {
			return nil, nil, fmt.Errorf("locating config directory: %w", err)
		}
		dir = d
	}

	configStore, err := file.NewConfigStore(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		return nil, nil, err
	}
	if err := applyOverrides(settings, opts); err != nil {
		return nil, nil, err
	}
	logger.Debug("api %s, session backend %s", settings.API.BaseURL, settings.Session)

	var closers []func() error
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](); err != nil {
				logger.Warn("cleanup: %v", err)
			}
		}
	}

	tokens, tokenPath, closeTokens, err := openTokenStore(settings.Session, dir)
	if err != nil {
		return nil, nil, err
	}
	if closeTokens != nil {
		closers = append(closers, closeTokens)
	}

	client := api.NewClient(api.Config{
		BaseURL:   settings.API.BaseURL,
		Timeout:   settings.API.Timeout,
		RateLimit: settings.API.RateLimit,
		UserAgent: "raiz-cli/" + version,
	})

	var prompts driven.PromptStore
	if presets, err := file.NewPresetStore(filepath.Join(dir, "presets")); err != nil {
		logger.Warn("refine presets unavailable, using defaults: %v", err)
	} else {
		prompts = presets
	}

	session := services.NewSessionService(client.Auth(), tokens, token.NewJWTDecoder())
	if err := session.Restore(ctx); err != nil {
		logger.Warn("restoring session: %v", err)
	}

	articles := services.NewArticleService(
		client.Articles(), client.Knowledge(), session, prompts, htmltext.NewRenderer(),
	)
	probe := feed.NewProbe(&http.Client{Timeout: settings.API.Timeout}, settings.API.Timeout)

	svcs := &cli.Services{
		Session:  session,
		Articles: articles,
		Sources:  services.NewSourceService(client.Sources(), session, probe),
		Users:    services.NewUserService(client.Users(), session),
		Settings: settingsService,
		Curator:  settings.Curator,
		TUI:      &cli.TUIConfig{},
	}

	if tokenPath != "" {
		watcher, err := file.NewTokenWatcher(tokenPath)
		if err != nil {
			logger.Warn("session changes from other processes will not be seen: %v", err)
		} else {
			svcs.TUI.Watcher = watcher
			closers = append(closers, watcher.Close)
		}
	}

	return svcs, cleanup, nil
}

// applyOverrides applies flag and environment values on top of the
// stored settings.
func applyOverrides(settings *domain.AppSettings, opts cli.Options) error {
	if opts.APIURL != "" {
		settings.API.BaseURL = strings.TrimRight(opts.APIURL, "/")
	}
	if opts.SessionBackend != "" {
		backend := domain.SessionBackend(opts.SessionBackend)
		if !backend.IsValid() {
			return fmt.Errorf("%w: session backend %q (want file, sqlite or memory)",
				domain.ErrInvalidInput, opts.SessionBackend)
		}
		settings.Session = backend
	}
	return settings.Validate()
}

// openTokenStore returns the token store for backend. The path is set
// only for stores that can be watched for changes.
func openTokenStore(
	backend domain.SessionBackend, dir string,
) (driven.TokenStore, string, func() error, error) {
	switch backend {
	case domain.SessionBackendMemory:
		return memory.NewTokenStore(), "", nil, nil
	case domain.SessionBackendSQLite:
		store, err := sqlite.NewStore(filepath.Join(dir, "data"))
		if err != nil {
			return nil, "", nil, fmt.Errorf("opening session database: %w", err)
		}
		return store.SessionStore(), "", store.Close, nil
	case domain.SessionBackendFile, "":
		store, err := file.NewTokenStore(dir)
		if err != nil {
			return nil, "", nil, fmt.Errorf("opening token file: %w", err)
		}
		return store, store.Path(), nil, nil
	default:
		return nil, "", nil, fmt.Errorf("%w: session backend %q", domain.ErrInvalidInput, backend)
	}
}
