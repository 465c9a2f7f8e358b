// Package cli provides the cobra command tree for raiz.
//
// Commands talk only to driving ports. Services are either injected
// directly with SetServices (tests) or built lazily by the bootstrap
// function registered from main, after flags and RAIZ_* environment
// overrides have been resolved.
package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/custodia-labs/raiz-cli/internal/core/domain"
	"github.com/custodia-labs/raiz-cli/internal/core/ports/driving"
	"github.com/custodia-labs/raiz-cli/internal/logger"
)

// Options are the global overrides resolved from flags and environment.
type Options struct {
	APIURL         string
	SessionBackend string
	Verbose        bool
}

// Services are the driving ports used by the commands.
type Services struct {
	Session  driving.SessionService
	Articles driving.ArticleService
	Sources  driving.SourceService
	Users    driving.UserService
	Settings driving.SettingsService
	Curator  domain.CuratorSettings
	TUI      *TUIConfig
}

// Bootstrap builds services from resolved options.
type Bootstrap func(ctx context.Context, opts Options) (*Services, func(), error)

var (
	version   = "dev"
	bootstrap Bootstrap
	cleanup   func()
	cfg       = viper.New()

	sessionService  driving.SessionService
	articleService  driving.ArticleService
	sourceService   driving.SourceService
	userService     driving.UserService
	settingsService driving.SettingsService
	curatorSettings = domain.DefaultSettings().Curator
)

var rootCmd = &cobra.Command{
	Use:   "raiz",
	Short: "Curate the Raíz news archive from the terminal",
	Long: `raiz is a terminal client for the Raíz news API.

Browse published articles, and as a curator review drafts, rewrite and
audit articles, manage RSS sources and administer users.

Examples:
  raiz article list                   # Published articles
  raiz auth login -u ana              # Log in
  raiz article list --status draft    # Drafts (curators)
  raiz tui                            # Interactive interface`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: initServices,
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	defer func() {
		if cleanup != nil {
			cleanup()
			cleanup = nil
		}
	}()
	return rootCmd.ExecuteContext(ctx)
}

// SetVersion sets the version string printed by 'raiz version'.
func SetVersion(v string) {
	version = v
}

// SetBootstrap registers the function that builds services on first use.
func SetBootstrap(b Bootstrap) {
	bootstrap = b
}

// SetServices injects ready-made services.
func SetServices(s *Services) {
	if s == nil {
		s = &Services{}
	}
	sessionService = s.Session
	articleService = s.Articles
	sourceService = s.Sources
	userService = s.Users
	settingsService = s.Settings
	curatorSettings = s.Curator
	if curatorSettings.BulkConcurrency < 1 {
		curatorSettings.BulkConcurrency = domain.DefaultBulkConcurrency
	}
	tuiConfig = s.TUI
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolP("verbose", "v", false, "print debug information to stderr")
	flags.String("api-url", "", "API base URL (overrides config)")
	flags.String("session", "", "session store: file, sqlite or memory")
	flags.Bool("no-color", false, "disable coloured output")

	_ = cfg.BindPFlag("verbose", flags.Lookup("verbose"))
	_ = cfg.BindPFlag("api_url", flags.Lookup("api-url"))
	_ = cfg.BindPFlag("session", flags.Lookup("session"))
	_ = cfg.BindPFlag("no_color", flags.Lookup("no-color"))

	cfg.SetEnvPrefix("RAIZ")
	cfg.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	cfg.AutomaticEnv()
}

// resolveOptions reads flag values with RAIZ_* environment fallbacks.
func resolveOptions() Options {
	return Options{
		APIURL:         strings.TrimSpace(cfg.GetString("api_url")),
		SessionBackend: strings.TrimSpace(cfg.GetString("session")),
		Verbose:        cfg.GetBool("verbose"),
	}
}

func initServices(cmd *cobra.Command, _ []string) error {
	opts := resolveOptions()
	logger.SetVerbose(opts.Verbose)
	if cfg.GetBool("no_color") {
		color.NoColor = true
	}

	if bootstrap == nil || sessionService != nil {
		return nil
	}

	logger.Section("Bootstrap")
	svcs, done, err := bootstrap(cmd.Context(), opts)
	if err != nil {
		return fmt.Errorf("initialising: %w", err)
	}
	SetServices(svcs)
	cleanup = done
	return nil
}

// commandContext returns the command context, falling back to Background.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
