package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/raiz-cli/internal/core/domain"
	"github.com/custodia-labs/raiz-cli/internal/core/services"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change settings stored in ~/.raiz/config.toml.

Available keys:
  api.url                            REST API base URL
  api.timeout                        request timeout (e.g. 30s)
  api.rate_limit                     requests per second, 0 = unlimited
  curator.bulk_concurrency           bulk requests in flight, 1 = sequential
  curator.clear_selection_on_filter  drop the selection when filters change
  session.backend                    file, sqlite or memory

Flags (--api-url, --session) and RAIZ_* environment variables override the
file for a single run.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change a setting",
	Args:  cobra.ExactArgs(2),
	RunE:  runSettingsSet,
}

var settingsPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if settingsService == nil {
			return errors.New("settings service not configured")
		}
		cmd.Println(settingsService.Path())
		return nil
	},
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsPathCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	rateLimit := "unlimited"
	if settings.API.RateLimit > 0 {
		rateLimit = fmt.Sprintf("%g req/s", settings.API.RateLimit)
	}

	rows := [][]string{
		{services.KeyAPIURL, settings.API.BaseURL},
		{services.KeyAPITimeout, settings.API.Timeout.String()},
		{services.KeyAPIRateLimit, rateLimit},
		{services.KeyBulkConcurrency, fmt.Sprint(settings.Curator.BulkConcurrency)},
		{services.KeyClearSelectionOnFilter, fmt.Sprint(settings.Curator.ClearSelectionOnFilter)},
		{services.KeySessionBackend, string(settings.Session)},
	}
	if err := renderTable(cmd.OutOrStdout(), []string{"Key", "Value"}, rows); err != nil {
		return err
	}
	cmd.Println()
	cmd.Printf("Config file: %s\n", settingsService.Path())
	if sessionService != nil {
		if user := sessionService.Current(); user != nil {
			cmd.Printf("Session:     %s (%s)\n", user.Username, user.Role)
		} else {
			cmd.Printf("Session:     %s\n", domain.SessionAnonymous)
		}
	}
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	if err := settingsService.Set(args[0], args[1]); err != nil {
		return fmt.Errorf("setting %s: %w", args[0], err)
	}
	printSuccess(cmd, "%s = %s", args[0], args[1])
	return nil
}
