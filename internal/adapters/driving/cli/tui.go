package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/raiz-cli/internal/adapters/driving/tui"
)

// TUIConfig holds the extras only the TUI needs.
type TUIConfig struct {
	// Watcher reports token-store changes made by other processes.
	Watcher tui.SessionWatcher
}

// tuiConfig holds the current TUI configuration.
var tuiConfig *TUIConfig

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal interface for Raíz.

Browse published articles, or log in as a curator to review drafts,
edit articles with AI assistance, manage sources and administer users.

Controls:
  ↑/k, ↓/j - Navigate
  Enter    - Select
  c        - Toggle curator mode
  Esc      - Back / Cancel
  ?        - Help
  ctrl+c   - Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
			err = fmt.Errorf("panic in TUI: %v", r)
		}
	}()

	ports := &tui.Ports{
		Session:  sessionService,
		Articles: articleService,
		Sources:  sourceService,
		Users:    userService,
		Settings: settingsService,
		Curator:  curatorSettings,
	}
	if tuiConfig != nil {
		ports.Watcher = tuiConfig.Watcher
	}

	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	if err := app.WithContext(commandContext(cmd)).Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
