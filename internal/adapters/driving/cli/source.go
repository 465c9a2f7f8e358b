package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/raiz-cli/internal/core/domain"
)

var sourceCmd = &cobra.Command{
	Use:     "source",
	Aliases: []string{"sources"},
	Short:   "Manage RSS sources and ingestion",
	Long: `List, add and remove feed sources, inspect the ingestion history and
trigger ingestion of a feed.

Examples:
  raiz source list
  raiz source add "El Diario" https://diario.example.com https://diario.example.com/rss --check
  raiz source ingest --from 3
  raiz source history`,
}

var sourceListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured sources",
	Args:  cobra.NoArgs,
	RunE:  runSourceList,
}

var sourceAddCmd = &cobra.Command{
	Use:   "add [name] [url] [feed-url]",
	Short: "Register a new source",
	Args:  cobra.ExactArgs(3),
	RunE:  runSourceAdd,
}

var sourceRemoveCmd = &cobra.Command{
	Use:   "remove [id]",
	Short: "Remove a source",
	Args:  cobra.ExactArgs(1),
	RunE:  runSourceRemove,
}

var sourceSuccessfulCmd = &cobra.Command{
	Use:   "successful",
	Short: "Sources whose last ingestion succeeded",
	Args:  cobra.NoArgs,
	RunE:  runSourceSuccessful,
}

var sourceHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Ingestion connection history",
	Args:  cobra.NoArgs,
	RunE:  runSourceHistory,
}

var sourceIngestCmd = &cobra.Command{
	Use:   "ingest [feed-url] [source-name]",
	Short: "Ingest a feed now",
	Long: `Ingest a feed now. Give the feed URL and source name, or prefill both
from a successful source with --from.`,
	Args: cobra.MaximumNArgs(2),
	RunE: runSourceIngest,
}

var sourceProbeCmd = &cobra.Command{
	Use:   "probe [feed-url]",
	Short: "Check that a URL serves a valid feed",
	Args:  cobra.ExactArgs(1),
	RunE:  runSourceProbe,
}

var (
	sourceType  string
	sourceCheck bool
	ingestFrom  int64
)

func init() {
	sourceAddCmd.Flags().StringVar(&sourceType, "type", "rss", "source type")
	sourceAddCmd.Flags().BoolVar(&sourceCheck, "check", false, "fetch the feed before registering it")
	sourceIngestCmd.Flags().Int64Var(&ingestFrom, "from", 0, "prefill from the successful source with this id")

	sourceCmd.AddCommand(sourceListCmd)
	sourceCmd.AddCommand(sourceAddCmd)
	sourceCmd.AddCommand(sourceRemoveCmd)
	sourceCmd.AddCommand(sourceSuccessfulCmd)
	sourceCmd.AddCommand(sourceHistoryCmd)
	sourceCmd.AddCommand(sourceIngestCmd)
	sourceCmd.AddCommand(sourceProbeCmd)
	rootCmd.AddCommand(sourceCmd)
}

func outputSources(cmd *cobra.Command, sources []domain.Source) error {
	if len(sources) == 0 {
		cmd.Println("No sources configured.")
		return nil
	}
	rows := make([][]string, 0, len(sources))
	for _, s := range sources {
		rows = append(rows, []string{
			strconv.FormatInt(s.ID, 10),
			truncate(s.Name, 24),
			s.Type,
			s.FeedURL,
		})
	}
	return renderTable(cmd.OutOrStdout(), []string{"ID", "Name", "Type", "Feed"}, rows)
}

func runSourceList(cmd *cobra.Command, _ []string) error {
	if sourceService == nil {
		return errors.New("source service not configured")
	}
	sources, err := sourceService.List(commandContext(cmd))
	if err != nil {
		return fmt.Errorf("listing sources: %w", err)
	}
	return outputSources(cmd, sources)
}

func runSourceAdd(cmd *cobra.Command, args []string) error {
	if sourceService == nil {
		return errors.New("source service not configured")
	}
	src := domain.Source{
		Name:    args[0],
		URL:     args[1],
		FeedURL: args[2],
		Type:    sourceType,
	}
	created, err := sourceService.Add(commandContext(cmd), src, sourceCheck)
	if err != nil {
		return fmt.Errorf("adding source: %w", err)
	}
	printSuccess(cmd, "Source %d (%s) added.", created.ID, created.Name)
	return nil
}

func runSourceRemove(cmd *cobra.Command, args []string) error {
	if sourceService == nil {
		return errors.New("source service not configured")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("%w: invalid source id %q", domain.ErrInvalidInput, args[0])
	}
	if err := sourceService.Remove(commandContext(cmd), id); err != nil {
		return fmt.Errorf("removing source: %w", err)
	}
	printSuccess(cmd, "Source %d removed.", id)
	return nil
}

func runSourceSuccessful(cmd *cobra.Command, _ []string) error {
	if sourceService == nil {
		return errors.New("source service not configured")
	}
	sources, err := sourceService.Successful(commandContext(cmd))
	if err != nil {
		return fmt.Errorf("listing successful sources: %w", err)
	}
	return outputSources(cmd, sources)
}

func runSourceHistory(cmd *cobra.Command, _ []string) error {
	if sourceService == nil {
		return errors.New("source service not configured")
	}
	history, err := sourceService.History(commandContext(cmd))
	if err != nil {
		return fmt.Errorf("fetching history: %w", err)
	}
	if len(history) == 0 {
		cmd.Println("No ingestion history.")
		return nil
	}

	rows := make([][]string, 0, len(history))
	for _, h := range history {
		details := ""
		if h.Details != nil {
			details = truncate(*h.Details, 40)
		}
		rows = append(rows, []string{
			h.FetchedAt.Local().Format("2006-01-02 15:04"),
			truncate(h.SourceName, 24),
			h.Status,
			strconv.Itoa(h.ArticlesCount),
			details,
		})
	}
	return renderTable(cmd.OutOrStdout(), []string{"Fetched", "Source", "Status", "Articles", "Details"}, rows)
}

func runSourceIngest(cmd *cobra.Command, args []string) error {
	if sourceService == nil {
		return errors.New("source service not configured")
	}
	ctx := commandContext(cmd)

	var feedURL, name string
	switch {
	case ingestFrom > 0:
		sources, err := sourceService.Successful(ctx)
		if err != nil {
			return fmt.Errorf("listing successful sources: %w", err)
		}
		for _, s := range sources {
			if s.ID == ingestFrom {
				feedURL, name = s.FeedURL, s.Name
			}
		}
		if feedURL == "" {
			return fmt.Errorf("%w: no successful source with id %d", domain.ErrNotFound, ingestFrom)
		}
	case len(args) == 2:
		feedURL, name = args[0], args[1]
	default:
		return fmt.Errorf("%w: give a feed URL and source name, or --from", domain.ErrInvalidInput)
	}

	res, err := sourceService.Ingest(ctx, feedURL, name)
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}
	printSuccess(cmd, "%s (%d articles)", res.Message, res.Count)
	return nil
}

func runSourceProbe(cmd *cobra.Command, args []string) error {
	if sourceService == nil {
		return errors.New("source service not configured")
	}
	preview, err := sourceService.Probe(commandContext(cmd), args[0])
	if err != nil {
		return fmt.Errorf("probe failed: %w", err)
	}
	cmd.Printf("Title: %s\nSite:  %s\nFeed:  %s\nItems: %d\n",
		preview.Title, preview.Link, preview.FeedLink, preview.ItemCount)
	return nil
}
