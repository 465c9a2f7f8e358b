package cli

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/raiz-cli/internal/core/domain"
	"github.com/custodia-labs/raiz-cli/internal/core/services"
)

var articleCmd = &cobra.Command{
	Use:     "article",
	Aliases: []string{"articles", "a"},
	Short:   "Browse and curate articles",
	Long: `Browse published articles and, with a curator session, review drafts,
edit, publish, archive and delete them.

Examples:
  raiz article list
  raiz article list --status draft --filter clima --from 2024-05-01
  raiz article list --status all --columns
  raiz article show 42
  raiz article search "sequía"
  raiz article archive 3 5 8`,
}

var articleListCmd = &cobra.Command{
	Use:   "list",
	Short: "List articles",
	Long: `List articles by status. Without a session only published articles
are returned. Local filters (--filter, --from, --to) narrow the fetched list.`,
	Args: cobra.NoArgs,
	RunE: runArticleList,
}

var articleShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show one article",
	Args:  cobra.ExactArgs(1),
	RunE:  runArticleShow,
}

var articleSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the article archive",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runArticleSearch,
}

var articleEditCmd = &cobra.Command{
	Use:   "edit [id]",
	Short: "Edit title, content, tags or status",
	Long: `Edit an article. Only the flags given are changed; the summary is
derived from the content on save.

Examples:
  raiz article edit 42 --title "Nuevo título"
  raiz article edit 42 --content-file cuerpo.txt --tags "clima, agua"
  raiz article edit 42 --status published`,
	Args: cobra.ExactArgs(1),
	RunE: runArticleEdit,
}

var articlePublishCmd = &cobra.Command{
	Use:   "publish [id...]",
	Short: "Publish articles",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runArticlePublish,
}

var articleArchiveCmd = &cobra.Command{
	Use:   "archive [id...]",
	Short: "Archive articles",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runArticleArchive,
}

var articleDeleteCmd = &cobra.Command{
	Use:   "delete [id...]",
	Short: "Delete articles",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runArticleDelete,
}

var (
	articleStatus   string
	articleFilter   string
	articleFrom     string
	articleTo       string
	articleColumns  bool
	articleJSON     bool
	articleRaw      bool
	articleYes      bool
	editTitle       string
	editContent     string
	editContentFile string
	editTags        string
	editStatus      string
)

func init() {
	articleListCmd.Flags().StringVarP(&articleStatus, "status", "s", "published",
		"status filter: draft, published, archived or all")
	articleListCmd.Flags().StringVarP(&articleFilter, "filter", "f", "", "case-insensitive text filter on title and summary")
	articleListCmd.Flags().StringVar(&articleFrom, "from", "", "earliest date (YYYY-MM-DD)")
	articleListCmd.Flags().StringVar(&articleTo, "to", "", "latest date, inclusive (YYYY-MM-DD)")
	articleListCmd.Flags().BoolVar(&articleColumns, "columns", false, "group by status (implies --status all)")
	articleListCmd.Flags().BoolVar(&articleJSON, "json", false, "output as JSON")

	articleShowCmd.Flags().BoolVar(&articleRaw, "raw", false, "print the body without HTML conversion")
	articleShowCmd.Flags().BoolVar(&articleJSON, "json", false, "output as JSON")

	articleSearchCmd.Flags().BoolVar(&articleJSON, "json", false, "output as JSON")

	articleEditCmd.Flags().StringVar(&editTitle, "title", "", "new title")
	articleEditCmd.Flags().StringVar(&editContent, "content", "", "new content")
	articleEditCmd.Flags().StringVar(&editContentFile, "content-file", "", "read new content from a file ('-' for stdin)")
	articleEditCmd.Flags().StringVar(&editTags, "tags", "", "comma-separated tags")
	articleEditCmd.Flags().StringVar(&editStatus, "status", "", "draft, published or archived")

	articleDeleteCmd.Flags().BoolVarP(&articleYes, "yes", "y", false, "do not ask for confirmation")

	articleCmd.AddCommand(articleListCmd)
	articleCmd.AddCommand(articleShowCmd)
	articleCmd.AddCommand(articleSearchCmd)
	articleCmd.AddCommand(articleEditCmd)
	articleCmd.AddCommand(articlePublishCmd)
	articleCmd.AddCommand(articleArchiveCmd)
	articleCmd.AddCommand(articleDeleteCmd)
	rootCmd.AddCommand(articleCmd)
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid article id %q", domain.ErrInvalidInput, s)
	}
	return id, nil
}

func parseIDs(args []string) ([]int64, error) {
	ids := make([]int64, 0, len(args))
	for _, a := range args {
		id, err := parseID(a)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func parseDay(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.ParseInLocation(dateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q must be YYYY-MM-DD", domain.ErrInvalidInput, s)
	}
	return t, nil
}

func newCuratorList() *services.CuratorList {
	list := services.NewCuratorList()
	list.Configure(curatorSettings)
	return list
}

func runArticleList(cmd *cobra.Command, _ []string) error {
	if articleService == nil {
		return errors.New("article service not configured")
	}

	list := newCuratorList()
	if articleColumns {
		list.SetViewMode(services.ViewColumns)
	} else {
		filter, err := domain.ParseStatusFilter(articleStatus)
		if err != nil {
			return err
		}
		list.SetStatusFilter(filter)
	}

	from, err := parseDay(articleFrom)
	if err != nil {
		return err
	}
	to, err := parseDay(articleTo)
	if err != nil {
		return err
	}

	if err := list.Load(commandContext(cmd), articleService); err != nil {
		return fmt.Errorf("listing articles: %w", err)
	}
	list.SetFilterText(articleFilter)
	list.SetDateRange(from, to)

	if articleJSON {
		return writeJSON(cmd, list.Displayed())
	}
	if list.ViewMode() == services.ViewColumns {
		return outputBoard(cmd, list.Columns())
	}
	return outputArticles(cmd, list.Displayed())
}

func outputArticles(cmd *cobra.Command, articles []domain.Article) error {
	if len(articles) == 0 {
		cmd.Println("No articles found.")
		return nil
	}

	rows := make([][]string, 0, len(articles))
	for i := range articles {
		a := &articles[i]
		rows = append(rows, []string{
			strconv.FormatInt(a.ID, 10),
			formatDate(a.EffectiveDate()),
			statusLabel(a.Status),
			truncate(a.Source, 16),
			truncate(a.Title, titleWidth),
		})
	}
	return renderTable(cmd.OutOrStdout(), []string{"ID", "Date", "Status", "Source", "Title"}, rows)
}

func outputBoard(cmd *cobra.Command, board services.Board) error {
	for _, status := range domain.AllStatuses {
		column := board.Column(status)
		cmd.Printf("== %s (%d) ==\n", status.Label(), len(column))
		for i := range column {
			cmd.Printf("  %5d  %s\n", column[i].ID, truncate(column[i].Title, titleWidth))
		}
		cmd.Println()
	}
	if len(board.Unclassified) > 0 {
		cmd.Printf("== Sin clasificar (%d) ==\n", len(board.Unclassified))
		for i := range board.Unclassified {
			a := board.Unclassified[i]
			cmd.Printf("  %5d  [%s] %s\n", a.ID, a.Status, truncate(a.Title, titleWidth))
		}
	}
	return nil
}

func runArticleShow(cmd *cobra.Command, args []string) error {
	if articleService == nil {
		return errors.New("article service not configured")
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	article, err := articleService.Get(commandContext(cmd), id)
	if err != nil {
		return fmt.Errorf("fetching article %d: %w", id, err)
	}
	if articleJSON {
		return writeJSON(cmd, article)
	}
	printArticle(cmd, article, articleRaw)
	return nil
}

func printArticle(cmd *cobra.Command, a *domain.Article, raw bool) {
	cmd.Println(a.Title)
	cmd.Println(strings.Repeat("=", min(len([]rune(a.Title)), 72)))
	cmd.Printf("ID: %d  Status: %s  Date: %s\n", a.ID, statusLabel(a.Status), formatDate(a.EffectiveDate()))
	if a.Source != "" {
		cmd.Printf("Source: %s\n", a.Source)
	}
	if a.URL != "" {
		cmd.Printf("URL: %s\n", a.URL)
	}
	if tags := a.TagList(); len(tags) > 0 {
		cmd.Printf("Tags: %s\n", strings.Join(tags, ", "))
	}
	cmd.Println()

	body := a.DisplayBody()
	if !raw {
		body = articleService.PlainText(body)
	}
	cmd.Println(body)
}

func runArticleSearch(cmd *cobra.Command, args []string) error {
	if articleService == nil {
		return errors.New("article service not configured")
	}

	query := strings.Join(args, " ")
	results, err := articleService.Search(commandContext(cmd), query)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	if articleJSON {
		return writeJSON(cmd, results)
	}
	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Println("Results:")
	cmd.Println()
	for i := range results {
		r := &results[i]
		cmd.Printf("  [%d] %s (%.2f)\n", r.ID, r.Metadata.Title, r.Score)
		if r.Metadata.Source != "" {
			cmd.Printf("      Source: %s\n", r.Metadata.Source)
		}
		if snippet := r.Snippet(); snippet != "" {
			cmd.Printf("      %s\n", truncate(snippet, 100))
		}
		cmd.Println()
	}
	return nil
}

// loadEditor fetches an article into a new editor.
func loadEditor(cmd *cobra.Command, arg string) (*services.Editor, error) {
	if articleService == nil {
		return nil, errors.New("article service not configured")
	}
	id, err := parseID(arg)
	if err != nil {
		return nil, err
	}
	article, err := articleService.Get(commandContext(cmd), id)
	if err != nil {
		return nil, fmt.Errorf("fetching article %d: %w", id, err)
	}
	return services.NewEditor(articleService, *article), nil
}

func runArticleEdit(cmd *cobra.Command, args []string) error {
	editor, err := loadEditor(cmd, args[0])
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("title") {
		editor.SetTitle(editTitle)
	}
	switch {
	case flags.Changed("content-file"):
		content, err := readContentFile(cmd, editContentFile)
		if err != nil {
			return err
		}
		editor.SetContent(content)
	case flags.Changed("content"):
		editor.SetContent(editContent)
	}
	if flags.Changed("tags") {
		editor.SetTags(domain.JoinTags(domain.SplitTags(editTags)))
	}
	if flags.Changed("status") {
		status, err := domain.ParseArticleStatus(editStatus)
		if err != nil {
			return err
		}
		if err := editor.SetStatus(status); err != nil {
			return err
		}
	}

	if !editor.Dirty() {
		cmd.Println("Nothing to change.")
		return nil
	}

	saved, err := editor.Save(commandContext(cmd))
	if err != nil {
		return fmt.Errorf("saving article: %w", err)
	}
	printSuccess(cmd, "Article %d saved (%s).", saved.ID, saved.Status)
	return nil
}

func readContentFile(cmd *cobra.Command, path string) (string, error) {
	if path == "-" {
		var b strings.Builder
		p := newPrompter(cmd)
		for {
			line, err := p.reader.ReadString('\n')
			b.WriteString(line)
			if err != nil {
				break
			}
		}
		return strings.TrimRight(b.String(), "\n"), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading content: %w", err)
	}
	return strings.TrimRight(string(data), "\n"), nil
}

func runArticlePublish(cmd *cobra.Command, args []string) error {
	if articleService == nil {
		return errors.New("article service not configured")
	}
	ids, err := parseIDs(args)
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)
	failed := 0
	for _, id := range ids {
		article, err := articleService.Get(ctx, id)
		if err == nil {
			_, err = articleService.SetStatus(ctx, *article, domain.StatusPublished)
		}
		if err != nil {
			failed++
			warnColor.Fprintf(cmd.ErrOrStderr(), "article %d: %v\n", id, err)
			continue
		}
		printSuccess(cmd, "Article %d published.", id)
	}
	if failed == len(ids) {
		return errors.New("no article was published")
	}
	return nil
}

// selectForBulk loads every article visible to the session and selects ids.
func selectForBulk(cmd *cobra.Command, args []string) (*services.CuratorList, error) {
	if articleService == nil {
		return nil, errors.New("article service not configured")
	}
	ids, err := parseIDs(args)
	if err != nil {
		return nil, err
	}

	list := newCuratorList()
	list.SetStatusFilter(domain.StatusFilterAll)
	if err := list.Load(commandContext(cmd), articleService); err != nil {
		return nil, fmt.Errorf("loading articles: %w", err)
	}
	for _, id := range ids {
		if !list.IsSelected(id) {
			list.ToggleSelect(id)
		}
	}
	return list, nil
}

func runArticleArchive(cmd *cobra.Command, args []string) error {
	list, err := selectForBulk(cmd, args)
	if err != nil {
		return err
	}
	return reportBulk(cmd, "archived", list.BulkArchive(commandContext(cmd), articleService))
}

func runArticleDelete(cmd *cobra.Command, args []string) error {
	list, err := selectForBulk(cmd, args)
	if err != nil {
		return err
	}

	if !articleYes {
		prompt := fmt.Sprintf("Delete %d article(s)?", len(list.Selected()))
		if !newPrompter(cmd).confirm(prompt) {
			cmd.Println("Aborted.")
			return nil
		}
	}
	return reportBulk(cmd, "deleted", list.BulkDelete(commandContext(cmd), articleService))
}

func reportBulk(cmd *cobra.Command, verb string, res services.BulkResult) error {
	for _, f := range res.Failed {
		warnColor.Fprintf(cmd.ErrOrStderr(), "article %d: %v\n", f.ID, f.Err)
	}
	for _, id := range res.Skipped {
		warnColor.Fprintf(cmd.ErrOrStderr(), "article %d: not found, skipped\n", id)
	}
	printSuccess(cmd, "%d article(s) %s.", res.SuccessCount(), verb)
	if res.SuccessCount() == 0 && len(res.Failed) > 0 {
		return fmt.Errorf("all %d operations failed", len(res.Failed))
	}
	return nil
}
