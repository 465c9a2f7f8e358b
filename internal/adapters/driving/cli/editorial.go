package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/raiz-cli/internal/core/domain"
	"github.com/custodia-labs/raiz-cli/internal/core/services"
)

var articleRegenerateCmd = &cobra.Command{
	Use:   "regenerate [id]",
	Short: "Rewrite title, content and tags with the generation service",
	Args:  cobra.ExactArgs(1),
	RunE:  runArticleRegenerate,
}

var articleRefineCmd = &cobra.Command{
	Use:   "refine [id]",
	Short: "Rewrite the content following an instruction",
	Long: `Rewrite the article content following a free-form instruction or one
of the presets listed by 'raiz article presets'.

Examples:
  raiz article refine 42 --preset 2
  raiz article refine 42 -i "Resume en tres párrafos" --save`,
	Args: cobra.ExactArgs(1),
	RunE: runArticleRefine,
}

var articleAuditCmd = &cobra.Command{
	Use:   "audit [id]",
	Short: "Produce a critique report, optionally applying it",
	Args:  cobra.ExactArgs(1),
	RunE:  runArticleAudit,
}

var articleScrapeCmd = &cobra.Command{
	Use:   "scrape [id]",
	Short: "Fetch the original source text",
	Args:  cobra.ExactArgs(1),
	RunE:  runArticleScrape,
}

var articleRecoverCmd = &cobra.Command{
	Use:   "recover [id]",
	Short: "Replace the content with the scraped original text",
	Args:  cobra.ExactArgs(1),
	RunE:  runArticleRecover,
}

var articleKBCmd = &cobra.Command{
	Use:   "kb [id]",
	Short: "Add the article content to the knowledge base",
	Args:  cobra.ExactArgs(1),
	RunE:  runArticleKB,
}

var articleSuggestCmd = &cobra.Command{
	Use:   "suggestions [id]",
	Short: "Knowledge-base snippets related to an article",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runArticleSuggestions,
}

var articlePresetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List refine presets",
	Args:  cobra.NoArgs,
	RunE:  runArticlePresets,
}

var (
	refineInstruction string
	refinePreset      int
	editorSave        bool
	auditFix          bool
	suggestQuery      string
	suggestTags       string
)

func init() {
	for _, c := range []*cobra.Command{articleRegenerateCmd, articleRefineCmd, articleAuditCmd, articleRecoverCmd} {
		c.Flags().BoolVar(&editorSave, "save", false, "save the result to the article")
	}
	articleRefineCmd.Flags().StringVarP(&refineInstruction, "instruction", "i", "", "refine instruction")
	articleRefineCmd.Flags().IntVar(&refinePreset, "preset", 0, "use preset number N instead of an instruction")
	articleAuditCmd.Flags().BoolVar(&auditFix, "fix", false, "refine the article with the audit report")
	articleSuggestCmd.Flags().StringVarP(&suggestQuery, "query", "q", "", "free-text query")
	articleSuggestCmd.Flags().StringVar(&suggestTags, "tags", "", "comma-separated tags (instead of an article)")

	articleCmd.AddCommand(articleRegenerateCmd)
	articleCmd.AddCommand(articleRefineCmd)
	articleCmd.AddCommand(articleAuditCmd)
	articleCmd.AddCommand(articleScrapeCmd)
	articleCmd.AddCommand(articleRecoverCmd)
	articleCmd.AddCommand(articleKBCmd)
	articleCmd.AddCommand(articleSuggestCmd)
	articleCmd.AddCommand(articlePresetsCmd)
}

// finishEdit saves the editor when --save is set, otherwise prints the
// content that would be saved.
func finishEdit(cmd *cobra.Command, editor *services.Editor, what string) error {
	if !editorSave {
		preview := editor.Preview()
		cmd.Println(preview.Title)
		cmd.Println()
		cmd.Println(editor.Content())
		cmd.Println()
		hintColor.Fprintln(cmd.OutOrStdout(), "Not saved. Re-run with --save to keep the "+what+".")
		return nil
	}
	saved, err := editor.Save(commandContext(cmd))
	if err != nil {
		return fmt.Errorf("saving article: %w", err)
	}
	printSuccess(cmd, "Article %d saved with the %s.", saved.ID, what)
	return nil
}

func runArticleRegenerate(cmd *cobra.Command, args []string) error {
	editor, err := loadEditor(cmd, args[0])
	if err != nil {
		return err
	}
	if err := editor.Regenerate(commandContext(cmd)); err != nil {
		return fmt.Errorf("regenerate failed: %w", err)
	}
	return finishEdit(cmd, editor, "regenerated text")
}

func runArticleRefine(cmd *cobra.Command, args []string) error {
	editor, err := loadEditor(cmd, args[0])
	if err != nil {
		return err
	}

	instruction := refineInstruction
	if refinePreset > 0 {
		presets := articleService.RefinePresets()
		if refinePreset > len(presets) {
			return fmt.Errorf("%w: preset %d does not exist (1-%d)", domain.ErrInvalidInput, refinePreset, len(presets))
		}
		instruction = presets[refinePreset-1]
	}
	if instruction == "" {
		return fmt.Errorf("%w: give --instruction or --preset", domain.ErrInvalidInput)
	}

	if err := editor.Refine(commandContext(cmd), instruction); err != nil {
		return fmt.Errorf("refine failed: %w", err)
	}
	return finishEdit(cmd, editor, "refined text")
}

func runArticleAudit(cmd *cobra.Command, args []string) error {
	editor, err := loadEditor(cmd, args[0])
	if err != nil {
		return err
	}

	report, err := editor.Audit(commandContext(cmd))
	if err != nil {
		return fmt.Errorf("audit failed: %w", err)
	}
	cmd.Println("Audit report:")
	cmd.Println(report)
	cmd.Println()

	if !auditFix {
		return nil
	}
	if err := editor.RefineWithAudit(commandContext(cmd), ""); err != nil {
		return fmt.Errorf("applying audit failed: %w", err)
	}
	return finishEdit(cmd, editor, "audited text")
}

func runArticleScrape(cmd *cobra.Command, args []string) error {
	editor, err := loadEditor(cmd, args[0])
	if err != nil {
		return err
	}
	if err := editor.Scrape(commandContext(cmd)); err != nil {
		return fmt.Errorf("scrape failed: %w", err)
	}
	cmd.Println(articleService.PlainText(editor.OriginalContent()))
	return nil
}

func runArticleRecover(cmd *cobra.Command, args []string) error {
	editor, err := loadEditor(cmd, args[0])
	if err != nil {
		return err
	}
	if err := editor.RecoverOriginal(); err != nil {
		if errors.Is(err, domain.ErrNoOriginalContent) {
			return fmt.Errorf("%w; run 'raiz article scrape %s' first", err, args[0])
		}
		return err
	}
	return finishEdit(cmd, editor, "original text")
}

func runArticleKB(cmd *cobra.Command, args []string) error {
	editor, err := loadEditor(cmd, args[0])
	if err != nil {
		return err
	}
	item, err := editor.AddToKnowledgeBase(commandContext(cmd))
	if err != nil {
		return fmt.Errorf("adding to knowledge base: %w", err)
	}
	printSuccess(cmd, "Knowledge item %d created from article %d.", item.ID, editor.Article().ID)
	return nil
}

func runArticleSuggestions(cmd *cobra.Command, args []string) error {
	if articleService == nil {
		return errors.New("article service not configured")
	}

	var (
		items []domain.KnowledgeItem
		err   error
	)
	if len(args) == 1 && suggestQuery == "" && suggestTags == "" {
		editor, lerr := loadEditor(cmd, args[0])
		if lerr != nil {
			return lerr
		}
		items, err = editor.Suggestions(commandContext(cmd))
	} else {
		items, err = articleService.Suggestions(commandContext(cmd), domain.SuggestionQuery{
			Tags:  suggestTags,
			Query: suggestQuery,
		})
	}
	if err != nil {
		return fmt.Errorf("fetching suggestions: %w", err)
	}

	if len(items) == 0 {
		cmd.Println("No suggestions.")
		return nil
	}
	rows := make([][]string, 0, len(items))
	for i := range items {
		rows = append(rows, []string{
			strconv.FormatInt(items[i].ID, 10),
			truncate(items[i].Tags, 24),
			truncate(items[i].Content, 72),
		})
	}
	return renderTable(cmd.OutOrStdout(), []string{"ID", "Tags", "Content"}, rows)
}

func runArticlePresets(cmd *cobra.Command, _ []string) error {
	if articleService == nil {
		return errors.New("article service not configured")
	}
	for i, p := range articleService.RefinePresets() {
		cmd.Printf("  %d. %s\n", i+1, p)
	}
	return nil
}
