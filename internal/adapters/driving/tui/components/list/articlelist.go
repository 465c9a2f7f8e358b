// Package list provides article list components for the TUI.
package list

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/custodia-labs/raiz-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/raiz-cli/internal/core/domain"
)

// ArticleList displays articles in a navigable list with optional
// selection marks.
type ArticleList struct {
	articles []domain.Article
	cursor   int
	marked   func(id int64) bool
	styles   *styles.Styles
	width    int
	height   int
}

// NewArticleList creates a new article list component.
func NewArticleList(s *styles.Styles) *ArticleList {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &ArticleList{styles: s, width: 80, height: 20}
}

// SetArticles replaces the list contents, keeping the cursor in range.
func (l *ArticleList) SetArticles(articles []domain.Article) {
	l.articles = articles
	if l.cursor >= len(articles) {
		l.cursor = max(len(articles)-1, 0)
	}
}

// SetMarked sets the predicate used to draw selection marks. Nil hides
// the mark column.
func (l *ArticleList) SetMarked(fn func(id int64) bool) {
	l.marked = fn
}

// Articles returns the current articles.
func (l *ArticleList) Articles() []domain.Article { return l.articles }

// Cursor returns the cursor index.
func (l *ArticleList) Cursor() int { return l.cursor }

// Current returns the article under the cursor, or nil.
func (l *ArticleList) Current() *domain.Article {
	if l.cursor < 0 || l.cursor >= len(l.articles) {
		return nil
	}
	return &l.articles[l.cursor]
}

// MoveUp moves the cursor up.
func (l *ArticleList) MoveUp() {
	if l.cursor > 0 {
		l.cursor--
	}
}

// MoveDown moves the cursor down.
func (l *ArticleList) MoveDown() {
	if l.cursor < len(l.articles)-1 {
		l.cursor++
	}
}

// SetDimensions sets the component dimensions.
func (l *ArticleList) SetDimensions(width, height int) {
	l.width = width
	l.height = height
}

// View renders the list.
func (l *ArticleList) View() string {
	if len(l.articles) == 0 {
		return l.styles.Muted.Render("No hay artículos.")
	}

	visible := max(l.height-2, 1)
	start := 0
	if l.cursor >= visible {
		start = l.cursor - visible + 1
	}
	end := min(start+visible, len(l.articles))

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		lines = append(lines, l.renderRow(i, &l.articles[i]))
	}
	return strings.Join(lines, "\n")
}

func (l *ArticleList) renderRow(i int, a *domain.Article) string {
	indicator := "  "
	if i == l.cursor {
		indicator = "> "
	}
	mark := ""
	if l.marked != nil {
		mark = "[ ] "
		if l.marked(a.ID) {
			mark = "[x] "
		}
	}

	date := "----------"
	if d := a.EffectiveDate(); !d.IsZero() {
		date = d.Local().Format("2006-01-02")
	}
	status := fmt.Sprintf("%-9s", a.Status)
	prefix := indicator + mark + date + "  " + status + "  "
	title := runewidth.Truncate(a.Title, max(l.width-runewidth.StringWidth(prefix)-2, 10), "…")

	if i == l.cursor {
		return l.styles.Selected.Render(prefix + title)
	}
	line := l.styles.Normal.Render(indicator)
	if mark != "" {
		line += l.styles.Marked.Render(mark)
	}
	return line + l.styles.Muted.Render(date+"  ") +
		l.styles.Status(a.Status).Render(status) + "  " + l.styles.Normal.Render(title)
}

// Board renders articles grouped by status side by side.
func Board(s *styles.Styles, columns [][]domain.Article, headers []string, width, height int, marked func(int64) bool) string {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if len(columns) == 0 {
		return ""
	}
	colWidth := max(width/len(columns)-4, 12)
	rows := max(height-4, 1)

	rendered := make([]string, 0, len(columns))
	for i, col := range columns {
		var b strings.Builder
		b.WriteString(s.Subtitle.Render(fmt.Sprintf("%s (%d)", headers[i], len(col))))
		for j := 0; j < len(col) && j < rows; j++ {
			prefix := "  "
			if marked != nil && marked(col[j].ID) {
				prefix = "* "
			}
			b.WriteString("\n")
			b.WriteString(prefix + runewidth.Truncate(col[j].Title, colWidth-2, "…"))
		}
		if len(col) > rows {
			b.WriteString("\n" + s.Muted.Render(fmt.Sprintf("  +%d más", len(col)-rows)))
		}
		rendered = append(rendered, s.Column.Width(colWidth).Render(b.String()))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}
