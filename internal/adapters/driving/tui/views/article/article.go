// Package article provides the single-article reading view for the TUI.
package article

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/raiz-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/raiz-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/raiz-cli/internal/core/domain"
	"github.com/custodia-labs/raiz-cli/internal/core/ports/driving"
)

// View shows one article as plain text.
type View struct {
	styles   *styles.Styles
	articles driving.ArticleService
	canEdit  func() bool

	article  *domain.Article
	viewport viewport.Model
	width    int
	height   int
}

// NewView creates an article view. canEdit decides whether the edit key
// is offered.
func NewView(s *styles.Styles, articles driving.ArticleService, canEdit func() bool) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if canEdit == nil {
		canEdit = func() bool { return false }
	}
	return &View{
		styles:   s,
		articles: articles,
		canEdit:  canEdit,
		viewport: viewport.New(80, 18),
		width:    80,
		height:   24,
	}
}

// SetArticle loads an article into the view.
func (v *View) SetArticle(a domain.Article) {
	v.article = &a
	v.viewport.SetContent(v.body())
	v.viewport.GotoTop()
}

// Article returns the article shown.
func (v *View) Article() *domain.Article { return v.article }

func (v *View) body() string {
	if v.article == nil {
		return ""
	}
	text := v.article.DisplayBody()
	if v.articles != nil {
		text = v.articles.PlainText(text)
	}
	if strings.TrimSpace(text) == "" {
		return v.styles.Muted.Render("(sin contenido)")
	}
	return text
}

// Init implements the view contract.
func (v *View) Init() tea.Cmd { return nil }

// Update handles messages for the article view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.ArticleSaved:
		if msg.Err == nil && msg.Article != nil && v.article != nil && msg.Article.ID == v.article.ID {
			v.SetArticle(*msg.Article)
		}
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewArticles} }
		case "e":
			if v.article != nil && v.canEdit() {
				a := *v.article
				return v, func() tea.Msg { return messages.EditRequested{Article: a} }
			}
			return v, nil
		}
	}

	var cmd tea.Cmd
	v.viewport, cmd = v.viewport.Update(msg)
	return v, cmd
}

// View renders the article.
func (v *View) View() string {
	if v.article == nil {
		return v.styles.Muted.Render("Ningún artículo seleccionado.")
	}
	a := v.article

	var b strings.Builder
	b.WriteString(v.styles.Title.Render(a.Title))
	b.WriteString("\n")

	meta := []string{a.EffectiveDate().Format("2006-01-02")}
	if a.Source != "" {
		meta = append(meta, a.Source)
	}
	b.WriteString(v.styles.Muted.Render(strings.Join(meta, " · ")))
	b.WriteString("  ")
	b.WriteString(v.styles.Status(a.Status).Render(string(a.Status)))
	b.WriteString("\n")
	if tags := a.TagList(); len(tags) > 0 {
		b.WriteString(v.styles.Badge.Render(strings.Join(tags, ", ")))
		b.WriteString("\n")
	}
	if a.URL != "" {
		b.WriteString(v.styles.Muted.Render(a.URL))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(v.viewport.View())
	b.WriteString("\n")

	hint := "[↑/↓] Desplazar  [esc] Volver"
	if v.canEdit() {
		hint += "  [e] Editar"
	}
	b.WriteString(v.styles.Help.Render(fmt.Sprintf("%s  %3.0f%%", hint, v.viewport.ScrollPercent()*100)))
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.viewport.Width = width
	v.viewport.Height = max(height-8, 3)
	if v.article != nil {
		v.viewport.SetContent(v.body())
	}
}
