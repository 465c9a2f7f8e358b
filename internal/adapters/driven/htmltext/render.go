// Package htmltext turns article bodies that contain HTML into readable
// plain text for terminal display.
package htmltext

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"

	"github.com/custodia-labs/raiz-cli/internal/core/ports/driven"
)

// Ensure Renderer implements the interface.
var _ driven.TextRenderer = (*Renderer)(nil)

const blockSelector = "p, div, li, h1, h2, h3, h4, h5, h6, blockquote, pre, tr"

var (
	spaces    = regexp.MustCompile(`[ \t\f\v\r]+`)
	blankRuns = regexp.MustCompile(`\n{3,}`)
	looksHTML = regexp.MustCompile(`<[a-zA-Z/!][^>]*>`)
)

// Renderer converts HTML to plain text. Bodies without markup pass through
// untouched.
type Renderer struct {
	policy *bluemonday.Policy
}

// NewRenderer creates a renderer. Script, style and embedded content are
// dropped before text extraction.
func NewRenderer() *Renderer {
	p := bluemonday.NewPolicy()
	p.AllowElements("p", "div", "br", "li", "ul", "ol", "h1", "h2", "h3", "h4", "h5", "h6",
		"blockquote", "pre", "code", "strong", "em", "b", "i", "a", "span", "table", "tr", "td", "th")
	return &Renderer{policy: p}
}

// PlainText implements driven.TextRenderer.
func (r *Renderer) PlainText(body string) string {
	if !looksHTML.MatchString(body) {
		return body
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(r.policy.Sanitize(body)))
	if err != nil {
		return body
	}

	doc.Find("br").ReplaceWithHtml("\n")
	doc.Find("li").Each(func(_ int, s *goquery.Selection) {
		s.PrependHtml("• ")
	})
	doc.Find(blockSelector).Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n\n")
	})

	return normalize(doc.Text())
}

func normalize(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(spaces.ReplaceAllString(line, " "))
	}
	out := strings.Join(lines, "\n")
	out = blankRuns.ReplaceAllString(out, "\n\n")
	return strings.TrimSpace(out)
}
