package driven

import (
	"context"

	"github.com/custodia-labs/raiz-cli/internal/core/domain"
)

// FeedProbe fetches and parses a feed URL to check that it is a feed.
type FeedProbe interface {
	Probe(ctx context.Context, feedURL string) (*domain.FeedPreview, error)
}

// TextRenderer converts an article body (possibly HTML) into plain text.
type TextRenderer interface {
	PlainText(body string) string
}
