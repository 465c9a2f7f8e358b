// Package feed probes RSS and Atom URLs with gofeed before a source is
// registered.
package feed

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/custodia-labs/raiz-cli/internal/core/domain"
	"github.com/custodia-labs/raiz-cli/internal/core/ports/driven"
	"github.com/custodia-labs/raiz-cli/internal/logger"
)

// Ensure Probe implements the interface.
var _ driven.FeedProbe = (*Probe)(nil)

// ErrNotAFeed is returned when the URL answers but is not RSS/Atom/JSON Feed.
var ErrNotAFeed = errors.New("not a valid feed")

// ErrUnreachable is returned when the feed host cannot be contacted.
var ErrUnreachable = errors.New("could not reach the feed URL")

// Probe fetches a feed URL and reports what it contains.
type Probe struct {
	parser *gofeed.Parser
}

// NewProbe creates a feed probe. A nil client uses a client with the given
// timeout (10s when zero).
func NewProbe(client *http.Client, timeout time.Duration) *Probe {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}
	p := gofeed.NewParser()
	p.Client = client
	p.UserAgent = "raiz-cli"
	return &Probe{parser: p}
}

// Probe downloads and parses feedURL.
func (p *Probe) Probe(ctx context.Context, feedURL string) (*domain.FeedPreview, error) {
	u, err := url.Parse(strings.TrimSpace(feedURL))
	if err != nil || u.Host == "" {
		return nil, fmt.Errorf("%w: invalid feed URL %q", domain.ErrInvalidInput, feedURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: feed URL must use http or https", domain.ErrInvalidInput)
	}

	f, err := p.parser.ParseURLWithContext(u.String(), ctx)
	if err != nil {
		var httpErr gofeed.HTTPError
		switch {
		case errors.As(err, &httpErr):
			return nil, fmt.Errorf("%w: server returned %d", ErrUnreachable, httpErr.StatusCode)
		case errors.Is(err, gofeed.ErrFeedTypeNotDetected):
			return nil, ErrNotAFeed
		case ctx.Err() != nil:
			return nil, ctx.Err()
		default:
			var netErr interface{ Timeout() bool }
			if errors.As(err, &netErr) || strings.Contains(err.Error(), "no such host") ||
				strings.Contains(err.Error(), "connection refused") {
				return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
			}
			return nil, fmt.Errorf("%w: %v", ErrNotAFeed, err)
		}
	}

	preview := &domain.FeedPreview{
		Title:     f.Title,
		Link:      f.Link,
		FeedLink:  f.FeedLink,
		ItemCount: len(f.Items),
	}
	if preview.Link == "" {
		preview.Link = u.String()
	}
	if preview.FeedLink == "" {
		preview.FeedLink = u.String()
	}
	logger.Debug("feed: %s is %s with %d items", u, f.FeedType, preview.ItemCount)
	return preview, nil
}
