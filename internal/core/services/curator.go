package services

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/raiz-cli/internal/core/domain"
	"github.com/custodia-labs/raiz-cli/internal/core/ports/driving"
	"github.com/custodia-labs/raiz-cli/internal/logger"
)

// ViewMode selects how the curator list is laid out.
type ViewMode string

// View modes.
const (
	ViewList    ViewMode = "list"
	ViewColumns ViewMode = "columns"
)

// Board groups displayed articles by workflow status.
type Board struct {
	Draft        []domain.Article
	Published    []domain.Article
	Archived     []domain.Article
	Unclassified []domain.Article
}

// Column returns the articles for a known status.
func (b *Board) Column(status domain.ArticleStatus) []domain.Article {
	switch status {
	case domain.StatusDraft:
		return b.Draft
	case domain.StatusPublished:
		return b.Published
	case domain.StatusArchived:
		return b.Archived
	default:
		return b.Unclassified
	}
}

// BulkFailure records one item that failed during a bulk action.
type BulkFailure struct {
	ID  int64
	Err error
}

// BulkResult reports the outcome of a bulk action per item.
type BulkResult struct {
	Succeeded []int64
	Skipped   []int64
	Failed    []BulkFailure
}

// SuccessCount returns how many items succeeded.
func (r BulkResult) SuccessCount() int {
	return len(r.Succeeded)
}

// CuratorList holds the curator's article list, local filters and the
// bulk selection. It is not safe for concurrent use; front ends own one
// instance each.
type CuratorList struct {
	articles      []domain.Article
	query         string
	searchResults []domain.Article

	filterText string
	startDate  time.Time
	endDate    time.Time
	loc        *time.Location

	viewMode     ViewMode
	statusFilter domain.StatusFilter

	selected      map[int64]struct{}
	clearOnFilter bool
	concurrency   int
}

// NewCuratorList creates an empty list in list mode showing drafts.
func NewCuratorList() *CuratorList {
	return &CuratorList{
		loc:          time.Local,
		viewMode:     ViewList,
		statusFilter: domain.FilterFor(domain.StatusDraft),
		selected:     make(map[int64]struct{}),
		concurrency:  domain.DefaultBulkConcurrency,
	}
}

// Configure applies curator settings.
func (l *CuratorList) Configure(s domain.CuratorSettings) {
	l.SetInvalidateOnFilterChange(s.ClearSelectionOnFilter)
	l.SetConcurrency(s.BulkConcurrency)
}

// SetInvalidateOnFilterChange makes any filter or search change clear
// the selection. Off by default.
func (l *CuratorList) SetInvalidateOnFilterChange(v bool) {
	l.clearOnFilter = v
}

// SetConcurrency sets how many bulk requests may be in flight.
func (l *CuratorList) SetConcurrency(n int) {
	if n < 1 {
		n = 1
	}
	l.concurrency = n
}

// SetLocation sets the zone calendar days are interpreted in.
func (l *CuratorList) SetLocation(loc *time.Location) {
	if loc == nil {
		loc = time.Local
	}
	l.loc = loc
}

// SetArticles replaces the fetched articles.
func (l *CuratorList) SetArticles(articles []domain.Article) {
	l.articles = articles
}

// Articles returns the fetched articles.
func (l *CuratorList) Articles() []domain.Article {
	return l.articles
}

// SetSearch activates a search with its results.
func (l *CuratorList) SetSearch(query string, results []domain.Article) {
	l.query = strings.TrimSpace(query)
	l.searchResults = results
	if l.query == "" {
		l.searchResults = nil
	}
	l.filterChanged()
}

// ClearSearch drops the active search.
func (l *CuratorList) ClearSearch() {
	l.query = ""
	l.searchResults = nil
	l.filterChanged()
}

// Query returns the active search query.
func (l *CuratorList) Query() string {
	return l.query
}

// SetFilterText sets the local text filter.
func (l *CuratorList) SetFilterText(text string) {
	l.filterText = text
	l.filterChanged()
}

// FilterText returns the local text filter.
func (l *CuratorList) FilterText() string {
	return l.filterText
}

// SetDateRange sets the calendar-day bounds. Zero values leave that
// side open.
func (l *CuratorList) SetDateRange(start, end time.Time) {
	l.startDate = start
	l.endDate = end
	l.filterChanged()
}

// DateRange returns the calendar-day bounds.
func (l *CuratorList) DateRange() (time.Time, time.Time) {
	return l.startDate, l.endDate
}

// SetViewMode switches layout. Columns always show every status.
func (l *CuratorList) SetViewMode(mode ViewMode) {
	l.viewMode = mode
	if mode == ViewColumns {
		l.statusFilter = domain.StatusFilterAll
		l.filterChanged()
	}
}

// ViewMode returns the current layout.
func (l *CuratorList) ViewMode() ViewMode {
	return l.viewMode
}

// SetStatusFilter chooses the status to fetch and returns to list mode.
func (l *CuratorList) SetStatusFilter(filter domain.StatusFilter) {
	l.statusFilter = filter
	if filter != domain.StatusFilterAll {
		l.viewMode = ViewList
	}
	l.filterChanged()
}

// StatusFilter returns the status to fetch.
func (l *CuratorList) StatusFilter() domain.StatusFilter {
	return l.statusFilter
}

func (l *CuratorList) filterChanged() {
	if l.clearOnFilter {
		l.ClearSelection()
	}
}

// Displayed returns what the list shows. An active search supersedes the
// local filters.
func (l *CuratorList) Displayed() []domain.Article {
	if l.query != "" {
		out := make([]domain.Article, len(l.searchResults))
		copy(out, l.searchResults)
		return out
	}

	text := strings.ToLower(strings.TrimSpace(l.filterText))
	start, end := l.bounds()

	out := make([]domain.Article, 0, len(l.articles))
	for i := range l.articles {
		a := &l.articles[i]
		if text != "" &&
			!strings.Contains(strings.ToLower(a.Title), text) &&
			!strings.Contains(strings.ToLower(a.Summary), text) {
			continue
		}
		if !start.IsZero() || !end.IsZero() {
			d := a.EffectiveDate()
			if !start.IsZero() && d.Before(start) {
				continue
			}
			if !end.IsZero() && d.After(end) {
				continue
			}
		}
		out = append(out, *a)
	}
	return out
}

func (l *CuratorList) bounds() (time.Time, time.Time) {
	var start, end time.Time
	if !l.startDate.IsZero() {
		y, m, d := l.startDate.In(l.loc).Date()
		start = time.Date(y, m, d, 0, 0, 0, 0, l.loc)
	}
	if !l.endDate.IsZero() {
		y, m, d := l.endDate.In(l.loc).Date()
		end = time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), l.loc)
	}
	return start, end
}

// Columns groups the displayed articles by status.
func (l *CuratorList) Columns() Board {
	var b Board
	for _, a := range l.Displayed() {
		switch a.Status {
		case domain.StatusDraft:
			b.Draft = append(b.Draft, a)
		case domain.StatusPublished:
			b.Published = append(b.Published, a)
		case domain.StatusArchived:
			b.Archived = append(b.Archived, a)
		default:
			b.Unclassified = append(b.Unclassified, a)
		}
	}
	return b
}

// ToggleSelect adds or removes an id from the selection.
func (l *CuratorList) ToggleSelect(id int64) {
	if _, ok := l.selected[id]; ok {
		delete(l.selected, id)
		return
	}
	l.selected[id] = struct{}{}
}

// IsSelected reports whether an id is selected.
func (l *CuratorList) IsSelected(id int64) bool {
	_, ok := l.selected[id]
	return ok
}

// SelectAll selects every displayed article, or clears the selection
// when its size already matches the displayed count.
func (l *CuratorList) SelectAll() {
	displayed := l.Displayed()
	if len(l.selected) == len(displayed) {
		l.ClearSelection()
		return
	}
	l.selected = make(map[int64]struct{}, len(displayed))
	for _, a := range displayed {
		l.selected[a.ID] = struct{}{}
	}
}

// ClearSelection empties the selection.
func (l *CuratorList) ClearSelection() {
	l.selected = make(map[int64]struct{})
}

// Selected returns selected ids in ascending order.
func (l *CuratorList) Selected() []int64 {
	ids := make([]int64, 0, len(l.selected))
	for id := range l.selected {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Load fetches articles for the current status filter.
// On failure the previous articles are kept.
func (l *CuratorList) Load(ctx context.Context, svc driving.ArticleService) error {
	articles, err := svc.List(ctx, l.statusFilter)
	if err != nil {
		return err
	}
	l.SetArticles(articles)
	return nil
}

// Search runs a server-side search. A blank query clears the search.
func (l *CuratorList) Search(ctx context.Context, svc driving.ArticleService, query string) error {
	if strings.TrimSpace(query) == "" {
		l.ClearSearch()
		return nil
	}
	results, err := svc.Search(ctx, query)
	if err != nil {
		return err
	}
	l.SetSearch(query, domain.SearchResultsToArticles(results))
	return nil
}

// BulkDelete deletes every selected article.
func (l *CuratorList) BulkDelete(ctx context.Context, svc driving.ArticleService) BulkResult {
	ids := l.Selected()
	items := make([]bulkItem, 0, len(ids))
	for _, id := range ids {
		items = append(items, bulkItem{id: id})
	}
	res := l.runBulk(ctx, "delete", items, func(ctx context.Context, it bulkItem) error {
		return svc.Delete(ctx, it.id)
	})
	l.afterBulk(res)
	return res
}

// BulkArchive archives every selected article present in the fetched
// list. Ids not found there are skipped.
func (l *CuratorList) BulkArchive(ctx context.Context, svc driving.ArticleService) BulkResult {
	byID := make(map[int64]domain.Article, len(l.articles))
	for _, a := range l.articles {
		byID[a.ID] = a
	}

	var skipped []int64
	var items []bulkItem
	for _, id := range l.Selected() {
		a, ok := byID[id]
		if !ok {
			skipped = append(skipped, id)
			continue
		}
		items = append(items, bulkItem{id: id, article: a})
	}

	res := l.runBulk(ctx, "archive", items, func(ctx context.Context, it bulkItem) error {
		_, err := svc.SetStatus(ctx, it.article, domain.StatusArchived)
		return err
	})
	res.Skipped = skipped
	l.afterBulk(res)
	return res
}

func (l *CuratorList) afterBulk(res BulkResult) {
	if res.SuccessCount() > 0 {
		l.ClearSelection()
	}
}

type bulkItem struct {
	id      int64
	article domain.Article
}

// runBulk applies fn to every item. Failures are logged and recorded;
// they never stop the remaining items. Results keep item order.
func (l *CuratorList) runBulk(
	ctx context.Context, action string, items []bulkItem, fn func(context.Context, bulkItem) error,
) BulkResult {
	errs := make([]error, len(items))

	if l.concurrency <= 1 {
		for i, it := range items {
			errs[i] = fn(ctx, it)
		}
	} else {
		var mu sync.Mutex
		var g errgroup.Group
		g.SetLimit(l.concurrency)
		for i, it := range items {
			g.Go(func() error {
				err := fn(ctx, it)
				mu.Lock()
				errs[i] = err
				mu.Unlock()
				return nil
			})
		}
		_ = g.Wait()
	}

	var res BulkResult
	for i, it := range items {
		if errs[i] != nil {
			logger.Warn("bulk %s: article %d: %v", action, it.id, errs[i])
			res.Failed = append(res.Failed, BulkFailure{ID: it.id, Err: errs[i]})
			continue
		}
		res.Succeeded = append(res.Succeeded, it.id)
	}
	logger.Info("bulk %s: %d/%d succeeded", action, res.SuccessCount(), len(items))
	return res
}

// CuratorMode tracks whether the curator panel is active.
type CuratorMode struct {
	session driving.SessionService
	active  bool
}

// NewCuratorMode creates an inactive curator mode.
func NewCuratorMode(session driving.SessionService) *CuratorMode {
	return &CuratorMode{session: session}
}

// Active reports whether curator mode is on.
func (m *CuratorMode) Active() bool {
	if m.active && (m.session == nil || m.session.State() != domain.SessionAuthenticated) {
		m.active = false
	}
	return m.active
}

// Toggle switches curator mode. Entering it requires a session and
// resets the list's status filter to draft.
func (m *CuratorMode) Toggle(list *CuratorList) error {
	if m.Active() {
		m.active = false
		return nil
	}
	if m.session == nil || m.session.State() != domain.SessionAuthenticated {
		return domain.ErrAuthRequired
	}
	m.active = true
	if list != nil {
		list.SetStatusFilter(domain.FilterFor(domain.StatusDraft))
	}
	return nil
}
