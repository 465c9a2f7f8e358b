package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/raiz-cli/internal/core/domain"
)

func at(t time.Time) *time.Time { return &t }

func sampleArticles() []domain.Article {
	return []domain.Article{
		{ID: 1, Title: "Clima extremo", Status: domain.StatusDraft},
		{ID: 2, Title: "Economía", Summary: "Mercados", Status: domain.StatusPublished},
		{ID: 3, Title: "Deportes", Status: domain.StatusArchived},
		{ID: 4, Title: "Raro", Status: domain.ArticleStatus("pending")},
	}
}

func TestCuratorList_FilterText(t *testing.T) {
	l := NewCuratorList()
	l.SetArticles([]domain.Article{
		{ID: 1, Title: "Clima extremo"},
		{ID: 2, Title: "Economía"},
	})

	l.SetFilterText("clima")
	got := l.Displayed()

	require.Len(t, got, 1)
	assert.Equal(t, "Clima extremo", got[0].Title)
}

func TestCuratorList_FilterText_MatchesSummary(t *testing.T) {
	l := NewCuratorList()
	l.SetArticles(sampleArticles())

	l.SetFilterText("MERCADOS")
	got := l.Displayed()

	require.Len(t, got, 1)
	assert.Equal(t, int64(2), got[0].ID)
}

func TestCuratorList_DateRange_EndOfDayInclusive(t *testing.T) {
	loc := time.UTC
	l := NewCuratorList()
	l.SetLocation(loc)
	l.SetArticles([]domain.Article{
		{ID: 1, PublishedAt: at(time.Date(2024, 3, 10, 23, 59, 59, 0, loc))},
		{ID: 2, PublishedAt: at(time.Date(2024, 3, 11, 0, 0, 1, 0, loc))},
		{ID: 3, PublishedAt: at(time.Date(2024, 3, 9, 23, 59, 59, 0, loc))},
		{ID: 4, CreatedAt: time.Date(2024, 3, 10, 0, 0, 0, 0, loc)},
	})

	day := time.Date(2024, 3, 10, 15, 0, 0, 0, loc)
	l.SetDateRange(day, day)

	var ids []int64
	for _, a := range l.Displayed() {
		ids = append(ids, a.ID)
	}
	assert.Equal(t, []int64{1, 4}, ids)
}

func TestCuratorList_DateRange_OpenEnds(t *testing.T) {
	loc := time.UTC
	l := NewCuratorList()
	l.SetLocation(loc)
	l.SetArticles([]domain.Article{
		{ID: 1, PublishedAt: at(time.Date(2024, 1, 1, 0, 0, 0, 0, loc))},
		{ID: 2, PublishedAt: at(time.Date(2024, 6, 1, 0, 0, 0, 0, loc))},
	})

	l.SetDateRange(time.Date(2024, 3, 1, 0, 0, 0, 0, loc), time.Time{})
	require.Len(t, l.Displayed(), 1)
	assert.Equal(t, int64(2), l.Displayed()[0].ID)

	l.SetDateRange(time.Time{}, time.Date(2024, 3, 1, 0, 0, 0, 0, loc))
	require.Len(t, l.Displayed(), 1)
	assert.Equal(t, int64(1), l.Displayed()[0].ID)
}

func TestCuratorList_SearchSupersedesFilters(t *testing.T) {
	l := NewCuratorList()
	l.SetArticles(sampleArticles())
	l.SetFilterText("no-match")

	l.SetSearch("sequía", []domain.Article{{ID: 99, Title: "Sequía"}})
	got := l.Displayed()
	require.Len(t, got, 1)
	assert.Equal(t, int64(99), got[0].ID)

	l.ClearSearch()
	assert.Empty(t, l.Displayed())
}

func TestCuratorList_Search(t *testing.T) {
	repo := newMockArticleRepo()
	repo.searchHits = []domain.SearchResult{{ID: 7, Metadata: domain.SearchMetadata{Title: "Sequía"}}}
	svc := NewArticleService(repo, nil, nil, nil, nil)
	l := NewCuratorList()

	require.NoError(t, l.Search(context.Background(), svc, "sequía"))
	assert.Equal(t, "sequía", l.Query())
	require.Len(t, l.Displayed(), 1)
	assert.Equal(t, int64(7), l.Displayed()[0].ID)

	require.NoError(t, l.Search(context.Background(), svc, "  "))
	assert.Empty(t, l.Query())
}

func TestCuratorList_Columns_UnknownStatus(t *testing.T) {
	l := NewCuratorList()
	l.SetArticles(sampleArticles())

	var board Board
	require.NotPanics(t, func() { board = l.Columns() })

	assert.Len(t, board.Draft, 1)
	assert.Len(t, board.Published, 1)
	assert.Len(t, board.Archived, 1)
	require.Len(t, board.Unclassified, 1)
	assert.Equal(t, int64(4), board.Unclassified[0].ID)
	assert.Len(t, board.Column(domain.StatusPublished), 1)
}

func TestCuratorList_ViewModeAndStatusFilter(t *testing.T) {
	l := NewCuratorList()
	assert.Equal(t, ViewList, l.ViewMode())
	assert.Equal(t, domain.FilterFor(domain.StatusDraft), l.StatusFilter())

	l.SetViewMode(ViewColumns)
	assert.Equal(t, domain.StatusFilterAll, l.StatusFilter())

	l.SetStatusFilter(domain.FilterFor(domain.StatusArchived))
	assert.Equal(t, ViewList, l.ViewMode())
}

func TestCuratorList_SelectAllTwiceEmpties(t *testing.T) {
	l := NewCuratorList()
	l.SetArticles(sampleArticles())

	l.SelectAll()
	assert.Equal(t, []int64{1, 2, 3, 4}, l.Selected())

	l.SelectAll()
	assert.Empty(t, l.Selected())
}

func TestCuratorList_ToggleSelect(t *testing.T) {
	l := NewCuratorList()
	l.ToggleSelect(5)
	l.ToggleSelect(2)
	assert.Equal(t, []int64{2, 5}, l.Selected())
	assert.True(t, l.IsSelected(5))

	l.ToggleSelect(5)
	assert.Equal(t, []int64{2}, l.Selected())
}

func TestCuratorList_StaleSelectionKeptByDefault(t *testing.T) {
	l := NewCuratorList()
	l.SetArticles(sampleArticles())
	l.SelectAll()

	l.SetFilterText("clima")

	assert.Len(t, l.Displayed(), 1)
	assert.Equal(t, []int64{1, 2, 3, 4}, l.Selected())
}

func TestCuratorList_SelectionClearedOnFilterChange(t *testing.T) {
	l := NewCuratorList()
	l.Configure(domain.CuratorSettings{BulkConcurrency: 1, ClearSelectionOnFilter: true})
	l.SetArticles(sampleArticles())

	l.SelectAll()
	l.SetFilterText("clima")
	assert.Empty(t, l.Selected())

	l.ToggleSelect(1)
	l.SetSearch("x", nil)
	assert.Empty(t, l.Selected())

	l.ToggleSelect(1)
	l.SetDateRange(time.Now(), time.Time{})
	assert.Empty(t, l.Selected())
}

func TestCuratorList_BulkDelete_PartialFailure(t *testing.T) {
	ctx := context.Background()
	repo := newMockArticleRepo(
		domain.Article{ID: 1, Status: domain.StatusDraft},
		domain.Article{ID: 2, Status: domain.StatusDraft},
		domain.Article{ID: 3, Status: domain.StatusDraft},
	)
	repo.failIDs[2] = errBoom
	svc := NewArticleService(repo, nil, curatorSession(), nil, nil)

	l := NewCuratorList()
	require.NoError(t, l.Load(ctx, svc))
	l.SelectAll()

	res := l.BulkDelete(ctx, svc)

	assert.Equal(t, 2, res.SuccessCount())
	assert.Equal(t, []int64{1, 3}, res.Succeeded)
	require.Len(t, res.Failed, 1)
	assert.Equal(t, int64(2), res.Failed[0].ID)
	assert.ErrorIs(t, res.Failed[0].Err, errBoom)
	assert.Empty(t, l.Selected())
	assert.Equal(t, 1, repo.maxInFlight)

	require.NoError(t, l.Load(ctx, svc))
	require.Len(t, l.Articles(), 1)
	assert.Equal(t, int64(2), l.Articles()[0].ID)
}

func TestCuratorList_BulkDelete_AllFailKeepsSelection(t *testing.T) {
	repo := newMockArticleRepo(domain.Article{ID: 1, Status: domain.StatusDraft})
	repo.failIDs[1] = errBoom
	svc := NewArticleService(repo, nil, curatorSession(), nil, nil)

	l := NewCuratorList()
	l.SetArticles([]domain.Article{{ID: 1}})
	l.ToggleSelect(1)

	res := l.BulkDelete(context.Background(), svc)
	assert.Zero(t, res.SuccessCount())
	assert.Equal(t, []int64{1}, l.Selected())
}

func TestCuratorList_BulkArchive_SkipsUnknownIDs(t *testing.T) {
	ctx := context.Background()
	repo := newMockArticleRepo(
		domain.Article{ID: 1, Status: domain.StatusDraft},
		domain.Article{ID: 2, Status: domain.StatusDraft},
	)
	svc := NewArticleService(repo, nil, curatorSession(), nil, nil)

	l := NewCuratorList()
	require.NoError(t, l.Load(ctx, svc))
	l.ToggleSelect(1)
	l.ToggleSelect(42)

	res := l.BulkArchive(ctx, svc)

	assert.Equal(t, []int64{1}, res.Succeeded)
	assert.Equal(t, []int64{42}, res.Skipped)
	assert.Empty(t, res.Failed)
	assert.Equal(t, domain.StatusArchived, repo.articles[1].Status)
	assert.Equal(t, domain.StatusDraft, repo.articles[2].Status)
}

func TestCuratorList_BulkDelete_Concurrent(t *testing.T) {
	ctx := context.Background()
	var articles []domain.Article
	for i := int64(1); i <= 10; i++ {
		articles = append(articles, domain.Article{ID: i, Status: domain.StatusDraft})
	}
	repo := newMockArticleRepo(articles...)
	repo.failIDs[5] = errBoom
	svc := NewArticleService(repo, nil, curatorSession(), nil, nil)

	l := NewCuratorList()
	l.SetConcurrency(3)
	l.SetArticles(articles)
	l.SelectAll()

	res := l.BulkDelete(ctx, svc)

	assert.Equal(t, 9, res.SuccessCount())
	require.Len(t, res.Failed, 1)
	assert.Equal(t, int64(5), res.Failed[0].ID)
	assert.LessOrEqual(t, repo.maxInFlight, 3)
	assert.Equal(t, []int64{1, 2, 3, 4, 6, 7, 8, 9, 10}, res.Succeeded)
}

func TestCuratorList_Load_KeepsArticlesOnError(t *testing.T) {
	repo := newMockArticleRepo()
	repo.listErr = errBoom
	svc := NewArticleService(repo, nil, curatorSession(), nil, nil)

	l := NewCuratorList()
	l.SetArticles(sampleArticles())

	assert.Error(t, l.Load(context.Background(), svc))
	assert.Len(t, l.Articles(), 4)
}

func TestCuratorMode_Toggle(t *testing.T) {
	l := NewCuratorList()
	l.SetViewMode(ViewColumns)

	anon := NewCuratorMode(&fakeSession{})
	assert.ErrorIs(t, anon.Toggle(l), domain.ErrAuthRequired)
	assert.False(t, anon.Active())

	session := curatorSession()
	mode := NewCuratorMode(session)
	require.NoError(t, mode.Toggle(l))
	assert.True(t, mode.Active())
	assert.Equal(t, domain.FilterFor(domain.StatusDraft), l.StatusFilter())

	require.NoError(t, mode.Toggle(l))
	assert.False(t, mode.Active())

	require.NoError(t, mode.Toggle(l))
	_ = session.Logout(context.Background())
	assert.False(t, mode.Active())
}
