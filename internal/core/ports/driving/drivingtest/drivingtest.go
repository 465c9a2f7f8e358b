// Package drivingtest provides in-memory implementations of the driving
// ports for front-end tests.
package drivingtest

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/custodia-labs/raiz-cli/internal/core/domain"
	"github.com/custodia-labs/raiz-cli/internal/core/ports/driving"
)

var (
	_ driving.SessionService = (*Session)(nil)
	_ driving.ArticleService = (*Articles)(nil)
	_ driving.SourceService  = (*Sources)(nil)
	_ driving.UserService    = (*Users)(nil)
)

// Session is a session service holding the user in memory.
// Login accepts any username with password "secret" unless LoginFunc is set.
type Session struct {
	mu    sync.Mutex
	user  *domain.User
	token string

	LoginFunc    func(ctx context.Context, username, password string) (*domain.User, error)
	RegisterFunc func(ctx context.Context, username, password string) error
	RestoreFunc  func(ctx context.Context) (*domain.User, error)
	LogoutErr    error

	Registered []string
	Restores   int
}

// NewSession creates a session, authenticated when user is non-nil.
func NewSession(user *domain.User) *Session {
	s := &Session{}
	if user != nil {
		s.set("token-"+user.Username, user)
	}
	return s
}

func (s *Session) set(token string, user *domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.user = user
}

func (s *Session) Restore(ctx context.Context) error {
	s.mu.Lock()
	s.Restores++
	fn := s.RestoreFunc
	s.mu.Unlock()
	if fn == nil {
		return nil
	}
	user, err := fn(ctx)
	if err != nil || user == nil {
		s.set("", nil)
		return err
	}
	s.set("token-"+user.Username, user)
	return nil
}

func (s *Session) Login(ctx context.Context, username, password string) (*domain.User, error) {
	var user *domain.User
	if s.LoginFunc != nil {
		u, err := s.LoginFunc(ctx, username, password)
		if err != nil {
			return nil, err
		}
		user = u
	} else {
		if password != "secret" {
			return nil, domain.ErrInvalidCredentials
		}
		user = &domain.User{Username: username, Role: domain.RoleUser}
	}
	s.set("token-"+user.Username, user)
	return user, nil
}

func (s *Session) Logout(context.Context) error {
	if s.LogoutErr != nil {
		return s.LogoutErr
	}
	s.set("", nil)
	return nil
}

func (s *Session) Register(ctx context.Context, username, password, confirm string) error {
	if password != confirm {
		return domain.ErrPasswordMismatch
	}
	if s.RegisterFunc != nil {
		if err := s.RegisterFunc(ctx, username, password); err != nil {
			return err
		}
	}
	s.mu.Lock()
	s.Registered = append(s.Registered, username)
	s.mu.Unlock()
	return nil
}

func (s *Session) Current() *domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func (s *Session) State() domain.SessionState {
	if s.Token() == "" {
		return domain.SessionAnonymous
	}
	return domain.SessionAuthenticated
}

func (s *Session) IsAdmin() bool {
	return s.Current().IsAdmin()
}

// Articles is an article service backed by a map.
type Articles struct {
	mu    sync.Mutex
	items map[int64]domain.Article

	// Fail makes Update, Delete and SetStatus fail for an id.
	Fail    map[int64]error
	ListErr error

	SearchResults []domain.SearchResult
	SearchErr     error

	RegenerateFunc  func(ctx context.Context, id int64) (*domain.Article, error)
	ScrapeFunc      func(ctx context.Context, id int64) (*domain.Article, error)
	RefineFunc      func(ctx context.Context, id int64, content, instruction string) (string, error)
	AuditFunc       func(ctx context.Context, id int64) (string, error)
	SuggestionsFunc func(ctx context.Context, q domain.SuggestionQuery) ([]domain.KnowledgeItem, error)

	Presets    []string
	LastFilter domain.StatusFilter
	Deleted    []int64
	Updated    []domain.Article
	Knowledge  []domain.KnowledgeItem
}

// NewArticles creates a service holding articles.
func NewArticles(articles ...domain.Article) *Articles {
	s := &Articles{items: make(map[int64]domain.Article), Fail: make(map[int64]error)}
	for _, a := range articles {
		s.items[a.ID] = a
	}
	return s
}

// All returns the stored articles ordered by id.
func (s *Articles) All() []domain.Article {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Article, 0, len(s.items))
	for _, a := range s.items {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Articles) List(_ context.Context, filter domain.StatusFilter) ([]domain.Article, error) {
	s.mu.Lock()
	s.LastFilter = filter
	err := s.ListErr
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	var out []domain.Article
	for _, a := range s.All() {
		if filter == domain.StatusFilterAll || domain.StatusFilter(a.Status) == filter {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *Articles) Get(_ context.Context, id int64) (*domain.Article, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.items[id]
	if !ok {
		return nil, fmt.Errorf("article %d: %w", id, domain.ErrNotFound)
	}
	return &a, nil
}

func (s *Articles) Search(_ context.Context, _ string) ([]domain.SearchResult, error) {
	if s.SearchErr != nil {
		return nil, s.SearchErr
	}
	return s.SearchResults, nil
}

func (s *Articles) Update(_ context.Context, article domain.Article) (*domain.Article, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.Fail[article.ID]; err != nil {
		return nil, err
	}
	if _, ok := s.items[article.ID]; !ok {
		return nil, fmt.Errorf("article %d: %w", article.ID, domain.ErrNotFound)
	}
	s.items[article.ID] = article
	s.Updated = append(s.Updated, article)
	return &article, nil
}

func (s *Articles) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.Fail[id]; err != nil {
		return err
	}
	delete(s.items, id)
	s.Deleted = append(s.Deleted, id)
	return nil
}

func (s *Articles) SetStatus(
	ctx context.Context, article domain.Article, status domain.ArticleStatus,
) (*domain.Article, error) {
	article.Status = status
	return s.Update(ctx, article)
}

func (s *Articles) Regenerate(ctx context.Context, id int64) (*domain.Article, error) {
	if s.RegenerateFunc != nil {
		return s.RegenerateFunc(ctx, id)
	}
	return s.Get(ctx, id)
}

func (s *Articles) Scrape(ctx context.Context, id int64) (*domain.Article, error) {
	if s.ScrapeFunc != nil {
		return s.ScrapeFunc(ctx, id)
	}
	return s.Get(ctx, id)
}

func (s *Articles) Refine(ctx context.Context, id int64, content, instruction string) (string, error) {
	if s.RefineFunc != nil {
		return s.RefineFunc(ctx, id, content, instruction)
	}
	return content, nil
}

func (s *Articles) Audit(ctx context.Context, id int64) (string, error) {
	if s.AuditFunc != nil {
		return s.AuditFunc(ctx, id)
	}
	return "sin errores", nil
}

func (s *Articles) AddToKnowledgeBase(
	_ context.Context, articleID int64, content, tags string,
) (*domain.KnowledgeItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := articleID
	item := domain.KnowledgeItem{ID: int64(len(s.Knowledge) + 1), Content: content, Tags: tags, SourceArticleID: &id}
	s.Knowledge = append(s.Knowledge, item)
	return &item, nil
}

func (s *Articles) Suggestions(ctx context.Context, q domain.SuggestionQuery) ([]domain.KnowledgeItem, error) {
	if s.SuggestionsFunc != nil {
		return s.SuggestionsFunc(ctx, q)
	}
	return nil, nil
}

func (s *Articles) RefinePresets() []string {
	if s.Presets != nil {
		return s.Presets
	}
	return domain.DefaultRefinePresets
}

func (s *Articles) AuditInstruction(report string) string {
	return fmt.Sprintf(domain.DefaultAuditFixTemplate, report)
}

func (s *Articles) PlainText(body string) string {
	return strings.TrimSpace(body)
}

// Sources is a source service backed by a slice.
type Sources struct {
	mu    sync.Mutex
	items []domain.Source

	SuccessfulSources []domain.Source
	HistoryItems      []domain.FeedHistory
	Err               error
	IngestFunc        func(ctx context.Context, feedURL, sourceName string) (*domain.IngestResult, error)
	Preview           *domain.FeedPreview

	Checked  []string
	Ingested []domain.IngestRequest
}

// NewSources creates a service holding sources.
func NewSources(sources ...domain.Source) *Sources {
	return &Sources{items: sources}
}

func (s *Sources) List(context.Context) ([]domain.Source, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	return append([]domain.Source(nil), s.items...), nil
}

func (s *Sources) Add(_ context.Context, source domain.Source, check bool) (*domain.Source, error) {
	if err := source.Validate(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if check {
		s.Checked = append(s.Checked, source.FeedURL)
	}
	if source.Type == "" {
		source.Type = domain.DefaultSourceType
	}
	var maxID int64
	for _, it := range s.items {
		maxID = max(maxID, it.ID)
	}
	source.ID = maxID + 1
	s.items = append(s.items, source)
	return &source, nil
}

func (s *Sources) Remove(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	for i, it := range s.items {
		if it.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("source %d: %w", id, domain.ErrNotFound)
}

func (s *Sources) Successful(context.Context) ([]domain.Source, error) {
	return s.SuccessfulSources, s.Err
}

func (s *Sources) History(context.Context) ([]domain.FeedHistory, error) {
	return s.HistoryItems, s.Err
}

func (s *Sources) Ingest(ctx context.Context, feedURL, sourceName string) (*domain.IngestResult, error) {
	if feedURL == "" {
		return nil, domain.ErrInvalidInput
	}
	s.mu.Lock()
	s.Ingested = append(s.Ingested, domain.IngestRequest{FeedURL: feedURL, SourceName: sourceName})
	s.mu.Unlock()
	if s.IngestFunc != nil {
		return s.IngestFunc(ctx, feedURL, sourceName)
	}
	return &domain.IngestResult{Message: "ok", Count: 1}, nil
}

func (s *Sources) Probe(_ context.Context, feedURL string) (*domain.FeedPreview, error) {
	if s.Preview == nil {
		return nil, fmt.Errorf("%s: %w", feedURL, domain.ErrNotFound)
	}
	return s.Preview, nil
}

// Users is a user service backed by a slice.
type Users struct {
	mu       sync.Mutex
	accounts []domain.Account
	Err      error
}

// NewUsers creates a service holding accounts.
func NewUsers(accounts ...domain.Account) *Users {
	return &Users{accounts: accounts}
}

func (s *Users) List(context.Context) ([]domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	return append([]domain.Account(nil), s.accounts...), nil
}

func (s *Users) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	for i, a := range s.accounts {
		if a.ID == id {
			s.accounts = append(s.accounts[:i], s.accounts[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("user %d: %w", id, domain.ErrNotFound)
}

func (s *Users) SetRole(_ context.Context, id int64, role domain.Role) (*domain.Account, error) {
	if !role.IsValid() {
		return nil, domain.ErrInvalidRole
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	for i := range s.accounts {
		if s.accounts[i].ID == id {
			s.accounts[i].Role = role
			a := s.accounts[i]
			return &a, nil
		}
	}
	return nil, fmt.Errorf("user %d: %w", id, domain.ErrNotFound)
}
