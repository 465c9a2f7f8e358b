package services

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/custodia-labs/raiz-cli/internal/core/domain"
	"github.com/custodia-labs/raiz-cli/internal/core/ports/driven"
)

var errBoom = errors.New("boom")

// mockArticleRepo is a stateful in-memory article backend.
type mockArticleRepo struct {
	mu       sync.Mutex
	articles map[int64]domain.Article

	failIDs map[int64]error
	listErr error

	lastFilter      domain.StatusFilter
	lastToken       string
	lastContent     string
	lastInstruction string
	inFlight        int
	maxInFlight     int

	regenerated  *domain.Article
	scraped      *domain.Article
	refineResult string
	auditResult  string
	actionErr    error
	searchHits   []domain.SearchResult
}

func newMockArticleRepo(articles ...domain.Article) *mockArticleRepo {
	m := &mockArticleRepo{
		articles: make(map[int64]domain.Article),
		failIDs:  make(map[int64]error),
	}
	for _, a := range articles {
		m.articles[a.ID] = a
	}
	return m
}

func (m *mockArticleRepo) enter(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastToken = token
	m.inFlight++
	if m.inFlight > m.maxInFlight {
		m.maxInFlight = m.inFlight
	}
}

func (m *mockArticleRepo) leave() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inFlight--
}

func (m *mockArticleRepo) List(_ context.Context, filter domain.StatusFilter, token string) ([]domain.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastFilter = filter
	m.lastToken = token
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []domain.Article
	for _, a := range m.articles {
		if filter == domain.StatusFilterAll || string(a.Status) == string(filter) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockArticleRepo) Get(_ context.Context, id int64, _ string) (*domain.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.articles[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &a, nil
}

func (m *mockArticleRepo) Search(_ context.Context, _ string) ([]domain.SearchResult, error) {
	return m.searchHits, m.actionErr
}

func (m *mockArticleRepo) Update(_ context.Context, article domain.Article, token string) (*domain.Article, error) {
	m.enter(token)
	defer m.leave()
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failIDs[article.ID]; err != nil {
		return nil, err
	}
	m.articles[article.ID] = article
	return &article, nil
}

func (m *mockArticleRepo) Delete(_ context.Context, id int64, token string) error {
	m.enter(token)
	defer m.leave()
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failIDs[id]; err != nil {
		return err
	}
	delete(m.articles, id)
	return nil
}

func (m *mockArticleRepo) Regenerate(_ context.Context, _ int64, token string) (*domain.Article, error) {
	m.lastToken = token
	if m.actionErr != nil {
		return nil, m.actionErr
	}
	return m.regenerated, nil
}

func (m *mockArticleRepo) Scrape(_ context.Context, _ int64, _ string) (*domain.Article, error) {
	if m.actionErr != nil {
		return nil, m.actionErr
	}
	return m.scraped, nil
}

func (m *mockArticleRepo) Refine(_ context.Context, _ int64, content, instruction, _ string) (string, error) {
	m.lastContent = content
	m.lastInstruction = instruction
	if m.actionErr != nil {
		return "", m.actionErr
	}
	return m.refineResult, nil
}

func (m *mockArticleRepo) Audit(_ context.Context, _ int64, _ string) (string, error) {
	if m.actionErr != nil {
		return "", m.actionErr
	}
	return m.auditResult, nil
}

type mockKnowledgeRepo struct {
	added       []domain.KnowledgeItem
	suggestions []domain.KnowledgeItem
	lastQuery   *domain.SuggestionQuery
	err         error
}

func (m *mockKnowledgeRepo) Add(_ context.Context, item domain.KnowledgeItem, _ string) (*domain.KnowledgeItem, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.added = append(m.added, item)
	item.ID = int64(len(m.added))
	return &item, nil
}

func (m *mockKnowledgeRepo) Suggestions(_ context.Context, q domain.SuggestionQuery, _ string) ([]domain.KnowledgeItem, error) {
	m.lastQuery = &q
	return m.suggestions, m.err
}

type mockAuthRepo struct {
	token       string
	loginErr    error
	registerErr error
	registered  []domain.Registration
}

func (m *mockAuthRepo) Login(_ context.Context, _, _ string) (string, error) {
	if m.loginErr != nil {
		return "", m.loginErr
	}
	return m.token, nil
}

func (m *mockAuthRepo) Register(_ context.Context, reg domain.Registration) error {
	if m.registerErr != nil {
		return m.registerErr
	}
	m.registered = append(m.registered, reg)
	return nil
}

type mockTokenStore struct {
	token    string
	loadErr  error
	cleared  bool
	saveErr  error
	saveHits int
}

func (m *mockTokenStore) Load(_ context.Context) (string, error) {
	return m.token, m.loadErr
}

func (m *mockTokenStore) Save(_ context.Context, token string) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saveHits++
	m.token = token
	return nil
}

func (m *mockTokenStore) Clear(_ context.Context) error {
	m.cleared = true
	m.token = ""
	return nil
}

// mockDecoder maps known tokens to users; anything else is malformed.
type mockDecoder struct {
	users map[string]domain.User
}

func (m *mockDecoder) Decode(token string) (*domain.User, error) {
	u, ok := m.users[token]
	if !ok {
		return nil, domain.ErrMalformedToken
	}
	return &u, nil
}

// fakeSession is a fixed session for services that only read the token.
type fakeSession struct {
	token string
	user  *domain.User
}

func (f *fakeSession) Restore(context.Context) error { return nil }
func (f *fakeSession) Login(context.Context, string, string) (*domain.User, error) {
	return f.user, nil
}
func (f *fakeSession) Logout(context.Context) error                           { f.token, f.user = "", nil; return nil }
func (f *fakeSession) Register(context.Context, string, string, string) error { return nil }
func (f *fakeSession) Current() *domain.User                                  { return f.user }
func (f *fakeSession) Token() string                                          { return f.token }
func (f *fakeSession) IsAdmin() bool                                          { return f.user.IsAdmin() }
func (f *fakeSession) State() domain.SessionState {
	if f.user == nil {
		return domain.SessionAnonymous
	}
	return domain.SessionAuthenticated
}

func curatorSession() *fakeSession {
	return &fakeSession{token: "tok", user: &domain.User{Username: "ana", Role: domain.RoleAdmin}}
}

type mockPromptStore struct {
	prompts map[string]string
}

func (m *mockPromptStore) Load(name string) (string, error) {
	p, ok := m.prompts[name]
	if !ok {
		return "", domain.ErrNotFound
	}
	return p, nil
}

func (m *mockPromptStore) Reload() {}

type mockSourceRepo struct {
	sources  []domain.Source
	created  *domain.Source
	ingested *domain.IngestRequest
	err      error
}

func (m *mockSourceRepo) List(context.Context) ([]domain.Source, error) { return m.sources, m.err }
func (m *mockSourceRepo) Create(_ context.Context, s domain.Source, _ string) (*domain.Source, error) {
	if m.err != nil {
		return nil, m.err
	}
	s.ID = 1
	m.created = &s
	return &s, nil
}
func (m *mockSourceRepo) Delete(context.Context, int64, string) error         { return m.err }
func (m *mockSourceRepo) Successful(context.Context) ([]domain.Source, error) { return m.sources, m.err }
func (m *mockSourceRepo) History(context.Context) ([]domain.FeedHistory, error) {
	return []domain.FeedHistory{{ID: 1, SourceName: "EFE"}}, m.err
}
func (m *mockSourceRepo) Ingest(_ context.Context, req domain.IngestRequest, _ string) (*domain.IngestResult, error) {
	m.ingested = &req
	return &domain.IngestResult{Message: "ok", Count: 3}, m.err
}

type mockFeedProbe struct {
	preview *domain.FeedPreview
	err     error
	calls   int
}

func (m *mockFeedProbe) Probe(context.Context, string) (*domain.FeedPreview, error) {
	m.calls++
	return m.preview, m.err
}

type mockUserRepo struct {
	accounts []domain.Account
	role     domain.Role
	err      error
}

func (m *mockUserRepo) List(context.Context, string) ([]domain.Account, error) { return m.accounts, m.err }
func (m *mockUserRepo) Delete(context.Context, int64, string) error            { return m.err }
func (m *mockUserRepo) SetRole(_ context.Context, id int64, role domain.Role, _ string) (*domain.Account, error) {
	m.role = role
	return &domain.Account{ID: id, Role: role}, m.err
}

var (
	_ driven.ArticleRepository   = (*mockArticleRepo)(nil)
	_ driven.KnowledgeRepository = (*mockKnowledgeRepo)(nil)
	_ driven.AuthRepository      = (*mockAuthRepo)(nil)
	_ driven.TokenStore          = (*mockTokenStore)(nil)
	_ driven.TokenDecoder        = (*mockDecoder)(nil)
	_ driven.PromptStore         = (*mockPromptStore)(nil)
	_ driven.SourceRepository    = (*mockSourceRepo)(nil)
	_ driven.FeedProbe           = (*mockFeedProbe)(nil)
	_ driven.UserRepository      = (*mockUserRepo)(nil)
)
