package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/threadly-dev/threadly/internal/config"
	"github.com/threadly-dev/threadly/internal/domain"
	mw "github.com/threadly-dev/threadly/internal/middleware"
)

// --- Mock services ---

type MockAuthService struct {
	registerFunc          func(username domain.Username, password string) (string, error)
	loginFunc             func(username domain.Username, password string) (string, error)
	usernameAvailableFunc func(username domain.Username) (bool, error)
	accountFunc           func(id domain.AccountId) (domain.Account, error)
}

func (m *MockAuthService) Register(username domain.Username, password string) (string, error) {
	if m.registerFunc != nil {
		return m.registerFunc(username, password)
	}
	return "token", nil
}

func (m *MockAuthService) Login(username domain.Username, password string) (string, error) {
	if m.loginFunc != nil {
		return m.loginFunc(username, password)
	}
	return "token", nil
}

func (m *MockAuthService) UsernameAvailable(username domain.Username) (bool, error) {
	if m.usernameAvailableFunc != nil {
		return m.usernameAvailableFunc(username)
	}
	return true, nil
}

func (m *MockAuthService) Account(id domain.AccountId) (domain.Account, error) {
	if m.accountFunc != nil {
		return m.accountFunc(id)
	}
	return domain.Account{Id: id, Username: "someone"}, nil
}

type MockForumService struct {
	sectionsFunc      func() ([]domain.Section, error)
	pageFunc          func(id domain.ForumId, page int) (domain.ForumPage, error)
	latestFunc        func(id domain.ForumId) (domain.ThreadMetadata, error)
	createSectionFunc func(name string, actor *domain.Account) (domain.SectionId, error)
	createForumFunc   func(sectionId domain.SectionId, name, description string, actor *domain.Account) (domain.ForumId, error)
}

func (m *MockForumService) Sections() ([]domain.Section, error) {
	if m.sectionsFunc != nil {
		return m.sectionsFunc()
	}
	return nil, nil
}

func (m *MockForumService) Page(id domain.ForumId, page int) (domain.ForumPage, error) {
	if m.pageFunc != nil {
		return m.pageFunc(id, page)
	}
	return domain.ForumPage{Page: page}, nil
}

func (m *MockForumService) Latest(id domain.ForumId) (domain.ThreadMetadata, error) {
	if m.latestFunc != nil {
		return m.latestFunc(id)
	}
	return domain.ThreadMetadata{}, nil
}

func (m *MockForumService) CreateSection(name string, actor *domain.Account) (domain.SectionId, error) {
	if m.createSectionFunc != nil {
		return m.createSectionFunc(name, actor)
	}
	return 1, nil
}

func (m *MockForumService) CreateForum(sectionId domain.SectionId, name, description string, actor *domain.Account) (domain.ForumId, error) {
	if m.createForumFunc != nil {
		return m.createForumFunc(sectionId, name, description, actor)
	}
	return 1, nil
}

type MockThreadService struct {
	createFunc func(creationData domain.ThreadCreationData, now time.Time) (domain.ThreadId, error)
	getFunc    func(id domain.ThreadId) (domain.Thread, error)
	deleteFunc func(id domain.ThreadId, actor *domain.Account) error
	setPinFunc func(id domain.ThreadId, pinned bool, actor *domain.Account) error
}

func (m *MockThreadService) Create(creationData domain.ThreadCreationData, now time.Time) (domain.ThreadId, error) {
	if m.createFunc != nil {
		return m.createFunc(creationData, now)
	}
	return 1, nil
}

func (m *MockThreadService) Get(id domain.ThreadId) (domain.Thread, error) {
	if m.getFunc != nil {
		return m.getFunc(id)
	}
	return domain.Thread{ThreadMetadata: domain.ThreadMetadata{Id: id}}, nil
}

func (m *MockThreadService) Delete(id domain.ThreadId, actor *domain.Account) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(id, actor)
	}
	return nil
}

func (m *MockThreadService) SetPin(id domain.ThreadId, pinned bool, actor *domain.Account) error {
	if m.setPinFunc != nil {
		return m.setPinFunc(id, pinned, actor)
	}
	return nil
}

type MockResponseService struct {
	createFunc func(creationData domain.ResponseCreationData, now time.Time) (domain.Response, error)
	getFunc    func(id domain.ResponseId) (domain.Response, error)
	editFunc   func(id domain.ResponseId, message domain.MessageText, actor *domain.Account) error
	deleteFunc func(id domain.ResponseId, actor *domain.Account) error
}

func (m *MockResponseService) Create(creationData domain.ResponseCreationData, now time.Time) (domain.Response, error) {
	if m.createFunc != nil {
		return m.createFunc(creationData, now)
	}
	return domain.Response{Id: 1, Thread: creationData.Thread, Message: creationData.Message, OrderInThread: 2}, nil
}

func (m *MockResponseService) Get(id domain.ResponseId) (domain.Response, error) {
	if m.getFunc != nil {
		return m.getFunc(id)
	}
	return domain.Response{Id: id}, nil
}

func (m *MockResponseService) Edit(id domain.ResponseId, message domain.MessageText, actor *domain.Account) error {
	if m.editFunc != nil {
		return m.editFunc(id, message, actor)
	}
	return nil
}

func (m *MockResponseService) Delete(id domain.ResponseId, actor *domain.Account) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(id, actor)
	}
	return nil
}

type MockReactionService struct {
	voteFunc    func(responseId domain.ResponseId, accountId domain.AccountId, like bool) (domain.VoteOutcome, error)
	currentFunc func(responseId domain.ResponseId, accountId domain.AccountId) (*domain.Reaction, error)
}

func (m *MockReactionService) Vote(responseId domain.ResponseId, accountId domain.AccountId, like bool) (domain.VoteOutcome, error) {
	if m.voteFunc != nil {
		return m.voteFunc(responseId, accountId, like)
	}
	return domain.VoteCreated, nil
}

func (m *MockReactionService) Current(responseId domain.ResponseId, accountId domain.AccountId) (*domain.Reaction, error) {
	if m.currentFunc != nil {
		return m.currentFunc(responseId, accountId)
	}
	return nil, nil
}

type MockModerationService struct {
	isRestrictedFunc func(accountId domain.AccountId, now time.Time) (bool, *time.Time, error)
	guardFunc        func(accountId domain.AccountId, now time.Time) error
	setBanFunc       func(accountId domain.AccountId, until time.Time, actor *domain.Account) error
}

func (m *MockModerationService) IsRestricted(accountId domain.AccountId, now time.Time) (bool, *time.Time, error) {
	if m.isRestrictedFunc != nil {
		return m.isRestrictedFunc(accountId, now)
	}
	return false, nil, nil
}

func (m *MockModerationService) Guard(accountId domain.AccountId, now time.Time) error {
	if m.guardFunc != nil {
		return m.guardFunc(accountId, now)
	}
	return nil
}

func (m *MockModerationService) SetBan(accountId domain.AccountId, until time.Time, actor *domain.Account) error {
	if m.setBanFunc != nil {
		return m.setBanFunc(accountId, until, actor)
	}
	return nil
}

type MockPinger struct {
	pingFunc func(ctx context.Context) error
}

func (m *MockPinger) Ping(ctx context.Context) error {
	if m.pingFunc != nil {
		return m.pingFunc(ctx)
	}
	return nil
}

// --- Helpers ---

type testMocks struct {
	auth       *MockAuthService
	forum      *MockForumService
	thread     *MockThreadService
	response   *MockResponseService
	reaction   *MockReactionService
	moderation *MockModerationService
	pinger     *MockPinger
}

func newTestHandler() (*Handler, *testMocks) {
	mocks := &testMocks{
		auth:       &MockAuthService{},
		forum:      &MockForumService{},
		thread:     &MockThreadService{},
		response:   &MockResponseService{},
		reaction:   &MockReactionService{},
		moderation: &MockModerationService{},
		pinger:     &MockPinger{},
	}
	cfg := &config.Config{Public: config.Public{JwtTTL: config.Duration(time.Hour)}}
	h := New(mocks.auth, mocks.forum, mocks.thread, mocks.response, mocks.reaction, mocks.moderation, mocks.pinger, cfg)
	return h, mocks
}

// injectAccount mimics the auth middleware for routes under test.
func injectAccount(account *domain.Account) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if account != nil {
				r = mw.WithAccount(r, account)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// newTestRouter registers the handler's route tree with the given account
// pre-authenticated (nil for anonymous requests).
func newTestRouter(h *Handler, account *domain.Account) chi.Router {
	r := chi.NewRouter()
	r.Use(injectAccount(account))

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Post("/v1/auth/signup", h.Signup)
	r.Post("/v1/auth/login", h.Login)
	r.Get("/v1/auth/validate_username/{username}", h.ValidateUsername)
	r.Get("/v1/sections", h.GetSections)
	r.Get("/v1/forums/{forum}", h.GetForum)
	r.Get("/v1/forums/{forum}/latest", h.GetLatestThread)
	r.Post("/v1/forums/{forum}/threads", h.CreateThread)
	r.Get("/v1/threads/{thread}", h.GetThread)
	r.Delete("/v1/threads/{thread}", h.DeleteThread)
	r.Put("/v1/threads/{thread}/pin", h.SetPin)
	r.Post("/v1/threads/{thread}/responses", h.CreateResponse)
	r.Put("/v1/responses/{response}", h.EditResponse)
	r.Delete("/v1/responses/{response}", h.DeleteResponse)
	r.Put("/v1/responses/{response}/vote", h.Vote)
	r.Get("/v1/accounts/{account}", h.GetAccount)
	r.Put("/v1/accounts/{account}/ban", h.BanAccount)
	r.Post("/v1/admin/sections", h.CreateSection)
	r.Post("/v1/admin/forums", h.CreateForum)

	return r
}
