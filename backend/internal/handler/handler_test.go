package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/kevinclancy/kboard/shared/domain"
	mw "github.com/kevinclancy/kboard/shared/middleware"
)

// --- Mocks ---

type MockBoardService struct {
	MockCreate  func(ctx context.Context, title domain.BoardTitle, description string) (domain.Board, error)
	MockList    func(ctx context.Context) ([]domain.Board, error)
	MockGet     func(ctx context.Context, id domain.BoardId) (domain.Board, error)
	MockThreads func(ctx context.Context, id domain.BoardId, pageSize, pageNumber int) (domain.ThreadPage, error)
}

func (m *MockBoardService) Create(ctx context.Context, title domain.BoardTitle, description string) (domain.Board, error) {
	if m.MockCreate != nil {
		return m.MockCreate(ctx, title, description)
	}
	return domain.Board{}, nil
}

func (m *MockBoardService) List(ctx context.Context) ([]domain.Board, error) {
	if m.MockList != nil {
		return m.MockList(ctx)
	}
	return []domain.Board{}, nil
}

func (m *MockBoardService) Get(ctx context.Context, id domain.BoardId) (domain.Board, error) {
	if m.MockGet != nil {
		return m.MockGet(ctx, id)
	}
	return domain.Board{Id: id}, nil
}

func (m *MockBoardService) Threads(ctx context.Context, id domain.BoardId, pageSize, pageNumber int) (domain.ThreadPage, error) {
	if m.MockThreads != nil {
		return m.MockThreads(ctx, id, pageSize, pageNumber)
	}
	return domain.ThreadPage{Threads: []domain.ThreadWithPoster{}}, nil
}

type MockThreadService struct {
	MockCreate func(ctx context.Context, poster domain.User, title domain.ThreadTitle, boardId domain.BoardId, body domain.ReplyBody) (domain.Thread, error)
	MockGet    func(ctx context.Context, boardId domain.BoardId, id domain.ThreadId) (domain.Thread, error)
}

func (m *MockThreadService) Create(ctx context.Context, poster domain.User, title domain.ThreadTitle, boardId domain.BoardId, body domain.ReplyBody) (domain.Thread, error) {
	if m.MockCreate != nil {
		return m.MockCreate(ctx, poster, title, boardId, body)
	}
	return domain.Thread{Id: 1}, nil
}

func (m *MockThreadService) Get(ctx context.Context, boardId domain.BoardId, id domain.ThreadId) (domain.Thread, error) {
	if m.MockGet != nil {
		return m.MockGet(ctx, boardId, id)
	}
	return domain.Thread{Id: id, BoardId: boardId}, nil
}

type MockReplyService struct {
	MockCreate   func(ctx context.Context, poster domain.User, threadId domain.ThreadId, body domain.ReplyBody, replyTo *domain.ReplyId) (domain.Reply, error)
	MockModerate func(ctx context.Context, requester domain.User, id domain.ReplyId, action string) (domain.Reply, error)
	MockEdit     func(ctx context.Context, requester domain.User, id domain.ReplyId, body domain.ReplyBody) (domain.Reply, error)
	MockByThread func(ctx context.Context, threadId domain.ThreadId, pageSize, pageNumber int) (domain.ReplyPage, error)
}

func (m *MockReplyService) Create(ctx context.Context, poster domain.User, threadId domain.ThreadId, body domain.ReplyBody, replyTo *domain.ReplyId) (domain.Reply, error) {
	if m.MockCreate != nil {
		return m.MockCreate(ctx, poster, threadId, body, replyTo)
	}
	return domain.Reply{Id: 1}, nil
}

func (m *MockReplyService) Moderate(ctx context.Context, requester domain.User, id domain.ReplyId, action string) (domain.Reply, error) {
	if m.MockModerate != nil {
		return m.MockModerate(ctx, requester, id, action)
	}
	return domain.Reply{Id: id}, nil
}

func (m *MockReplyService) Edit(ctx context.Context, requester domain.User, id domain.ReplyId, body domain.ReplyBody) (domain.Reply, error) {
	if m.MockEdit != nil {
		return m.MockEdit(ctx, requester, id, body)
	}
	return domain.Reply{Id: id, Body: body}, nil
}

func (m *MockReplyService) ByThread(ctx context.Context, threadId domain.ThreadId, pageSize, pageNumber int) (domain.ReplyPage, error) {
	if m.MockByThread != nil {
		return m.MockByThread(ctx, threadId, pageSize, pageNumber)
	}
	return domain.ReplyPage{Replies: []domain.ReplyView{}}, nil
}

type MockSearchService struct {
	MockReplies func(ctx context.Context, query string, limit int) ([]domain.SearchResult, error)
}

func (m *MockSearchService) Replies(ctx context.Context, query string, limit int) ([]domain.SearchResult, error) {
	if m.MockReplies != nil {
		return m.MockReplies(ctx, query, limit)
	}
	return []domain.SearchResult{}, nil
}

type MockUserService struct {
	MockUpdateName func(ctx context.Context, requester domain.User, id domain.UserId, name domain.UserName) (domain.User, error)
}

func (m *MockUserService) UpdateName(ctx context.Context, requester domain.User, id domain.UserId, name domain.UserName) (domain.User, error) {
	if m.MockUpdateName != nil {
		return m.MockUpdateName(ctx, requester, id, name)
	}
	return domain.User{Id: id, Name: name}, nil
}

type MockHealthChecker struct {
	err error
}

func (m *MockHealthChecker) Ping(ctx context.Context) error {
	return m.err
}

// echoRenderer wraps bodies so tests can tell rendered from raw text.
type echoRenderer struct{}

func (echoRenderer) Render(body string) string { return "<p>" + body + "</p>" }

// --- Helpers ---

func newTestHandler() *Handler {
	return New(Services{
		Board:  &MockBoardService{},
		Thread: &MockThreadService{},
		Reply:  &MockReplyService{},
		Search: &MockSearchService{},
		User:   &MockUserService{},
	}, echoRenderer{}, &MockHealthChecker{}, 10)
}

// withUser puts user into the request context the way the auth middleware does.
func withUser(user *domain.User) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if user != nil {
				r = r.WithContext(context.WithValue(r.Context(), mw.UserClaimsKey, user))
			}
			next.ServeHTTP(w, r)
		})
	}
}

func route(method, pattern string, h http.HandlerFunc, user *domain.User) *chi.Mux {
	r := chi.NewRouter()
	r.With(withUser(user)).Method(method, pattern, h)
	return r
}

func body(s string) *strings.Reader {
	return strings.NewReader(s)
}
