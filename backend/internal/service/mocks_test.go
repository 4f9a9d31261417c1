package service

import (
	"context"
	"time"

	"github.com/kevinclancy/kboard/shared/domain"
)

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

// MockValidator accepts everything unless a func is set.
type MockValidator struct {
	titleFunc func(string) error
	bodyFunc  func(string) error
	nameFunc  func(string) error
}

func (m *MockValidator) Title(s string) error {
	if m.titleFunc != nil {
		return m.titleFunc(s)
	}
	return nil
}

func (m *MockValidator) Body(s string) error {
	if m.bodyFunc != nil {
		return m.bodyFunc(s)
	}
	return nil
}

func (m *MockValidator) Name(s string) error {
	if m.nameFunc != nil {
		return m.nameFunc(s)
	}
	return nil
}

// MockThreadStorage mocks the ThreadStorage interface.
type MockThreadStorage struct {
	createThreadFunc func(ctx context.Context, data domain.ThreadCreationData) (domain.Thread, error)
	threadFunc       func(ctx context.Context, id domain.ThreadId) (domain.Thread, error)
}

func (m *MockThreadStorage) CreateThread(ctx context.Context, data domain.ThreadCreationData) (domain.Thread, error) {
	if m.createThreadFunc != nil {
		return m.createThreadFunc(ctx, data)
	}
	return domain.Thread{Id: 1, Title: data.Title, BoardId: data.BoardId, NumReplies: 1}, nil
}

func (m *MockThreadStorage) Thread(ctx context.Context, id domain.ThreadId) (domain.Thread, error) {
	if m.threadFunc != nil {
		return m.threadFunc(ctx, id)
	}
	return domain.Thread{Id: id, BoardId: 1, NumReplies: 1}, nil
}

// MockBoardStorage mocks the BoardStorage interface.
type MockBoardStorage struct {
	createBoardFunc        func(ctx context.Context, data domain.BoardCreationData) (domain.Board, error)
	boardsFunc             func(ctx context.Context) ([]domain.Board, error)
	boardFunc              func(ctx context.Context, id domain.BoardId) (domain.Board, error)
	threadsByBoardFunc     func(ctx context.Context, id domain.BoardId, page domain.Page) ([]domain.ThreadWithPoster, error)
	threadCountByBoardFunc func(ctx context.Context, id domain.BoardId) (int64, error)
}

func (m *MockBoardStorage) CreateBoard(ctx context.Context, data domain.BoardCreationData) (domain.Board, error) {
	if m.createBoardFunc != nil {
		return m.createBoardFunc(ctx, data)
	}
	return domain.Board{Id: 1, Title: data.Title, Description: data.Description}, nil
}

func (m *MockBoardStorage) Boards(ctx context.Context) ([]domain.Board, error) {
	if m.boardsFunc != nil {
		return m.boardsFunc(ctx)
	}
	return []domain.Board{}, nil
}

func (m *MockBoardStorage) Board(ctx context.Context, id domain.BoardId) (domain.Board, error) {
	if m.boardFunc != nil {
		return m.boardFunc(ctx, id)
	}
	return domain.Board{Id: id}, nil
}

func (m *MockBoardStorage) ThreadsByBoard(ctx context.Context, id domain.BoardId, page domain.Page) ([]domain.ThreadWithPoster, error) {
	if m.threadsByBoardFunc != nil {
		return m.threadsByBoardFunc(ctx, id, page)
	}
	return nil, nil
}

func (m *MockBoardStorage) ThreadCountByBoard(ctx context.Context, id domain.BoardId) (int64, error) {
	if m.threadCountByBoardFunc != nil {
		return m.threadCountByBoardFunc(ctx, id)
	}
	return 0, nil
}

// MockReplyStorage mocks the ReplyStorage interface.
type MockReplyStorage struct {
	createReplyFunc     func(ctx context.Context, data domain.ReplyCreationData) (domain.Reply, error)
	replyFunc           func(ctx context.Context, id domain.ReplyId) (domain.Reply, error)
	setReplyStatusFunc  func(ctx context.Context, id domain.ReplyId, from, to domain.ReplyStatus) (domain.Reply, bool, error)
	updateReplyBodyFunc func(ctx context.Context, id domain.ReplyId, body domain.ReplyBody, at time.Time) (domain.Reply, bool, error)
	repliesByThreadFunc func(ctx context.Context, id domain.ThreadId, page domain.Page) (domain.ReplyPage, error)

	setReplyStatusCalls int
}

func (m *MockReplyStorage) CreateReply(ctx context.Context, data domain.ReplyCreationData) (domain.Reply, error) {
	if m.createReplyFunc != nil {
		return m.createReplyFunc(ctx, data)
	}
	return domain.Reply{Id: 1, Body: data.Body, ThreadId: data.ThreadId, Poster: data.Poster, ReplyTo: data.ReplyTo, Status: domain.ReplyLive}, nil
}

func (m *MockReplyStorage) Reply(ctx context.Context, id domain.ReplyId) (domain.Reply, error) {
	if m.replyFunc != nil {
		return m.replyFunc(ctx, id)
	}
	return domain.Reply{Id: id, Status: domain.ReplyLive}, nil
}

func (m *MockReplyStorage) SetReplyStatus(ctx context.Context, id domain.ReplyId, from, to domain.ReplyStatus) (domain.Reply, bool, error) {
	m.setReplyStatusCalls++
	if m.setReplyStatusFunc != nil {
		return m.setReplyStatusFunc(ctx, id, from, to)
	}
	return domain.Reply{Id: id, Status: to}, true, nil
}

func (m *MockReplyStorage) UpdateReplyBody(ctx context.Context, id domain.ReplyId, body domain.ReplyBody, at time.Time) (domain.Reply, bool, error) {
	if m.updateReplyBodyFunc != nil {
		return m.updateReplyBodyFunc(ctx, id, body, at)
	}
	return domain.Reply{Id: id, Body: body, Status: domain.ReplyLive, UpdatedAt: at}, true, nil
}

func (m *MockReplyStorage) RepliesByThread(ctx context.Context, id domain.ThreadId, page domain.Page) (domain.ReplyPage, error) {
	if m.repliesByThreadFunc != nil {
		return m.repliesByThreadFunc(ctx, id, page)
	}
	return domain.ReplyPage{Replies: []domain.ReplyView{}}, nil
}

// MockSearchStorage mocks the SearchStorage interface.
type MockSearchStorage struct {
	searchRepliesFunc func(ctx context.Context, query string, limit int) ([]domain.SearchResult, error)
	calls             int
}

func (m *MockSearchStorage) SearchReplies(ctx context.Context, query string, limit int) ([]domain.SearchResult, error) {
	m.calls++
	if m.searchRepliesFunc != nil {
		return m.searchRepliesFunc(ctx, query, limit)
	}
	return []domain.SearchResult{}, nil
}

// MockUserStorage mocks both UserStorage and UserAdminStorage.
type MockUserStorage struct {
	userByIdFunc                 func(ctx context.Context, id domain.UserId) (domain.User, error)
	updateUserNameFunc           func(ctx context.Context, id domain.UserId, name domain.UserName) (domain.User, error)
	createUserFunc               func(ctx context.Context, data domain.UserCreationData) (domain.User, error)
	userByEmailFunc              func(ctx context.Context, email domain.Email) (domain.User, error)
	setModeratorFunc             func(ctx context.Context, id domain.UserId, moderator bool) (domain.User, error)
	setBannedFunc                func(ctx context.Context, id domain.UserId, banned bool) (domain.User, error)
	countUsersCreatedBetweenFunc func(ctx context.Context, from, to time.Time) (int64, error)
}

func (m *MockUserStorage) UserById(ctx context.Context, id domain.UserId) (domain.User, error) {
	if m.userByIdFunc != nil {
		return m.userByIdFunc(ctx, id)
	}
	return domain.User{Id: id}, nil
}

func (m *MockUserStorage) UpdateUserName(ctx context.Context, id domain.UserId, name domain.UserName) (domain.User, error) {
	if m.updateUserNameFunc != nil {
		return m.updateUserNameFunc(ctx, id, name)
	}
	return domain.User{Id: id, Name: name}, nil
}

func (m *MockUserStorage) CreateUser(ctx context.Context, data domain.UserCreationData) (domain.User, error) {
	if m.createUserFunc != nil {
		return m.createUserFunc(ctx, data)
	}
	return domain.User{Id: 1, Email: data.Email, Name: data.Name, PassHash: data.PassHash, IsModerator: data.IsModerator}, nil
}

func (m *MockUserStorage) UserByEmail(ctx context.Context, email domain.Email) (domain.User, error) {
	if m.userByEmailFunc != nil {
		return m.userByEmailFunc(ctx, email)
	}
	return domain.User{Id: 1, Email: email}, nil
}

func (m *MockUserStorage) SetModerator(ctx context.Context, id domain.UserId, moderator bool) (domain.User, error) {
	if m.setModeratorFunc != nil {
		return m.setModeratorFunc(ctx, id, moderator)
	}
	return domain.User{Id: id, IsModerator: moderator}, nil
}

func (m *MockUserStorage) SetBanned(ctx context.Context, id domain.UserId, banned bool) (domain.User, error) {
	if m.setBannedFunc != nil {
		return m.setBannedFunc(ctx, id, banned)
	}
	return domain.User{Id: id, IsBanned: banned}, nil
}

func (m *MockUserStorage) CountUsersCreatedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	if m.countUsersCreatedBetweenFunc != nil {
		return m.countUsersCreatedBetweenFunc(ctx, from, to)
	}
	return 0, nil
}

// MockTokenIssuer mocks the TokenIssuer interface.
type MockTokenIssuer struct {
	newTokenFunc func(user domain.User) (string, error)
}

func (m *MockTokenIssuer) NewToken(user domain.User) (string, error) {
	if m.newTokenFunc != nil {
		return m.newTokenFunc(user)
	}
	return "token", nil
}
