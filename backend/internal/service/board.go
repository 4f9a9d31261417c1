package service

import (
	"context"

	"github.com/kevinclancy/kboard/shared/domain"
)

// to mock service in tests
type BoardService interface {
	Create(ctx context.Context, title domain.BoardTitle, description string) (domain.Board, error)
	List(ctx context.Context) ([]domain.Board, error)
	Get(ctx context.Context, id domain.BoardId) (domain.Board, error)
	Threads(ctx context.Context, id domain.BoardId, pageSize, pageNumber int) (domain.ThreadPage, error)
}

type Board struct {
	storage   BoardStorage
	validator BoardValidator
}

type BoardStorage interface {
	CreateBoard(ctx context.Context, data domain.BoardCreationData) (domain.Board, error)
	Boards(ctx context.Context) ([]domain.Board, error)
	Board(ctx context.Context, id domain.BoardId) (domain.Board, error)
	ThreadsByBoard(ctx context.Context, boardId domain.BoardId, page domain.Page) ([]domain.ThreadWithPoster, error)
	ThreadCountByBoard(ctx context.Context, boardId domain.BoardId) (int64, error)
}

type BoardValidator interface {
	Title(title string) error
}

func NewBoard(storage BoardStorage, validator BoardValidator) BoardService {
	return &Board{storage: storage, validator: validator}
}

func (b *Board) Create(ctx context.Context, title domain.BoardTitle, description string) (domain.Board, error) {
	if err := b.validator.Title(title); err != nil {
		return domain.Board{}, err
	}
	return b.storage.CreateBoard(ctx, domain.BoardCreationData{Title: title, Description: description})
}

func (b *Board) List(ctx context.Context) ([]domain.Board, error) {
	return b.storage.Boards(ctx)
}

func (b *Board) Get(ctx context.Context, id domain.BoardId) (domain.Board, error) {
	return b.storage.Board(ctx, id)
}

// Threads returns one page of the board plus the board's total thread
// count. Out of range page parameters are clamped, never rejected. A board
// that does not exist reads as empty.
func (b *Board) Threads(ctx context.Context, id domain.BoardId, pageSize, pageNumber int) (domain.ThreadPage, error) {
	page := domain.NewPage(pageSize, pageNumber)

	threads, err := b.storage.ThreadsByBoard(ctx, id, page)
	if err != nil {
		return domain.ThreadPage{}, err
	}
	count, err := b.storage.ThreadCountByBoard(ctx, id)
	if err != nil {
		return domain.ThreadPage{}, err
	}
	if threads == nil {
		threads = []domain.ThreadWithPoster{}
	}
	return domain.ThreadPage{Threads: threads, TotalCount: count}, nil
}
