package service

import (
	"context"

	"github.com/kevinclancy/kboard/shared/domain"
	internal_errors "github.com/kevinclancy/kboard/shared/errors"
	"github.com/kevinclancy/kboard/shared/logger"
	"github.com/kevinclancy/kboard/shared/metrics"
)

type ThreadService interface {
	Create(ctx context.Context, poster domain.User, title domain.ThreadTitle, boardId domain.BoardId, body domain.ReplyBody) (domain.Thread, error)
	Get(ctx context.Context, boardId domain.BoardId, id domain.ThreadId) (domain.Thread, error)
}

type Thread struct {
	storage   ThreadStorage
	validator ThreadValidator
	now       Clock
}

type ThreadStorage interface {
	CreateThread(ctx context.Context, data domain.ThreadCreationData) (domain.Thread, error)
	Thread(ctx context.Context, id domain.ThreadId) (domain.Thread, error)
}

type ThreadValidator interface {
	Title(title string) error
	Body(body string) error
}

func NewThread(storage ThreadStorage, validator ThreadValidator, now Clock) ThreadService {
	return &Thread{storage: storage, validator: validator, now: now}
}

// Create opens a thread with body as its seed reply. The thread, the seed
// reply and the board counter are committed together.
func (s *Thread) Create(ctx context.Context, poster domain.User, title domain.ThreadTitle, boardId domain.BoardId, body domain.ReplyBody) (domain.Thread, error) {
	if err := canWrite(poster); err != nil {
		return domain.Thread{}, err
	}
	if err := s.validator.Title(title); err != nil {
		return domain.Thread{}, err
	}
	if err := s.validator.Body(body); err != nil {
		return domain.Thread{}, err
	}

	thread, err := s.storage.CreateThread(ctx, domain.ThreadCreationData{
		Title:     title,
		BoardId:   boardId,
		Poster:    poster.Id,
		Body:      body,
		CreatedAt: s.now(),
	})
	if err != nil {
		return domain.Thread{}, err
	}

	metrics.ThreadsCreated.Inc()
	logger.Log.Info("thread created", "thread_id", thread.Id, "board_id", boardId, "poster", poster.Id)
	return thread, nil
}

// Get returns a thread with its counters. A thread that exists on another
// board is reported as not found.
func (s *Thread) Get(ctx context.Context, boardId domain.BoardId, id domain.ThreadId) (domain.Thread, error) {
	thread, err := s.storage.Thread(ctx, id)
	if err != nil {
		return domain.Thread{}, err
	}
	if thread.BoardId != boardId {
		return domain.Thread{}, internal_errors.NotFound("Thread not found")
	}
	return thread, nil
}
