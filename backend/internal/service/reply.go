package service

import (
	"context"
	"fmt"
	"time"

	"github.com/kevinclancy/kboard/shared/domain"
	internal_errors "github.com/kevinclancy/kboard/shared/errors"
	"github.com/kevinclancy/kboard/shared/logger"
	"github.com/kevinclancy/kboard/shared/metrics"
)

type ReplyService interface {
	Create(ctx context.Context, poster domain.User, threadId domain.ThreadId, body domain.ReplyBody, replyTo *domain.ReplyId) (domain.Reply, error)
	Moderate(ctx context.Context, requester domain.User, id domain.ReplyId, action string) (domain.Reply, error)
	Edit(ctx context.Context, requester domain.User, id domain.ReplyId, body domain.ReplyBody) (domain.Reply, error)
	ByThread(ctx context.Context, threadId domain.ThreadId, pageSize, pageNumber int) (domain.ReplyPage, error)
}

type Reply struct {
	storage   ReplyStorage
	validator ReplyValidator
	now       Clock
}

type ReplyStorage interface {
	CreateReply(ctx context.Context, data domain.ReplyCreationData) (domain.Reply, error)
	Reply(ctx context.Context, id domain.ReplyId) (domain.Reply, error)
	SetReplyStatus(ctx context.Context, id domain.ReplyId, from, to domain.ReplyStatus) (domain.Reply, bool, error)
	UpdateReplyBody(ctx context.Context, id domain.ReplyId, body domain.ReplyBody, at time.Time) (domain.Reply, bool, error)
	RepliesByThread(ctx context.Context, threadId domain.ThreadId, page domain.Page) (domain.ReplyPage, error)
}

type ReplyValidator interface {
	Body(body string) error
}

func NewReply(storage ReplyStorage, validator ReplyValidator, now Clock) ReplyService {
	return &Reply{storage: storage, validator: validator, now: now}
}

var (
	errBadAction = internal_errors.BadRequest("action must be 'delete' or 'hide'")
	errNotLive   = internal_errors.BadRequest("reply is no longer live")
)

func (s *Reply) Create(ctx context.Context, poster domain.User, threadId domain.ThreadId, body domain.ReplyBody, replyTo *domain.ReplyId) (domain.Reply, error) {
	if err := canWrite(poster); err != nil {
		return domain.Reply{}, err
	}
	if err := s.validator.Body(body); err != nil {
		return domain.Reply{}, err
	}

	reply, err := s.storage.CreateReply(ctx, domain.ReplyCreationData{
		Body:      body,
		ThreadId:  threadId,
		Poster:    poster.Id,
		ReplyTo:   replyTo,
		CreatedAt: s.now(),
	})
	if err != nil {
		return domain.Reply{}, err
	}

	metrics.RepliesCreated.Inc()
	return reply, nil
}

// authorize decides whether requester may apply action to reply. Posters
// may delete their own replies, moderators may delete or hide any reply.
func authorize(requester domain.User, reply domain.Reply, action domain.ModerationAction) error {
	if requester.IsModerator {
		return nil
	}
	if action == domain.ActionDelete && requester.Id == reply.Poster {
		return nil
	}
	return internal_errors.Unauthorized(fmt.Sprintf("You are not allowed to %s this reply", action))
}

// Moderate moves a live reply to hidden or deleted. Both are terminal.
// Asking for the status a reply already has succeeds without writing, any
// other request against a non-live reply is rejected. Body and poster are
// never touched.
func (s *Reply) Moderate(ctx context.Context, requester domain.User, id domain.ReplyId, action string) (domain.Reply, error) {
	act := domain.ModerationAction(action)
	target, ok := act.TargetStatus()
	if !ok {
		return domain.Reply{}, errBadAction
	}
	if err := canWrite(requester); err != nil {
		return domain.Reply{}, err
	}

	reply, err := s.storage.Reply(ctx, id)
	if err != nil {
		return domain.Reply{}, err
	}
	if err := authorize(requester, reply, act); err != nil {
		metrics.ModerationActions.WithLabelValues(action, "rejected").Inc()
		return domain.Reply{}, err
	}

	if reply.Status != domain.ReplyLive {
		return s.settled(reply, target, act)
	}

	// the status may change between the read above and this write, so the
	// update only applies if the reply is still live
	updated, changed, err := s.storage.SetReplyStatus(ctx, id, domain.ReplyLive, target)
	if err != nil {
		return domain.Reply{}, err
	}
	if !changed {
		return s.settled(updated, target, act)
	}

	metrics.ModerationActions.WithLabelValues(action, "applied").Inc()
	logger.Log.Info("reply moderated", "reply_id", id, "action", action, "requester", requester.Id)
	return updated, nil
}

// settled handles a reply that is already out of the live state.
func (s *Reply) settled(reply domain.Reply, target domain.ReplyStatus, act domain.ModerationAction) (domain.Reply, error) {
	if reply.Status == target {
		metrics.ModerationActions.WithLabelValues(string(act), "noop").Inc()
		return reply, nil
	}
	metrics.ModerationActions.WithLabelValues(string(act), "rejected").Inc()
	return domain.Reply{}, errNotLive
}

// Edit replaces the body of a live reply. Only its poster may edit it.
func (s *Reply) Edit(ctx context.Context, requester domain.User, id domain.ReplyId, body domain.ReplyBody) (domain.Reply, error) {
	if err := canWrite(requester); err != nil {
		return domain.Reply{}, err
	}
	if err := s.validator.Body(body); err != nil {
		return domain.Reply{}, err
	}

	reply, err := s.storage.Reply(ctx, id)
	if err != nil {
		return domain.Reply{}, err
	}
	if reply.Poster != requester.Id {
		return domain.Reply{}, internal_errors.Unauthorized("You can only edit your own replies")
	}

	updated, changed, err := s.storage.UpdateReplyBody(ctx, id, body, s.now())
	if err != nil {
		return domain.Reply{}, err
	}
	if !changed {
		return domain.Reply{}, errNotLive
	}
	return updated, nil
}

// ByThread returns a page of replies exactly as stored. Visibility rules
// are applied by the presentation layer.
func (s *Reply) ByThread(ctx context.Context, threadId domain.ThreadId, pageSize, pageNumber int) (domain.ReplyPage, error) {
	return s.storage.RepliesByThread(ctx, threadId, domain.NewPage(pageSize, pageNumber))
}
