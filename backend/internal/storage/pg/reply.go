package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/kevinclancy/kboard/shared/domain"
	internal_errors "github.com/kevinclancy/kboard/shared/errors"
	"github.com/kevinclancy/kboard/shared/logger"
	"github.com/kevinclancy/kboard/shared/metrics"
	sharedpg "github.com/kevinclancy/kboard/shared/storage/pg"
)

const replyColumns = "r.id, r.body, r.thread_id, r.poster, r.reply_to, r.reply_status, r.created_at, r.updated_at"

func replyFields(r *domain.Reply, replyTo *sql.NullInt64) []any {
	return []any{&r.Id, &r.Body, &r.ThreadId, &r.Poster, replyTo, &r.Status, &r.CreatedAt, &r.UpdatedAt}
}

func nullableReplyId(n sql.NullInt64) *domain.ReplyId {
	if !n.Valid {
		return nil
	}
	id := n.Int64
	return &id
}

func scanReply(row interface{ Scan(...any) error }) (domain.Reply, error) {
	var r domain.Reply
	var replyTo sql.NullInt64
	if err := row.Scan(replyFields(&r, &replyTo)...); err != nil {
		return domain.Reply{}, err
	}
	r.ReplyTo = nullableReplyId(replyTo)
	return r, nil
}

// insertReply writes a live reply. Counters are left to the caller.
func insertReply(ctx context.Context, q sharedpg.Querier, data domain.ReplyCreationData) (domain.Reply, error) {
	reply, err := scanReply(q.QueryRowContext(ctx, `
		INSERT INTO replies AS r (body, thread_id, poster, reply_to, reply_status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		RETURNING `+replyColumns,
		data.Body, data.ThreadId, data.Poster, data.ReplyTo, domain.ReplyLive, data.CreatedAt,
	))
	if err != nil {
		return domain.Reply{}, translateInsertError(err, "failed to insert reply")
	}
	return reply, nil
}

// CreateReply appends a reply to a thread and bumps the thread's reply
// counter and last activity in the same transaction.
func (s *Storage) CreateReply(ctx context.Context, data domain.ReplyCreationData) (domain.Reply, error) {
	data.CreatedAt = s.stamp(data.CreatedAt)
	var reply domain.Reply

	err := sharedpg.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := lockThread(ctx, tx, data.ThreadId); err != nil {
			return err
		}

		if data.ReplyTo != nil {
			var parentThread domain.ThreadId
			err := tx.QueryRowContext(ctx, "SELECT thread_id FROM replies WHERE id = $1", *data.ReplyTo).Scan(&parentThread)
			if err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					return internal_errors.NotFound("Parent reply not found")
				}
				return fmt.Errorf("failed to fetch parent reply: %w", err)
			}
			if parentThread != data.ThreadId {
				return internal_errors.BadRequest("Parent reply belongs to another thread")
			}
		}

		var err error
		reply, err = insertReply(ctx, tx, data)
		if err != nil {
			return err
		}

		_, err = bumpThreadReplies(ctx, tx, data.ThreadId, data.CreatedAt)
		return err
	})
	if err != nil {
		if internal_errors.IsIntegrityFault(err) {
			metrics.IntegrityFaults.Inc()
			logger.Log.Error("reply creation hit integrity fault", "thread_id", data.ThreadId, "error", err)
		}
		return domain.Reply{}, err
	}
	return reply, nil
}

func (s *Storage) Reply(ctx context.Context, id domain.ReplyId) (domain.Reply, error) {
	reply, err := scanReply(s.db.QueryRowContext(ctx,
		"SELECT "+replyColumns+" FROM replies AS r WHERE r.id = $1", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Reply{}, internal_errors.NotFound("Reply not found")
		}
		return domain.Reply{}, fmt.Errorf("failed to fetch reply: %w", err)
	}
	return reply, nil
}

// SetReplyStatus moves a reply from one status to another in a single
// conditional update. Only reply_status is written, body and timestamps
// stay as they were. When the reply is not in status from, nothing is
// written and the current row is returned with changed=false.
func (s *Storage) SetReplyStatus(ctx context.Context, id domain.ReplyId, from, to domain.ReplyStatus) (reply domain.Reply, changed bool, err error) {
	reply, err = scanReply(s.db.QueryRowContext(ctx, `
		UPDATE replies AS r SET reply_status = $3
		WHERE r.id = $1 AND r.reply_status = $2
		RETURNING `+replyColumns,
		id, from, to,
	))
	if err == nil {
		return reply, true, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return domain.Reply{}, false, fmt.Errorf("failed to update reply status: %w", err)
	}
	reply, err = s.Reply(ctx, id)
	return reply, false, err
}

// UpdateReplyBody rewrites the body of a live reply. Replies that are no
// longer live are returned untouched with changed=false.
func (s *Storage) UpdateReplyBody(ctx context.Context, id domain.ReplyId, body domain.ReplyBody, at time.Time) (reply domain.Reply, changed bool, err error) {
	reply, err = scanReply(s.db.QueryRowContext(ctx, `
		UPDATE replies AS r SET body = $2, updated_at = $3
		WHERE r.id = $1 AND r.reply_status = $4
		RETURNING `+replyColumns,
		id, body, s.stamp(at), domain.ReplyLive,
	))
	if err == nil {
		return reply, true, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return domain.Reply{}, false, fmt.Errorf("failed to update reply body: %w", err)
	}
	reply, err = s.Reply(ctx, id)
	return reply, false, err
}

// RepliesByThread returns one page of a thread's replies in insertion order,
// each joined with its poster and, if it answers another reply, that parent.
// TotalCount is the thread's stored counter.
func (s *Storage) RepliesByThread(ctx context.Context, threadId domain.ThreadId, page domain.Page) (domain.ReplyPage, error) {
	result := domain.ReplyPage{Replies: []domain.ReplyView{}}
	err := s.db.QueryRowContext(ctx,
		"SELECT title, num_replies FROM threads WHERE id = $1", threadId,
	).Scan(&result.ThreadTitle, &result.TotalCount)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ReplyPage{}, internal_errors.NotFound("Thread not found")
		}
		return domain.ReplyPage{}, fmt.Errorf("failed to fetch thread header: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+replyColumns+`, u.name, u.is_banned, p.id, p.body, p.reply_status
		FROM replies AS r
		JOIN users AS u ON u.id = r.poster
		LEFT JOIN replies AS p ON p.id = r.reply_to
		WHERE r.thread_id = $1
		ORDER BY r.id ASC
		LIMIT $2 OFFSET $3
	`, threadId, page.Limit(), page.Offset())
	if err != nil {
		return domain.ReplyPage{}, fmt.Errorf("failed to query replies: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			v            domain.ReplyView
			replyTo      sql.NullInt64
			parentId     sql.NullInt64
			parentBody   sql.NullString
			parentStatus sql.NullInt16
		)
		fields := append(replyFields(&v.Reply, &replyTo), &v.PosterName, &v.PosterBanned, &parentId, &parentBody, &parentStatus)
		if err := rows.Scan(fields...); err != nil {
			return domain.ReplyPage{}, fmt.Errorf("failed to scan reply: %w", err)
		}
		v.ReplyTo = nullableReplyId(replyTo)

		parent, err := parentOf(v.Id, replyTo, parentId, parentBody, parentStatus)
		if err != nil {
			metrics.IntegrityFaults.Inc()
			logger.Log.Error("reply parent join is inconsistent", "thread_id", threadId, "reply_id", v.Id, "error", err)
			return domain.ReplyPage{}, err
		}
		v.Parent = parent
		result.Replies = append(result.Replies, v)
	}
	if err := rows.Err(); err != nil {
		return domain.ReplyPage{}, fmt.Errorf("rows iteration error: %w", err)
	}
	return result, nil
}

// parentOf checks that reply_to and the joined parent columns are all set or
// all unset and builds the parent excerpt from them.
func parentOf(id domain.ReplyId, replyTo, parentId sql.NullInt64, body sql.NullString, status sql.NullInt16) (*domain.ParentReply, error) {
	switch {
	case !replyTo.Valid && !parentId.Valid && !body.Valid && !status.Valid:
		return nil, nil
	case replyTo.Valid && parentId.Valid && body.Valid && status.Valid:
		if replyTo.Int64 != parentId.Int64 {
			return nil, internal_errors.IntegrityFault("reply %d points at %d but joined parent %d", id, replyTo.Int64, parentId.Int64)
		}
		if !domain.ReplyStatus(status.Int16).Valid() {
			return nil, internal_errors.IntegrityFault("reply %d has parent %d with unknown status %d", id, parentId.Int64, status.Int16)
		}
		return &domain.ParentReply{
			Id:     parentId.Int64,
			Body:   body.String,
			Status: domain.ReplyStatus(status.Int16),
		}, nil
	default:
		return nil, internal_errors.IntegrityFault(
			"reply %d has partial parent data (reply_to=%v id=%v body=%v status=%v)",
			id, replyTo.Valid, parentId.Valid, body.Valid, status.Valid)
	}
}
