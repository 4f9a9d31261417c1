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

const threadColumns = "t.id, t.title, t.description, t.board_id, t.poster, t.last_active, t.num_replies, t.created_at, t.updated_at"

func threadFields(t *domain.Thread) []any {
	return []any{&t.Id, &t.Title, &t.Description, &t.BoardId, &t.Poster, &t.LastActive, &t.NumReplies, &t.CreatedAt, &t.UpdatedAt}
}

// CreateThread inserts a thread together with its seed reply and bumps the
// board's thread counter. All three writes commit or none do.
func (s *Storage) CreateThread(ctx context.Context, data domain.ThreadCreationData) (domain.Thread, error) {
	now := s.stamp(data.CreatedAt)
	var thread domain.Thread

	err := sharedpg.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := lockBoard(ctx, tx, data.BoardId); err != nil {
			return err
		}

		// the seed reply is inserted below, so the thread starts at one reply
		err := tx.QueryRowContext(ctx, `
			INSERT INTO threads AS t (title, description, board_id, poster, last_active, num_replies, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, 1, $5, $5)
			RETURNING `+threadColumns,
			data.Title, data.Description, data.BoardId, data.Poster, now,
		).Scan(threadFields(&thread)...)
		if err != nil {
			return translateInsertError(err, "failed to insert thread")
		}

		if _, err := insertReply(ctx, tx, domain.ReplyCreationData{
			Body:      data.Body,
			ThreadId:  thread.Id,
			Poster:    data.Poster,
			CreatedAt: now,
		}); err != nil {
			return err
		}

		_, err = bumpBoardThreads(ctx, tx, data.BoardId)
		return err
	})
	if err != nil {
		if internal_errors.IsIntegrityFault(err) {
			metrics.IntegrityFaults.Inc()
			logger.Log.Error("thread creation hit integrity fault", "board_id", data.BoardId, "error", err)
		}
		return domain.Thread{}, err
	}
	return thread, nil
}

func (s *Storage) Thread(ctx context.Context, id domain.ThreadId) (domain.Thread, error) {
	var thread domain.Thread
	err := s.db.QueryRowContext(ctx,
		"SELECT "+threadColumns+" FROM threads AS t WHERE t.id = $1", id,
	).Scan(threadFields(&thread)...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Thread{}, internal_errors.NotFound("Thread not found")
		}
		return domain.Thread{}, fmt.Errorf("failed to fetch thread: %w", err)
	}
	return thread, nil
}

// ThreadsByBoard returns one page of the board's threads, most recently
// active first. Id breaks ties so pages never overlap.
func (s *Storage) ThreadsByBoard(ctx context.Context, boardId domain.BoardId, page domain.Page) ([]domain.ThreadWithPoster, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+threadColumns+`, u.name
		FROM threads AS t
		JOIN users AS u ON u.id = t.poster
		WHERE t.board_id = $1
		ORDER BY t.last_active DESC, t.id DESC
		LIMIT $2 OFFSET $3
	`, boardId, page.Limit(), page.Offset())
	if err != nil {
		return nil, fmt.Errorf("failed to query threads: %w", err)
	}
	defer rows.Close()

	threads := []domain.ThreadWithPoster{}
	for rows.Next() {
		var t domain.ThreadWithPoster
		if err := rows.Scan(append(threadFields(&t.Thread), &t.PosterName)...); err != nil {
			return nil, fmt.Errorf("failed to scan thread: %w", err)
		}
		threads = append(threads, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return threads, nil
}

func (s *Storage) ThreadCountByBoard(ctx context.Context, boardId domain.BoardId) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM threads WHERE board_id = $1", boardId).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count threads: %w", err)
	}
	return count, nil
}

// lockThread takes a row lock on the thread for the rest of the transaction.
func lockThread(ctx context.Context, q sharedpg.Querier, id domain.ThreadId) error {
	var locked domain.ThreadId
	err := q.QueryRowContext(ctx, "SELECT id FROM threads WHERE id = $1 FOR UPDATE", id).Scan(&locked)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return internal_errors.NotFound("Thread not found")
		}
		return fmt.Errorf("failed to lock thread: %w", err)
	}
	return nil
}

// bumpThreadReplies increments num_replies and moves last_active forward.
// The thread must already be locked by the caller.
func bumpThreadReplies(ctx context.Context, q sharedpg.Querier, id domain.ThreadId, at time.Time) (int, error) {
	var n int
	err := q.QueryRowContext(ctx, `
		UPDATE threads
		SET num_replies = num_replies + 1, last_active = GREATEST(last_active, $2)
		WHERE id = $1
		RETURNING num_replies
	`, id, at).Scan(&n)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, internal_errors.IntegrityFault("thread %d vanished while locked", id)
		}
		return 0, fmt.Errorf("failed to bump thread reply counter: %w", err)
	}
	return n, nil
}

// translateInsertError maps foreign key violations to NotFound. Anything
// else is wrapped as an infrastructure failure.
func translateInsertError(err error, msg string) error {
	code, constraint := sharedpg.ErrorCode(err)
	if code == sharedpg.ForeignKeyViolation {
		switch constraint {
		case "threads_poster_fkey", "replies_poster_fkey":
			return internal_errors.NotFound("User not found")
		case "threads_board_id_fkey":
			return internal_errors.NotFound("Board not found")
		case "replies_thread_id_fkey":
			return internal_errors.NotFound("Thread not found")
		case "replies_reply_to_fkey":
			return internal_errors.NotFound("Parent reply not found")
		}
	}
	return fmt.Errorf("%s: %w", msg, err)
}
