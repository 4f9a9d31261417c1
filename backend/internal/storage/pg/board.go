package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/kevinclancy/kboard/shared/domain"
	internal_errors "github.com/kevinclancy/kboard/shared/errors"
	sharedpg "github.com/kevinclancy/kboard/shared/storage/pg"
)

const boardColumns = "id, title, description, num_threads, created_at, updated_at"

func scanBoard(row interface{ Scan(...any) error }) (domain.Board, error) {
	var b domain.Board
	err := row.Scan(&b.Id, &b.Title, &b.Description, &b.NumThreads, &b.CreatedAt, &b.UpdatedAt)
	return b, err
}

func (s *Storage) CreateBoard(ctx context.Context, data domain.BoardCreationData) (domain.Board, error) {
	now := s.now()
	board, err := scanBoard(s.db.QueryRowContext(ctx, `
		INSERT INTO boards (title, description, num_threads, created_at, updated_at)
		VALUES ($1, $2, 0, $3, $3)
		RETURNING `+boardColumns,
		data.Title, data.Description, now,
	))
	if err != nil {
		return domain.Board{}, fmt.Errorf("failed to insert board: %w", err)
	}
	return board, nil
}

func (s *Storage) Board(ctx context.Context, id domain.BoardId) (domain.Board, error) {
	board, err := scanBoard(s.db.QueryRowContext(ctx,
		"SELECT "+boardColumns+" FROM boards WHERE id = $1", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Board{}, internal_errors.NotFound("Board not found")
		}
		return domain.Board{}, fmt.Errorf("failed to fetch board: %w", err)
	}
	return board, nil
}

func (s *Storage) Boards(ctx context.Context) ([]domain.Board, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+boardColumns+" FROM boards ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to query boards: %w", err)
	}
	defer rows.Close()

	boards := []domain.Board{}
	for rows.Next() {
		b, err := scanBoard(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan board: %w", err)
		}
		boards = append(boards, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return boards, nil
}

// lockBoard takes a row lock on the board for the rest of the transaction.
func lockBoard(ctx context.Context, q sharedpg.Querier, id domain.BoardId) error {
	var locked domain.BoardId
	err := q.QueryRowContext(ctx, "SELECT id FROM boards WHERE id = $1 FOR UPDATE", id).Scan(&locked)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return internal_errors.NotFound("Board not found")
		}
		return fmt.Errorf("failed to lock board: %w", err)
	}
	return nil
}

// bumpBoardThreads increments num_threads. The board must already be locked
// by the caller, so a missing row here means the data changed under the lock.
func bumpBoardThreads(ctx context.Context, q sharedpg.Querier, id domain.BoardId) (int, error) {
	var n int
	err := q.QueryRowContext(ctx,
		"UPDATE boards SET num_threads = num_threads + 1 WHERE id = $1 RETURNING num_threads", id,
	).Scan(&n)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, internal_errors.IntegrityFault("board %d vanished while locked", id)
		}
		return 0, fmt.Errorf("failed to bump board thread counter: %w", err)
	}
	return n, nil
}
