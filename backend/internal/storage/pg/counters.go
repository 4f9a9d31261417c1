package pg

import (
	"context"
	"fmt"

	"github.com/kevinclancy/kboard/shared/domain"
)

// VerifyCounters recounts threads per board and replies per thread and
// reports every stored counter that disagrees. It never repairs.
func (s *Storage) VerifyCounters(ctx context.Context) ([]domain.CounterDrift, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT 'boards', b.id, b.num_threads, COUNT(t.id)
		FROM boards AS b
		LEFT JOIN threads AS t ON t.board_id = b.id
		GROUP BY b.id
		HAVING b.num_threads <> COUNT(t.id)
		UNION ALL
		SELECT 'threads', t.id, t.num_replies, COUNT(r.id)
		FROM threads AS t
		LEFT JOIN replies AS r ON r.thread_id = t.id
		GROUP BY t.id
		HAVING t.num_replies <> COUNT(r.id)
		ORDER BY 1, 2
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to recount: %w", err)
	}
	defer rows.Close()

	drifts := []domain.CounterDrift{}
	for rows.Next() {
		var d domain.CounterDrift
		if err := rows.Scan(&d.Table, &d.Id, &d.Stored, &d.Recount); err != nil {
			return nil, fmt.Errorf("failed to scan drift: %w", err)
		}
		drifts = append(drifts, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return drifts, nil
}
