package pg

import (
	"context"
	"fmt"

	"github.com/kevinclancy/kboard/shared/domain"
)

// SearchReplies returns live replies whose body contains query as a
// case-sensitive substring, newest first. strpos avoids treating % and _ in
// the query as LIKE wildcards.
func (s *Storage) SearchReplies(ctx context.Context, query string, limit int) ([]domain.SearchResult, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT r.id, r.body, t.id, t.title, b.id, b.title, u.id, u.name
		FROM replies AS r
		JOIN threads AS t ON t.id = r.thread_id
		JOIN boards AS b ON b.id = t.board_id
		JOIN users AS u ON u.id = r.poster
		WHERE r.reply_status = $1 AND strpos(r.body, $2) > 0
		ORDER BY r.id DESC
		LIMIT $3
	`, domain.ReplyLive, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search replies: %w", err)
	}
	defer rows.Close()

	results := []domain.SearchResult{}
	for rows.Next() {
		var r domain.SearchResult
		if err := rows.Scan(&r.ReplyId, &r.ReplyBody, &r.ThreadId, &r.ThreadTitle,
			&r.BoardId, &r.BoardTitle, &r.PosterId, &r.PosterName); err != nil {
			return nil, fmt.Errorf("failed to scan search result: %w", err)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return results, nil
}
