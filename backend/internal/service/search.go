package service

import (
	"context"
	"strings"

	"github.com/kevinclancy/kboard/shared/domain"
)

type SearchService interface {
	Replies(ctx context.Context, query string, limit int) ([]domain.SearchResult, error)
}

type Search struct {
	storage      SearchStorage
	defaultLimit int
	maxLimit     int
}

type SearchStorage interface {
	SearchReplies(ctx context.Context, query string, limit int) ([]domain.SearchResult, error)
}

func NewSearch(storage SearchStorage, defaultLimit, maxLimit int) SearchService {
	return &Search{storage: storage, defaultLimit: defaultLimit, maxLimit: maxLimit}
}

// Replies finds live replies containing query. A blank query matches
// nothing and never reaches storage. A non-positive limit means the default.
func (s *Search) Replies(ctx context.Context, query string, limit int) ([]domain.SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return []domain.SearchResult{}, nil
	}
	if limit <= 0 {
		limit = s.defaultLimit
	}
	limit = min(limit, s.maxLimit)
	return s.storage.SearchReplies(ctx, query, limit)
}
