package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kevinclancy/kboard/shared/api"
	"github.com/kevinclancy/kboard/shared/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchRepliesHandler(t *testing.T) {
	h := newTestHandler()
	router := route(http.MethodGet, "/api/search/replies", h.SearchReplies, nil)

	t.Run("successful", func(t *testing.T) {
		h.search = &MockSearchService{
			MockReplies: func(ctx context.Context, query string, limit int) ([]domain.SearchResult, error) {
				assert.Equal(t, "go lang", query)
				assert.Equal(t, 5, limit)
				return []domain.SearchResult{{ReplyId: 2}, {ReplyId: 1}}, nil
			},
		}
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/search/replies?q=go+lang&limit=5", nil))

		require.Equal(t, http.StatusOK, rr.Code)
		var resp api.SearchResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		assert.Equal(t, 2, resp.TotalFound)
		assert.Equal(t, domain.ReplyId(2), resp.Results[0].ReplyId)
	})

	t.Run("no limit", func(t *testing.T) {
		h.search = &MockSearchService{
			MockReplies: func(ctx context.Context, query string, limit int) ([]domain.SearchResult, error) {
				assert.Zero(t, limit)
				return []domain.SearchResult{}, nil
			},
		}
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/search/replies?q=x", nil))
		require.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"results": [], "total_found": 0}`, rr.Body.String())
	})

	for _, raw := range []string{"%FF%FE", "ab%00cd"} {
		t.Run("undecodable query "+raw, func(t *testing.T) {
			h.search = &MockSearchService{
				MockReplies: func(ctx context.Context, query string, limit int) ([]domain.SearchResult, error) {
					t.Fatalf("search must not run for %q", query)
					return nil, nil
				},
			}
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/search/replies?q="+raw, nil))
			assert.Equal(t, http.StatusBadRequest, rr.Code)
		})
	}

	t.Run("bad limit", func(t *testing.T) {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/search/replies?q=x&limit=lots", nil))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}
