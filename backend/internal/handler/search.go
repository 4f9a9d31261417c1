package handler

import (
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/kevinclancy/kboard/shared/api"
	internal_errors "github.com/kevinclancy/kboard/shared/errors"
	"github.com/kevinclancy/kboard/shared/utils"
)

func (h *Handler) SearchReplies(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var limit int
	if v := q.Get("limit"); v != "" {
		var err error
		if limit, err = parseIntParam(v, "limit"); err != nil {
			utils.WriteErrorAndStatusCode(w, err)
			return
		}
	}

	query := q.Get("q")
	if !utf8.ValidString(query) || strings.ContainsRune(query, 0) {
		utils.WriteErrorAndStatusCode(w, internal_errors.BadRequest("invalid q: must be UTF-8 text without NUL"))
		return
	}

	results, err := h.search.Replies(r.Context(), query, limit)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, api.SearchResponse{Results: results, TotalFound: len(results)})
}
