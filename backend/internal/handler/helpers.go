package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	internal_errors "github.com/kevinclancy/kboard/shared/errors"
)

// parseIntParam parses an integer parameter from a string and returns a meaningful error
func parseIntParam(param string, paramName string) (int, error) {
	val, err := strconv.Atoi(param)
	if err != nil {
		return 0, internal_errors.BadRequest(fmt.Sprintf("invalid %s: must be an integer", paramName))
	}
	return val, nil
}

// parseIdParam reads a numeric chi URL parameter.
func parseIdParam(r *http.Request, name string) (int64, error) {
	val, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil {
		return 0, internal_errors.BadRequest(fmt.Sprintf("invalid %s: must be an integer", name))
	}
	return val, nil
}

// parsePage reads page_size and page_number from the query string. Missing
// values fall back to the configured page size and the first page. Range
// checks are left to the service, which clamps instead of rejecting.
func (h *Handler) parsePage(r *http.Request) (size, number int, err error) {
	size, number = h.defaultPageSize, 0
	q := r.URL.Query()
	if v := q.Get("page_size"); v != "" {
		if size, err = parseIntParam(v, "page_size"); err != nil {
			return 0, 0, err
		}
	}
	if v := q.Get("page_number"); v != "" {
		if number, err = parseIntParam(v, "page_number"); err != nil {
			return 0, 0, err
		}
	}
	return size, number, nil
}
