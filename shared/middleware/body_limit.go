package middleware

import "net/http"

// LimitBody caps how much of a request body handlers may read. Reads past
// maxBytes fail, and utils.Decode reports them as 413.
func LimitBody(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// JSONBodyLimit is the request size that fits a body of maxRunes runes.
// A rune costs at most 6 bytes once JSON-escaped, plus room for the other fields.
func JSONBodyLimit(maxRunes int) int64 {
	return int64(maxRunes)*6 + 4<<10
}
