package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/kevinclancy/kboard/shared/domain"
	"github.com/kevinclancy/kboard/shared/middleware/ratelimiter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func withUser(req *http.Request, user *domain.User) *http.Request {
	return req.WithContext(context.WithValue(req.Context(), UserClaimsKey, user))
}

func TestRateLimit(t *testing.T) {
	t.Run("allows request within rate limit", func(t *testing.T) {
		rl := ratelimiter.NewUserRateLimiter(0.01, 1, time.Minute)
		defer rl.Stop()
		handler := RateLimit(rl, func(r *http.Request) (string, error) { return "user1", nil })(okHandler())

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest("POST", "/", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("error getting identity", func(t *testing.T) {
		rl := ratelimiter.NewUserRateLimiter(0.01, 1, time.Minute)
		defer rl.Stop()
		handler := RateLimit(rl, func(r *http.Request) (string, error) { return "", errors.New("Test error") })(okHandler())

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest("POST", "/", nil))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("blocks request exceeding rate limit", func(t *testing.T) {
		rl := ratelimiter.NewUserRateLimiter(0.01, 1, time.Minute)
		defer rl.Stop()
		handler := RateLimit(rl, func(r *http.Request) (string, error) { return "user1", nil })(okHandler())

		w1 := httptest.NewRecorder()
		handler.ServeHTTP(w1, httptest.NewRequest("POST", "/", nil))
		assert.Equal(t, http.StatusOK, w1.Code)

		w2 := httptest.NewRecorder()
		handler.ServeHTTP(w2, httptest.NewRequest("POST", "/", nil))
		assert.Equal(t, http.StatusTooManyRequests, w2.Code)
		assert.Equal(t, "Rate limit exceeded, try again later\n", w2.Body.String())
	})

	t.Run("moderators are not limited", func(t *testing.T) {
		rl := ratelimiter.NewUserRateLimiter(0.01, 1, time.Minute)
		defer rl.Stop()
		handler := RateLimit(rl, GetUserIDFromContext)(okHandler())
		mod := &domain.User{Id: 9, IsModerator: true}

		for i := 0; i < 3; i++ {
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, withUser(httptest.NewRequest("POST", "/", nil), mod))
			assert.Equal(t, http.StatusOK, w.Code)
		}
	})
}

func TestGetUserIDFromContext(t *testing.T) {
	_, err := GetUserIDFromContext(httptest.NewRequest("GET", "/", nil))
	assert.Error(t, err)

	id, err := GetUserIDFromContext(withUser(httptest.NewRequest("GET", "/", nil), &domain.User{Id: 42}))
	require.NoError(t, err)
	assert.Equal(t, "user_42", id)
}

func TestGetIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		expected   string
		wantErr    bool
	}{
		{"ipv4 with port", "192.0.2.1:1234", "192.0.2.1", false},
		{"ipv6 with port", "[2001:db8::1]:80", "2001:db8::1", false},
		{"bare ip", "192.0.2.7", "192.0.2.7", false},
		{"garbage", "not-an-ip", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			req.RemoteAddr = tt.remoteAddr
			req.Header.Set("X-Forwarded-For", "203.0.113.9")
			ip, err := GetIP(req)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, ip)
		})
	}
}
