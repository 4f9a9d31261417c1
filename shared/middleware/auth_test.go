package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/kevinclancy/kboard/shared/domain"
	internal_errors "github.com/kevinclancy/kboard/shared/errors"
	jwt_internal "github.com/kevinclancy/kboard/shared/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockIdentityProvider struct {
	UserByPidFunc func(ctx context.Context, pid uuid.UUID) (domain.User, error)
}

func (m *mockIdentityProvider) UserByPid(ctx context.Context, pid uuid.UUID) (domain.User, error) {
	return m.UserByPidFunc(ctx, pid)
}

func usersByPid(users ...domain.User) *mockIdentityProvider {
	return &mockIdentityProvider{UserByPidFunc: func(ctx context.Context, pid uuid.UUID) (domain.User, error) {
		for _, u := range users {
			if u.Pid == pid {
				return u, nil
			}
		}
		return domain.User{}, internal_errors.NotFound("User not found")
	}}
}

func TestNeedAuth(t *testing.T) {
	jwtService := jwt_internal.New("test_secret", time.Hour)
	user := domain.User{Id: 1, Pid: uuid.New(), Name: "alice"}
	banned := domain.User{Id: 2, Pid: uuid.New(), Name: "bob", IsBanned: true}
	ghost := domain.User{Id: 3, Pid: uuid.New()}
	identities := usersByPid(user, banned)

	token, _ := jwtService.NewToken(user)
	bannedToken, _ := jwtService.NewToken(banned)
	ghostToken, _ := jwtService.NewToken(ghost)

	tests := []struct {
		name           string
		cookie         *http.Cookie
		bearer         string
		expectedStatus int
		expectedUser   *domain.User
		clearsCookie   bool
	}{
		{
			name:           "Valid cookie",
			cookie:         &http.Cookie{Name: AccessTokenCookie, Value: token},
			expectedStatus: http.StatusOK,
			expectedUser:   &user,
		},
		{
			name:           "Valid bearer header",
			bearer:         token,
			expectedStatus: http.StatusOK,
			expectedUser:   &user,
		},
		{
			name:           "No token",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Invalid token",
			cookie:         &http.Cookie{Name: AccessTokenCookie, Value: "invalid_token"},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Unknown user",
			cookie:         &http.Cookie{Name: AccessTokenCookie, Value: ghostToken},
			expectedStatus: http.StatusUnauthorized,
			clearsCookie:   true,
		},
		{
			name:           "Banned user",
			cookie:         &http.Cookie{Name: AccessTokenCookie, Value: bannedToken},
			expectedStatus: http.StatusForbidden,
			clearsCookie:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "http://example.com", nil)
			if tt.cookie != nil {
				req.AddCookie(tt.cookie)
			}
			if tt.bearer != "" {
				req.Header.Set("Authorization", "Bearer "+tt.bearer)
			}
			rr := httptest.NewRecorder()

			handler := NewAuth(jwtService, identities, false).NeedAuth()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got := GetUserFromContext(r)
				require.NotNil(t, got, "NeedAuth should always propagate user thru context")
				assert.Equal(t, tt.expectedUser.Id, got.Id)
				assert.Equal(t, tt.expectedUser.Name, got.Name)
				w.WriteHeader(http.StatusOK)
			}))
			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)

			var cleared bool
			for _, c := range rr.Result().Cookies() {
				if c.Name == AccessTokenCookie && c.MaxAge < 0 {
					cleared = true
				}
			}
			assert.Equal(t, tt.clearsCookie, cleared)
		})
	}
}

func TestNeedAuthSeesCurrentRole(t *testing.T) {
	jwtService := jwt_internal.New("test_secret", time.Hour)
	user := domain.User{Id: 1, Pid: uuid.New()}
	token, _ := jwtService.NewToken(user)

	// promoted after the token was issued
	promoted := user
	promoted.IsModerator = true

	req := httptest.NewRequest("POST", "/", nil)
	req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: token})
	rr := httptest.NewRecorder()
	NewAuth(jwtService, usersByPid(promoted), false).NeedAuth()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, GetUserFromContext(r).IsModerator)
	})).ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestOptionalAuth(t *testing.T) {
	jwtService := jwt_internal.New("test_secret", time.Hour)
	banned := domain.User{Id: 2, Pid: uuid.New(), IsBanned: true}
	bannedToken, _ := jwtService.NewToken(banned)
	mw := NewAuth(jwtService, usersByPid(banned), false).OptionalAuth()

	t.Run("anonymous passes", func(t *testing.T) {
		rr := httptest.NewRecorder()
		mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Nil(t, GetUserFromContext(r))
		})).ServeHTTP(rr, httptest.NewRequest("GET", "/", nil))
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("invalid token passes anonymously", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: "garbage"})
		rr := httptest.NewRecorder()
		mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Nil(t, GetUserFromContext(r))
		})).ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("banned user can still read", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: bannedToken})
		rr := httptest.NewRecorder()
		mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NotNil(t, GetUserFromContext(r))
			assert.Equal(t, banned.Id, GetUserFromContext(r).Id)
		})).ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code)
	})
}

func TestGetUserFromContext(t *testing.T) {
	t.Run("no user in context", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		assert.Nil(t, GetUserFromContext(req))
	})

	t.Run("user in context", func(t *testing.T) {
		user := &domain.User{Id: 1, IsModerator: true}
		req := httptest.NewRequest("GET", "/", nil)
		req = req.WithContext(context.WithValue(req.Context(), UserClaimsKey, user))
		assert.Equal(t, user, GetUserFromContext(req))
	})
}
