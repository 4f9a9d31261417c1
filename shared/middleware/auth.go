package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/kevinclancy/kboard/shared/domain"
	internal_errors "github.com/kevinclancy/kboard/shared/errors"
	jwt_internal "github.com/kevinclancy/kboard/shared/jwt"
	"github.com/kevinclancy/kboard/shared/logger"
	"github.com/kevinclancy/kboard/shared/utils"
)

// IdentityProvider resolves the pid carried by a token to the current user row.
type IdentityProvider interface {
	UserByPid(ctx context.Context, pid uuid.UUID) (domain.User, error)
}

// Key to store the user in the request context
type key int

const UserClaimsKey key = 0

const AccessTokenCookie = "accessToken"

type Auth struct {
	jwtService    jwt_internal.JwtService
	identities    IdentityProvider
	secureCookies bool
}

func NewAuth(jwtService jwt_internal.JwtService, identities IdentityProvider, secureCookies bool) *Auth {
	return &Auth{
		jwtService:    jwtService,
		identities:    identities,
		secureCookies: secureCookies,
	}
}

// NeedAuth rejects anonymous and banned requesters. Every write route sits
// behind it.
func (a *Auth) NeedAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := a.extractUser(r)
			if err != nil {
				switch {
				case errors.Is(err, errNoToken):
					http.Error(w, "Please sign-in", http.StatusUnauthorized)
				case internal_errors.IsNotFound(err):
					// token for a user that no longer exists
					a.clearCookie(w)
					http.Error(w, "Invalid token", http.StatusUnauthorized)
				default:
					utils.WriteErrorAndStatusCode(w, err)
				}
				return
			}

			if user.IsBanned {
				a.clearCookie(w)
				http.Error(w, "Account suspended", http.StatusForbidden)
				return
			}

			ctx := context.WithValue(r.Context(), UserClaimsKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth populates the user when a valid token is present and
// otherwise lets the request through anonymously. Banned users keep read access.
func (a *Auth) OptionalAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := a.extractUser(r)
			if err != nil {
				if !errors.Is(err, errNoToken) {
					logger.Log.Debug("ignoring invalid token on optional auth", "error", err)
				}
				next.ServeHTTP(w, r)
				return
			}
			ctx := context.WithValue(r.Context(), UserClaimsKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

var errNoToken = errors.New("no token")

// extractUser reads the token from the cookie (browsers) or the bearer
// header (API clients) and loads the user it names.
func (a *Auth) extractUser(r *http.Request) (*domain.User, error) {
	var tokenString string
	if accessCookie, err := r.Cookie(AccessTokenCookie); err == nil {
		tokenString = accessCookie.Value
	} else if token, found := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); found {
		tokenString = token
	}
	if tokenString == "" {
		return nil, errNoToken
	}

	claims, err := a.jwtService.DecodeToken(tokenString)
	if err != nil {
		return nil, err
	}

	user, err := a.identities.UserByPid(r.Context(), claims.Pid)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (a *Auth) clearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Path:     "/",
		Name:     AccessTokenCookie,
		Value:    "",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   a.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

// GetUserFromContext returns the authenticated user or nil.
func GetUserFromContext(r *http.Request) *domain.User {
	user, ok := r.Context().Value(UserClaimsKey).(*domain.User)
	if !ok {
		return nil
	}
	return user
}
