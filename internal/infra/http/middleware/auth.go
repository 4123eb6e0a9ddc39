package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/xavierca1/telecrm/internal/entity"
)

type contextKey string

const userContextKey contextKey = "currentUser"

type TokenVerifier interface {
	Verify(token string) (string, error)
}

type UserFinder interface {
	FindByID(ctx context.Context, id string) (*entity.User, error)
}

// Auth guards routes behind the bearer credential. The token travels either
// in the Authorization header or in the httpOnly "token" cookie; both verify
// identically.
type Auth struct {
	Tokens TokenVerifier
	Users  UserFinder
}

func NewAuth(tokens TokenVerifier, users UserFinder) *Auth {
	return &Auth{Tokens: tokens, Users: users}
}

func (a *Auth) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString := extractToken(r)
		if tokenString == "" {
			RecordAuthFailure()
			writeAuthError(w, http.StatusUnauthorized, "not authorized to access this route")
			return
		}

		userID, err := a.Tokens.Verify(tokenString)
		if err != nil {
			RecordAuthFailure()
			writeAuthError(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		// The subject must still resolve to a live user.
		user, err := a.Users.FindByID(r.Context(), userID)
		if err != nil {
			RecordAuthFailure()
			writeAuthError(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole runs after RequireAuth and rejects principals outside the
// allowed set. Ownership checks live in the use cases, after this.
func (a *Auth) RequireRole(roles ...entity.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := UserFromContext(r.Context())
			if user == nil {
				writeAuthError(w, http.StatusUnauthorized, "not authorized to access this route")
				return
			}

			for _, role := range roles {
				if user.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			writeAuthError(w, http.StatusForbidden, "role "+string(user.Role)+" is not authorized to access this route")
		})
	}
}

// UserFromContext returns the authenticated user set by RequireAuth, or nil.
func UserFromContext(ctx context.Context) *entity.User {
	user, _ := ctx.Value(userContextKey).(*entity.User)
	return user
}

// WithUser is for tests that exercise handlers without the middleware chain.
func WithUser(ctx context.Context, user *entity.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

func extractToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}

	if cookie, err := r.Cookie("token"); err == nil {
		return cookie.Value
	}

	return ""
}

func writeAuthError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"error":   message,
	})
}
