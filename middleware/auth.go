package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"go-showcase/models"
	"go-showcase/store"
	"go-showcase/utils"

	"github.com/rs/zerolog/hlog"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Key type for context
type contextKey string

const UserContextKey = contextKey("user")

// TokenVerifier resolves a session token to a user id
type TokenVerifier interface {
	Verify(token string) (primitive.ObjectID, error)
}

// UserFinder loads the account behind a session
type UserFinder interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
}

// TokenFromRequest returns the session token and where it came from. The session
// cookie wins when it is present and non-empty; the Authorization bearer header is
// only consulted otherwise.
func TokenFromRequest(r *http.Request) (token, source string) {
	if c, err := r.Cookie(utils.SessionCookieName); err == nil && c.Value != "" {
		return c.Value, "cookie"
	}
	parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		if tok := strings.TrimSpace(parts[1]); tok != "" {
			return tok, "header"
		}
	}
	return "", ""
}

// AuthMiddleware rejects requests without a valid session and attaches the
// resolved user to the request context.
func AuthMiddleware(sessions TokenVerifier, users UserFinder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, source := TokenFromRequest(r)
			if token == "" {
				utils.WriteError(w, r, utils.ErrUnauthenticated)
				return
			}

			userID, err := sessions.Verify(token)
			if err != nil {
				hlog.FromRequest(r).Debug().Str("source", source).Msg("rejected session token")
				utils.WriteError(w, r, utils.ErrSessionInvalid)
				return
			}

			user, err := users.FindByID(r.Context(), userID)
			if errors.Is(err, store.ErrNotFound) {
				utils.WriteError(w, r, utils.ErrUnauthenticated)
				return
			}
			if err != nil {
				utils.WriteError(w, r, err)
				return
			}
			user.Password = ""

			ctx := context.WithValue(r.Context(), UserContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminMiddleware ensures that the user has admin privileges
func AdminMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := CurrentUser(r)
		if !ok {
			utils.WriteError(w, r, utils.ErrUnauthenticated)
			return
		}
		if !user.IsAdmin {
			utils.WriteError(w, r, utils.ErrForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// CurrentUser returns the identity attached by AuthMiddleware.
func CurrentUser(r *http.Request) (*models.User, bool) {
	user, ok := r.Context().Value(UserContextKey).(*models.User)
	return user, ok && user != nil
}
