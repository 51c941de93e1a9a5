package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/utafrali/glamstore/internal/session"
	"github.com/utafrali/glamstore/pkg/httputil"
	"github.com/utafrali/glamstore/pkg/logger"

	apperrors "github.com/utafrali/glamstore/pkg/errors"
)

type contextKey string

const sessionContextKey contextKey = "session"

// SessionLoader resolves the visitor's session from the signed cookie. A
// missing or invalid cookie gets a fresh session and a new cookie. The
// session is stored in the request context.
func SessionLoader(store session.Store, tokens *session.TokenManager, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			var sess *session.Session
			if sessionID := tokens.ReadCookie(r); sessionID != "" {
				loaded, err := store.Get(ctx, sessionID)
				switch {
				case err == nil:
					sess = loaded
				case errors.Is(err, apperrors.ErrNotFound):
					// Expired or evicted server-side; fall through to a new one.
				default:
					logger.WithContext(ctx, log).Error("failed to load session",
						slog.String("error", err.Error()),
					)
					httputil.WriteError(w, apperrors.Internal(err))
					return
				}
			}

			if sess == nil {
				sess = session.New(uuid.NewString(), time.Now().UTC())
				if err := tokens.SetCookie(w, sess.ID); err != nil {
					httputil.WriteError(w, apperrors.Internal(err))
					return
				}
			}

			if sess.UserID != "" {
				ctx = logger.WithUserID(ctx, sess.UserID)
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(ctx, sessionContextKey, sess)))
		})
	}
}

// SessionFromContext returns the session placed by SessionLoader. Handlers
// behind the loader can rely on it being present.
func SessionFromContext(ctx context.Context) *session.Session {
	sess, _ := ctx.Value(sessionContextKey).(*session.Session)
	return sess
}

// RequireAuth rejects requests whose session has no signed-in user.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := SessionFromContext(r.Context())
		if sess == nil || !sess.IsAuthenticated() {
			httputil.WriteError(w, apperrors.Unauthorized("login required"))
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireAdmin rejects requests from sessions without the admin role.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := SessionFromContext(r.Context())
		if sess == nil || !sess.IsAuthenticated() {
			httputil.WriteError(w, apperrors.Unauthorized("login required"))
			return
		}
		if !sess.IsAdmin() {
			httputil.WriteError(w, apperrors.Forbidden("admin access required"))
			return
		}

		next.ServeHTTP(w, r)
	})
}

// ContentTypeJSON rejects bodied requests that are not application/json.
func ContentTypeJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		bodied := r.Method == http.MethodPost || r.Method == http.MethodPut || r.Method == http.MethodPatch
		if bodied && r.ContentLength != 0 {
			contentType := r.Header.Get("Content-Type")
			if !strings.HasPrefix(contentType, "application/json") {
				httputil.WriteError(w, apperrors.InvalidInput("Content-Type must be application/json"))
				return
			}
		}

		next.ServeHTTP(w, r)
	})
}
