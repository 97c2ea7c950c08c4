package auth

import (
	"context"
	"net/http"

	"gradebook/internal/models"

	"go.uber.org/zap"
)

const CookieName = "session_id"

type contextKey string

const sessionKey = contextKey("session")

// LoadSession attaches the session named by the cookie, if any, to the
// request context. It never rejects a request.
func LoadSession(a *Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(CookieName)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(w, r)
				return
			}
			sess, ok, err := a.Lookup(r.Context(), cookie.Value)
			if err != nil {
				a.logger.Error("session lookup failed", zap.Error(err))
				http.Error(w, "internal server error", http.StatusInternalServerError)
				return
			}
			if ok {
				r = r.WithContext(context.WithValue(r.Context(), sessionKey, sess))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireSession hands requests without a session to onMissing.
// It must run after LoadSession.
func RequireSession(onMissing http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := SessionFromContext(r.Context()); !ok {
				onMissing(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func SessionFromContext(ctx context.Context) (models.Session, bool) {
	sess, ok := ctx.Value(sessionKey).(models.Session)
	return sess, ok
}
