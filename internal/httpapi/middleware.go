package httpapi

import (
	"context"
	"net/http"

	"github.com/Abdulla-1107/lazermarkaz-backend/internal/session"
)

type contextKey string

const sessionIDKey contextKey = "session_id"

const sessionCookie = "lm_sid"

// SessionMiddleware binds the request to its cart session. A request
// without a session cookie gets a fresh session id; the cart it creates
// belongs to that session alone.
func SessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var sessionID string
		if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
			sessionID = c.Value
		} else {
			sessionID = session.NewSessionID()
			http.SetCookie(w, &http.Cookie{
				Name:     sessionCookie,
				Value:    sessionID,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		ctx := context.WithValue(r.Context(), sessionIDKey, sessionID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func sessionIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(sessionIDKey).(string); ok {
		return id
	}
	return ""
}
