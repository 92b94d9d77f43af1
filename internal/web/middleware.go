package web

// Middleware for handling authentication on every admin screen.

import (
	"context"
	"net/http"

	"github.com/akstore/bookstore-admin/internal/session"
)

// contextKey is a private type to prevent collisions with other context keys.
type contextKey string

const sessionContextKey = contextKey("session")

// RequireAuth verifies the signed session cookies. A missing or invalid
// token is not an error: the visitor is simply sent to the login screen.
// Valid sessions are injected into the request context for downstream
// handlers.
func (s *Server) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := s.app.Sessions.FromRequest(r)
		if !sess.Authenticated() {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		ctx := context.WithValue(r.Context(), sessionContextKey, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// sessionFromContext retrieves the session placed by RequireAuth. It
// returns a zero session when called outside the authenticated group.
func sessionFromContext(r *http.Request) session.Session {
	sess, ok := r.Context().Value(sessionContextKey).(session.Session)
	if !ok {
		return session.Session{}
	}
	return sess
}
