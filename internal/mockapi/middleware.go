package mockapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

type ctxKey string

const (
	userIDKey    ctxKey = "userID"
	sessionIDKey ctxKey = "sessionID"
)

// requireAuth checks the access token cookie: missing or invalid answers
// 401, expired answers 410 so the client refreshes.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := r.Cookie(accessCookie)
		if err != nil || c.Value == "" {
			fail(w, http.StatusUnauthorized, "Unauthorized! (Token not found)")
			return
		}

		claims, err := ParseToken(c.Value, s.secret, s.now)
		if errors.Is(err, errTokenExpired) {
			fail(w, http.StatusGone, "Need to refresh token.")
			return
		}
		if err != nil {
			fail(w, http.StatusUnauthorized, "Unauthorized! Please Login.")
			return
		}
		userID, err := claims.UserID()
		if err != nil {
			fail(w, http.StatusUnauthorized, "Unauthorized! Please Login.")
			return
		}

		s.store.mu.Lock()
		_, live := s.store.sessions[claims.SessionID]
		s.store.mu.Unlock()
		if !live {
			fail(w, http.StatusUnauthorized, "Session has been revoked.")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		ctx = context.WithValue(ctx, sessionIDKey, claims.SessionID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func userID(r *http.Request) int64 {
	id, _ := r.Context().Value(userIDKey).(int64)
	return id
}

func sessionID(r *http.Request) string {
	id, _ := r.Context().Value(sessionIDKey).(string)
	return id
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug(r.Context(), "request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"request_id", r.Header.Get("X-Request-ID"),
			"duration", time.Since(start),
		)
	})
}
