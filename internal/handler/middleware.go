package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/taskcore/task-tracker-api/internal/service"
	"github.com/taskcore/task-tracker-api/pkg/respond"
)

type contextKey string

const userIDKey contextKey = "userID"

// Authenticator verifies the bearer token and stores the acting user id in
// the request context. Services still take the id as an explicit argument;
// handlers pull it out with actingUserID.
func Authenticator(auth *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				respond.Error(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "missing bearer token", nil)
				return
			}
			userID, err := auth.VerifyToken(token)
			if err != nil {
				respond.Error(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "invalid or expired token", nil)
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userIDKey, userID)))
		})
	}
}

func actingUserID(r *http.Request) string {
	id, _ := r.Context().Value(userIDKey).(string)
	return id
}

// RequestLogger emits one structured line per completed request.
func RequestLogger(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			log.Info("request completed",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", middleware.GetReqID(r.Context())),
			)
		})
	}
}
