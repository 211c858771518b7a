package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/Tedbot2000/todo-genie/internal/entity"
	"go.uber.org/zap"
)

const SessionCookieName = "session"

type contextKey string

const userKey contextKey = "user"

// Authenticator - источник текущего пользователя по токену
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*entity.User, error)
}

// WithUser кладет пользователя в контекст запроса
func WithUser(ctx context.Context, user *entity.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// UserFromContext - пользователь, положенный RequireSession или RequireBearer
func UserFromContext(ctx context.Context) (*entity.User, bool) {
	user, ok := ctx.Value(userKey).(*entity.User)
	return user, ok && user != nil
}

// RequireSession - для HTML-страниц: без сессии редирект на /login
func RequireSession(auth Authenticator, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := ""
			if cookie, err := r.Cookie(SessionCookieName); err == nil {
				token = cookie.Value
			}

			user, err := auth.Authenticate(r.Context(), token)
			if err != nil {
				if !errors.Is(err, entity.ErrUnauthorized) {
					logger.Error("failed to authenticate session", zap.Error(err))
					http.Error(w, "Internal server error", http.StatusInternalServerError)
					return
				}
				http.Redirect(w, r, "/login", http.StatusFound)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// RequireBearer - для JSON API: токен в заголовке Authorization, иначе 401
func RequireBearer(auth Authenticator, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := ""
			// Токен в формате "Bearer <token>"
			parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
			if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
				token = strings.TrimSpace(parts[1])
			}

			user, err := auth.Authenticate(r.Context(), token)
			if err != nil {
				status, message := http.StatusUnauthorized, "unauthorized"
				if !errors.Is(err, entity.ErrUnauthorized) {
					logger.Error("failed to authenticate bearer token", zap.Error(err))
					status, message = http.StatusInternalServerError, "internal server error"
				}
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(status)
				json.NewEncoder(w).Encode(map[string]string{"error": message})
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}
