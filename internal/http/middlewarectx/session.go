// Package middlewarectx содержит HTTP middleware проверки сессии.
//
// SessionMiddleware читает токен сессии из cookie, разрешает его через реестр
// сессий и кладёт идентичность пользователя в контекст запроса.
// Без cookie или с неизвестным токеном запрос завершается 401 Unauthorized.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/fakenews-detector/internal/http/cookie"
	"github.com/magabrotheeeer/fakenews-detector/internal/http/response"
	"github.com/magabrotheeeer/fakenews-detector/internal/lib/sl"
	"github.com/magabrotheeeer/fakenews-detector/internal/models"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// IdentityKey — ключ идентичности пользователя в контексте.
const IdentityKey Key = "identity"

// Resolver разрешает токен сессии в идентичность.
type Resolver interface {
	Resolve(ctx context.Context, token string) (models.Identity, bool, error)
}

// SessionMiddleware возвращает middleware, пропускающий только запросы с действующей сессией.
func SessionMiddleware(registry Resolver, cookies cookie.Options, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.SessionMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			token := cookies.Read(r)
			if token == "" {
				log.Info("session cookie is missing")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("not authenticated"))
				return
			}

			identity, found, err := registry.Resolve(r.Context(), token)
			if err != nil {
				log.Error("failed to resolve session", sl.Err(err))
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("internal error"))
				return
			}
			if !found {
				log.Info("unknown or expired session")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("session expired"))
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
		})
	}
}

// IdentityFromContext достаёт идентичность, положенную SessionMiddleware.
func IdentityFromContext(ctx context.Context) (models.Identity, bool) {
	identity, ok := ctx.Value(IdentityKey).(models.Identity)
	return identity, ok
}

// WithIdentity кладёт идентичность в контекст.
func WithIdentity(ctx context.Context, identity models.Identity) context.Context {
	return context.WithValue(ctx, IdentityKey, identity)
}
