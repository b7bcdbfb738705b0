// Package middlewarectx содержит HTTP middleware сервиса: проверку JWT
// с передачей участника запроса через контекст и ограничение частоты запросов.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/lesson-scheduler/internal/http/response"
	"github.com/magabrotheeeer/lesson-scheduler/internal/lib/sl"
	"github.com/magabrotheeeer/lesson-scheduler/internal/models"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// ActorKey — ключ участника запроса в контексте.
const ActorKey Key = "actor"

// TokenVerifier проверяет access-токен и возвращает участника.
type TokenVerifier interface {
	VerifyToken(token string) (*models.Actor, error)
}

// JWTMiddleware проверяет заголовок Authorization: Bearer <token>.
// При успехе кладёт участника в контекст, иначе отвечает 401.
func JWTMiddleware(verifier TokenVerifier, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.JWTMiddleware"
			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				log.Info("missing or invalid authorization header")
				response.Fail(w, r, http.StatusUnauthorized, "missing or invalid authorization header")
				return
			}
			tokenStr := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))

			actor, err := verifier.VerifyToken(tokenStr)
			if err != nil || actor == nil {
				log.Info("invalid or expired token", sl.Err(err))
				response.Fail(w, r, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
		})
	}
}

// WithActor возвращает контекст с участником запроса.
func WithActor(ctx context.Context, actor *models.Actor) context.Context {
	return context.WithValue(ctx, ActorKey, actor)
}

// ActorFrom извлекает участника из контекста. Возвращает nil, если его нет.
func ActorFrom(ctx context.Context) *models.Actor {
	actor, _ := ctx.Value(ActorKey).(*models.Actor)
	return actor
}
