// Package middlewarectx содержит HTTP middleware для проверки токена доступа.
//
// TokenMiddleware проверяет наличие токена в заголовке Authorization,
// разрешает его в UID пользователя через сервис аутентификации и в случае
// успеха добавляет UID в контекст для дальнейшего использования в обработчиках.
//
// В случае ошибки проверки возвращает HTTP 401 Unauthorized с сообщением об ошибке.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/Rud356/RemindMeServer/internal/http/response"
	"github.com/Rud356/RemindMeServer/internal/lib/sl"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// UserUID — ключ для UID пользователя в контексте.
const UserUID Key = "user_uid"

// Service описывает интерфейс сервиса для разрешения токена доступа.
type Service interface {
	ResolveToken(ctx context.Context, accessToken string) (string, error)
}

// TokenMiddleware возвращает HTTP middleware, который проверяет токен доступа
// в заголовке Authorization.
//
// Если токен принадлежит зарегистрированному пользователю, добавляет его UID
// в контекст запроса, иначе возвращает ошибку с HTTP статусом 401 Unauthorized.
func TokenMiddleware(authService Service, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			const op = "middlewarectx.TokenMiddleware"

			log = log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			if !strings.HasPrefix(authHeader, "Bearer ") {
				log.Error("missing or invalid authorization header")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("missing or invalid authorization header"))
				return
			}
			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

			userUID, err := authService.ResolveToken(r.Context(), tokenStr)
			if err != nil {
				log.Error("invalid access token", sl.Err(err))
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("invalid access token"))
				return
			}
			ctx := context.WithValue(r.Context(), UserUID, userUID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
