// Package middlewarectx содержит HTTP middleware аутентификации и
// авторизации.
//
// Authenticator проверяет JWT из заголовка Authorization, определяет
// текущую роль пользователя по состоянию базы и кладёт идентификатор и
// роль в контекст запроса. Забаненный пользователь получает 403 до
// любого обработчика. RequireRoles пропускает запрос дальше только при
// достаточной роли.
package middlewarectx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/soundvault/soundvault/internal/http/response"
	"github.com/soundvault/soundvault/internal/lib/jwt"
	"github.com/soundvault/soundvault/internal/lib/sl"
	"github.com/soundvault/soundvault/internal/models"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

const (
	// UserID — ключ для идентификатора пользователя в контексте
	UserID Key = "user_id"
	// Role — ключ для роли пользователя в контексте
	Role Key = "role"
)

// RoleResolver определяет текущую роль пользователя по состоянию базы.
type RoleResolver interface {
	ResolveRole(ctx context.Context, userID int64) (models.Role, error)
}

// Authenticator возвращает HTTP middleware, который проверяет JWT в
// заголовке Authorization и добавляет идентификатор и роль пользователя
// в контекст запроса.
//
// Роль вычисляется на каждый запрос: бан и истечение подписки действуют
// немедленно, не дожидаясь истечения токена.
func Authenticator(jwtMaker jwt.Maker, roles RoleResolver, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.Authenticator"

			log := log.With(
				sl.Op(op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				log.Error("missing or invalid authorization header")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("missing or invalid authorization header"))
				return
			}
			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

			claims, err := jwtMaker.ParseToken(tokenStr)
			if err != nil {
				msg := "invalid token"
				if errors.Is(err, jwt.ErrTokenExpired) {
					msg = "token has expired"
				}
				log.Error("token rejected", sl.Err(err))
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error(msg))
				return
			}

			role, err := roles.ResolveRole(r.Context(), claims.UserID)
			if err != nil {
				log.Error("failed to resolve role", sl.Err(err))
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("database failed to execute query"))
				return
			}
			if role == models.RoleUnknown {
				log.Error("token for unknown user", slog.Int64("user_id", claims.UserID))
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("invalid token"))
				return
			}
			if role == models.RoleBanned {
				log.Info("banned user rejected", slog.Int64("user_id", claims.UserID))
				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, response.Error("you are banned, contact support for more details"))
				return
			}

			ctx := context.WithValue(r.Context(), UserID, claims.UserID)
			ctx = context.WithValue(ctx, Role, role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRoles возвращает middleware, пропускающий запрос только если
// роль из контекста удовлетворяет хотя бы одной из требуемых.
func RequireRoles(log *slog.Logger, required ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := r.Context().Value(Role).(models.Role)
			if !ok {
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("missing or invalid authorization header"))
				return
			}
			for _, want := range required {
				if role.Satisfies(want) {
					next.ServeHTTP(w, r)
					return
				}
			}
			log.Info("insufficient role", slog.String("role", string(role)))
			render.Status(r, http.StatusForbidden)
			render.JSON(w, r, response.Error("you do not have permission to perform this action"))
		})
	}
}

// Identity извлекает идентификатор и роль пользователя из контекста.
func Identity(ctx context.Context) (int64, models.Role, bool) {
	userID, okID := ctx.Value(UserID).(int64)
	role, okRole := ctx.Value(Role).(models.Role)
	return userID, role, okID && okRole
}
