// Package unban реализует HTTP-обработчик снятия бана администратором.
package unban

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/soundvault/soundvault/internal/http/middlewarectx"
	"github.com/soundvault/soundvault/internal/http/response"
	"github.com/soundvault/soundvault/internal/lib/sl"
)

// Service описывает интерфейс бизнес-логики снятия банов.
type Service interface {
	UnbanUser(ctx context.Context, adminID, userID int64) error
}

// Handler управляет HTTP-запросами на снятие банов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Снятие бана
// @Description Администратор закрывает активный бан пользователя текущим временем.
// @Tags Administration
// @Produce json
// @Security BearerAuth
// @Param user_id path int true "Идентификатор пользователя"
// @Success 200 {object} response.Response "Бан снят"
// @Failure 400 {object} response.ErrorResponse "Некорректный идентификатор"
// @Failure 404 {object} response.ErrorResponse "Активный бан не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /dbproj/unban/{user_id} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.unban"
	log := h.log.With(
		sl.Op(op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	adminID, _, ok := middlewarectx.Identity(r.Context())
	if !ok {
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("missing or invalid authorization header"))
		return
	}

	userID, err := strconv.ParseInt(chi.URLParam(r, "user_id"), 10, 64)
	if err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("user ID must be an integer"))
		return
	}

	if err := h.service.UnbanUser(r.Context(), adminID, userID); err != nil {
		log.Error("failed to unban user", sl.Err(err))
		status, body := response.FromError(err)
		render.Status(r, status)
		render.JSON(w, r, body)
		return
	}

	log.Info("unbanned user", slog.Int64("user_id", userID))
	render.JSON(w, r, response.StatusOKWithData(nil))
}
