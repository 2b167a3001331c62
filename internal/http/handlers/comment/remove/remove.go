// Package remove реализует HTTP-обработчик удаления треда комментариев.
package remove

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
	"github.com/soundvault/soundvault/internal/models"
)

// Service описывает интерфейс бизнес-логики удаления комментариев.
type Service interface {
	DeleteComment(ctx context.Context, commentID, callerID int64, role models.Role) error
}

// Handler управляет HTTP-запросами на удаление комментариев.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Удаление треда
// @Description Удаляет тред комментариев: потребитель — собственный, администратор — любой.
// @Tags Comments
// @Produce json
// @Security BearerAuth
// @Param comment_id path int true "Идентификатор комментария"
// @Success 200 {object} response.Response "Тред удален"
// @Failure 400 {object} response.ErrorResponse "Некорректный идентификатор"
// @Failure 404 {object} response.ErrorResponse "Комментарий не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /dbproj/comment/{comment_id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.comment.remove"
	log := h.log.With(
		sl.Op(op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	callerID, role, ok := middlewarectx.Identity(r.Context())
	if !ok {
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("missing or invalid authorization header"))
		return
	}

	commentID, err := strconv.ParseInt(chi.URLParam(r, "comment_id"), 10, 64)
	if err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("comment ID must be an integer"))
		return
	}

	if err := h.service.DeleteComment(r.Context(), commentID, callerID, role); err != nil {
		log.Error("failed to delete comment", sl.Err(err))
		status, body := response.FromError(err)
		render.Status(r, status)
		render.JSON(w, r, body)
		return
	}

	log.Info("deleted comment thread", slog.Int64("comment_id", commentID))
	render.JSON(w, r, response.StatusOKWithData(nil))
}
