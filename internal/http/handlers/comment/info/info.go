// Package info реализует HTTP-обработчик карточки комментария.
package info

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/soundvault/soundvault/internal/http/response"
	"github.com/soundvault/soundvault/internal/lib/sl"
	"github.com/soundvault/soundvault/internal/models"
)

// Service описывает интерфейс бизнес-логики карточки комментария.
type Service interface {
	CommentInfo(ctx context.Context, commentID int64) (*models.CommentInfo, error)
}

// Handler управляет HTTP-запросами карточки комментария.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Карточка комментария
// @Description Возвращает текст, автора, время и идентификаторы ответов.
// @Tags Comments
// @Produce json
// @Security BearerAuth
// @Param comment_id path int true "Идентификатор комментария"
// @Success 200 {object} map[string]any "Карточка комментария"
// @Failure 400 {object} response.ErrorResponse "Некорректный идентификатор"
// @Failure 404 {object} response.ErrorResponse "Комментарий не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /dbproj/comment_info/{comment_id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.comment.info"
	log := h.log.With(
		sl.Op(op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	commentID, err := strconv.ParseInt(chi.URLParam(r, "comment_id"), 10, 64)
	if err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("comment ID must be an integer"))
		return
	}

	info, err := h.service.CommentInfo(r.Context(), commentID)
	if err != nil {
		log.Error("failed to load comment info", sl.Err(err))
		status, body := response.FromError(err)
		render.Status(r, status)
		render.JSON(w, r, body)
		return
	}

	render.JSON(w, r, response.StatusOKWithData(info))
}
