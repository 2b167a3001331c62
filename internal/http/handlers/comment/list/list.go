// Package list реализует HTTP-обработчик списка тредов песни.
package list

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
)

// Service описывает интерфейс бизнес-логики списка комментариев.
type Service interface {
	ListComments(ctx context.Context, songID int64) ([]int64, error)
}

// Handler управляет HTTP-запросами списка комментариев.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Треды песни
// @Description Возвращает идентификаторы начал тредов комментариев песни.
// @Tags Comments
// @Produce json
// @Security BearerAuth
// @Param song_id path int true "Идентификатор песни"
// @Success 200 {object} map[string]any "Идентификаторы комментариев"
// @Failure 400 {object} response.ErrorResponse "Некорректный идентификатор"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /dbproj/comment/{song_id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.comment.list"
	log := h.log.With(
		sl.Op(op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	songID, err := strconv.ParseInt(chi.URLParam(r, "song_id"), 10, 64)
	if err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("song ID must be an integer"))
		return
	}

	result, err := h.service.ListComments(r.Context(), songID)
	if err != nil {
		log.Error("failed to list comments", sl.Err(err))
		status, body := response.FromError(err)
		render.Status(r, status)
		render.JSON(w, r, body)
		return
	}

	render.JSON(w, r, response.StatusOKWithData(result))
}
