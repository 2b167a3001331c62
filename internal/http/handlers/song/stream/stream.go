// Package stream реализует HTTP-обработчик фиксации прослушивания.
package stream

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

// Service описывает интерфейс бизнес-логики журнала прослушиваний.
type Service interface {
	Stream(ctx context.Context, songID, consumerID int64) error
}

// Handler управляет HTTP-запросами фиксации прослушиваний.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Прослушивание песни
// @Description Фиксирует событие прослушивания песни потребителем.
// @Tags Catalog
// @Produce json
// @Security BearerAuth
// @Param song_id path int true "Идентификатор песни"
// @Success 200 {object} response.Response "Прослушивание записано"
// @Failure 400 {object} response.ErrorResponse "Некорректный запрос"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /dbproj/{song_id} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.song.stream"
	log := h.log.With(
		sl.Op(op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	consumerID, _, ok := middlewarectx.Identity(r.Context())
	if !ok {
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("missing or invalid authorization header"))
		return
	}

	songID, err := strconv.ParseInt(chi.URLParam(r, "song_id"), 10, 64)
	if err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("song ID must be an integer"))
		return
	}

	if err := h.service.Stream(r.Context(), songID, consumerID); err != nil {
		log.Error("failed to record stream", sl.Err(err))
		status, body := response.FromError(err)
		render.Status(r, status)
		render.JSON(w, r, body)
		return
	}

	log.Info("recorded stream", slog.Int64("song_id", songID))
	render.JSON(w, r, response.StatusOKWithData(nil))
}
