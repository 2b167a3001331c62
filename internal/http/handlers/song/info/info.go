// Package info реализует HTTP-обработчик карточки песни.
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

// Service описывает интерфейс бизнес-логики карточки песни.
type Service interface {
	SongInfo(ctx context.Context, songID int64) (*models.SongInfo, error)
}

// Handler управляет HTTP-запросами карточки песни.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Карточка песни
// @Description Возвращает детали песни: исполнителя, коллаборации, альбомы.
// @Tags Catalog
// @Produce json
// @Security BearerAuth
// @Param song_id path int true "Идентификатор песни"
// @Success 200 {object} map[string]any "Карточка песни"
// @Failure 400 {object} response.ErrorResponse "Некорректный идентификатор"
// @Failure 404 {object} response.ErrorResponse "Песня не найдена"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /dbproj/song_info/{song_id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.song.info"
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

	info, err := h.service.SongInfo(r.Context(), songID)
	if err != nil {
		log.Error("failed to load song info", sl.Err(err))
		status, body := response.FromError(err)
		render.Status(r, status)
		render.JSON(w, r, body)
		return
	}

	render.JSON(w, r, response.StatusOKWithData(info))
}
