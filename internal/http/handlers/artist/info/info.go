// Package info реализует HTTP-обработчик карточки исполнителя.
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

// Service описывает интерфейс бизнес-логики карточки исполнителя.
type Service interface {
	ArtistInfo(ctx context.Context, artistID int64) (*models.ArtistInfo, error)
}

// Handler управляет HTTP-запросами карточки исполнителя.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Карточка исполнителя
// @Description Возвращает песни, фиты, альбомы и плейлисты с песнями исполнителя.
// @Tags Catalog
// @Produce json
// @Security BearerAuth
// @Param artist_id path int true "Идентификатор исполнителя"
// @Success 200 {object} map[string]any "Карточка исполнителя"
// @Failure 400 {object} response.ErrorResponse "Некорректный идентификатор"
// @Failure 404 {object} response.ErrorResponse "Исполнитель не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /dbproj/artist_info/{artist_id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.artist.info"
	log := h.log.With(
		sl.Op(op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	artistID, err := strconv.ParseInt(chi.URLParam(r, "artist_id"), 10, 64)
	if err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("artist ID must be an integer"))
		return
	}

	info, err := h.service.ArtistInfo(r.Context(), artistID)
	if err != nil {
		log.Error("failed to load artist info", sl.Err(err))
		status, body := response.FromError(err)
		render.Status(r, status)
		render.JSON(w, r, body)
		return
	}

	render.JSON(w, r, response.StatusOKWithData(info))
}
