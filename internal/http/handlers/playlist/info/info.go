// Package info реализует HTTP-обработчик карточки плейлиста.
package info

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

// Service описывает интерфейс бизнес-логики карточки плейлиста.
type Service interface {
	PlaylistInfo(ctx context.Context, playlistID, viewerID int64, role models.Role) (*models.PlaylistInfo, error)
}

// Handler управляет HTTP-запросами карточки плейлиста.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Карточка плейлиста
// @Description Возвращает плейлист с песнями в сохранённом порядке; приватный виден только владельцу.
// @Tags Collections
// @Produce json
// @Security BearerAuth
// @Param playlist_id path int true "Идентификатор плейлиста"
// @Success 200 {object} map[string]any "Карточка плейлиста"
// @Failure 400 {object} response.ErrorResponse "Некорректный идентификатор"
// @Failure 404 {object} response.ErrorResponse "Плейлист не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /dbproj/playlist_info/{playlist_id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.playlist.info"
	log := h.log.With(
		sl.Op(op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	viewerID, role, ok := middlewarectx.Identity(r.Context())
	if !ok {
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("missing or invalid authorization header"))
		return
	}

	playlistID, err := strconv.ParseInt(chi.URLParam(r, "playlist_id"), 10, 64)
	if err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("playlist ID must be an integer"))
		return
	}

	info, err := h.service.PlaylistInfo(r.Context(), playlistID, viewerID, role)
	if err != nil {
		log.Error("failed to load playlist info", sl.Err(err))
		status, body := response.FromError(err)
		render.Status(r, status)
		render.JSON(w, r, body)
		return
	}

	render.JSON(w, r, response.StatusOKWithData(info))
}
