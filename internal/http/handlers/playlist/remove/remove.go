// Package remove реализует HTTP-обработчик удаления плейлиста владельцем.
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
)

// Service описывает интерфейс бизнес-логики удаления плейлиста.
type Service interface {
	DeletePlaylist(ctx context.Context, playlistID, ownerID int64) error
}

// Handler управляет HTTP-запросами на удаление плейлистов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Удаление плейлиста
// @Description Удаляет плейлист, принадлежащий вызывающему потребителю.
// @Tags Collections
// @Produce json
// @Security BearerAuth
// @Param playlist_id path int true "Идентификатор плейлиста"
// @Success 200 {object} response.Response "Плейлист удален"
// @Failure 400 {object} response.ErrorResponse "Некорректный идентификатор"
// @Failure 404 {object} response.ErrorResponse "Плейлист не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /dbproj/playlist/{playlist_id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.playlist.remove"
	log := h.log.With(
		sl.Op(op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	ownerID, _, ok := middlewarectx.Identity(r.Context())
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

	if err := h.service.DeletePlaylist(r.Context(), playlistID, ownerID); err != nil {
		log.Error("failed to delete playlist", sl.Err(err))
		status, body := response.FromError(err)
		render.Status(r, status)
		render.JSON(w, r, body)
		return
	}

	log.Info("deleted playlist", slog.Int64("playlist_id", playlistID))
	render.JSON(w, r, response.StatusOKWithData(nil))
}
