// Package search реализует HTTP-обработчик поиска плейлистов.
package search

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/soundvault/soundvault/internal/http/middlewarectx"
	"github.com/soundvault/soundvault/internal/http/response"
	"github.com/soundvault/soundvault/internal/lib/sl"
	"github.com/soundvault/soundvault/internal/models"
)

// Service описывает интерфейс бизнес-логики поиска плейлистов.
type Service interface {
	SearchPlaylists(ctx context.Context, keyword string, viewerID int64, role models.Role) ([]models.PlaylistSummary, error)
}

// Handler управляет HTTP-запросами на поиск плейлистов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Поиск плейлистов
// @Description Ищет публичные плейлисты по имени; премиум-потребитель видит и свои приватные.
// @Tags Collections
// @Produce json
// @Security BearerAuth
// @Param keyword path string true "Ключевое слово"
// @Success 200 {object} map[string]any "Найденные плейлисты"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /dbproj/playlist/{keyword} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.playlist.search"
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
	keyword := chi.URLParam(r, "keyword")

	result, err := h.service.SearchPlaylists(r.Context(), keyword, viewerID, role)
	if err != nil {
		log.Error("search failed", sl.Err(err))
		status, body := response.FromError(err)
		render.Status(r, status)
		render.JSON(w, r, body)
		return
	}

	render.JSON(w, r, response.StatusOKWithData(result))
}
