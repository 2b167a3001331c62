// Package search реализует HTTP-обработчик поиска песен по названию.
package search

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/soundvault/soundvault/internal/http/response"
	"github.com/soundvault/soundvault/internal/lib/sl"
	"github.com/soundvault/soundvault/internal/models"
)

// Service описывает интерфейс бизнес-логики поиска песен.
type Service interface {
	SearchSongs(ctx context.Context, keyword string) ([]models.SongSummary, error)
}

// Handler управляет HTTP-запросами на поиск песен.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Поиск песен
// @Description Ищет песни по вхождению ключевого слова в название.
// @Tags Catalog
// @Produce json
// @Security BearerAuth
// @Param keyword path string true "Ключевое слово"
// @Success 200 {object} map[string]any "Найденные песни"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /dbproj/song/{keyword} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.song.search"
	log := h.log.With(
		sl.Op(op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	keyword := chi.URLParam(r, "keyword")

	result, err := h.service.SearchSongs(r.Context(), keyword)
	if err != nil {
		log.Error("search failed", sl.Err(err))
		status, body := response.FromError(err)
		render.Status(r, status)
		render.JSON(w, r, body)
		return
	}

	render.JSON(w, r, response.StatusOKWithData(result))
}
