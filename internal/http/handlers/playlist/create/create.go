// Package create реализует HTTP-обработчик создания плейлиста
// премиум-потребителем.
package create

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/soundvault/soundvault/internal/http/middlewarectx"
	"github.com/soundvault/soundvault/internal/http/response"
	"github.com/soundvault/soundvault/internal/lib/sl"
)

// Request — входные данные для создания плейлиста.
type Request struct {
	Name    string  `json:"playlist_name" validate:"required,max=512"`
	Private *bool   `json:"private" validate:"required"`
	Songs   []int64 `json:"songs" validate:"required,min=1"`
}

// Service описывает интерфейс бизнес-логики создания плейлиста.
type Service interface {
	CreatePlaylist(ctx context.Context, consumerID int64, name string, private bool, songIDs []int64) (int64, error)
}

// Handler управляет HTTP-запросами на создание плейлистов.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Создание плейлиста
// @Description Премиум-потребитель создает плейлист с песнями в заданном порядке.
// @Tags Collections
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body Request true "Данные нового плейлиста"
// @Success 200 {object} map[string]any "Идентификатор плейлиста"
// @Failure 400 {object} response.ErrorResponse "Некорректный запрос"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /dbproj/playlist [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.playlist.create"
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

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	id, err := h.service.CreatePlaylist(r.Context(), consumerID,
		req.Name, *req.Private, req.Songs)
	if err != nil {
		log.Error("failed to create playlist", sl.Err(err))
		status, body := response.FromError(err)
		render.Status(r, status)
		render.JSON(w, r, body)
		return
	}

	log.Info("created new playlist", slog.Int64("playlist_id", id))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"playlist_id": id,
	}))
}
