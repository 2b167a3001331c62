// Package add реализует HTTP-обработчик публикации песни исполнителем.
package add

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
	"github.com/soundvault/soundvault/internal/models"
)

// Request — входные данные для публикации песни.
type Request struct {
	ISMN          string  `json:"ismn" validate:"required,len=13,numeric"`
	Title         string  `json:"title" validate:"required,max=512"`
	Genre         string  `json:"genre" validate:"required,max=512"`
	Duration      int     `json:"duration" validate:"required,min=1,max=3600"`
	ReleaseDate   string  `json:"release_date" validate:"required"`
	Explicit      *bool   `json:"explicit" validate:"required"`
	Collaborators []int64 `json:"other_artists" validate:"max=10"`
}

// Service описывает интерфейс бизнес-логики публикации песни.
type Service interface {
	AddSong(ctx context.Context, artistID int64, spec models.NewSongSpec, collaborators []int64) (int64, error)
}

// Handler управляет HTTP-запросами на публикацию песен.
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
// @Summary Публикация песни
// @Description Исполнитель публикует песню с необязательным списком коллабораторов.
// @Tags Catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body Request true "Данные новой песни"
// @Success 200 {object} map[string]any "Идентификатор песни"
// @Failure 400 {object} response.ErrorResponse "Некорректный запрос"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /dbproj/song [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.song.add"
	log := h.log.With(
		sl.Op(op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	artistID, _, ok := middlewarectx.Identity(r.Context())
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

	id, err := h.service.AddSong(r.Context(), artistID, models.NewSongSpec{
		ISMN:        req.ISMN,
		Title:       req.Title,
		Genre:       req.Genre,
		Duration:    req.Duration,
		ReleaseDate: req.ReleaseDate,
		Explicit:    req.Explicit,
	}, req.Collaborators)
	if err != nil {
		log.Error("failed to add song", sl.Err(err))
		status, body := response.FromError(err)
		render.Status(r, status)
		render.JSON(w, r, body)
		return
	}

	log.Info("added new song", slog.Int64("song_id", id))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"song_id": id,
	}))
}
