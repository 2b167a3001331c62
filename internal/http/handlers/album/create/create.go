// Package create реализует HTTP-обработчик выпуска альбома.
//
// Альбом собирается из уже существующих песен исполнителя и новых
// песен, создаваемых вместе с ним; порядок песен в запросе становится
// порядком в альбоме.
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
	"github.com/soundvault/soundvault/internal/models"
)

// Request — входные данные для выпуска альбома.
type Request struct {
	Title         string               `json:"title" validate:"required,max=512"`
	ReleaseDate   string               `json:"release_date" validate:"required"`
	ExistingSongs []int64              `json:"existing_songs"`
	NewSongs      []models.NewSongSpec `json:"new_songs" validate:"dive"`
}

// Service описывает интерфейс бизнес-логики выпуска альбома.
type Service interface {
	CreateAlbum(ctx context.Context, artistID int64, title, releaseDate string, existingSongs []int64, newSongs []models.NewSongSpec) (int64, error)
}

// Handler управляет HTTP-запросами на выпуск альбомов.
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
// @Summary Выпуск альбома
// @Description Исполнитель выпускает альбом из существующих и новых песен в заданном порядке.
// @Tags Collections
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body Request true "Данные нового альбома"
// @Success 200 {object} map[string]any "Идентификатор альбома"
// @Failure 400 {object} response.ErrorResponse "Некорректный запрос"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /dbproj/album [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.album.create"
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

	id, err := h.service.CreateAlbum(r.Context(), artistID,
		req.Title, req.ReleaseDate, req.ExistingSongs, req.NewSongs)
	if err != nil {
		log.Error("failed to create album", sl.Err(err))
		status, body := response.FromError(err)
		render.Status(r, status)
		render.JSON(w, r, body)
		return
	}

	log.Info("created new album", slog.Int64("album_id", id))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"album_id": id,
	}))
}
