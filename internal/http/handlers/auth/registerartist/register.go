// Package registerartist реализует HTTP-обработчик регистрации
// исполнителя администратором.
package registerartist

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

// Request — входные данные для регистрации исполнителя.
type Request struct {
	Username    string `json:"username" validate:"required,max=512"`
	Password    string `json:"password" validate:"required,max=512"`
	Email       string `json:"email" validate:"required,max=512"`
	StageName   string `json:"stage_name" validate:"required,max=512"`
	PublisherID int64  `json:"publisher_id" validate:"required,min=1"`
}

// Service описывает интерфейс бизнес-логики регистрации исполнителя.
type Service interface {
	RegisterArtist(ctx context.Context, adminID int64, username, rawPassword, email, stageName string, publisherID int64) (int64, error)
}

// Handler управляет HTTP-запросами на регистрацию исполнителей.
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
// @Summary Регистрация исполнителя
// @Description Администратор создает учётную запись исполнителя, привязанную к издателю.
// @Tags Auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body Request true "Данные нового исполнителя"
// @Success 200 {object} map[string]any "Идентификатор пользователя"
// @Failure 400 {object} response.ErrorResponse "Некорректный запрос"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /dbproj/artist [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.registerartist"
	log := h.log.With(
		sl.Op(op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	adminID, _, ok := middlewarectx.Identity(r.Context())
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

	id, err := h.service.RegisterArtist(r.Context(), adminID,
		req.Username, req.Password, req.Email, req.StageName, req.PublisherID)
	if err != nil {
		log.Error("registration failed", sl.Err(err))
		status, body := response.FromError(err)
		render.Status(r, status)
		render.JSON(w, r, body)
		return
	}

	log.Info("registered new artist", slog.Int64("user_id", id))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"user_id": id,
	}))
}
