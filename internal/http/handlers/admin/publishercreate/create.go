// Package publishercreate реализует HTTP-обработчик добавления издателя.
package publishercreate

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/soundvault/soundvault/internal/http/response"
	"github.com/soundvault/soundvault/internal/lib/sl"
)

// Request — входные данные для добавления издателя.
type Request struct {
	Name  string `json:"name" validate:"required,max=512"`
	Email string `json:"email" validate:"required,email,max=512"`
}

// Service описывает интерфейс бизнес-логики добавления издателя.
type Service interface {
	AddPublisher(ctx context.Context, name, email string) (int64, error)
}

// Handler управляет HTTP-запросами на добавление издателей.
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
// @Summary Добавление издателя
// @Description Администратор добавляет издателя с уникальной почтой.
// @Tags Administration
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body Request true "Имя и почта издателя"
// @Success 200 {object} map[string]any "Идентификатор издателя"
// @Failure 400 {object} response.ErrorResponse "Некорректный запрос"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /dbproj/publisher [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.publishercreate"
	log := h.log.With(
		sl.Op(op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

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

	id, err := h.service.AddPublisher(r.Context(), req.Name, req.Email)
	if err != nil {
		log.Error("failed to add publisher", sl.Err(err))
		status, body := response.FromError(err)
		render.Status(r, status)
		render.JSON(w, r, body)
		return
	}

	log.Info("added publisher", slog.Int64("publisher_id", id))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"publisher_id": id,
	}))
}
