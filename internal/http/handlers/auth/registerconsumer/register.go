// Package registerconsumer реализует HTTP-обработчик публичной
// регистрации потребителя.
//
// Handler принимает JSON с учётными данными и профилем, валидирует их,
// вызывает бизнес-логику регистрации и возвращает идентификатор
// созданного пользователя.
package registerconsumer

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

// Request — входные данные для регистрации потребителя.
type Request struct {
	Username    string `json:"username" validate:"required,max=512"`
	Password    string `json:"password" validate:"required,max=512"`
	Email       string `json:"email" validate:"required,max=512"`
	Birthday    string `json:"birthday" validate:"required"`
	DisplayName string `json:"display_name" validate:"required,max=512"`
}

// Service описывает интерфейс бизнес-логики регистрации потребителя.
type Service interface {
	RegisterConsumer(ctx context.Context, username, rawPassword, email, birthday, displayName string) (int64, error)
}

// Handler управляет HTTP-запросами на регистрацию потребителей.
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
// @Summary Регистрация потребителя
// @Description Создает учётную запись потребителя и возвращает её идентификатор.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body Request true "Данные нового потребителя"
// @Success 200 {object} map[string]any "Идентификатор пользователя"
// @Failure 400 {object} response.ErrorResponse "Некорректный запрос"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /dbproj/consumer [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.registerconsumer"
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

	id, err := h.service.RegisterConsumer(r.Context(),
		req.Username, req.Password, req.Email, req.Birthday, req.DisplayName)
	if err != nil {
		log.Error("registration failed", sl.Err(err))
		status, body := response.FromError(err)
		render.Status(r, status)
		render.JSON(w, r, body)
		return
	}

	log.Info("registered new consumer", slog.Int64("user_id", id))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"user_id": id,
	}))
}
