// Package cardcreate реализует HTTP-обработчик выпуска предоплаченной
// карты администратором.
package cardcreate

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

// Request — входные данные для выпуска карты.
type Request struct {
	Number string `json:"card_number" validate:"required,len=16,numeric"`
	Credit int    `json:"credit" validate:"required"`
}

// Service описывает интерфейс бизнес-логики выпуска карт.
type Service interface {
	AddCard(ctx context.Context, adminID int64, number string, credit int) (int64, error)
}

// Handler управляет HTTP-запросами на выпуск карт.
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
// @Summary Выпуск предоплаченной карты
// @Description Администратор выпускает карту с номиналом 15, 25 или 50 и годовым сроком действия.
// @Tags Administration
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body Request true "Номер и номинал карты"
// @Success 200 {object} map[string]any "Идентификатор карты"
// @Failure 400 {object} response.ErrorResponse "Некорректный запрос"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /dbproj/card [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.cardcreate"
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

	id, err := h.service.AddCard(r.Context(), adminID, req.Number, req.Credit)
	if err != nil {
		log.Error("failed to issue card", sl.Err(err))
		status, body := response.FromError(err)
		render.Status(r, status)
		render.JSON(w, r, body)
		return
	}

	log.Info("issued prepaid card", slog.Int64("card_id", id))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"card_id": id,
	}))
}
