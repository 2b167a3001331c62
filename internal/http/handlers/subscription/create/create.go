// Package create реализует HTTP-обработчик оформления подписки.
//
// Handler принимает период и список предоплаченных карт, вызывает
// бизнес-логику оформления с оплатой и возвращает идентификатор
// подписки и признак продления.
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

// Request — входные данные для оформления подписки.
type Request struct {
	Period string   `json:"period" validate:"required"`
	Cards  []string `json:"cards" validate:"required,min=1,max=10000,dive,len=16,numeric"`
}

// Service описывает интерфейс бизнес-логики оформления подписки.
type Service interface {
	Subscribe(ctx context.Context, consumerID int64, role models.Role, periodName string, cards []string) (*models.SubscriptionReceipt, error)
}

// Handler управляет HTTP-запросами на оформление подписок.
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
// @Summary Оформление подписки
// @Description Оформляет подписку указанного периода с оплатой предоплаченными картами в присланном порядке.
// @Tags Subscriptions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body Request true "Период и карты оплаты"
// @Success 200 {object} map[string]any "Идентификатор подписки"
// @Failure 400 {object} response.ErrorResponse "Некорректный запрос или нехватка средств"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /dbproj/subscription [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.create"
	log := h.log.With(
		sl.Op(op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	consumerID, role, ok := middlewarectx.Identity(r.Context())
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

	receipt, err := h.service.Subscribe(r.Context(), consumerID, role, req.Period, req.Cards)
	if err != nil {
		log.Error("failed to register subscription", sl.Err(err))
		status, body := response.FromError(err)
		render.Status(r, status)
		render.JSON(w, r, body)
		return
	}

	log.Info("registered subscription",
		slog.Int64("subscription_id", receipt.SubscriptionID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"subscription_id": receipt.SubscriptionID,
		"extended":        receipt.Extended,
	}))
}
