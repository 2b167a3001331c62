// Package ban реализует HTTP-обработчик наложения бана администратором.
package ban

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

// Request — входные данные для бана. Пустой EndTime означает
// бессрочный бан до ручного снятия.
type Request struct {
	UserID  int64  `json:"user_id" validate:"required,min=1"`
	Reason  string `json:"reason" validate:"required,max=512"`
	EndTime string `json:"end_time"`
}

// Service описывает интерфейс бизнес-логики банов.
type Service interface {
	BanUser(ctx context.Context, adminID, userID int64, reason, endTime string) (int64, error)
}

// Handler управляет HTTP-запросами на наложение банов.
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
// @Summary Бан пользователя
// @Description Администратор банит пользователя с причиной и необязательной датой окончания.
// @Tags Administration
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body Request true "Пользователь, причина и срок"
// @Success 200 {object} map[string]any "Идентификатор бана"
// @Failure 400 {object} response.ErrorResponse "Некорректный запрос или повторный бан"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /dbproj/ban [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.ban"
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

	id, err := h.service.BanUser(r.Context(), adminID, req.UserID, req.Reason, req.EndTime)
	if err != nil {
		log.Error("failed to ban user", sl.Err(err))
		status, body := response.FromError(err)
		render.Status(r, status)
		render.JSON(w, r, body)
		return
	}

	log.Info("banned user",
		slog.Int64("user_id", req.UserID), slog.Int64("ban_id", id))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"ban_id": id,
	}))
}
