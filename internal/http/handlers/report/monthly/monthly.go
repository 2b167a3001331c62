// Package monthly реализует HTTP-обработчик месячного отчёта
// прослушиваний по жанрам.
package monthly

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/soundvault/soundvault/internal/http/middlewarectx"
	"github.com/soundvault/soundvault/internal/http/response"
	"github.com/soundvault/soundvault/internal/lib/sl"
	"github.com/soundvault/soundvault/internal/models"
)

// Service описывает интерфейс бизнес-логики отчётов.
type Service interface {
	MonthlyReport(ctx context.Context, consumerID int64, yearMonth string) ([]models.GenrePlaybacks, error)
}

// Handler управляет HTTP-запросами отчётов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Отчёт о прослушиваниях
// @Description Возвращает прослушивания по месяцам и жанрам за год до указанного месяца включительно.
// @Tags Reports
// @Produce json
// @Security BearerAuth
// @Param year_month path string true "Месяц в формате YYYY-MM"
// @Success 200 {object} map[string]any "Строки отчёта"
// @Failure 400 {object} response.ErrorResponse "Некорректный месяц"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /dbproj/report/{year_month} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.report.monthly"
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

	yearMonth := chi.URLParam(r, "year_month")

	result, err := h.service.MonthlyReport(r.Context(), consumerID, yearMonth)
	if err != nil {
		log.Error("failed to build report", sl.Err(err))
		status, body := response.FromError(err)
		render.Status(r, status)
		render.JSON(w, r, body)
		return
	}

	render.JSON(w, r, response.StatusOKWithData(result))
}
