// Package add реализует HTTP-обработчик добавления комментария к песне.
// Один обработчик обслуживает и начало треда, и ответ: маршрут с
// параметром parent_id делает комментарий ответом.
package add

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/soundvault/soundvault/internal/http/middlewarectx"
	"github.com/soundvault/soundvault/internal/http/response"
	"github.com/soundvault/soundvault/internal/lib/sl"
)

// Request — входные данные для комментария.
type Request struct {
	Content string `json:"content" validate:"required,max=512"`
}

// Service описывает интерфейс бизнес-логики комментариев.
type Service interface {
	AddComment(ctx context.Context, songID, consumerID int64, content string) (int64, error)
	ReplyToComment(ctx context.Context, songID, parentID, consumerID int64, content string) (int64, error)
}

// Handler управляет HTTP-запросами на добавление комментариев.
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
// @Summary Комментарий к песне
// @Description Добавляет комментарий к песне; с parent_id в пути — ответ в существующий тред.
// @Tags Comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param song_id path int true "Идентификатор песни"
// @Param parent_id path int false "Идентификатор начала треда"
// @Param request body Request true "Текст комментария"
// @Success 200 {object} map[string]any "Идентификатор комментария"
// @Failure 400 {object} response.ErrorResponse "Некорректный запрос"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /dbproj/comment/{song_id} [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.comment.add"
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

	songID, err := strconv.ParseInt(chi.URLParam(r, "song_id"), 10, 64)
	if err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("song ID must be an integer"))
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

	var id int64
	if rawParent := chi.URLParam(r, "parent_id"); rawParent != "" {
		parentID, err := strconv.ParseInt(rawParent, 10, 64)
		if err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("parent comment ID must be an integer"))
			return
		}
		id, err = h.service.ReplyToComment(r.Context(), songID, parentID, consumerID, req.Content)
		if err != nil {
			log.Error("failed to add reply", sl.Err(err))
			status, body := response.FromError(err)
			render.Status(r, status)
			render.JSON(w, r, body)
			return
		}
	} else {
		id, err = h.service.AddComment(r.Context(), songID, consumerID, req.Content)
		if err != nil {
			log.Error("failed to add comment", sl.Err(err))
			status, body := response.FromError(err)
			render.Status(r, status)
			render.JSON(w, r, body)
			return
		}
	}

	log.Info("added comment", slog.Int64("comment_id", id))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"comment_id": id,
	}))
}
