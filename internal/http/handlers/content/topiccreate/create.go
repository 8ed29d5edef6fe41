// Package topiccreate реализует HTTP-обработчик добавления темы
// (административная операция).
package topiccreate

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/exam-trainer/internal/http/response"
	"github.com/magabrotheeeer/exam-trainer/internal/lib/sl"
	"github.com/magabrotheeeer/exam-trainer/internal/models"
)

// Service описывает интерфейс создания контента.
type Service interface {
	CreateTopic(ctx context.Context, req models.DummyTopic) (string, error)
}

// Handler обрабатывает HTTP-запросы добавления темы.
type Handler struct {
	log            *slog.Logger        // Логгер для записи операций и ошибок
	contentService Service             // Сервис контента
	validate       *validator.Validate // Валидатор для проверки входных данных
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, contentService Service) *Handler {
	return &Handler{
		log:            log,
		contentService: contentService,
		validate:       validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Добавление темы
// @Description Создаёт новую тему в категории (только для администратора).
// @Tags Admin
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body models.DummyTopic true "Данные новой темы"
// @Success 200 {object} response.Response "Тема создана"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Router /admin/topics [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.content.topiccreate"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyTopic
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	id, err := h.contentService.CreateTopic(r.Context(), req)
	if err != nil {
		log.Error("failed to create topic", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal service error"))
		return
	}

	log.Info("topic created", slog.String("id", id))
	render.JSON(w, r, response.OKWithData(map[string]any{"id": id}))
}
