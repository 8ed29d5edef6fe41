// Package save реализует HTTP-обработчик записи результата теста.
package save

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/exam-trainer/internal/http/middlewarectx"
	"github.com/magabrotheeeer/exam-trainer/internal/http/response"
	"github.com/magabrotheeeer/exam-trainer/internal/lib/sl"
	"github.com/magabrotheeeer/exam-trainer/internal/models"
)

// Service описывает интерфейс записи результатов.
type Service interface {
	Save(ctx context.Context, userUID string, req models.DummyResult) (int, error)
}

// Handler обрабатывает HTTP-запросы сохранения результата.
type Handler struct {
	log            *slog.Logger        // Логгер для записи операций и ошибок
	resultsService Service             // Сервис результатов
	validate       *validator.Validate // Валидатор для проверки входных данных
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, resultsService Service) *Handler {
	return &Handler{
		log:            log,
		resultsService: resultsService,
		validate:       validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Сохранение результата теста
// @Description Записывает результат одной попытки прохождения теста текущего пользователя.
// @Tags Results
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body models.DummyResult true "Результат попытки"
// @Success 200 {object} response.Response "Результат сохранён"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не аутентифицирован"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Router /results [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.results.save"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("user is not authenticated"))
		return
	}

	var req models.DummyResult
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

	id, err := h.resultsService.Save(r.Context(), userUID, req)
	if err != nil {
		log.Error("failed to save result", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal service error"))
		return
	}

	log.Info("result saved", slog.Int("id", id))
	render.JSON(w, r, response.OKWithData(map[string]any{"id": id}))
}
