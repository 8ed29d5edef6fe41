// Package stats реализует HTTP-обработчик статистики пользователя по темам.
package stats

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/exam-trainer/internal/http/middlewarectx"
	"github.com/magabrotheeeer/exam-trainer/internal/http/response"
	"github.com/magabrotheeeer/exam-trainer/internal/lib/sl"
	"github.com/magabrotheeeer/exam-trainer/internal/models"
)

// Service описывает интерфейс выдачи статистики.
type Service interface {
	Stats(ctx context.Context, userUID string) ([]*models.TopicStats, error)
}

// Handler обрабатывает HTTP-запросы статистики.
type Handler struct {
	log            *slog.Logger // Логгер для записи операций и ошибок
	resultsService Service      // Сервис результатов
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, resultsService Service) *Handler {
	return &Handler{
		log:            log,
		resultsService: resultsService,
	}
}

// ServeHTTP godoc
// @Summary Статистика по темам
// @Description Возвращает агрегированную статистику попыток текущего пользователя по темам.
// @Tags Results
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} response.Response "Статистика"
// @Failure 401 {object} response.ErrorResponse "Пользователь не аутентифицирован"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /results/stats [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.results.stats"

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

	stats, err := h.resultsService.Stats(r.Context(), userUID)
	if err != nil {
		log.Error("failed to load stats", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal service error"))
		return
	}

	render.JSON(w, r, response.OKWithData(stats))
}
