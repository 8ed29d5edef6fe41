// Package topicread реализует HTTP-обработчик чтения темы с вопросами.
//
// Доступ проверяется на каждый запрос: премиум-тема без активного окна
// доступа отклоняется с адресом перехода на дашборд с признаком
// необходимости подписки.
package topicread

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/exam-trainer/internal/http/middlewarectx"
	"github.com/magabrotheeeer/exam-trainer/internal/http/response"
	"github.com/magabrotheeeer/exam-trainer/internal/lib/sl"
	"github.com/magabrotheeeer/exam-trainer/internal/models"
	contentservice "github.com/magabrotheeeer/exam-trainer/internal/services/content"
	"github.com/magabrotheeeer/exam-trainer/internal/storage/repository"
)

// PremiumRedirect адрес перехода при отказе в доступе к премиум-контенту.
const PremiumRedirect = "/dashboard?premium=required"

// Service описывает интерфейс выдачи контента.
type Service interface {
	GetTopicWithQuestions(ctx context.Context, username, topicID string) (*models.Topic, []*models.Question, error)
}

// Handler обрабатывает HTTP-запросы чтения темы.
type Handler struct {
	log            *slog.Logger // Логгер для записи операций и ошибок
	contentService Service      // Сервис контента
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, contentService Service) *Handler {
	return &Handler{
		log:            log,
		contentService: contentService,
	}
}

// ServeHTTP godoc
// @Summary Чтение темы с вопросами
// @Description Возвращает тему и её вопросы. Премиум-темы требуют активного окна доступа.
// @Tags Content
// @Produce  json
// @Security BearerAuth
// @Param id path string true "Идентификатор темы"
// @Success 200 {object} response.Response "Тема и вопросы"
// @Failure 403 {object} response.Response "Требуется подписка"
// @Failure 404 {object} response.ErrorResponse "Тема не найдена"
// @Router /topics/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.content.topicread"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	username, _ := r.Context().Value(middlewarectx.User).(string)
	topicID := chi.URLParam(r, "id")

	topic, questions, err := h.contentService.GetTopicWithQuestions(r.Context(), username, topicID)
	if err != nil {
		switch {
		case errors.Is(err, contentservice.ErrPremiumRequired):
			w.WriteHeader(http.StatusForbidden)
			render.JSON(w, r, response.ErrorWithRedirect("premium subscription required", PremiumRedirect))
		case errors.Is(err, repository.ErrNotFound):
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("topic not found"))
		default:
			// сбой проверки закрывает доступ, а не открывает его
			log.Error("failed to read topic", sl.Err(err))
			w.WriteHeader(http.StatusForbidden)
			render.JSON(w, r, response.ErrorWithRedirect("access check failed", PremiumRedirect))
		}
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"topic":     topic,
		"questions": questions,
	}))
}
