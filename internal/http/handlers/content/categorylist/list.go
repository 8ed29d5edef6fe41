// Package categorylist реализует HTTP-обработчик списка категорий каталога.
package categorylist

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/exam-trainer/internal/http/response"
	"github.com/magabrotheeeer/exam-trainer/internal/lib/sl"
	"github.com/magabrotheeeer/exam-trainer/internal/models"
)

// Service описывает интерфейс выдачи контента.
type Service interface {
	ListCategories(ctx context.Context) ([]*models.Category, error)
}

// Handler обрабатывает HTTP-запросы списка категорий.
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
// @Summary Список категорий
// @Description Возвращает все категории каталога тем.
// @Tags Content
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} response.Response "Категории"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /categories [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.content.categorylist"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	categories, err := h.contentService.ListCategories(r.Context())
	if err != nil {
		log.Error("failed to list categories", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal service error"))
		return
	}

	render.JSON(w, r, response.OKWithData(categories))
}
