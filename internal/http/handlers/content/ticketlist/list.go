// Package ticketlist реализует HTTP-обработчик списка билетов.
// Список не фильтруется по подписке: премиум-билеты показываются
// в каталоге с пометкой, доступ проверяется при чтении билета.
package ticketlist

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
	ListTickets(ctx context.Context) ([]*models.Ticket, error)
}

// Handler обрабатывает HTTP-запросы списка билетов.
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
// @Summary Список билетов
// @Description Возвращает все экзаменационные билеты.
// @Tags Content
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} response.Response "Билеты"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /tickets [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.content.ticketlist"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	tickets, err := h.contentService.ListTickets(r.Context())
	if err != nil {
		log.Error("failed to list tickets", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal service error"))
		return
	}

	render.JSON(w, r, response.OKWithData(tickets))
}
