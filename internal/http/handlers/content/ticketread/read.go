// Package ticketread реализует HTTP-обработчик чтения экзаменационного билета.
package ticketread

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
	GetTicket(ctx context.Context, username, ticketID string) (*models.Ticket, error)
}

// Handler обрабатывает HTTP-запросы чтения билета.
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
// @Summary Чтение билета
// @Description Возвращает билет по идентификатору. Премиум-билеты требуют активного окна доступа.
// @Tags Content
// @Produce  json
// @Security BearerAuth
// @Param id path string true "Идентификатор билета"
// @Success 200 {object} response.Response "Билет"
// @Failure 403 {object} response.Response "Требуется подписка"
// @Failure 404 {object} response.ErrorResponse "Билет не найден"
// @Router /tickets/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.content.ticketread"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	username, _ := r.Context().Value(middlewarectx.User).(string)
	ticketID := chi.URLParam(r, "id")

	ticket, err := h.contentService.GetTicket(r.Context(), username, ticketID)
	if err != nil {
		switch {
		case errors.Is(err, contentservice.ErrPremiumRequired):
			w.WriteHeader(http.StatusForbidden)
			render.JSON(w, r, response.ErrorWithRedirect("premium subscription required", PremiumRedirect))
		case errors.Is(err, repository.ErrNotFound):
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("ticket not found"))
		default:
			log.Error("failed to read ticket", sl.Err(err))
			w.WriteHeader(http.StatusForbidden)
			render.JSON(w, r, response.ErrorWithRedirect("access check failed", PremiumRedirect))
		}
		return
	}

	render.JSON(w, r, response.OKWithData(ticket))
}
