// Package status реализует HTTP-обработчик выдачи состояния доступа:
// активно ли окно подписки или пробного периода и структурированный
// остаток времени для таймера обратного отсчёта.
package status

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/exam-trainer/internal/http/middlewarectx"
	"github.com/magabrotheeeer/exam-trainer/internal/http/response"
	"github.com/magabrotheeeer/exam-trainer/internal/lib/sl"
	subservice "github.com/magabrotheeeer/exam-trainer/internal/services/subscription"
)

// Service описывает интерфейс бизнес-логики статуса подписки.
type Service interface {
	GetStatus(ctx context.Context, username string) (*subservice.Status, error)
}

// Handler обрабатывает HTTP-запросы статуса подписки.
type Handler struct {
	log        *slog.Logger // Логгер для записи операций и ошибок
	subService Service      // Сервис подписок
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, subService Service) *Handler {
	return &Handler{
		log:        log,
		subService: subService,
	}
}

// ServeHTTP godoc
// @Summary Статус доступа пользователя
// @Description Возвращает активное окно доступа и остаток времени до его окончания. Клиентский таймер переопрашивает эндпоинт, остаток всегда считается от абсолютной даты окончания.
// @Tags Subscription
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} response.Response "Статус доступа"
// @Failure 401 {object} response.ErrorResponse "Нет аутентификации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /subscription/status [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.status"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	username, ok := r.Context().Value(middlewarectx.User).(string)
	if !ok || username == "" {
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("user identification missing"))
		return
	}

	st, err := h.subService.GetStatus(r.Context(), username)
	if err != nil {
		log.Error("failed to get subscription status", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal service error"))
		return
	}

	render.JSON(w, r, response.OKWithData(st))
}
