// Package revoke реализует HTTP-обработчик отзыва платного доступа
// (административная операция).
package revoke

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/exam-trainer/internal/http/response"
	"github.com/magabrotheeeer/exam-trainer/internal/lib/sl"
	"github.com/magabrotheeeer/exam-trainer/internal/storage/repository"
)

// Service описывает интерфейс бизнес-логики отзыва подписки.
type Service interface {
	Revoke(ctx context.Context, username string) error
}

// Handler обрабатывает HTTP-запросы отзыва подписки.
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
// @Summary Отзыв платного доступа
// @Description Очищает дату окончания подписки пользователя (только для администратора).
// @Tags Admin
// @Produce  json
// @Security BearerAuth
// @Param username path string true "Имя пользователя"
// @Success 200 {object} response.Response "Подписка отозвана"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Router /admin/subscriptions/{username} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.revoke"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	username := chi.URLParam(r, "username")
	if username == "" {
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("username is required"))
		return
	}

	if err := h.subService.Revoke(r.Context(), username); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("user not found"))
			return
		}
		log.Error("failed to revoke subscription", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal service error"))
		return
	}

	log.Info("subscription revoked", slog.String("username", username))
	render.JSON(w, r, response.OKWithData(map[string]any{"username": username}))
}
