// Package logout реализует HTTP-обработчик выхода из системы:
// сбрасывает сессионную cookie и токен активного устройства.
package logout

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/exam-trainer/internal/http/middlewarectx"
	"github.com/magabrotheeeer/exam-trainer/internal/http/response"
	"github.com/magabrotheeeer/exam-trainer/internal/lib/sl"
)

// Service описывает интерфейс бизнес-логики выхода.
type Service interface {
	Logout(ctx context.Context, username string) error
}

// Handler обрабатывает HTTP-запросы выхода.
type Handler struct {
	log         *slog.Logger // Логгер для записи операций и ошибок
	authService Service      // Сервис аутентификации
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, authService Service) *Handler {
	return &Handler{
		log:         log,
		authService: authService,
	}
}

// ServeHTTP godoc
// @Summary Выход из системы
// @Description Сбрасывает сессионную cookie и токен активного устройства.
// @Tags Auth
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} response.Response "Выход выполнен"
// @Failure 401 {object} response.ErrorResponse "Нет аутентификации"
// @Router /logout [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.logout"

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

	if err := h.authService.Logout(r.Context(), username); err != nil {
		// сбой сброса устройства не мешает завершить локальную сессию
		log.Warn("failed to clear active device", sl.Err(err))
	}

	http.SetCookie(w, middlewarectx.SessionCookie("", 0))

	log.Info("logout", slog.String("username", username))
	render.JSON(w, r, response.OKWithData(nil))
}
