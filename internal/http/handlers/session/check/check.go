// Package check реализует HTTP-обработчик проверки единственного активного устройства.
//
// Клиент вызывает эндпоинт один раз при монтировании аутентифицированной
// страницы, передавая сохранённый токен устройства в заголовке X-Device-ID.
// При конфликте сессия завершается: cookie сбрасывается, клиенту
// возвращается адрес перехода на страницу входа с признаком конфликта.
package check

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/exam-trainer/internal/http/middlewarectx"
	"github.com/magabrotheeeer/exam-trainer/internal/http/response"
	sessionguard "github.com/magabrotheeeer/exam-trainer/internal/services/sessionguard"
)

// ConflictRedirect адрес перехода при обнаружении конкурирующей сессии.
const ConflictRedirect = "/login?session=conflict"

// DeviceHeader заголовок с токеном устройства из долговременного хранилища клиента.
const DeviceHeader = "X-Device-ID"

// Service описывает интерфейс проверки активного устройства.
type Service interface {
	Check(ctx context.Context, username, deviceToken string) sessionguard.Verdict
}

// Handler обрабатывает HTTP-запросы проверки сессии.
type Handler struct {
	log   *slog.Logger // Логгер для записи операций и ошибок
	guard Service      // Проверка политики единственного устройства
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, guard Service) *Handler {
	return &Handler{
		log:   log,
		guard: guard,
	}
}

// ServeHTTP godoc
// @Summary Проверка активного устройства
// @Description Сверяет токен устройства клиента с записанным при последнем входе. При конфликте завершает сессию.
// @Tags Session
// @Produce  json
// @Security BearerAuth
// @Param X-Device-ID header string true "Токен устройства"
// @Success 200 {object} response.Response "Сессия действительна"
// @Failure 409 {object} response.Response "Вход выполнен с другого устройства"
// @Router /session/check [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.session.check"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	username, _ := r.Context().Value(middlewarectx.User).(string)
	deviceToken := r.Header.Get(DeviceHeader)

	verdict := h.guard.Check(r.Context(), username, deviceToken)
	if verdict == sessionguard.VerdictConflict {
		log.Info("session conflict, forcing logout", slog.String("username", username))
		http.SetCookie(w, middlewarectx.SessionCookie("", 0))
		w.WriteHeader(http.StatusConflict)
		render.JSON(w, r, response.ErrorWithRedirect("signed in on another device", ConflictRedirect))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{"valid": true}))
}
