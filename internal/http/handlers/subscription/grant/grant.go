// Package grant реализует HTTP-обработчик выдачи платного доступа
// (административная операция). Изменение действует немедленно:
// проверки доступа читают запись пользователя заново на каждый запрос.
package grant

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/exam-trainer/internal/http/response"
	"github.com/magabrotheeeer/exam-trainer/internal/lib/sl"
	"github.com/magabrotheeeer/exam-trainer/internal/storage/repository"
)

// Request — структура входных данных для выдачи подписки.
type Request struct {
	Username string `json:"username" validate:"required,min=3,max=50"` // Кому выдаётся доступ
	Months   int    `json:"months" validate:"required,gt=0"`           // Срок в месяцах
}

// Service описывает интерфейс бизнес-логики выдачи подписки.
type Service interface {
	Grant(ctx context.Context, username string, months int) (time.Time, error)
}

// Handler обрабатывает HTTP-запросы выдачи подписки.
type Handler struct {
	log        *slog.Logger        // Логгер для записи операций и ошибок
	subService Service             // Сервис подписок
	validate   *validator.Validate // Валидатор для проверки входных данных
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, subService Service) *Handler {
	return &Handler{
		log:        log,
		subService: subService,
		validate:   validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Выдача платного доступа
// @Description Выставляет дату окончания подписки пользователя (только для администратора).
// @Tags Admin
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body Request true "Пользователь и срок подписки"
// @Success 200 {object} response.Response "Подписка выдана"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Router /admin/subscriptions [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.grant"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
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

	expiry, err := h.subService.Grant(r.Context(), req.Username, req.Months)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("user not found"))
			return
		}
		log.Error("failed to grant subscription", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal service error"))
		return
	}

	log.Info("subscription granted", slog.String("username", req.Username))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"username":            req.Username,
		"subscription_expiry": expiry,
	}))
}
