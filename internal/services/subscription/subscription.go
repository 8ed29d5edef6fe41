// Package services содержит бизнес-логику управления окнами доступа:
// статус подписки с обратным отсчётом для баннера и административные
// операции выдачи и отзыва платного доступа.
package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/exam-trainer/internal/access"
	"github.com/magabrotheeeer/exam-trainer/internal/models"
)

// UserRepository описывает операции над записями пользователей в хранилище.
type UserRepository interface {
	// GetUserByUsername возвращает пользователя по имени.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	// UpdateSubscriptionExpiry выставляет дату окончания подписки, nil очищает её.
	UpdateSubscriptionExpiry(ctx context.Context, username string, expiry *time.Time) error
}

// Status агрегированное состояние доступа пользователя для UI.
//
// Window называет окно, по которому доступ активен ("subscription" или
// "trial"); Remaining раскладывает остаток этого окна для таймера.
type Status struct {
	Active    bool             `json:"active"`
	Window    string           `json:"window,omitempty"`
	ExpiresAt *time.Time       `json:"expires_at,omitempty"`
	Remaining access.Remaining `json:"remaining"`
}

// SubscriptionService реализует операции над окнами доступа.
type SubscriptionService struct {
	users  UserRepository
	policy access.Policy
	log    *slog.Logger
}

// NewSubscriptionService создает новый экземпляр SubscriptionService.
func NewSubscriptionService(users UserRepository, policy access.Policy, log *slog.Logger) *SubscriptionService {
	return &SubscriptionService{
		users:  users,
		policy: policy,
		log:    log,
	}
}

// GetStatus возвращает состояние доступа пользователя на текущий момент.
//
// Запись пользователя читается заново при каждом вызове: выдача или отзыв
// подписки администратором должны действовать немедленно, поэтому статус
// не кэшируется. Остаток считается от абсолютной даты окончания окна —
// клиентский таймер переопрашивает эндпоинт, а не декрементирует счётчик.
func (s *SubscriptionService) GetStatus(ctx context.Context, username string) (*Status, error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	st := &Status{Remaining: access.Remaining{Expired: true}}

	if user.SubscriptionExpiry != nil && user.SubscriptionExpiry.After(now) {
		st.Active = true
		st.Window = "subscription"
		st.ExpiresAt = user.SubscriptionExpiry
	} else if s.policy.HonorTrial && user.TrialEndDate != nil && user.TrialEndDate.After(now) {
		st.Active = true
		st.Window = "trial"
		st.ExpiresAt = user.TrialEndDate
	}

	if st.ExpiresAt != nil {
		st.Remaining = access.TimeRemaining(*st.ExpiresAt, now)
	}
	return st, nil
}

// Grant выдает пользователю платный доступ на указанное число месяцев от текущего момента.
func (s *SubscriptionService) Grant(ctx context.Context, username string, months int) (time.Time, error) {
	expiry := time.Now().UTC().AddDate(0, months, 0)
	if err := s.users.UpdateSubscriptionExpiry(ctx, username, &expiry); err != nil {
		return time.Time{}, err
	}
	s.log.Info("subscription granted",
		slog.String("username", username), slog.Int("months", months))
	return expiry, nil
}

// Revoke отзывает платный доступ пользователя.
func (s *SubscriptionService) Revoke(ctx context.Context, username string) error {
	if err := s.users.UpdateSubscriptionExpiry(ctx, username, nil); err != nil {
		return err
	}
	s.log.Info("subscription revoked", slog.String("username", username))
	return nil
}
