// Package services содержит проверку политики единственного активного устройства.
//
// Guard сравнивает токен устройства, присланный клиентом, со значением,
// записанным в учётной записи при последнем входе. Запись пользователя
// читается заново при каждой проверке — устаревшая копия сделала бы
// обнаружение конкурирующей сессии недетерминированным.
package services

import (
	"context"
	"log/slog"

	"github.com/magabrotheeeer/exam-trainer/internal/lib/sl"
	"github.com/magabrotheeeer/exam-trainer/internal/models"
)

// Verdict результат проверки активного устройства.
type Verdict int

const (
	// VerdictAuthorized текущая сессия остаётся действительной.
	VerdictAuthorized Verdict = iota
	// VerdictConflict вход выполнен с другого устройства, сессию нужно завершить.
	VerdictConflict
)

// UserProvider описывает чтение записи пользователя из хранилища.
type UserProvider interface {
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// Guard реализует проверку единственного активного устройства.
type Guard struct {
	users UserProvider
	log   *slog.Logger
}

// NewGuard создает новый экземпляр Guard.
func NewGuard(users UserProvider, log *slog.Logger) *Guard {
	return &Guard{
		users: users,
		log:   log,
	}
}

// Check выносит вердикт по паре (пользователь, токен устройства).
//
// Правила в порядке применения: аноним и администратор не проверяются;
// пустой active_device_id означает, что отслеживаемого входа ещё не было;
// несовпадение токенов — конкурирующая сессия. Ошибка чтения хранилища
// не валит проверку (fail open): принудительный выход из-за временного
// сбоя хуже краткого окна ослабленного контроля.
func (g *Guard) Check(ctx context.Context, username, deviceToken string) Verdict {
	const op = "sessionguard.Check"

	if username == "" {
		return VerdictAuthorized
	}

	user, err := g.users.GetUserByUsername(ctx, username)
	if err != nil {
		g.log.Warn("device check skipped, failed to read user",
			slog.String("op", op), slog.String("username", username), sl.Err(err))
		return VerdictAuthorized
	}

	if user.IsAdmin() {
		return VerdictAuthorized
	}
	if user.ActiveDeviceID == nil {
		return VerdictAuthorized
	}
	if *user.ActiveDeviceID != deviceToken {
		g.log.Info("conflicting session detected",
			slog.String("op", op), slog.String("username", username))
		return VerdictConflict
	}
	return VerdictAuthorized
}
