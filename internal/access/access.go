// Package access содержит чистые функции проверки доступа к контенту:
// активна ли подписка или пробный период пользователя и доступен ли
// конкретный элемент контента. Функции не имеют побочных эффектов и
// вызываются на каждый запрос поверх свежей записи пользователя —
// результат никогда не кэшируется, чтобы выдача или отзыв подписки
// администратором действовали немедленно.
package access

import (
	"time"

	"github.com/magabrotheeeer/exam-trainer/internal/models"
)

// Policy описывает политику учёта окон доступа.
//
// HonorTrial включает учёт пробного периода в дополнение к подписке.
// Ревизии продукта расходились в этом месте, поэтому выбор вынесен
// во флаг деплоя (config access.trial_enabled).
type Policy struct {
	HonorTrial bool
}

// HasActiveAccess сообщает, открыто ли у пользователя хотя бы одно окно
// доступа на момент now: оплаченная подписка всегда учитывается, пробный
// период — только при HonorTrial.
//
// Сравнение строгое: окно, заканчивающееся ровно в now, считается истёкшим.
// Отсутствующая дата (nil) трактуется как отсутствие окна, не как ошибка.
func (p Policy) HasActiveAccess(u *models.User, now time.Time) bool {
	if u == nil {
		return false
	}
	if u.SubscriptionExpiry != nil && u.SubscriptionExpiry.After(now) {
		return true
	}
	if p.HonorTrial && u.TrialEndDate != nil && u.TrialEndDate.After(now) {
		return true
	}
	return false
}

// CanAccessContent сообщает, доступен ли пользователю элемент контента.
//
// Публичный контент доступен любому аутентифицированному пользователю
// независимо от состояния подписки; остальной контент требует активного
// окна доступа.
func (p Policy) CanAccessContent(u *models.User, isPublic bool, now time.Time) bool {
	if isPublic {
		return true
	}
	return p.HasActiveAccess(u, now)
}
