// Package models содержит доменную модель пользователя системы,
// включающую данные учётной записи, окна доступа (пробный период и подписка)
// и поле активного устройства для политики единственной сессии.
// Структуры используются в бизнес‑логике и при работе с хранилищем.
package models

import "time"

// Роли пользователей.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User представляет зарегистрированного пользователя системы.
//
// TrialEndDate и SubscriptionExpiry — границы окон бесплатного и платного
// доступа; nil означает отсутствие окна. ActiveDeviceID хранит токен
// единственного устройства, которому разрешена сессия (только для role=user);
// перезаписывается при каждом успешном входе.
type User struct {
	UUID               string     // Уникальный идентификатор пользователя
	Email              string     // Электронная почта
	Username           string     // Имя пользователя (уникальное)
	PasswordHash       string     // Хэш пароля пользователя
	Role               string     // Роль пользователя, admin или user
	TrialEndDate       *time.Time // Дата истечения пробного периода
	SubscriptionExpiry *time.Time // Дата истечения оплаченной подписки
	ActiveDeviceID     *string    // Токен активного устройства
	LastLoginAt        *time.Time // Время последнего входа
}

// IsAdmin сообщает, обладает ли пользователь ролью администратора.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
