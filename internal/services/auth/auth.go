// Package services содержит логику бизнес-уровня для работы с пользователями и аутентификацией.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/exam-trainer/internal/lib/jwt"
	"github.com/magabrotheeeer/exam-trainer/internal/lib/password"
	"github.com/magabrotheeeer/exam-trainer/internal/models"
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// RegisterUser сохраняет нового пользователя и возвращает его ID.
	RegisterUser(ctx context.Context, user models.User) (string, error)

	// GetUserByUsername возвращает пользователя по имени или ошибку, если не найден.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	// UpdateActiveDevice записывает токен активного устройства и время входа.
	UpdateActiveDevice(ctx context.Context, username, deviceID string, loginAt time.Time) error

	// ClearActiveDevice сбрасывает токен активного устройства.
	ClearActiveDevice(ctx context.Context, username string) error
}

// Session результат разбора сессионной cookie для маршрутного шлюза.
//
// Authenticated означает, что токен корректен; User при этом может быть nil,
// если запись пользователя не удалось прочитать (ошибка передаётся отдельно).
// RefreshedToken не пуст, если токен был близок к истечению и перевыпущен.
type Session struct {
	Authenticated  bool
	User           *models.User
	RefreshedToken string
}

// AuthService отвечает за регистрацию, вход, выход и разбор сессий.
type AuthService struct {
	users     UserRepository
	jwtMaker  jwt.Maker
	trialDays int
	tokenTTL  time.Duration
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker, trialDays int, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		users:     users,
		jwtMaker:  jwtMaker,
		trialDays: trialDays,
		tokenTTL:  tokenTTL,
	}
}

// Register создает нового пользователя с хэшированием пароля и дефолтной ролью "user".
// Пробный период отсчитывается от момента регистрации.
func (s *AuthService) Register(ctx context.Context, email, username, rawPassword string) (string, error) {
	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return "", err
	}
	trialEndDate := time.Now().UTC().AddDate(0, 0, s.trialDays)
	user := &models.User{
		Email:        email,
		Username:     username,
		PasswordHash: hashed,
		Role:         models.RoleUser, // дефолтная роль при регистрации
		TrialEndDate: &trialEndDate,
	}
	return s.users.RegisterUser(ctx, *user)
}

// Login проверяет пароль пользователя, выпускает свежий токен устройства
// и генерирует JWT.
//
// Токен устройства перезаписывает предыдущий одним UPDATE без блокировок:
// при двух одновременных входах побеждает последняя запись, прежняя сессия
// отсеется на ближайшей проверке устройства.
func (s *AuthService) Login(ctx context.Context, username, rawPassword string) (token, deviceID, role string, err error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		return "", "", "", err
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", "", "", errors.New("invalid credentials")
	}

	deviceID = uuid.NewString()
	if err = s.users.UpdateActiveDevice(ctx, username, deviceID, time.Now().UTC()); err != nil {
		return "", "", "", err
	}

	token, err = s.jwtMaker.GenerateToken(user.Username, user.Role, user.UUID)
	if err != nil {
		return "", "", "", err
	}
	return token, deviceID, user.Role, nil
}

// Logout сбрасывает токен активного устройства пользователя.
func (s *AuthService) Logout(ctx context.Context, username string) error {
	return s.users.ClearActiveDevice(ctx, username)
}

// ValidateToken проверяет JWT и возвращает информацию о пользователе из claims.
func (s *AuthService) ValidateToken(_ context.Context, token string) (*models.User, error) {
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return nil, err
	}
	return &models.User{
		Username: claims.Username,
		Role:     claims.Role,
		UUID:     claims.UserUID,
	}, nil
}

// ResolveSession разбирает сессионную cookie для маршрутного шлюза.
//
// Невалидный или истёкший токен — это анонимный запрос, не ошибка.
// Ошибка чтения записи пользователя возвращается вызывающему вместе с
// признаком Authenticated, чтобы шлюз сам выбрал fail-open или fail-closed.
// Токен, доживающий последнюю половину TTL, перевыпускается.
func (s *AuthService) ResolveSession(ctx context.Context, token string) (Session, error) {
	const op = "auth.ResolveSession"

	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return Session{}, nil
	}

	sess := Session{Authenticated: true}
	// токен без exp перевыпускается, чтобы получить ограниченный срок жизни
	if claims.ExpiresAt == nil || time.Until(claims.ExpiresAt.Time) < s.tokenTTL/2 {
		refreshed, err := s.jwtMaker.GenerateToken(claims.Username, claims.Role, claims.UserUID)
		if err == nil {
			sess.RefreshedToken = refreshed
		}
	}

	user, err := s.users.GetUserByUsername(ctx, claims.Username)
	if err != nil {
		return sess, fmt.Errorf("%s: %w", op, err)
	}
	sess.User = user
	return sess, nil
}
