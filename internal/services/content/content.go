// Package services содержит бизнес-логику выдачи контента с проверкой доступа
// и кэшированием строк контента.
//
// Решение о доступе принимается на каждый запрос поверх свежей записи
// пользователя; кэшируются только сами строки контента (списки, вопросы),
// но никогда — вердикты доступа.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/exam-trainer/internal/access"
	"github.com/magabrotheeeer/exam-trainer/internal/models"
)

// ErrPremiumRequired возвращается при попытке открыть премиум-контент без активного окна доступа.
var ErrPremiumRequired = errors.New("premium subscription required")

// ContentRepository определяет методы для работы с контентом в хранилище.
type ContentRepository interface {
	// ListCategories возвращает все категории.
	ListCategories(ctx context.Context) ([]*models.Category, error)
	// GetTopic возвращает тему по ID.
	GetTopic(ctx context.Context, id string) (*models.Topic, error)
	// CreateTopic добавляет новую тему и возвращает её ID.
	CreateTopic(ctx context.Context, topic models.Topic) (string, error)
	// GetTicket возвращает билет по ID.
	GetTicket(ctx context.Context, id string) (*models.Ticket, error)
	// ListTickets возвращает все билеты.
	ListTickets(ctx context.Context) ([]*models.Ticket, error)
	// CreateTicket добавляет новый билет и возвращает его ID.
	CreateTicket(ctx context.Context, ticket models.Ticket) (string, error)
	// ListQuestionsByTopic возвращает вопросы темы.
	ListQuestionsByTopic(ctx context.Context, topicID string) ([]*models.Question, error)
}

// UserProvider описывает чтение записи пользователя из хранилища.
type UserProvider interface {
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// ContentService реализует выдачу контента с проверкой доступа.
type ContentService struct {
	repo   ContentRepository
	users  UserProvider
	cache  Cache
	policy access.Policy
	log    *slog.Logger
}

// NewContentService создает новый экземпляр ContentService.
func NewContentService(repo ContentRepository, users UserProvider, cache Cache, policy access.Policy, log *slog.Logger) *ContentService {
	return &ContentService{
		repo:   repo,
		users:  users,
		cache:  cache,
		policy: policy,
		log:    log,
	}
}

// checkAccess проверяет доступ пользователя к элементу контента.
//
// Запись пользователя читается заново: состояние подписки могло измениться
// между запросами. Ошибка чтения закрывает доступ (fail closed) — утечка
// премиум-контента дороже ложного отказа.
func (s *ContentService) checkAccess(ctx context.Context, username string, isPublic bool) error {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		return err
	}
	if !s.policy.CanAccessContent(user, isPublic, time.Now().UTC()) {
		return ErrPremiumRequired
	}
	return nil
}

// ListCategories возвращает категории каталога, используя кеш или репозиторий.
func (s *ContentService) ListCategories(ctx context.Context) ([]*models.Category, error) {
	var result []*models.Category
	const cacheKey = "categories:list"
	found, err := s.cache.Get(cacheKey, &result)
	if err != nil {
		s.log.Warn("cache read failed", slog.String("key", cacheKey), slog.Any("err", err))
	}
	if found {
		return result, nil
	}

	result, err = s.repo.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(cacheKey, result, 5*time.Minute); err != nil {
		s.log.Warn("failed to cache categories", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return result, nil
}

// GetTopicWithQuestions возвращает тему и её вопросы после проверки доступа.
//
// Сама тема (и её флаг is_public) читается из репозитория на каждый запрос;
// кэшируется только список вопросов.
func (s *ContentService) GetTopicWithQuestions(ctx context.Context, username, topicID string) (*models.Topic, []*models.Question, error) {
	topic, err := s.repo.GetTopic(ctx, topicID)
	if err != nil {
		return nil, nil, err
	}
	if err := s.checkAccess(ctx, username, topic.IsPublic); err != nil {
		return nil, nil, err
	}

	var questions []*models.Question
	cacheKey := fmt.Sprintf("topic:questions:%s", topicID)
	found, err := s.cache.Get(cacheKey, &questions)
	if err != nil {
		s.log.Warn("cache read failed", slog.String("key", cacheKey), slog.Any("err", err))
	}
	if !found {
		questions, err = s.repo.ListQuestionsByTopic(ctx, topicID)
		if err != nil {
			return nil, nil, err
		}
		if err := s.cache.Set(cacheKey, questions, time.Hour); err != nil {
			s.log.Warn("failed to cache questions", slog.String("key", cacheKey), slog.Any("err", err))
		}
	}
	return topic, questions, nil
}

// GetTicket возвращает билет после проверки доступа.
func (s *ContentService) GetTicket(ctx context.Context, username, ticketID string) (*models.Ticket, error) {
	ticket, err := s.repo.GetTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if err := s.checkAccess(ctx, username, ticket.IsPublic); err != nil {
		return nil, err
	}
	return ticket, nil
}

// ListTickets возвращает все билеты; доступ не проверяется — список нужен
// для каталога, где премиум-билеты отображаются с пометкой.
func (s *ContentService) ListTickets(ctx context.Context) ([]*models.Ticket, error) {
	var result []*models.Ticket
	const cacheKey = "tickets:list"
	found, err := s.cache.Get(cacheKey, &result)
	if err != nil {
		s.log.Warn("cache read failed", slog.String("key", cacheKey), slog.Any("err", err))
	}
	if found {
		return result, nil
	}

	result, err = s.repo.ListTickets(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(cacheKey, result, 5*time.Minute); err != nil {
		s.log.Warn("failed to cache tickets", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return result, nil
}

// CreateTopic добавляет новую тему (административная операция).
func (s *ContentService) CreateTopic(ctx context.Context, req models.DummyTopic) (string, error) {
	topic := models.Topic{
		CategoryID: req.CategoryID,
		Title:      req.Title,
		IsPublic:   req.IsPublic,
	}
	id, err := s.repo.CreateTopic(ctx, topic)
	if err != nil {
		return "", err
	}
	s.log.Info("created new topic", slog.String("id", id))
	return id, nil
}

// CreateTicket добавляет новый билет (административная операция) и инвалидирует кеш списка.
func (s *ContentService) CreateTicket(ctx context.Context, req models.DummyTicket) (string, error) {
	ticket := models.Ticket{
		Title:    req.Title,
		IsPublic: req.IsPublic,
	}
	if req.Description != "" {
		ticket.Description = &req.Description
	}
	id, err := s.repo.CreateTicket(ctx, ticket)
	if err != nil {
		return "", err
	}
	if err := s.cache.Invalidate("tickets:list"); err != nil {
		s.log.Warn("failed to invalidate tickets cache", slog.Any("err", err))
	}
	s.log.Info("created new ticket", slog.String("id", id))
	return id, nil
}
