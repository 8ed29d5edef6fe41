// Package services содержит бизнес-логику записи результатов тестов
// и выдачи агрегированной статистики по темам.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/exam-trainer/internal/models"
)

// ResultRepository определяет методы для работы с результатами в хранилище.
type ResultRepository interface {
	// SaveResult сохраняет результат попытки и возвращает его ID.
	SaveResult(ctx context.Context, result models.Result) (int, error)
	// GetTopicStats возвращает агрегированную статистику пользователя по темам.
	GetTopicStats(ctx context.Context, userUID string) ([]*models.TopicStats, error)
}

// ResultsService реализует запись и агрегацию результатов тестов.
type ResultsService struct {
	repo ResultRepository
	log  *slog.Logger
}

// NewResultsService создает новый экземпляр ResultsService.
func NewResultsService(repo ResultRepository, log *slog.Logger) *ResultsService {
	return &ResultsService{
		repo: repo,
		log:  log,
	}
}

// Save записывает результат одной попытки прохождения теста.
func (s *ResultsService) Save(ctx context.Context, userUID string, req models.DummyResult) (int, error) {
	if req.CorrectCount+req.WrongCount > req.TotalQuestions {
		return 0, fmt.Errorf("answers count exceeds total questions")
	}

	result := models.Result{
		UserUID:        userUID,
		TopicID:        req.TopicID,
		TotalQuestions: req.TotalQuestions,
		CorrectCount:   req.CorrectCount,
		WrongCount:     req.WrongCount,
	}
	id, err := s.repo.SaveResult(ctx, result)
	if err != nil {
		return 0, err
	}
	s.log.Info("saved test result", slog.Int("id", id), slog.String("topic_id", req.TopicID))
	return id, nil
}

// Stats возвращает агрегированную статистику пользователя по темам.
func (s *ResultsService) Stats(ctx context.Context, userUID string) ([]*models.TopicStats, error) {
	return s.repo.GetTopicStats(ctx, userUID)
}
