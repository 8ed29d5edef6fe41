package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/exam-trainer/internal/models"
)

// ListCategories возвращает все категории каталога.
func (s *Storage) ListCategories(ctx context.Context) ([]*models.Category, error) {
	const op = "storage.ListCategories"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, title, created_at
			  FROM categories
			  ORDER BY created_at`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	var result []*models.Category
	for rows.Next() {
		var c models.Category
		if err = rows.Scan(&c.ID, &c.Title, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CreateTopic сохраняет новую тему и возвращает её ID.
func (s *Storage) CreateTopic(ctx context.Context, topic models.Topic) (string, error) {
	const op = "storage.CreateTopic"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newID string
	query := `INSERT INTO topics (category_id, title, is_public)
			  VALUES ($1, $2, $3)
			  RETURNING id;`
	if err := s.DB.QueryRowContext(ctx, query,
		topic.CategoryID, topic.Title, topic.IsPublic).Scan(&newID); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetTopic возвращает тему по её ID.
func (s *Storage) GetTopic(ctx context.Context, id string) (*models.Topic, error) {
	const op = "storage.GetTopic"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, category_id, title, is_public, created_at
			  FROM topics
			  WHERE id = $1`
	t := &models.Topic{}
	err := s.DB.QueryRowContext(ctx, query, id).Scan(
		&t.ID, &t.CategoryID, &t.Title, &t.IsPublic, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return t, nil
}

// CreateTicket сохраняет новый билет и возвращает его ID.
func (s *Storage) CreateTicket(ctx context.Context, ticket models.Ticket) (string, error) {
	const op = "storage.CreateTicket"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newID string
	query := `INSERT INTO tickets (title, description, is_public)
			  VALUES ($1, $2, $3)
			  RETURNING id;`
	if err := s.DB.QueryRowContext(ctx, query,
		ticket.Title, ticket.Description, ticket.IsPublic).Scan(&newID); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetTicket возвращает билет по его ID.
func (s *Storage) GetTicket(ctx context.Context, id string) (*models.Ticket, error) {
	const op = "storage.GetTicket"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, title, description, is_public, created_at, updated_at
			  FROM tickets
			  WHERE id = $1`
	tk := &models.Ticket{}
	var description sql.NullString
	err := s.DB.QueryRowContext(ctx, query, id).Scan(
		&tk.ID, &tk.Title, &description, &tk.IsPublic, &tk.CreatedAt, &tk.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if description.Valid {
		tk.Description = &description.String
	}
	return tk, nil
}

// ListTickets возвращает все билеты.
func (s *Storage) ListTickets(ctx context.Context) ([]*models.Ticket, error) {
	const op = "storage.ListTickets"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, title, description, is_public, created_at, updated_at
			  FROM tickets
			  ORDER BY created_at`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	var result []*models.Ticket
	for rows.Next() {
		var tk models.Ticket
		var description sql.NullString
		if err = rows.Scan(&tk.ID, &tk.Title, &description, &tk.IsPublic,
			&tk.CreatedAt, &tk.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if description.Valid {
			tk.Description = &description.String
		}
		result = append(result, &tk)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListQuestionsByTopic возвращает вопросы темы в порядке добавления.
func (s *Storage) ListQuestionsByTopic(ctx context.Context, topicID string) ([]*models.Question, error) {
	const op = "storage.ListQuestionsByTopic"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, topic_id, text, answers, correct_answer, time_limit, explanation
			  FROM questions
			  WHERE topic_id = $1
			  ORDER BY created_at`
	rows, err := s.DB.QueryContext(ctx, query, topicID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	var result []*models.Question
	for rows.Next() {
		var q models.Question
		var topic, explanation sql.NullString
		var answersJSON []byte
		if err = rows.Scan(&q.ID, &topic, &q.Text, &answersJSON,
			&q.CorrectAnswer, &q.TimeLimit, &explanation); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		// answers хранятся в jsonb
		if err = json.Unmarshal(answersJSON, &q.Answers); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if topic.Valid {
			q.TopicID = &topic.String
		}
		if explanation.Valid {
			q.Explanation = &explanation.String
		}
		result = append(result, &q)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
