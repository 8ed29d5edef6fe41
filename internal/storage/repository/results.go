package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/exam-trainer/internal/models"
)

// SaveResult сохраняет результат попытки прохождения теста и возвращает его ID.
func (s *Storage) SaveResult(ctx context.Context, result models.Result) (int, error) {
	const op = "storage.SaveResult"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newID int
	query := `INSERT INTO results (user_uid, topic_id, total_questions, correct_count, wrong_count)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id;`
	if err := s.DB.QueryRowContext(ctx, query,
		result.UserUID, result.TopicID, result.TotalQuestions,
		result.CorrectCount, result.WrongCount).Scan(&newID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetTopicStats возвращает агрегированную статистику пользователя по темам.
func (s *Storage) GetTopicStats(ctx context.Context, userUID string) ([]*models.TopicStats, error) {
	const op = "storage.GetTopicStats"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT topic_id,
			      COUNT(*) AS attempts,
			      COALESCE(SUM(correct_count), 0) AS correct_sum,
			      COALESCE(SUM(wrong_count), 0) AS wrong_sum,
			      ROUND(100.0 * COALESCE(SUM(correct_count), 0) /
			          NULLIF(SUM(total_questions), 0), 2) AS percentage
			  FROM results
			  WHERE user_uid = $1
			  GROUP BY topic_id
			  ORDER BY topic_id;`
	rows, err := s.DB.QueryContext(ctx, query, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	var result []*models.TopicStats
	for rows.Next() {
		var st models.TopicStats
		if err = rows.Scan(&st.TopicID, &st.Attempts, &st.CorrectCount,
			&st.WrongCount, &st.Percentage); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &st)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
