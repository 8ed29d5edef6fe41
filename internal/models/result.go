// Package models содержит структуры результатов прохождения тестов
// и агрегированной статистики по темам.
package models

import "time"

// Result представляет результат одной попытки прохождения теста.
type Result struct {
	ID             int       // Идентификатор записи
	UserUID        string    // Пользователь, прошедший тест
	TopicID        string    // Тема, к которой относился тест
	TotalQuestions int       // Всего вопросов
	CorrectCount   int       // Правильных ответов
	WrongCount     int       // Неправильных ответов
	CreatedAt      time.Time // Время попытки
}

// DummyResult используется для приёма результата из JSON-запроса.
type DummyResult struct {
	TopicID        string `json:"topic_id" validate:"required,uuid"`       // Тема теста
	TotalQuestions int    `json:"total_questions" validate:"required,gt=0"` // Всего вопросов
	CorrectCount   int    `json:"correct_count" validate:"gte=0"`           // Правильных
	WrongCount     int    `json:"wrong_count" validate:"gte=0"`             // Неправильных
}

// TopicStats агрегированная статистика пользователя по теме.
type TopicStats struct {
	TopicID      string  // Тема
	Attempts     int     // Количество попыток
	CorrectCount int     // Суммарно правильных ответов
	WrongCount   int     // Суммарно неправильных ответов
	Percentage   float64 // Доля правильных ответов, проценты
}
