// Package models содержит доменные структуры контента: категории, темы,
// билеты и вопросы. Флаг IsPublic определяет, доступен ли элемент без
// активной подписки; остальные поля принадлежат контент‑менеджменту.
package models

import "time"

// Category представляет раздел каталога тем.
type Category struct {
	ID        string    // Уникальный идентификатор категории
	Title     string    // Название категории
	CreatedAt time.Time // Дата создания
}

// Topic представляет тему с набором вопросов внутри категории.
type Topic struct {
	ID         string    // Уникальный идентификатор темы
	CategoryID string    // Категория, к которой относится тема
	Title      string    // Название темы
	IsPublic   bool      // Доступна ли тема без подписки
	CreatedAt  time.Time // Дата создания
}

// Ticket представляет экзаменационный билет.
type Ticket struct {
	ID          string    // Уникальный идентификатор билета
	Title       string    // Название билета
	Description *string   // Описание (опционально)
	IsPublic    bool      // Доступен ли билет без подписки
	CreatedAt   time.Time // Дата создания
	UpdatedAt   time.Time // Дата последнего изменения
}

// Question представляет один вопрос теста.
type Question struct {
	ID            string   // Уникальный идентификатор вопроса
	TopicID       *string  // Тема вопроса (опционально)
	Text          string   // Текст вопроса
	Answers       []string // Варианты ответа
	CorrectAnswer int      // Индекс правильного ответа
	TimeLimit     int      // Лимит времени на ответ, секунды
	Explanation   *string  // Пояснение к правильному ответу
}

// DummyTopic используется для приёма данных о новой теме из JSON-запроса.
type DummyTopic struct {
	CategoryID string `json:"category_id" validate:"required,uuid"` // Категория темы
	Title      string `json:"title" validate:"required,min=3"`      // Название
	IsPublic   bool   `json:"is_public"`                            // Публичность
}

// DummyTicket используется для приёма данных о новом билете из JSON-запроса.
type DummyTicket struct {
	Title       string `json:"title" validate:"required,min=3"` // Название
	Description string `json:"description"`                     // Описание
	IsPublic    bool   `json:"is_public"`                       // Публичность
}
