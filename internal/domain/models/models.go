package models

import (
	"strings"
	"time"
)

type Task struct {
	ID          int64     `json:"id"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	IsCompleted bool      `json:"is_completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Session — запись из таблицы session, заполняемой внешней системой аутентификации.
type Session struct {
	Token     string
	UserID    string
	ExpiresAt time.Time
}

type CreateTaskRequest struct {
	Title       string  `json:"title" validate:"required,max=200"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
}

type UpdateTaskRequest struct {
	Title       *string `json:"title" validate:"omitempty,max=200"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
}

func (r *CreateTaskRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	if r.Description != nil {
		trimmed := strings.TrimSpace(*r.Description)
		if trimmed == "" {
			r.Description = nil
		} else {
			r.Description = &trimmed
		}
	}
}

// Normalize обрезает пробелы в переданных полях. Пустое описание после обрезки
// остаётся пустой строкой: это явный запрос на очистку описания.
func (r *UpdateTaskRequest) Normalize() {
	if r.Title != nil {
		trimmed := strings.TrimSpace(*r.Title)
		r.Title = &trimmed
	}
	if r.Description != nil {
		trimmed := strings.TrimSpace(*r.Description)
		r.Description = &trimmed
	}
}

// Apply накладывает частичное обновление на задачу: отсутствующие поля не меняются.
func (r *UpdateTaskRequest) Apply(task *Task) {
	if r.Title != nil {
		task.Title = *r.Title
	}
	if r.Description != nil {
		if *r.Description == "" {
			task.Description = nil
		} else {
			desc := *r.Description
			task.Description = &desc
		}
	}
}
