package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"todoapp/internal/domain/errors"
	"todoapp/internal/domain/models"
)

type Storage struct {
	mu       sync.RWMutex
	tasks    map[int64]models.Task
	sessions map[string]models.Session
	nextID   int64
}

func NewStorage() *Storage {
	return &Storage{
		tasks:    make(map[int64]models.Task),
		sessions: make(map[string]models.Session),
	}
}

// AddSession регистрирует сессию так, как это сделала бы внешняя система аутентификации.
func (s *Storage) AddSession(session models.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.Token] = session
}

func (s *Storage) FindSessionByToken(ctx context.Context, token string) (*models.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, exists := s.sessions[token]
	if !exists {
		return nil, errors.ErrInvalidSessionToken
	}
	return &session, nil
}

func (s *Storage) CreateTask(ctx context.Context, task *models.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	now := time.Now().UTC()
	task.ID = s.nextID
	task.IsCompleted = false
	task.CreatedAt = now
	task.UpdatedAt = now
	s.tasks[task.ID] = *task
	return nil
}

func (s *Storage) GetTask(ctx context.Context, userID string, taskID int64) (*models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	task, exists := s.tasks[taskID]
	if !exists || task.UserID != userID {
		return nil, errors.ErrTaskNotFound
	}
	return &task, nil
}

func (s *Storage) ListTasks(ctx context.Context, userID string) ([]models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tasks := []models.Task{}
	for _, t := range s.tasks {
		if t.UserID == userID {
			tasks = append(tasks, t)
		}
	}
	sort.Slice(tasks, func(i, j int) bool {
		if !tasks[i].CreatedAt.Equal(tasks[j].CreatedAt) {
			return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
		}
		return tasks[i].ID > tasks[j].ID
	})
	return tasks, nil
}

func (s *Storage) UpdateTask(ctx context.Context, userID string, taskID int64, patch *models.UpdateTaskRequest) (*models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, exists := s.tasks[taskID]
	if !exists || task.UserID != userID {
		return nil, errors.ErrTaskNotFound
	}

	patch.Apply(&task)
	task.UpdatedAt = time.Now().UTC()
	s.tasks[taskID] = task
	return &task, nil
}

func (s *Storage) DeleteTask(ctx context.Context, userID string, taskID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, exists := s.tasks[taskID]
	if !exists || task.UserID != userID {
		return errors.ErrTaskNotFound
	}
	delete(s.tasks, taskID)
	return nil
}

func (s *Storage) ToggleTaskCompletion(ctx context.Context, userID string, taskID int64) (*models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, exists := s.tasks[taskID]
	if !exists || task.UserID != userID {
		return nil, errors.ErrTaskNotFound
	}

	task.IsCompleted = !task.IsCompleted
	task.UpdatedAt = time.Now().UTC()
	s.tasks[taskID] = task
	return &task, nil
}
