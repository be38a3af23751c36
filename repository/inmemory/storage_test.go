package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todoapp/internal/domain/errors"
	"todoapp/internal/domain/models"
)

func strPtr(s string) *string {
	return &s
}

func createTestTask(t *testing.T, s *Storage, userID, title string, description *string) *models.Task {
	t.Helper()
	task := &models.Task{
		UserID:      userID,
		Title:       title,
		Description: description,
	}
	require.NoError(t, s.CreateTask(context.Background(), task))
	return task
}

func TestCreateTask(t *testing.T) {
	s := NewStorage()

	task := createTestTask(t, s, "user123", "Buy milk", strPtr("2 litres"))

	assert.Equal(t, int64(1), task.ID)
	assert.False(t, task.IsCompleted)
	assert.False(t, task.CreatedAt.IsZero())
	assert.Equal(t, task.CreatedAt, task.UpdatedAt)

	second := createTestTask(t, s, "user123", "Walk the dog", nil)
	assert.Equal(t, int64(2), second.ID)
}

func TestGetTask(t *testing.T) {
	s := NewStorage()
	created := createTestTask(t, s, "user123", "Buy milk", nil)

	tests := []struct {
		name   string
		userID string
		taskID int64
		want   struct {
			err error
		}
	}{
		{
			name:   "own task found",
			userID: "user123",
			taskID: created.ID,
			want: struct {
				err error
			}{
				err: nil,
			},
		},
		{
			name:   "unknown id",
			userID: "user123",
			taskID: 999,
			want: struct {
				err error
			}{
				err: errors.ErrTaskNotFound,
			},
		},
		{
			name:   "task of another user indistinguishable from absent",
			userID: "user456",
			taskID: created.ID,
			want: struct {
				err error
			}{
				err: errors.ErrTaskNotFound,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task, err := s.GetTask(context.Background(), tt.userID, tt.taskID)

			if tt.want.err != nil {
				assert.ErrorIs(t, err, tt.want.err)
				assert.Nil(t, task)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, created.ID, task.ID)
			}
		})
	}
}

func TestListTasks(t *testing.T) {
	s := NewStorage()

	first := createTestTask(t, s, "user123", "First", nil)
	time.Sleep(2 * time.Millisecond)
	second := createTestTask(t, s, "user123", "Second", nil)
	time.Sleep(2 * time.Millisecond)
	third := createTestTask(t, s, "user123", "Third", nil)
	createTestTask(t, s, "user456", "Foreign", nil)

	tasks, err := s.ListTasks(context.Background(), "user123")
	require.NoError(t, err)
	require.Len(t, tasks, 3)

	assert.Equal(t, third.ID, tasks[0].ID)
	assert.Equal(t, second.ID, tasks[1].ID)
	assert.Equal(t, first.ID, tasks[2].ID)

	empty, err := s.ListTasks(context.Background(), "user789")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Len(t, empty, 0)
}

func TestUpdateTask(t *testing.T) {
	tests := []struct {
		name  string
		patch models.UpdateTaskRequest
		want  struct {
			title       string
			description *string
		}
	}{
		{
			name:  "description only patch keeps title",
			patch: models.UpdateTaskRequest{Description: strPtr("new description")},
			want: struct {
				title       string
				description *string
			}{
				title:       "Buy milk",
				description: strPtr("new description"),
			},
		},
		{
			name:  "title only patch keeps description",
			patch: models.UpdateTaskRequest{Title: strPtr("Buy bread")},
			want: struct {
				title       string
				description *string
			}{
				title:       "Buy bread",
				description: strPtr("2 litres"),
			},
		},
		{
			name:  "empty description patch clears it",
			patch: models.UpdateTaskRequest{Description: strPtr("")},
			want: struct {
				title       string
				description *string
			}{
				title:       "Buy milk",
				description: nil,
			},
		},
		{
			name:  "empty patch changes nothing but updated_at",
			patch: models.UpdateTaskRequest{},
			want: struct {
				title       string
				description *string
			}{
				title:       "Buy milk",
				description: strPtr("2 litres"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStorage()
			created := createTestTask(t, s, "user123", "Buy milk", strPtr("2 litres"))

			time.Sleep(2 * time.Millisecond)
			updated, err := s.UpdateTask(context.Background(), "user123", created.ID, &tt.patch)
			require.NoError(t, err)

			assert.Equal(t, tt.want.title, updated.Title)
			if tt.want.description == nil {
				assert.Nil(t, updated.Description)
			} else {
				require.NotNil(t, updated.Description)
				assert.Equal(t, *tt.want.description, *updated.Description)
			}
			assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))
			assert.Equal(t, created.CreatedAt, updated.CreatedAt)
		})
	}

	t.Run("missing task", func(t *testing.T) {
		s := NewStorage()
		_, err := s.UpdateTask(context.Background(), "user123", 1, &models.UpdateTaskRequest{})
		assert.ErrorIs(t, err, errors.ErrTaskNotFound)
	})
}

func TestDeleteTask(t *testing.T) {
	s := NewStorage()
	created := createTestTask(t, s, "user123", "Buy milk", nil)

	assert.ErrorIs(t, s.DeleteTask(context.Background(), "user456", created.ID), errors.ErrTaskNotFound)

	assert.NoError(t, s.DeleteTask(context.Background(), "user123", created.ID))
	assert.ErrorIs(t, s.DeleteTask(context.Background(), "user123", created.ID), errors.ErrTaskNotFound)
}

func TestToggleTaskCompletion(t *testing.T) {
	s := NewStorage()
	created := createTestTask(t, s, "user123", "Buy milk", nil)

	toggled, err := s.ToggleTaskCompletion(context.Background(), "user123", created.ID)
	require.NoError(t, err)
	assert.True(t, toggled.IsCompleted)

	toggledBack, err := s.ToggleTaskCompletion(context.Background(), "user123", created.ID)
	require.NoError(t, err)
	assert.False(t, toggledBack.IsCompleted)

	_, err = s.ToggleTaskCompletion(context.Background(), "user456", created.ID)
	assert.ErrorIs(t, err, errors.ErrTaskNotFound)
}

func TestFindSessionByToken(t *testing.T) {
	s := NewStorage()
	s.AddSession(models.Session{
		Token:     "token-1",
		UserID:    "user123",
		ExpiresAt: time.Now().Add(time.Hour),
	})

	session, err := s.FindSessionByToken(context.Background(), "token-1")
	require.NoError(t, err)
	assert.Equal(t, "user123", session.UserID)

	_, err = s.FindSessionByToken(context.Background(), "token-2")
	assert.ErrorIs(t, err, errors.ErrInvalidSessionToken)
}
