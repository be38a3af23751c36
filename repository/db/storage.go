package db

import (
	"context"
	"log"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"todoapp/internal/domain/errors"
	"todoapp/internal/domain/models"
)

const maxPoolConns = 5

type Storage struct {
	pool                  *pgxpool.Pool
	queryCreateTask       string
	queryGetTask          string
	queryGetTaskForUpdate string
	queryListTasks        string
	queryUpdateTask       string
	queryDeleteTask       string
	queryFindSession      string
}

func NewStorage(connStr string) (*Storage, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	poolCfg, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		log.Println("[ERROR] Некорректная строка подключения к базе данных:", err)
		return nil, err
	}
	poolCfg.MaxConns = maxPoolConns

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		log.Println("[ERROR] Не удалось создать пул подключений:", err)
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		log.Println("[ERROR] Не удалось подключиться к базе данных:", err)
		pool.Close()
		return nil, err
	}

	s := &Storage{
		pool:                  pool,
		queryCreateTask:       `INSERT INTO tasks (user_id, title, description, is_completed, created_at, updated_at) VALUES ($1, $2, $3, false, $4, $4) RETURNING id`,
		queryGetTask:          `SELECT id, user_id, title, description, is_completed, created_at, updated_at FROM tasks WHERE id = $1 AND user_id = $2`,
		queryGetTaskForUpdate: `SELECT id, user_id, title, description, is_completed, created_at, updated_at FROM tasks WHERE id = $1 AND user_id = $2 FOR UPDATE`,
		queryListTasks:        `SELECT id, user_id, title, description, is_completed, created_at, updated_at FROM tasks WHERE user_id = $1 ORDER BY created_at DESC`,
		queryUpdateTask:       `UPDATE tasks SET title = $1, description = $2, is_completed = $3, updated_at = $4 WHERE id = $5 AND user_id = $6`,
		queryDeleteTask:       `DELETE FROM tasks WHERE id = $1 AND user_id = $2`,
		queryFindSession:      `SELECT "userId", "expiresAt" FROM session WHERE token = $1`,
	}
	log.Println("[SUCCESS] Соединение с базой данных установлено успешно")
	return s, nil
}

func (s *Storage) Close() {
	s.pool.Close()
}

func (s *Storage) CreateTask(ctx context.Context, task *models.Task) error {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	now := time.Now().UTC()
	task.IsCompleted = false
	task.CreatedAt = now
	task.UpdatedAt = now

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		log.Println("[ERROR] Не удалось начать транзакцию:", err)
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := tx.QueryRow(ctx, s.queryCreateTask, task.UserID, task.Title, task.Description, now).Scan(&task.ID); err != nil {
		log.Println("[ERROR] Не удалось создать задачу:", err)
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		log.Println("[ERROR] Не удалось зафиксировать транзакцию:", err)
		return err
	}

	log.Println("[SUCCESS] Задача успешно создана:", task.ID)
	return nil
}

func (s *Storage) GetTask(ctx context.Context, userID string, taskID int64) (*models.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	task, err := scanTask(s.pool.QueryRow(ctx, s.queryGetTask, taskID, userID))
	if err != nil {
		if err == pgx.ErrNoRows {
			log.Println("[ERROR] Задача не найдена:", taskID)
			return nil, errors.ErrTaskNotFound
		}
		log.Println("[ERROR] Ошибка при получении задачи:", err)
		return nil, err
	}

	return task, nil
}

func (s *Storage) ListTasks(ctx context.Context, userID string) ([]models.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	rows, err := s.pool.Query(ctx, s.queryListTasks, userID)
	if err != nil {
		log.Println("[ERROR] Не удалось получить задачи:", err)
		return nil, err
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		task := models.Task{}
		if err := rows.Scan(&task.ID, &task.UserID, &task.Title, &task.Description, &task.IsCompleted, &task.CreatedAt, &task.UpdatedAt); err != nil {
			log.Println("[ERROR] Ошибка при чтении задач:", err)
			return nil, err
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		log.Println("[ERROR] Ошибка при чтении задач:", err)
		return nil, err
	}

	log.Println("[SUCCESS] Получено задач:", len(tasks))
	return tasks, nil
}

func (s *Storage) UpdateTask(ctx context.Context, userID string, taskID int64, patch *models.UpdateTaskRequest) (*models.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		log.Println("[ERROR] Не удалось начать транзакцию:", err)
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	task, err := scanTask(tx.QueryRow(ctx, s.queryGetTaskForUpdate, taskID, userID))
	if err != nil {
		if err == pgx.ErrNoRows {
			log.Println("[ERROR] Задача для обновления не найдена:", taskID)
			return nil, errors.ErrTaskNotFound
		}
		log.Println("[ERROR] Ошибка при получении задачи:", err)
		return nil, err
	}

	patch.Apply(task)
	task.UpdatedAt = time.Now().UTC()

	if _, err := tx.Exec(ctx, s.queryUpdateTask, task.Title, task.Description, task.IsCompleted, task.UpdatedAt, taskID, userID); err != nil {
		log.Println("[ERROR] Не удалось обновить задачу:", err)
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		log.Println("[ERROR] Не удалось зафиксировать транзакцию:", err)
		return nil, err
	}

	log.Println("[SUCCESS] Задача успешно обновлена:", taskID)
	return task, nil
}

func (s *Storage) DeleteTask(ctx context.Context, userID string, taskID int64) error {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		log.Println("[ERROR] Не удалось начать транзакцию:", err)
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	ct, err := tx.Exec(ctx, s.queryDeleteTask, taskID, userID)
	if err != nil {
		log.Println("[ERROR] Не удалось удалить задачу:", err)
		return err
	}
	if ct.RowsAffected() == 0 {
		log.Println("[ERROR] Задача для удаления не найдена:", taskID)
		return errors.ErrTaskNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		log.Println("[ERROR] Не удалось зафиксировать транзакцию:", err)
		return err
	}

	log.Println("[SUCCESS] Задача успешно удалена:", taskID)
	return nil
}

func (s *Storage) ToggleTaskCompletion(ctx context.Context, userID string, taskID int64) (*models.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		log.Println("[ERROR] Не удалось начать транзакцию:", err)
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	task, err := scanTask(tx.QueryRow(ctx, s.queryGetTaskForUpdate, taskID, userID))
	if err != nil {
		if err == pgx.ErrNoRows {
			log.Println("[ERROR] Задача для переключения не найдена:", taskID)
			return nil, errors.ErrTaskNotFound
		}
		log.Println("[ERROR] Ошибка при получении задачи:", err)
		return nil, err
	}

	task.IsCompleted = !task.IsCompleted
	task.UpdatedAt = time.Now().UTC()

	if _, err := tx.Exec(ctx, s.queryUpdateTask, task.Title, task.Description, task.IsCompleted, task.UpdatedAt, taskID, userID); err != nil {
		log.Println("[ERROR] Не удалось переключить статус задачи:", err)
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		log.Println("[ERROR] Не удалось зафиксировать транзакцию:", err)
		return nil, err
	}

	log.Println("[SUCCESS] Статус задачи переключен:", taskID)
	return task, nil
}

func (s *Storage) FindSessionByToken(ctx context.Context, token string) (*models.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	session := &models.Session{Token: token}
	row := s.pool.QueryRow(ctx, s.queryFindSession, token)
	if err := row.Scan(&session.UserID, &session.ExpiresAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, errors.ErrInvalidSessionToken
		}
		log.Println("[ERROR] Ошибка при поиске сессии:", err)
		return nil, err
	}

	return session, nil
}

func scanTask(row pgx.Row) (*models.Task, error) {
	task := &models.Task{}
	if err := row.Scan(&task.ID, &task.UserID, &task.Title, &task.Description, &task.IsCompleted, &task.CreatedAt, &task.UpdatedAt); err != nil {
		return nil, err
	}
	return task, nil
}
