package repository

import (
	"context"
	"errors"

	"github.com/Tedbot2000/todo-genie/internal/entity"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const taskColumns = `id, name, status, due_date, priority, user_id, created_at, updated_at`

type TaskRepository struct {
	db *pgxpool.Pool
}

var _ ITaskRepository = (*TaskRepository)(nil)

func NewTaskRepository(db *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{
		db: db,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*entity.Task, error) {
	var task entity.Task
	err := row.Scan(
		&task.ID,
		&task.Name,
		&task.Status,
		&task.DueDate,
		&task.Priority,
		&task.OwnerId,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// scanOptionalTask - отсутствие строки не ошибка, возвращаем nil
func scanOptionalTask(row pgx.Row) (*entity.Task, error) {
	task, err := scanTask(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return task, nil
}

func (r *TaskRepository) Create(ctx context.Context, task *entity.CreateTaskRequest) (*entity.Task, error) {

	query := `
	INSERT INTO "task" (name, status, due_date, priority, user_id)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING ` + taskColumns

	return scanTask(r.db.QueryRow(ctx, query,
		task.Name,
		entity.StatusNotStarted,
		task.DueDate,
		task.Priority,
		task.OwnerId,
	))
}

// GetByOwner - задача по id, только если принадлежит владельцу
func (r *TaskRepository) GetByOwner(ctx context.Context, id int, ownerID int) (*entity.Task, error) {

	query := `
	SELECT ` + taskColumns + `
	FROM "task"
	WHERE id = $1 AND user_id = $2
	`

	return scanOptionalTask(r.db.QueryRow(ctx, query, id, ownerID))
}

// List - все задачи владельца в выбранном порядке
func (r *TaskRepository) List(ctx context.Context, ownerID int, sortBy entity.SortBy) ([]entity.Task, error) {
	query := `
	SELECT ` + taskColumns + `
	FROM "task"
	WHERE user_id = $1
	ORDER BY ` + orderByClause(sortBy)

	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := make([]entity.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}

	return tasks, rows.Err()
}

// Update - перезаписывает все четыре поля задачи
func (r *TaskRepository) Update(ctx context.Context, id int, ownerID int, req *entity.EditTaskRequest) (*entity.Task, error) {
	query := `
	UPDATE "task"
	SET name = $1, due_date = $2, priority = $3, status = $4, updated_at = CURRENT_TIMESTAMP
	WHERE id = $5 AND user_id = $6
	RETURNING ` + taskColumns

	return scanOptionalTask(r.db.QueryRow(ctx, query,
		req.Name,
		req.DueDate,
		req.Priority,
		req.Status,
		id,
		ownerID,
	))
}

// UpdateStatus - меняем только статус
func (r *TaskRepository) UpdateStatus(ctx context.Context, id int, ownerID int, status entity.TaskStatus) (*entity.Task, error) {
	query := `
	UPDATE "task"
	SET status = $1, updated_at = CURRENT_TIMESTAMP
	WHERE id = $2 AND user_id = $3
	RETURNING ` + taskColumns

	return scanOptionalTask(r.db.QueryRow(ctx, query, status, id, ownerID))
}

// Delete - удаление задачи
func (r *TaskRepository) Delete(ctx context.Context, id int, ownerID int) error {
	query := `DELETE FROM "task" WHERE id = $1 AND user_id = $2`
	result, err := r.db.Exec(ctx, query, id, ownerID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return entity.ErrTaskNotFound
	}
	return nil
}
