package db

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"taskmanager/internal/core/domain"
	"taskmanager/internal/core/ports"
)

const (
	taskColumns = `id, user_id, title, description, category, priority, due_date, completed, created_at, updated_at`

	insertTaskQuery = `
INSERT INTO tasks (` + taskColumns + `)
VALUES (:id, :user_id, :title, :description, :category, :priority, :due_date, :completed, :created_at, :updated_at);
`

	findTaskQuery = `SELECT ` + taskColumns + ` FROM tasks WHERE id = ? AND user_id = ?`

	lockTaskQuery = findTaskQuery + ` FOR UPDATE`

	listTasksByOwnerQuery = `
SELECT ` + taskColumns + `
FROM tasks
WHERE user_id = ?
ORDER BY created_at DESC, id DESC;
`

	deleteTaskQuery = `DELETE FROM tasks WHERE id = ? AND user_id = ?`

	toggleTaskQuery = `UPDATE tasks SET completed = NOT completed, updated_at = ? WHERE id = ? AND user_id = ?`
)

type TaskRepository struct {
	db *sqlx.DB
}

type taskRow struct {
	ID          string         `db:"id"`
	UserID      string         `db:"user_id"`
	Title       string         `db:"title"`
	Description sql.NullString `db:"description"`
	Category    sql.NullString `db:"category"`
	Priority    string         `db:"priority"`
	DueDate     sql.NullTime   `db:"due_date"`
	Completed   bool           `db:"completed"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

var _ ports.TaskRepository = (*TaskRepository)(nil)

func NewTaskRepository(db *sqlx.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Insert(ctx context.Context, task domain.Task) error {
	if _, err := r.db.NamedExecContext(ctx, insertTaskQuery, mapDomainTaskToTaskRow(task)); err != nil {
		return storeError("insert task", err)
	}
	return nil
}

func (r *TaskRepository) FindByID(ctx context.Context, ownerID, taskID string) (domain.Task, error) {
	var row taskRow
	if err := r.db.GetContext(ctx, &row, findTaskQuery, taskID, ownerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Task{}, domain.ErrTaskNotFound
		}
		return domain.Task{}, storeError("find task", err)
	}
	return mapTaskRowToDomainTask(row), nil
}

func (r *TaskRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Task, error) {
	var rows []taskRow
	if err := r.db.SelectContext(ctx, &rows, listTasksByOwnerQuery, ownerID); err != nil {
		return nil, storeError("list tasks", err)
	}

	tasks := make([]domain.Task, 0, len(rows))
	for _, row := range rows {
		tasks = append(tasks, mapTaskRowToDomainTask(row))
	}

	return tasks, nil
}

func (r *TaskRepository) Update(ctx context.Context, ownerID, taskID string, patch domain.TaskPatch, now time.Time) (domain.Task, error) {
	var updated domain.Task
	err := r.withLockedTask(ctx, ownerID, taskID, func(tx *sqlx.Tx) error {
		query, args := buildTaskUpdate(patch, now)
		args = append(args, taskID, ownerID)
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return err
		}

		var row taskRow
		if err := tx.GetContext(ctx, &row, findTaskQuery, taskID, ownerID); err != nil {
			return err
		}
		updated = mapTaskRowToDomainTask(row)
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			return domain.Task{}, err
		}
		return domain.Task{}, storeError("update task", err)
	}
	return updated, nil
}

func (r *TaskRepository) Delete(ctx context.Context, ownerID, taskID string) error {
	result, err := r.db.ExecContext(ctx, deleteTaskQuery, taskID, ownerID)
	if err != nil {
		return storeError("delete task", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return storeError("delete task", err)
	}
	if affected == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *TaskRepository) ToggleCompleted(ctx context.Context, ownerID, taskID string, now time.Time) (domain.Task, error) {
	var toggled domain.Task
	err := r.withLockedTask(ctx, ownerID, taskID, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, toggleTaskQuery, now, taskID, ownerID); err != nil {
			return err
		}

		var row taskRow
		if err := tx.GetContext(ctx, &row, findTaskQuery, taskID, ownerID); err != nil {
			return err
		}
		toggled = mapTaskRowToDomainTask(row)
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			return domain.Task{}, err
		}
		return domain.Task{}, storeError("toggle task", err)
	}
	return toggled, nil
}

func (r *TaskRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// withLockedTask runs fn in a transaction holding a row lock on the owned
// task. It returns domain.ErrTaskNotFound when the row does not exist.
func (r *TaskRepository) withLockedTask(ctx context.Context, ownerID, taskID string, fn func(tx *sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var row taskRow
	if err := tx.GetContext(ctx, &row, lockTaskQuery, taskID, ownerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrTaskNotFound
		}
		return err
	}

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

func buildTaskUpdate(patch domain.TaskPatch, now time.Time) (string, []any) {
	sets := make([]string, 0, 7)
	args := make([]any, 0, 9)

	if patch.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *patch.Title)
	}
	if patch.DescriptionSet {
		sets = append(sets, "description = ?")
		args = append(args, nullString(patch.Description))
	}
	if patch.CategorySet {
		sets = append(sets, "category = ?")
		var category *string
		if patch.Category != nil {
			value := string(*patch.Category)
			category = &value
		}
		args = append(args, nullString(category))
	}
	if patch.Priority != nil {
		sets = append(sets, "priority = ?")
		args = append(args, string(*patch.Priority))
	}
	if patch.DueDateSet {
		sets = append(sets, "due_date = ?")
		args = append(args, nullTime(patch.DueDate))
	}
	if patch.Completed != nil {
		sets = append(sets, "completed = ?")
		args = append(args, *patch.Completed)
	}
	sets = append(sets, "updated_at = ?")
	args = append(args, now)

	return "UPDATE tasks SET " + strings.Join(sets, ", ") + " WHERE id = ? AND user_id = ?", args
}

func mapTaskRowToDomainTask(row taskRow) domain.Task {
	task := domain.Task{
		ID:        row.ID,
		UserID:    row.UserID,
		Title:     row.Title,
		Priority:  domain.TaskPriority(row.Priority),
		Completed: row.Completed,
		CreatedAt: row.CreatedAt.UTC(),
		UpdatedAt: row.UpdatedAt.UTC(),
	}

	if row.Description.Valid {
		value := row.Description.String
		task.Description = &value
	}

	if row.Category.Valid {
		value := domain.TaskCategory(row.Category.String)
		task.Category = &value
	}

	if row.DueDate.Valid {
		value := row.DueDate.Time.UTC()
		task.DueDate = &value
	}

	return task
}

func mapDomainTaskToTaskRow(task domain.Task) taskRow {
	row := taskRow{
		ID:          task.ID,
		UserID:      task.UserID,
		Title:       task.Title,
		Description: nullString(task.Description),
		Priority:    string(task.Priority),
		DueDate:     nullTime(task.DueDate),
		Completed:   task.Completed,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
	if task.Category != nil {
		row.Category = sql.NullString{String: string(*task.Category), Valid: true}
	}
	return row
}

func nullString(value *string) sql.NullString {
	if value == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *value, Valid: true}
}

func nullTime(value *time.Time) sql.NullTime {
	if value == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *value, Valid: true}
}
