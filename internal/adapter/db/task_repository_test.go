package db

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskmanager/internal/core/domain"
)

func TestBuildTaskUpdate(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	title := "new"
	category := domain.TaskCategoryWork
	completed := false

	query, args := buildTaskUpdate(domain.TaskPatch{
		Title:          &title,
		DescriptionSet: true,
		Category:       &category,
		CategorySet:    true,
		Completed:      &completed,
	}, now)

	assert.Equal(t,
		"UPDATE tasks SET title = ?, description = ?, category = ?, completed = ?, updated_at = ? WHERE id = ? AND user_id = ?",
		query,
	)
	require.Len(t, args, 5)
	assert.Equal(t, "new", args[0])
	assert.Equal(t, sql.NullString{}, args[1])
	assert.Equal(t, sql.NullString{String: "work", Valid: true}, args[2])
	assert.Equal(t, false, args[3])
	assert.Equal(t, now, args[4])
}

func TestBuildTaskUpdate_ClearDueDate(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	query, args := buildTaskUpdate(domain.TaskPatch{DueDateSet: true}, now)

	assert.Equal(t, "UPDATE tasks SET due_date = ?, updated_at = ? WHERE id = ? AND user_id = ?", query)
	assert.Equal(t, []any{sql.NullTime{}, now}, args)
}

func TestTaskRowMapping(t *testing.T) {
	description := "notes"
	category := domain.TaskCategoryEducation
	due := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	task := domain.Task{
		ID:          domain.NewID(),
		UserID:      domain.NewID(),
		Title:       "Study",
		Description: &description,
		Category:    &category,
		Priority:    domain.TaskPriorityHigh,
		DueDate:     &due,
		Completed:   true,
		CreatedAt:   time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		UpdatedAt:   time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}

	assert.Equal(t, task, mapTaskRowToDomainTask(mapDomainTaskToTaskRow(task)))

	bare := domain.Task{ID: domain.NewID(), UserID: domain.NewID(), Title: "bare", Priority: domain.TaskPriorityMedium}
	row := mapDomainTaskToTaskRow(bare)
	assert.False(t, row.Description.Valid)
	assert.False(t, row.Category.Valid)
	assert.False(t, row.DueDate.Valid)
}
