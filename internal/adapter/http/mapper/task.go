package mapper

import (
	"time"

	"taskmanager/internal/adapter/http/dto"
	"taskmanager/internal/core/domain"
)

// TimestampLayout renders times the way JavaScript's Date.toISOString does.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

func ToTaskItems(tasks []domain.Task) []dto.TaskItem {
	items := make([]dto.TaskItem, 0, len(tasks))
	for _, task := range tasks {
		items = append(items, ToTaskItem(task))
	}
	return items
}

func ToTaskItem(task domain.Task) dto.TaskItem {
	item := dto.TaskItem{
		ID:        task.ID,
		User:      task.UserID,
		Title:     task.Title,
		Priority:  string(task.Priority),
		Completed: task.Completed,
		CreatedAt: FormatTime(task.CreatedAt),
		UpdatedAt: FormatTime(task.UpdatedAt),
	}

	if task.Description != nil {
		value := *task.Description
		item.Description = &value
	}

	if task.Category != nil {
		value := string(*task.Category)
		item.Category = &value
	}

	if task.DueDate != nil {
		value := FormatTime(*task.DueDate)
		item.DueDate = &value
	}

	return item
}

func FormatTime(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}
