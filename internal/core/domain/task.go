package domain

import "time"

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

type TaskCategory string

const (
	TaskCategoryWork      TaskCategory = "work"
	TaskCategoryPersonal  TaskCategory = "personal"
	TaskCategoryShopping  TaskCategory = "shopping"
	TaskCategoryHealth    TaskCategory = "health"
	TaskCategoryEducation TaskCategory = "education"
	TaskCategoryOther     TaskCategory = "other"
)

const (
	TaskTitleMaxLength       = 100
	TaskDescriptionMaxLength = 500
)

type Task struct {
	ID          string
	UserID      string
	Title       string
	Description *string
	Category    *TaskCategory
	Priority    TaskPriority
	DueDate     *time.Time
	Completed   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CreateTaskInput holds the raw client values of a new task. Values are
// trimmed and checked by ValidateCreateTask before anything is stored.
type CreateTaskInput struct {
	Title       string
	Description *string
	Category    *string
	Priority    *string
	DueDate     *string
}

// UpdateTaskInput is a partial update. A nil pointer means the field was not
// sent. The Set flags distinguish an explicit null (clear the value) from an
// absent field for the nullable columns.
type UpdateTaskInput struct {
	Title          *string
	TitleSet       bool
	Description    *string
	DescriptionSet bool
	Category       *string
	CategorySet    bool
	Priority       *string
	PrioritySet    bool
	DueDate        *string
	DueDateSet     bool
	Completed      *bool
	CompletedSet   bool
}

// TaskPatch is the validated form of UpdateTaskInput handed to the store.
type TaskPatch struct {
	Title          *string
	Description    *string
	DescriptionSet bool
	Category       *TaskCategory
	CategorySet    bool
	Priority       *TaskPriority
	DueDate        *time.Time
	DueDateSet     bool
	Completed      *bool
}

// IsEmpty reports whether the patch changes no field.
func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil &&
		!p.DescriptionSet &&
		!p.CategorySet &&
		p.Priority == nil &&
		!p.DueDateSet &&
		p.Completed == nil
}

// Apply merges the patch into task and stamps UpdatedAt.
func (p TaskPatch) Apply(task *Task, now time.Time) {
	if p.Title != nil {
		task.Title = *p.Title
	}
	if p.DescriptionSet {
		task.Description = p.Description
	}
	if p.CategorySet {
		task.Category = p.Category
	}
	if p.Priority != nil {
		task.Priority = *p.Priority
	}
	if p.DueDateSet {
		task.DueDate = p.DueDate
	}
	if p.Completed != nil {
		task.Completed = *p.Completed
	}
	task.UpdatedAt = now
}

func TaskCategories() []TaskCategory {
	return []TaskCategory{
		TaskCategoryWork,
		TaskCategoryPersonal,
		TaskCategoryShopping,
		TaskCategoryHealth,
		TaskCategoryEducation,
		TaskCategoryOther,
	}
}

func TaskPriorities() []TaskPriority {
	return []TaskPriority{TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh}
}
