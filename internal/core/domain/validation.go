package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	MsgTitleLength       = "Task title must be between 1 and 100 characters"
	MsgDescriptionLength = "Task description cannot exceed 500 characters"
	MsgInvalidCategory   = "Invalid category"
	MsgInvalidPriority   = "Invalid priority level"
	MsgInvalidDueDate    = "Invalid date format"
	MsgCompletedBoolean  = "Completed must be a boolean value"
	MsgUsernameLength    = "Username must be between 3 and 30 characters"
	MsgInvalidEmail      = "Please provide a valid email"
	MsgPasswordLength    = "Password must be at least 6 characters long"
	MsgPasswordTooLong   = "Password cannot exceed 72 bytes"
	MsgPasswordRequired  = "Password is required"
)

var errInvalidDate = errors.New("invalid date")

// Accepted ISO 8601 shapes, most specific first.
var dueDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04",
	"2006-01-02",
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("iso8601", func(fl validator.FieldLevel) bool {
		_, err := ParseDueDate(fl.Field().String())
		return err == nil
	})
	return v
}

// ParseDueDate parses an ISO 8601 date or date-time. Values without a zone
// are read as UTC.
func ParseDueDate(value string) (time.Time, error) {
	for _, layout := range dueDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, errInvalidDate
}

// IsValidTaskCategory reports whether value belongs to the category set.
func IsValidTaskCategory(value string) bool {
	return validate.Var(value, "oneof=work personal shopping health education other") == nil
}

// IsValidTaskPriority reports whether value belongs to the priority set.
func IsValidTaskPriority(value string) bool {
	return validate.Var(value, "oneof=low medium high") == nil
}

type violations struct {
	errs []FieldError
}

func (v *violations) add(field, message string, value any) {
	v.errs = append(v.errs, FieldError{Field: field, Message: message, Value: value})
}

func (v *violations) err() error {
	if len(v.errs) == 0 {
		return nil
	}
	return &ValidationError{Errors: v.errs}
}

func checkTitle(v *violations, raw *string) string {
	if raw == nil {
		v.add("title", MsgTitleLength, "")
		return ""
	}
	title := strings.TrimSpace(*raw)
	if validate.Var(title, "min=1,max=100") != nil {
		v.add("title", MsgTitleLength, title)
	}
	return title
}

func checkDescription(v *violations, raw *string) *string {
	if raw == nil {
		return nil
	}
	description := strings.TrimSpace(*raw)
	if validate.Var(description, "max=500") != nil {
		v.add("description", MsgDescriptionLength, description)
	}
	return &description
}

func checkCategory(v *violations, raw *string) *TaskCategory {
	if raw == nil {
		return nil
	}
	if !IsValidTaskCategory(*raw) {
		v.add("category", MsgInvalidCategory, *raw)
		return nil
	}
	category := TaskCategory(*raw)
	return &category
}

func checkPriority(v *violations, raw *string) *TaskPriority {
	if raw == nil {
		return nil
	}
	if !IsValidTaskPriority(*raw) {
		v.add("priority", MsgInvalidPriority, *raw)
		return nil
	}
	priority := TaskPriority(*raw)
	return &priority
}

// checkDueDate returns nil for an empty value, which callers treat as "no due date".
func checkDueDate(v *violations, raw *string) *time.Time {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil
	}
	if validate.Var(*raw, "iso8601") != nil {
		v.add("dueDate", MsgInvalidDueDate, *raw)
		return nil
	}
	dueDate, _ := ParseDueDate(*raw)
	return &dueDate
}

// ValidateCreateTask runs every task rule against in and returns the
// normalized task fields. All violations are reported together.
func ValidateCreateTask(in CreateTaskInput) (Task, error) {
	v := &violations{}

	title := checkTitle(v, &in.Title)
	description := checkDescription(v, in.Description)
	category := checkCategory(v, in.Category)
	priority := checkPriority(v, in.Priority)
	dueDate := checkDueDate(v, in.DueDate)

	if err := v.err(); err != nil {
		return Task{}, err
	}

	task := Task{
		Title:       title,
		Description: description,
		Category:    category,
		Priority:    TaskPriorityMedium,
		DueDate:     dueDate,
	}
	if priority != nil {
		task.Priority = *priority
	}
	return task, nil
}

// ValidateUpdateTask checks the fields present in in and builds the patch to
// apply. Explicit nulls clear description, category and dueDate; they are
// rejected for title, priority and completed.
func ValidateUpdateTask(in UpdateTaskInput) (TaskPatch, error) {
	v := &violations{}
	var patch TaskPatch

	if in.TitleSet {
		title := checkTitle(v, in.Title)
		patch.Title = &title
	}

	if in.DescriptionSet {
		patch.DescriptionSet = true
		patch.Description = checkDescription(v, in.Description)
	}

	if in.CategorySet {
		patch.CategorySet = true
		patch.Category = checkCategory(v, in.Category)
	}

	if in.PrioritySet {
		if in.Priority == nil {
			v.add("priority", MsgInvalidPriority, nil)
		}
		patch.Priority = checkPriority(v, in.Priority)
	}

	if in.DueDateSet {
		patch.DueDateSet = true
		patch.DueDate = checkDueDate(v, in.DueDate)
	}

	if in.CompletedSet {
		if in.Completed == nil {
			v.add("completed", MsgCompletedBoolean, nil)
		}
		patch.Completed = in.Completed
	}

	if err := v.err(); err != nil {
		return TaskPatch{}, err
	}
	return patch, nil
}

// ValidateRegister normalizes in (trimmed username, lower-cased email) and
// checks every registration rule.
func ValidateRegister(in RegisterInput) (RegisterInput, error) {
	v := &violations{}

	in.Username = strings.TrimSpace(in.Username)
	if validate.Var(in.Username, "min=3,max=30") != nil {
		v.add("username", MsgUsernameLength, in.Username)
	}

	in.Email = normalizeEmail(in.Email)
	if validate.Var(in.Email, "required,email") != nil {
		v.add("email", MsgInvalidEmail, in.Email)
	}

	switch {
	case len(in.Password) < PasswordMinLength:
		v.add("password", MsgPasswordLength, "")
	case len(in.Password) > PasswordMaxBytes:
		v.add("password", MsgPasswordTooLong, "")
	}

	if err := v.err(); err != nil {
		return RegisterInput{}, err
	}
	return in, nil
}

func ValidateLogin(in LoginInput) (LoginInput, error) {
	v := &violations{}

	in.Email = normalizeEmail(in.Email)
	if validate.Var(in.Email, "required,email") != nil {
		v.add("email", MsgInvalidEmail, in.Email)
	}
	if in.Password == "" {
		v.add("password", MsgPasswordRequired, "")
	}

	if err := v.err(); err != nil {
		return LoginInput{}, err
	}
	return in, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
