package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"sort"
	"strconv"
	"strings"

	"taskmanager/internal/core/domain"
)

// fieldOrder is the order in which violations are reported.
var fieldOrder = map[string]int{
	"username":    0,
	"email":       1,
	"password":    2,
	"title":       3,
	"description": 4,
	"category":    5,
	"priority":    6,
	"dueDate":     7,
	"completed":   8,
}

var typeMessages = map[string]string{
	"title":       domain.MsgTitleLength,
	"description": domain.MsgDescriptionLength,
	"category":    domain.MsgInvalidCategory,
	"priority":    domain.MsgInvalidPriority,
	"dueDate":     domain.MsgInvalidDueDate,
	"completed":   domain.MsgCompletedBoolean,
}

// BuildCreateTaskInput reads the create payload. Fields holding a JSON type
// that cannot be read as the expected scalar are reported as violations and
// left out of the input.
func BuildCreateTaskInput(raw map[string]json.RawMessage) (domain.CreateTaskInput, []domain.FieldError) {
	var input domain.CreateTaskInput
	var fieldErrors []domain.FieldError

	if value, ok := raw["title"]; ok {
		title, _, valid := decodeString(value)
		if !valid {
			fieldErrors = append(fieldErrors, typeError("title", value))
		} else if title != nil {
			input.Title = *title
		}
	}

	input.Description, fieldErrors = readOptionalString(raw, "description", fieldErrors)
	input.Category, fieldErrors = readOptionalString(raw, "category", fieldErrors)
	input.Priority, fieldErrors = readOptionalString(raw, "priority", fieldErrors)
	input.DueDate, fieldErrors = readOptionalString(raw, "dueDate", fieldErrors)

	return input, fieldErrors
}

// BuildUpdateTaskInput reads the partial update payload. Absent fields stay
// untouched, explicit nulls are flagged through the Set fields.
func BuildUpdateTaskInput(raw map[string]json.RawMessage) (domain.UpdateTaskInput, []domain.FieldError) {
	var input domain.UpdateTaskInput
	var fieldErrors []domain.FieldError

	readString := func(field string, target **string, set *bool) {
		value, ok := raw[field]
		if !ok {
			return
		}
		decoded, _, valid := decodeString(value)
		if !valid {
			fieldErrors = append(fieldErrors, typeError(field, value))
			return
		}
		*set = true
		*target = decoded
	}

	readString("title", &input.Title, &input.TitleSet)
	readString("description", &input.Description, &input.DescriptionSet)
	readString("category", &input.Category, &input.CategorySet)
	readString("priority", &input.Priority, &input.PrioritySet)
	readString("dueDate", &input.DueDate, &input.DueDateSet)

	if value, ok := raw["completed"]; ok {
		completed, isNull, valid := decodeBool(value)
		switch {
		case isNull:
			input.CompletedSet = true
		case !valid:
			fieldErrors = append(fieldErrors, typeError("completed", value))
		default:
			input.CompletedSet = true
			input.Completed = &completed
		}
	}

	return input, fieldErrors
}

// MergeFieldErrors combines payload type errors with the rule violations in
// err, keeping a single entry source per field, ordered by field.
func MergeFieldErrors(typeErrors []domain.FieldError, err error) []domain.FieldError {
	merged := append([]domain.FieldError(nil), typeErrors...)
	seen := make(map[string]bool, len(typeErrors))
	for _, fe := range typeErrors {
		seen[fe.Field] = true
	}

	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		for _, fe := range validationErr.Errors {
			if !seen[fe.Field] {
				merged = append(merged, fe)
			}
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return fieldOrder[merged[i].Field] < fieldOrder[merged[j].Field]
	})
	return merged
}

func readOptionalString(raw map[string]json.RawMessage, field string, fieldErrors []domain.FieldError) (*string, []domain.FieldError) {
	value, ok := raw[field]
	if !ok {
		return nil, fieldErrors
	}
	decoded, _, valid := decodeString(value)
	if !valid {
		return nil, append(fieldErrors, typeError(field, value))
	}
	return decoded, fieldErrors
}

// decodeString accepts JSON strings and stringifies numbers and booleans.
// Objects and arrays are invalid.
func decodeString(value json.RawMessage) (decoded *string, isNull bool, valid bool) {
	trimmed := bytes.TrimSpace(value)
	if isJSONNull(trimmed) {
		return nil, true, true
	}

	var s string
	if err := json.Unmarshal(trimmed, &s); err == nil {
		return &s, false, true
	}

	var number json.Number
	if err := json.Unmarshal(trimmed, &number); err == nil {
		text := number.String()
		return &text, false, true
	}

	var b bool
	if err := json.Unmarshal(trimmed, &b); err == nil {
		text := strconv.FormatBool(b)
		return &text, false, true
	}

	return nil, false, false
}

// decodeBool accepts true/false and their "true"/"false"/"1"/"0" spellings.
func decodeBool(value json.RawMessage) (decoded bool, isNull bool, valid bool) {
	trimmed := bytes.TrimSpace(value)
	if isJSONNull(trimmed) {
		return false, true, true
	}

	var b bool
	if err := json.Unmarshal(trimmed, &b); err == nil {
		return b, false, true
	}

	text, _, ok := decodeString(trimmed)
	if !ok || text == nil {
		return false, false, false
	}
	switch strings.TrimSpace(*text) {
	case "true", "1":
		return true, false, true
	case "false", "0":
		return false, false, true
	}
	return false, false, false
}

func typeError(field string, value json.RawMessage) domain.FieldError {
	return domain.FieldError{Field: field, Message: typeMessages[field], Value: json.RawMessage(bytes.TrimSpace(value))}
}

func isJSONNull(value json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(value), []byte("null"))
}
