package validation

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskmanager/internal/core/domain"
)

func decodeRaw(t *testing.T, body string) map[string]json.RawMessage {
	t.Helper()
	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(body), &raw))
	return raw
}

func TestBuildCreateTaskInput(t *testing.T) {
	input, fieldErrors := BuildCreateTaskInput(decodeRaw(t,
		`{"title":"Buy milk","description":null,"priority":"low","dueDate":"2026-03-01","extra":1}`))

	require.Empty(t, fieldErrors)
	assert.Equal(t, "Buy milk", input.Title)
	assert.Nil(t, input.Description)
	assert.Nil(t, input.Category)
	assert.Equal(t, "low", *input.Priority)
	assert.Equal(t, "2026-03-01", *input.DueDate)
}

func TestBuildCreateTaskInput_StringifiesScalars(t *testing.T) {
	input, fieldErrors := BuildCreateTaskInput(decodeRaw(t, `{"title":42,"description":true}`))

	require.Empty(t, fieldErrors)
	assert.Equal(t, "42", input.Title)
	assert.Equal(t, "true", *input.Description)
}

func TestBuildCreateTaskInput_TypeErrors(t *testing.T) {
	_, fieldErrors := BuildCreateTaskInput(decodeRaw(t, `{"title":["a"],"category":{"x":1}}`))

	require.Len(t, fieldErrors, 2)
	assert.Equal(t, "title", fieldErrors[0].Field)
	assert.Equal(t, domain.MsgTitleLength, fieldErrors[0].Message)
	assert.Equal(t, "category", fieldErrors[1].Field)
	assert.Equal(t, domain.MsgInvalidCategory, fieldErrors[1].Message)
}

func TestBuildUpdateTaskInput_PresenceFlags(t *testing.T) {
	input, fieldErrors := BuildUpdateTaskInput(decodeRaw(t, `{"title":"New","dueDate":null,"completed":"false"}`))

	require.Empty(t, fieldErrors)
	assert.True(t, input.TitleSet)
	assert.Equal(t, "New", *input.Title)
	assert.True(t, input.DueDateSet)
	assert.Nil(t, input.DueDate)
	assert.True(t, input.CompletedSet)
	assert.False(t, *input.Completed)
	assert.False(t, input.DescriptionSet)
	assert.False(t, input.CategorySet)
	assert.False(t, input.PrioritySet)
}

func TestBuildUpdateTaskInput_Completed(t *testing.T) {
	for body, want := range map[string]bool{
		`{"completed":true}`:  true,
		`{"completed":"1"}`:   true,
		`{"completed":0}`:     false,
		`{"completed":false}`: false,
	} {
		input, fieldErrors := BuildUpdateTaskInput(decodeRaw(t, body))
		require.Empty(t, fieldErrors, body)
		require.NotNil(t, input.Completed, body)
		assert.Equal(t, want, *input.Completed, body)
	}

	input, fieldErrors := BuildUpdateTaskInput(decodeRaw(t, `{"completed":null}`))
	require.Empty(t, fieldErrors)
	assert.True(t, input.CompletedSet)
	assert.Nil(t, input.Completed)

	_, fieldErrors = BuildUpdateTaskInput(decodeRaw(t, `{"completed":"yes"}`))
	require.Len(t, fieldErrors, 1)
	assert.Equal(t, domain.MsgCompletedBoolean, fieldErrors[0].Message)
}

func TestMergeFieldErrors(t *testing.T) {
	typeErrors := []domain.FieldError{{Field: "priority", Message: domain.MsgInvalidPriority}}
	validationErr := &domain.ValidationError{Errors: []domain.FieldError{
		{Field: "dueDate", Message: domain.MsgInvalidDueDate},
		{Field: "priority", Message: "duplicate"},
		{Field: "title", Message: domain.MsgTitleLength},
	}}

	merged := MergeFieldErrors(typeErrors, validationErr)

	require.Len(t, merged, 3)
	assert.Equal(t, "title", merged[0].Field)
	assert.Equal(t, "priority", merged[1].Field)
	assert.Equal(t, domain.MsgInvalidPriority, merged[1].Message)
	assert.Equal(t, "dueDate", merged[2].Field)

	assert.Empty(t, MergeFieldErrors(nil, nil))
}

func bindBody(t *testing.T, body string) (map[string]json.RawMessage, error) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	if body == "" {
		c.Request = httptest.NewRequest(http.MethodPost, "/", nil)
	} else {
		c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	}
	c.Request.Header.Set("Content-Type", "application/json")
	return BindJSONObject(c)
}

func TestBindJSONObject(t *testing.T) {
	raw, err := bindBody(t, `{"title":"x"}`)
	require.NoError(t, err)
	assert.Contains(t, raw, "title")

	raw, err = bindBody(t, "")
	require.NoError(t, err)
	assert.Empty(t, raw)

	raw, err = bindBody(t, "null")
	require.NoError(t, err)
	assert.NotNil(t, raw)

	_, err = bindBody(t, `{"title":`)
	require.ErrorIs(t, err, ErrInvalidJSON)

	_, err = bindBody(t, `["not","an","object"]`)
	require.ErrorIs(t, err, ErrInvalidJSON)
}
