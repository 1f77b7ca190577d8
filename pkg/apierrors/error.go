package apierrors

import (
	"fmt"

	"taskmanager/pkg/translator"
)

// JsonErr is the body of every error response.
type JsonErr struct {
	Code    int        `json:"code"`
	Message string     `json:"message"`
	Errors  []FieldErr `json:"errors,omitempty"`
	Detail  string     `json:"error,omitempty"`
}

// FieldErr describes one violated validation rule of a request field.
type FieldErr struct {
	Type     string `json:"type"`
	Value    any    `json:"value,omitempty"`
	Msg      string `json:"msg"`
	Path     string `json:"path"`
	Location string `json:"location"`
}

// Error implements the error interface for JsonErr.
func (e JsonErr) Error() string {
	return fmt.Sprintf("Code: %d, Message: %s", e.Code, e.Message)
}

// CreateError generates a JsonErr with a translated message.
func CreateError(code int, msgKey string, lang string) JsonErr {
	return JsonErr{Code: code, Message: GetTransErrorMsg(msgKey, lang)}
}

// CreateValidationError generates a 400 JsonErr listing every field violation.
func CreateValidationError(code int, fields []FieldErr, lang string) JsonErr {
	err := CreateError(code, MsgValidationFailed, lang)
	err.Errors = fields
	return err
}

// WithDetail attaches a diagnostic detail to the error body.
func (e JsonErr) WithDetail(detail string) JsonErr {
	e.Detail = detail
	return e
}

// NewBodyField builds a FieldErr for a JSON body field.
func NewBodyField(path, msg string, value any) FieldErr {
	return FieldErr{Type: "field", Value: value, Msg: msg, Path: path, Location: "body"}
}

// GetTransErrorMsg retrieves the translated error message.
func GetTransErrorMsg(msgKey string, lang string) string {
	return translator.Localize(msgKey, lang)
}
