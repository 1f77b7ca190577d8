package validation

import (
	"encoding/json"
	"errors"
	"io"

	"github.com/gin-gonic/gin"
)

var ErrInvalidJSON = errors.New("invalid json payload")

// BindJSONObject decodes the request body as a JSON object keeping the raw
// value of each field. An empty body reads as an empty object.
func BindJSONObject(c *gin.Context) (map[string]json.RawMessage, error) {
	raw := map[string]json.RawMessage{}
	if err := c.ShouldBindJSON(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return map[string]json.RawMessage{}, nil
		}
		return nil, ErrInvalidJSON
	}
	if raw == nil {
		// A literal null body.
		return map[string]json.RawMessage{}, nil
	}
	return raw, nil
}
