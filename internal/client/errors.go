package client

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/bytedance/sonic"
)

// ErrDecode wraps failures to decode a successful response body.
var ErrDecode = errors.New("failed to decode response")

// APIError is a non-2xx response from the backend.
type APIError struct {
	Method string
	Route  string
	Status int
	Detail string
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("%s %s: %d %s", e.Method, e.Route, e.Status, http.StatusText(e.Status))
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

// Unauthorized reports whether the backend rejected the credentials.
func (e *APIError) Unauthorized() bool {
	return e.Status == http.StatusUnauthorized
}

// IsStatus reports whether err is an APIError with the given status.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}

// errorBody covers the shapes the backend uses for failures:
// {"detail": "..."}, {"detail": [{"msg": "..."}]}, {"error": "..."}, {"message": "..."}.
type errorBody struct {
	Detail  interface{} `json:"detail"`
	Error   string      `json:"error"`
	Message string      `json:"message"`
}

func extractDetail(body []byte) string {
	if len(body) == 0 {
		return ""
	}

	var eb errorBody
	if err := sonic.Unmarshal(body, &eb); err != nil {
		return truncate(strings.TrimSpace(string(body)), 200)
	}

	switch d := eb.Detail.(type) {
	case string:
		return d
	case []interface{}:
		var parts []string
		for _, item := range d {
			if m, ok := item.(map[string]interface{}); ok {
				if msg, ok := m["msg"].(string); ok {
					parts = append(parts, msg)
				}
			}
		}
		if len(parts) > 0 {
			return strings.Join(parts, "; ")
		}
	}
	if eb.Error != "" {
		return eb.Error
	}
	return eb.Message
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
