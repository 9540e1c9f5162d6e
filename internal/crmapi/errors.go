package crmapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrTransport = errors.New("crm api unreachable")
	ErrMalformed = errors.New("crm api returned a malformed body")
)

// APIError is a non-success response. Message is the body's own error text
// when it has one.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("crm api %d: %s", e.Status, e.Message)
}

// errorMessage picks the first of message/error/detail from a JSON body and
// falls back to the raw text.
func errorMessage(status int, body []byte) string {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err == nil {
		for _, key := range []string{"message", "error", "detail"} {
			raw, ok := fields[key]
			if !ok {
				continue
			}
			var s string
			if err := json.Unmarshal(raw, &s); err == nil && s != "" {
				return s
			}
			var nested struct {
				Message string `json:"message"`
			}
			if err := json.Unmarshal(raw, &nested); err == nil && nested.Message != "" {
				return nested.Message
			}
		}
	}
	if text := strings.TrimSpace(string(body)); text != "" && len(text) <= 200 {
		return text
	}
	return fmt.Sprintf("request failed with status %d", status)
}
