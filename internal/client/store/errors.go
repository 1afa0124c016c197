package store

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/billed/internal/common"
)

// StatusError is a non-success answer from the store.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("store responded %d", e.Code)
	}
	return fmt.Sprintf("store responded %d: %s", e.Code, e.Message)
}

// Unwrap maps the status code onto the common error taxonomy.
func (e *StatusError) Unwrap() []error {
	switch e.Code {
	case http.StatusBadRequest, http.StatusUnsupportedMediaType, http.StatusUnprocessableEntity, http.StatusRequestEntityTooLarge:
		return []error{common.ErrValidation}
	case http.StatusUnauthorized, http.StatusForbidden:
		return []error{common.ErrUnauthorized, common.ErrServer}
	case http.StatusNotFound:
		return []error{common.ErrorNotFound, common.ErrServer}
	default:
		return []error{common.ErrServer}
	}
}

// newStatusError builds a StatusError from the response body, preferring the
// {"error": "..."} envelope used by the store.
func newStatusError(code int, body []byte) *StatusError {
	var envelope struct {
		Error string `json:"error"`
	}
	msg := strings.TrimSpace(string(body))
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error != "" {
		msg = envelope.Error
	}
	if len(msg) > 200 {
		msg = msg[:200]
	}
	return &StatusError{Code: code, Message: msg}
}
