package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/iudanet/weightkeeper/pkg/api"
)

// Ошибки, с которыми сравнивается StatusError через errors.Is
var (
	// ErrNotFound indicates that the file does not exist yet (404)
	ErrNotFound = errors.New("file not found")

	// ErrConflict indicates that the supplied revision is not current (409)
	ErrConflict = errors.New("revision conflict")

	// ErrUnauthorized indicates a missing or rejected credential (401, 403)
	ErrUnauthorized = errors.New("unauthorized")
)

// StatusError is a non-2xx response from the content API.
type StatusError struct {
	Message string
	Code    int
}

func newStatusError(code int, body []byte) *StatusError {
	var errResp api.ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Message != "" {
		return &StatusError{Code: code, Message: errResp.Message}
	}
	return &StatusError{Code: code, Message: strings.TrimSpace(string(body))}
}

// Error implements error
func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed with status %d", e.Code)
	}
	return fmt.Sprintf("server error (%d): %s", e.Code, e.Message)
}

// Is maps status codes onto the package sentinels.
func (e *StatusError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Code == http.StatusNotFound
	case ErrConflict:
		return e.Code == http.StatusConflict
	case ErrUnauthorized:
		return e.Code == http.StatusUnauthorized || e.Code == http.StatusForbidden
	}
	return false
}
