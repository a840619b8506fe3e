package tonal

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccessDenied       = errors.New("access denied: your account may be locked or require verification")
)

// APIError is a non-2xx response from the Tonal API.
type APIError struct {
	StatusCode int
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("tonal: %s returned status %d", e.Endpoint, e.StatusCode)
}
