package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidRequest     = errors.New("invalid request")
	ErrExternalAPIFailure = errors.New("external API failure")
	ErrEventNotFound      = errors.New("event not found")
	ErrRateLimitExceeded  = errors.New("rate limit exceeded")
	ErrSessionNotFound    = errors.New("session not found")
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error on field %s: %s", e.Field, e.Message)
}
