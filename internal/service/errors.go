package service

import (
	"errors"
	"sort"
	"strings"

	"taskmanager/internal/repo"
)

var (
	ErrNotFound = errors.New("not found")
	// ErrTaskNotOwned is returned by subtask creation when the parent task is
	// missing or belongs to another user.
	ErrTaskNotOwned = errors.New("task does not exist or does not belong to the current user")
)

// ValidationError carries per-field messages, rendered as {"field": ["msg"]}.
type ValidationError struct {
	Fields map[string][]string
	cause  error
}

func newFieldError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string][]string{field: {msg}}}
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(e.Fields[k], "; "))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

func (e *ValidationError) Unwrap() error { return e.cause }

const (
	msgBlank    = "This field may not be blank."
	msgRequired = "This field is required."
)

// notFound translates the repository sentinel into the service one.
func notFound(err error) error {
	if errors.Is(err, repo.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
