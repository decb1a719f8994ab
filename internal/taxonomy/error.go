package taxonomy

import (
	"errors"
	"fmt"
)

var (
	ErrValidation = errors.New("validation failed")
	ErrConflict   = errors.New("already exists")
	ErrNotFound   = errors.New("not found")
)

// PostgreSQL error codes the repository maps onto domain errors.
const (
	PgUniqueViolation     = "23505"
	PgForeignKeyViolation = "23503"
)

// ValidationError reports a structural constraint failure on one input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// ConflictError reports a uniqueness violation.
type ConflictError struct {
	Entity string
	Field  string
	Value  string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s with %s %q already exists", e.Entity, e.Field, e.Value)
}

func (e *ConflictError) Is(target error) bool { return target == ErrConflict }

// NotFoundError reports a missing Section, Category or Type.
type NotFoundError struct {
	Entity string
	Key    string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Entity, e.Key)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

func invalid(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}

func notFound(entity, key string) error {
	return &NotFoundError{Entity: entity, Key: key}
}
