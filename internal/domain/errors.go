package domain

import (
	"errors"
	"fmt"
	"net/http"

	"broadsheet/internal/domain/models/article"
)

// HTTPError is implemented by errors that know their HTTP status code.
// Handlers check for it before falling back to the sentinel errors.
type HTTPError interface {
	error
	StatusCode() int
}

type (
	// NotFoundError indicates a resource was not found
	NotFoundError struct {
		Message string
	}

	// ValidationError indicates invalid input
	ValidationError struct {
		Message string
	}

	// UnauthorizedError indicates authentication failure
	UnauthorizedError struct {
		Message string
	}

	// ForbiddenError indicates authorization failure
	ForbiddenError struct {
		Message string
	}
)

func (e *NotFoundError) Error() string     { return e.Message }
func (e *ValidationError) Error() string   { return e.Message }
func (e *UnauthorizedError) Error() string { return e.Message }
func (e *ForbiddenError) Error() string    { return e.Message }

func (e *NotFoundError) StatusCode() int     { return http.StatusNotFound }
func (e *ValidationError) StatusCode() int   { return http.StatusBadRequest }
func (e *UnauthorizedError) StatusCode() int { return http.StatusUnauthorized }
func (e *ForbiddenError) StatusCode() int    { return http.StatusForbidden }

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("already exists")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

// ConflictError represents a resource conflict with details about the existing resource
type ConflictError struct {
	Message      string // Human-readable error message
	ResourceType string // Type of resource (article)
	ResourceID   string // ID of the existing/conflicting resource
}

func (e *ConflictError) Error() string {
	return e.Message
}

func (e *ConflictError) StatusCode() int {
	return http.StatusConflict
}

// Is allows errors.Is() to match against ErrConflict
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// PublishBlockedError is returned when an article cannot be published
// because its body does not parse cleanly or its blocks fail validation.
// It carries the full findings so the editor can show all of them at once.
type PublishBlockedError struct {
	ArticleID   string
	ParseErrors []article.ParseError
	Validation  *article.ValidationResult
}

func (e *PublishBlockedError) Error() string {
	switch {
	case len(e.ParseErrors) > 0:
		return fmt.Sprintf("article %s cannot be published: %d parse error(s)", e.ArticleID, len(e.ParseErrors))
	case e.Validation != nil:
		return fmt.Sprintf("article %s cannot be published: %d validation error(s)", e.ArticleID, len(e.Validation.Errors))
	}
	return fmt.Sprintf("article %s cannot be published", e.ArticleID)
}

func (e *PublishBlockedError) StatusCode() int {
	return http.StatusUnprocessableEntity
}

// Is allows errors.Is() to match against ErrValidation
func (e *PublishBlockedError) Is(target error) bool {
	return target == ErrValidation
}
