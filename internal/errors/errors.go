// Package errors provides the structured error type used across blogsmith for
// category-based classification in the CLI and HTTP adapters.
package errors

import (
	"errors"
	"fmt"
)

// Category classifies an error for exit-code and HTTP-status mapping.
type Category string

const (
	// User-facing input errors
	CategoryValidation Category = "validation"
	CategoryNotFound   Category = "not_found"
	CategoryCapacity   Category = "capacity"

	// Generation errors
	CategoryReference Category = "reference"

	// Infrastructure errors
	CategoryConfig   Category = "config"
	CategoryStorage  Category = "storage"
	CategoryPublish  Category = "publish"
	CategoryInternal Category = "internal"
)

// Error is a categorized error with optional cause and structured context.
type Error struct {
	Category Category      `json:"category"`
	Message  string        `json:"message"`
	Cause    error         `json:"cause,omitempty"`
	Context  ContextFields `json:"context,omitempty"`
}

// ContextFields carries structured context for an Error.
type ContextFields map[string]any

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Category, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Category, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// WithContext adds a context field and returns the error for chaining.
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(ContextFields)
	}
	e.Context[key] = value
	return e
}

// New creates a categorized error.
func New(category Category, message string) *Error {
	return &Error{Category: category, Message: message}
}

// Newf creates a categorized error with a formatted message.
func Newf(category Category, format string, args ...any) *Error {
	return &Error{Category: category, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates a categorized error wrapping a cause.
func Wrap(err error, category Category, message string) *Error {
	return &Error{Category: category, Message: message, Cause: err}
}

// IsCategory reports whether err (or anything it wraps) has the given category.
func IsCategory(err error, category Category) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Category == category
	}
	return false
}

// GetCategory extracts the category from an error, defaulting to
// CategoryInternal for uncategorized errors.
func GetCategory(err error) Category {
	var e *Error
	if errors.As(err, &e) {
		return e.Category
	}
	return CategoryInternal
}
