package errors

import (
	"fmt"
	"strings"
)

// Convenience constructors for the domain error taxonomy.

// Validation reports a rejected record or operation. fields lists every
// missing or malformed field, not just the first.
func Validation(label string, fields []string) *Error {
	return Newf(CategoryValidation, "%s missing required fields: %s", label, strings.Join(fields, ", ")).
		WithContext("fields", fields)
}

// ValidationMsg reports a rejected operation with a free-form reason.
func ValidationMsg(message string) *Error {
	return New(CategoryValidation, message)
}

// Reference reports a post referencing a nonexistent category or tag. It
// aborts the whole generation run.
func Reference(postID, kind, refID string) *Error {
	return Newf(CategoryReference, "post:%s references unknown %s: %s", postID, kind, refID).
		WithContext("post_id", postID).
		WithContext(kind, refID)
}

// Capacity reports the pinned-post limit being exceeded without the
// auto-unpin opt-in.
func Capacity(limit int) *Error {
	return Newf(CategoryCapacity, "only %d pinned posts allowed", limit).
		WithContext("limit", limit)
}

// NotFound reports a mutation against an unknown record id.
func NotFound(kind, id string) *Error {
	return Newf(CategoryNotFound, "%s not found", kind).
		WithContext("id", id)
}

// Storage wraps a seed-store read or write failure.
func Storage(operation string, cause error) *Error {
	return Wrap(cause, CategoryStorage, fmt.Sprintf("seed store %s failed", operation))
}

// Publish wraps a failed version-control publish step. Generation has already
// completed by the time this surfaces; it is never retried.
func Publish(step string, cause error) *Error {
	return Wrap(cause, CategoryPublish, fmt.Sprintf("publish %s failed", step)).
		WithContext("step", step)
}

// Config wraps a configuration loading problem.
func Config(message string, cause error) *Error {
	return Wrap(cause, CategoryConfig, message)
}
