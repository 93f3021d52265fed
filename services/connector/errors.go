package connector

import (
	"errors"
	"strings"

	"dbconnectorapi/services/backend"
)

// Category classifies connector failures.
type Category string

// Failure categories surfaced by the connector.
const (
	CategoryUnknownBackend    Category = "unknown_backend"
	CategoryMissingCredential Category = "missing_credential"
	CategoryInvalidTarget     Category = "invalid_target"
	CategoryConnection        Category = "connection_error"
	CategoryQuery             Category = "query_error"
)

// Sentinels for errors.Is; they match any *Error of the same category.
var (
	ErrUnknownBackend    = &Error{Category: CategoryUnknownBackend}
	ErrMissingCredential = &Error{Category: CategoryMissingCredential}
	ErrInvalidTarget     = &Error{Category: CategoryInvalidTarget}
	ErrConnection        = &Error{Category: CategoryConnection}
	ErrQuery             = &Error{Category: CategoryQuery}
)

// Error is a categorized connector failure.
type Error struct {
	Category  Category
	Backend   backend.Kind
	Operation string
	Message   string
	Cause     error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Category))
	if e.Backend != "" {
		b.WriteString(" [")
		b.WriteString(string(e.Backend))
		b.WriteString("]")
	}
	if e.Operation != "" {
		b.WriteString(" ")
		b.WriteString(e.Operation)
	}
	if detail := e.Detail(); detail != "" {
		b.WriteString(": ")
		b.WriteString(detail)
	}
	return b.String()
}

// Detail is the human-readable part of the error without category or backend prefix.
func (e *Error) Detail() string {
	switch {
	case e.Cause == nil:
		return e.Message
	case e.Message == "":
		return e.Cause.Error()
	default:
		return e.Message + ": " + e.Cause.Error()
	}
}

func (e *Error) Unwrap() error { return e.Cause }

// Is matches the category sentinels.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t.Message != "" || t.Cause != nil || t.Backend != "" || t.Operation != "" {
		return false
	}
	return t.Category == e.Category
}

// CategoryOf returns the category of err, or "" when err is not a connector error.
func CategoryOf(err error) Category {
	var e *Error
	if errors.As(err, &e) {
		return e.Category
	}
	return ""
}

// Outcome converts err into a success flag and a message for display and history.
func Outcome(err error) (bool, string) {
	if err == nil {
		return true, ""
	}
	var e *Error
	if errors.As(err, &e) {
		return false, e.Detail()
	}
	return false, err.Error()
}

// wrap returns err as an *Error, keeping an existing category and filling in missing context.
func wrap(err error, category Category, kind backend.Kind, op, msg string) error {
	var e *Error
	if errors.As(err, &e) {
		if e.Backend == "" {
			e.Backend = kind
		}
		if e.Operation == "" {
			e.Operation = op
		}
		return e
	}
	return &Error{Category: category, Backend: kind, Operation: op, Message: msg, Cause: err}
}
