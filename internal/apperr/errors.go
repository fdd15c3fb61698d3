// internal/apperr/errors.go
package apperr

import "fmt"

// Kind is the machine-checkable failure category. Handlers map kinds to HTTP
// statuses; tests assert on them directly.
type Kind string

const (
	KindAuthRequired      Kind = "auth_required"
	KindInvalidInput      Kind = "invalid_input"
	KindNotFound          Kind = "not_found"
	KindInsufficientStock Kind = "insufficient_stock"
	KindEmptyCart         Kind = "empty_cart"
	KindTotalMismatch     Kind = "total_mismatch"
	KindPersistence       Kind = "persistence"
)

// Error carries a kind plus an i18n message key. Args are interpolated into
// the localized message at the handler boundary; Detail holds an untranslated
// supplement (store error text, joined violation list).
type Error struct {
	Kind       Kind
	MessageKey string
	Args       []interface{}
	Detail     string
	cause      error
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Kind, e.MessageKey, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.MessageKey)
}

func (e *Error) Unwrap() error { return e.cause }

func New(kind Kind, messageKey string, args ...interface{}) *Error {
	return &Error{Kind: kind, MessageKey: messageKey, Args: args}
}

func (e *Error) WithDetail(detail string) *Error {
	e.Detail = detail
	return e
}

// Wrap converts an unexpected store error into a persistence-kind error so no
// raw error crosses the service boundary.
func Wrap(err error, messageKey string) *Error {
	return &Error{
		Kind:       KindPersistence,
		MessageKey: messageKey,
		Detail:     err.Error(),
		cause:      err,
	}
}

// KindOf returns the kind of err, or KindPersistence for anything that is not
// an *Error.
func KindOf(err error) Kind {
	if e, ok := err.(*Error); ok {
		return e.Kind
	}
	return KindPersistence
}

// Is lets errors.Is match two *Error values by kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}
