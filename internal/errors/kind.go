package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// Kind classifies domain failures returned by the services.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindForbidden
	KindValidation
	KindConflict
	KindIllegalState
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindForbidden:
		return "forbidden"
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindIllegalState:
		return "illegal_state"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is matching against a kind.
var (
	ErrNotFound     = &Error{Kind: KindNotFound, Message: "resource not found"}
	ErrForbidden    = &Error{Kind: KindForbidden, Message: "access denied"}
	ErrValidation   = &Error{Kind: KindValidation, Message: "validation failed"}
	ErrConflict     = &Error{Kind: KindConflict, Message: "conflict"}
	ErrIllegalState = &Error{Kind: KindIllegalState, Message: "illegal state"}
)

// Error is a domain failure. Fields carries the field -> message mapping for
// validation and conflict failures.
type Error struct {
	Kind    Kind
	Message string
	Fields  map[string]string
}

func (e *Error) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Fields)
}

// Is matches any *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// NewNotFound reports that no active row exists for the named resource.
func NewNotFound(resource string) *Error {
	return &Error{Kind: KindNotFound, Message: resource + " not found"}
}

// NewForbidden never names the resource, so existence is not leaked.
func NewForbidden() *Error {
	return &Error{Kind: KindForbidden, Message: "access denied"}
}

func NewValidation(fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Message: "validation failed", Fields: fields}
}

func NewConflict(fields map[string]string) *Error {
	return &Error{Kind: KindConflict, Message: "conflict", Fields: fields}
}

// NewIllegalState carries internal detail for logs only.
func NewIllegalState(detail string) *Error {
	return &Error{Kind: KindIllegalState, Message: detail}
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var domainErr *Error
	if stderrors.As(err, &domainErr) {
		return domainErr.Kind
	}
	return KindUnknown
}

// FieldsOf returns the field messages of the first *Error in err's chain.
func FieldsOf(err error) map[string]string {
	var domainErr *Error
	if stderrors.As(err, &domainErr) {
		return domainErr.Fields
	}
	return nil
}

// StatusFor maps a kind to its HTTP status code.
func StatusFor(kind Kind) int {
	switch kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden:
		return http.StatusForbidden
	case KindValidation:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
