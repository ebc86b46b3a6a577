// Package apperror defines the error kinds the platform surfaces to callers
// and how each kind maps onto an HTTP status.
package apperror

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Kind is a machine-distinguishable error category.
type Kind string

// Error kinds.
const (
	KindNotFound                Kind = "NotFound"
	KindDuplicateApplication    Kind = "DuplicateApplication"
	KindResumeRequired          Kind = "ResumeRequired"
	KindInvalidSalaryRange      Kind = "InvalidSalaryRange"
	KindInvalidStatus           Kind = "InvalidStatus"
	KindTooManyResumes          Kind = "TooManyResumes"
	KindNotAuthorized           Kind = "NotAuthorized"
	KindValidation              Kind = "Validation"
	KindMatchServiceUnavailable Kind = "MatchServiceUnavailable"
	KindInternal                Kind = "Internal"
)

// Postgres SQLSTATE codes translated at the storage boundary.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// Error carries a kind, a human-readable message and an optional cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

// Sentinels usable with errors.Is; matching compares kinds only.
var (
	ErrNotFound                = &Error{Kind: KindNotFound}
	ErrDuplicateApplication    = &Error{Kind: KindDuplicateApplication}
	ErrResumeRequired          = &Error{Kind: KindResumeRequired}
	ErrInvalidSalaryRange      = &Error{Kind: KindInvalidSalaryRange}
	ErrInvalidStatus           = &Error{Kind: KindInvalidStatus}
	ErrTooManyResumes          = &Error{Kind: KindTooManyResumes}
	ErrNotAuthorized           = &Error{Kind: KindNotAuthorized}
	ErrValidation              = &Error{Kind: KindValidation}
	ErrMatchServiceUnavailable = &Error{Kind: KindMatchServiceUnavailable}
)

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = string(e.Kind)
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// New returns an error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap returns an error of the given kind wrapping err.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// NotFound is shorthand for New(KindNotFound, message).
func NotFound(message string) *Error { return New(KindNotFound, message) }

// Validation is shorthand for New(KindValidation, message).
func Validation(message string) *Error { return New(KindValidation, message) }

// Internal wraps an unexpected error.
func Internal(message string, err error) *Error { return Wrap(KindInternal, message, err) }

// KindOf returns the kind of err, or KindInternal when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// HTTPStatus maps a kind onto a response status.
func HTTPStatus(kind Kind) int {
	switch kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindNotAuthorized:
		return http.StatusForbidden
	case KindMatchServiceUnavailable:
		return http.StatusServiceUnavailable
	case KindInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

// FromDB translates ORM and driver errors. notFound is used as the message
// when the record is missing or a referenced row does not exist.
func FromDB(err error, notFound string) error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return err
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return NotFound(notFound)
	case IsForeignKeyViolation(err):
		return Wrap(KindNotFound, notFound, err)
	default:
		return Internal("Database error", err)
	}
}

// IsUniqueViolation reports whether err is a Postgres unique_violation,
// optionally restricted to a named constraint.
func IsUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgUniqueViolation {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}

// IsForeignKeyViolation reports whether err is a Postgres foreign_key_violation.
func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation
}
