package services

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a domain failure so the transport layer can map it to
// a status code without inspecting message text.
type ErrorKind string

const (
	KindValidation     ErrorKind = "validation"
	KindAuthentication ErrorKind = "authentication"
	KindAuthorization  ErrorKind = "authorization"
	KindNotFound       ErrorKind = "not_found"
	KindConflict       ErrorKind = "conflict"
	KindTransaction    ErrorKind = "transaction"
)

type Error struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func (domainError *Error) Error() string {
	if domainError.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", domainError.Kind, domainError.Message, domainError.Cause)
	}
	return fmt.Sprintf("%s: %s", domainError.Kind, domainError.Message)
}

func (domainError *Error) Unwrap() error {
	return domainError.Cause
}

func ValidationError(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func AuthenticationError(message string) *Error {
	return &Error{Kind: KindAuthentication, Message: message}
}

func AuthorizationError(message string) *Error {
	return &Error{Kind: KindAuthorization, Message: message}
}

func NotFoundError(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func ConflictError(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// TransactionError wraps a store failure. The cause is kept for logging but
// never surfaces in the domain message shown to callers.
func TransactionError(message string, cause error) *Error {
	return &Error{Kind: KindTransaction, Message: message, Cause: cause}
}

// KindOf reports the domain kind of err, or KindTransaction for any error
// that is not a domain error (unknown store failures are internal).
func KindOf(err error) ErrorKind {
	var domainError *Error
	if errors.As(err, &domainError) {
		return domainError.Kind
	}
	return KindTransaction
}

// AsDomainError coerces err into a domain error, wrapping unknown errors as
// transaction failures with the given operation context.
func AsDomainError(err error, operation string) *Error {
	var domainError *Error
	if errors.As(err, &domainError) {
		return domainError
	}
	return TransactionError(operation+" failed", err)
}
