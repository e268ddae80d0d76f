package application

import (
	"errors"
	"fmt"
)

// ErrorKind is the closed set of reasons an operation can be refused.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindInvalidInput
	KindAlreadyRegistered
	KindNotFound
	KindNotLoggedIn
	KindUnauthorized
	KindRoleViolation
	KindNotOwner
	KindInsufficientStock
)

var kindCodes = map[ErrorKind]string{
	KindUnknown:           "UNKNOWN",
	KindInvalidInput:      "INVALID_INPUT",
	KindAlreadyRegistered: "ALREADY_REGISTERED",
	KindNotFound:          "NOT_FOUND",
	KindNotLoggedIn:       "NOT_LOGGED_IN",
	KindUnauthorized:      "UNAUTHORIZED",
	KindRoleViolation:     "ROLE_VIOLATION",
	KindNotOwner:          "NOT_OWNER",
	KindInsufficientStock: "INSUFFICIENT_STOCK",
}

func (k ErrorKind) String() string {
	if c, ok := kindCodes[k]; ok {
		return c
	}
	return kindCodes[KindUnknown]
}

// Error is returned by every Service operation that refuses a request.
// Two Errors match under errors.Is when their kinds match.
type Error struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

var (
	ErrInvalidInput      = &Error{Kind: KindInvalidInput, Message: "invalid input"}
	ErrAlreadyRegistered = &Error{Kind: KindAlreadyRegistered, Message: "user already registered"}
	ErrUserNotFound      = &Error{Kind: KindNotFound, Message: "user not found"}
	ErrProductNotFound   = &Error{Kind: KindNotFound, Message: "product not found"}
	ErrNotLoggedIn       = &Error{Kind: KindNotLoggedIn, Message: "user not registered"}
	ErrUnauthorized      = &Error{Kind: KindUnauthorized, Message: "only active manufacturers can create products"}
	ErrRoleViolation     = &Error{Kind: KindRoleViolation, Message: "role not allowed for this action"}
	ErrNotOwner          = &Error{Kind: KindNotOwner, Message: "caller does not own this product"}
	ErrInsufficientStock = &Error{Kind: KindInsufficientStock, Message: "insufficient stock"}
)

func newError(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf reports the kind of err, or KindUnknown for non-application errors.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
