// Package apperr defines the error kinds surfaced by the HTTP layer.
package apperr

import (
	"errors"
	"net/http"
)

type Kind int

const (
	Internal Kind = iota
	BadRequest
	ServiceUnavailable
	Decode
	Upstream
	TooLarge
)

func (k Kind) String() string {
	switch k {
	case BadRequest:
		return "bad_request"
	case ServiceUnavailable:
		return "service_unavailable"
	case Decode:
		return "decode_error"
	case Upstream:
		return "upstream_failure"
	case TooLarge:
		return "too_large"
	default:
		return "internal_error"
	}
}

var (
	ErrBadRequest         = &Error{Kind: BadRequest, Message: "bad request"}
	ErrServiceUnavailable = &Error{Kind: ServiceUnavailable, Message: "service unavailable"}
	ErrDecode             = &Error{Kind: Decode, Message: "invalid image"}
	ErrUpstream           = &Error{Kind: Upstream, Message: "upstream failure"}
	ErrInternal           = &Error{Kind: Internal, Message: "internal error"}
	ErrTooLarge           = &Error{Kind: TooLarge, Message: "request too large"}
)

// Error carries a Kind alongside a client-safe message and the underlying cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same Kind, so errors.Is(err, ErrDecode) works
// for every decode failure regardless of message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf returns the Kind of the first *Error in err's chain, or Internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

func Status(kind Kind) int {
	switch kind {
	case BadRequest, Decode:
		return http.StatusBadRequest
	case ServiceUnavailable:
		return http.StatusServiceUnavailable
	case Upstream:
		return http.StatusBadGateway
	case TooLarge:
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}
