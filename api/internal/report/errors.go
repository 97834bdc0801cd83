package report

import (
	"errors"
	"fmt"
)

// Kind classifies a generation failure.
type Kind string

const (
	KindConfiguration     Kind = "ConfigurationError"
	KindTransport         Kind = "TransportError"
	KindEmptyResponse     Kind = "EmptyResponse"
	KindMalformedResponse Kind = "MalformedResponse"
)

// Error is the single failure type returned by the generation pipeline.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches the kind sentinels below, so errors.Is(err, ErrEmptyResponse) works
// on any *Error of that kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t.Err != nil {
		return false
	}
	return t.Kind == e.Kind
}

var (
	ErrConfiguration     = &Error{Kind: KindConfiguration}
	ErrTransport         = &Error{Kind: KindTransport}
	ErrEmptyResponse     = &Error{Kind: KindEmptyResponse}
	ErrMalformedResponse = &Error{Kind: KindMalformedResponse}

	// ErrInvalidInput means at least one note is blank.
	ErrInvalidInput = errors.New("activity, learning and obstacle are required")
)

// NewError wraps err with a kind.
func NewError(kind Kind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

// KindOf returns the kind of a generation failure. Untyped errors count as
// transport failures, since everything outside the sanitizer is transport.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindTransport
}
