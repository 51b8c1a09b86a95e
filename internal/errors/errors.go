// Copyright (c) 2025 TravelGo
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package errors defines typed errors with categories for user-friendly reporting.
// Every failure produced by the backend client carries one of the kinds below, so
// callers can tell a dropped connection from a rejected token or a malformed body
// without parsing messages.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind is a machine-readable error category.
type Kind string

const (
	// NetworkFailure indicates the request never produced a response
	// (no connectivity, DNS, refused connection, timeout).
	NetworkFailure Kind = "network_failure"
	// HTTPFailure indicates the backend answered with a non-2xx status.
	HTTPFailure Kind = "http_failure"
	// DeserializationFailure indicates the response body did not match the expected shape.
	DeserializationFailure Kind = "deserialization_failure"
	// Unauthenticated is an HTTPFailure with status 401.
	Unauthenticated Kind = "unauthenticated"
	// Unknown is used for errors that were not produced by this package.
	Unknown Kind = "unknown"
)

// E wraps an error with kind and human-friendly message.
type E struct {
	Kind    Kind
	Message string
	// Status is the HTTP status code for HTTPFailure and Unauthenticated.
	Status int
	// Timeout is set for network failures caused by a connect or read timeout.
	Timeout bool
	Err     error
}

func (e *E) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *E) Unwrap() error { return e.Err }

func Wrap(kind Kind, msg string, err error) *E { return &E{Kind: kind, Message: msg, Err: err} }
func New(kind Kind, msg string) *E             { return &E{Kind: kind, Message: msg} }

// Network wraps a transport error. timeout marks connect/read deadline expiry.
func Network(msg string, timeout bool, err error) *E {
	return &E{Kind: NetworkFailure, Message: msg, Timeout: timeout, Err: err}
}

// Status builds an HTTPFailure for the given status code, or Unauthenticated for 401.
func Status(code int, msg string) *E {
	kind := HTTPFailure
	if code == 401 {
		kind = Unauthenticated
	}
	return &E{Kind: kind, Message: msg, Status: code}
}

// As returns the first *E in err's chain.
func As(err error) (*E, bool) {
	var e *E
	if stderrors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// KindOf reports the kind of err, or Unknown when err carries none.
func KindOf(err error) Kind {
	if e, ok := As(err); ok {
		return e.Kind
	}
	return Unknown
}

// IsUnauthenticated reports whether err was caused by a 401 response.
func IsUnauthenticated(err error) bool {
	return KindOf(err) == Unauthenticated
}
