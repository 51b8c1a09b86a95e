// Copyright (c) 2025 TravelGo
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package repository turns backend calls into task-oriented operations that
// never return raw errors: every operation yields a Result, so the layers above
// only ever handle success or a described failure.
package repository

import (
	"strings"

	apperr "travelgo/cli/internal/errors"
)

// UnknownErrorMessage is used when a failure carries no message of its own.
const UnknownErrorMessage = "unknown error"

// ErrorInfo describes a failed operation.
type ErrorInfo struct {
	Kind apperr.Kind
	// Message is human readable: the error's own message, or UnknownErrorMessage.
	Message    string
	StatusCode int
	Timeout    bool
	Err        error
}

func (e *ErrorInfo) Error() string { return e.Message }

func (e *ErrorInfo) Unwrap() error { return e.Err }

// NewErrorInfo describes err. A nil err still yields a usable failure.
func NewErrorInfo(err error) *ErrorInfo {
	info := &ErrorInfo{Kind: apperr.Unknown, Message: UnknownErrorMessage, Err: err}
	if err == nil {
		return info
	}
	if msg := strings.TrimSpace(err.Error()); msg != "" {
		info.Message = msg
	}
	if e, ok := apperr.As(err); ok {
		info.Kind = e.Kind
		info.StatusCode = e.Status
		info.Timeout = e.Timeout
	}
	return info
}

// Result is either Success(value) or Failure(error), never both.
type Result[T any] struct {
	value T
	err   *ErrorInfo
}

// Success wraps v.
func Success[T any](v T) Result[T] {
	return Result[T]{value: v}
}

// Failure wraps err as a failed Result.
func Failure[T any](err error) Result[T] {
	return Result[T]{err: NewErrorInfo(err)}
}

// IsSuccess reports whether the result holds a value.
func (r Result[T]) IsSuccess() bool { return r.err == nil }

// Value returns the value and true on success, the zero value and false on failure.
func (r Result[T]) Value() (T, bool) {
	if r.err != nil {
		var zero T
		return zero, false
	}
	return r.value, true
}

// Failure returns the failure description, or nil on success.
func (r Result[T]) Failure() *ErrorInfo { return r.err }

// Unpack returns the value and the failure as an error, for callers that
// prefer Go's usual (value, error) form.
func (r Result[T]) Unpack() (T, error) {
	if r.err != nil {
		var zero T
		return zero, r.err
	}
	return r.value, nil
}

// Fold calls exactly one of onSuccess or onFailure.
func (r Result[T]) Fold(onSuccess func(T), onFailure func(*ErrorInfo)) {
	if r.err != nil {
		onFailure(r.err)
		return
	}
	onSuccess(r.value)
}

// Map transforms a successful value; failures pass through unchanged.
func Map[T, U any](r Result[T], f func(T) U) Result[U] {
	if r.err != nil {
		return Result[U]{err: r.err}
	}
	return Success(f(r.value))
}
