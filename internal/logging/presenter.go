// Copyright (c) 2025 TravelGo
// Licensed under the MIT License. See LICENSE file in the project root for details.

package logging

import (
	"fmt"

	apperr "travelgo/cli/internal/errors"
)

// PresentError renders err as a single masked line for the terminal. Typed
// backend errors lead with a readable category instead of the raw kind.
func PresentError(context string, err error) string {
	if err == nil {
		return ""
	}
	e, ok := apperr.As(err)
	if !ok {
		return fmt.Sprintf("%s: %s", context, Mask(err.Error()))
	}
	msg := e.Message
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return fmt.Sprintf("%s: %s: %s", context, category(e), Mask(msg))
}

func category(e *apperr.E) string {
	switch e.Kind {
	case apperr.NetworkFailure:
		if e.Timeout {
			return "timed out"
		}
		return "network error"
	case apperr.Unauthenticated:
		return "not signed in"
	case apperr.HTTPFailure:
		return fmt.Sprintf("HTTP %d", e.Status)
	case apperr.DeserializationFailure:
		return "unexpected response"
	}
	return "error"
}
