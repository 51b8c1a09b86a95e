// Copyright (c) 2025 TravelGo
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package httperrors provides user-friendly error reporting for backend requests.
package httperrors

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"net"
	"strings"
	"syscall"

	"github.com/pterm/pterm"

	apperr "travelgo/cli/internal/errors"
	"travelgo/cli/internal/logging"
)

// Category groups failures by what the user can do about them.
type Category int

const (
	Generic Category = iota
	Timeout
	DNS
	ConnectionRefused
	TLS
	Server
	Rejected
	Unauthenticated
	Malformed
	Canceled
)

// Report is a rendered explanation of a failure.
type Report struct {
	Category Category
	Headline string
	Hints    []string
	// Detail is the masked technical message, shown at debug level.
	Detail string
}

// Classify inspects the error chain. Repository ErrorInfo values unwrap to
// the original error, so they classify the same way.
func Classify(err error) Category {
	if err == nil {
		return Generic
	}
	e, ok := apperr.As(err)
	if ok {
		switch e.Kind {
		case apperr.Unauthenticated:
			return Unauthenticated
		case apperr.DeserializationFailure:
			return Malformed
		case apperr.HTTPFailure:
			if e.Status >= 500 {
				return Server
			}
			return Rejected
		}
		if e.Timeout {
			return Timeout
		}
	}
	switch {
	case isCanceled(err):
		return Canceled
	case isTimeoutError(err):
		return Timeout
	case isDNSError(err):
		return DNS
	case isConnectionRefusedError(err):
		return ConnectionRefused
	case isTLSError(err):
		return TLS
	}
	return Generic
}

// Describe builds the report for a failure that happened while doing action
// ("loading packages").
func Describe(action string, err error) Report {
	r := Report{Category: Classify(err)}
	if err != nil {
		r.Detail = logging.Mask(err.Error())
	}
	switch r.Category {
	case Timeout:
		r.Headline = fmt.Sprintf("⏱️  Connection timeout while %s", action)
		r.Hints = []string{
			"The server took too long to respond.",
			"Check your connection and try again in a few moments.",
		}
	case DNS:
		host := "the server"
		var dnsErr *net.DNSError
		if errors.As(err, &dnsErr) && dnsErr.Name != "" {
			host = dnsErr.Name
		}
		r.Headline = fmt.Sprintf("🌐 Cannot resolve server address while %s", action)
		r.Hints = []string{
			fmt.Sprintf("Unable to look up %s.", host),
			"Check that your internet connection and DNS settings work.",
		}
	case ConnectionRefused:
		r.Headline = fmt.Sprintf("🚫 Connection refused while %s", action)
		r.Hints = []string{
			"The server is not accepting connections.",
			"Check the base URL (TRAVELGO_BASE_URL or --base-url) and try again later.",
		}
	case TLS:
		r.Headline = fmt.Sprintf("🔒 Secure connection failed while %s", action)
		r.Hints = []string{
			"Cannot establish a secure HTTPS connection.",
			"Check your system clock and proxy settings.",
		}
	case Server:
		r.Headline = fmt.Sprintf("⚠️  Server error while %s", action)
		r.Hints = []string{
			"The TravelGo backend ran into a problem. This is not an issue with your setup.",
			"Please try again in a few minutes.",
		}
	case Rejected:
		r.Headline = fmt.Sprintf("❌ The server rejected the request while %s", action)
		if msg := backendMessage(err); msg != "" {
			r.Hints = []string{msg}
		}
	case Unauthenticated:
		r.Headline = fmt.Sprintf("🔒 Not signed in while %s", action)
		r.Hints = []string{
			"Your session is missing or has expired.",
			"Run 'travelgo login' and try again.",
		}
	case Malformed:
		r.Headline = fmt.Sprintf("🧩 Unexpected response while %s", action)
		r.Hints = []string{"The server answered with data this version does not understand."}
	case Canceled:
		r.Headline = fmt.Sprintf("Canceled while %s", action)
	default:
		r.Headline = fmt.Sprintf("❌ Failed while %s", action)
		if msg := backendMessage(err); msg != "" {
			r.Hints = []string{msg}
		}
	}
	return r
}

// Print renders the report with pterm.
func (r Report) Print() {
	pterm.Println(r.Headline)
	if len(r.Hints) > 0 {
		pterm.Println()
		for _, h := range r.Hints {
			pterm.Println("  • " + h)
		}
	}
	pterm.Println()
	if r.Detail != "" {
		detail := r.Detail
		if len(detail) > 300 {
			detail = detail[:300] + "..."
		}
		pterm.Debug.Printf("Technical details: %s\n", detail)
	}
}

// Present prints the report for err and returns err wrapped with action.
func Present(action string, err error) error {
	if err == nil {
		return nil
	}
	Describe(action, err).Print()
	return fmt.Errorf("%s: %w", action, err)
}

// backendMessage returns the human part of an *errors.E message.
func backendMessage(err error) string {
	if e, ok := apperr.As(err); ok && e.Message != "" {
		return logging.Mask(e.Message)
	}
	if err != nil {
		return logging.Mask(err.Error())
	}
	return ""
}

func isCanceled(err error) bool {
	return errors.Is(err, context.Canceled)
}

func isTimeoutError(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "timeout") || strings.Contains(s, "deadline exceeded")
}

func isDNSError(err error) bool {
	var dnsErr *net.DNSError
	return errors.As(err, &dnsErr)
}

func isConnectionRefusedError(err error) bool {
	if errors.Is(err, syscall.ECONNREFUSED) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "connection refused")
}

func isTLSError(err error) bool {
	var (
		recordErr  tls.RecordHeaderError
		unknownCA  x509.UnknownAuthorityError
		hostErr    x509.HostnameError
		invalidErr x509.CertificateInvalidError
	)
	if errors.As(err, &recordErr) || errors.As(err, &unknownCA) || errors.As(err, &hostErr) || errors.As(err, &invalidErr) {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "tls:") || strings.Contains(s, "x509:") || strings.Contains(s, "certificate")
}
