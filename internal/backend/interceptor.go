// Copyright (c) 2025 TravelGo
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/pterm/pterm"

	"travelgo/cli/internal/logging"
	"travelgo/cli/internal/session"
)

// RequestIDHeader carries a per-request identifier for log correlation.
const RequestIDHeader = "X-Request-ID"

// maxLoggedBody caps how much of a body the logging interceptor prints.
const maxLoggedBody = 4 << 10

// Interceptor wraps a RoundTripper with request/response middleware.
type Interceptor func(next http.RoundTripper) http.RoundTripper

// RoundTripperFunc adapts a function to http.RoundTripper.
type RoundTripperFunc func(*http.Request) (*http.Response, error)

func (f RoundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

// Chain wraps base so that interceptors run in the order given.
func Chain(base http.RoundTripper, interceptors ...Interceptor) http.RoundTripper {
	rt := base
	for i := len(interceptors) - 1; i >= 0; i-- {
		rt = interceptors[i](rt)
	}
	return rt
}

// AuthInterceptor attaches "Authorization: Bearer <token>" when src holds a token.
// Without a token the request is forwarded untouched. The caller's request is
// never modified; a clone carries the header.
func AuthInterceptor(src session.TokenSource) Interceptor {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
			if src == nil {
				return next.RoundTrip(req)
			}
			tok, ok := src.Token()
			if !ok || tok == "" {
				return next.RoundTrip(req)
			}
			// Some backends hand out tokens already prefixed.
			if t := parseBearerToken(tok); t != "" {
				tok = t
			}
			r := req.Clone(req.Context())
			r.Header.Set("Authorization", "Bearer "+tok)
			return next.RoundTrip(r)
		})
	}
}

// RequestIDInterceptor sets X-Request-ID to a fresh UUID unless one is present.
func RequestIDInterceptor() Interceptor {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
			if req.Header.Get(RequestIDHeader) != "" {
				return next.RoundTrip(req)
			}
			r := req.Clone(req.Context())
			r.Header.Set(RequestIDHeader, uuid.NewString())
			return next.RoundTrip(r)
		})
	}
}

// LoggingInterceptor traces every exchange at debug level and warns about
// transport failures. Bodies are truncated and masked; both bodies are
// restored for downstream readers.
func LoggingInterceptor(logger *pterm.Logger) Interceptor {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
			id := req.Header.Get(RequestIDHeader)
			if logger.CanPrint(pterm.LogLevelDebug) {
				body, restored := peekBody(req.Body)
				req = req.Clone(req.Context())
				req.Body = restored
				logger.Debug("--> "+req.Method+" "+logging.Mask(req.URL.String()), logger.Args(
					"request_id", id,
					"authorization", logging.Mask(req.Header.Get("Authorization")),
					"body", body,
				))
			}

			start := time.Now()
			resp, err := next.RoundTrip(req)
			elapsed := time.Since(start).Round(time.Millisecond)
			if err != nil {
				logger.Warn("<-- "+req.Method+" "+logging.Mask(req.URL.String())+" failed", logger.Args(
					"request_id", id,
					"elapsed", elapsed.String(),
					"error", logging.Mask(err.Error()),
				))
				return nil, err
			}

			args := []any{"request_id", id, "status", resp.StatusCode, "elapsed", elapsed.String()}
			if logger.CanPrint(pterm.LogLevelDebug) {
				body, restored := peekBody(resp.Body)
				resp.Body = restored
				args = append(args, "body", body)
			}
			logger.Debug("<-- "+req.Method+" "+logging.Mask(req.URL.String()), logger.Args(args...))
			return resp, nil
		})
	}
}

// peekBody reads rc fully and returns a masked, truncated copy for logging along
// with a replacement reader holding the original bytes.
func peekBody(rc io.ReadCloser) (string, io.ReadCloser) {
	if rc == nil || rc == http.NoBody {
		return "", rc
	}
	b, err := io.ReadAll(rc)
	_ = rc.Close()
	if err != nil {
		// Downstream readers still see what arrived, then the same failure.
		return "<unreadable body>", io.NopCloser(io.MultiReader(bytes.NewReader(b), failingReader{err}))
	}
	restored := io.NopCloser(bytes.NewReader(b))
	s := string(b)
	if len(s) > maxLoggedBody {
		s = s[:maxLoggedBody] + "…"
	}
	return logging.Mask(s), restored
}

type failingReader struct{ err error }

func (f failingReader) Read([]byte) (int, error) { return 0, f.err }
