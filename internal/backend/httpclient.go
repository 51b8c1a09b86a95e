// Copyright (c) 2025 TravelGo
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"

	apperr "travelgo/cli/internal/errors"
)

// maxResponseBody bounds how much of a response is read.
const maxResponseBody = 10 << 20

// HTTP implements API over the REST endpoints.
type HTTP struct {
	// baseURL is the URL every endpoint path is joined to
	baseURL *url.URL
	// endpoints contains the URL paths for the API operations
	endpoints Endpoints
	// client carries the timeouts and the interceptor chain
	client    *http.Client
	userAgent string
}

// BaseURL returns the URL requests are resolved against.
func (h *HTTP) BaseURL() string { return h.baseURL.String() }

// do sends a JSON request to the path built from elem and decodes a 2xx body into out.
// in and out may be nil.
func (h *HTTP) do(ctx context.Context, method string, in, out any, elem ...string) (http.Header, error) {
	u := h.baseURL.JoinPath(elem...)
	op := method + " " + strings.Join(elem, "/")

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return nil, apperr.Wrap(apperr.Unknown, "encode "+op+" request", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, apperr.Wrap(apperr.Unknown, "create "+op+" request", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", h.userAgent)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, networkError(ctx, op, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return nil, networkError(ctx, op, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apperr.Status(resp.StatusCode, fmt.Sprintf("%s failed: %s", op, statusMessage(resp.StatusCode, data)))
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return nil, apperr.Wrap(apperr.DeserializationFailure, "decode "+op+" response", err)
		}
	}
	return resp.Header, nil
}

// networkError classifies a transport failure, flagging timeouts.
func networkError(ctx context.Context, op string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(ctx.Err(), context.Canceled) {
		return apperr.Network(op+" canceled", false, err)
	}
	if isTimeout(err) {
		return apperr.Network(op+" timed out", true, err)
	}
	return apperr.Network(op+" failed", false, err)
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// statusMessage prefers the backend's own "message" field, then the trimmed
// body, then the status text.
func statusMessage(code int, body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if m := strings.TrimSpace(payload.Message); m != "" {
			return fmt.Sprintf("%d %s", code, m)
		}
		if m := strings.TrimSpace(payload.Error); m != "" {
			return fmt.Sprintf("%d %s", code, m)
		}
	}
	if s := strings.TrimSpace(string(body)); s != "" && len(s) <= 200 && !strings.HasPrefix(s, "<") {
		return fmt.Sprintf("%d %s", code, s)
	}
	return fmt.Sprintf("%d %s", code, http.StatusText(code))
}
