// Copyright (c) 2025 TravelGo
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"time"
)

// readTimeoutError is returned from a response body that stayed silent for
// longer than the read timeout. It reports Timeout() like net.Error.
type readTimeoutError struct {
	after time.Duration
}

func (e *readTimeoutError) Error() string {
	return fmt.Sprintf("read timeout: no response data for %s", e.after)
}

func (e *readTimeoutError) Timeout() bool   { return true }
func (e *readTimeoutError) Temporary() bool { return true }

// ReadTimeoutInterceptor aborts a request whose response body receives no
// data for d. The transport's ResponseHeaderTimeout covers the wait for
// headers; this covers every later read. It belongs innermost in the chain so
// the logging interceptor reads through it too.
func ReadTimeoutInterceptor(d time.Duration) Interceptor {
	return func(next http.RoundTripper) http.RoundTripper {
		if d <= 0 {
			return next
		}
		return RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
			ctx, cancel := context.WithCancel(req.Context())
			resp, err := next.RoundTrip(req.WithContext(ctx))
			if err != nil {
				cancel()
				return nil, err
			}
			resp.Body = watchBody(resp.Body, d, cancel)
			return resp, nil
		})
	}
}

// idleBody cancels its request when no bytes arrive for d.
type idleBody struct {
	rc     io.ReadCloser
	d      time.Duration
	cancel context.CancelFunc
	timer  *time.Timer
	fired  atomic.Bool
}

func watchBody(rc io.ReadCloser, d time.Duration, cancel context.CancelFunc) *idleBody {
	b := &idleBody{rc: rc, d: d, cancel: cancel}
	b.timer = time.AfterFunc(d, func() {
		b.fired.Store(true)
		cancel()
	})
	return b
}

func (b *idleBody) Read(p []byte) (int, error) {
	n, err := b.rc.Read(p)
	if b.fired.Load() {
		return n, &readTimeoutError{after: b.d}
	}
	if n > 0 {
		b.timer.Reset(b.d)
	}
	return n, err
}

func (b *idleBody) Close() error {
	b.timer.Stop()
	err := b.rc.Close()
	b.cancel()
	return err
}
