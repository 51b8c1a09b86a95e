// Copyright (c) 2025 TravelGo
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pterm/pterm"

	"travelgo/cli/internal/logging"
	"travelgo/cli/internal/session"
)

// Default timeouts applied when Config leaves them zero.
const (
	DefaultConnectTimeout = 20 * time.Second
	DefaultReadTimeout    = 20 * time.Second
)

// Endpoints contains the REST paths, relative to the base URL.
type Endpoints struct {
	Login           string `json:"login"`
	Me              string `json:"me"`
	Signup          string `json:"signup"`
	User            string `json:"user"`
	PackagesFlat    string `json:"packages_flat"`
	PackagesWrapped string `json:"packages_wrapped"`
	Package         string `json:"package"`
	Reservation     string `json:"reservation"`
}

// DefaultEndpoints returns the paths served by the TravelGo backend.
func DefaultEndpoints() Endpoints {
	return Endpoints{
		Login:           "auth/login",
		Me:              "auth/me",
		Signup:          "auth/signup",
		User:            "user",
		PackagesFlat:    "package",
		PackagesWrapped: "packages",
		Package:         "package",
		Reservation:     "reservation",
	}
}

// withDefaults fills empty paths from DefaultEndpoints.
func (e Endpoints) withDefaults() Endpoints {
	d := DefaultEndpoints()
	fill := func(v *string, def string) {
		if strings.TrimSpace(*v) == "" {
			*v = def
		}
	}
	fill(&e.Login, d.Login)
	fill(&e.Me, d.Me)
	fill(&e.Signup, d.Signup)
	fill(&e.User, d.User)
	fill(&e.PackagesFlat, d.PackagesFlat)
	fill(&e.PackagesWrapped, d.PackagesWrapped)
	fill(&e.Package, d.Package)
	fill(&e.Reservation, d.Reservation)
	return e
}

// Config describes how to build the backend client.
type Config struct {
	// BaseURL is the absolute URL every endpoint path is resolved against.
	BaseURL        string
	ConnectTimeout time.Duration
	ReadTimeout    time.Duration
	Endpoints      Endpoints
	UserAgent      string
	// Logger receives traffic logs; nil discards them.
	Logger *pterm.Logger
	// Transport replaces the default transport at the bottom of the chain.
	Transport http.RoundTripper
}

// Build assembles the HTTP client: base URL, timeouts and the interceptor chain
// (auth first, then request id, then logging, then any extra interceptors,
// with the body read timeout innermost).
func Build(cfg Config, tokens session.TokenSource, extra ...Interceptor) (*HTTP, error) {
	base, err := parseBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, err
	}
	if cfg.ConnectTimeout <= 0 {
		cfg.ConnectTimeout = DefaultConnectTimeout
	}
	if cfg.ReadTimeout <= 0 {
		cfg.ReadTimeout = DefaultReadTimeout
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Discard()
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "travelgo-cli"
	}

	transport := cfg.Transport
	if transport == nil {
		transport = newTransport(cfg.ConnectTimeout, cfg.ReadTimeout)
	}

	chain := append([]Interceptor{
		AuthInterceptor(tokens),
		RequestIDInterceptor(),
		LoggingInterceptor(cfg.Logger),
	}, extra...)
	chain = append(chain, ReadTimeoutInterceptor(cfg.ReadTimeout))

	return &HTTP{
		baseURL:   base,
		endpoints: cfg.Endpoints.withDefaults(),
		client:    &http.Client{Transport: Chain(transport, chain...)},
		userAgent: cfg.UserAgent,
	}, nil
}

// newTransport applies the connect timeout to dialing and the TLS handshake and
// the read timeout to waiting for response headers.
func newTransport(connect, read time.Duration) *http.Transport {
	dialer := &net.Dialer{Timeout: connect, KeepAlive: 30 * time.Second}
	return &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		ForceAttemptHTTP2:     true,
		TLSHandshakeTimeout:   connect,
		ResponseHeaderTimeout: read,
		IdleConnTimeout:       90 * time.Second,
		MaxIdleConns:          10,
		ExpectContinueTimeout: time.Second,
	}
}

func parseBaseURL(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, errors.New("backend: base URL is required")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("backend: parse base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("backend: base URL %q must use http or https", raw)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("backend: base URL %q has no host", raw)
	}
	return u, nil
}
