// Copyright (c) 2025 TravelGo
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"

	"github.com/99designs/keyring"
	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travelgo/cli/internal/config"
	"travelgo/cli/internal/keychain"
	"travelgo/cli/internal/session"
)

type harness struct {
	t       *testing.T
	baseURL string
	km      *keychain.Manager
	out     bytes.Buffer
}

func newHarness(t *testing.T, h http.Handler) *harness {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	for _, k := range []string{config.EnvBaseURL, config.EnvConnectTimeout, config.EnvReadTimeout, config.EnvLogLevel} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}

	hs := &harness{t: t, baseURL: srv.URL + "/api/", km: keychain.New(keyring.NewArrayKeyring(nil))}

	prevOpen, prevInteractive, prevConfirm := openPersister, interactive, confirmRetry
	openPersister = func() (session.Persister, error) { return hs.km, nil }
	interactive = func() bool { return false }
	confirmRetry = func(string) bool { return false }
	pterm.DisableOutput()
	t.Cleanup(func() {
		openPersister, interactive, confirmRetry = prevOpen, prevInteractive, prevConfirm
		pterm.EnableOutput()
	})
	return hs
}

func (h *harness) run(args ...string) error {
	h.t.Helper()
	resetFlags()
	h.out.Reset()
	rootCmd.SetOut(&h.out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(append(args, "--base-url", h.baseURL))
	return rootCmd.ExecuteContext(context.Background())
}

func (h *harness) token() string {
	tok, err := h.km.LoadToken()
	if err != nil {
		return ""
	}
	return tok
}

func resetFlags() {
	showVersion, baseURLFlag, verboseFlag = false, "", false
	loginEmail, loginPassword = "", ""
	signupName, signupEmail, signupPassword = "", "", ""
	reserveDate, reserveTravelers, reserveNotes = "", 0, ""
}

func TestLoginThenMe(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"token":"abc123","user":{"id":1,"name":"Ana"}}`)
	})
	var sawBearer atomic.Bool
	mux.HandleFunc("GET /api/auth/me", func(w http.ResponseWriter, r *http.Request) {
		sawBearer.Store(r.Header.Get("Authorization") == "Bearer abc123")
		_, _ = io.WriteString(w, `{"id":1,"name":"Ana"}`)
	})
	h := newHarness(t, mux)

	require.NoError(t, h.run("login", "--email", "a@b.com", "--password", "x"))
	assert.Equal(t, "abc123", h.token())

	require.NoError(t, h.run("me"))
	assert.True(t, sawBearer.Load())

	require.NoError(t, h.run("logout"))
	assert.Empty(t, h.token())
}

func TestLoginRejectedLeavesNoToken(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	h := newHarness(t, mux)

	err := h.run("login", "--email", "a@b.com", "--password", "wrong")
	require.Error(t, err)
	var reported *reportedError
	assert.True(t, errors.As(err, &reported))
	assert.Empty(t, h.token())
}

func TestSignupRequiresName(t *testing.T) {
	h := newHarness(t, http.NotFoundHandler())
	assert.Error(t, h.run("signup", "--email", "a@b.com", "--password", "x"))
}

func TestPackagesUsesWrappedFallback(t *testing.T) {
	var wrappedHits atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/package", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	mux.HandleFunc("GET /api/packages", func(w http.ResponseWriter, r *http.Request) {
		wrappedHits.Add(1)
		_, _ = io.WriteString(w, `{"list":[{"id":1,"title":"Lisbon","price":"899.00"}]}`)
	})
	h := newHarness(t, mux)

	require.NoError(t, h.run("packages"))
	assert.Equal(t, int32(1), wrappedHits.Load())
}

func TestRetryAfterServerError(t *testing.T) {
	var hits atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/package/{id}", func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = io.WriteString(w, `{"id":3,"title":"Kyoto"}`)
	})
	h := newHarness(t, mux)
	var asked int
	confirmRetry = func(string) bool {
		asked++
		return true
	}

	require.NoError(t, h.run("packages", "show", "3"))
	assert.Equal(t, int32(2), hits.Load())
	assert.Equal(t, 1, asked)
}

func TestNoRetryWhenUnauthenticated(t *testing.T) {
	var hits atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/user/{id}", func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	})
	h := newHarness(t, mux)
	confirmRetry = func(string) bool { return true }

	assert.Error(t, h.run("user", "7"))
	assert.Equal(t, int32(1), hits.Load())
}

func TestReserve(t *testing.T) {
	var hits atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/reservation", func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		_, _ = io.WriteString(w, `{"reservationId":"R-9","status":"confirmed"}`)
	})
	h := newHarness(t, mux)
	require.NoError(t, h.km.SaveToken("tok"))

	assert.Error(t, h.run("reserve", "4", "--date", "tomorrow"))
	assert.Equal(t, int32(0), hits.Load(), "invalid input never reaches the backend")

	require.NoError(t, h.run("reserve", "4", "--date", "2026-05-01", "--travelers", "2"))
	assert.Equal(t, int32(1), hits.Load())
}

func TestHomeWithoutSessionLoadsPackagesOnly(t *testing.T) {
	var meHits, listHits atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/auth/me", func(w http.ResponseWriter, r *http.Request) { meHits.Add(1) })
	mux.HandleFunc("GET /api/package", func(w http.ResponseWriter, r *http.Request) {
		listHits.Add(1)
		_, _ = io.WriteString(w, `[{"id":1}]`)
	})
	h := newHarness(t, mux)

	require.NoError(t, h.run("home"))
	assert.Equal(t, int32(0), meHits.Load())
	assert.Equal(t, int32(1), listHits.Load())
}

func TestHomeReportsFailures(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/auth/me", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"id":1,"name":"Ana"}`)
	})
	mux.HandleFunc("GET /api/package", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusBadGateway) })
	mux.HandleFunc("GET /api/packages", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusBadGateway) })
	h := newHarness(t, mux)
	require.NoError(t, h.km.SaveToken("tok"))

	err := h.run("home")
	var reported *reportedError
	assert.True(t, errors.As(err, &reported))
}

func TestHomeRetriesOnlyTheFailedPart(t *testing.T) {
	var meHits, listHits atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/auth/me", func(w http.ResponseWriter, r *http.Request) {
		meHits.Add(1)
		_, _ = io.WriteString(w, `{"id":1,"name":"Ana"}`)
	})
	mux.HandleFunc("GET /api/package", func(w http.ResponseWriter, r *http.Request) {
		if listHits.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = io.WriteString(w, `[{"id":1}]`)
	})
	mux.HandleFunc("GET /api/packages", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusServiceUnavailable) })
	h := newHarness(t, mux)
	require.NoError(t, h.km.SaveToken("tok"))
	var asked []string
	confirmRetry = func(action string) bool {
		asked = append(asked, action)
		return true
	}

	require.NoError(t, h.run("home"))
	assert.Equal(t, []string{"loading packages"}, asked)
	assert.Equal(t, int32(1), meHits.Load())
	assert.Equal(t, int32(2), listHits.Load())
}

func TestVersion(t *testing.T) {
	h := newHarness(t, http.NotFoundHandler())

	require.NoError(t, h.run("--version"))
	assert.Contains(t, h.out.String(), "travelgo "+Version)
	assert.Contains(t, h.out.String(), h.baseURL)
}

func TestSessionCommand(t *testing.T) {
	h := newHarness(t, http.NotFoundHandler())
	require.NoError(t, h.run("session"))

	require.NoError(t, h.km.SaveToken("abcdefghijkl"))
	require.NoError(t, h.run("session"))
}
