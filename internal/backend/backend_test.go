// Copyright (c) 2025 TravelGo
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperr "travelgo/cli/internal/errors"
	"travelgo/cli/internal/logging"
)

type staticTokens string

func (s staticTokens) Token() (string, bool) { return string(s), s != "" }

func newTestClient(t *testing.T, h http.Handler, tokens staticTokens) *HTTP {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := Build(Config{BaseURL: srv.URL + "/api/"}, tokens)
	require.NoError(t, err)
	return c
}

func TestBuildRejectsBadBaseURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{name: "empty", url: ""},
		{name: "no scheme", url: "example.com/api"},
		{name: "ftp", url: "ftp://example.com"},
		{name: "no host", url: "https://"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(Config{BaseURL: tt.url}, nil)
			assert.Error(t, err)
		})
	}
}

func TestLoginSendsCredentialsAndReadsToken(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Empty(t, r.Header.Get("Authorization"))
		var creds Credentials
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		assert.Equal(t, Credentials{Email: "a@b.com", Password: "x"}, creds)
		_, _ = io.WriteString(w, `{"token":"abc123","user":{"id":7,"name":"Ana"}}`)
	})
	c := newTestClient(t, mux, "")

	resp, err := c.Login(context.Background(), Credentials{Email: "a@b.com", Password: "x"})
	require.NoError(t, err)
	assert.Equal(t, "abc123", resp.Token)
	require.NotNil(t, resp.User)
	assert.Equal(t, int64(7), resp.User.ID)
	assert.Equal(t, "Ana", resp.User.Name)
}

func TestLoginTokenSources(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		header string
		want   string
	}{
		{name: "authToken field", body: `{"authToken":"xano-1"}`, want: "xano-1"},
		{name: "access_token field", body: `{"access_token":"acc"}`, want: "acc"},
		{name: "bearer prefixed value", body: `{"token":"Bearer inner"}`, want: "inner"},
		{name: "authorization header", body: `{}`, header: "Bearer from-header", want: "from-header"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if tt.header != "" {
					w.Header().Set("Authorization", tt.header)
				}
				_, _ = io.WriteString(w, tt.body)
			}), "")
			resp, err := c.Login(context.Background(), Credentials{})
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.Token)
		})
	}
}

func TestLoginWithoutTokenIsDeserializationFailure(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"user":{"id":1}}`)
	}), "")

	_, err := c.Login(context.Background(), Credentials{})
	assert.Equal(t, apperr.DeserializationFailure, apperr.KindOf(err))
}

func TestSignupPostsFields(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/signup", r.URL.Path)
		var fields map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&fields))
		assert.Equal(t, "Ana", fields["name"])
		_, _ = io.WriteString(w, `{"authToken":"new"}`)
	}), "")

	resp, err := c.Signup(context.Background(), map[string]string{"name": "Ana", "email": "a@b.com", "password": "pw"})
	require.NoError(t, err)
	assert.Equal(t, "new", resp.Token)
}

func TestUnauthorizedStatus(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"code":"ERROR_CODE_UNAUTHORIZED","message":"Invalid token."}`)
	}), "stale")

	_, err := c.Me(context.Background())
	require.Error(t, err)
	e, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, apperr.Unauthenticated, e.Kind)
	assert.Equal(t, http.StatusUnauthorized, e.Status)
	assert.Contains(t, e.Error(), "Invalid token.")
}

func TestServerErrorStatus(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}), "")

	_, err := c.GetPackage(context.Background(), 3)
	e, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, apperr.HTTPFailure, e.Kind)
	assert.Equal(t, http.StatusBadGateway, e.Status)
	assert.Contains(t, e.Error(), "boom")
}

func TestMalformedBodyIsDeserializationFailure(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"id": "not-a-number"`)
	}), "")

	_, err := c.GetUser(context.Background(), 1)
	assert.Equal(t, apperr.DeserializationFailure, apperr.KindOf(err))
}

func TestReadTimeoutIsNetworkFailure(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(srv.Close)
	t.Cleanup(func() { close(release) })

	c, err := Build(Config{BaseURL: srv.URL, ReadTimeout: 50 * time.Millisecond}, nil)
	require.NoError(t, err)

	_, err = c.ListPackagesFlat(context.Background())
	e, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, apperr.NetworkFailure, e.Kind)
	assert.True(t, e.Timeout)
	assert.Contains(t, e.Error(), "timed out")
}

func TestCanceledContextIsNetworkFailure(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}), "")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Me(ctx)
	e, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, apperr.NetworkFailure, e.Kind)
	assert.False(t, e.Timeout)
}

func TestEndpointsAndPaths(t *testing.T) {
	seen := map[string]bool{}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/auth/me", func(w http.ResponseWriter, r *http.Request) {
		seen["me"] = true
		_, _ = io.WriteString(w, `{"id":1,"name":"Ana","email":"a@b.com"}`)
	})
	mux.HandleFunc("GET /api/user/9", func(w http.ResponseWriter, r *http.Request) {
		seen["user"] = true
		_, _ = io.WriteString(w, `{"id":9}`)
	})
	mux.HandleFunc("GET /api/package", func(w http.ResponseWriter, r *http.Request) {
		seen["flat"] = true
		_, _ = io.WriteString(w, `[{"id":1,"title":"Cusco","price":"1299.90"}]`)
	})
	mux.HandleFunc("GET /api/packages", func(w http.ResponseWriter, r *http.Request) {
		seen["wrapped"] = true
		_, _ = io.WriteString(w, `{"list":[{"id":2,"price":450}]}`)
	})
	mux.HandleFunc("GET /api/package/2", func(w http.ResponseWriter, r *http.Request) {
		seen["package"] = true
		_, _ = io.WriteString(w, `{"id":2,"title":"Torres del Paine","description":"Trek","price":null}`)
	})
	mux.HandleFunc("POST /api/reservation", func(w http.ResponseWriter, r *http.Request) {
		seen["reservation"] = true
		var req ReservationRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, int64(2), req.PackageID)
		assert.Equal(t, 3, req.Travelers)
		_, _ = io.WriteString(w, `{"reservationId":501,"status":"confirmed"}`)
	})
	c := newTestClient(t, mux, "tok")
	ctx := context.Background()

	me, err := c.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, User{ID: 1, Name: "Ana", Email: "a@b.com"}, me)

	u, err := c.GetUser(ctx, 9)
	require.NoError(t, err)
	assert.Equal(t, int64(9), u.ID)

	flat, err := c.ListPackagesFlat(ctx)
	require.NoError(t, err)
	assert.Equal(t, ShapeFlat, flat.Shape)
	require.Len(t, flat.Items, 1)
	assert.Equal(t, "1299.9", flat.Items[0].Price.String())

	wrapped, err := c.ListPackagesWrapped(ctx)
	require.NoError(t, err)
	assert.Equal(t, ShapeWrapped, wrapped.Shape)
	require.Len(t, wrapped.Items, 1)
	assert.Equal(t, "450", wrapped.Items[0].Price.String())

	p, err := c.GetPackage(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "Torres del Paine", p.Title)
	assert.Nil(t, p.Price)

	res, err := c.CreateReservation(ctx, ReservationRequest{PackageID: 2, Travelers: 3})
	require.NoError(t, err)
	assert.Equal(t, FlexibleID("501"), res.ReservationID)
	assert.Equal(t, "confirmed", res.Status)

	for _, k := range []string{"me", "user", "flat", "wrapped", "package", "reservation"} {
		assert.True(t, seen[k], "endpoint %s not called", k)
	}
}

func TestCustomEndpoints(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/tours", r.URL.Path)
		_, _ = io.WriteString(w, `[]`)
	}))
	t.Cleanup(srv.Close)

	c, err := Build(Config{BaseURL: srv.URL, Endpoints: Endpoints{PackagesFlat: "v2/tours"}}, nil)
	require.NoError(t, err)
	_, err = c.ListPackagesFlat(context.Background())
	require.NoError(t, err)
}

// stallingHandler sends the start of a listing, then goes silent until the
// client gives up or the test ends.
func stallingHandler(release <-chan struct{}) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[{"id":1,`)
		w.(http.Flusher).Flush()
		select {
		case <-release:
		case <-r.Context().Done():
			return
		}
		_, _ = io.WriteString(w, `"title":"late"}]`)
	}
}

func TestReadTimeoutCoversStalledBody(t *testing.T) {
	tests := []struct {
		name  string
		level string
	}{
		{name: "quiet logger", level: "info"},
		{name: "debug logger reads the body first", level: "debug"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			release := make(chan struct{})
			srv := httptest.NewServer(stallingHandler(release))
			t.Cleanup(srv.Close)
			t.Cleanup(func() { close(release) })

			c, err := Build(Config{
				BaseURL:     srv.URL,
				ReadTimeout: 100 * time.Millisecond,
				Logger:      logging.NewLogger(tt.level, io.Discard),
			}, nil)
			require.NoError(t, err)

			start := time.Now()
			_, err = c.ListPackagesFlat(context.Background())
			assert.Less(t, time.Since(start), 2*time.Second)

			e, ok := apperr.As(err)
			require.True(t, ok, "got %v", err)
			assert.Equal(t, apperr.NetworkFailure, e.Kind)
			assert.True(t, e.Timeout)
			assert.Contains(t, e.Error(), "timed out")
		})
	}
}

func TestReadTimeoutResetsWhileDataArrives(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for _, chunk := range []string{`[{"id":1},`, `{"id":2},`, `{"id":3}]`} {
			_, _ = io.WriteString(w, chunk)
			w.(http.Flusher).Flush()
			time.Sleep(60 * time.Millisecond)
		}
	}))
	t.Cleanup(srv.Close)

	c, err := Build(Config{BaseURL: srv.URL, ReadTimeout: 150 * time.Millisecond}, nil)
	require.NoError(t, err)

	listing, err := c.ListPackagesFlat(context.Background())
	require.NoError(t, err)
	assert.Len(t, listing.Items, 3)
}
