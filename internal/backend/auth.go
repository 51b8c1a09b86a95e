// Copyright (c) 2025 TravelGo
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"context"
	"net/http"

	apperr "travelgo/cli/internal/errors"
)

// Login calls POST auth/login with {email, password}.
// A 2xx response without a token in the body or the Authorization header is a
// deserialization failure.
func (h *HTTP) Login(ctx context.Context, creds Credentials) (LoginResponse, error) {
	return h.authenticate(ctx, h.endpoints.Login, creds)
}

// Signup calls POST auth/signup with the given string fields and returns the
// same shape as Login.
func (h *HTTP) Signup(ctx context.Context, fields map[string]string) (LoginResponse, error) {
	if fields == nil {
		fields = map[string]string{}
	}
	return h.authenticate(ctx, h.endpoints.Signup, fields)
}

func (h *HTTP) authenticate(ctx context.Context, path string, body any) (LoginResponse, error) {
	var out LoginResponse
	hdr, err := h.do(ctx, http.MethodPost, body, &out, path)
	if err != nil {
		return LoginResponse{}, err
	}
	if out.Token == "" {
		out.Token = findBearerTokenInHeaders(hdr)
	}
	if out.Token == "" {
		return LoginResponse{}, apperr.New(apperr.DeserializationFailure, "POST "+path+" response carries no token")
	}
	return out, nil
}

// Me calls GET auth/me; the bearer token is attached by the auth interceptor.
func (h *HTTP) Me(ctx context.Context) (User, error) {
	var u User
	if _, err := h.do(ctx, http.MethodGet, nil, &u, h.endpoints.Me); err != nil {
		return User{}, err
	}
	return u, nil
}
