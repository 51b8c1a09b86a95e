// Copyright (c) 2025 TravelGo
// Licensed under the MIT License. See LICENSE file in the project root for details.

package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/pterm/pterm"

	"travelgo/cli/internal/backend"
	"travelgo/cli/internal/logging"
)

// TokenWriter is the part of the session store the login flows mutate.
type TokenWriter interface {
	SetToken(token string) error
	ClearToken() error
}

// Session is the outcome of a successful login or signup.
type Session struct {
	Token string
	// User is set when the backend returned it alongside the token.
	User *backend.User
}

// Reservation is a confirmed booking.
type Reservation struct {
	ID        string
	Status    string
	PackageID int64
}

// TravelRepository covers authentication, packages and reservations.
type TravelRepository struct {
	api    backend.API
	tokens TokenWriter
	logger *pterm.Logger
}

// NewTravelRepository binds the repository to api and the session store. A nil logger discards.
func NewTravelRepository(api backend.API, tokens TokenWriter, logger *pterm.Logger) *TravelRepository {
	if logger == nil {
		logger = logging.Discard()
	}
	return &TravelRepository{api: api, tokens: tokens, logger: logger}
}

// Login authenticates and, on success only, stores the returned token.
func (r *TravelRepository) Login(ctx context.Context, email, password string) Result[Session] {
	resp, err := r.api.Login(ctx, backend.Credentials{Email: strings.TrimSpace(email), Password: password})
	if err != nil {
		return failed[Session](r.logger, "login", err)
	}
	return r.establish("login", resp)
}

// Signup registers a user from string fields and stores the returned token.
func (r *TravelRepository) Signup(ctx context.Context, fields map[string]string) Result[Session] {
	clean := make(map[string]string, len(fields))
	for k, v := range fields {
		if k != "password" {
			v = strings.TrimSpace(v)
		}
		clean[k] = v
	}
	resp, err := r.api.Signup(ctx, clean)
	if err != nil {
		return failed[Session](r.logger, "signup", err)
	}
	return r.establish("signup", resp)
}

func (r *TravelRepository) establish(op string, resp backend.LoginResponse) Result[Session] {
	if err := r.tokens.SetToken(resp.Token); err != nil {
		return failed[Session](r.logger, op, fmt.Errorf("store session token: %w", err))
	}
	return Success(Session{Token: resp.Token, User: resp.User})
}

// Logout forgets the local session. The backend has no logout endpoint.
func (r *TravelRepository) Logout() Result[struct{}] {
	if err := r.tokens.ClearToken(); err != nil {
		return failed[struct{}](r.logger, "logout", fmt.Errorf("clear session token: %w", err))
	}
	return Success(struct{}{})
}

// Packages lists packages from the flat endpoint, falling back to the wrapped
// endpoint when the flat one fails or returns nothing. It fails only when both
// calls fail.
func (r *TravelRepository) Packages(ctx context.Context) Result[[]backend.Package] {
	flat, flatErr := r.api.ListPackagesFlat(ctx)
	if flatErr == nil && len(flat.Items) > 0 {
		return Success(flat.Items)
	}
	if flatErr != nil {
		r.logger.Debug("flat package listing failed, trying wrapped", r.logger.Args("error", logging.Mask(flatErr.Error())))
	}

	wrapped, wrappedErr := r.api.ListPackagesWrapped(ctx)
	switch {
	case wrappedErr == nil:
		return Success(nonNil(wrapped.Items))
	case flatErr == nil:
		// The flat endpoint answered with an empty listing; that is a valid answer.
		return Success(nonNil(flat.Items))
	default:
		return failed[[]backend.Package](r.logger, "list packages",
			fmt.Errorf("%w; fallback: %w", flatErr, wrappedErr))
	}
}

// Package loads a single package.
func (r *TravelRepository) Package(ctx context.Context, id int64) Result[backend.Package] {
	p, err := r.api.GetPackage(ctx, id)
	if err != nil {
		return failed[backend.Package](r.logger, "get package", err)
	}
	return Success(p)
}

// CreateReservation books a package.
func (r *TravelRepository) CreateReservation(ctx context.Context, req backend.ReservationRequest) Result[Reservation] {
	resp, err := r.api.CreateReservation(ctx, req)
	if err != nil {
		return failed[Reservation](r.logger, "create reservation", err)
	}
	return Success(Reservation{ID: resp.ReservationID.String(), Status: resp.Status, PackageID: req.PackageID})
}

func nonNil(p []backend.Package) []backend.Package {
	if p == nil {
		return []backend.Package{}
	}
	return p
}
