// Copyright (c) 2025 TravelGo
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package backend provides the client for the TravelGo REST backend.
// It defines the API contract (one method per endpoint), the DTOs mirroring the
// backend's JSON, the interceptor chain applied to every request (bearer token,
// request id, traffic logging), and the builder that assembles them.
//
// The client performs no business validation and does not recover from errors:
// every transport, status and decoding failure is returned as an *errors.E for
// the repository layer to interpret.
package backend

import "context"

// API defines backend operations the CLI depends on.
// Implementations may call real HTTP endpoints or provide fakes for tests.
type API interface {
	// Login exchanges credentials for a session token (POST auth/login).
	Login(ctx context.Context, creds Credentials) (LoginResponse, error)
	// Me returns the user the current token belongs to (GET auth/me).
	Me(ctx context.Context) (User, error)
	// Signup registers a user from arbitrary string fields (POST auth/signup).
	Signup(ctx context.Context, fields map[string]string) (LoginResponse, error)
	// GetUser fetches a user by identifier (GET user/{id}).
	GetUser(ctx context.Context, id int64) (User, error)
	// ListPackagesFlat fetches the package listing from the singular path (GET package).
	ListPackagesFlat(ctx context.Context) (PackageListing, error)
	// ListPackagesWrapped fetches the package listing from the plural path (GET packages).
	ListPackagesWrapped(ctx context.Context) (PackageListing, error)
	// GetPackage fetches a single package (GET package/{id}).
	GetPackage(ctx context.Context, id int64) (Package, error)
	// CreateReservation books a package (POST reservation).
	CreateReservation(ctx context.Context, req ReservationRequest) (ReservationResponse, error)
}

var _ API = (*HTTP)(nil)
