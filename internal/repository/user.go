// Copyright (c) 2025 TravelGo
// Licensed under the MIT License. See LICENSE file in the project root for details.

package repository

import (
	"context"

	"github.com/pterm/pterm"

	"travelgo/cli/internal/backend"
	"travelgo/cli/internal/logging"
)

// UserRepository fetches user projections. It never retries.
type UserRepository struct {
	api    backend.API
	logger *pterm.Logger
}

// NewUserRepository binds the repository to api. A nil logger discards.
func NewUserRepository(api backend.API, logger *pterm.Logger) *UserRepository {
	if logger == nil {
		logger = logging.Discard()
	}
	return &UserRepository{api: api, logger: logger}
}

// FetchUser loads the user with the given id.
func (r *UserRepository) FetchUser(ctx context.Context, id int64) Result[backend.User] {
	u, err := r.api.GetUser(ctx, id)
	if err != nil {
		return failed[backend.User](r.logger, "fetch user", err)
	}
	return Success(u)
}

// Me loads the user the current session belongs to.
func (r *UserRepository) Me(ctx context.Context) Result[backend.User] {
	u, err := r.api.Me(ctx)
	if err != nil {
		return failed[backend.User](r.logger, "fetch current user", err)
	}
	return Success(u)
}

// failed logs err at debug level and wraps it as a Failure.
func failed[T any](logger *pterm.Logger, op string, err error) Result[T] {
	res := Failure[T](err)
	info := res.Failure()
	logger.Debug(op+" failed", logger.Args("kind", string(info.Kind), "status", info.StatusCode, "error", logging.Mask(info.Message)))
	return res
}
