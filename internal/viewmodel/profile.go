// Copyright (c) 2025 TravelGo
// Licensed under the MIT License. See LICENSE file in the project root for details.

package viewmodel

import (
	"context"
	"strings"

	"travelgo/cli/internal/backend"
	"travelgo/cli/internal/repository"
)

// Fallbacks shown when the backend omits a profile field.
const (
	NoName  = "No name"
	NoEmail = "No email"
)

// UserSource is satisfied by *repository.UserRepository.
type UserSource interface {
	Me(ctx context.Context) repository.Result[backend.User]
	FetchUser(ctx context.Context, id int64) repository.Result[backend.User]
}

// Profile is the display form of a user.
type Profile struct {
	ID    int64
	Name  string
	Email string
}

// NewProfile fills missing fields with their fallbacks.
func NewProfile(u backend.User) Profile {
	p := Profile{ID: u.ID, Name: strings.TrimSpace(u.Name), Email: strings.TrimSpace(u.Email)}
	if p.Name == "" {
		p.Name = NoName
	}
	if p.Email == "" {
		p.Email = NoEmail
	}
	return p
}

// ProfileViewModel loads the profile screen.
type ProfileViewModel struct {
	*ViewModel[Profile]
	users UserSource
}

func NewProfileViewModel(users UserSource) *ProfileViewModel {
	return &ProfileViewModel{ViewModel: New[Profile](), users: users}
}

// LoadCurrent loads the user the session belongs to.
func (p *ProfileViewModel) LoadCurrent(ctx context.Context) *Job {
	return p.Launch(ctx, func(ctx context.Context) repository.Result[Profile] {
		return repository.Map(p.users.Me(ctx), NewProfile)
	})
}

// Load loads the user with the given id.
func (p *ProfileViewModel) Load(ctx context.Context, id int64) *Job {
	return p.Launch(ctx, func(ctx context.Context) repository.Result[Profile] {
		return repository.Map(p.users.FetchUser(ctx, id), NewProfile)
	})
}
