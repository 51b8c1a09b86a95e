// Copyright (c) 2025 TravelGo
// Licensed under the MIT License. See LICENSE file in the project root for details.

package viewmodel

import (
	"context"

	"travelgo/cli/internal/repository"
)

// Authenticator is satisfied by *repository.TravelRepository.
type Authenticator interface {
	Login(ctx context.Context, email, password string) repository.Result[repository.Session]
	Signup(ctx context.Context, fields map[string]string) repository.Result[repository.Session]
	Logout() repository.Result[struct{}]
}

// Phase is the login screen's position in its state machine.
type Phase int

const (
	Idle Phase = iota
	InFlight
	Authenticated
	Failed
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case InFlight:
		return "in flight"
	case Authenticated:
		return "authenticated"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// PhaseOf derives the phase from a session state.
func PhaseOf(s State[repository.Session]) Phase {
	switch {
	case s.Loading:
		return InFlight
	case s.Err != nil:
		return Failed
	case s.HasData:
		return Authenticated
	}
	return Idle
}

// LoginViewModel drives login, signup and logout:
// Idle -> InFlight -> Authenticated | Failed, Failed -> InFlight on retry,
// Authenticated -> Idle on logout and on nothing else.
type LoginViewModel struct {
	*ViewModel[repository.Session]
	auth Authenticator
}

func NewLoginViewModel(auth Authenticator) *LoginViewModel {
	return &LoginViewModel{ViewModel: New[repository.Session](), auth: auth}
}

// Phase reports the current phase.
func (l *LoginViewModel) Phase() Phase { return PhaseOf(l.State()) }

// canAttempt admits a new attempt from Idle or Failed only. Authenticated
// holds until Logout.
func canAttempt(s State[repository.Session]) bool {
	p := PhaseOf(s)
	return p == Idle || p == Failed
}

// Login starts an attempt. While one is in flight or a session is established,
// further attempts are ignored and the returned job is already finished.
func (l *LoginViewModel) Login(ctx context.Context, email, password string) *Job {
	return l.LaunchIf(ctx, canAttempt, func(ctx context.Context) repository.Result[repository.Session] {
		return l.auth.Login(ctx, email, password)
	})
}

// Signup registers and signs in, with the same transitions as Login.
func (l *LoginViewModel) Signup(ctx context.Context, fields map[string]string) *Job {
	return l.LaunchIf(ctx, canAttempt, func(ctx context.Context) repository.Result[repository.Session] {
		return l.auth.Signup(ctx, fields)
	})
}

// Logout clears the session and returns to Idle.
func (l *LoginViewModel) Logout() *repository.ErrorInfo {
	if res := l.auth.Logout(); !res.IsSuccess() {
		return res.Failure()
	}
	l.Reset()
	return nil
}
