// Copyright (c) 2025 TravelGo
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package session holds the authentication token for the current installation.
//
// A Store is created once at start-up, handed explicitly to the components that
// need it (the auth interceptor and the repositories), written only by the
// login/signup/logout flows and read by every outgoing request. The token lives
// in a single-slot atomic value so readers never observe a partial write, and is
// mirrored to the OS keychain so it survives process restarts.
package session

import (
	"errors"
	"strings"
	"sync/atomic"

	"travelgo/cli/internal/keychain"
)

// ErrEmptyToken is returned by SetToken for empty or whitespace-only tokens.
var ErrEmptyToken = errors.New("session: empty token")

// TokenSource exposes the current token to request interceptors.
type TokenSource interface {
	Token() (string, bool)
}

// Persister is the durable backing of a Store.
type Persister interface {
	SaveToken(token string) error
	LoadToken() (string, error)
	ClearToken() error
}

// Store is the process-wide session token holder.
type Store struct {
	durable Persister
	token   atomic.Pointer[string]
}

// Open creates a Store backed by p and loads any previously persisted token.
func Open(p Persister) (*Store, error) {
	s := &Store{durable: p}
	tok, err := p.LoadToken()
	switch {
	case err == nil:
		s.token.Store(&tok)
	case errors.Is(err, keychain.ErrNotFound):
	default:
		return nil, err
	}
	return s, nil
}

// Token returns the current token and whether one is present.
func (s *Store) Token() (string, bool) {
	p := s.token.Load()
	if p == nil {
		return "", false
	}
	return *p, true
}

// SetToken persists token and makes it the current token.
// The in-memory value is only replaced once the durable write succeeded.
func (s *Store) SetToken(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return ErrEmptyToken
	}
	if err := s.durable.SaveToken(token); err != nil {
		return err
	}
	s.token.Store(&token)
	return nil
}

// ClearToken removes the token from memory and durable storage.
func (s *Store) ClearToken() error {
	s.token.Store(nil)
	return s.durable.ClearToken()
}

// Authenticated reports whether a token is present.
func (s *Store) Authenticated() bool {
	_, ok := s.Token()
	return ok
}
