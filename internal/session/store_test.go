// Copyright (c) 2025 TravelGo
// Licensed under the MIT License. See LICENSE file in the project root for details.

package session

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/99designs/keyring"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travelgo/cli/internal/keychain"
)

type failingPersister struct {
	saveErr error
	loadErr error
}

func (f failingPersister) SaveToken(string) error     { return f.saveErr }
func (f failingPersister) LoadToken() (string, error) { return "", f.loadErr }
func (f failingPersister) ClearToken() error          { return nil }

func newStore(t *testing.T) (*Store, *keychain.Manager) {
	t.Helper()
	km := keychain.New(keyring.NewArrayKeyring(nil))
	s, err := Open(km)
	require.NoError(t, err)
	return s, km
}

func TestOpenWithoutToken(t *testing.T) {
	s, _ := newStore(t)

	_, ok := s.Token()
	assert.False(t, ok)
	assert.False(t, s.Authenticated())
}

func TestOpenLoadsPersistedToken(t *testing.T) {
	km := keychain.New(keyring.NewArrayKeyring(nil))
	require.NoError(t, km.SaveToken("persisted"))

	s, err := Open(km)
	require.NoError(t, err)

	tok, ok := s.Token()
	assert.True(t, ok)
	assert.Equal(t, "persisted", tok)
}

func TestOpenPropagatesBackendError(t *testing.T) {
	boom := errors.New("keyring locked")
	_, err := Open(failingPersister{loadErr: boom})
	assert.ErrorIs(t, err, boom)
}

func TestSetTokenReplacesAndPersists(t *testing.T) {
	s, km := newStore(t)

	require.NoError(t, s.SetToken("one"))
	require.NoError(t, s.SetToken("  two  "))

	tok, ok := s.Token()
	require.True(t, ok)
	assert.Equal(t, "two", tok)

	stored, err := km.LoadToken()
	require.NoError(t, err)
	assert.Equal(t, "two", stored)
}

func TestSetTokenRejectsEmpty(t *testing.T) {
	s, _ := newStore(t)

	assert.ErrorIs(t, s.SetToken("   "), ErrEmptyToken)
	assert.False(t, s.Authenticated())
}

func TestSetTokenKeepsPreviousValueWhenPersistFails(t *testing.T) {
	boom := errors.New("disk full")
	s := &Store{durable: failingPersister{saveErr: boom, loadErr: keychain.ErrNotFound}}

	assert.ErrorIs(t, s.SetToken("abc"), boom)
	_, ok := s.Token()
	assert.False(t, ok)
}

func TestClearToken(t *testing.T) {
	s, km := newStore(t)
	require.NoError(t, s.SetToken("abc"))

	require.NoError(t, s.ClearToken())

	_, ok := s.Token()
	assert.False(t, ok)
	_, err := km.LoadToken()
	assert.ErrorIs(t, err, keychain.ErrNotFound)
}

func TestConcurrentReadsSeeWholeTokens(t *testing.T) {
	s, _ := newStore(t)
	valid := map[string]bool{"alpha-token": true, "bravo-token": true}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				if tok, ok := s.Token(); ok && !valid[tok] {
					t.Errorf("observed partial token %q", tok)
					return
				}
			}
		}()
	}
	for j := 0; j < 50; j++ {
		if j%2 == 0 {
			_ = s.SetToken("alpha-token")
		} else {
			_ = s.SetToken("bravo-token")
		}
	}
	wg.Wait()
}

func TestInspect(t *testing.T) {
	s, _ := newStore(t)
	assert.False(t, s.Inspect().Present)

	require.NoError(t, s.SetToken("opaque-session-value"))
	st := s.Inspect()
	assert.True(t, st.Present)
	assert.False(t, st.IsJWT)
	assert.Equal(t, "opaq…alue", st.Preview)

	exp := time.Now().Add(-time.Hour).Truncate(time.Second)
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "42",
		ExpiresAt: jwt.NewNumericDate(exp),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	require.NoError(t, s.SetToken(signed))

	st = s.Inspect()
	assert.True(t, st.IsJWT)
	assert.Equal(t, "42", st.Subject)
	assert.True(t, st.ExpiresAt.Equal(exp))
	assert.True(t, st.Expired(time.Now()))
}
