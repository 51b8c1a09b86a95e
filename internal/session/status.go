// Copyright (c) 2025 TravelGo
// Licensed under the MIT License. See LICENSE file in the project root for details.

package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Status describes the stored session for display purposes.
type Status struct {
	Present bool
	// Preview is the token with everything but its edges masked.
	Preview string
	// IsJWT is set when the token parsed as a JWT; Subject and ExpiresAt come from its claims.
	IsJWT     bool
	Subject   string
	ExpiresAt time.Time
}

// Expired reports whether the token carries an expiry that has passed.
func (st Status) Expired(now time.Time) bool {
	return st.IsJWT && !st.ExpiresAt.IsZero() && now.After(st.ExpiresAt)
}

// Inspect reports on the current token. The signature of a JWT is not verified
// and nothing here affects whether the token is sent.
func (s *Store) Inspect() Status {
	tok, ok := s.Token()
	if !ok {
		return Status{}
	}
	st := Status{Present: true, Preview: preview(tok)}

	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tok, &claims); err != nil {
		return st
	}
	st.IsJWT = true
	st.Subject = claims.Subject
	if claims.ExpiresAt != nil {
		st.ExpiresAt = claims.ExpiresAt.Time
	}
	return st
}

func preview(tok string) string {
	if len(tok) <= 8 {
		return "****"
	}
	return tok[:4] + "…" + tok[len(tok)-4:]
}
