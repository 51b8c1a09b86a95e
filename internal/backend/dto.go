// Copyright (c) 2025 TravelGo
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Credentials is the login request body. It is never persisted.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// User is the backend's user projection.
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// LoginResponse is returned by login and signup.
type LoginResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user,omitempty"`
}

// UnmarshalJSON accepts the token under any of the common field names.
func (r *LoginResponse) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	r.Token = extractToken(raw)
	r.User = nil
	if u, ok := raw["user"]; ok && !bytes.Equal(bytes.TrimSpace(u), []byte("null")) {
		var usr User
		if err := json.Unmarshal(u, &usr); err != nil {
			return err
		}
		r.User = &usr
	}
	return nil
}

// Package is a travel package offered by the backend.
type Package struct {
	ID          int64            `json:"id"`
	Title       string           `json:"title,omitempty"`
	Description string           `json:"description,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
}

// ListingShape tells which response shape a package listing was decoded from.
type ListingShape int

const (
	ShapeUnknown ListingShape = iota
	// ShapeFlat is a bare JSON array of packages.
	ShapeFlat
	// ShapeWrapped is an object holding the array under "list".
	ShapeWrapped
)

func (s ListingShape) String() string {
	switch s {
	case ShapeFlat:
		return "flat"
	case ShapeWrapped:
		return "wrapped"
	}
	return "unknown"
}

// ErrListingShape is returned when a listing body matches neither shape.
var ErrListingShape = errors.New("package listing is neither a list nor an object with a list field")

// PackageListing is a package list decoded from either response shape.
type PackageListing struct {
	Shape ListingShape
	Items []Package
}

// UnmarshalJSON tries the flat shape first, then the wrapped one.
func (l *PackageListing) UnmarshalJSON(b []byte) error {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var flat []Package
		if err := json.Unmarshal(trimmed, &flat); err != nil {
			return err
		}
		l.Shape, l.Items = ShapeFlat, flat
		return nil
	}

	var wrapped struct {
		List *[]Package `json:"list"`
	}
	if err := json.Unmarshal(trimmed, &wrapped); err != nil {
		return ErrListingShape
	}
	if wrapped.List == nil {
		return ErrListingShape
	}
	l.Shape, l.Items = ShapeWrapped, *wrapped.List
	return nil
}

// ReservationRequest books a package.
type ReservationRequest struct {
	PackageID int64  `json:"packageId"`
	StartDate string `json:"startDate,omitempty"`
	Travelers int    `json:"travelers,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

// ReservationResponse confirms a booking.
type ReservationResponse struct {
	ReservationID FlexibleID `json:"reservationId"`
	Status        string     `json:"status"`
}

// FlexibleID is an identifier the backend may send as a number or a string.
type FlexibleID string

func (id *FlexibleID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = FlexibleID(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*id = FlexibleID(n.String())
	return nil
}

func (id FlexibleID) String() string { return string(id) }

// Int returns the identifier as an integer when it is numeric.
func (id FlexibleID) Int() (int64, bool) {
	n, err := strconv.ParseInt(string(id), 10, 64)
	return n, err == nil
}
