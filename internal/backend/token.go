// Copyright (c) 2025 TravelGo
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"encoding/json"
	"net/http"
	"strings"
)

// tokenFields lists the keys a login/signup response may carry its token under.
var tokenFields = []string{"token", "authToken", "auth_token", "access_token", "accessToken"}

// parseBearerToken extracts token from a value like "Bearer <token>" case-insensitively.
// Returns the token string without the "Bearer " prefix, or empty string if invalid format.
func parseBearerToken(value string) string {
	v := strings.TrimSpace(value)
	if len(v) < 7 {
		return ""
	}
	if strings.EqualFold(v[0:6], "bearer") && (v[6] == ' ' || v[6] == '\t') {
		if rest := strings.TrimSpace(v[6:]); rest != "" {
			return rest
		}
	}
	return ""
}

// findBearerTokenInHeaders returns the bearer token from an Authorization header, if any.
func findBearerTokenInHeaders(h http.Header) string {
	for _, v := range h.Values("Authorization") {
		if t := parseBearerToken(v); t != "" {
			return t
		}
	}
	return ""
}

// extractToken looks the token up under the known field names. A value given
// as "Bearer <token>" is unwrapped.
func extractToken(raw map[string]json.RawMessage) string {
	for _, key := range tokenFields {
		v, ok := raw[key]
		if !ok {
			continue
		}
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			continue
		}
		s = strings.TrimSpace(s)
		if t := parseBearerToken(s); t != "" {
			return t
		}
		if s != "" {
			return s
		}
	}
	return ""
}
