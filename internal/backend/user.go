// Copyright (c) 2025 TravelGo
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"context"
	"net/http"
	"strconv"
)

// GetUser calls GET user/{id}.
func (h *HTTP) GetUser(ctx context.Context, id int64) (User, error) {
	var u User
	if _, err := h.do(ctx, http.MethodGet, nil, &u, h.endpoints.User, strconv.FormatInt(id, 10)); err != nil {
		return User{}, err
	}
	return u, nil
}
