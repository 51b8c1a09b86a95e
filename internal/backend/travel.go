// Copyright (c) 2025 TravelGo
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"context"
	"net/http"
	"strconv"
)

// ListPackagesFlat calls GET package. The backend normally answers with a bare
// list; the returned listing records which shape was actually served.
func (h *HTTP) ListPackagesFlat(ctx context.Context) (PackageListing, error) {
	return h.listPackages(ctx, h.endpoints.PackagesFlat)
}

// ListPackagesWrapped calls GET packages, normally answered with {list: [...]}.
func (h *HTTP) ListPackagesWrapped(ctx context.Context) (PackageListing, error) {
	return h.listPackages(ctx, h.endpoints.PackagesWrapped)
}

func (h *HTTP) listPackages(ctx context.Context, path string) (PackageListing, error) {
	var l PackageListing
	if _, err := h.do(ctx, http.MethodGet, nil, &l, path); err != nil {
		return PackageListing{}, err
	}
	return l, nil
}

// GetPackage calls GET package/{id}.
func (h *HTTP) GetPackage(ctx context.Context, id int64) (Package, error) {
	var p Package
	if _, err := h.do(ctx, http.MethodGet, nil, &p, h.endpoints.Package, strconv.FormatInt(id, 10)); err != nil {
		return Package{}, err
	}
	return p, nil
}

// CreateReservation calls POST reservation.
func (h *HTTP) CreateReservation(ctx context.Context, req ReservationRequest) (ReservationResponse, error) {
	var out ReservationResponse
	if _, err := h.do(ctx, http.MethodPost, req, &out, h.endpoints.Reservation); err != nil {
		return ReservationResponse{}, err
	}
	return out, nil
}
