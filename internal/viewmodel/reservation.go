// Copyright (c) 2025 TravelGo
// Licensed under the MIT License. See LICENSE file in the project root for details.

package viewmodel

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"travelgo/cli/internal/backend"
	apperr "travelgo/cli/internal/errors"
	"travelgo/cli/internal/repository"
)

// Booker is satisfied by *repository.TravelRepository.
type Booker interface {
	CreateReservation(ctx context.Context, req backend.ReservationRequest) repository.Result[repository.Reservation]
}

// ReservationForm is the user's input for a booking.
type ReservationForm struct {
	PackageID int64  `validate:"gt=0"`
	StartDate string `validate:"omitempty,datetime=2006-01-02"`
	Travelers int    `validate:"gte=0,lte=50"`
	Notes     string `validate:"max=500"`
}

var formValidator = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the form before anything is sent.
func (f ReservationForm) Validate() error {
	err := formValidator.Struct(f)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperr.Wrap(apperr.Unknown, "invalid reservation", err)
	}
	problems := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		problems = append(problems, fieldProblem(fe))
	}
	return apperr.New(apperr.Unknown, "invalid reservation: "+strings.Join(problems, "; "))
}

func fieldProblem(fe validator.FieldError) string {
	switch fe.Field() {
	case "PackageID":
		return "package id must be positive"
	case "StartDate":
		return "date must look like 2006-01-02"
	case "Travelers":
		return "travelers must be between 0 and 50"
	case "Notes":
		return "notes are limited to 500 characters"
	}
	return fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag())
}

func (f ReservationForm) request() backend.ReservationRequest {
	return backend.ReservationRequest{
		PackageID: f.PackageID,
		StartDate: strings.TrimSpace(f.StartDate),
		Travelers: f.Travelers,
		Notes:     strings.TrimSpace(f.Notes),
	}
}

// ReservationViewModel submits bookings.
type ReservationViewModel struct {
	*ViewModel[repository.Reservation]
	booker Booker
}

func NewReservationViewModel(booker Booker) *ReservationViewModel {
	return &ReservationViewModel{ViewModel: New[repository.Reservation](), booker: booker}
}

// Submit validates form and, when it is valid, creates the reservation.
func (r *ReservationViewModel) Submit(ctx context.Context, form ReservationForm) *Job {
	return r.Launch(ctx, func(ctx context.Context) repository.Result[repository.Reservation] {
		if err := form.Validate(); err != nil {
			return repository.Failure[repository.Reservation](err)
		}
		return r.booker.CreateReservation(ctx, form.request())
	})
}
