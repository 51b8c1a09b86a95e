// Copyright (c) 2025 TravelGo
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"travelgo/cli/internal/viewmodel"
)

var (
	reserveDate      string
	reserveTravelers int
	reserveNotes     string
)

// reserveCmd books a travel package for the signed-in user.
var reserveCmd = &cobra.Command{
	Use:   "reserve <packageId>",
	Short: "Book a travel package",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0], "package")
		if err != nil {
			return err
		}
		form := viewmodel.ReservationForm{
			PackageID: id,
			StartDate: reserveDate,
			Travelers: reserveTravelers,
			Notes:     reserveNotes,
		}
		if err := form.Validate(); err != nil {
			return err
		}

		a, err := newApp()
		if err != nil {
			return err
		}
		if !a.store.Authenticated() {
			notLoggedIn()
			return nil
		}
		vm := viewmodel.NewReservationViewModel(a.travel)
		r, err := runScreen(cmd.Context(), vm.ViewModel, "booking the package", func(ctx context.Context) *viewmodel.Job {
			return vm.Submit(ctx, form)
		})
		if err != nil {
			return err
		}

		status := r.Status
		if status == "" {
			status = "received"
		}
		details := fmt.Sprintf("Package:     %d\nReservation: %s\nStatus:      %s", r.PackageID, orDash(r.ID), status)
		pterm.DefaultBox.
			WithTitle(pterm.NewStyle(pterm.FgGreen, pterm.Bold).Sprint("Reservation confirmed")).
			WithPadding(1).
			Println(details)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reserveCmd)
	reserveCmd.Flags().StringVar(&reserveDate, "date", "", "Start date (YYYY-MM-DD)")
	reserveCmd.Flags().IntVar(&reserveTravelers, "travelers", 0, "Number of travelers")
	reserveCmd.Flags().StringVar(&reserveNotes, "notes", "", "Notes for the agency")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
