// Copyright (c) 2025 TravelGo
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"travelgo/cli/internal/viewmodel"
)

// logoutCmd forgets the session token. The backend keeps no server-side session
// to invalidate, so this is purely local.
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the saved session token",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		if !a.store.Authenticated() {
			pterm.Println("You were not logged in.")
			return nil
		}
		if info := viewmodel.NewLoginViewModel(a.travel).Logout(); info != nil {
			return info
		}
		pterm.Success.Println("Session token removed")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}
