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

// meCmd shows the profile of the signed-in user.
var meCmd = &cobra.Command{
	Use:     "me",
	Aliases: []string{"profile", "whoami"},
	Short:   "Show your profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		if !a.store.Authenticated() {
			notLoggedIn()
			return nil
		}
		vm := viewmodel.NewProfileViewModel(a.users)
		p, err := runScreen(cmd.Context(), vm.ViewModel, "loading your profile", vm.LoadCurrent)
		if err != nil {
			return err
		}
		renderProfile("Profile", p)
		return nil
	},
}

var userCmd = &cobra.Command{
	Use:   "user <id>",
	Short: "Show a user's profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0], "user")
		if err != nil {
			return err
		}
		a, err := newApp()
		if err != nil {
			return err
		}
		vm := viewmodel.NewProfileViewModel(a.users)
		p, err := runScreen(cmd.Context(), vm.ViewModel, "loading the user", func(ctx context.Context) *viewmodel.Job {
			return vm.Load(ctx, id)
		})
		if err != nil {
			return err
		}
		renderProfile(fmt.Sprintf("User %d", id), p)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(meCmd)
	rootCmd.AddCommand(userCmd)
}

func renderProfile(title string, p viewmodel.Profile) {
	details := fmt.Sprintf("👤 %s\n✉️  %s", p.Name, p.Email)
	pterm.DefaultBox.
		WithTitle(pterm.NewStyle(pterm.FgCyan, pterm.Bold).Sprint(title)).
		WithPadding(1).
		Println(details)
}
