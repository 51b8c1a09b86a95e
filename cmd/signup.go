// Copyright (c) 2025 TravelGo
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"travelgo/cli/internal/viewmodel"
)

var (
	signupName     string
	signupEmail    string
	signupPassword string
)

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create an account and sign in",
	RunE: func(cmd *cobra.Command, args []string) error {
		if strings.TrimSpace(signupName) == "" {
			return errors.New("--name is required")
		}
		a, err := newApp()
		if err != nil {
			return err
		}
		email, password, err := askCredentials(signupEmail, signupPassword)
		if err != nil {
			return err
		}

		fields := map[string]string{"name": signupName, "email": email, "password": password}
		vm := viewmodel.NewLoginViewModel(a.travel)
		sess, err := runScreen(cmd.Context(), vm.ViewModel, "creating your account", func(ctx context.Context) *viewmodel.Job {
			return vm.Signup(ctx, fields)
		})
		if err != nil {
			return err
		}
		greet(sess, signupName)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(signupCmd)
	signupCmd.Flags().StringVar(&signupName, "name", "", "Your name")
	signupCmd.Flags().StringVar(&signupEmail, "email", "", "Account email")
	signupCmd.Flags().StringVar(&signupPassword, "password", "", "Account password (prompted without echo when omitted)")
}
