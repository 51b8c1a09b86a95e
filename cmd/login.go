// Copyright (c) 2025 TravelGo
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"
	"errors"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"travelgo/cli/internal/repository"
	"travelgo/cli/internal/terminal"
	"travelgo/cli/internal/viewmodel"
)

var (
	loginEmail    string
	loginPassword string
)

// prompter is swapped in tests.
var prompter = terminal.Stdio

// loginCmd signs in with email and password and stores the session token in the OS keychain.
var loginCmd = &cobra.Command{
	Use:     "login",
	Aliases: []string{"signin"},
	Short:   "Sign in with email and password",
	Long: `The login command signs in to TravelGo. Missing values are prompted for; the
password is read without echo. On success the session token is stored in the OS
keychain and sent with every later request.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		email, password, err := askCredentials(loginEmail, loginPassword)
		if err != nil {
			return err
		}

		vm := viewmodel.NewLoginViewModel(a.travel)
		sess, err := runScreen(cmd.Context(), vm.ViewModel, "signing in", func(ctx context.Context) *viewmodel.Job {
			return vm.Login(ctx, email, password)
		})
		if err != nil {
			return err
		}
		greet(sess, email)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Account email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Account password (prompted without echo when omitted)")
}

// askCredentials prompts for whatever was not given on the command line.
func askCredentials(email, password string) (string, string, error) {
	p := prompter()
	var err error
	if strings.TrimSpace(email) == "" {
		if email, err = p.Line("Email: "); err != nil {
			return "", "", err
		}
	}
	if password == "" {
		if password, err = p.Secret("Password: "); err != nil {
			return "", "", err
		}
	}
	if strings.TrimSpace(email) == "" || password == "" {
		return "", "", errors.New("email and password are required")
	}
	return email, password, nil
}

func greet(sess repository.Session, fallback string) {
	who := strings.TrimSpace(fallback)
	if sess.User != nil {
		if p := viewmodel.NewProfile(*sess.User); p.Name != viewmodel.NoName {
			who = p.Name
		}
	}
	pterm.Success.Printfln("Signed in as %s", who)
}
