// Copyright (c) 2025 TravelGo
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"travelgo/cli/internal/httperrors"
	"travelgo/cli/internal/repository"
	"travelgo/cli/internal/viewmodel"
)

// homeCmd loads the profile and the package listing side by side.
var homeCmd = &cobra.Command{
	Use:   "home",
	Short: "Show your profile and the available packages",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		profile := viewmodel.NewProfileViewModel(a.users)
		packages := viewmodel.NewPackagesViewModel(a.travel)
		defer profile.Dispose()
		defer packages.Dispose()

		// Each screen fails on its own and only the failed ones are reloaded.
		loadProfile, loadPackages := a.store.Authenticated(), true
		for loadProfile || loadPackages {
			var g errgroup.Group
			stop := startLoading("Loading home")
			if loadProfile {
				g.Go(func() error {
					profile.LoadCurrent(ctx).Wait()
					return errOrNil(profile.State().Err)
				})
			}
			if loadPackages {
				g.Go(func() error {
					packages.Load(ctx).Wait()
					return errOrNil(packages.State().Err)
				})
			}
			_ = g.Wait()
			stop()

			loadProfile = loadProfile && offerRetry(ctx, "loading your profile", profile.State().Err)
			loadPackages = loadPackages && offerRetry(ctx, "loading packages", packages.State().Err)
		}

		if !a.store.Authenticated() {
			notLoggedIn()
		} else if st := profile.State(); st.Err != nil {
			httperrors.Describe("loading your profile", st.Err).Print()
		} else {
			renderProfile("Welcome back", st.Data)
		}
		pterm.Println()

		if st := packages.State(); st.Err != nil {
			httperrors.Describe("loading packages", st.Err).Print()
		} else {
			renderPackages(st.Data)
		}

		if a.store.Authenticated() && profile.State().Err != nil {
			return &reportedError{err: profile.State().Err}
		}
		if err := errOrNil(packages.State().Err); err != nil {
			return &reportedError{err: err}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(homeCmd)
}

// errOrNil keeps a nil *ErrorInfo from turning into a non-nil error.
func errOrNil(info *repository.ErrorInfo) error {
	if info == nil {
		return nil
	}
	return info
}

// offerRetry reports whether a failed part of a screen should be loaded again.
func offerRetry(ctx context.Context, action string, info *repository.ErrorInfo) bool {
	if info == nil || ctx.Err() != nil || !retryable(info) {
		return false
	}
	pterm.Warning.Printfln("%s failed: %s", capitalize(action), info.Message)
	return confirmRetry(action)
}
