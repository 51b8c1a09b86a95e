// Copyright (c) 2025 TravelGo
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// sessionCmd reports what the local session store holds without calling the backend.
var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Show the locally stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		st := a.store.Inspect()
		if !st.Present {
			notLoggedIn()
			return nil
		}

		data := pterm.TableData{
			{"Token", st.Preview},
			{"Backend", a.api.BaseURL()},
		}
		if st.IsJWT {
			if st.Subject != "" {
				data = append(data, []string{"Subject", st.Subject})
			}
			if !st.ExpiresAt.IsZero() {
				exp := st.ExpiresAt.Local().Format(time.RFC1123)
				if st.Expired(time.Now()) {
					exp += " (expired, run 'travelgo login')"
				}
				data = append(data, []string{"Expires", exp})
			}
		}
		_ = pterm.DefaultTable.WithData(data).Render()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sessionCmd)
}
