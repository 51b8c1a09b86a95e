// Copyright (c) 2025 TravelGo
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"travelgo/cli/internal/backend"
	"travelgo/cli/internal/viewmodel"
)

// packagesCmd lists the travel packages on offer.
var packagesCmd = &cobra.Command{
	Use:     "packages",
	Aliases: []string{"pkgs"},
	Short:   "List travel packages",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		vm := viewmodel.NewPackagesViewModel(a.travel)
		list, err := runScreen(cmd.Context(), vm.ViewModel, "loading packages", vm.Load)
		if err != nil {
			return err
		}
		renderPackages(list)
		return nil
	},
}

var packageShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one travel package",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0], "package")
		if err != nil {
			return err
		}
		a, err := newApp()
		if err != nil {
			return err
		}
		vm := viewmodel.NewPackageViewModel(a.travel)
		p, err := runScreen(cmd.Context(), vm.ViewModel, "loading the package", func(ctx context.Context) *viewmodel.Job {
			return vm.Load(ctx, id)
		})
		if err != nil {
			return err
		}
		renderPackage(p)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(packagesCmd)
	packagesCmd.AddCommand(packageShowCmd)
}

func parseID(raw, what string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s id %q", what, raw)
	}
	return id, nil
}

func formatPrice(p backend.Package) string {
	if p.Price == nil {
		return "-"
	}
	return p.Price.StringFixed(2)
}

func packageTitle(p backend.Package) string {
	if t := strings.TrimSpace(p.Title); t != "" {
		return t
	}
	return fmt.Sprintf("Package %d", p.ID)
}

func renderPackages(list []backend.Package) {
	if len(list) == 0 {
		pterm.Info.Println("No travel packages are available right now.")
		return
	}
	data := pterm.TableData{{"ID", "Title", "Price"}}
	for _, p := range list {
		data = append(data, []string{strconv.FormatInt(p.ID, 10), packageTitle(p), formatPrice(p)})
	}
	_ = pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func renderPackage(p backend.Package) {
	var b strings.Builder
	fmt.Fprintf(&b, "ID:    %d\nPrice: %s", p.ID, formatPrice(p))
	if d := strings.TrimSpace(p.Description); d != "" {
		fmt.Fprintf(&b, "\n\n%s", d)
	}
	pterm.DefaultBox.
		WithTitle(pterm.NewStyle(pterm.FgCyan, pterm.Bold).Sprint(packageTitle(p))).
		WithPadding(1).
		Println(b.String())
}
