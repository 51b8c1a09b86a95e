// Copyright (c) 2025 TravelGo
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package main is the entry point for the TravelGo CLI.
package main

import (
	"travelgo/cli/cmd"
)

func main() {
	cmd.Execute()
}
